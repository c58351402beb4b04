package config

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Load loads a batch job file from the given path.
// The format is determined by the file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
// - .tclpatch will try both YAML and HCL formats
func Load(ctx context.Context, path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading job file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var job *Job

	// For .tclpatch files, try both YAML and HCL
	if ext == ".tclpatch" || filepath.Base(path) == ".tclpatch" {
		job, err = loadYAML(data)
		if err != nil {
			job, err = loadHCL(data, path)
			if err != nil {
				return nil, errors.Errorf("failed to parse %s as YAML or HCL: %w", path, err)
			}
		}
	} else {
		switch ext {
		case ".json":
			job, err = loadJSON(data)
		case ".yaml", ".yml":
			job, err = loadYAML(data)
		case ".hcl":
			job, err = loadHCL(data, path)
		default:
			return nil, errors.Errorf("unsupported file extension %q", ext)
		}
		if err != nil {
			return nil, err
		}
	}

	job.location = path
	if err := job.Validate(); err != nil {
		return nil, errors.Errorf("validating job: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Str("target", job.Target).
		Int("roots", len(job.Roots)).
		Int("operations", len(job.Operations())).
		Msg("loaded job file")

	return job, nil
}

// loadJSON loads a job from JSON data
func loadJSON(data []byte) (*Job, error) {
	var job Job
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&job); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	return &job, nil
}

// loadYAML loads a job from YAML data
func loadYAML(data []byte) (*Job, error) {
	var job Job
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&job); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &job, nil
}

// loadHCL loads a job from HCL data
func loadHCL(data []byte, filename string) (*Job, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var job Job
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &job)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &job, nil
}
