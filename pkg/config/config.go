// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads and validates batch job files in HCL, YAML, or
// JSON form.
package config

import (
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/tclpatch/pkg/batch"
)

// ✏️ ReplaceSpec represents a literal string replacement
type ReplaceSpec struct {
	Old string `hcl:"old" json:"old" yaml:"old"`
	New string `hcl:"new,optional" json:"new" yaml:"new"`
}

// 💬 CommentOutSpec represents a block comment-out between two patterns
type CommentOutSpec struct {
	Start string `hcl:"start" json:"start" yaml:"start"`
	End   string `hcl:"end" json:"end" yaml:"end"`
}

// 🔄 SetVarSpec represents a variable assignment rewrite
type SetVarSpec struct {
	Name  string `hcl:"name" json:"name" yaml:"name"`
	Value string `hcl:"value" json:"value" yaml:"value"`
}

// 💉 InjectSpec represents a line injection after a pattern
type InjectSpec struct {
	Content string `hcl:"content" json:"content" yaml:"content"`
	After   string `hcl:"after,optional" json:"after" yaml:"after"`
}

// 📚 Job represents one batch editing job: which file to find, where to
// look, and which transformations to apply to each match.
type Job struct {
	Target      string           `hcl:"target" json:"target" yaml:"target"`
	Roots       []string         `hcl:"roots" json:"roots" yaml:"roots"`
	Backup      bool             `hcl:"backup,optional" json:"backup,omitempty" yaml:"backup,omitempty"`
	Replaces    []ReplaceSpec    `hcl:"replace,block" json:"replace,omitempty" yaml:"replace,omitempty"`
	SetVars     []SetVarSpec     `hcl:"set_var,block" json:"set_var,omitempty" yaml:"set_var,omitempty"`
	Injects     []InjectSpec     `hcl:"inject,block" json:"inject,omitempty" yaml:"inject,omitempty"`
	CommentOuts []CommentOutSpec `hcl:"comment_out,block" json:"comment_out,omitempty" yaml:"comment_out,omitempty"`

	location string // path the job was loaded from
}

// Location returns the path the job was loaded from, if any.
func (j *Job) Location() string {
	return j.location
}

// 🔍 Validate checks if the job is valid
func (j *Job) Validate() error {
	if j.Target == "" {
		return errors.Errorf("target is required")
	}
	if len(j.Roots) == 0 {
		return errors.Errorf("at least one root is required")
	}

	for i, r := range j.Replaces {
		if r.Old == "" {
			return errors.Errorf("replace %d: old is required", i)
		}
	}
	for i, s := range j.SetVars {
		if s.Name == "" {
			return errors.Errorf("set_var %d: name is required", i)
		}
	}
	for i, in := range j.Injects {
		if in.Content == "" {
			return errors.Errorf("inject %d: content is required", i)
		}
	}
	for i, c := range j.CommentOuts {
		if c.Start == "" {
			return errors.Errorf("comment_out %d: start is required", i)
		}
	}

	if len(j.Operations()) == 0 {
		return errors.Errorf("at least one operation is required")
	}
	return nil
}

// 🎯 Operations lowers the job's transformation specs into batch
// operations. Operations run grouped by kind: replacements, variable
// rewrites, injections, then comment-outs.
func (j *Job) Operations() []batch.Operation {
	var ops []batch.Operation
	for _, r := range j.Replaces {
		ops = append(ops, batch.ReplaceOp{Old: r.Old, New: r.New})
	}
	for _, s := range j.SetVars {
		ops = append(ops, batch.SetVarOp{Variable: s.Name, Value: s.Value})
	}
	for _, in := range j.Injects {
		ops = append(ops, batch.InjectOp{Content: in.Content, After: in.After})
	}
	for _, c := range j.CommentOuts {
		ops = append(ops, batch.CommentOutOp{Start: c.Start, End: c.End})
	}
	return ops
}
