// Package batch applies one text transformation across every model
// directory found under one or more root directories.
package batch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/tclpatch/pkg/model"
)

// 📄 ModelResult is the outcome of applying the operation to one model
// directory. Per-model failures are captured here instead of propagating,
// so one failing model never aborts the batch.
type ModelResult struct {
	Dir   string // Model directory path
	Count int    // Number of changes made
	Err   error  // Per-model failure, nil on success
}

// ModelName returns the base name of the model directory.
func (r ModelResult) ModelName() string {
	return filepath.Base(r.Dir)
}

// 📊 RootReport aggregates the results for one root directory.
type RootReport struct {
	Root    string        // Root directory that was walked
	Results []ModelResult // One entry per discovered model
	Changes int           // Sum of change counts under this root
}

// 🌍 Report aggregates a whole batch run.
type Report struct {
	Roots        []RootReport
	TotalChanges int
}

// Modified returns how many models were actually changed.
func (r *Report) Modified() int {
	n := 0
	for _, root := range r.Roots {
		for _, res := range root.Results {
			if res.Err == nil && res.Count > 0 {
				n++
			}
		}
	}
	return n
}

// Failed returns the results of every model that errored.
func (r *Report) Failed() []ModelResult {
	var failed []ModelResult
	for _, root := range r.Roots {
		for _, res := range root.Results {
			if res.Err != nil {
				failed = append(failed, res)
			}
		}
	}
	return failed
}

// 🔧 Options contains configuration for the batch runner
type Options struct {
	// Backup writes a .bak snapshot of each target before modifying it
	Backup bool
	// Logger reports progress to the user; created from the context when nil
	Logger *UserLogger
}

// 🏃 Runner walks root directories and applies one operation per
// discovered model. Files are processed sequentially, in walk order.
type Runner struct {
	opts Options
}

// 🏭 NewRunner creates a new batch runner
func NewRunner(opts Options) *Runner {
	return &Runner{opts: opts}
}

// 🏃 Run applies op to every file named target found anywhere under the
// given roots. The target may be a glob pattern. Per-model errors are
// collected into the report; only setup problems (no roots, no target,
// bad pattern) return an error.
func (r *Runner) Run(ctx context.Context, roots []string, target string, op Operation) (*Report, error) {
	if target == "" {
		return nil, errors.Errorf("target filename is required")
	}
	if len(roots) == 0 {
		return nil, errors.Errorf("at least one root directory is required")
	}
	if op == nil {
		return nil, errors.Errorf("operation is required")
	}
	if !doublestar.ValidatePattern(target) {
		return nil, errors.Errorf("invalid target pattern %q", target)
	}

	logger := r.opts.Logger
	if logger == nil {
		logger = NewUserLogger(ctx)
	}

	report := &Report{}
	for _, root := range roots {
		logger.LogRootStart(root, op.Name(), target)

		rootReport, err := r.runRoot(ctx, logger, root, target, op)
		if err != nil {
			return nil, err
		}

		report.Roots = append(report.Roots, rootReport)
		report.TotalChanges += rootReport.Changes
	}

	logger.LogGlobalSummary(report, op.Unit())
	return report, nil
}

// runRoot discovers targets under one root and applies the operation to
// each.
func (r *Runner) runRoot(ctx context.Context, logger *UserLogger, root string, target string, op Operation) (RootReport, error) {
	report := RootReport{Root: root}

	matches, err := findTargets(ctx, root, target)
	if err != nil {
		return report, err
	}
	if len(matches) == 0 {
		logger.LogRootEmpty(root, target)
		return report, nil
	}
	logger.LogMatches(root, len(matches))

	for _, match := range matches {
		result := r.applyOne(ctx, match, op)
		logger.LogModelOutcome(result, op.Unit())

		report.Results = append(report.Results, result)
		report.Changes += result.Count
	}

	logger.LogRootFinish(report, op.Unit())
	return report, nil
}

// applyOne runs the operation against a single matched file. Any failure
// is captured in the result.
func (r *Runner) applyOne(ctx context.Context, path string, op Operation) ModelResult {
	// The model directory is the parent of the matched file.
	result := ModelResult{Dir: filepath.Dir(path)}
	filename := filepath.Base(path)

	mdl, err := model.New(result.Dir)
	if err != nil {
		result.Err = err
		return result
	}

	if r.opts.Backup {
		if _, err := mdl.BackupFile(filename); err != nil {
			result.Err = errors.Errorf("backing up %s: %w", filename, err)
			return result
		}
	}

	count, err := op.Apply(ctx, mdl, filename)
	if err != nil {
		result.Err = err
		return result
	}

	result.Count = count
	return result
}

// findTargets walks root recursively and returns every file whose base
// name matches the target pattern. A missing root yields no matches
// rather than an error.
func findTargets(ctx context.Context, root string, target string) ([]string, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		zerolog.Ctx(ctx).Warn().Str("root", root).Msg("root directory does not exist")
		return nil, nil
	}

	var matches []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			zerolog.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("skipping unreadable entry")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		matched, err := doublestar.Match(target, d.Name())
		if err != nil {
			return errors.Errorf("matching target %q: %w", target, err)
		}
		if matched {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", root, err)
	}

	return matches, nil
}
