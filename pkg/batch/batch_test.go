package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func readTree(t *testing.T, root string, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func TestRun_ReplaceAcrossTwoRoots(t *testing.T) {
	ctx := testContext(t)
	rootA := writeTree(t, map[string]string{
		"model-a/analysis_steps.tcl": "source model_2020.tcl\n",
	})
	rootB := writeTree(t, map[string]string{
		"deep/nested/model-b/analysis_steps.tcl": "source model_2020.tcl\n",
	})

	runner := NewRunner(Options{})
	report, err := runner.Run(ctx, []string{rootA, rootB}, "analysis_steps.tcl", ReplaceOp{Old: "2020", New: "2021"})
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalChanges)
	assert.Equal(t, 2, report.Modified())
	assert.Empty(t, report.Failed())
	require.Len(t, report.Roots, 2)
	assert.Equal(t, 1, report.Roots[0].Changes)
	assert.Equal(t, 1, report.Roots[1].Changes)

	assert.Equal(t, "source model_2021.tcl\n", readTree(t, rootA, "model-a/analysis_steps.tcl"))
	assert.Equal(t, "source model_2021.tcl\n", readTree(t, rootB, "deep/nested/model-b/analysis_steps.tcl"))
}

func TestRun_RootWithoutMatches(t *testing.T) {
	ctx := testContext(t)
	empty := writeTree(t, map[string]string{
		"model-a/other.tcl": "x\n",
	})
	full := writeTree(t, map[string]string{
		"model-b/analysis_steps.tcl": "start\na\nend\nb\n",
	})

	runner := NewRunner(Options{})
	report, err := runner.Run(ctx, []string{empty, full}, "analysis_steps.tcl", CommentOutOp{Start: "start", End: "end"})
	require.NoError(t, err)

	require.Len(t, report.Roots, 2)
	assert.Empty(t, report.Roots[0].Results)
	assert.Equal(t, 0, report.Roots[0].Changes)
	assert.Equal(t, 3, report.Roots[1].Changes)
	assert.Equal(t, 3, report.TotalChanges)

	assert.Equal(t, "# start\n# a\n# end\nb\n", readTree(t, full, "model-b/analysis_steps.tcl"))
}

func TestRun_MissingRootYieldsNoMatches(t *testing.T) {
	ctx := testContext(t)

	runner := NewRunner(Options{})
	report, err := runner.Run(ctx, []string{filepath.Join(t.TempDir(), "nope")}, "setup.tcl", ReplaceOp{Old: "a", New: "b"})
	require.NoError(t, err)

	require.Len(t, report.Roots, 1)
	assert.Empty(t, report.Roots[0].Results)
	assert.Equal(t, 0, report.TotalChanges)
}

func TestRun_PerModelFailureDoesNotAbortBatch(t *testing.T) {
	ctx := testContext(t)
	root := writeTree(t, map[string]string{
		"model-a/setup.tcl": "source model_2020.tcl\n",
		"model-c/setup.tcl": "source model_2020.tcl\n",
	})
	// A dangling symlink is discovered by the walk but fails verification.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "model-b"), 0755))
	require.NoError(t, os.Symlink(
		filepath.Join(root, "model-b", "missing.tcl"),
		filepath.Join(root, "model-b", "setup.tcl"),
	))

	runner := NewRunner(Options{})
	report, err := runner.Run(ctx, []string{root}, "setup.tcl", ReplaceOp{Old: "2020", New: "2021"})
	require.NoError(t, err)

	require.Len(t, report.Roots, 1)
	assert.Len(t, report.Roots[0].Results, 3)
	assert.Equal(t, 2, report.TotalChanges)

	failed := report.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "model-b", failed[0].ModelName())
	assert.Contains(t, failed[0].Err.Error(), "not found")

	// Sibling models were still processed.
	assert.Equal(t, "source model_2021.tcl\n", readTree(t, root, "model-a/setup.tcl"))
	assert.Equal(t, "source model_2021.tcl\n", readTree(t, root, "model-c/setup.tcl"))
}

func TestRun_SkippedModelsReportZero(t *testing.T) {
	ctx := testContext(t)
	root := writeTree(t, map[string]string{
		"model-a/setup.tcl": "no occurrence here\n",
	})

	runner := NewRunner(Options{})
	report, err := runner.Run(ctx, []string{root}, "setup.tcl", ReplaceOp{Old: "2020", New: "2021"})
	require.NoError(t, err)

	assert.Equal(t, 0, report.TotalChanges)
	assert.Equal(t, 0, report.Modified())
	assert.Empty(t, report.Failed())
	require.Len(t, report.Roots[0].Results, 1)
	assert.NoError(t, report.Roots[0].Results[0].Err)
}

func TestRun_BackupBeforeModification(t *testing.T) {
	ctx := testContext(t)
	root := writeTree(t, map[string]string{
		"model-a/setup.tcl": "source model_2020.tcl\n",
	})

	runner := NewRunner(Options{Backup: true})
	_, err := runner.Run(ctx, []string{root}, "setup.tcl", ReplaceOp{Old: "2020", New: "2021"})
	require.NoError(t, err)

	// The backup snapshots the pre-edit content.
	assert.Equal(t, "source model_2020.tcl\n", readTree(t, root, "model-a/setup.tcl.bak"))
	assert.Equal(t, "source model_2021.tcl\n", readTree(t, root, "model-a/setup.tcl"))
}

func TestRun_GlobTarget(t *testing.T) {
	ctx := testContext(t)
	root := writeTree(t, map[string]string{
		"model-a/setup.tcl":    "set dt 0.01\n",
		"model-a/analysis.tcl": "set dt 0.01\n",
		"model-a/notes.txt":    "set dt 0.01\n",
	})

	runner := NewRunner(Options{})
	report, err := runner.Run(ctx, []string{root}, "*.tcl", SetVarOp{Variable: "dt", Value: "0.02"})
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalChanges)
	assert.Equal(t, "set dt 0.02\n", readTree(t, root, "model-a/setup.tcl"))
	assert.Equal(t, "set dt 0.02\n", readTree(t, root, "model-a/analysis.tcl"))
	assert.Equal(t, "set dt 0.01\n", readTree(t, root, "model-a/notes.txt"))
}

func TestRun_InjectOpCountsPerFile(t *testing.T) {
	ctx := testContext(t)
	root := writeTree(t, map[string]string{
		"model-a/setup.tcl": "analyze 10\nanalyze 10\n",
		"model-b/setup.tcl": "wipe\n",
	})

	runner := NewRunner(Options{})
	report, err := runner.Run(ctx, []string{root}, "setup.tcl", InjectOp{Content: "puts done", After: "analyze"})
	require.NoError(t, err)

	// One injection in model-a, none in model-b.
	assert.Equal(t, 1, report.TotalChanges)
	assert.Equal(t, "analyze 10\nputs done\nanalyze 10\n", readTree(t, root, "model-a/setup.tcl"))
	assert.Equal(t, "wipe\n", readTree(t, root, "model-b/setup.tcl"))
}

func TestRun_Validation(t *testing.T) {
	ctx := testContext(t)
	runner := NewRunner(Options{})

	tests := []struct {
		name      string
		roots     []string
		target    string
		op        Operation
		wantError string
	}{
		{
			name:      "missing_target",
			roots:     []string{"."},
			target:    "",
			op:        ReplaceOp{Old: "a", New: "b"},
			wantError: "target filename is required",
		},
		{
			name:      "missing_roots",
			roots:     nil,
			target:    "setup.tcl",
			op:        ReplaceOp{Old: "a", New: "b"},
			wantError: "at least one root directory is required",
		},
		{
			name:      "missing_operation",
			roots:     []string{"."},
			target:    "setup.tcl",
			op:        nil,
			wantError: "operation is required",
		},
		{
			name:      "invalid_target_pattern",
			roots:     []string{"."},
			target:    "[.tcl",
			op:        ReplaceOp{Old: "a", New: "b"},
			wantError: "invalid target pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runner.Run(ctx, tt.roots, tt.target, tt.op)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}
