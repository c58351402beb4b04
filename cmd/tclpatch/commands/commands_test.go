package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestReplaceCmd(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "model-a", "setup.tcl")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0755))
	require.NoError(t, os.WriteFile(target, []byte("source model_2020.tcl\n"), 0644))

	_, err := execute(t, NewReplaceCmd(), "--root", root, "--target", "setup.tcl", "2020", "2021")
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "source model_2021.tcl\n", string(data))
}

func TestReplaceCmd_TargetRequired(t *testing.T) {
	_, err := execute(t, NewReplaceCmd(), "old", "new")
	require.Error(t, err)
}

func TestSetVarCmd_WithBackup(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "model-a", "setup.tcl")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0755))
	require.NoError(t, os.WriteFile(target, []byte("set dt 0.01\n"), 0644))

	_, err := execute(t, NewSetVarCmd(), "--root", root, "--target", "setup.tcl", "--backup", "dt", "0.02")
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "set dt 0.02\n", string(data))

	backup, err := os.ReadFile(target + ".bak")
	require.NoError(t, err)
	assert.Equal(t, "set dt 0.01\n", string(backup))
}

func TestApplyCmd(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "model-a", "analysis_steps.tcl")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0755))
	require.NoError(t, os.WriteFile(target, []byte("source model_2020.tcl\nset dt 0.01\n"), 0644))

	jobPath := filepath.Join(t.TempDir(), "job.yaml")
	job := `
target: analysis_steps.tcl
roots: ["` + root + `"]
replace:
  - old: "2020"
    new: "2021"
set_var:
  - name: dt
    value: "0.02"
`
	require.NoError(t, os.WriteFile(jobPath, []byte(job), 0644))

	_, err := execute(t, NewApplyCmd(), jobPath)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "source model_2021.tcl\nset dt 0.02\n", string(data))
}

func TestApplyCmd_MissingJobFile(t *testing.T) {
	_, err := execute(t, NewApplyCmd(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading job")
}

func TestInfoCmd(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"setup.tcl", "analysis.tcl"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0644))
	}
	for _, name := range []string{"disp.part-0.mpco", "disp.part-1.mpco"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}

	out, err := execute(t, NewInfoCmd(), dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Number of .tcl files: 2")
	assert.Contains(t, out, "Recorders: disp")
	assert.Contains(t, out, "Partitions: 2")
}

func TestInfoCmd_MissingDirectory(t *testing.T) {
	_, err := execute(t, NewInfoCmd(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
