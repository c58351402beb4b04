package commands

import (
	"context"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/tclpatch/pkg/batch"
)

// batchFlags are the flags shared by every batch command
type batchFlags struct {
	roots  []string
	target string
	backup bool
}

// addBatchFlags registers the shared batch flags on cmd
func (f *batchFlags) addBatchFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.roots, "root", "r", []string{"."}, "root directory to search (repeatable)")
	cmd.Flags().StringVarP(&f.target, "target", "t", "", "target filename to edit in each model directory")
	cmd.Flags().BoolVarP(&f.backup, "backup", "b", false, "write a .bak snapshot before modifying each file")
	_ = cmd.MarkFlagRequired("target")
}

// run executes one operation across the configured roots
func (f *batchFlags) run(ctx context.Context, op batch.Operation) error {
	runner := batch.NewRunner(batch.Options{
		Backup: f.backup,
		Logger: batch.NewUserLogger(ctx),
	})

	if _, err := runner.Run(ctx, f.roots, f.target, op); err != nil {
		return errors.Errorf("running batch %s: %w", op.Name(), err)
	}
	return nil
}
