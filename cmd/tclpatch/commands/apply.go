package commands

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/tclpatch/pkg/batch"
	"github.com/walteh/tclpatch/pkg/config"
)

// NewApplyCmd creates a new apply command
func NewApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply [job-file]",
		Short: "Run a batch job described by a job file",
		Long: `Apply loads a job file (.hcl, .yaml, .json, or .tclpatch) and runs
every operation it declares across the job's roots, in order. Each
operation walks the tree independently; a failing model never stops
the batch.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			path := ".tclpatch"
			if len(args) == 1 {
				path = args[0]
			}

			job, err := config.Load(ctx, path)
			if err != nil {
				return errors.Errorf("loading job: %w", err)
			}

			runner := batch.NewRunner(batch.Options{
				Backup: job.Backup,
				Logger: batch.NewUserLogger(ctx),
			})

			for _, op := range job.Operations() {
				if _, err := runner.Run(ctx, job.Roots, job.Target, op); err != nil {
					return errors.Errorf("running %s: %w", op.Name(), err)
				}
			}
			return nil
		},
	}

	return cmd
}
