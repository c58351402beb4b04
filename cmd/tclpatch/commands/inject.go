package commands

import (
	"github.com/spf13/cobra"

	"github.com/walteh/tclpatch/pkg/batch"
)

// NewInjectCmd creates a new inject command
func NewInjectCmd() *cobra.Command {
	flags := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "inject CONTENT AFTER",
		Short: "Insert a line after the first regex match in every matching target file",
		Long: `Inject finds every file named --target under the given roots and
inserts CONTENT immediately after the first line matching the AFTER
regex. Only the first match receives the injection; files without a
match are left untouched.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.run(cmd.Context(), batch.InjectOp{
				Content: args[0],
				After:   args[1],
			})
		},
	}

	flags.addBatchFlags(cmd)
	return cmd
}
