package commands

import (
	"github.com/spf13/cobra"

	"github.com/walteh/tclpatch/pkg/batch"
)

// NewSetVarCmd creates a new set-var command
func NewSetVarCmd() *cobra.Command {
	flags := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "set-var NAME VALUE",
		Short: "Rewrite a TCL variable assignment in every matching target file",
		Long: `Set-var finds every file named --target under the given roots and
rewrites each "set NAME ..." assignment to "set NAME VALUE". Matched
lines are rewritten wholesale: indentation and trailing content are
replaced by the canonical form.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.run(cmd.Context(), batch.SetVarOp{
				Variable: args[0],
				Value:    args[1],
			})
		},
	}

	flags.addBatchFlags(cmd)
	return cmd
}
