package commands

import (
	"github.com/spf13/cobra"

	"github.com/walteh/tclpatch/pkg/batch"
)

// NewReplaceCmd creates a new replace command
func NewReplaceCmd() *cobra.Command {
	flags := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "replace OLD NEW",
		Short: "Replace a literal string in every matching target file",
		Long: `Replace finds every file named --target under the given roots and
replaces all occurrences of OLD with NEW. The search is literal and
case-sensitive; regex metacharacters in OLD carry no meaning.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.run(cmd.Context(), batch.ReplaceOp{
				Old: args[0],
				New: args[1],
			})
		},
	}

	flags.addBatchFlags(cmd)
	return cmd
}
