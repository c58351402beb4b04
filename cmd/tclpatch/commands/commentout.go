package commands

import (
	"github.com/spf13/cobra"

	"github.com/walteh/tclpatch/pkg/batch"
)

// NewCommentOutCmd creates a new comment-out command
func NewCommentOutCmd() *cobra.Command {
	flags := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "comment-out START END",
		Short: "Comment out a block of lines between two regex patterns",
		Long: `Comment-out finds every file named --target under the given roots and
prefixes each line between a START match and the next END match
(both inclusive) with "# ". Already-commented lines are left alone.
If END never matches, the block runs to end of file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.run(cmd.Context(), batch.CommentOutOp{
				Start: args[0],
				End:   args[1],
			})
		},
	}

	flags.addBatchFlags(cmd)
	return cmd
}
