package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/tclpatch/pkg/model"
)

// NewInfoCmd creates a new info command
func NewInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info DIR",
		Short: "Print basic information about a model directory",
		Long: `Info lists the .tcl scripts inside a model directory and the recorder
names and partition count encoded in its .mpco companion files.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mdl, err := model.New(args[0])
			if err != nil {
				return errors.Errorf("opening model: %w", err)
			}

			tclFiles, err := mdl.ListTclFiles()
			if err != nil {
				return errors.Errorf("listing tcl files: %w", err)
			}
			recorders, err := mdl.RecorderNames()
			if err != nil {
				return errors.Errorf("listing recorders: %w", err)
			}
			partitions, err := mdl.PartitionCount()
			if err != nil {
				return errors.Errorf("counting partitions: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Model path: %s\n", mdl.Dir())
			fmt.Fprintf(out, "Number of .tcl files: %d\n", len(tclFiles))
			for _, f := range tclFiles {
				fmt.Fprintf(out, "  %s\n", f)
			}
			if len(recorders) > 0 {
				fmt.Fprintf(out, "Recorders: %s\n", strings.Join(recorders, ", "))
			}
			fmt.Fprintf(out, "Partitions: %d\n", partitions)
			return nil
		},
	}

	return cmd
}
