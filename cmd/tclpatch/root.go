package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/walteh/tclpatch/cmd/tclpatch/commands"
)

var (
	// Flags
	debug bool
	quiet bool
)

// NewRootCmd creates the tclpatch root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tclpatch",
		Short: "Edit TCL model scripts across directory trees",
		Long: `tclpatch locates TCL-style solver input scripts inside model
directories and applies line-oriented edits to them: literal string
replacement, variable assignment rewrites, line injection, and block
comment-out. Batch commands walk one or more root directories and apply
one edit to every matching file.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}

	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log warnings and errors")

	cmd.AddCommand(commands.NewReplaceCmd())
	cmd.AddCommand(commands.NewCommentOutCmd())
	cmd.AddCommand(commands.NewSetVarCmd())
	cmd.AddCommand(commands.NewInjectCmd())
	cmd.AddCommand(commands.NewApplyCmd())
	cmd.AddCommand(commands.NewInfoCmd())

	return cmd
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	switch {
	case debug:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case quiet:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
