package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/mirrorcrypt/internal/config"
	"github.com/idelchi/mirrorcrypt/internal/logic"
)

// NewCheckCommand creates a new cobra command for the check subcommand.
func NewCheckCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "check [flags] [name]",
		Short:   "Validate a key and print its mirror census",
		Args:    cobra.MaximumNArgs(1),
		PreRunE: keyPreRun(cfg),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return logic.RunCheck(cfg, cmd.OutOrStdout())
		},
	}
}
