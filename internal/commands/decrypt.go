package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/mirrorcrypt/internal/config"
	"github.com/idelchi/mirrorcrypt/internal/logic"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "decrypt [flags] [paths...]",
		Aliases: []string{"dec"},
		Short:   "Decrypt files, or stdin to stdout when no paths are given",
		Long: `Decrypt files. Directories are searched for files carrying the encrypted suffix
unless include patterns are given.`,
		Args:    cobra.ArbitraryArgs,
		PreRunE: preRun(cfg, true),
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.Run(cfg)
		},
	}
}
