package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/mirrorcrypt/internal/config"
	"github.com/idelchi/mirrorcrypt/internal/logic"
)

// NewKeygenCommand creates a new cobra command for the keygen subcommand.
func NewKeygenCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "keygen [flags] [name]",
		Aliases: []string{"gen"},
		Short:   "Generate a random key",
		Args:    cobra.MaximumNArgs(1),
		PreRunE: keyPreRun(cfg),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return logic.RunKeygen(cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().Bool("force", false, "Overwrite an existing key")
	cmd.Flags().Bool("print", false, "Print the key to stdout instead of storing it")

	return cmd
}
