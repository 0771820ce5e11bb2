package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/mirrorcrypt/internal/config"
	"github.com/idelchi/mirrorcrypt/internal/logic"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "encrypt [flags] [paths...]",
		Aliases: []string{"enc"},
		Short:   "Encrypt files, or stdin to stdout when no paths are given",
		Args:    cobra.ArbitraryArgs,
		PreRunE: preRun(cfg, false),
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.Run(cfg)
		},
	}

	cmd.Flags().String("encoding", config.EncodingBase64, "Payload encoding: base64 accepts any bytes, text requires key alphabet input")

	return cmd
}
