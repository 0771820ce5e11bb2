// Package commands provides the command-line interface for the mirrorcrypt tool.
//
// It implements commands for:
//   - encryption
//   - decryption
//   - key generation
//   - key inspection
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/mirrorcrypt/internal/config"
)

// preRun returns a PreRunE handler that loads the configuration from flags, environment
// and config file, stores the positional args in cfg.Files and validates the result.
func preRun(cfg *config.Config, decrypt bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := config.Load(cmd.Flags(), cfg); err != nil {
			return err
		}

		cfg.Files = args
		cfg.Decrypt = decrypt

		return cobraext.Validate(cfg, cfg)
	}
}

// keyPreRun is like preRun for commands whose optional positional argument names a key.
func keyPreRun(cfg *config.Config) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := config.Load(cmd.Flags(), cfg); err != nil {
			return err
		}

		if len(args) > 0 {
			cfg.Key = args[0]
		}

		return cobraext.Validate(cfg, cfg)
	}
}
