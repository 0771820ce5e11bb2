package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/mirrorcrypt/internal/config"
)

// NewRootCommand creates the root command with common configuration.
// Flags are persistent so every subcommand binds them through viper.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "mirrorcrypt [flags] command [flags]"
	root.Short = "Mirror-field file encryption utility"
	root.Long = `A substitution cipher driven by a field of spinning mirrors.
Every byte is a ray fired through the field; the field changes after every byte,
so identical plaintext bytes produce different ciphertext.

Provides commands for key generation, key inspection, encryption and decryption.`

	flags := root.PersistentFlags()

	flags.String("config", "", "Path to a config file (any format supported by viper)")
	flags.BoolP("show", "s", false, "Show the configuration and exit")

	flags.StringP("key", "k", "", "Name of the key inside the key directory (default \"default\")")
	flags.StringP("key-file", "f", "", "Path to the key file, instead of a named key")
	flags.String("key-dir", "", "Directory holding named keys (default $HOME/.config/mirrorcrypt)")
	flags.Bool("auto-create", false, "Generate the key when it does not exist")

	flags.IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	flags.BoolP("quiet", "q", false, "Suppress non-error output")
	flags.BoolP("verbose", "v", false, "Emit debug diagnostics on stderr")
	flags.Bool("delete", false, "Delete the original file after successful encryption/decryption")
	flags.Bool("dry", false, "Show what would be processed without doing it")
	flags.Bool("stats", false, "Print processing statistics")
	flags.Bool("preserve-timestamps", false, "Copy the modification time of the input to the output")
	flags.IntP("debug", "D", 0, "Animate every traversal step with this delay in milliseconds, forces --parallel 1")

	flags.String("encrypt-ext", config.DefaultEncryptSuffix, "Suffix to append to encrypted files")
	flags.String("decrypt-ext", "", "Suffix to append to decrypted files, after stripping the encrypted suffix")

	flags.StringSliceP("include", "i", nil, "Glob patterns of files to process when walking directories")
	flags.StringSliceP("exclude", "e", nil, "Glob patterns of files to skip when walking directories")
	flags.String("include-from", "", "JSONC file with an array of include patterns")
	flags.String("exclude-from", "", "JSONC file with an array of exclude patterns")

	root.AddCommand(
		NewEncryptCommand(cfg),
		NewDecryptCommand(cfg),
		NewKeygenCommand(cfg),
		NewCheckCommand(cfg),
	)

	return root
}
