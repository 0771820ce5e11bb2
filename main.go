// Command mirrorcrypt encrypts and decrypts files with a mirror-field substitution cipher.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/mirrorcrypt/internal/commands"
	"github.com/idelchi/mirrorcrypt/internal/config"
)

// version is set at build time.
var version = "unknown - unofficial & generated by unknown"

func main() {
	cfg := &config.Config{}

	root := commands.NewRootCommand(cfg, version)
	root.SilenceErrors = true

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
