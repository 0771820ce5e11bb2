// Package logic implements the core business logic of the encrypt, decrypt, keygen and check commands.
package logic

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/idelchi/mirrorcrypt/internal/config"
	"github.com/idelchi/mirrorcrypt/internal/encryption"
	"github.com/idelchi/mirrorcrypt/internal/filter"
	"github.com/idelchi/mirrorcrypt/internal/keyfile"
	"github.com/idelchi/mirrorcrypt/internal/logging"
	"github.com/idelchi/mirrorcrypt/internal/mirrorfield"
	"github.com/idelchi/mirrorcrypt/internal/visualize"
)

// Run is the main logic of the encrypt and decrypt commands.
func Run(cfg *config.Config) error {
	logger := logging.New(os.Stderr, cfg.Verbose)

	if cfg.Streaming() {
		return runStream(cfg, logger)
	}

	scanned, excluded, start, done, err := preamble(cfg)
	if done || err != nil {
		return err
	}

	key, err := loadKey(cfg, logger)
	if err != nil {
		return err
	}

	proc, err := encryption.NewProcessor(cfg, key, encryption.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	processed, errored, totalSize, err := proc.ProcessFiles()

	if cfg.Stats {
		printStats(scanned, excluded, processed, errored, totalSize, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("running logic: %w", err)
	}

	return nil
}

// runStream processes stdin to stdout.
func runStream(cfg *config.Config, logger zerolog.Logger) error {
	key, err := loadKey(cfg, logger)
	if err != nil {
		return err
	}

	proc, err := encryption.NewProcessor(cfg, key, encryption.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	return proc.ProcessStream(os.Stdin, os.Stdout)
}

// keyPath returns the key file selected by the configuration.
func keyPath(cfg *config.Config) (string, error) {
	if cfg.KeyFile != "" {
		return cfg.KeyFile, nil
	}

	dir := cfg.KeyDir
	if dir == "" {
		var err error

		if dir, err = keyfile.DefaultDir(); err != nil {
			return "", err
		}
	}

	return keyfile.Resolve(dir, cfg.Key)
}

// loadKey opens the configured key, attaching the traversal animation when requested.
func loadKey(cfg *config.Config, logger zerolog.Logger) (*keyfile.Key, error) {
	path, err := keyPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("selecting key: %w", err)
	}

	var opts []mirrorfield.Option

	if cfg.Animated() {
		// The animation owns the terminal; files must not interleave.
		cfg.Parallel = 1

		delay := time.Duration(cfg.Debug) * time.Millisecond
		opts = append(opts, mirrorfield.WithObserver(visualize.New(os.Stderr), delay))
	}

	key, err := keyfile.Load(path, cfg.AutoCreate, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading key: %w", err)
	}

	logger.Debug().
		Str("path", key.Path).
		Hex("fingerprint", key.Fingerprint).
		Msg("loaded key")

	return key, nil
}

// preamble resolves files and handles dry run. Returns done=true if dry run was executed.
func preamble(cfg *config.Config) (int, int, time.Time, bool, error) {
	start := time.Now()

	scanned, err := resolveFiles(cfg)
	if err != nil {
		return 0, 0, start, false, fmt.Errorf("resolving files: %w", err)
	}

	excluded := scanned - len(cfg.Files)

	if cfg.Dry {
		dryRun(cfg, scanned, excluded, start)

		return scanned, excluded, start, true, nil
	}

	return scanned, excluded, start, false, nil
}

// resolveFiles expands directories and applies include/exclude filtering.
// Returns the total number of files scanned before filtering.
func resolveFiles(cfg *config.Config) (int, error) {
	includes := append([]string{}, cfg.Include...)
	excludes := append([]string{}, cfg.Exclude...)

	if cfg.IncludeFrom != "" {
		patterns, err := filter.LoadPatterns(cfg.IncludeFrom)
		if err != nil {
			return 0, fmt.Errorf("loading include patterns: %w", err)
		}

		includes = append(includes, patterns...)
	}

	if cfg.ExcludeFrom != "" {
		patterns, err := filter.LoadPatterns(cfg.ExcludeFrom)
		if err != nil {
			return 0, fmt.Errorf("loading exclude patterns: %w", err)
		}

		excludes = append(excludes, patterns...)
	}

	hasIncludes := len(cfg.Include) > 0 || cfg.IncludeFrom != ""

	if cfg.Decrypt && !hasIncludes {
		includes = append(includes, "**/*"+cfg.Suffixes.Encrypt)
		hasIncludes = true
	}

	files, scanned, err := filter.Resolve(cfg.Files, includes, excludes, hasIncludes)
	if err != nil {
		return scanned, fmt.Errorf("filtering files: %w", err)
	}

	cfg.Files = files

	return scanned, nil
}

// dryRun previews what would be processed without touching any file.
func dryRun(cfg *config.Config, scanned, excluded int, start time.Time) {
	var totalSize int64

	for _, file := range cfg.Files {
		if !cfg.Quiet {
			fmt.Printf("Processed %q -> %q\n", file, encryption.OutputPath(file, cfg)) //nolint:forbidigo
		}

		if cfg.Stats {
			if info, err := os.Stat(file); err == nil {
				totalSize += info.Size()
			}
		}
	}

	if cfg.Stats {
		printStats(scanned, excluded, len(cfg.Files), 0, totalSize, time.Since(start))
	}
}

func printStats(scanned, excluded, processed, errored int, totalSize int64, duration time.Duration) {
	fmt.Fprintf(os.Stderr, "\nStats\n")
	fmt.Fprintf(os.Stderr, "  Scanned:   %d\n", scanned)
	fmt.Fprintf(os.Stderr, "  Excluded:  %d\n", excluded)
	fmt.Fprintf(os.Stderr, "  Processed: %d\n", processed)
	fmt.Fprintf(os.Stderr, "  Errors:    %d\n", errored)
	//nolint:gosec // totalSize is always non-negative (sum of file sizes)
	fmt.Fprintf(os.Stderr, "  Size:      %s\n", humanize.IBytes(uint64(max(0, totalSize))))
	fmt.Fprintf(os.Stderr, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
