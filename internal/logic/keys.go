package logic

import (
	"fmt"
	"io"
	"strings"

	"github.com/idelchi/mirrorcrypt/internal/config"
	"github.com/idelchi/mirrorcrypt/internal/keyfile"
	"github.com/idelchi/mirrorcrypt/internal/mirrorfield"
)

// RunKeygen generates a random key. With Print set the key is written to w instead of the key store.
func RunKeygen(cfg *config.Config, w io.Writer) error {
	raw, err := keyfile.GenerateRandom()
	if err != nil {
		return err
	}

	if cfg.Print {
		return keyfile.Encode(w, raw)
	}

	path, err := keyPath(cfg)
	if err != nil {
		return fmt.Errorf("selecting key: %w", err)
	}

	if err := keyfile.Write(path, raw, cfg.Force); err != nil {
		return err
	}

	fingerprint, err := keyfile.Fingerprint(raw)
	if err != nil {
		return err
	}

	if !cfg.Quiet {
		fmt.Fprintf(w, "Generated key %q (fingerprint %x)\n", path, fingerprint)
	}

	return nil
}

// RunCheck loads and validates a key and prints its census to w.
func RunCheck(cfg *config.Config, w io.Writer) error {
	path, err := keyPath(cfg)
	if err != nil {
		return fmt.Errorf("selecting key: %w", err)
	}

	key, err := keyfile.Open(path)
	if err != nil {
		return fmt.Errorf("checking key: %w", err)
	}

	if cfg.Quiet {
		return nil
	}

	snap := key.Field.Snapshot()

	fixed := "none"
	if points := snap.FixedPoints(); len(points) > 0 {
		labels := make([]string, len(points))
		for i, slot := range points {
			labels[i] = fmt.Sprintf("%d (%q)", slot, rune(snap.Perimeter[slot]))
		}

		fixed = strings.Join(labels, ", ")
	}

	fmt.Fprintf(w, "Key:          %s\n", key.Path)
	fmt.Fprintf(w, "Fingerprint:  %x\n", key.Fingerprint)
	fmt.Fprintf(w, "Mirrors:      / %d  - %d  \\ %d  empty %d\n",
		snap.Count(mirrorfield.Forward),
		snap.Count(mirrorfield.Straight),
		snap.Count(mirrorfield.Backward),
		snap.Count(mirrorfield.None))
	fmt.Fprintf(w, "Alphabet:     %q\n", snap.Perimeter[:])
	fmt.Fprintf(w, "Fixed points: %s\n", fixed)

	return nil
}
