package keyfile

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/hkdf"

	"github.com/idelchi/mirrorcrypt/internal/fileutil"
	"github.com/idelchi/mirrorcrypt/internal/mirrorfield"
)

// DefaultName is the key used when none is given.
const DefaultName = "default"

// FingerprintSize is the length of a key fingerprint in bytes.
const FingerprintSize = 8

// DefaultDir returns the directory holding named keys.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}

	return filepath.Join(home, ".config", "mirrorcrypt"), nil
}

// Resolve returns the path of the key called name inside dir.
func Resolve(dir, name string) (string, error) {
	if name == "" {
		name = DefaultName
	}

	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return filepath.Join(dir, name), nil
}

// Encode writes raw key material to w in key file format.
func Encode(w io.Writer, raw []byte) error {
	buf := bufio.NewWriter(w)

	enc := base64.NewEncoder(base64.StdEncoding, buf)
	if _, err := enc.Write(raw); err != nil {
		return fmt.Errorf("encoding key: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding key: %w", err)
	}

	if err := buf.WriteByte('\n'); err != nil {
		return fmt.Errorf("encoding key: %w", err)
	}

	return buf.Flush()
}

// Decode returns a reader yielding the raw key material of an encoded key.
func Decode(r io.Reader) io.Reader {
	return base64.NewDecoder(base64.StdEncoding, r)
}

// Write stores raw key material at path, creating parent directories as needed.
// An existing file is only replaced when force is set.
func Write(path string, raw []byte, force bool) (err error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %q", ErrKeyExists, path)
		}
	}

	const ownerOnly = 0o700

	if err := os.MkdirAll(filepath.Dir(path), ownerOnly); err != nil {
		return fmt.Errorf("creating key directory: %w", err)
	}

	tc, err := fileutil.NewTempFile(path)
	if err != nil {
		return fmt.Errorf("preparing atomic write: %w", err)
	}

	defer tc.CleanupOnError(&err)

	if err = Encode(tc.TmpFile, raw); err != nil {
		return err
	}

	const ownerReadWrite = 0o600

	if err = tc.Commit(path, ownerReadWrite); err != nil {
		return fmt.Errorf("writing key file: %w", err)
	}

	return nil
}

// Read returns the raw key material stored at path.
func Read(path string) ([]byte, error) {
	encoded, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading key file: %w", err)
	}

	raw, err := io.ReadAll(Decode(bytes.NewReader(encoded)))
	if err != nil {
		return nil, fmt.Errorf("decoding key file %q: %w", path, err)
	}

	return raw, nil
}

// Key is loaded key material together with its validated field.
type Key struct {
	// Path the key was read from.
	Path string

	// Field is the pristine session state; clone it before use.
	Field *mirrorfield.Field

	// Fingerprint identifies the key without revealing it.
	Fingerprint []byte
}

// Open reads and validates the key at path.
func Open(path string, opts ...mirrorfield.Option) (*Key, error) {
	raw, err := Read(path)
	if err != nil {
		return nil, err
	}

	if len(raw) > mirrorfield.FieldSize {
		return nil, fmt.Errorf("key file %q: %w: %d bytes, want %d",
			path, ErrTrailingKeyData, len(raw), mirrorfield.FieldSize)
	}

	field, err := mirrorfield.Open(bytes.NewReader(raw), opts...)
	if err != nil {
		return nil, fmt.Errorf("key file %q: %w", path, err)
	}

	fingerprint, err := Fingerprint(raw)
	if err != nil {
		return nil, err
	}

	return &Key{Path: path, Field: field, Fingerprint: fingerprint}, nil
}

// Load opens the key at path. When the file does not exist and autoCreate is
// set, a random key is generated and written first.
func Load(path string, autoCreate bool, opts ...mirrorfield.Option) (*Key, error) {
	_, err := os.Stat(path)

	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist) && autoCreate:
		raw, err := GenerateRandom()
		if err != nil {
			return nil, err
		}

		if err := Write(path, raw, false); err != nil {
			return nil, fmt.Errorf("creating key file: %w", err)
		}
	default:
		return nil, fmt.Errorf("locating key file: %w", err)
	}

	return Open(path, opts...)
}

// Fingerprint derives a short identifier of the raw key material.
func Fingerprint(raw []byte) ([]byte, error) {
	reader := hkdf.New(sha256.New, raw, nil, []byte("mirrorcrypt/fingerprint"))

	fingerprint := make([]byte, FingerprintSize)
	if _, err := io.ReadFull(reader, fingerprint); err != nil {
		return nil, fmt.Errorf("deriving key fingerprint: %w", err)
	}

	return fingerprint, nil
}
