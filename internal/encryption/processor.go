package encryption

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/idelchi/mirrorcrypt/internal/config"
	"github.com/idelchi/mirrorcrypt/internal/fileutil"
	"github.com/idelchi/mirrorcrypt/internal/keyfile"
)

// Processor handles the encryption and decryption of files and streams.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// key holds the pristine field every file starts from
	key *keyfile.Key

	// logger receives diagnostics
	logger zerolog.Logger

	// stdout and stderr receive per-file result lines
	stdout io.Writer
	stderr io.Writer

	// results channels processing outcomes to the printer goroutine
	results chan Result
}

// Result is the outcome of processing one file.
type Result struct {
	Input      string
	Output     string
	OutputSize int64
	Took       time.Duration
	Error      error
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the diagnostic logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithOutput redirects the per-file result lines.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(p *Processor) {
		p.stdout = stdout
		p.stderr = stderr
	}
}

// NewProcessor creates a new Processor for key with the given configuration.
func NewProcessor(cfg *config.Config, key *keyfile.Key, opts ...Option) (*Processor, error) {
	processor := &Processor{
		cfg:     cfg,
		key:     key,
		logger:  zerolog.Nop(),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		results: make(chan Result, len(cfg.Files)),
	}

	for _, opt := range opts {
		opt(processor)
	}

	if !cfg.Decrypt && cfg.Encoding == config.EncodingBase64 {
		for _, ch := range []byte(keyfile.Alphabet) {
			if !key.Field.Contains(ch) {
				return nil, fmt.Errorf("%w: missing %q", ErrAlphabetCoverage, ch)
			}
		}
	}

	return processor, nil
}

// ProcessFiles concurrently processes all files specified in the configuration.
// It encrypts or decrypts files based on the configuration settings.
// Returns the number of successfully processed files and the number of errors.
//
//nolint:cyclop,gocognit
func (p *Processor) ProcessFiles() (processed, errored int, totalSize int64, err error) {
	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range p.results {
			if result.Error != nil {
				errored++

				fmt.Fprintf(p.stderr, "Error processing %q: %v\n", result.Input, result.Error)
			} else {
				processed++

				totalSize += result.OutputSize

				p.logger.Debug().
					Str("input", result.Input).
					Str("output", result.Output).
					Str("size", humanize.IBytes(uint64(max(0, result.OutputSize)))). //nolint:gosec // clamped
					Dur("took", result.Took).
					Msg("processed file")

				if !p.cfg.Quiet {
					fmt.Fprintf(p.stdout, "Processed %q -> %q\n", result.Input, result.Output)
				}
			}

			if p.cfg.Delete && result.Error == nil {
				if filepath.Clean(result.Output) == filepath.Clean(result.Input) {
					fmt.Fprintf(p.stderr, "Not deleting %q: output was written in place\n", result.Input)
				} else if err := os.Remove(result.Input); err != nil {
					fmt.Fprintf(p.stderr, "Error deleting %q: %v\n", result.Input, err)
				} else if !p.cfg.Quiet {
					fmt.Fprintf(p.stdout, "Deleted %q\n", result.Input)
				}
			}
		}
	}()

	for _, file := range p.cfg.Files {
		group.Go(func() error {
			outPath := OutputPath(file, p.cfg)
			start := time.Now()

			size, err := p.processFile(file, outPath)
			if err != nil {
				p.results <- Result{Input: file, Took: time.Since(start), Error: err}

				return err
			}

			p.results <- Result{Input: file, Output: outPath, OutputSize: size, Took: time.Since(start)}

			return nil
		})
	}

	err = group.Wait()

	close(p.results)

	<-done // Wait for printer to finish

	if err != nil {
		return processed, errored, totalSize, fmt.Errorf("processing files: %w", err)
	}

	return processed, errored, totalSize, nil
}

// ProcessStream encrypts or decrypts a single stream, such as stdin to stdout.
func (p *Processor) ProcessStream(reader io.Reader, writer io.Writer) error {
	if p.cfg.Decrypt {
		if _, err := p.decrypt(reader, writer); err != nil {
			return fmt.Errorf("decrypting stream: %w", err)
		}

		return nil
	}

	if err := p.encrypt(reader, writer, false); err != nil {
		return fmt.Errorf("encrypting stream: %w", err)
	}

	return nil
}

// encrypt reads data from reader, substitutes it through a fresh copy of the key's field
// and writes the envelope and ciphertext to writer.
func (p *Processor) encrypt(reader io.Reader, writer io.Writer, isExec bool) error {
	env := envelope{
		executable:  isExec,
		base64:      p.cfg.Encoding == config.EncodingBase64,
		fingerprint: p.key.Fingerprint,
	}

	if _, err := writer.Write(env.header()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	streamingWriter := newStreamingWriter(writer, p.key.Field.Clone())

	if !env.base64 {
		return pump(streamingWriter, reader)
	}

	encoder := base64.NewEncoder(base64.RawStdEncoding, streamingWriter)

	if err := pump(encoder, reader); err != nil {
		return err
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("flushing encoder: %w", err)
	}

	return nil
}

// decrypt reads an envelope and ciphertext from reader and writes the plaintext to writer.
// It returns whether the original file was executable.
func (p *Processor) decrypt(reader io.Reader, writer io.Writer) (bool, error) {
	header := make([]byte, envelopeHeaderSize)
	if _, err := io.ReadFull(reader, header); err != nil {
		return false, fmt.Errorf("reading header: %w", err)
	}

	env, err := parseEnvelopeHeader(header)
	if err != nil {
		return false, err
	}

	if !bytes.Equal(env.fingerprint, p.key.Fingerprint) {
		return false, fmt.Errorf("%w: expected key %x, have %x", ErrKeyMismatch, env.fingerprint, p.key.Fingerprint)
	}

	var plain io.Reader = newCryptReader(reader, p.key.Field.Clone())

	if env.base64 {
		plain = base64.NewDecoder(base64.RawStdEncoding, plain)
	}

	return env.executable, pump(writer, plain)
}

// processFile handles the encryption or decryption of a single file.
// It creates a temporary file for output and performs an atomic rename on completion.
func (p *Processor) processFile(filename, outPath string) (size int64, err error) {
	tc, err := fileutil.NewTempContext(filename, outPath)
	if err != nil {
		return 0, fmt.Errorf("preparing atomic write: %w", err)
	}

	defer tc.CleanupOnError(&err)

	inFile, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return 0, fmt.Errorf("opening input file: %w", err)
	}
	defer inFile.Close()

	const ownerReadWrite = 0o600

	perm := os.FileMode(ownerReadWrite)
	execOut := tc.IsExec

	if p.cfg.Decrypt {
		execOut, err = p.decrypt(inFile, tc.TmpFile)
		if err != nil {
			return 0, fmt.Errorf("decrypting file: %w", err)
		}
	} else {
		if err = p.encrypt(inFile, tc.TmpFile, tc.IsExec); err != nil {
			return 0, fmt.Errorf("encrypting file: %w", err)
		}
	}

	if execOut {
		perm |= 0o111
	}

	if err = inFile.Close(); err != nil {
		return 0, fmt.Errorf("closing input file: %w", err)
	}

	if err = tc.Commit(outPath, perm); err != nil {
		return 0, err
	}

	size, err = fileutil.FinalizeOutput(outPath, p.cfg.PreserveTimestamps, tc.SrcInfo.ModTime())
	if err != nil {
		return 0, fmt.Errorf("finalizing output: %w", err)
	}

	return size, nil
}

// OutputPath generates the output file path based on the input filename
// and the configured suffixes for encryption/decryption.
func OutputPath(filename string, cfg *config.Config) string {
	ext := cfg.Suffixes.Encrypt

	if cfg.Decrypt {
		filename = strings.TrimSuffix(filename, cfg.Suffixes.Encrypt)
		ext = cfg.Suffixes.Decrypt
	}

	return filepath.Join(filepath.Dir(filename),
		filepath.Base(filename)+ext)
}
