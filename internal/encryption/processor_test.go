package encryption_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/mirrorcrypt/internal/config"
	"github.com/idelchi/mirrorcrypt/internal/encryption"
	"github.com/idelchi/mirrorcrypt/internal/keyfile"
	"github.com/idelchi/mirrorcrypt/internal/mirrorfield"
)

func newKey(t *testing.T, seed byte) *keyfile.Key {
	t.Helper()

	var s [32]byte
	s[0] = seed

	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, keyfile.Write(path, keyfile.Generate(s), false))

	key, err := keyfile.Open(path)
	require.NoError(t, err)

	return key
}

func newConfig(decrypt bool, encoding string, files ...string) *config.Config {
	return &config.Config{
		Parallel: 2,
		Encoding: encoding,
		Quiet:    true,
		Decrypt:  decrypt,
		Suffixes: config.Suffixes{Encrypt: ".enc"},
		Files:    files,
	}
}

func process(t *testing.T, cfg *config.Config, key *keyfile.Key) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	proc, err := encryption.NewProcessor(cfg, key, encryption.WithOutput(&stdout, &stderr))
	require.NoError(t, err)

	_, _, _, err = proc.ProcessFiles()

	return stdout.String() + stderr.String(), err
}

func binaryPayload() []byte {
	payload := make([]byte, 0, 3*256)
	for i := range 3 * 256 {
		payload = append(payload, byte(i*7+i/256))
	}

	return payload
}

func TestFileRoundTrip(t *testing.T) {
	t.Parallel()

	key := newKey(t, 1)
	dir := t.TempDir()

	plain := filepath.Join(dir, "data.bin")
	script := filepath.Join(dir, "run.sh")

	require.NoError(t, os.WriteFile(plain, binaryPayload(), 0o600))
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho hi\n"), 0o700)) //nolint:gosec // executable fixture

	_, err := process(t, newConfig(false, config.EncodingBase64, plain, script), key)
	require.NoError(t, err)

	encrypted, err := os.ReadFile(plain + ".enc")
	require.NoError(t, err)
	assert.NotContains(t, string(encrypted), string(binaryPayload()[:16]))

	require.NoError(t, os.Remove(plain))
	require.NoError(t, os.Remove(script))

	_, err = process(t, newConfig(true, config.EncodingBase64, plain+".enc", script+".enc"), key)
	require.NoError(t, err)

	decrypted, err := os.ReadFile(plain)
	require.NoError(t, err)
	assert.Equal(t, binaryPayload(), decrypted)

	info, err := os.Stat(script)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o711), info.Mode().Perm(), "executable bit restored")
}

func TestEachFileStartsFromTheKey(t *testing.T) {
	t.Parallel()

	key := newKey(t, 2)
	dir := t.TempDir()

	first := filepath.Join(dir, "a.txt")
	second := filepath.Join(dir, "b.txt")

	for _, f := range []string{first, second} {
		require.NoError(t, os.WriteFile(f, []byte("identical content"), 0o600))
	}

	_, err := process(t, newConfig(false, config.EncodingBase64, first, second), key)
	require.NoError(t, err)

	a, err := os.ReadFile(first + ".enc")
	require.NoError(t, err)

	b, err := os.ReadFile(second + ".enc")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestTextEncoding(t *testing.T) {
	t.Parallel()

	key := newKey(t, 3)

	t.Run("alphabet payload", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "msg.txt")
		require.NoError(t, os.WriteFile(path, []byte("AttackAtDawn+42/7"), 0o600))

		_, err := process(t, newConfig(false, config.EncodingText, path), key)
		require.NoError(t, err)

		out := path + ".enc"

		cfg := newConfig(true, config.EncodingText, out)
		cfg.Suffixes.Decrypt = ".out"

		_, err = process(t, cfg, key)
		require.NoError(t, err)

		got, err := os.ReadFile(path + ".out")
		require.NoError(t, err)
		assert.Equal(t, "AttackAtDawn+42/7", string(got))
	})

	t.Run("byte outside alphabet aborts", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "spaces.txt")
		require.NoError(t, os.WriteFile(path, []byte("Attack at Dawn"), 0o600))

		output, err := process(t, newConfig(false, config.EncodingText, path), key)
		require.ErrorIs(t, err, mirrorfield.ErrCharacterNotInAlphabet)
		assert.Contains(t, output, "Error processing")

		_, statErr := os.Stat(path + ".enc")
		require.ErrorIs(t, statErr, os.ErrNotExist)

		leftovers, globErr := filepath.Glob(filepath.Join(dir, ".tmp-*"))
		require.NoError(t, globErr)
		assert.Empty(t, leftovers)
	})
}

func TestWrongKey(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "secret")
	require.NoError(t, os.WriteFile(path, []byte("payload"), 0o600))

	_, err := process(t, newConfig(false, config.EncodingBase64, path), newKey(t, 4))
	require.NoError(t, err)

	_, err = process(t, newConfig(true, config.EncodingBase64, path+".enc"), newKey(t, 5))
	require.ErrorIs(t, err, encryption.ErrKeyMismatch)
}

func TestDeleteOriginals(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "gone.txt")
	require.NoError(t, os.WriteFile(path, []byte("bye"), 0o600))

	cfg := newConfig(false, config.EncodingBase64, path)
	cfg.Delete = true

	_, err := process(t, cfg, newKey(t, 6))
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = os.Stat(path + ".enc")
	require.NoError(t, err)
}

func TestDeleteKeepsOutputWrittenInPlace(t *testing.T) {
	t.Parallel()

	key := newKey(t, 6)
	dir := t.TempDir()
	path := filepath.Join(dir, "secret")
	require.NoError(t, os.WriteFile(path, []byte("keep me"), 0o600))

	_, err := process(t, newConfig(false, config.EncodingBase64, path), key)
	require.NoError(t, err)

	// Without the encrypted suffix the decrypted output lands on the input path.
	require.NoError(t, os.Rename(path+".enc", path))

	cfg := newConfig(true, config.EncodingBase64, path)
	cfg.Delete = true

	out, err := process(t, cfg, key)
	require.NoError(t, err)
	assert.Contains(t, out, "Not deleting")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(got))
}

func TestStreamRoundTrip(t *testing.T) {
	t.Parallel()

	key := newKey(t, 7)

	for _, encoding := range []string{config.EncodingBase64, config.EncodingText} {
		t.Run(encoding, func(t *testing.T) {
			t.Parallel()

			input := []byte(keyfile.Alphabet + keyfile.Alphabet)
			if encoding == config.EncodingBase64 {
				input = binaryPayload()
			}

			enc, err := encryption.NewProcessor(newConfig(false, encoding), key)
			require.NoError(t, err)

			var cipher bytes.Buffer
			require.NoError(t, enc.ProcessStream(bytes.NewReader(input), &cipher))
			assert.True(t, strings.HasPrefix(cipher.String(), "MIRR"))

			dec, err := encryption.NewProcessor(newConfig(true, encoding), key)
			require.NoError(t, err)

			var plain bytes.Buffer
			require.NoError(t, dec.ProcessStream(&cipher, &plain))
			assert.Equal(t, input, plain.Bytes())
		})
	}
}

func TestDecryptRejectsBadEnvelopes(t *testing.T) {
	t.Parallel()

	key := newKey(t, 8)

	enc, err := encryption.NewProcessor(newConfig(false, config.EncodingBase64), key)
	require.NoError(t, err)

	var valid bytes.Buffer
	require.NoError(t, enc.ProcessStream(strings.NewReader("hello"), &valid))

	tests := []struct {
		name   string
		mutate func([]byte) []byte
	}{
		{name: "short", mutate: func(b []byte) []byte { return b[:3] }},
		{name: "magic", mutate: func(b []byte) []byte { b[0] = 'X'; return b }},
		{name: "version", mutate: func(b []byte) []byte { b[4] = 9; return b }},
		{name: "flags", mutate: func(b []byte) []byte { b[5] |= 0x80; return b }},
		{name: "fingerprint", mutate: func(b []byte) []byte { b[6] ^= 0xff; return b }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := tt.mutate(bytes.Clone(valid.Bytes()))

			dec, err := encryption.NewProcessor(newConfig(true, config.EncodingBase64), key)
			require.NoError(t, err)

			require.Error(t, dec.ProcessStream(bytes.NewReader(data), io.Discard))
		})
	}
}

func TestAlphabetCoverage(t *testing.T) {
	t.Parallel()

	raw := bytes.Repeat([]byte{' '}, mirrorfield.Cells)
	for i := range mirrorfield.Slots {
		raw = append(raw, byte(0x80+i))
	}

	path := filepath.Join(t.TempDir(), "high")
	require.NoError(t, keyfile.Write(path, raw, false))

	key, err := keyfile.Open(path)
	require.NoError(t, err)

	_, err = encryption.NewProcessor(newConfig(false, config.EncodingBase64), key)
	require.ErrorIs(t, err, encryption.ErrAlphabetCoverage)

	_, err = encryption.NewProcessor(newConfig(false, config.EncodingText), key)
	require.NoError(t, err)
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	enc := newConfig(false, config.EncodingBase64)
	dec := newConfig(true, config.EncodingBase64)
	dec.Suffixes.Decrypt = ".dec"

	assert.Equal(t, filepath.Join("dir", "a.txt.enc"), encryption.OutputPath("dir/a.txt", enc))
	assert.Equal(t, filepath.Join("dir", "a.txt.dec"), encryption.OutputPath("dir/a.txt.enc", dec))
}
