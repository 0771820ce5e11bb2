package keyfile_test

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/mirrorcrypt/internal/keyfile"
	"github.com/idelchi/mirrorcrypt/internal/mirrorfield"
)

func seed(b byte) [32]byte {
	var s [32]byte
	for i := range s {
		s[i] = b + byte(i)
	}

	return s
}

func TestAlphabetFillsPerimeter(t *testing.T) {
	t.Parallel()

	require.Len(t, keyfile.Alphabet, mirrorfield.Slots)

	chars := strings.Split(keyfile.Alphabet, "")
	sort.Strings(chars)

	for i := 1; i < len(chars); i++ {
		require.NotEqual(t, chars[i-1], chars[i], "duplicate alphabet character")
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	raw := keyfile.Generate(seed(1))

	require.Len(t, raw, mirrorfield.FieldSize)
	assert.Equal(t, raw, keyfile.Generate(seed(1)), "same seed must yield the same key")
	assert.NotEqual(t, raw, keyfile.Generate(seed(2)))

	for i, symbol := range raw[:mirrorfield.Cells] {
		assert.Contains(t, []byte{'/', '\\', ' '}, symbol, "cell %d", i)
	}

	perimeter := []byte(string(raw[mirrorfield.Cells:]))
	sort.Slice(perimeter, func(i, j int) bool { return perimeter[i] < perimeter[j] })

	alphabet := []byte(keyfile.Alphabet)
	sort.Slice(alphabet, func(i, j int) bool { return alphabet[i] < alphabet[j] })

	assert.Equal(t, alphabet, perimeter)

	_, err := mirrorfield.Open(bytes.NewReader(raw))
	require.NoError(t, err)
}

func TestGenerateRandom(t *testing.T) {
	t.Parallel()

	first, err := keyfile.GenerateRandom()
	require.NoError(t, err)

	second, err := keyfile.GenerateRandom()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestWriteAndOpen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "keys", "work")
	raw := keyfile.Generate(seed(7))

	require.NoError(t, keyfile.Write(path, raw, false))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	encoded, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasSuffix(encoded, []byte("\n")))

	key, err := keyfile.Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, key.Path)
	assert.Equal(t, raw[mirrorfield.Cells:], key.Field.Alphabet())
	assert.Len(t, key.Fingerprint, keyfile.FingerprintSize)

	require.ErrorIs(t, keyfile.Write(path, raw, false), keyfile.ErrKeyExists)
	require.NoError(t, keyfile.Write(path, keyfile.Generate(seed(8)), true))

	replaced, err := keyfile.Open(path)
	require.NoError(t, err)
	assert.NotEqual(t, key.Fingerprint, replaced.Fingerprint)
}

func TestOpenRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("truncated", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(dir, "short")
		require.NoError(t, keyfile.Write(path, keyfile.Generate(seed(3))[:100], false))

		_, err := keyfile.Open(path)
		require.ErrorIs(t, err, mirrorfield.ErrTruncatedFieldData)
	})

	t.Run("duplicate alphabet", func(t *testing.T) {
		t.Parallel()

		raw := keyfile.Generate(seed(4))
		raw[mirrorfield.Cells] = raw[mirrorfield.Cells+1]

		path := filepath.Join(dir, "dup")
		require.NoError(t, keyfile.Write(path, raw, false))

		_, err := keyfile.Open(path)
		require.ErrorIs(t, err, mirrorfield.ErrDuplicateAlphabetCharacter)
	})

	t.Run("trailing data", func(t *testing.T) {
		t.Parallel()

		raw := append(keyfile.Generate(seed(5)), '/')

		path := filepath.Join(dir, "long")
		require.NoError(t, keyfile.Write(path, raw, false))

		_, err := keyfile.Open(path)
		require.ErrorIs(t, err, keyfile.ErrTrailingKeyData)
	})

	t.Run("not base64", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(dir, "garbage")
		require.NoError(t, os.WriteFile(path, []byte("!!!not a key!!!"), 0o600))

		_, err := keyfile.Open(path)
		require.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("missing without auto create", func(t *testing.T) {
		t.Parallel()

		_, err := keyfile.Load(filepath.Join(t.TempDir(), "absent"), false)
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("missing with auto create", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "fresh")

		created, err := keyfile.Load(path, true)
		require.NoError(t, err)

		reopened, err := keyfile.Load(path, true)
		require.NoError(t, err)

		assert.Equal(t, created.Fingerprint, reopened.Fingerprint)
		assert.Equal(t, created.Field.Snapshot(), reopened.Field.Snapshot())
	})
}

func TestResolve(t *testing.T) {
	t.Parallel()

	path, err := keyfile.Resolve("/keys", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/keys", keyfile.DefaultName), path)

	path, err = keyfile.Resolve("/keys", "work")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/keys", "work"), path)

	for _, name := range []string{"..", ".", "a/b", `a\b`} {
		_, err := keyfile.Resolve("/keys", name)
		require.ErrorIs(t, err, keyfile.ErrInvalidName, name)
	}
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	a, err := keyfile.Fingerprint(keyfile.Generate(seed(5)))
	require.NoError(t, err)

	again, err := keyfile.Fingerprint(keyfile.Generate(seed(5)))
	require.NoError(t, err)

	b, err := keyfile.Fingerprint(keyfile.Generate(seed(6)))
	require.NoError(t, err)

	assert.Equal(t, a, again)
	assert.NotEqual(t, a, b)
}
