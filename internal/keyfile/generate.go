package keyfile

import (
	crand "crypto/rand"
	"fmt"
	"math/rand/v2"

	"github.com/idelchi/mirrorcrypt/internal/mirrorfield"
)

// Alphabet is the perimeter alphabet of generated keys.
// It matches the standard base64 alphabet so any base64 payload can be encrypted.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// mirrorDensity is the inverse probability of each of the two diagonal orientations.
const mirrorDensity = 6

// Generate returns raw key material derived deterministically from seed.
// Each cell is '/' or '\' with probability 1/mirrorDensity each, otherwise empty.
// The perimeter is a shuffle of Alphabet.
func Generate(seed [32]byte) []byte {
	rng := rand.New(rand.NewChaCha8(seed)) //nolint:gosec // seeded from crypto/rand by GenerateRandom

	raw := make([]byte, mirrorfield.FieldSize)

	for i := range mirrorfield.Cells {
		switch rng.IntN(mirrorDensity) {
		case 1:
			raw[i] = mirrorfield.Forward.Symbol()
		case 2:
			raw[i] = mirrorfield.Backward.Symbol()
		default:
			raw[i] = mirrorfield.None.Symbol()
		}
	}

	perimeter := raw[mirrorfield.Cells:]
	copy(perimeter, Alphabet)

	rng.Shuffle(len(perimeter), func(i, j int) {
		perimeter[i], perimeter[j] = perimeter[j], perimeter[i]
	})

	return raw
}

// GenerateRandom returns raw key material from a random seed.
func GenerateRandom() ([]byte, error) {
	var seed [32]byte

	if _, err := crand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("reading random seed: %w", err)
	}

	return Generate(seed), nil
}
