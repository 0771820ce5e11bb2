package encryption

import (
	"bytes"
	"fmt"

	"github.com/idelchi/mirrorcrypt/internal/keyfile"
)

const (
	envelopeMagic   = "MIRR"
	envelopeVersion = byte(1)

	envelopeFlagExec   = 0x01
	envelopeFlagBase64 = 0x02

	envelopeKnownFlags = envelopeFlagExec | envelopeFlagBase64
)

const envelopeHeaderSize = len(envelopeMagic) + 2 + keyfile.FingerprintSize

// envelope describes an encrypted payload.
type envelope struct {
	executable  bool
	base64      bool
	fingerprint []byte
}

func (e envelope) header() []byte {
	header := make([]byte, envelopeHeaderSize)
	copy(header, envelopeMagic)

	header[len(envelopeMagic)] = envelopeVersion

	var flags byte

	if e.executable {
		flags |= envelopeFlagExec
	}

	if e.base64 {
		flags |= envelopeFlagBase64
	}

	header[len(envelopeMagic)+1] = flags
	copy(header[len(envelopeMagic)+2:], e.fingerprint)

	return header
}

func parseEnvelopeHeader(header []byte) (envelope, error) {
	if len(header) != envelopeHeaderSize {
		return envelope{}, fmt.Errorf("%w: envelope header too short", ErrProcessing)
	}

	if !bytes.Equal(header[:len(envelopeMagic)], []byte(envelopeMagic)) {
		return envelope{}, fmt.Errorf("%w: invalid envelope magic", ErrProcessing)
	}

	version := header[len(envelopeMagic)]
	if version != envelopeVersion {
		return envelope{}, fmt.Errorf("%w: unsupported envelope version %d", ErrProcessing, version)
	}

	flags := header[len(envelopeMagic)+1]
	if flags&^envelopeKnownFlags != 0 {
		return envelope{}, fmt.Errorf("%w: unsupported envelope flags %#02x", ErrProcessing, flags)
	}

	return envelope{
		executable:  flags&envelopeFlagExec != 0,
		base64:      flags&envelopeFlagBase64 != 0,
		fingerprint: bytes.Clone(header[len(envelopeMagic)+2:]),
	}, nil
}
