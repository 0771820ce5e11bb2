package encryption

import "errors"

var (
	// ErrProcessing indicates an error during envelope processing.
	ErrProcessing = errors.New("envelope processing error")
	// ErrKeyMismatch is returned when data was encrypted with a different key.
	ErrKeyMismatch = errors.New("data was encrypted with a different key")
	// ErrAlphabetCoverage is returned when the key cannot encrypt base64 payloads.
	ErrAlphabetCoverage = errors.New("key alphabet does not cover the base64 alphabet")
)
