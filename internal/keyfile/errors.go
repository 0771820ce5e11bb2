package keyfile

import "errors"

var (
	// ErrKeyExists is returned when writing over an existing key without force.
	ErrKeyExists = errors.New("key file already exists")
	// ErrInvalidName is returned for key names that are not plain file names.
	ErrInvalidName = errors.New("invalid key name")
	// ErrTrailingKeyData is returned when a key file decodes to more than one field.
	ErrTrailingKeyData = errors.New("trailing data after key")
)
