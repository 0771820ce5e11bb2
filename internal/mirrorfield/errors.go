package mirrorfield

import "errors"

var (
	// ErrMalformedFieldData is returned when a grid symbol is not one of '/', '\', '-' or ' '.
	ErrMalformedFieldData = errors.New("malformed field data")
	// ErrTruncatedFieldData is returned when the source ends before FieldSize bytes.
	ErrTruncatedFieldData = errors.New("truncated field data")
	// ErrInvalidGridState is returned when a cell holds a value outside the four orientations.
	ErrInvalidGridState = errors.New("invalid grid state")
	// ErrDuplicateAlphabetCharacter is returned when two perimeter slots hold the same byte.
	ErrDuplicateAlphabetCharacter = errors.New("duplicate alphabet character")
	// ErrCharacterNotInAlphabet is returned when Crypt receives a byte absent from the perimeter.
	ErrCharacterNotInAlphabet = errors.New("character not in alphabet")
	// ErrFieldNotValidated is returned when Crypt is called before a successful Validate.
	ErrFieldNotValidated = errors.New("field not validated")
	// ErrTraversalBound is returned when a ray fails to leave the grid within the step bound.
	ErrTraversalBound = errors.New("traversal exceeded step bound")
)
