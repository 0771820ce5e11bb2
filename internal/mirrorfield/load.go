package mirrorfield

import (
	"errors"
	"fmt"
	"io"
)

// Load reads exactly FieldSize bytes from r. The first Cells bytes are mirror
// symbols in row-major order, the remaining Slots bytes are the perimeter.
// Load resets the session state; Validate must succeed before Crypt is used.
func (f *Field) Load(r io.Reader) error {
	var raw [FieldSize]byte

	if n, err := io.ReadFull(r, raw[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: got %d of %d bytes", ErrTruncatedFieldData, n, FieldSize)
		}

		return fmt.Errorf("reading field data: %w", err)
	}

	var grid [Cells]Mirror

	for i, symbol := range raw[:Cells] {
		m, ok := ParseMirror(symbol)
		if !ok {
			return fmt.Errorf("%w: symbol %q at row %d, column %d",
				ErrMalformedFieldData, symbol, i/GridSize, i%GridSize)
		}

		grid[i] = m
	}

	f.grid = grid
	copy(f.perimeter[:], raw[Cells:])

	f.odd = false
	f.lastStart, f.lastEnd = -1, -1
	f.validated = false

	return nil
}

// Validate checks that every cell holds a known orientation and that
// no byte appears twice on the perimeter.
func (f *Field) Validate() error {
	f.validated = false

	for i, m := range f.grid {
		if !m.Valid() {
			return fmt.Errorf("%w: cell %d holds %d", ErrInvalidGridState, i, uint8(m))
		}
	}

	var seen [256]int

	for slot, ch := range f.perimeter {
		if prev := seen[ch]; prev != 0 {
			return fmt.Errorf("%w: %q in slots %d and %d", ErrDuplicateAlphabetCharacter, ch, prev-1, slot)
		}

		seen[ch] = slot + 1
	}

	f.validated = true

	return nil
}
