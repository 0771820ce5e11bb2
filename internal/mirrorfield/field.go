package mirrorfield

import (
	"fmt"
	"io"
	"time"
)

// Field is the complete cipher state for one session.
type Field struct {
	grid      [Cells]Mirror
	perimeter [Slots]byte

	// visited is scratch space for a single traversal.
	visited [Cells]bool

	// odd is the parity bit, flipped once per traversal.
	odd bool

	// lastStart and lastEnd remember the slots of the previous roll.
	lastStart int
	lastEnd   int

	validated bool

	observer Observer
	delay    time.Duration
}

// New returns an empty field. It must be loaded and validated before use.
func New(opts ...Option) *Field {
	f := &Field{
		lastStart: -1,
		lastEnd:   -1,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Open loads a field from r and validates it.
func Open(r io.Reader, opts ...Option) (*Field, error) {
	f := New(opts...)

	if err := f.Load(r); err != nil {
		return nil, fmt.Errorf("loading field: %w", err)
	}

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("validating field: %w", err)
	}

	return f, nil
}

// Clone returns an independent copy of the field, including its session state.
// The observer is shared.
func (f *Field) Clone() *Field {
	c := *f

	return &c
}

// Snapshot returns a copy of the grid and perimeter.
func (f *Field) Snapshot() Snapshot {
	return Snapshot{Grid: f.grid, Perimeter: f.perimeter}
}

// Alphabet returns the perimeter bytes in slot order.
func (f *Field) Alphabet() []byte {
	alphabet := make([]byte, Slots)
	copy(alphabet, f.perimeter[:])

	return alphabet
}

// Contains reports whether ch is on the perimeter.
func (f *Field) Contains(ch byte) bool {
	_, ok := f.slotOf(ch)

	return ok
}

func (f *Field) slotOf(ch byte) (int, bool) {
	for slot, c := range f.perimeter {
		if c == ch {
			return slot, true
		}
	}

	return 0, false
}
