package mirrorfield

import "fmt"

// maxSteps bounds a traversal. With revisited mirrors un-spun before use, every
// cell acts with its starting orientation for the whole pass, so no cell and
// heading pair can repeat.
const maxSteps = 4 * Cells

// Crypt substitutes ch and advances the field state.
// Encryption and decryption are the same call.
func (f *Field) Crypt(ch byte) (byte, error) {
	if !f.validated {
		return 0, ErrFieldNotValidated
	}

	start, ok := f.slotOf(ch)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrCharacterNotInAlphabet, ch)
	}

	f.odd = !f.odd

	end, err := f.traverse(start)
	if err != nil {
		return 0, err
	}

	out := disambiguate(&f.perimeter, start, end, f.odd)

	f.roll(start, end)

	return out, nil
}

// traverse fires a ray from start and returns the slot where it leaves the grid.
func (f *Field) traverse(start int) (int, error) {
	clear(f.visited[:])

	row, col, dir := entry(start)

	for range maxSteps {
		cell := row*GridSize + col

		if f.observer != nil {
			f.observer.Observe(f.Snapshot(), row, col, f.delay)
		}

		if f.visited[cell] {
			f.grid[cell] = f.grid[cell].unspin()
		}

		dir = deflect(f.grid[cell], dir)

		if f.grid[cell] != None {
			f.grid[cell] = f.grid[cell].spin()
			f.visited[cell] = true
		}

		var (
			end    int
			exited bool
		)

		row, col, end, exited = advance(row, col, dir)
		if exited {
			return end, nil
		}
	}

	return 0, fmt.Errorf("%w: ray from slot %d", ErrTraversalBound, start)
}

// entry maps a perimeter slot to the first cell and heading of a ray.
func entry(slot int) (row, col int, dir Direction) {
	switch {
	case slot < GridSize:
		return 0, slot, Down
	case slot < 2*GridSize:
		return slot - GridSize, GridSize - 1, Left
	case slot < 3*GridSize:
		return slot - 2*GridSize, 0, Right
	default:
		return GridSize - 1, slot - 3*GridSize, Up
	}
}

// advance moves one cell along dir. When the ray leaves the grid it reports
// the perimeter slot it crosses.
func advance(row, col int, dir Direction) (int, int, int, bool) {
	switch dir {
	case Down:
		if row++; row == GridSize {
			return row, col, 3*GridSize + col, true
		}
	case Left:
		if col--; col < 0 {
			return row, col, 2*GridSize + row, true
		}
	case Right:
		if col++; col == GridSize {
			return row, col, GridSize + row, true
		}
	case Up:
		if row--; row < 0 {
			return row, col, col, true
		}
	}

	return row, col, 0, false
}
