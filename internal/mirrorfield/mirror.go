package mirrorfield

import "fmt"

const (
	// GridSize is the width and height of the mirror grid.
	GridSize = 16
	// Cells is the number of mirrors in the grid.
	Cells = GridSize * GridSize
	// Slots is the number of perimeter positions.
	Slots = 4 * GridSize
	// FieldSize is the number of raw bytes consumed by Load.
	FieldSize = Cells + Slots
)

// Mirror is the orientation of a single grid cell.
type Mirror uint8

// The spinning orientations form the cycle Forward -> Straight -> Backward -> Forward.
// None never spins.
const (
	Forward Mirror = iota
	Straight
	Backward
	None
)

// ParseMirror decodes a key file symbol.
func ParseMirror(symbol byte) (Mirror, bool) {
	switch symbol {
	case '/':
		return Forward, true
	case '-':
		return Straight, true
	case '\\':
		return Backward, true
	case ' ':
		return None, true
	default:
		return 0, false
	}
}

// Symbol returns the key file symbol of the mirror.
func (m Mirror) Symbol() byte {
	switch m {
	case Forward:
		return '/'
	case Straight:
		return '-'
	case Backward:
		return '\\'
	default:
		return ' '
	}
}

// Valid reports whether m is one of the four orientations.
func (m Mirror) Valid() bool {
	return m <= None
}

func (m Mirror) String() string {
	switch m {
	case Forward:
		return "forward"
	case Straight:
		return "straight"
	case Backward:
		return "backward"
	case None:
		return "none"
	default:
		return fmt.Sprintf("mirror(%d)", uint8(m))
	}
}

func (m Mirror) spin() Mirror {
	return (m + 1) % 3
}

func (m Mirror) unspin() Mirror {
	return (m + 2) % 3
}

// Direction is the heading of the ray.
type Direction uint8

// Ray headings.
const (
	Down Direction = iota
	Left
	Right
	Up
)

func (d Direction) String() string {
	switch d {
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// deflect returns the heading after the ray meets m.
// Straight and None cells pass the ray through unchanged.
func deflect(m Mirror, d Direction) Direction {
	switch m {
	case Forward:
		switch d {
		case Down:
			return Left
		case Left:
			return Down
		case Right:
			return Up
		case Up:
			return Right
		}
	case Backward:
		switch d {
		case Down:
			return Right
		case Right:
			return Down
		case Left:
			return Up
		case Up:
			return Left
		}
	}

	return d
}
