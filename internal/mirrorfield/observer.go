package mirrorfield

import "time"

// Snapshot is a copy of the grid and perimeter at one point in time.
type Snapshot struct {
	Grid      [Cells]Mirror
	Perimeter [Slots]byte
}

// Mirror returns the orientation at row, col.
func (s *Snapshot) Mirror(row, col int) Mirror {
	return s.Grid[row*GridSize+col]
}

// Count returns the number of cells with orientation m.
func (s *Snapshot) Count(m Mirror) int {
	var n int

	for _, cell := range s.Grid {
		if cell == m {
			n++
		}
	}

	return n
}

// FixedPoints returns the slots whose byte value equals the slot index.
func (s *Snapshot) FixedPoints() []int {
	var slots []int

	for slot, ch := range s.Perimeter {
		if int(ch) == slot {
			slots = append(slots, slot)
		}
	}

	return slots
}

// Observer is notified once per traversal step with the cell the ray is on.
// It receives a copy of the field and cannot influence the cipher.
type Observer interface {
	Observe(snap Snapshot, row, col int, delay time.Duration)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(snap Snapshot, row, col int, delay time.Duration)

// Observe calls f.
func (f ObserverFunc) Observe(snap Snapshot, row, col int, delay time.Duration) {
	f(snap, row, col, delay)
}

// Option configures a Field.
type Option func(*Field)

// WithObserver installs an observer invoked on every traversal step with the given delay.
func WithObserver(observer Observer, delay time.Duration) Option {
	return func(f *Field) {
		f.observer = observer
		f.delay = delay
	}
}
