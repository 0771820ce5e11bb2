package mirrorfield

const (
	// rollStep is the stride used to move a roll target off a forbidden slot.
	rollStep = GridSize / 2
	// rollCycle is the number of distinct slots reachable by repeated rollStep strides.
	rollCycle = Slots / rollStep
)

// roll swaps the bytes at start and end with bytes elsewhere on the perimeter
// so the next lookup of either byte enters the grid somewhere else.
// The larger byte moves first; order only matters when both targets coincide.
func (f *Field) roll(start, end int) {
	startTarget := f.rollTarget(start, start, end)
	endTarget := f.rollTarget(end, start, end)

	if f.perimeter[start] > f.perimeter[end] {
		f.swap(start, startTarget)
		f.swap(end, endTarget)
	} else {
		f.swap(end, endTarget)
		f.swap(start, startTarget)
	}

	f.lastStart, f.lastEnd = start, end
}

// rollTarget derives the destination of slot from its byte and its neighbour's byte.
func (f *Field) rollTarget(slot, start, end int) int {
	neighbor := slot - 1
	if slot == 0 {
		neighbor = 1
	}

	target := (slot + int(f.perimeter[slot]) + int(f.perimeter[neighbor])) % Slots

	for range rollCycle {
		if !f.forbidden(target, start, end) {
			return target
		}

		target = (target + rollStep) % Slots
	}

	for range Slots {
		if !f.forbidden(target, start, end) {
			return target
		}

		target = (target + 1) % Slots
	}

	return target
}

// forbidden reports whether target is one of the current or previous roll slots.
func (f *Field) forbidden(target, start, end int) bool {
	return target == start || target == end || target == f.lastStart || target == f.lastEnd
}

func (f *Field) swap(a, b int) {
	f.perimeter[a], f.perimeter[b] = f.perimeter[b], f.perimeter[a]
}
