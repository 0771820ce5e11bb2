package mirrorfield

// disambiguate picks the output byte of a traversal. Normally it is the byte at
// the exit slot. When either slot holds a byte equal to its own index, odd
// calls return the entry byte instead so that the substitution stays invertible.
func disambiguate(perimeter *[Slots]byte, start, end int, odd bool) byte {
	fixed := int(perimeter[start]) == start || int(perimeter[end]) == end

	if fixed && odd {
		return perimeter[start]
	}

	return perimeter[end]
}
