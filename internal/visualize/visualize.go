// Package visualize renders the mirror field to a terminal while a ray travels through it.
package visualize

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/idelchi/mirrorcrypt/internal/mirrorfield"
)

// Terminal is a mirrorfield.Observer drawing every traversal step.
// It is not safe for concurrent use.
type Terminal struct {
	out   *termenv.Output
	drawn bool
	steps int
}

// New returns a Terminal writing to w.
func New(w io.Writer, opts ...termenv.OutputOption) *Terminal {
	return &Terminal{out: termenv.NewOutput(w, opts...)}
}

// Observe redraws the field with the cell at row, col highlighted, then waits for delay.
func (t *Terminal) Observe(snap mirrorfield.Snapshot, row, col int, delay time.Duration) {
	if t.drawn {
		t.out.MoveCursor(1, 1)
	} else {
		t.out.ClearScreen()
		t.drawn = true
	}

	t.steps++

	t.out.WriteString(t.render(&snap, row, col)) //nolint:errcheck

	time.Sleep(delay)
}

func (t *Terminal) render(snap *mirrorfield.Snapshot, row, col int) string {
	const n = mirrorfield.GridSize

	var b strings.Builder

	edge := func(offset int) {
		b.WriteString("   ")

		for c := range n {
			fmt.Fprintf(&b, " %02x", snap.Perimeter[offset+c])
		}

		b.WriteString("\n")
	}

	edge(0)

	for r := range n {
		fmt.Fprintf(&b, "%02x ", snap.Perimeter[2*n+r])

		for c := range n {
			symbol := string(snap.Mirror(r, c).Symbol())
			if r == row && c == col {
				symbol = t.out.String(symbol).Reverse().String()
			}

			b.WriteString("  ")
			b.WriteString(symbol)
		}

		fmt.Fprintf(&b, " %02x\n", snap.Perimeter[n+r])
	}

	edge(3 * n)

	fmt.Fprintf(&b, "step %-6d cell (%2d,%2d)\n", t.steps, row, col)

	return b.String()
}
