package encryption

import (
	"fmt"
	"io"

	"github.com/idelchi/mirrorcrypt/internal/mirrorfield"
)

// streamingWriter substitutes every byte written through a field before passing it on.
type streamingWriter struct {
	w      io.Writer
	field  *mirrorfield.Field
	buffer []byte
	offset int64
}

// newStreamingWriter creates a writer that crypts data one byte at a time with field.
func newStreamingWriter(w io.Writer, field *mirrorfield.Field) *streamingWriter {
	return &streamingWriter{
		w:      w,
		field:  field,
		buffer: make([]byte, defaultBufferSize),
	}
}

// Write implements io.Writer. It stops at the first byte the field rejects.
func (sw *streamingWriter) Write(data []byte) (int, error) {
	var written int

	for len(data) > 0 {
		chunk := data[:min(len(data), len(sw.buffer))]
		out := sw.buffer[:len(chunk)]

		for i, ch := range chunk {
			c, err := sw.field.Crypt(ch)
			if err != nil {
				if _, werr := sw.w.Write(out[:i]); werr != nil {
					return written, fmt.Errorf("writing output: %w", werr)
				}

				return written + i, fmt.Errorf("byte %d: %w", sw.offset+int64(i), err)
			}

			out[i] = c
		}

		if _, err := sw.w.Write(out); err != nil {
			return written, fmt.Errorf("writing output: %w", err)
		}

		written += len(chunk)
		sw.offset += int64(len(chunk))
		data = data[len(chunk):]
	}

	return written, nil
}

// cryptReader substitutes every byte read from r through a field.
type cryptReader struct {
	r      io.Reader
	field  *mirrorfield.Field
	offset int64
}

func newCryptReader(r io.Reader, field *mirrorfield.Field) *cryptReader {
	return &cryptReader{r: r, field: field}
}

// Read implements io.Reader.
func (cr *cryptReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)

	for i := range n {
		c, cerr := cr.field.Crypt(p[i])
		if cerr != nil {
			return i, fmt.Errorf("byte %d: %w", cr.offset+int64(i), cerr)
		}

		p[i] = c
	}

	cr.offset += int64(n)

	return n, err
}
