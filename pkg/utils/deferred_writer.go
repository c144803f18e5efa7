package utils

import (
	"bytes"
	"io"
	"sync"
)

// DeferredWriter holds log output while a full-screen program owns the
// terminal and replays it afterwards. Writes are split into lines; when
// MaxLines is positive only the most recent lines are kept. Safe for
// concurrent use.
type DeferredWriter struct {
	MaxLines int

	mu      sync.Mutex
	lines   [][]byte
	partial bytes.Buffer
	dropped int
}

// Write stores p, splitting it into complete lines.
func (d *DeferredWriter) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.partial.Write(p)
	for {
		data := d.partial.Bytes()
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		line := make([]byte, i+1)
		copy(line, data[:i+1])
		d.partial.Next(i + 1)
		d.push(line)
	}
	return len(p), nil
}

func (d *DeferredWriter) push(line []byte) {
	d.lines = append(d.lines, line)
	if d.MaxLines > 0 && len(d.lines) > d.MaxLines {
		over := len(d.lines) - d.MaxLines
		d.lines = d.lines[over:]
		d.dropped += over
	}
}

// Dropped returns how many lines were discarded because of MaxLines.
func (d *DeferredWriter) Dropped() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dropped
}

// Flush writes all buffered data to w, including any unterminated trailing
// line, and clears the buffer.
func (d *DeferredWriter) Flush(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, line := range d.lines {
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	d.lines = nil

	if d.partial.Len() > 0 {
		if _, err := d.partial.WriteTo(w); err != nil {
			return err
		}
	}
	return nil
}
