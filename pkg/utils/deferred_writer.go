// Package utils holds small IO helpers shared by commands.
package utils

import (
	"bytes"
	"io"
	"sync"
)

// DeferredWriter holds writes in memory until Flush. Commands that take over
// the terminal (the TUI) route printer output here and flush it on exit.
// Safe for concurrent use.
type DeferredWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

var _ io.Writer = (*DeferredWriter)(nil)

// Write stores p in the buffer.
func (d *DeferredWriter) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Write(p)
}

// Pending reports whether anything is waiting to be flushed.
func (d *DeferredWriter) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Len() > 0
}

// Flush copies the buffered bytes to w and empties the buffer.
func (d *DeferredWriter) Flush(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.buf.Len() == 0 {
		return nil
	}
	_, err := d.buf.WriteTo(w)
	return err
}
