package proto

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Sink delivers a packed frame to wherever the panel reads it from.
type Sink interface {
	Name() string
	Send(frame []byte) error
}

// Progress tees w into a byte progress bar of the given size.
func Progress(w io.Writer, size int64, desc string) io.Writer {
	return io.MultiWriter(w, progressbar.DefaultBytes(size, desc))
}
