package tui

import (
	"io"
	"sync"
)

// termFile is what Bubble Tea looks for to treat its output as a terminal.
type termFile interface {
	io.ReadWriteCloser
	Fd() uintptr
}

// Output is the program's terminal stream. Rendered frames and haptic bells
// are written through the same lock, so a bell always lands between frames.
type Output struct {
	mu sync.Mutex
	w  io.Writer
}

// NewOutput wraps w. Hand the result to haptic.New and to Options.Output.
func NewOutput(w io.Writer) *Output {
	return &Output{w: w}
}

// Write writes p in one piece.
func (o *Output) Write(p []byte) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.w.Write(p)
}

// programWriter returns the writer for tea.WithOutput. A terminal keeps its
// descriptor visible so Bubble Tea can still size the window and set raw mode.
func (o *Output) programWriter() io.Writer {
	if f, ok := o.w.(termFile); ok {
		return &fileOutput{Output: o, f: f}
	}
	return o
}

type fileOutput struct {
	*Output
	f termFile
}

func (o *fileOutput) Read(p []byte) (int, error) { return o.f.Read(p) }
func (o *fileOutput) Fd() uintptr                { return o.f.Fd() }

// Close leaves the terminal open; it belongs to the caller.
func (o *fileOutput) Close() error { return nil }
