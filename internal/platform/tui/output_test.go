package tui

import (
	"bytes"
	"regexp"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/bubblepop/internal/haptic"
)

// trickleWriter copies one byte at a time and yields in between, so
// unsynchronized writers would interleave.
type trickleWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *trickleWriter) Write(p []byte) (int, error) {
	for _, b := range p {
		w.mu.Lock()
		w.buf.WriteByte(b)
		w.mu.Unlock()
		runtime.Gosched()
	}
	return len(p), nil
}

func (w *trickleWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

// fakeTTY stands in for a terminal file.
type fakeTTY struct {
	bytes.Buffer
	closed bool
}

func (f *fakeTTY) Fd() uintptr { return 42 }

func (f *fakeTTY) Close() error {
	f.closed = true
	return nil
}

func TestBellNeverSplitsAFrame(t *testing.T) {
	tw := &trickleWriter{}
	out := NewOutput(tw)
	bell, err := haptic.New(haptic.ModeBell, out)
	require.NoError(t, err)

	frame := "[" + strings.Repeat("x", 64) + "]"
	programOut := out.programWriter()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 50 {
			_, _ = programOut.Write([]byte(frame))
		}
	}()
	go func() {
		defer wg.Done()
		for range 50 {
			_ = bell.Pulse(time.Millisecond)
		}
	}()
	wg.Wait()

	got := tw.String()
	assert.Regexp(t, regexp.MustCompile(`^(\[x{64}\]|\a)*$`), got)
	assert.Equal(t, 50, strings.Count(got, "\a"))
	assert.Equal(t, 50, strings.Count(got, frame))
}

func TestProgramWriterKeepsTerminalDescriptor(t *testing.T) {
	tty := &fakeTTY{}
	w := NewOutput(tty).programWriter()

	f, ok := w.(termFile)
	require.True(t, ok, "terminal output must stay a terminal for Bubble Tea")
	assert.Equal(t, uintptr(42), f.Fd())

	_, err := f.Write([]byte("frame"))
	require.NoError(t, err)
	assert.Equal(t, "frame", tty.String())

	require.NoError(t, f.Close())
	assert.False(t, tty.closed, "closing the program output leaves the terminal open")
}

func TestProgramWriterPlainStream(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput(&buf)

	_, isFile := out.programWriter().(termFile)
	assert.False(t, isFile)
	assert.Same(t, out, out.programWriter())
}

func TestProgramOptionsUseSharedOutput(t *testing.T) {
	assert.Len(t, programOptions(nil), 1)
	assert.Len(t, programOptions(NewOutput(&bytes.Buffer{})), 2)
}
