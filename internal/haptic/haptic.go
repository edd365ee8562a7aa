// Package haptic provides the device primitive behind the host's haptic
// channel. Terminals cannot vibrate, so pulses are rendered as a terminal
// bell or a short visual flash of the play field.
package haptic

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

// ErrUnsupported is returned by devices without haptic capability.
var ErrUnsupported = errors.New("haptic: device has no haptic capability")

// Mode names a device kind in configuration.
type Mode string

const (
	ModeBell  Mode = "bell"
	ModeFlash Mode = "flash"
	ModeOff   Mode = "off"
)

// Device triggers one discrete haptic pulse of the given duration.
type Device interface {
	Pulse(d time.Duration) error
}

// New builds the device for a mode. Bell pulses are written to w.
func New(mode Mode, w io.Writer) (Device, error) {
	switch mode {
	case ModeBell:
		if w == nil {
			return None{}, nil
		}
		return NewBell(w), nil
	case ModeFlash:
		return NewFlash(nil), nil
	case ModeOff, "":
		return None{}, nil
	default:
		return nil, fmt.Errorf("haptic: unknown mode %q", mode)
	}
}

// None is a device without haptic capability.
type None struct{}

// Pulse always reports ErrUnsupported.
func (None) Pulse(time.Duration) error {
	return ErrUnsupported
}

// Bell rings the terminal bell. The duration is ignored; a bell is as long
// as the terminal makes it.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBell returns a bell writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// Pulse writes one BEL character.
func (b *Bell) Pulse(time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := io.WriteString(b.w, "\a"); err != nil {
		return fmt.Errorf("haptic: bell: %w", err)
	}
	return nil
}

// Flash marks the play field as flashing for the pulse duration.
// The renderer polls Active on every frame.
type Flash struct {
	mu    sync.Mutex
	until time.Time
	now   func() time.Time
}

// NewFlash returns a flash device. A nil clock uses time.Now.
func NewFlash(now func() time.Time) *Flash {
	if now == nil {
		now = time.Now
	}
	return &Flash{now: now}
}

// Pulse starts (or extends) the flash.
func (f *Flash) Pulse(d time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	until := f.now().Add(d)
	if until.After(f.until) {
		f.until = until
	}
	return nil
}

// Active reports whether the flash is still running.
func (f *Flash) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now().Before(f.until)
}

// Recorder records pulses instead of emitting them.
type Recorder struct {
	mu     sync.Mutex
	pulses []time.Duration
}

// Pulse records d.
func (r *Recorder) Pulse(d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pulses = append(r.pulses, d)
	return nil
}

// Count returns the number of recorded pulses.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pulses)
}

// Pulses returns a copy of the recorded durations.
func (r *Recorder) Pulses() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.pulses...)
}
