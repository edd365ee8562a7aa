// Package shell implements the host side of the engine boundary. The shell
// hands an engine its start-up flags, then absorbs the engine's outbound
// notifications: high scores go to durable storage, haptic requests go to
// the device. Environment failures never reach the engine.
package shell

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bubblepop/internal/core"
	"github.com/vovakirdan/bubblepop/internal/engine"
	"github.com/vovakirdan/bubblepop/internal/haptic"
	"github.com/vovakirdan/bubblepop/internal/kv"
)

// HighScoreKey is the storage key the high score is persisted under.
const HighScoreKey = "highScore"

// DefaultPulse is the duration of one haptic pulse.
const DefaultPulse = 40 * time.Millisecond

var (
	// ErrNoSurface is returned when Initialize is given no surface to mount on.
	ErrNoSurface = errors.New("shell: presentation surface is missing")

	// ErrAlreadyRunning is returned when Initialize is called twice.
	ErrAlreadyRunning = errors.New("shell: already running")
)

// State is the lifecycle state of a Shell.
type State int

const (
	Uninitialized State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// Shell bridges an engine and its environment.
// A Shell is driven from a single event loop and is not safe for
// concurrent use.
type Shell struct {
	store  kv.Store
	device haptic.Device
	logger *log.Logger
	key    string
	pulse  time.Duration

	state   State
	flags   engine.InitFlags
	engine  engine.Engine
	surface *core.Screen
}

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the logger. Defaults to a logger that discards output.
func WithLogger(l *log.Logger) Option {
	return func(s *Shell) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Shell) {
		if key != "" {
			s.key = key
		}
	}
}

// WithPulse overrides the haptic pulse duration.
func WithPulse(d time.Duration) Option {
	return func(s *Shell) {
		if d > 0 {
			s.pulse = d
		}
	}
}

// New creates an uninitialized shell. A nil device behaves like a device
// without haptic capability.
func New(store kv.Store, device haptic.Device, opts ...Option) *Shell {
	if device == nil {
		device = haptic.None{}
	}
	s := &Shell{
		store:  store,
		device: device,
		logger: log.New(io.Discard),
		key:    HighScoreKey,
		pulse:  DefaultPulse,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize reads the persisted high score, hands it to the engine and
// mounts the engine on surface. A missing surface is the only fatal error;
// storage problems degrade to "no prior high score".
func (s *Shell) Initialize(e engine.Engine, surface *core.Screen, cfg core.RuntimeConfig) error {
	if s.state == Running {
		return ErrAlreadyRunning
	}
	if surface == nil {
		return ErrNoSurface
	}

	s.flags = s.readFlags()
	e.Init(s.flags, cfg)

	s.engine = e
	s.surface = surface
	s.state = Running

	hs, ok := s.flags.HighScore()
	s.logger.Info("engine mounted", "engine", e.ID(), "high_score", hs, "has_high_score", ok)
	return nil
}

func (s *Shell) readFlags() engine.InitFlags {
	if s.store == nil {
		return engine.InitFlags{}
	}

	raw, ok, err := s.store.Get(s.key)
	if err != nil {
		s.logger.Debug("high score read failed", "key", s.key, "error", err)
		return engine.InitFlags{}
	}
	if !ok {
		return engine.InitFlags{}
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		s.logger.Debug("ignoring malformed high score", "key", s.key, "value", raw)
		return engine.InitFlags{}
	}
	return engine.NewInitFlags(v)
}

// OnHighScoreReported persists v, replacing whatever was stored.
// The write is not compared against the stored value.
func (s *Shell) OnHighScoreReported(v int) {
	if s.store == nil {
		return
	}
	if err := s.store.Set(s.key, strconv.Itoa(v)); err != nil {
		s.logger.Debug("high score write dropped", "key", s.key, "value", v, "error", err)
	}
}

// OnHapticRequested fires one pulse. Devices without capability are ignored.
func (s *Shell) OnHapticRequested() {
	err := s.device.Pulse(s.pulse)
	switch {
	case err == nil, errors.Is(err, haptic.ErrUnsupported):
	default:
		s.logger.Debug("haptic pulse failed", "error", err)
	}
}

// Dispatch routes events to their handlers in order. Every event is
// handled; nothing is coalesced.
func (s *Shell) Dispatch(events []core.Event) {
	for _, ev := range events {
		switch ev := ev.(type) {
		case core.HighScoreReported:
			s.OnHighScoreReported(ev.Score)
		case core.HapticRequested:
			s.OnHapticRequested()
		default:
			s.logger.Debug("ignoring unknown event", "type", fmt.Sprintf("%T", ev))
		}
	}
}

// Step advances the mounted engine one tick and dispatches its events.
func (s *Shell) Step(in core.InputFrame) core.StepResult {
	if s.state != Running {
		return core.StepResult{}
	}
	result := s.engine.Step(in)
	s.Dispatch(result.Events)
	return result
}

// Render clears the surface and lets the engine draw into it.
func (s *Shell) Render() *core.Screen {
	if s.state != Running {
		return s.surface
	}
	s.surface.Clear()
	s.engine.Render(s.surface)
	return s.surface
}

// State returns the shell's lifecycle state.
func (s *Shell) State() State {
	return s.state
}

// InitFlags returns the flags handed to the engine.
func (s *Shell) InitFlags() engine.InitFlags {
	return s.flags
}

// Engine returns the mounted engine, or nil before Initialize.
func (s *Shell) Engine() engine.Engine {
	return s.engine
}

// Surface returns the surface the engine is mounted on.
func (s *Shell) Surface() *core.Screen {
	return s.surface
}
