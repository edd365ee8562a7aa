package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bubblepop/internal/core"
	"github.com/vovakirdan/bubblepop/internal/engine"
	"github.com/vovakirdan/bubblepop/internal/haptic"
	"github.com/vovakirdan/bubblepop/internal/shell"
)

// helpHeight is the number of rows reserved below the surface for key help.
const helpHeight = 1

// RoundRecorder appends finished rounds to a score history.
type RoundRecorder interface {
	RecordRound(gameID string, score int) error
}

// resizer is implemented by engines that can adapt to a new terminal size
// without restarting.
type resizer interface {
	Resize(w, h int)
}

// Options holds the optional collaborators of a Model.
type Options struct {
	Rounds        RoundRecorder // nil disables score history
	Flash         *haptic.Flash // visual haptic device, if the shell uses one
	Logger        *log.Logger
	Output        *Output // terminal stream shared with a bell device; nil uses stdout
	ScreenshotDir string  // defaults to ~/.bubblepop/screenshots
}

// Model is the Bubble Tea model that drives one host shell.
type Model struct {
	shell      *shell.Shell
	engine     engine.Engine
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       Options
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	roundSaved bool // whether the current finished round has been recorded
}

// NewModel creates the presentation surface and mounts e on it through sh.
// The shell must not be initialized yet.
func NewModel(sh *shell.Shell, e engine.Engine, cfg core.RuntimeConfig, opts Options) (Model, error) {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	screen := core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpHeight, 1))
	engineCfg := cfg
	engineCfg.ScreenH = screen.Height()
	if err := sh.Initialize(e, screen, engineCfg); err != nil {
		return Model{}, fmt.Errorf("tui: mount engine: %w", err)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		shell:      sh,
		engine:     e,
		screen:     screen,
		config:     cfg,
		opts:       opts,
		keys:       DefaultKeyMap(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		gameState:  e.State(),
	}, nil
}

// Init starts the tick loop. The engine is already running.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		if _, err := m.saveScreenshot(); err != nil {
			m.opts.Logger.Warn("screenshot failed", "error", err)
		}
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.Action(msg)
	m.opts.Logger.Debug("key", "key", msg.String(), "action", action.String())
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-helpHeight, 1))
	m.help.Width = msg.Width

	if r, ok := m.engine.(resizer); ok {
		r.Resize(m.screen.Width(), m.screen.Height())
	}
	return m, nil
}

// handleTick advances the engine through the shell, which drains and
// dispatches the tick's events.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.shell.Step(m.inputFrame)
	m.inputFrame.Clear()

	// A restarted round can be recorded again once it ends
	if m.gameState.GameOver && !result.State.GameOver {
		m.roundSaved = false
	}
	m.gameState = result.State

	if m.gameState.GameOver && !m.roundSaved {
		m.recordRound()
		m.roundSaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

func (m Model) recordRound() {
	if m.opts.Rounds == nil || m.gameState.Score <= 0 {
		return
	}
	if err := m.opts.Rounds.RecordRound(m.engine.ID(), m.gameState.Score); err != nil {
		m.opts.Logger.Warn("round not recorded", "score", m.gameState.Score, "error", err)
		return
	}
	m.opts.Logger.Info("round recorded", "engine", m.engine.ID(), "score", m.gameState.Score)
}

// saveScreenshot writes the current surface to a text file and returns its path.
func (m Model) saveScreenshot() (string, error) {
	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("tui: screenshot dir: %w", err)
		}
		dir = filepath.Join(home, ".bubblepop", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: screenshot dir: %w", err)
	}

	s := m.shell.Render()
	if s == nil {
		return "", errors.New("tui: nothing to capture")
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.engine.ID(), timestamp))
	if err := os.WriteFile(path, []byte(s.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.shell.Render()
	flash := m.opts.Flash != nil && m.opts.Flash.Active()
	return RenderScreen(s, flash) + "\n" + m.help.View(m.keys)
}

// GameState returns the state reported by the last tick.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// Run mounts e through sh and runs the Bubble Tea program until the player quits.
func Run(sh *shell.Shell, e engine.Engine, cfg core.RuntimeConfig, opts Options) error {
	model, err := NewModel(sh, e, cfg, opts)
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(model, programOptions(opts.Output)...).Run()
	return err
}

func programOptions(out *Output) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if out != nil {
		opts = append(opts, tea.WithOutput(out.programWriter()))
	}
	return opts
}
