package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bubblepop/internal/config"
	"github.com/vovakirdan/bubblepop/internal/core"
	"github.com/vovakirdan/bubblepop/internal/games/pop"
	"github.com/vovakirdan/bubblepop/internal/haptic"
	"github.com/vovakirdan/bubblepop/internal/kv"
	"github.com/vovakirdan/bubblepop/internal/platform/tui"
	"github.com/vovakirdan/bubblepop/internal/registry"
	"github.com/vovakirdan/bubblepop/internal/shell"
)

var flagHaptic string

var playCmd = &cobra.Command{
	Use:   "play [engine]",
	Short: "Play Bubble Pop",
	Long: `Start a round of Bubble Pop.

Controls:
  Arrows/WASD/HJKL - Move cursor
  Space/Enter      - Pop the group under the cursor
  P/Esc            - Pause
  R                - New round (after the board is finished)
  Ctrl+S           - Save a screenshot
  ?                - Show all keys
  Q/Ctrl+C         - Quit

Haptic feedback (--haptic, or host.haptic in pop.yaml):
  flash - briefly highlight the play field on every pop
  bell  - ring the terminal bell on every pop
  off   - no feedback

Examples:
  bubblepop play
  bubblepop play --haptic bell
  bubblepop play --seed 7 --config ./my-pop.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagHaptic, "haptic", "", "Haptic feedback: flash, bell, off (overrides config)")
}

func runPlay(_ *cobra.Command, args []string) {
	engineID, err := resolveEngine(args, pop.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	popCfg, err := config.LoadPop(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagHaptic != "" {
		popCfg.Host.Haptic = haptic.Mode(flagHaptic)
	}

	var logOut io.Writer = io.Discard
	if logFile, logErr := openLogFile(flagLogPath); logErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", logErr)
	} else {
		defer logFile.Close()
		logOut = logFile
	}
	logger := newLogger(logOut, "bubblepop")

	// The bell shares the program's output so it never splits a frame
	out := tui.NewOutput(os.Stdout)
	device, err := haptic.New(popCfg.Host.Haptic, out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	flash, _ := device.(*haptic.Flash)

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	pop.SetConfigPath(flagConfig)
	game, err := registry.Create(engineID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Without the database the round still plays, it just starts with no high score
	var (
		store  kv.Store
		rounds tui.RoundRecorder
	)
	db, err := kv.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		logger.Warn("storage unavailable", "path", flagDBPath, "error", err)
		store = &kv.Memory{}
	} else {
		bucket := db.Bucket(kv.DefaultNamespace)
		store, rounds = bucket, bucket
	}

	sh := shell.New(store, device,
		shell.WithKey(popCfg.Host.StorageKey),
		shell.WithPulse(popCfg.Host.Pulse()),
		shell.WithLogger(logger),
	)

	runErr := tui.Run(sh, game, cfg, tui.Options{
		Rounds: rounds,
		Flash:  flash,
		Logger: logger,
		Output: out,
	})

	if db != nil {
		db.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
