// bubblepop is a bubble-popping puzzle for the terminal.
//
// Usage:
//
//	bubblepop list                      - List available engines
//	bubblepop play [engine]             - Play a round locally
//	bubblepop serve                     - Start SSH server for remote play
//	bubblepop scores                    - Show finished rounds and the stored high score
//	bubblepop highscore get|set|clear   - Inspect or edit the stored high score
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 30)
//	--seed <value>    - Set RNG seed for reproducible boards
//	--db <path>       - Set database path (default: ~/.bubblepop/bubblepop.db)
//	--config <path>   - Use a custom pop.yaml
//	--log <path>      - Log file for play (default: ~/.bubblepop/bubblepop.log)
//	--debug           - Log at debug level
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import engines to register them
	_ "github.com/vovakirdan/bubblepop/internal/games/pop"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogPath string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bubblepop",
	Short: "Bubble Pop - pop same-coloured bubbles in your terminal",
	Long: `Bubble Pop is a terminal puzzle: pop groups of touching bubbles of the
same colour, let the rest fall, and clear the board for a bonus.
Your best score is remembered between runs.

Available commands:
  list       - Show the available engines
  play       - Play a round
  serve      - Start SSH server for remote play
  scores     - View finished rounds
  highscore  - Inspect or edit the stored high score

Examples:
  bubblepop play
  bubblepop play --seed 42
  bubblepop serve --ssh :2222
  bubblepop scores
  bubblepop highscore get`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.bubblepop/bubblepop.db", "Path to the database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom pop.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "~/.bubblepop/bubblepop.log", "Log file for play sessions")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(highscoreCmd)
}
