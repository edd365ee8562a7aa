package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubblepop/internal/config"
	"github.com/vovakirdan/bubblepop/internal/games/pop"
	"github.com/vovakirdan/bubblepop/internal/kv"
)

var (
	flagScoresUser string
	flagLimit      int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show finished rounds and the stored high score",
	Long: `Display the best finished rounds and the high score the game
starts from. Local play uses the "local" user; SSH players are listed
under their SSH user name.

Examples:
  bubblepop scores
  bubblepop scores --user alice --limit 20`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresUser, "user", kv.DefaultNamespace, "Player (SSH user name, or local)")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rounds to show")
}

func runScores(_ *cobra.Command, _ []string) {
	popCfg, err := config.LoadPop(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := kv.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	rounds, err := store.TopRounds(flagScoresUser, pop.ID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("Bubble Pop - %s\n", flagScoresUser)
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Play 'bubblepop play' to record the first one!")
	} else {
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, r := range rounds {
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, r.Score, r.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	fmt.Println()
	best, ok, err := store.Get(flagScoresUser, popCfg.Host.StorageKey)
	switch {
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error reading high score: %v\n", err)
	case !ok:
		fmt.Println("Best: -")
	default:
		fmt.Printf("Best: %s\n", best)
	}
}
