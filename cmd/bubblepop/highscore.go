package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubblepop/internal/config"
	"github.com/vovakirdan/bubblepop/internal/kv"
)

var flagHighscoreUser string

var highscoreCmd = &cobra.Command{
	Use:   "highscore",
	Short: "Inspect or edit the stored high score",
	Long: `Read or change the high score the game is started with.

The value is stored exactly as the game writes it: a non-negative
decimal integer. A value the game cannot read is treated as no
high score at all.

Examples:
  bubblepop highscore get
  bubblepop highscore set 1200
  bubblepop highscore clear --user alice`,
}

var highscoreGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the stored high score",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withHighScore(func(store *kv.SQLite, key string) error {
			v, ok, err := store.Get(flagHighscoreUser, key)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("no high score stored")
				return nil
			}
			fmt.Println(v)
			return nil
		})
	},
}

var highscoreSetCmd = &cobra.Command{
	Use:   "set <score>",
	Short: "Replace the stored high score",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		v, err := parseScore(args[0])
		if err != nil {
			return err
		}
		return withHighScore(func(store *kv.SQLite, key string) error {
			return store.Set(flagHighscoreUser, key, strconv.Itoa(v))
		})
	},
}

var highscoreClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored high score",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withHighScore(func(store *kv.SQLite, key string) error {
			return store.Delete(flagHighscoreUser, key)
		})
	},
}

func init() {
	highscoreCmd.PersistentFlags().StringVar(&flagHighscoreUser, "user", kv.DefaultNamespace, "Player (SSH user name, or local)")

	highscoreCmd.AddCommand(highscoreGetCmd)
	highscoreCmd.AddCommand(highscoreSetCmd)
	highscoreCmd.AddCommand(highscoreClearCmd)
}

// parseScore accepts only values the game itself would write.
func parseScore(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid score %q: %w", s, err)
	}
	if v < 0 {
		return 0, errors.New("score must not be negative")
	}
	return v, nil
}

func withHighScore(fn func(store *kv.SQLite, key string) error) error {
	popCfg, err := config.LoadPop(flagConfig)
	if err != nil {
		return err
	}

	store, err := kv.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open database: %w", err)
	}
	defer store.Close()

	return fn(store, popCfg.Host.StorageKey)
}
