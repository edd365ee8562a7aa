package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubblepop/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available engines",
	Long:  `Shows every engine that can be mounted with 'bubblepop play <id>'.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		printEngines(cmd.OutOrStdout(), registry.List())
	},
}

func printEngines(w io.Writer, engines []registry.EngineInfo) {
	if len(engines) == 0 {
		fmt.Fprintln(w, "No engines available.")
		return
	}

	fmt.Fprintln(w, "Available engines:")
	fmt.Fprintln(w)

	maxIDLen := 2 // "ID" header
	for _, e := range engines {
		if len(e.ID) > maxIDLen {
			maxIDLen = len(e.ID)
		}
	}

	fmt.Fprintf(w, "  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Fprintf(w, "  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, e := range engines {
		fmt.Fprintf(w, "  %-*s  %s\n", maxIDLen, e.ID, e.Title)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'bubblepop play <id>' to play.")
}

// resolveEngine picks the engine named on the command line, or pop.
func resolveEngine(args []string, fallback string) (string, error) {
	id := fallback
	if len(args) > 0 {
		id = args[0]
	}
	if !registry.Exists(id) {
		return "", fmt.Errorf("unknown engine %q (run 'bubblepop list')", id)
	}
	return id, nil
}
