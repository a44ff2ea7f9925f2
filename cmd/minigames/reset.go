package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chorequest/minigames/internal/registry"
	"github.com/chorequest/minigames/internal/storage"
)

var flagResetAll bool

var resetCmd = &cobra.Command{
	Use:   "reset [game]",
	Short: "Clear saves and scores",
	Long: `Delete the stored session and score history for one game, or for
everything with --all. Bests are part of the score history, so they are
cleared too.

Examples:
  minigames reset snake
  minigames reset --all`,
	Args: cobra.MaximumNArgs(1),
	Run:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetAll, "all", false, "Clear every game's saves and scores")
}

func runReset(cmd *cobra.Command, args []string) {
	if !flagResetAll && len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Error: specify a game or pass --all")
		fmt.Fprintln(os.Stderr, "Run 'minigames list' to see available games.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagResetAll {
		if err := store.ResetAll(); err != nil {
			fmt.Fprintf(os.Stderr, "Error resetting database: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All saves and scores cleared.")
		return
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'minigames list' to see available games.")
		os.Exit(1)
	}

	if err := store.ClearSession(gameID); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing session: %v\n", err)
		os.Exit(1)
	}
	if err := store.ClearScores(gameID); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Saves and scores for %q cleared.\n", gameID)
}
