package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chorequest/minigames/internal/config"
	"github.com/chorequest/minigames/internal/platform/tui"
	"github.com/chorequest/minigames/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive game picker",
	Long: `Start the pack in interactive menu mode.

Games with an unfinished session show a saved marker; picking one resumes
it. After a game ends (or you back out), you return to the picker.

Controls:
  Up/Down/j/k    - Navigate menu
  Left/Right/h/l - Change difficulty for new games
  Enter/Space    - Select game
  Tab            - Scoreboard
  Q              - Quit

Examples:
  minigames menu
  minigames menu --db ./family.db
  minigames menu --seed 7`,
	Run: runMenu,
}

func init() {
	// Uses global flags from main.go (--db, --config, --seed)
}

func runMenu(_ *cobra.Command, _ []string) {
	gameCfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: using built-in game tuning: %v\n", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database, sessions will not persist: %v\n", err)
		store = nil
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runErr := tui.Run(gameCfg, store, tui.AppOptions{
		Level:  config.Medium,
		Seed:   flagSeed,
		Width:  width,
		Height: height,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
