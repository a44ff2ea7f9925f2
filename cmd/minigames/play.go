package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chorequest/minigames/internal/config"
	"github.com/chorequest/minigames/internal/platform/tui"
	"github.com/chorequest/minigames/internal/registry"
	"github.com/chorequest/minigames/internal/storage"
)

var (
	flagDifficulty string
	flagDebugLog   string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game. If an unfinished session for the game
exists, it resumes exactly where it left off, including its difficulty.

Controls:
  Arrows/WASD  - Move (game-specific, see in-game help)
  P            - Pause
  N            - New game
  E/M/H        - Switch difficulty (starts a fresh board)
  Q/Ctrl+C     - Quit (unfinished sessions are kept)

Difficulty options:
  easy    - Small boards, generous pacing
  medium  - The default
  hard    - Large boards, fast pacing

Examples:
  minigames play snake
  minigames play memory --difficulty hard
  minigames play puzzle --seed 42
  minigames play quiz --config ./my-tuning.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty for a fresh board: easy, medium, hard")
	playCmd.Flags().StringVar(&flagDebugLog, "debug-log", "", "Append session logs to this file")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'minigames list' to see available games.")
		os.Exit(1)
	}

	level := config.Medium
	if flagDifficulty != "" {
		parsed, err := config.ParseLevel(flagDifficulty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		level = parsed
	}

	// Get terminal size early; SSH-less pipes fall back to a classic 80x24.
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	gameCfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: using built-in game tuning: %v\n", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database, sessions will not persist: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	// Loop logs go to a file when asked; stderr would tear the alt screen.
	var logger *log.Logger
	if flagDebugLog != "" {
		f, fileErr := os.OpenFile(flagDebugLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if fileErr != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log: %v\n", fileErr)
			os.Exit(1)
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{ReportTimestamp: true})
	}

	runErr := tui.Run(gameCfg, store, tui.AppOptions{
		Logger: logger,
		Level:  level,
		Seed:   flagSeed,
		GameID: gameID,
		Width:  width,
		Height: height,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
