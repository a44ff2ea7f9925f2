// minigames is the ChoreQuest minigame pack: short arcade breaks between
// chores, playable locally or over SSH. Sessions survive quitting; an
// unfinished game is offered again the next time its tile is picked.
//
// Usage:
//
//	minigames menu            - Interactive game picker
//	minigames play <game>     - Jump straight into a game
//	minigames list            - List available games
//	minigames scores <game>   - Show bests and recent results
//	minigames serve           - Start SSH server for remote play
//	minigames reset           - Clear saves and scores
//
// Global flags:
//
//	--db <path>      - Saves and scores database (default: ~/.chorequest/minigames/minigames.db)
//	--config <path>  - Custom game tuning YAML
//	--seed <value>   - RNG seed for reproducible boards (0 = from the clock)
//
// The MINIGAMES_DB, MINIGAMES_CONFIG and MINIGAMES_SEED environment
// variables set the defaults for the matching flags.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chorequest/minigames/internal/config"

	// Import games to register them
	_ "github.com/chorequest/minigames/internal/games/breakout"
	_ "github.com/chorequest/minigames/internal/games/memory"
	_ "github.com/chorequest/minigames/internal/games/puzzle"
	_ "github.com/chorequest/minigames/internal/games/quiz"
	_ "github.com/chorequest/minigames/internal/games/snake"
)

const defaultDBPath = "~/.chorequest/minigames/minigames.db"

var (
	// Global flags
	flagDBPath string
	flagConfig string
	flagSeed   int64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "minigames",
	Short: "ChoreQuest minigames - Quick arcade breaks in your terminal",
	Long: `ChoreQuest minigames is a pack of small terminal games meant for short
breaks between chores. Quitting mid-game keeps the session; picking the
same game later resumes where you left off.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker
  serve    - Start SSH server for remote play
  scores   - View bests and recent results
  reset    - Clear saves and scores

Examples:
  minigames list
  minigames play snake
  minigames play memory --difficulty hard
  minigames menu
  minigames serve --ssh :2222
  minigames scores snake
  minigames reset --all`,
}

func init() {
	// Environment variables seed the flag defaults; explicit flags win.
	envCfg, err := config.ParseEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		envCfg = config.Env{}
	}
	dbDefault := envCfg.DBPath
	if dbDefault == "" {
		dbDefault = defaultDBPath
	}

	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", dbDefault, "Path to saves and scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", envCfg.ConfigPath, "Path to custom game tuning YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", envCfg.Seed, "RNG seed for board generation (0 = from the clock)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(resetCmd)
}
