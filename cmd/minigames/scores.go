package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chorequest/minigames/internal/config"
	"github.com/chorequest/minigames/internal/registry"
	"github.com/chorequest/minigames/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show bests and recent results for a game",
	Long: `Display the per-difficulty bests and the last finished games.

Each difficulty keeps its own best marks: highest score, fastest time and
fewest moves, tracked independently. Games that do not time or count moves
show a dash for those columns.

Examples:
  minigames scores snake
  minigames scores memory`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'minigames list' to see available games.")
		os.Exit(1)
	}

	gameCfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: using built-in game tuning: %v\n", err)
	}

	// Get game title
	game, err := registry.Create(gameID, gameCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	bests, err := store.Bests(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving bests: %v\n", err)
		os.Exit(1)
	}
	results, err := store.RecentResults(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Scores - %s\n", title)
	fmt.Println()

	if len(bests) == 0 && len(results) == 0 {
		fmt.Println("No finished games yet.")
		fmt.Println()
		fmt.Printf("Play 'minigames play %s' to set the first marks!\n", gameID)
		return
	}

	// Per-difficulty bests
	fmt.Println("Bests:")
	for _, level := range config.Levels() {
		best, ok := bests[level]
		if !ok {
			fmt.Printf("  %-8s -\n", level.String())
			continue
		}
		fmt.Printf("  %-8s score %-6d time %-7s moves %s\n",
			level.String(), best.Score, dashTime(best.Millis), dashCount(best.Moves))
	}

	if len(results) == 0 {
		return
	}

	// Recent results
	fmt.Println()
	fmt.Printf("Last %d games:\n", len(results))
	fmt.Printf("  %-16s  %-10s  %-6s  %-7s  %s\n", "Date", "Difficulty", "Score", "Time", "Moves")
	fmt.Printf("  %-16s  %-10s  %-6s  %-7s  %s\n", "----", "----------", "-----", "----", "-----")
	for _, entry := range results {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-16s  %-10s  %-6d  %-7s  %s\n",
			dateStr, entry.Difficulty, entry.Score, dashTime(entry.Millis), dashCount(entry.Moves))
	}
}

// dashTime renders a stopwatch reading, dashing games that do not time runs.
func dashTime(millis int64) string {
	if millis <= 0 {
		return "-"
	}
	total := millis / 1000
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func dashCount(moves int) string {
	if moves <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", moves)
}
