package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starpath/internal/render"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <level>",
	Short: "Show the best runs for a level",
	Long: `Display the top runs recorded for the specified level across all players.

Examples:
  starpath scores 1-1
  starpath scores 1-5 --limit 3`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, args []string) error {
	levelID := args[0]

	env, err := loadEnv()
	if err != nil {
		return err
	}
	defs, err := env.worlds()
	if err != nil {
		return err
	}

	// Check if level exists
	_, lvl, ok := findLevel(defs, levelID)
	if !ok {
		return fmt.Errorf("unknown level %q", levelID)
	}

	store, err := env.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.TopRuns(levelID, flagScoresLimit)
	if err != nil {
		return err
	}

	// Display runs
	fmt.Printf("Best runs - %s %s\n", lvl.ID, lvl.Name)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'starpath play %s' to set the first score!\n", levelID)
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-12s  %-10s  %-5s  %-7s  %s\n", "Rank", "Player", "Score", "Stars", "Time", "Date")
	fmt.Printf("  %-4s  %-12s  %-10s  %-5s  %-7s  %s\n", "----", "------", "-----", "-----", "----", "----")

	// Print runs
	for i, r := range runs {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-12s  %-10.0f  %-5s  %-7s  %s\n",
			i+1, r.Player, r.Score, render.Stars(r.Stars), fmt.Sprintf("%.1fs", r.Elapsed), dateStr)
	}

	// Show aggregate stats
	fmt.Println()
	if stats, err := store.GetLevelStats(levelID); err == nil {
		fmt.Printf("Runs: %d  Best: %.0f  Average: %.0f\n", stats.Runs, stats.BestScore, stats.AvgScore)
	}
	return nil
}
