package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starpath/internal/render"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show your recent runs",
	Long: `List the current player's finished runs across all levels, newest first.

Examples:
  starpath history
  starpath history --player alice --limit 5`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of runs to show")
}

func runHistory(_ *cobra.Command, _ []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	store, err := env.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.PlayerRuns(env.cfg.Player.Name, flagHistoryLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Printf("No runs recorded for %s.\n", env.cfg.Player.Name)
		return nil
	}

	fmt.Printf("Recent runs - %s\n", env.cfg.Player.Name)
	fmt.Println()
	fmt.Printf("  %-16s  %-6s  %-10s  %-5s  %-7s  %s\n", "Date", "Level", "Score", "Stars", "Time", "Best")
	fmt.Printf("  %-16s  %-6s  %-10s  %-5s  %-7s  %s\n", "----", "-----", "-----", "-----", "----", "----")
	for _, r := range runs {
		best := ""
		if r.NewBest {
			best = "*"
		}
		fmt.Printf("  %-16s  %-6s  %-10.0f  %-5s  %-7s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.LevelID, r.Score, render.Stars(r.Stars),
			fmt.Sprintf("%.1fs", r.Elapsed), best)
	}
	return nil
}
