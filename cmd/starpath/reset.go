package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset <world>",
	Short: "Clear saved progress for a world",
	Long: `Forget stars, best scores and completion for every level of a world.
Recorded runs stay in the score history.

Examples:
  starpath reset world-1 --player alice`,
	Args: cobra.ExactArgs(1),
	RunE: runReset,
}

func runReset(_ *cobra.Command, args []string) error {
	worldID := args[0]

	env, err := loadEnv()
	if err != nil {
		return err
	}
	if _, err := env.loader("").LoadByID(worldID); err != nil {
		return err
	}

	store, err := env.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ResetProgress(env.cfg.Player.Name, worldID); err != nil {
		return err
	}
	env.logger.Info("progress reset", "player", env.cfg.Player.Name, "world", worldID)
	fmt.Printf("Progress for %s in %s cleared.\n", env.cfg.Player.Name, worldID)
	return nil
}
