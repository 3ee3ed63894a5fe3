package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var worldsCmd = &cobra.Command{
	Use:   "worlds",
	Short: "List all available worlds",
	Long:  `Shows every world found in the content directory, in play order.`,
	RunE:  runWorlds,
}

func runWorlds(_ *cobra.Command, _ []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	defs, err := env.worlds()
	if err != nil {
		return err
	}

	if len(defs) == 0 {
		fmt.Println("No worlds available.")
		return nil
	}

	fmt.Println("Available worlds:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, w := range defs {
		if len(w.Info.ID) > maxIDLen {
			maxIDLen = len(w.Info.ID)
		}
	}

	// Print header
	fmt.Printf("  %-3s  %-*s  %-6s  %s\n", "#", maxIDLen, "ID", "Levels", "Name")
	fmt.Printf("  %-3s  %-*s  %-6s  %s\n", "-", maxIDLen, "--", "------", "----")

	// Print worlds
	for _, w := range defs {
		fmt.Printf("  %-3d  %-*s  %-6d  %s\n", w.Info.Number, maxIDLen, w.Info.ID, len(w.Levels), w.Info.Name)
	}

	fmt.Println()
	fmt.Println("Run 'starpath status <id>' to see your progress.")
	return nil
}
