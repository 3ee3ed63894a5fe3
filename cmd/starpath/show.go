package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starpath/internal/progression"
	"github.com/vovakirdan/starpath/internal/render"
)

var showCmd = &cobra.Command{
	Use:   "show <level>",
	Short: "Preview a level",
	Long: `Print a level's layout with its entities, checkpoints and objectives.

Legend: # ground  = platform  ^ hazard  G goal  o coin  E enemy  P checkpoint

Examples:
  starpath show 1-1`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(_ *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	defs, err := env.worlds()
	if err != nil {
		return err
	}
	def, lvlDef, ok := findLevel(defs, args[0])
	if !ok {
		return fmt.Errorf("unknown level %q", args[0])
	}

	lvl := progression.NewLevel(progression.LevelSpec{
		ID:                lvlDef.ID,
		Name:              lvlDef.Name,
		Difficulty:        lvlDef.Difficulty,
		UnlockRequirement: lvlDef.UnlockRequirement,
		Content:           lvlDef.Content,
	})
	lvl.Start()
	c := lvl.Content()

	fmt.Printf("%s %s (%s)\n", lvl.ID, lvl.Name, def.Info.Name)
	if lvl.Difficulty != "" {
		fmt.Printf("Difficulty: %s\n", lvl.Difficulty)
	}
	fmt.Printf("Unlock: %d stars on the previous level\n", lvl.UnlockRequirement)
	if !lvl.HasContent() {
		fmt.Println("This level has no layout.")
		return nil
	}
	fmt.Printf("Time limit: %.0fs\n", c.TimeLimit)
	fmt.Println()
	fmt.Println(render.Screen(render.DrawLevel(c, lvl.Entities())))

	if len(c.Objectives) > 0 {
		fmt.Println()
		fmt.Println("Objectives:")
		for _, o := range c.Objectives {
			fmt.Printf("  - %s\n", o.Name)
		}
	}
	return nil
}
