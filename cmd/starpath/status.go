package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/starpath/internal/content"
	"github.com/vovakirdan/starpath/internal/render"
	"github.com/vovakirdan/starpath/internal/session"
)

var statusCmd = &cobra.Command{
	Use:   "status [world]",
	Short: "Show level progress",
	Long: `Show stars, best scores and unlock state for every level of a world.
Without an argument every world is shown.

Examples:
  starpath status
  starpath status world-1 --player alice`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatus,
}

func runStatus(_ *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	var defs []content.WorldDef
	if len(args) == 1 {
		def, err := env.loader("").LoadByID(args[0])
		if err != nil {
			return fmt.Errorf("%w (run 'starpath worlds' to list them)", err)
		}
		defs = []content.WorldDef{def}
	} else if defs, err = env.worlds(); err != nil {
		return err
	}

	store, err := env.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	// Fit the table to the terminal when there is one
	width := 80
	if w, _, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil && w > 0 {
		width = w
	}

	for i, def := range defs {
		world, err := def.Build()
		if err != nil {
			return err
		}
		sess := session.New(world, session.Config{Player: env.cfg.Player.Name}, env.logger)
		sess.SetStore(store)
		if err := sess.Resume(); err != nil {
			return err
		}

		if i > 0 {
			fmt.Println()
		}
		fmt.Println(render.WorldTitle(world))
		fmt.Println(render.StatusTable(world, width))
		if world.Completed() {
			fmt.Println("World complete!")
		} else if next := nextPlayable(sess); next != "" {
			fmt.Printf("Next up: starpath play %s\n", next)
		}
	}
	return nil
}

// nextPlayable returns the first unlocked level that is not completed yet.
func nextPlayable(sess *session.Session) string {
	for _, st := range sess.Statuses() {
		if st.Unlocked && !st.Completed {
			return st.ID
		}
	}
	return ""
}
