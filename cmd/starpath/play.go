package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starpath/internal/render"
	"github.com/vovakirdan/starpath/internal/session"
)

var (
	flagScript       string
	flagPlayTime     float64
	flagPlayScore    float64
	flagCollectibles int
	flagCheckpoint   int
)

var playCmd = &cobra.Command{
	Use:   "play <level>",
	Short: "Play a level",
	Long: `Play a level and record the result.

A run is either replayed from a script file or described with flags.
Scripts are YAML:

  level: "1-1"
  steps:
    - ticks: 600       # advance 600 fixed ticks
      score: 120
      collectibles: 2
      consume: [1, 2]  # entity ids collected or defeated
    - dt: 5            # advance 5 seconds
      checkpoint: 0
    - end: true

Examples:
  starpath play 1-1 --time 42 --score 300 --collectibles 3
  starpath play 1-2 --script run.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagScript, "script", "", "Replay a script file")
	playCmd.Flags().Float64Var(&flagPlayTime, "time", 0, "Seconds taken to finish")
	playCmd.Flags().Float64Var(&flagPlayScore, "score", 0, "Points gained during play")
	playCmd.Flags().IntVar(&flagCollectibles, "collectibles", 0, "Collectibles picked up")
	playCmd.Flags().IntVar(&flagCheckpoint, "checkpoint", -1, "Last checkpoint index reached (-1 = none)")
}

func runPlay(_ *cobra.Command, args []string) error {
	levelID := args[0]

	env, err := loadEnv()
	if err != nil {
		return err
	}
	defs, err := env.worlds()
	if err != nil {
		return err
	}
	def, _, ok := findLevel(defs, levelID)
	if !ok {
		return fmt.Errorf("unknown level %q (run 'starpath status' to list levels)", levelID)
	}

	sc, err := playScript(levelID)
	if err != nil {
		return err
	}

	world, err := def.Build()
	if err != nil {
		return err
	}
	store, err := env.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	sess := session.New(world, session.Config{
		Player:  env.cfg.Player.Name,
		Runtime: env.cfg.Runtime.Core(),
	}, env.logger)
	sess.SetStore(store)
	if err := sess.Resume(); err != nil {
		return err
	}

	// Stop between steps on Ctrl+C
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out, err := sess.RunScript(ctx, sc, levelID)
	if errors.Is(err, session.ErrLevelLocked) {
		return fmt.Errorf("%w\nRun 'starpath status %s' to see what is unlocked", err, world.ID)
	}
	if err != nil {
		return err
	}

	if !out.Finished {
		sess.Abandon()
		fmt.Printf("Level %s not finished: the run never reached the goal.\n", levelID)
		return nil
	}

	fmt.Printf("Level %s complete!\n", levelID)
	fmt.Printf("  Score: %.0f\n", out.FinalScore)
	fmt.Printf("  Stars: %s\n", render.Stars(out.Stars))
	if out.NewBest {
		fmt.Println("  New best score!")
	}
	if next, ok := world.NextLevel(levelID); ok {
		if st, _ := world.LevelStatus(next); st.Unlocked {
			fmt.Printf("Next up: starpath play %s\n", next)
		}
	} else if world.Completed() {
		fmt.Printf("World %s complete with %d/%d stars!\n", world.Name, world.TotalStars(), world.MaxTotalStars())
	}
	return nil
}

// playScript loads --script, or builds a single finishing step from flags.
func playScript(levelID string) (*session.Script, error) {
	if flagScript != "" {
		return session.LoadScript(flagScript)
	}
	step := session.Step{
		DT:           flagPlayTime,
		Score:        flagPlayScore,
		Collectibles: flagCollectibles,
		End:          true,
	}
	if flagCheckpoint >= 0 {
		cp := flagCheckpoint
		step.Checkpoint = &cp
	}
	return &session.Script{Level: levelID, Steps: []session.Step{step}}, nil
}
