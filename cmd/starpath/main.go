// starpath tracks progression through worlds of platformer levels: which
// levels are unlocked, how many stars each earned and the best scores.
//
// Usage:
//
//	starpath worlds            - List available worlds
//	starpath status [world]    - Show level progress for a world
//	starpath show <level>      - Preview a level layout
//	starpath play <level>      - Play a level from a script or flags
//	starpath scores <level>    - Show the best runs for a level
//	starpath history           - Show your recent runs
//	starpath reset <world>     - Clear saved progress for a world
//	starpath validate [dir]    - Check world and level files
//	starpath watch [dir]       - Re-validate content on every change
//	starpath pay <amount>      - Make an in-game purchase
//	starpath payments          - List recorded purchases
//
// Global flags:
//
//	--config <path>    - Config file (default search: ~/.starpath, ./configs)
//	--db <path>        - Database path (default: ~/.starpath/progress.db)
//	--content <dir>    - World directory (default: built-in worlds)
//	--player <name>    - Player whose progress is used
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/starpath/internal/config"
	"github.com/vovakirdan/starpath/internal/content"
	"github.com/vovakirdan/starpath/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagContent  string
	flagPlayer   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "starpath",
	Short: "starpath - Level progression and scoring for platformer worlds",
	Long: `starpath keeps track of your way through worlds of platformer levels.
Each finished level earns up to three stars; stars on one level unlock the next.

Available commands:
  worlds    - Show all available worlds
  status    - Show level progress for a world
  show      - Preview a level layout
  play      - Play a level from a script or flags
  scores    - View the best runs for a level
  history   - Show your recent runs
  reset     - Clear saved progress for a world
  validate  - Check world and level files
  watch     - Re-validate content on every change
  pay       - Make an in-game purchase
  payments  - List recorded purchases

Examples:
  starpath worlds
  starpath status world-1
  starpath play 1-1 --time 42 --score 300 --collectibles 3
  starpath play 1-2 --script run.yaml
  starpath validate ./worlds`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to progress database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagContent, "content", "", "Directory with world definitions (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Player name (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(worldsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(payCmd)
	rootCmd.AddCommand(paymentsCmd)
}

// appEnv is the configuration every command starts from.
type appEnv struct {
	cfg    config.Config
	logger *log.Logger
}

// loadEnv loads the config file and applies global flag overrides.
func loadEnv() (appEnv, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return appEnv{}, err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagContent != "" {
		cfg.Content.Dir = flagContent
	}
	if flagPlayer != "" {
		cfg.Player.Name = flagPlayer
		cfg.Player.DisplayName = flagPlayer
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return appEnv{cfg: cfg, logger: cfg.Log.NewLogger("starpath")}, nil
}

// loader returns a loader for dir, the configured content dir, or the
// built-in worlds, in that order.
func (e appEnv) loader(dir string) *content.Loader {
	if dir == "" {
		dir = e.cfg.Content.Dir
	}
	if dir == "" {
		return content.Default()
	}
	return content.NewDirLoader(dir)
}

// worlds loads every world from the configured content.
func (e appEnv) worlds() ([]content.WorldDef, error) {
	defs, err := e.loader("").LoadAll()
	if err != nil {
		return nil, err
	}
	e.logger.Debug("content loaded", "worlds", len(defs))
	return defs, nil
}

// openStore opens the progress database and registers the player.
func (e appEnv) openStore() (*storage.Store, error) {
	store, err := storage.Open(e.cfg.Storage.DBPath)
	if err != nil {
		return nil, err
	}
	if _, err := store.EnsurePlayer(e.cfg.Player.Name, e.cfg.Player.DisplayName); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

// findLevel returns the world that contains levelID.
func findLevel(defs []content.WorldDef, levelID string) (content.WorldDef, content.LevelDef, bool) {
	for _, w := range defs {
		for _, lvl := range w.Levels {
			if lvl.ID == levelID {
				return w, lvl, true
			}
		}
	}
	return content.WorldDef{}, content.LevelDef{}, false
}
