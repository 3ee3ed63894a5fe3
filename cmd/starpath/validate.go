package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starpath/internal/content"
)

var errInvalidContent = errors.New("content is invalid")

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check world and level files",
	Long: `Load every world manifest and level file and report all problems found.
Without a directory the configured content (or the built-in worlds) is checked.

Examples:
  starpath validate
  starpath validate ./worlds`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(_ *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	dir := ""
	if len(args) == 1 {
		dir = args[0]
	}

	if !reportCheck(env.loader(dir)) {
		return errInvalidContent
	}
	return nil
}

// reportCheck prints the result of validating all content and reports
// whether it was valid.
func reportCheck(loader *content.Loader) bool {
	errs := loader.Check()
	if len(errs) > 0 {
		fmt.Printf("Found %d problem(s):\n", len(errs))
		for _, err := range errs {
			fmt.Printf("  %v\n", err)
		}
		return false
	}

	defs, err := loader.LoadAll()
	if err != nil {
		fmt.Printf("  %v\n", err)
		return false
	}
	levels := 0
	for _, d := range defs {
		levels += len(d.Levels)
	}
	fmt.Printf("All content valid: %d world(s), %d level(s).\n", len(defs), levels)
	return true
}
