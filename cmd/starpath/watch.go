package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starpath/internal/content"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-validate content on every change",
	Long: `Watch a content directory and validate it again whenever a world or
level file changes. Press Ctrl+C to stop.

Examples:
  starpath watch ./worlds`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func runWatch(_ *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	dir := env.cfg.Content.Dir
	if len(args) == 1 {
		dir = args[0]
	}
	if dir == "" {
		return errors.New("watch needs a content directory (built-in worlds cannot change)")
	}

	w, err := content.NewWatcher(dir)
	if err != nil {
		return fmt.Errorf("cannot watch %s: %w", dir, err)
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader := content.NewDirLoader(dir)
	reportCheck(loader)
	env.logger.Info("watching content", "dir", dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case p, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !content.IsContentFile(p) {
				continue
			}
			env.logger.Info("content changed", "file", p)
			reportCheck(loader)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			env.logger.Warn("watch error", "err", err)
		}
	}
}
