package main

import (
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/milk9111/levelkit/levels"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir...]",
	Short: "Re-check levels whenever level, material or index files change",
	Long:  "Watch directories under the asset root (default: the level index directory) and re-check affected levels on change.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if useDemo {
			return errors.New("watch needs an asset root on disk")
		}
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		dirs := args
		if len(dirs) == 0 {
			dirs = []string{filepath.Dir(e.cfg.LevelIndex)}
		}
		for i, d := range dirs {
			dirs[i] = filepath.Join(e.cfg.AssetsRoot, d)
		}

		w, err := levels.NewWatcher(e.cfg.Watch.Debounce, dirs...)
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		defer w.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		e.logger.Info("watching", "dirs", dirs)

		for {
			select {
			case <-ctx.Done():
				return nil
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				e.logger.Error("watch error", "err", err)
			case name, ok := <-w.Events:
				if !ok {
					return nil
				}
				paths, err := changedLevels(e, name)
				if err != nil {
					e.logger.Error("resolve changed file", "file", name, "err", err)
					continue
				}
				loader, err := e.loader()
				if err != nil {
					e.logger.Error("reload preloads", "err", err)
					continue
				}
				e.logger.Info("file changed", "file", name, "levels", len(paths))
				checkLevels(ctx, e, loader, paths)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// changedLevels returns the levels to re-check after name changed: the
// level itself, or every indexed level for shared files.
func changedLevels(e *env, name string) ([]string, error) {
	if levels.IsLevelFile(name) {
		rel, err := filepath.Rel(e.cfg.AssetsRoot, name)
		if err != nil {
			return nil, err
		}
		return []string{filepath.ToSlash(rel)}, nil
	}
	return e.levelPaths(nil)
}
