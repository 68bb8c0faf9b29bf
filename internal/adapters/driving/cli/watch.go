package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/pavedocs/paver/internal/adapters/driven/config/file"
	"github.com/pavedocs/paver/internal/core/domain"
	"github.com/pavedocs/paver/internal/logger"
)

// watchThrottle bounds how often a burst of filesystem events triggers a
// re-check. Editors tend to emit several writes per save.
var watchThrottle = rate.Every(500 * time.Millisecond)

// watchChecks runs the check, then re-runs it whenever the docs tree
// changes, until interrupted. A failing pass keeps the watch alive.
func watchChecks(cmd *cobra.Command, args []string, ov file.Overrides, format outputFormat) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	// Resolve once up front so a broken config fails fast.
	cfg, _, err := file.Resolve(flagDirectory, ov, time.Now())
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start filesystem watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchTree(watcher, cfg.DocsRoot); err != nil {
		return err
	}
	logger.Info("watching %s", cfg.DocsRoot)

	runPass := func() {
		if err := checkOnce(ctx, out, args, ov, format); err != nil && !errors.Is(err, domain.ErrChecksFailed) {
			logger.Error("%v", err)
		}
		fmt.Fprintln(out, "---")
	}
	runPass()

	limiter := rate.NewLimiter(watchThrottle, 1)
	for {
		select {
		case <-ctx.Done():
			return domain.ErrInterrupted
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(event) {
				continue
			}
			// New directories need watching too.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watchTree(watcher, event.Name)
				}
			}
			if err := limiter.Wait(ctx); err != nil {
				return domain.ErrInterrupted
			}
			drainEvents(watcher)
			runPass()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: %v", err)
		}
	}
}

// watchTree registers root and every directory under it.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

// relevantEvent filters to operations that change document content.
func relevantEvent(event fsnotify.Event) bool {
	return event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Remove) ||
		event.Op.Has(fsnotify.Rename)
}

// drainEvents discards the backlog a burst of saves leaves behind, so one
// re-check covers it.
func drainEvents(watcher *fsnotify.Watcher) {
	for {
		select {
		case <-watcher.Events:
		default:
			return
		}
	}
}
