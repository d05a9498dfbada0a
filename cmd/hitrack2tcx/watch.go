package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/mbee/hitrack2tcx/pipeline"
)

var watchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "Convert HiTrack logs as they appear in a directory",
	Long: "Watches a directory (typically a phone sync target) and converts " +
		"every HiTrack log that is created or rewritten there.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := optionsFromFlags(cmd)
		if opts.Sport == "" {
			return fmt.Errorf("unknown sport (expected Running|Biking|Swimming)")
		}
		return watchDir(cmd.Context(), args[0], opts)
	},
}

func init() {
	addConvertFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

// watchDir converts existing HiTrack logs in dir, then blocks converting new
// ones until ctx is cancelled. A failed conversion is logged and watching
// continues; one bad file must not stop the sync flow.
func watchDir(ctx context.Context, dir string, opts pipeline.Options) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isHiTrackName(entry.Name()) {
			continue
		}
		convertOne(ctx, filepath.Join(dir, entry.Name()), opts)
	}

	logger.Info("watching for logs", "dir", dir)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !isHiTrackName(filepath.Base(event.Name)) {
				continue
			}
			convertOne(ctx, event.Name, opts)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "err", err)
		}
	}
}

func convertOne(ctx context.Context, path string, opts pipeline.Options) {
	opts.InputPath = path
	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		logger.Error("conversion failed", "input", path, "err", err)
		return
	}
	logger.Info("converted", "input", path, "tcx", result.TCXPath,
		"records", result.Records, "laps", result.Laps)
	for _, w := range result.Warnings {
		logger.Warn(w, "input", path)
	}
}

// isHiTrackName matches the filenames the Huawei app syncs out. The app
// names them HiTrack_<epoch-millis-range>; already converted artifacts are
// skipped by extension.
func isHiTrackName(name string) bool {
	if !strings.HasPrefix(name, "HiTrack_") {
		return false
	}
	switch filepath.Ext(name) {
	case ".tcx", ".json", ".parquet", ".csv", ".fit":
		return false
	}
	return true
}
