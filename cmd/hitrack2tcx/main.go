// Command hitrack2tcx converts Huawei HiTrack logs into TCX activity files.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mbee/hitrack2tcx/internal/config"
	"github.com/mbee/hitrack2tcx/pipeline"
)

// cfg holds the environment defaults, populated in PersistentPreRunE.
// Flags that were set explicitly override it per command.
var cfg config.Config

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

var rootCmd = &cobra.Command{
	Use:   "hitrack2tcx",
	Short: "Convert Huawei HiTrack logs to TCX activity files",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		return err
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// optionsFromFlags merges environment defaults with the command's flags.
// A flag the user set always wins over the environment.
func optionsFromFlags(cmd *cobra.Command) pipeline.Options {
	opts := pipeline.Options{
		OutDir:        cfg.OutDir,
		SkipFiltering: cfg.SkipFilter,
		Validate:      cfg.Validate,
		ExportFormat:  cfg.ExportFormat,
		ExportFIT:     cfg.ExportFIT,
	}
	sport := cfg.Sport
	if cmd.Flags().Changed("sport") {
		sport, _ = cmd.Flags().GetString("sport")
	}
	opts.Sport = pipelineSport(sport)
	if cmd.Flags().Changed("out-dir") {
		opts.OutDir, _ = cmd.Flags().GetString("out-dir")
	}
	if cmd.Flags().Changed("skip-filter") {
		opts.SkipFiltering, _ = cmd.Flags().GetBool("skip-filter")
	}
	if cmd.Flags().Changed("validate") {
		opts.Validate, _ = cmd.Flags().GetBool("validate")
	}
	if cmd.Flags().Changed("export") {
		opts.ExportFormat, _ = cmd.Flags().GetString("export")
	}
	if cmd.Flags().Changed("fit") {
		opts.ExportFIT, _ = cmd.Flags().GetBool("fit")
	}
	return opts
}

func addConvertFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("sport", "s", "Running", "activity sport (Running|Biking|Swimming)")
	cmd.Flags().StringP("out-dir", "o", "", "directory for output artifacts (default: next to the input)")
	cmd.Flags().BoolP("skip-filter", "b", false, "keep out-of-range sensor samples")
	cmd.Flags().BoolP("validate", "v", false, "validate the TCX output against the published schema")
	cmd.Flags().String("export", "", "also write canonical samples (parquet|csv)")
	cmd.Flags().Bool("fit", false, "also write a FIT activity file")
}

func printResult(result *pipeline.Result) {
	fmt.Printf("wrote %s (%d records, %d laps)\n", result.TCXPath, result.Records, result.Laps)
	if result.DroppedSamples > 0 {
		fmt.Printf("dropped %d out-of-range samples\n", result.DroppedSamples)
	}
	if result.SummaryPath != "" {
		fmt.Printf("summary: %s\n", result.SummaryPath)
	}
	if result.CanonicalSamplesPath != "" {
		fmt.Printf("canonical samples: %s\n", result.CanonicalSamplesPath)
	}
	if result.FITPath != "" {
		fmt.Printf("fit: %s\n", result.FITPath)
	}
	if result.SchemaValid != nil {
		fmt.Printf("schema valid: %t\n", *result.SchemaValid)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
}
