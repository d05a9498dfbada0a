package main

import (
	"fmt"

	"github.com/spf13/cobra"

	hitrack "github.com/mbee/hitrack2tcx"
	"github.com/mbee/hitrack2tcx/pipeline"
)

var convertCmd = &cobra.Command{
	Use:   "convert <hitrack-file>",
	Short: "Convert one HiTrack log to a TCX file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := optionsFromFlags(cmd)
		opts.InputPath = args[0]
		if opts.Sport == "" {
			return fmt.Errorf("unknown sport (expected Running|Biking|Swimming)")
		}

		result, err := pipeline.Run(cmd.Context(), opts)
		if err != nil {
			return err
		}
		printResult(result)
		return nil
	},
}

func init() {
	addConvertFlags(convertCmd)
	rootCmd.AddCommand(convertCmd)
}

// pipelineSport maps a flag or environment value onto a sport, returning the
// empty sport when the value is unknown.
func pipelineSport(s string) hitrack.Sport {
	sport, err := hitrack.ParseSport(s)
	if err != nil {
		return ""
	}
	return sport
}
