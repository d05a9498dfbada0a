// Package pipeline orchestrates the HiTrack-to-TCX conversion: parse,
// filter, distance accumulation, merge, lap statistics, serialization and
// the optional export artifacts.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	hitrack "github.com/mbee/hitrack2tcx"
	"github.com/mbee/hitrack2tcx/fitout"
	"github.com/mbee/hitrack2tcx/geodesy"
	"github.com/mbee/hitrack2tcx/tcx"
)

// Run executes one full conversion and writes all requested artifacts.
//
// Parsing is fail-fast: a malformed recognized record aborts the run, since
// a silently dropped sample could corrupt lap boundaries. Filtering is
// fail-open: a filter failure downgrades to the unfiltered data with a
// warning. Validation never fails the run; its outcome lands on the result.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if strings.TrimSpace(opts.InputPath) == "" {
		return nil, fmt.Errorf("input path is required")
	}
	if opts.Sport == "" {
		opts.Sport = hitrack.SportRunning
	}
	switch opts.ExportFormat {
	case "", "parquet", "csv":
	default:
		return nil, fmt.Errorf("unsupported export format %q (expected parquet|csv)", opts.ExportFormat)
	}
	if opts.OutDir != "" {
		if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Open(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	set, err := hitrack.ParseLog(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(opts.InputPath), err)
	}

	result := &Result{}

	if !opts.SkipFiltering {
		fr := hitrack.Filter(set)
		if fr.Err != nil {
			// Fail-open: a broken filter must not cost the whole session.
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("filtering failed, continuing with unfiltered data: %v", fr.Err))
		} else {
			set = fr.Set
			result.DroppedSamples = fr.Dropped
		}
	}

	if err := geodesy.AccumulateDistances(set.GPS); err != nil {
		return nil, fmt.Errorf("accumulate distances: %w", err)
	}

	records := Merge(set)
	if len(records) == 0 {
		return nil, fmt.Errorf("log contains no usable samples")
	}

	stats, warnings := ComputeLapStats(records, set.Laps)
	result.Warnings = append(result.Warnings, warnings...)

	session := hitrack.Session{
		Sport:   opts.Sport,
		Laps:    stats,
		Records: records,
	}
	result.Records = len(records)
	result.Laps = len(stats)

	doc := tcx.Build(session)
	tcxPath, err := tcx.WriteFile(doc, opts.InputPath, opts.OutDir)
	if err != nil {
		return nil, fmt.Errorf("write tcx: %w", err)
	}
	result.TCXPath = tcxPath

	summaryPath := artifactPath(opts, ".summary.json")
	if err := writeJSON(summaryPath, BuildSummary(session)); err != nil {
		return nil, fmt.Errorf("write summary: %w", err)
	}
	result.SummaryPath = summaryPath

	switch opts.ExportFormat {
	case "parquet":
		p := artifactPath(opts, ".canonical.parquet")
		if err := writeCanonicalParquet(p, records); err != nil {
			return nil, fmt.Errorf("write canonical parquet: %w", err)
		}
		result.CanonicalSamplesPath = p
	case "csv":
		p := artifactPath(opts, ".canonical.csv")
		if err := writeCanonicalCSV(p, records); err != nil {
			return nil, fmt.Errorf("write canonical csv: %w", err)
		}
		result.CanonicalSamplesPath = p
	}

	if opts.ExportFIT {
		p := artifactPath(opts, ".fit")
		if err := fitout.WriteFile(p, session); err != nil {
			return nil, fmt.Errorf("write fit: %w", err)
		}
		result.FITPath = p
	}

	if opts.Validate {
		valid := true
		if err := tcx.NewValidator(nil).Validate(ctx, tcxPath); err != nil {
			valid = false
			result.Warnings = append(result.Warnings, fmt.Sprintf("validation failed: %v", err))
		}
		result.SchemaValid = &valid
	}

	return result, nil
}

func artifactPath(opts Options, suffix string) string {
	name := filepath.Base(opts.InputPath) + suffix
	if opts.OutDir == "" {
		return filepath.Join(filepath.Dir(opts.InputPath), name)
	}
	return filepath.Join(opts.OutDir, name)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
