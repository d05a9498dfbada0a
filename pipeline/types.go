package pipeline

import hitrack "github.com/mbee/hitrack2tcx"

// Options configures one conversion run.
type Options struct {
	// InputPath is the HiTrack log to convert.
	InputPath string

	// OutDir receives all artifacts. Empty means "next to the input file".
	OutDir string

	Sport hitrack.Sport

	// SkipFiltering disables the out-of-range sample filter.
	SkipFiltering bool

	// Validate runs the schema validator against the saved TCX document.
	// Its outcome is reported on the result and never fails the run.
	Validate bool

	// ExportFormat selects the canonical merged-sample export: parquet, csv
	// or empty for none.
	ExportFormat string

	// ExportFIT additionally encodes the session as a FIT activity file.
	ExportFIT bool
}

// Result returns generated artifact paths and everything a caller needs to
// report on the conversion.
type Result struct {
	TCXPath              string   `json:"tcx_path"`
	SummaryPath          string   `json:"summary_path"`
	CanonicalSamplesPath string   `json:"canonical_samples_path,omitempty"`
	FITPath              string   `json:"fit_path,omitempty"`
	Records              int      `json:"records"`
	Laps                 int      `json:"laps"`
	DroppedSamples       int      `json:"dropped_samples"`
	SchemaValid          *bool    `json:"schema_valid,omitempty"`
	Warnings             []string `json:"warnings,omitempty"`
}
