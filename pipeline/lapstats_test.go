package pipeline

import (
	"strings"
	"testing"

	hitrack "github.com/mbee/hitrack2tcx"
)

func TestComputeLapStats(t *testing.T) {
	records := []hitrack.CompositeRecord{
		{Time: 100, Lat: fptr(41.1), Lon: fptr(-8.6), Distance: fptr(0)},
		{Time: 110, Lat: fptr(41.2), Lon: fptr(-8.7), Distance: fptr(50)},
		{Time: 120, Lat: fptr(41.3), Lon: fptr(-8.8), Distance: fptr(120)},
	}
	laps := []hitrack.LapBoundary{{Start: 100, Stop: 120}}

	stats, warnings := ComputeLapStats(records, laps)
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v, want none", warnings)
	}
	if len(stats) != 1 {
		t.Fatalf("stats = %d, want 1", len(stats))
	}
	s := stats[0]
	if s.Duration != 20 {
		t.Fatalf("duration = %v, want 20", s.Duration)
	}
	if s.Distance == nil || *s.Distance != 120 {
		t.Fatalf("distance = %v, want 120", s.Distance)
	}
}

func TestComputeLapStatsPerLapDelta(t *testing.T) {
	records := []hitrack.CompositeRecord{
		{Time: 100, Distance: fptr(0), Lat: fptr(0), Lon: fptr(0)},
		{Time: 110, Distance: fptr(40), Lat: fptr(0), Lon: fptr(0)},
		{Time: 200, Distance: fptr(40), Lat: fptr(0), Lon: fptr(0)},
		{Time: 230, Distance: fptr(100), Lat: fptr(0), Lon: fptr(0)},
	}
	laps := []hitrack.LapBoundary{
		{Start: 100, Stop: 110},
		{Start: 200, Stop: 230},
	}

	stats, warnings := ComputeLapStats(records, laps)
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v, want none", warnings)
	}
	if *stats[0].Distance != 40 {
		t.Fatalf("first lap distance = %v, want 40", *stats[0].Distance)
	}
	// Second lap covers only its own travel, not the cumulative total.
	if *stats[1].Distance != 60 {
		t.Fatalf("second lap distance = %v, want 60", *stats[1].Distance)
	}
}

func TestComputeLapStatsUnmatchedBoundary(t *testing.T) {
	records := []hitrack.CompositeRecord{
		// Heart-rate-only record at the stop timestamp: no distance there.
		{Time: 100, Distance: fptr(0), Lat: fptr(0), Lon: fptr(0)},
		{Time: 120, HeartRate: iptr(80)},
	}
	laps := []hitrack.LapBoundary{{Start: 100, Stop: 120}}

	stats, warnings := ComputeLapStats(records, laps)
	if stats[0].Distance != nil {
		t.Fatalf("distance = %v, want nil for unmatched boundary", *stats[0].Distance)
	}
	if stats[0].Duration != 20 {
		t.Fatalf("duration = %v, want 20 despite missing distance", stats[0].Duration)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "lap 1") {
		t.Fatalf("warnings = %v, want one naming lap 1", warnings)
	}
}

func TestComputeLapStatsNoLaps(t *testing.T) {
	stats, warnings := ComputeLapStats(nil, nil)
	if len(stats) != 0 || len(warnings) != 0 {
		t.Fatalf("stats = %v, warnings = %v, want empty", stats, warnings)
	}
}
