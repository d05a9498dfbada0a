package pipeline

import (
	"fmt"

	hitrack "github.com/mbee/hitrack2tcx"
)

// ComputeLapStats derives duration and distance for each lap boundary from
// the merged record sequence. Distance is the difference between the
// cumulative distances of the GPS-bearing records at the lap's stop and start
// timestamps, looked up through a timestamp index rather than a positional
// scan. A boundary whose start or stop has no GPS-bearing record gets a nil
// distance and a warning; it is never reported as a measured zero.
func ComputeLapStats(records []hitrack.CompositeRecord, laps []hitrack.LapBoundary) ([]hitrack.LapStats, []string) {
	distanceAt := make(map[float64]float64, len(records))
	for _, r := range records {
		if r.Distance != nil {
			distanceAt[r.Time] = *r.Distance
		}
	}

	stats := make([]hitrack.LapStats, 0, len(laps))
	var warnings []string
	for i, lap := range laps {
		ls := hitrack.LapStats{
			Start:    lap.Start,
			Stop:     lap.Stop,
			Duration: lap.Stop - lap.Start,
		}
		startDist, startOK := distanceAt[lap.Start]
		stopDist, stopOK := distanceAt[lap.Stop]
		if startOK && stopOK {
			d := stopDist - startDist
			ls.Distance = &d
		} else {
			warnings = append(warnings, fmt.Sprintf(
				"lap %d: no GPS record at boundary timestamp (start match: %t, stop match: %t); distance left undefined",
				i+1, startOK, stopOK))
		}
		stats = append(stats, ls)
	}
	return stats, warnings
}
