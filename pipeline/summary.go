package pipeline

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	hitrack "github.com/mbee/hitrack2tcx"
)

// Summary contains session-level aggregate metrics, written alongside the
// TCX document and printed by the CLI.
type Summary struct {
	Sport           string   `json:"sport"`
	StartTime       string   `json:"start_time"`
	DurationSeconds float64  `json:"duration_seconds"`
	DistanceMeters  float64  `json:"distance_meters"`
	Records         int      `json:"records"`
	Laps            int      `json:"laps"`
	AvgHeartRate    *float64 `json:"avg_heart_rate_bpm,omitempty"`
	MaxHeartRate    *float64 `json:"max_heart_rate_bpm,omitempty"`
	AvgCadence      *float64 `json:"avg_cadence_rpm,omitempty"`
	MaxCadence      *float64 `json:"max_cadence_rpm,omitempty"`
	MinAltitude     *float64 `json:"min_altitude_m,omitempty"`
	MaxAltitude     *float64 `json:"max_altitude_m,omitempty"`
}

// BuildSummary aggregates the merged sequence. Duration spans the first to
// the last merged record; distance is the last cumulative GPS value, zero
// when the session has no GPS data.
func BuildSummary(session hitrack.Session) Summary {
	s := Summary{
		Sport:   string(session.Sport),
		Records: len(session.Records),
		Laps:    len(session.Laps),
	}
	if len(session.Records) == 0 {
		return s
	}

	first := session.Records[0].Time
	last := session.Records[len(session.Records)-1].Time
	s.StartTime = time.Unix(int64(first), 0).UTC().Format(time.RFC3339)
	s.DurationSeconds = last - first

	var hr, cad, alt []float64
	for _, r := range session.Records {
		if r.Distance != nil && *r.Distance > s.DistanceMeters {
			s.DistanceMeters = *r.Distance
		}
		if r.HeartRate != nil {
			hr = append(hr, float64(*r.HeartRate))
		}
		if r.Cadence != nil {
			cad = append(cad, float64(*r.Cadence))
		}
		if r.Altitude != nil {
			alt = append(alt, *r.Altitude)
		}
	}

	if len(hr) > 0 {
		s.AvgHeartRate = ptr(stat.Mean(hr, nil))
		s.MaxHeartRate = ptr(floats.Max(hr))
	}
	if len(cad) > 0 {
		s.AvgCadence = ptr(stat.Mean(cad, nil))
		s.MaxCadence = ptr(floats.Max(cad))
	}
	if len(alt) > 0 {
		s.MinAltitude = ptr(floats.Min(alt))
		s.MaxAltitude = ptr(floats.Max(alt))
	}
	return s
}

func ptr(v float64) *float64 { return &v }
