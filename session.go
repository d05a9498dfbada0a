package hitrack

// CompositeRecord is the merged, per-timestamp union of every raw sample
// sharing that timestamp. Absent fields stay nil; at most one record exists
// per distinct timestamp after the merge.
type CompositeRecord struct {
	Time      float64
	Lat       *float64
	Lon       *float64
	Altitude  *float64
	Distance  *float64
	HeartRate *int
	Cadence   *int
}

// HasPosition reports whether the record carries a GPS fix. Distance travels
// with position in the output document, mirroring the source coupling.
func (r *CompositeRecord) HasPosition() bool {
	return r.Lat != nil && r.Lon != nil
}

// LapStats is one lap with its derived duration and distance. Distance is nil
// when no GPS-bearing record existed at the lap's start or stop timestamp;
// callers must treat that as flagged, not as zero.
type LapStats struct {
	Start    float64
	Stop     float64
	Duration float64
	Distance *float64
}

// Session is the terminal artifact of the pipeline, consumed by the
// serializers. Laps and Records are ordered and immutable once built.
type Session struct {
	Sport   Sport
	Laps    []LapStats
	Records []CompositeRecord
}
