package pipeline

import (
	"sort"

	hitrack "github.com/mbee/hitrack2tcx"
)

// Merge combines the four sensor streams into one chronologically ordered
// composite sequence with exactly one record per distinct timestamp.
//
// The streams are concatenated GPS first, then altitude, heart rate and
// cadence, and stable-sorted by timestamp, so within a timestamp the GPS
// record is always the retained base and later samples only fill in their
// own non-empty fields. The input streams are left untouched; the merge
// builds a new slice.
func Merge(set *hitrack.SampleSet) []hitrack.CompositeRecord {
	candidates := make([]hitrack.CompositeRecord, 0,
		len(set.GPS)+len(set.Altitude)+len(set.HeartRate)+len(set.Cadence))

	for _, s := range set.GPS {
		lat, lon, dist := s.Lat, s.Lon, s.Distance
		candidates = append(candidates, hitrack.CompositeRecord{
			Time: s.Time, Lat: &lat, Lon: &lon, Distance: &dist,
		})
	}
	for _, s := range set.Altitude {
		alt := s.Altitude
		candidates = append(candidates, hitrack.CompositeRecord{Time: s.Time, Altitude: &alt})
	}
	for _, s := range set.HeartRate {
		bpm := s.BPM
		candidates = append(candidates, hitrack.CompositeRecord{Time: s.Time, HeartRate: &bpm})
	}
	for _, s := range set.Cadence {
		rpm := s.RPM
		candidates = append(candidates, hitrack.CompositeRecord{Time: s.Time, Cadence: &rpm})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Time < candidates[j].Time
	})

	merged := make([]hitrack.CompositeRecord, 0, len(candidates))
	for _, c := range candidates {
		if len(merged) > 0 && merged[len(merged)-1].Time == c.Time {
			coalesce(&merged[len(merged)-1], c)
			continue
		}
		merged = append(merged, c)
	}
	return merged
}

// coalesce copies src's non-empty fields into dst. A nil field never
// overwrites a present value.
func coalesce(dst *hitrack.CompositeRecord, src hitrack.CompositeRecord) {
	if src.Lat != nil {
		dst.Lat = src.Lat
	}
	if src.Lon != nil {
		dst.Lon = src.Lon
	}
	if src.Altitude != nil {
		dst.Altitude = src.Altitude
	}
	if src.Distance != nil {
		dst.Distance = src.Distance
	}
	if src.HeartRate != nil {
		dst.HeartRate = src.HeartRate
	}
	if src.Cadence != nil {
		dst.Cadence = src.Cadence
	}
}
