package hitrack

// Physical bounds for sensor readings. Heart rate and cadence travel as
// xsd:unsignedByte in the output document; altitude is bounded by the Dead
// Sea and the troposphere rather than the sensor's numeric range.
const (
	minHeartRate = 1
	maxHeartRate = 254
	minCadence   = 0
	maxCadence   = 254
	minAltitude  = -1000.0
	maxAltitude  = 10000.0
)

// FilterResult makes the fail-open contract of the filtering stage visible at
// the call site: Applied reports whether the bounds were enforced, and Err
// carries the failure when they were not. In both cases Set holds usable
// data — the filtered streams on success, the original streams on failure.
type FilterResult struct {
	Set     *SampleSet
	Applied bool
	Dropped int
	Err     error
}

// Filter drops heart-rate, cadence and altitude samples outside physically
// valid bounds. Out-of-range samples never abort a conversion; each stream is
// rebuilt as a new slice. GPS samples and lap boundaries pass through
// untouched.
func Filter(set *SampleSet) FilterResult {
	out := &SampleSet{
		GPS:  set.GPS,
		Laps: set.Laps,
	}
	dropped := 0

	out.HeartRate = make([]HeartRateSample, 0, len(set.HeartRate))
	for _, s := range set.HeartRate {
		if s.BPM < minHeartRate || s.BPM > maxHeartRate {
			dropped++
			continue
		}
		out.HeartRate = append(out.HeartRate, s)
	}

	out.Cadence = make([]CadenceSample, 0, len(set.Cadence))
	for _, s := range set.Cadence {
		if s.RPM < minCadence || s.RPM > maxCadence {
			dropped++
			continue
		}
		out.Cadence = append(out.Cadence, s)
	}

	out.Altitude = make([]AltitudeSample, 0, len(set.Altitude))
	for _, s := range set.Altitude {
		if s.Altitude < minAltitude || s.Altitude > maxAltitude {
			dropped++
			continue
		}
		out.Altitude = append(out.Altitude, s)
	}

	return FilterResult{Set: out, Applied: true, Dropped: dropped}
}
