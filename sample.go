// Package hitrack parses Huawei HiTrack point logs into typed sensor samples.
//
// A HiTrack file is a line-oriented log of `key=value;` records emitted by
// the wearable. Four record kinds matter here: location (`tp=lbs`),
// heart rate (`tp=h-r`), cadence (`tp=s-r`) and altitude (`tp=alti`).
// Everything else in the file is ignored.
package hitrack

import "fmt"

// Sport identifies the activity type declared by the user for the session.
type Sport string

const (
	SportRunning  Sport = "Running"
	SportBiking   Sport = "Biking"
	SportSwimming Sport = "Swimming"
)

// ParseSport maps a user-supplied string onto a known sport.
func ParseSport(s string) (Sport, error) {
	switch Sport(s) {
	case SportRunning, SportBiking, SportSwimming:
		return Sport(s), nil
	}
	return "", fmt.Errorf("unknown sport %q (expected Running|Biking|Swimming)", s)
}

// GpsSample is one positional fix. Distance is the cumulative track distance
// in meters, assigned by the distance engine after the GPS stream is sorted;
// it is zero-valued until then.
type GpsSample struct {
	Time     float64
	Lat      float64
	Lon      float64
	Distance float64
}

// AltitudeSample is one barometric altitude reading in meters.
type AltitudeSample struct {
	Time     float64
	Altitude float64
}

// HeartRateSample is one heart-rate reading in beats per minute.
type HeartRateSample struct {
	Time float64
	BPM  int
}

// CadenceSample is one cadence reading in revolutions (or strides) per minute.
type CadenceSample struct {
	Time float64
	RPM  int
}

// SampleSet holds the four independently sampled sensor streams of one
// session, plus the lap boundaries discovered while parsing. Pause sentinels
// are consumed during parsing and never appear in the GPS stream.
type SampleSet struct {
	GPS       []GpsSample
	Altitude  []AltitudeSample
	HeartRate []HeartRateSample
	Cadence   []CadenceSample
	Laps      []LapBoundary
}

// MalformedRecordError reports a line that carried a recognized tag but could
// not be parsed. A missing sample could silently corrupt lap boundaries, so
// the caller is expected to abort the whole conversion.
type MalformedRecordError struct {
	Line   int
	Tag    string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed %s record on line %d: %s", e.Tag, e.Line, e.Reason)
}
