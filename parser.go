package hitrack

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Pause sentinel signature. The device encodes a pause or stop as a
// degenerate location record, e.g.
//
//	tp=lbs;k=<n>;lat=90.0;lon=-80.0;alt=0.0;t=0.0;
//
// recognized by time == 0, lat == 90, lon == -80.
const (
	pauseLat = 90.0
	pauseLon = -80.0
)

// Field positions inside a record, counted in `=`-delimited tokens. The log
// format fixes the key order per tag, so the Nth token after a split on `=`
// always starts with the wanted value (terminated by `;`).
const (
	gpsTimeField  = 6
	gpsLatField   = 3
	gpsLonField   = 4
	sensorTime    = 2
	sensorValue   = 3
	gpsTagPrefix  = "tp=lbs"
	hrTagPrefix   = "tp=h-r"
	cadTagPrefix  = "tp=s-r"
	altiTagPrefix = "tp=alti"
)

// ParseLog reads a whole HiTrack log and returns the four sensor streams and
// the lap boundaries found along the way. The GPS stream is returned sorted
// ascending by time, ready for distance accumulation. Lines with an
// unrecognized tag are skipped; a recognized tag that cannot be parsed aborts
// with a *MalformedRecordError.
func ParseLog(r io.Reader) (*SampleSet, error) {
	set := &SampleSet{}
	tracker := &lapTracker{}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, gpsTagPrefix):
			if err := parseGPS(line, lineNo, set, tracker); err != nil {
				return nil, err
			}
		case strings.HasPrefix(line, hrTagPrefix):
			s, err := parseHeartRate(line, lineNo)
			if err != nil {
				return nil, err
			}
			set.HeartRate = append(set.HeartRate, s)
		case strings.HasPrefix(line, cadTagPrefix):
			s, err := parseCadence(line, lineNo)
			if err != nil {
				return nil, err
			}
			set.Cadence = append(set.Cadence, s)
		case strings.HasPrefix(line, altiTagPrefix):
			s, err := parseAltitude(line, lineNo)
			if err != nil {
				return nil, err
			}
			set.Altitude = append(set.Altitude, s)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	set.Laps = tracker.finish()

	// Distance accumulation and lap lookups need chronological order.
	sort.SliceStable(set.GPS, func(i, j int) bool {
		return set.GPS[i].Time < set.GPS[j].Time
	})
	return set, nil
}

func parseGPS(line string, lineNo int, set *SampleSet, tracker *lapTracker) error {
	t, err := floatField(line, gpsTimeField, lineNo, gpsTagPrefix, "t")
	if err != nil {
		return err
	}
	lat, err := floatField(line, gpsLatField, lineNo, gpsTagPrefix, "lat")
	if err != nil {
		return err
	}
	lon, err := floatField(line, gpsLonField, lineNo, gpsTagPrefix, "lon")
	if err != nil {
		return err
	}

	if t == 0 && lat == pauseLat && lon == pauseLon {
		tracker.pause()
		return nil
	}

	sample := GpsSample{Time: NormalizeTimestamp(t), Lat: lat, Lon: lon}
	set.GPS = append(set.GPS, sample)
	tracker.observe(sample.Time)
	return nil
}

func parseHeartRate(line string, lineNo int) (HeartRateSample, error) {
	t, err := sensorTimestamp(line, lineNo, hrTagPrefix)
	if err != nil {
		return HeartRateSample{}, err
	}
	bpm, err := intField(line, sensorValue, lineNo, hrTagPrefix, "hr")
	if err != nil {
		return HeartRateSample{}, err
	}
	return HeartRateSample{Time: t, BPM: bpm}, nil
}

func parseCadence(line string, lineNo int) (CadenceSample, error) {
	t, err := sensorTimestamp(line, lineNo, cadTagPrefix)
	if err != nil {
		return CadenceSample{}, err
	}
	rpm, err := intField(line, sensorValue, lineNo, cadTagPrefix, "cad")
	if err != nil {
		return CadenceSample{}, err
	}
	return CadenceSample{Time: t, RPM: rpm}, nil
}

func parseAltitude(line string, lineNo int) (AltitudeSample, error) {
	t, err := sensorTimestamp(line, lineNo, altiTagPrefix)
	if err != nil {
		return AltitudeSample{}, err
	}
	alt, err := floatField(line, sensorValue, lineNo, altiTagPrefix, "alti")
	if err != nil {
		return AltitudeSample{}, err
	}
	return AltitudeSample{Time: t, Altitude: alt}, nil
}

// sensorTimestamp reads a sensor-stream timestamp. Sensor records carry whole
// seconds; the fraction is dropped before normalization so that a sensor
// sample lands on the same merged timestamp as the GPS fix of that second.
func sensorTimestamp(line string, lineNo int, tag string) (float64, error) {
	raw, err := floatField(line, sensorTime, lineNo, tag, "t")
	if err != nil {
		return 0, err
	}
	return NormalizeTimestamp(float64(int64(raw))), nil
}

func fieldAt(line string, idx int) (string, bool) {
	parts := strings.Split(line, "=")
	if idx >= len(parts) {
		return "", false
	}
	return strings.SplitN(parts[idx], ";", 2)[0], true
}

func floatField(line string, idx, lineNo int, tag, key string) (float64, error) {
	raw, ok := fieldAt(line, idx)
	if !ok {
		return 0, &MalformedRecordError{Line: lineNo, Tag: tag, Reason: fmt.Sprintf("missing %s field", key)}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &MalformedRecordError{Line: lineNo, Tag: tag, Reason: fmt.Sprintf("non-numeric %s value %q", key, raw)}
	}
	return v, nil
}

func intField(line string, idx, lineNo int, tag, key string) (int, error) {
	raw, ok := fieldAt(line, idx)
	if !ok {
		return 0, &MalformedRecordError{Line: lineNo, Tag: tag, Reason: fmt.Sprintf("missing %s field", key)}
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &MalformedRecordError{Line: lineNo, Tag: tag, Reason: fmt.Sprintf("non-integer %s value %q", key, raw)}
	}
	return v, nil
}
