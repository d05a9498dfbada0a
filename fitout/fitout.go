// Package fitout encodes a converted session as a FIT activity file for
// tools that consume FIT rather than TCX.
package fitout

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"time"

	"github.com/tormoder/fit"

	hitrack "github.com/mbee/hitrack2tcx"
)

// Encode builds a FIT activity from the session and returns the encoded
// bytes ready to write. Sensor fields the session lacks keep the FIT
// invalid-value defaults set by the message constructors.
func Encode(session hitrack.Session) ([]byte, error) {
	if len(session.Records) == 0 {
		return nil, fmt.Errorf("session has no records")
	}

	header := fit.NewHeader(fit.V20, true)
	file, err := fit.NewFile(fit.FileTypeActivity, header)
	if err != nil {
		return nil, fmt.Errorf("new fit file: %w", err)
	}
	activity, err := file.Activity()
	if err != nil {
		return nil, fmt.Errorf("activity accessor: %w", err)
	}

	start := fitTime(session.Records[0].Time)
	end := fitTime(session.Records[len(session.Records)-1].Time)

	startEvent := fit.NewEventMsg()
	startEvent.Timestamp = start
	startEvent.Event = fit.EventTimer
	startEvent.EventType = fit.EventTypeStart
	activity.Events = append(activity.Events, startEvent)

	var totalDistance float64
	for _, r := range session.Records {
		rec := fit.NewRecordMsg()
		rec.Timestamp = fitTime(r.Time)
		if r.HasPosition() {
			rec.PositionLat = fit.NewLatitudeDegrees(*r.Lat)
			rec.PositionLong = fit.NewLongitudeDegrees(*r.Lon)
		}
		if r.Distance != nil {
			// Distance carries a 1/100 m scale on the wire.
			rec.Distance = uint32(*r.Distance * 100)
			totalDistance = *r.Distance
		}
		if r.Altitude != nil {
			// Altitude is offset by 500 m and scaled by 5.
			rec.Altitude = uint16((*r.Altitude + 500) * 5)
		}
		if r.HeartRate != nil {
			rec.HeartRate = uint8(*r.HeartRate)
		}
		if r.Cadence != nil {
			rec.Cadence = uint8(*r.Cadence)
		}
		activity.Records = append(activity.Records, rec)
	}

	stopEvent := fit.NewEventMsg()
	stopEvent.Timestamp = end
	stopEvent.Event = fit.EventTimer
	stopEvent.EventType = fit.EventTypeStop
	activity.Events = append(activity.Events, stopEvent)

	for _, stats := range session.Laps {
		lap := fit.NewLapMsg()
		lap.StartTime = fitTime(stats.Start)
		lap.Timestamp = fitTime(stats.Stop)
		lap.TotalElapsedTime = uint32(stats.Duration * 1000)
		lap.TotalTimerTime = uint32(stats.Duration * 1000)
		if stats.Distance != nil {
			lap.TotalDistance = uint32(*stats.Distance * 100)
		}
		activity.Laps = append(activity.Laps, lap)
	}

	sess := fit.NewSessionMsg()
	sess.StartTime = start
	sess.Timestamp = end
	sess.Sport = fitSport(session.Sport)
	sess.TotalElapsedTime = uint32(end.Sub(start).Seconds() * 1000)
	sess.TotalTimerTime = sess.TotalElapsedTime
	sess.TotalDistance = uint32(totalDistance * 100)
	activity.Sessions = append(activity.Sessions, sess)

	var buf bytes.Buffer
	if err := fit.Encode(&buf, file, binary.LittleEndian); err != nil {
		return nil, fmt.Errorf("encode fit: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile encodes the session and saves it at path.
func WriteFile(path string, session hitrack.Session) error {
	data, err := Encode(session)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func fitSport(s hitrack.Sport) fit.Sport {
	switch s {
	case hitrack.SportBiking:
		return fit.SportCycling
	case hitrack.SportSwimming:
		return fit.SportSwimming
	default:
		return fit.SportRunning
	}
}

func fitTime(ts float64) time.Time {
	return time.Unix(int64(ts), 0).UTC()
}
