package tcx

import (
	"strconv"
	"time"

	hitrack "github.com/mbee/hitrack2tcx"
)

// Build assembles the output document from a session. The activity Id is the
// first lap's start time; each lap carries the trackpoints whose timestamps
// fall inside its boundary, inclusive on both ends. A lap whose distance is
// undefined serializes the required DistanceMeters element as 0; the
// pipeline flags that condition separately.
func Build(session hitrack.Session) *TrainingCenterDatabase {
	doc := &TrainingCenterDatabase{
		SchemaLocation: SchemaLocation,
		Xmlns:          Namespace,
		XmlnsXSD:       XSDNamespace,
		XmlnsXSI:       XSINamespace,
		XmlnsNS3:       ExtensionNamespace,
		Author: Author{
			XsiType: "Application_t",
			Name:    authorName,
			Build: BuildInfo{
				Version: Version{VersionMajor: 1, VersionMinor: 0, BuildMajor: 1, BuildMinor: 0},
			},
			LangID:     authorLangID,
			PartNumber: authorPart,
		},
	}

	activity := Activity{
		Sport: string(session.Sport),
		Creator: Creator{
			XsiType:   "Device_t",
			Name:      creatorName,
			UnitID:    creatorUnitID,
			ProductID: creatorProduct,
		},
	}
	if len(session.Laps) > 0 {
		activity.ID = FormatTime(session.Laps[0].Start)
	}

	for _, stats := range session.Laps {
		lap := Lap{
			StartTime:        FormatTime(stats.Start),
			TotalTimeSeconds: int(stats.Duration),
			Calories:         0,
			Intensity:        "Active",
			TriggerMethod:    "Manual",
		}
		if stats.Distance != nil {
			lap.DistanceMeters = int(*stats.Distance)
		}
		for _, r := range session.Records {
			if r.Time < stats.Start || r.Time > stats.Stop {
				continue
			}
			lap.Track.Trackpoints = append(lap.Track.Trackpoints, buildTrackpoint(r, session.Sport))
		}
		activity.Laps = append(activity.Laps, lap)
	}

	doc.Activities.Activity = activity
	return doc
}

func buildTrackpoint(r hitrack.CompositeRecord, sport hitrack.Sport) Trackpoint {
	tp := Trackpoint{Time: FormatTime(r.Time)}

	if r.HasPosition() {
		tp.Position = &Position{
			LatitudeDegrees:  formatCoord(*r.Lat),
			LongitudeDegrees: formatCoord(*r.Lon),
		}
		// Distance travels only with position, mirroring the source log
		// where both come from the same location record.
		if r.Distance != nil {
			tp.DistanceMeters = formatCoord(*r.Distance)
		}
	}
	if r.Altitude != nil {
		tp.AltitudeMeters = formatCoord(*r.Altitude)
	}
	if r.HeartRate != nil {
		tp.HeartRateBpm = &HeartRateBpm{
			XsiType: "HeartRateInBeatsPerMinute_t",
			Value:   *r.HeartRate,
		}
	}
	if r.Cadence != nil {
		switch sport {
		case hitrack.SportBiking:
			tp.Cadence = strconv.Itoa(*r.Cadence)
		case hitrack.SportRunning:
			tp.Extensions = &Extensions{TPX: TPX{
				Xmlns:      ExtensionNamespace,
				RunCadence: *r.Cadence,
			}}
		}
	}
	return tp
}

// FormatTime renders a Unix-seconds timestamp as the document's ISO-8601
// form: UTC, truncated to whole seconds, with a fixed millisecond suffix.
func FormatTime(ts float64) string {
	return time.Unix(int64(ts), 0).UTC().Format("2006-01-02T15:04:05") + ".000Z"
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
