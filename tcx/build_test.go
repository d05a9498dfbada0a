package tcx

import (
	"encoding/xml"
	"strings"
	"testing"

	hitrack "github.com/mbee/hitrack2tcx"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func testSession(sport hitrack.Sport) hitrack.Session {
	return hitrack.Session{
		Sport: sport,
		Laps: []hitrack.LapStats{
			{Start: 1542966662, Stop: 1542966682, Duration: 20, Distance: fptr(25.7)},
		},
		Records: []hitrack.CompositeRecord{
			{Time: 1542966662, Lat: fptr(41.1942105), Lon: fptr(-8.6073455), Distance: fptr(0), HeartRate: iptr(78), Altitude: fptr(56)},
			{Time: 1542966672, HeartRate: iptr(80), Cadence: iptr(76)},
			{Time: 1542966682, Lat: fptr(41.1943), Lon: fptr(-8.6075), Distance: fptr(25.7)},
		},
	}
}

func TestBuildDocumentShape(t *testing.T) {
	doc := Build(testSession(hitrack.SportRunning))

	if doc.Xmlns != Namespace || doc.SchemaLocation != SchemaLocation {
		t.Fatalf("namespaces = %+v", doc)
	}
	act := doc.Activities.Activity
	if act.Sport != "Running" {
		t.Fatalf("sport = %q", act.Sport)
	}
	if act.ID != "2018-11-23T09:51:02.000Z" {
		t.Fatalf("activity id = %q, want the first lap's start time", act.ID)
	}
	if len(act.Laps) != 1 {
		t.Fatalf("laps = %d, want 1", len(act.Laps))
	}
	lap := act.Laps[0]
	if lap.StartTime != "2018-11-23T09:51:02.000Z" || lap.TotalTimeSeconds != 20 || lap.DistanceMeters != 25 {
		t.Fatalf("lap = %+v", lap)
	}
	if lap.Intensity != "Active" || lap.TriggerMethod != "Manual" || lap.Calories != 0 {
		t.Fatalf("lap constants = %+v", lap)
	}
	if len(lap.Track.Trackpoints) != 3 {
		t.Fatalf("trackpoints = %d, want 3", len(lap.Track.Trackpoints))
	}
}

func TestBuildStaticMetadata(t *testing.T) {
	doc := Build(testSession(hitrack.SportRunning))

	creator := doc.Activities.Activity.Creator
	if creator.Name != "Huawei Fitness Tracking Device" || creator.UnitID != "0000000000" || creator.ProductID != "0000" {
		t.Fatalf("creator = %+v", creator)
	}
	if creator.Version != (Version{}) {
		t.Fatalf("creator version = %+v, want all zeros", creator.Version)
	}
	if doc.Author.Name != "Huawei_TCX_Converter" || doc.Author.LangID != "en" || doc.Author.PartNumber != "000-00000-00" {
		t.Fatalf("author = %+v", doc.Author)
	}
	want := Version{VersionMajor: 1, VersionMinor: 0, BuildMajor: 1, BuildMinor: 0}
	if doc.Author.Build.Version != want {
		t.Fatalf("author build = %+v, want %+v", doc.Author.Build.Version, want)
	}
}

func TestBuildTrackpointFields(t *testing.T) {
	doc := Build(testSession(hitrack.SportRunning))
	tps := doc.Activities.Activity.Laps[0].Track.Trackpoints

	first := tps[0]
	if first.Position == nil || first.Position.LatitudeDegrees != "41.1942105" {
		t.Fatalf("first position = %+v", first.Position)
	}
	if first.DistanceMeters != "0" || first.AltitudeMeters != "56" {
		t.Fatalf("first = %+v", first)
	}
	if first.HeartRateBpm == nil || first.HeartRateBpm.Value != 78 || first.HeartRateBpm.XsiType != "HeartRateInBeatsPerMinute_t" {
		t.Fatalf("first heart rate = %+v", first.HeartRateBpm)
	}

	// Sensor-only record: no position, no distance.
	second := tps[1]
	if second.Position != nil || second.DistanceMeters != "" {
		t.Fatalf("second = %+v", second)
	}
	// Running cadence travels in the TPX extension, not the Cadence element.
	if second.Cadence != "" || second.Extensions == nil || second.Extensions.TPX.RunCadence != 76 {
		t.Fatalf("running cadence = %+v", second)
	}
}

func TestBuildCadencePerSport(t *testing.T) {
	biking := Build(testSession(hitrack.SportBiking))
	tp := biking.Activities.Activity.Laps[0].Track.Trackpoints[1]
	if tp.Cadence != "76" || tp.Extensions != nil {
		t.Fatalf("biking cadence = %+v", tp)
	}

	swimming := Build(testSession(hitrack.SportSwimming))
	tp = swimming.Activities.Activity.Laps[0].Track.Trackpoints[1]
	if tp.Cadence != "" || tp.Extensions != nil {
		t.Fatalf("swimming cadence = %+v", tp)
	}
}

func TestBuildUndefinedLapDistanceSerializesZero(t *testing.T) {
	session := testSession(hitrack.SportRunning)
	session.Laps[0].Distance = nil

	doc := Build(session)
	if got := doc.Activities.Activity.Laps[0].DistanceMeters; got != 0 {
		t.Fatalf("distance = %d, want 0", got)
	}
}

func TestBuildTrackpointBoundariesInclusive(t *testing.T) {
	session := testSession(hitrack.SportRunning)
	session.Records = append(session.Records, hitrack.CompositeRecord{Time: 1542966700, HeartRate: iptr(90)})

	doc := Build(session)
	tps := doc.Activities.Activity.Laps[0].Track.Trackpoints
	if len(tps) != 3 {
		t.Fatalf("trackpoints = %d, want 3 (record after lap stop excluded)", len(tps))
	}
}

func TestMarshalledAttributes(t *testing.T) {
	doc := Build(testSession(hitrack.SportRunning))
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		`xsi:schemaLocation="` + SchemaLocation + `"`,
		`xmlns="` + Namespace + `"`,
		`xmlns:xsi="` + XSINamespace + `"`,
		`xmlns:ns3="` + ExtensionNamespace + `"`,
		`xsi:type="HeartRateInBeatsPerMinute_t"`,
		`xsi:type="Device_t"`,
		`xsi:type="Application_t"`,
		`Sport="Running"`,
		`StartTime="2018-11-23T09:51:02.000Z"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("marshalled document missing %q:\n%s", want, out)
		}
	}
}

func TestFormatTime(t *testing.T) {
	if got := FormatTime(1542966662); got != "2018-11-23T09:51:02.000Z" {
		t.Fatalf("FormatTime = %q", got)
	}
	// Fractional seconds truncate.
	if got := FormatTime(1542966662.9); got != "2018-11-23T09:51:02.000Z" {
		t.Fatalf("FormatTime with fraction = %q", got)
	}
}
