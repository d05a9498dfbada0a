package pipeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	hitrack "github.com/mbee/hitrack2tcx"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func TestMergeCoalescesSharedTimestamps(t *testing.T) {
	set := &hitrack.SampleSet{
		GPS: []hitrack.GpsSample{
			{Time: 100, Lat: 41.1, Lon: -8.6, Distance: 0},
			{Time: 110, Lat: 41.2, Lon: -8.7, Distance: 12.5},
		},
		Altitude:  []hitrack.AltitudeSample{{Time: 100, Altitude: 56}},
		HeartRate: []hitrack.HeartRateSample{{Time: 100, BPM: 78}, {Time: 105, BPM: 80}},
		Cadence:   []hitrack.CadenceSample{{Time: 110, RPM: 76}},
	}

	got := Merge(set)

	want := []hitrack.CompositeRecord{
		{Time: 100, Lat: fptr(41.1), Lon: fptr(-8.6), Distance: fptr(0), Altitude: fptr(56), HeartRate: iptr(78)},
		{Time: 105, HeartRate: iptr(80)},
		{Time: 110, Lat: fptr(41.2), Lon: fptr(-8.7), Distance: fptr(12.5), Cadence: iptr(76)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merged records mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeOneRecordPerTimestamp(t *testing.T) {
	set := &hitrack.SampleSet{
		GPS:       []hitrack.GpsSample{{Time: 100, Lat: 41.1, Lon: -8.6}},
		Altitude:  []hitrack.AltitudeSample{{Time: 100, Altitude: 56}},
		HeartRate: []hitrack.HeartRateSample{{Time: 100, BPM: 78}},
		Cadence:   []hitrack.CadenceSample{{Time: 100, RPM: 76}},
	}

	got := Merge(set)
	if len(got) != 1 {
		t.Fatalf("records = %d, want 1", len(got))
	}
	r := got[0]
	if !r.HasPosition() || r.Altitude == nil || r.HeartRate == nil || r.Cadence == nil {
		t.Fatalf("record missing fields: %+v", r)
	}
}

func TestMergeChronologicalOrder(t *testing.T) {
	set := &hitrack.SampleSet{
		HeartRate: []hitrack.HeartRateSample{{Time: 300, BPM: 90}, {Time: 100, BPM: 70}},
		Cadence:   []hitrack.CadenceSample{{Time: 200, RPM: 80}},
	}

	got := Merge(set)
	if len(got) != 3 {
		t.Fatalf("records = %d, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Time >= got[i].Time {
			t.Fatalf("records out of order at %d: %+v", i, got)
		}
	}
}

func TestMergeEmptySet(t *testing.T) {
	got := Merge(&hitrack.SampleSet{})
	if len(got) != 0 {
		t.Fatalf("records = %v, want none", got)
	}
}

func TestMergeLeavesInputUntouched(t *testing.T) {
	set := &hitrack.SampleSet{
		GPS:      []hitrack.GpsSample{{Time: 100, Lat: 41.1, Lon: -8.6}},
		Altitude: []hitrack.AltitudeSample{{Time: 100, Altitude: 56}},
	}

	_ = Merge(set)
	if len(set.GPS) != 1 || len(set.Altitude) != 1 {
		t.Fatalf("input streams changed: %+v", set)
	}
}
