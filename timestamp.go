package hitrack

import "math"

// NormalizeTimestamp rescales a raw device timestamp of unknown magnitude to
// whole-second Unix epoch time. Devices emit seconds (t=1.543646826E9),
// milliseconds (t=1.55173212E12) or microseconds; the base-10 order of
// magnitude tells them apart without per-device configuration. A canonical
// timestamp has exactly 10 integer digits, so order of magnitude 9 passes
// through unchanged and anything else is shifted by the difference.
//
// A timestamp of exactly 0 bypasses normalization: log10(0) is undefined and
// zero only appears inside pause sentinels.
func NormalizeTimestamp(t float64) float64 {
	if t == 0 {
		return 0
	}
	oom := int(math.Floor(math.Log10(t)))
	if oom == 9 {
		return t
	}
	return t / math.Pow(10, float64(oom-9))
}
