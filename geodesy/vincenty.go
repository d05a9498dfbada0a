// Package geodesy computes geodesic distances on the WGS84 ellipsoid.
package geodesy

import (
	"fmt"
	"math"

	hitrack "github.com/mbee/hitrack2tcx"
)

// WGS84 ellipsoid.
const (
	semiMajorAxis = 6378137.0
	flattening    = 1 / 298.257223563
	semiMinorAxis = 6356752.314245

	maxIterations        = 200
	convergenceThreshold = 1e-12
)

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// ConvergenceError reports a coordinate pair for which the Vincenty iteration
// failed to converge. It must surface to the caller rather than degrade into
// a zero distance.
type ConvergenceError struct {
	P1 Point
	P2 Point
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("vincenty iteration did not converge between (%v, %v) and (%v, %v)",
		e.P1.Lat, e.P1.Lon, e.P2.Lat, e.P2.Lon)
}

// Distance returns the geodesic distance between p1 and p2 in meters, using
// Vincenty's inverse formula. Identical points short-circuit to 0 before any
// iteration (sinσ would be 0). The result is rounded to 6 decimal places.
func Distance(p1, p2 Point) (float64, error) {
	if p1.Lat == p2.Lat && p1.Lon == p2.Lon {
		return 0, nil
	}

	u1 := math.Atan((1 - flattening) * math.Tan(radians(p1.Lat)))
	u2 := math.Atan((1 - flattening) * math.Tan(radians(p2.Lat)))
	l := radians(p2.Lon - p1.Lon)
	lambda := l

	sinU1, cosU1 := math.Sin(u1), math.Cos(u1)
	sinU2, cosU2 := math.Sin(u2), math.Cos(u2)

	var sinSigma, cosSigma, sigma, cosSqAlpha, cos2SigmaM float64
	converged := false
	for i := 0; i < maxIterations; i++ {
		sinLambda, cosLambda := math.Sin(lambda), math.Cos(lambda)
		sinSigma = math.Sqrt(sq(cosU2*sinLambda) + sq(cosU1*sinU2-sinU1*cosU2*cosLambda))
		if sinSigma == 0 {
			// Coincident points reached through the iteration.
			return 0, nil
		}
		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)
		sinAlpha := cosU1 * cosU2 * sinLambda / sinSigma
		cosSqAlpha = 1 - sq(sinAlpha)
		if cosSqAlpha == 0 {
			// Equatorial line: cos²α is 0 and the cos2σm term drops out.
			cos2SigmaM = 0
		} else {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cosSqAlpha
		}
		c := flattening / 16 * cosSqAlpha * (4 + flattening*(4-3*cosSqAlpha))
		lambdaPrev := lambda
		lambda = l + (1-c)*flattening*sinAlpha*
			(sigma+c*sinSigma*(cos2SigmaM+c*cosSigma*(-1+2*sq(cos2SigmaM))))
		if math.Abs(lambda-lambdaPrev) < convergenceThreshold {
			converged = true
			break
		}
	}
	if !converged {
		return 0, &ConvergenceError{P1: p1, P2: p2}
	}

	uSq := cosSqAlpha * (sq(semiMajorAxis) - sq(semiMinorAxis)) / sq(semiMinorAxis)
	a := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	b := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	deltaSigma := b * sinSigma * (cos2SigmaM + b/4*(cosSigma*(-1+2*sq(cos2SigmaM))-
		b/6*cos2SigmaM*(-3+4*sq(sinSigma))*(-3+4*sq(cos2SigmaM))))
	s := semiMinorAxis * a * (sigma - deltaSigma)

	return round6(s), nil
}

// AccumulateDistances assigns each GPS sample its cumulative track distance:
// the previous sample's cumulative distance plus the pairwise geodesic
// distance to it. The slice must already be sorted ascending by time; the
// first sample's distance is exactly 0 and the series is non-decreasing.
func AccumulateDistances(gps []hitrack.GpsSample) error {
	for i := range gps {
		if i == 0 {
			gps[i].Distance = 0
			continue
		}
		d, err := Distance(
			Point{Lat: gps[i-1].Lat, Lon: gps[i-1].Lon},
			Point{Lat: gps[i].Lat, Lon: gps[i].Lon},
		)
		if err != nil {
			return err
		}
		gps[i].Distance = gps[i-1].Distance + d
	}
	return nil
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func sq(v float64) float64 { return v * v }

func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }
