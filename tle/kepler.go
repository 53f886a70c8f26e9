package tle

import "math"

// Newton iteration bounds for the Kepler solve. The tolerance is on the
// step size in radians; the cap guarantees termination.
const (
	keplerTolerance = 1e-8
	keplerMaxIter   = 50
)

// wrapDegrees maps an angle in degrees into [-180, 180).
func wrapDegrees(deg float64) float64 {
	w := math.Mod(deg+180, 360)
	if w < 0 {
		w += 360
	}
	return w - 180
}

// MeanToTrue converts a mean anomaly to a true anomaly, both in radians,
// for an elliptical orbit of eccentricity ecc. The mean anomaly must
// already lie in [-pi, pi]; wrap it first (wrapDegrees, or the Record
// accessors which do this for you). Kepler's equation M = E - e*sin(E) is
// solved for the eccentric anomaly by Newton iteration starting at E = M,
// then mapped to the true anomaly through the half-angle identity.
func MeanToTrue(m, ecc float64) (float64, error) {
	if ecc < 0 || ecc >= 1 {
		return 0, ErrInvalidEccentricity
	}
	// Small slack only for values that round onto the boundary.
	if m < -math.Pi-1e-12 || m > math.Pi+1e-12 {
		return 0, ErrMeanAnomalyRange
	}

	e := m
	converged := false
	for i := 0; i < keplerMaxIter; i++ {
		step := (e - ecc*math.Sin(e) - m) / (1 - ecc*math.Cos(e))
		e -= step
		if math.Abs(step) < keplerTolerance {
			converged = true
			break
		}
	}
	if !converged {
		return 0, ErrNoConvergence
	}

	sinHalf := math.Sqrt(1+ecc) * math.Sin(e/2)
	cosHalf := math.Sqrt(1-ecc) * math.Cos(e/2)
	return 2 * math.Atan2(sinHalf, cosHalf), nil
}
