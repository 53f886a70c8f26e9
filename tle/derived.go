package tle

import (
	"math"
	"sync"
	"time"
)

// Physical constants for the semi-major-axis formula.
const (
	// muEarth is Earth's standard gravitational parameter, m^3/s^2.
	muEarth = 3.986004418e14

	microsPerDay = 86400 * 1e6
)

// derivedState holds the single-assignment cells backing the lazily computed
// quantities. Each cell is written at most once; concurrent readers either
// win the Do or wait on it, so a shared record needs no further locking.
type derivedState struct {
	epochOnce sync.Once
	epoch     time.Time

	axisOnce sync.Once
	axis     float64

	anomalyOnce sync.Once
	anomaly     float64
	anomalyErr  error
}

// Epoch returns the UTC instant the elements are valid for, reconstructed
// from the epoch year and the 1-based fractional day of year. Day 1.0 is
// January 1 at midnight; the fraction is applied at microsecond resolution
// through the calendar, so leap years fall out of time.Date.
func (r *Record) Epoch() time.Time {
	d := r.derived
	if d == nil {
		return epochFromYearDay(r.EpochYear, r.EpochDay)
	}
	d.epochOnce.Do(func() {
		d.epoch = epochFromYearDay(r.EpochYear, r.EpochDay)
	})
	return d.epoch
}

// SemiMajorAxis derives the semi-major axis in kilometres from the mean
// motion. The error return exists only to satisfy OrbitalElements; the
// unitless computation cannot fail.
func (r *Record) SemiMajorAxis() (float64, error) {
	d := r.derived
	if d == nil {
		return semiMajorAxisKm(r.MeanMotion), nil
	}
	d.axisOnce.Do(func() {
		d.axis = semiMajorAxisKm(r.MeanMotion)
	})
	return d.axis, nil
}

// TrueAnomaly derives the true anomaly in degrees, in [-180, 180]. The mean
// anomaly is wrapped into the principal range before the Kepler solve;
// feeding the solver an unwrapped angle near 360 degrees produces wrong
// results.
func (r *Record) TrueAnomaly() (float64, error) {
	d := r.derived
	if d == nil {
		return trueAnomalyDeg(r.MeanAnomaly, r.Eccentricity)
	}
	d.anomalyOnce.Do(func() {
		d.anomaly, d.anomalyErr = trueAnomalyDeg(r.MeanAnomaly, r.Eccentricity)
	})
	return d.anomaly, d.anomalyErr
}

func epochFromYearDay(year int, day float64) time.Time {
	base := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	micros := int64(math.Floor((day - 1) * microsPerDay))
	return base.Add(time.Duration(micros) * time.Microsecond)
}

// semiMajorAxisKm folds the rev/day -> rad/s conversion into the mean
// motion: n * 2*pi/86400 = n * pi/43200.
func semiMajorAxisKm(meanMotion float64) float64 {
	n := meanMotion * math.Pi / 43200
	return math.Cbrt(muEarth/(n*n)) / 1000
}

func trueAnomalyDeg(meanAnomalyDeg, ecc float64) (float64, error) {
	m := wrapDegrees(meanAnomalyDeg) * (math.Pi / 180)
	nu, err := MeanToTrue(m, ecc)
	if err != nil {
		return 0, err
	}
	return nu * (180 / math.Pi), nil
}
