package tle

import (
	"math"
	"sync"
	"time"

	"github.com/signalsfoundry/tlekit/unit"
)

// TaggedRecord is the unit-tagged variant of Record: every physical field
// carries an explicit unit tag, so downstream numeric interop cannot
// silently misread degrees as radians or revolutions as radians. It is a
// sibling of Record behind the OrbitalElements interface, not a subtype;
// the unit handling lives in the conversion table it is constructed with.
type TaggedRecord struct {
	Name             string
	NoradID          string
	Classification   byte
	IntlDesignator   string
	EpochYear        int
	EpochDay         float64
	MeanMotionDot    unit.Quantity // rev/day^2
	MeanMotionDDot   unit.Quantity // rev/day^3
	Bstar            unit.Quantity // 1/earthRad
	ElementSetNumber int
	Inclination      unit.Quantity // deg
	RAAN             unit.Quantity // deg
	Eccentricity     unit.Quantity // dimensionless
	ArgPerigee       unit.Quantity // deg
	MeanAnomaly      unit.Quantity // deg
	MeanMotion       unit.Quantity // rev/day
	RevNumber        int

	conv     unit.Table
	tderived *taggedDerived
}

type taggedDerived struct {
	axisOnce sync.Once
	axis     unit.Quantity
	axisErr  error

	anomalyOnce sync.Once
	anomaly     unit.Quantity
	anomalyErr  error

	epochOnce sync.Once
	epoch     time.Time
}

// FromLinesTagged parses a TLE into the unit-tagged variant, applying the
// same column map and validation as FromLines. The conversion table is
// passed explicitly; nil selects unit.DefaultTable.
func FromLinesTagged(name, line1, line2 string, conv unit.Table) (*TaggedRecord, error) {
	rec, err := FromLines(name, line1, line2)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		conv = unit.DefaultTable()
	}
	return &TaggedRecord{
		Name:             rec.Name,
		NoradID:          rec.NoradID,
		Classification:   rec.Classification,
		IntlDesignator:   rec.IntlDesignator,
		EpochYear:        rec.EpochYear,
		EpochDay:         rec.EpochDay,
		MeanMotionDot:    unit.New(rec.MeanMotionDot, unit.RevPerDay2),
		MeanMotionDDot:   unit.New(rec.MeanMotionDDot, unit.RevPerDay3),
		Bstar:            unit.New(rec.Bstar, unit.PerEarthRadius),
		ElementSetNumber: rec.ElementSetNumber,
		Inclination:      unit.New(rec.Inclination, unit.Degree),
		RAAN:             unit.New(rec.RAAN, unit.Degree),
		Eccentricity:     unit.New(rec.Eccentricity, unit.One),
		ArgPerigee:       unit.New(rec.ArgPerigee, unit.Degree),
		MeanAnomaly:      unit.New(rec.MeanAnomaly, unit.Degree),
		MeanMotion:       unit.New(rec.MeanMotion, unit.RevPerDay),
		RevNumber:        rec.RevNumber,
		conv:             conv,
		tderived:         &taggedDerived{},
	}, nil
}

// Epoch returns the UTC instant the elements are valid for.
func (r *TaggedRecord) Epoch() time.Time {
	d := r.tderived
	if d == nil {
		return epochFromYearDay(r.EpochYear, r.EpochDay)
	}
	d.epochOnce.Do(func() {
		d.epoch = epochFromYearDay(r.EpochYear, r.EpochDay)
	})
	return d.epoch
}

// SemiMajorAxisQuantity derives the semi-major axis as a tagged quantity in
// metres. The mean motion is converted to rad/s through the record's table
// before entering the vis-viva relation.
func (r *TaggedRecord) SemiMajorAxisQuantity() (unit.Quantity, error) {
	d := r.tderived
	if d == nil {
		return r.computeAxis()
	}
	d.axisOnce.Do(func() {
		d.axis, d.axisErr = r.computeAxis()
	})
	return d.axis, d.axisErr
}

// SemiMajorAxis returns the semi-major axis in kilometres, untagged, to
// satisfy OrbitalElements.
func (r *TaggedRecord) SemiMajorAxis() (float64, error) {
	q, err := r.SemiMajorAxisQuantity()
	if err != nil {
		return 0, err
	}
	table := r.conv
	if table == nil {
		table = unit.DefaultTable()
	}
	return table.Convert(q, unit.Kilometer)
}

// TrueAnomalyQuantity derives the true anomaly as a tagged quantity in
// degrees, in [-180, 180].
func (r *TaggedRecord) TrueAnomalyQuantity() (unit.Quantity, error) {
	d := r.tderived
	if d == nil {
		return r.computeAnomaly()
	}
	d.anomalyOnce.Do(func() {
		d.anomaly, d.anomalyErr = r.computeAnomaly()
	})
	return d.anomaly, d.anomalyErr
}

// TrueAnomaly returns the true anomaly in degrees, untagged, to satisfy
// OrbitalElements.
func (r *TaggedRecord) TrueAnomaly() (float64, error) {
	q, err := r.TrueAnomalyQuantity()
	if err != nil {
		return 0, err
	}
	return q.Value, nil
}

func (r *TaggedRecord) computeAxis() (unit.Quantity, error) {
	table := r.conv
	if table == nil {
		table = unit.DefaultTable()
	}
	n, err := table.Convert(r.MeanMotion, unit.RadianPerSecond)
	if err != nil {
		return unit.Quantity{}, err
	}
	return unit.New(math.Cbrt(muEarth/(n*n)), unit.Meter), nil
}

func (r *TaggedRecord) computeAnomaly() (unit.Quantity, error) {
	table := r.conv
	if table == nil {
		table = unit.DefaultTable()
	}
	m, err := table.Convert(unit.New(wrapDegrees(r.MeanAnomaly.Value), r.MeanAnomaly.Unit), unit.Radian)
	if err != nil {
		return unit.Quantity{}, err
	}
	nu, err := MeanToTrue(m, r.Eccentricity.Value)
	if err != nil {
		return unit.Quantity{}, err
	}
	deg, err := table.Convert(unit.New(nu, unit.Radian), unit.Degree)
	if err != nil {
		return unit.Quantity{}, err
	}
	return unit.New(deg, unit.Degree), nil
}
