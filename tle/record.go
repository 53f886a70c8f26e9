// Package tle decodes NORAD two-line element sets into typed records and
// derives the orbital quantities the element set implies: the epoch as a
// UTC timestamp, the semi-major axis, and the true anomaly at epoch.
package tle

import (
	"fmt"
	"strings"
	"time"
)

// Classification markers a record may carry.
const (
	Unclassified = 'U'
	Classified   = 'C'
	Secret       = 'S'
)

// OrbitalElements is the read surface shared by the unitless Record and the
// unit-tagged TaggedRecord: the epoch plus the two quantities derived from
// the stored elements.
type OrbitalElements interface {
	// Epoch returns the UTC instant the elements are valid for.
	Epoch() time.Time
	// SemiMajorAxis returns the orbit's semi-major axis in kilometres.
	SemiMajorAxis() (float64, error)
	// TrueAnomaly returns the true anomaly in degrees, in [-180, 180].
	TrueAnomaly() (float64, error)
}

// Record is a single parsed two-line element set. All numeric fields are in
// the units the TLE format itself uses (degrees, revolutions per day).
// String fields are trimmed at construction.
//
// A Record is immutable once built: treat the fields as read-only. Derived
// quantities are computed lazily and memoized, so a Record may be shared
// across goroutines freely.
type Record struct {
	Name             string
	NoradID          string
	Classification   byte
	IntlDesignator   string
	EpochYear        int     // four-digit Gregorian year
	EpochDay         float64 // 1-based day of year with fraction
	MeanMotionDot    float64 // first derivative of mean motion / 2
	MeanMotionDDot   float64 // second derivative of mean motion / 6
	Bstar            float64
	ElementSetNumber int
	Inclination      float64 // degrees
	RAAN             float64 // degrees
	Eccentricity     float64
	ArgPerigee       float64 // degrees
	MeanAnomaly      float64 // degrees
	MeanMotion       float64 // revolutions per day
	RevNumber        int

	derived *derivedState
}

// NewRecord builds a Record from already-typed field values, applying the
// same trimming and validation the line parser does. Use FromLines for raw
// element text.
func NewRecord(r Record) (*Record, error) {
	r.Name = strings.TrimSpace(r.Name)
	r.NoradID = strings.TrimSpace(r.NoradID)
	r.IntlDesignator = strings.TrimSpace(r.IntlDesignator)

	switch r.Classification {
	case Unclassified, Classified, Secret:
	default:
		return nil, &FieldDecodeError{Field: "classification", Raw: string(r.Classification)}
	}
	if r.Eccentricity < 0 || r.Eccentricity >= 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEccentricity, r.Eccentricity)
	}

	r.derived = &derivedState{}
	return &r, nil
}

// Equal reports whether two records agree on every stored field. Derived
// state never participates.
func (r *Record) Equal(o *Record) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.Name == o.Name &&
		r.NoradID == o.NoradID &&
		r.Classification == o.Classification &&
		r.IntlDesignator == o.IntlDesignator &&
		r.EpochYear == o.EpochYear &&
		r.EpochDay == o.EpochDay &&
		r.MeanMotionDot == o.MeanMotionDot &&
		r.MeanMotionDDot == o.MeanMotionDDot &&
		r.Bstar == o.Bstar &&
		r.ElementSetNumber == o.ElementSetNumber &&
		r.Inclination == o.Inclination &&
		r.RAAN == o.RAAN &&
		r.Eccentricity == o.Eccentricity &&
		r.ArgPerigee == o.ArgPerigee &&
		r.MeanAnomaly == o.MeanAnomaly &&
		r.MeanMotion == o.MeanMotion &&
		r.RevNumber == o.RevNumber
}

// AsTuple returns the stored field values in declaration order, matching the
// column order of the format.
func (r *Record) AsTuple() []any {
	return []any{
		r.Name,
		r.NoradID,
		string(r.Classification),
		r.IntlDesignator,
		r.EpochYear,
		r.EpochDay,
		r.MeanMotionDot,
		r.MeanMotionDDot,
		r.Bstar,
		r.ElementSetNumber,
		r.Inclination,
		r.RAAN,
		r.Eccentricity,
		r.ArgPerigee,
		r.MeanAnomaly,
		r.MeanMotion,
		r.RevNumber,
	}
}

// AsMap returns the stored fields keyed by name. With computed set it adds
// the derived "a" (km) and "nu" (degrees); with epoch set it adds "epoch".
// A Kepler failure on the derived true anomaly is returned as an error.
func (r *Record) AsMap(computed, epoch bool) (map[string]any, error) {
	m := map[string]any{
		"name":                     r.Name,
		"norad_id":                 r.NoradID,
		"classification":           string(r.Classification),
		"international_designator": r.IntlDesignator,
		"epoch_year":               r.EpochYear,
		"epoch_day":                r.EpochDay,
		"mean_motion_dot":          r.MeanMotionDot,
		"mean_motion_ddot":         r.MeanMotionDDot,
		"bstar":                    r.Bstar,
		"element_set_number":       r.ElementSetNumber,
		"inclination":              r.Inclination,
		"raan":                     r.RAAN,
		"eccentricity":             r.Eccentricity,
		"arg_perigee":              r.ArgPerigee,
		"mean_anomaly":             r.MeanAnomaly,
		"mean_motion":              r.MeanMotion,
		"rev_number":               r.RevNumber,
	}
	if computed {
		a, err := r.SemiMajorAxis()
		if err != nil {
			return nil, err
		}
		nu, err := r.TrueAnomaly()
		if err != nil {
			return nil, err
		}
		m["a"] = a
		m["nu"] = nu
	}
	if epoch {
		m["epoch"] = r.Epoch()
	}
	return m, nil
}

// RecordFromMap rebuilds a Record from an AsMap-shaped mapping. Derived keys
// ("a", "nu", "epoch") are ignored; every stored field must be present.
func RecordFromMap(m map[string]any) (*Record, error) {
	var r Record
	var err error

	if r.Name, err = stringField(m, "name"); err != nil {
		return nil, err
	}
	if r.NoradID, err = stringField(m, "norad_id"); err != nil {
		return nil, err
	}
	cls, err := stringField(m, "classification")
	if err != nil {
		return nil, err
	}
	if len(cls) != 1 {
		return nil, &FieldDecodeError{Field: "classification", Raw: cls}
	}
	r.Classification = cls[0]
	if r.IntlDesignator, err = stringField(m, "international_designator"); err != nil {
		return nil, err
	}
	if r.EpochYear, err = intField(m, "epoch_year"); err != nil {
		return nil, err
	}
	if r.EpochDay, err = floatField(m, "epoch_day"); err != nil {
		return nil, err
	}
	if r.MeanMotionDot, err = floatField(m, "mean_motion_dot"); err != nil {
		return nil, err
	}
	if r.MeanMotionDDot, err = floatField(m, "mean_motion_ddot"); err != nil {
		return nil, err
	}
	if r.Bstar, err = floatField(m, "bstar"); err != nil {
		return nil, err
	}
	if r.ElementSetNumber, err = intField(m, "element_set_number"); err != nil {
		return nil, err
	}
	if r.Inclination, err = floatField(m, "inclination"); err != nil {
		return nil, err
	}
	if r.RAAN, err = floatField(m, "raan"); err != nil {
		return nil, err
	}
	if r.Eccentricity, err = floatField(m, "eccentricity"); err != nil {
		return nil, err
	}
	if r.ArgPerigee, err = floatField(m, "arg_perigee"); err != nil {
		return nil, err
	}
	if r.MeanAnomaly, err = floatField(m, "mean_anomaly"); err != nil {
		return nil, err
	}
	if r.MeanMotion, err = floatField(m, "mean_motion"); err != nil {
		return nil, err
	}
	if r.RevNumber, err = intField(m, "rev_number"); err != nil {
		return nil, err
	}

	return NewRecord(r)
}

func stringField(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", fmt.Errorf("tle: map missing field %s", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("tle: map field %s: want string, got %T", key, v)
	}
	return s, nil
}

func intField(m map[string]any, key string) (int, error) {
	v, ok := m[key]
	if !ok {
		return 0, fmt.Errorf("tle: map missing field %s", key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("tle: map field %s: want integer, got %T", key, v)
	}
}

func floatField(m map[string]any, key string) (float64, error) {
	v, ok := m[key]
	if !ok {
		return 0, fmt.Errorf("tle: map missing field %s", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("tle: map field %s: want float, got %T", key, v)
	}
}
