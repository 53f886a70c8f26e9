// Package unit provides the small set of physical unit tags used by the
// unit-tagged TLE record variant. Conversions go through an explicit Table
// handed to the consumer rather than a process-wide registry, so two callers
// can never disagree about what a "revolution" means.
package unit

import (
	"fmt"
	"math"
)

// Unit tags a numeric value with its physical dimension and scale.
type Unit string

// Units appearing in TLE fields and in the derived-quantity formulas.
const (
	One             Unit = "1"
	Degree          Unit = "deg"
	Radian          Unit = "rad"
	RevPerDay       Unit = "rev/day"
	RevPerDay2      Unit = "rev/day2"
	RevPerDay3      Unit = "rev/day3"
	RadianPerSecond Unit = "rad/s"
	PerEarthRadius  Unit = "1/earthRad"
	Kilometer       Unit = "km"
	Meter           Unit = "m"
)

// Quantity is a value carrying its unit tag.
type Quantity struct {
	Value float64
	Unit  Unit
}

// New builds a Quantity.
func New(v float64, u Unit) Quantity { return Quantity{Value: v, Unit: u} }

func (q Quantity) String() string { return fmt.Sprintf("%g %s", q.Value, q.Unit) }

// Equal reports whether two quantities carry the same tag and the same value.
func (q Quantity) Equal(o Quantity) bool { return q.Unit == o.Unit && q.Value == o.Value }

// Table holds multiplicative conversion factors between unit tags.
// Identity conversions are implicit.
type Table map[Unit]map[Unit]float64

// DefaultTable covers every conversion the record variant needs: angles to
// radians, mean motion to rad/s, and lengths to metres. A revolution is one
// full turn (2*pi rad); a day is 86400 s.
func DefaultTable() Table {
	return Table{
		Degree: {
			Radian: math.Pi / 180,
		},
		Radian: {
			Degree: 180 / math.Pi,
		},
		RevPerDay: {
			RadianPerSecond: 2 * math.Pi / 86400,
		},
		RadianPerSecond: {
			RevPerDay: 86400 / (2 * math.Pi),
		},
		Kilometer: {
			Meter: 1000,
		},
		Meter: {
			Kilometer: 1e-3,
		},
	}
}

// Convert returns q's value expressed in the target unit. It fails when the
// table has no factor for the pair.
func (t Table) Convert(q Quantity, to Unit) (float64, error) {
	if q.Unit == to {
		return q.Value, nil
	}
	if factors, ok := t[q.Unit]; ok {
		if f, ok := factors[to]; ok {
			return q.Value * f, nil
		}
	}
	return 0, fmt.Errorf("unit: no conversion from %s to %s", q.Unit, to)
}

// MustConvert is Convert for pairs the caller knows are in the table.
// It panics on a missing conversion, which indicates a programming error.
func (t Table) MustConvert(q Quantity, to Unit) float64 {
	v, err := t.Convert(q, to)
	if err != nil {
		panic(err)
	}
	return v
}
