package tle

import (
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
)

// Satellite initialises an SGP4 propagation model from the record. The
// record is serialized back into element lines because that is the only
// construction path the propagator exposes; for records parsed from
// canonical lines this reproduces the input exactly.
func (r *Record) Satellite(gravity satellite.Gravity) satellite.Satellite {
	_, line1, line2 := r.ToLines()
	return satellite.TLEToSat(line1, line2, gravity)
}

// PositionECEF propagates the record to the given wall-clock time and
// returns the Earth-fixed position in kilometres, using the WGS72 gravity
// model the element sets are fitted against.
func (r *Record) PositionECEF(t time.Time) (x, y, z float64) {
	sat := r.Satellite(satellite.GravityWGS72)

	t = t.UTC()
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	posECI, _ := satellite.Propagate(sat, year, int(month), day, hour, min, sec)
	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	gmst := satellite.ThetaG_JD(jd)
	posECEF := satellite.ECIToECEF(posECI, gmst)

	return posECEF.X, posECEF.Y, posECEF.Z
}
