package tle

import (
	"math"
	"testing"

	"github.com/signalsfoundry/tlekit/unit"
)

func mustParseISSTagged(t *testing.T) *TaggedRecord {
	t.Helper()
	rec, err := FromLinesTagged(issName, issLine1, issLine2, nil)
	if err != nil {
		t.Fatalf("FromLinesTagged: %v", err)
	}
	return rec
}

func TestFromLinesTaggedFields(t *testing.T) {
	rec := mustParseISSTagged(t)

	if !rec.Inclination.Equal(unit.New(51.6464, unit.Degree)) {
		t.Errorf("Inclination = %v", rec.Inclination)
	}
	if !rec.MeanMotion.Equal(unit.New(15.50437522, unit.RevPerDay)) {
		t.Errorf("MeanMotion = %v", rec.MeanMotion)
	}
	if !rec.Bstar.Equal(unit.New(4.0858e-5, unit.PerEarthRadius)) {
		t.Errorf("Bstar = %v", rec.Bstar)
	}
	if !rec.Eccentricity.Equal(unit.New(0.0007999, unit.One)) {
		t.Errorf("Eccentricity = %v", rec.Eccentricity)
	}
	if rec.NoradID != "25544" || rec.EpochYear != 2019 {
		t.Errorf("NoradID = %q, EpochYear = %d", rec.NoradID, rec.EpochYear)
	}
}

func TestTaggedAgreesWithUnitless(t *testing.T) {
	// Both variants implement OrbitalElements and must agree numerically.
	var plain, tagged OrbitalElements = mustParseISS(t), mustParseISSTagged(t)

	if !plain.Epoch().Equal(tagged.Epoch()) {
		t.Errorf("epochs differ: %v vs %v", plain.Epoch(), tagged.Epoch())
	}

	aPlain, err := plain.SemiMajorAxis()
	if err != nil {
		t.Fatalf("SemiMajorAxis: %v", err)
	}
	aTagged, err := tagged.SemiMajorAxis()
	if err != nil {
		t.Fatalf("SemiMajorAxis (tagged): %v", err)
	}
	if math.Abs(aPlain-aTagged) > 1e-9 {
		t.Errorf("semi-major axes differ: %v vs %v km", aPlain, aTagged)
	}

	nuPlain, err := plain.TrueAnomaly()
	if err != nil {
		t.Fatalf("TrueAnomaly: %v", err)
	}
	nuTagged, err := tagged.TrueAnomaly()
	if err != nil {
		t.Fatalf("TrueAnomaly (tagged): %v", err)
	}
	if math.Abs(nuPlain-nuTagged) > 1e-9 {
		t.Errorf("true anomalies differ: %v vs %v deg", nuPlain, nuTagged)
	}
}

func TestTaggedQuantitiesCarryUnits(t *testing.T) {
	rec := mustParseISSTagged(t)

	a, err := rec.SemiMajorAxisQuantity()
	if err != nil {
		t.Fatalf("SemiMajorAxisQuantity: %v", err)
	}
	if a.Unit != unit.Meter {
		t.Errorf("a.Unit = %v, want metres", a.Unit)
	}
	if a.Value < 6.78e6 || a.Value > 6.81e6 {
		t.Errorf("a = %v m, want ISS semi-major axis", a.Value)
	}

	nu, err := rec.TrueAnomalyQuantity()
	if err != nil {
		t.Fatalf("TrueAnomalyQuantity: %v", err)
	}
	if nu.Unit != unit.Degree {
		t.Errorf("nu.Unit = %v, want degrees", nu.Unit)
	}
}

func TestTaggedEmptyTableFailsLoudly(t *testing.T) {
	// A table without the rev/day conversion cannot derive the semi-major
	// axis; the failure must surface instead of silently misreading units.
	rec, err := FromLinesTagged(issName, issLine1, issLine2, unit.Table{})
	if err != nil {
		t.Fatalf("FromLinesTagged: %v", err)
	}
	if _, err := rec.SemiMajorAxis(); err == nil {
		t.Error("SemiMajorAxis: expected conversion error with empty table")
	}
}
