package tle

import (
	"errors"
	"strings"
	"testing"
)

const (
	issName  = "ISS (ZARYA)"
	issLine1 = "1 25544U 98067A   19249.04864348  .00001909  00000-0  40858-4 0  9990"
	issLine2 = "2 25544  51.6464 320.1755 0007999  10.9066  53.2893 15.50437522187805"

	onewebName  = "ONEWEB-0012"
	onewebLine1 = "1 44057U 19010A   19290.71624163  .00000233  00000-0  58803-3 0  9997"
	onewebLine2 = "2 44057  87.9055  22.9851 0002022  94.9226 265.2135 13.15296315 30734"
)

func mustParseISS(t *testing.T) *Record {
	t.Helper()
	rec, err := FromLines(issName, issLine1, issLine2)
	if err != nil {
		t.Fatalf("FromLines: %v", err)
	}
	return rec
}

func TestFromLinesISS(t *testing.T) {
	rec := mustParseISS(t)

	if rec.Name != "ISS (ZARYA)" {
		t.Errorf("Name = %q", rec.Name)
	}
	if rec.NoradID != "25544" {
		t.Errorf("NoradID = %q, want 25544", rec.NoradID)
	}
	if rec.Classification != 'U' {
		t.Errorf("Classification = %c, want U", rec.Classification)
	}
	if rec.IntlDesignator != "98067A" {
		t.Errorf("IntlDesignator = %q, want 98067A", rec.IntlDesignator)
	}
	if rec.EpochYear != 2019 {
		t.Errorf("EpochYear = %d, want 2019", rec.EpochYear)
	}
	if rec.EpochDay != 249.04864348 {
		t.Errorf("EpochDay = %v, want 249.04864348", rec.EpochDay)
	}
	if rec.MeanMotionDot != 1.909e-5 {
		t.Errorf("MeanMotionDot = %v, want 1.909e-5", rec.MeanMotionDot)
	}
	if rec.MeanMotionDDot != 0 {
		t.Errorf("MeanMotionDDot = %v, want 0", rec.MeanMotionDDot)
	}
	if rec.Bstar != 4.0858e-5 {
		t.Errorf("Bstar = %v, want 4.0858e-5", rec.Bstar)
	}
	if rec.ElementSetNumber != 999 {
		t.Errorf("ElementSetNumber = %d, want 999", rec.ElementSetNumber)
	}
	if rec.Inclination != 51.6464 {
		t.Errorf("Inclination = %v, want 51.6464", rec.Inclination)
	}
	if rec.RAAN != 320.1755 {
		t.Errorf("RAAN = %v, want 320.1755", rec.RAAN)
	}
	if rec.Eccentricity != 0.0007999 {
		t.Errorf("Eccentricity = %v, want 0.0007999", rec.Eccentricity)
	}
	if rec.ArgPerigee != 10.9066 {
		t.Errorf("ArgPerigee = %v, want 10.9066", rec.ArgPerigee)
	}
	if rec.MeanAnomaly != 53.2893 {
		t.Errorf("MeanAnomaly = %v, want 53.2893", rec.MeanAnomaly)
	}
	if rec.MeanMotion != 15.50437522 {
		t.Errorf("MeanMotion = %v, want 15.50437522", rec.MeanMotion)
	}
	if rec.RevNumber != 18780 {
		t.Errorf("RevNumber = %d, want 18780", rec.RevNumber)
	}
}

func TestFromLinesTrimsName(t *testing.T) {
	rec, err := FromLines("  ISS (ZARYA)  ", issLine1, issLine2)
	if err != nil {
		t.Fatalf("FromLines: %v", err)
	}
	if rec.Name != "ISS (ZARYA)" {
		t.Errorf("Name = %q, want trimmed", rec.Name)
	}
}

func TestFromLinesShortLine(t *testing.T) {
	_, err := FromLines(issName, issLine1[:40], issLine2)
	var mle *MalformedLineError
	if !errors.As(err, &mle) {
		t.Fatalf("err = %v, want MalformedLineError", err)
	}
	if mle.Line != 1 || mle.Length != 40 {
		t.Errorf("MalformedLineError = %+v", mle)
	}

	_, err = FromLines(issName, issLine1, issLine2[:10])
	if !errors.As(err, &mle) {
		t.Fatalf("err = %v, want MalformedLineError", err)
	}
	if mle.Line != 2 {
		t.Errorf("MalformedLineError.Line = %d, want 2", mle.Line)
	}
}

func TestFromLinesMarkerMismatch(t *testing.T) {
	// Lines swapped: line 2 arrives in position 1.
	_, err := FromLines(issName, issLine2, issLine1)
	var lnm *LineNumberMismatchError
	if !errors.As(err, &lnm) {
		t.Fatalf("err = %v, want LineNumberMismatchError", err)
	}
	if lnm.Want != '1' || lnm.Got != '2' {
		t.Errorf("LineNumberMismatchError = %+v", lnm)
	}
}

func TestFromLinesBadNumericField(t *testing.T) {
	bad := issLine1[:20] + "24X.04864348" + issLine1[32:]
	_, err := FromLines(issName, bad, issLine2)
	var fde *FieldDecodeError
	if !errors.As(err, &fde) {
		t.Fatalf("err = %v, want FieldDecodeError", err)
	}
	if fde.Field != "epoch_day" {
		t.Errorf("FieldDecodeError.Field = %q, want epoch_day", fde.Field)
	}
	if !strings.Contains(fde.Raw, "24X") {
		t.Errorf("FieldDecodeError.Raw = %q, want raw column text", fde.Raw)
	}
}

func TestFromLinesBadClassification(t *testing.T) {
	bad := issLine1[:7] + "X" + issLine1[8:]
	_, err := FromLines(issName, bad, issLine2)
	var fde *FieldDecodeError
	if !errors.As(err, &fde) {
		t.Fatalf("err = %v, want FieldDecodeError", err)
	}
	if fde.Field != "classification" {
		t.Errorf("FieldDecodeError.Field = %q, want classification", fde.Field)
	}
}

func TestParseAll(t *testing.T) {
	lines := []string{
		issName, issLine1, issLine2,
		onewebName, onewebLine1, onewebLine2,
	}
	records, err := ParseAll(lines)
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].NoradID != "25544" || records[1].NoradID != "44057" {
		t.Errorf("NoradIDs = %q, %q", records[0].NoradID, records[1].NoradID)
	}
}

func TestParseAllDropsShortRemainder(t *testing.T) {
	lines := []string{
		issName, issLine1, issLine2,
		onewebName, onewebLine1, // incomplete triplet
	}
	records, err := ParseAll(lines)
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
}

func TestParseAllAbortsOnBadTriplet(t *testing.T) {
	lines := []string{
		issName, issLine1, issLine2,
		onewebName, onewebLine1[:30], onewebLine2,
	}
	records, err := ParseAll(lines)
	if err == nil {
		t.Fatal("ParseAll: expected error for truncated line")
	}
	if len(records) != 1 {
		t.Errorf("len(records) = %d, want the 1 record before the failure", len(records))
	}
	var mle *MalformedLineError
	if !errors.As(err, &mle) {
		t.Errorf("err = %v, want wrapped MalformedLineError", err)
	}
}
