package unit

import (
	"math"
	"testing"
)

func TestDefaultTableConversions(t *testing.T) {
	table := DefaultTable()

	cases := []struct {
		q    Quantity
		to   Unit
		want float64
	}{
		{New(180, Degree), Radian, math.Pi},
		{New(math.Pi, Radian), Degree, 180},
		{New(1, RevPerDay), RadianPerSecond, 2 * math.Pi / 86400},
		{New(1, Kilometer), Meter, 1000},
		{New(2500, Meter), Kilometer, 2.5},
	}
	for _, tc := range cases {
		got, err := table.Convert(tc.q, tc.to)
		if err != nil {
			t.Errorf("Convert(%v, %v): %v", tc.q, tc.to, err)
			continue
		}
		if math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("Convert(%v, %v) = %v, want %v", tc.q, tc.to, got, tc.want)
		}
	}
}

func TestConvertIdentity(t *testing.T) {
	table := DefaultTable()
	got, err := table.Convert(New(51.6464, Degree), Degree)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if got != 51.6464 {
		t.Errorf("identity conversion = %v, want 51.6464", got)
	}
}

func TestConvertUnknownPair(t *testing.T) {
	table := DefaultTable()
	if _, err := table.Convert(New(1, PerEarthRadius), Meter); err == nil {
		t.Error("Convert: expected error for pair not in table")
	}
}

func TestQuantityEqual(t *testing.T) {
	if !New(1, Degree).Equal(New(1, Degree)) {
		t.Error("equal quantities compare unequal")
	}
	if New(1, Degree).Equal(New(1, Radian)) {
		t.Error("quantities with different tags compare equal")
	}
}
