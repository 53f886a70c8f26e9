package tle

import (
	"errors"
	"fmt"
)

// Derived-quantity failures, surfaced at access time.
var (
	// ErrNoConvergence means the Kepler iteration hit its cap without
	// meeting tolerance. Does not happen for eccentricities in [0, 1).
	ErrNoConvergence = errors.New("tle: kepler iteration did not converge")

	// ErrInvalidEccentricity rejects parabolic and hyperbolic orbits.
	ErrInvalidEccentricity = errors.New("tle: eccentricity outside [0, 1)")

	// ErrMeanAnomalyRange rejects a mean anomaly outside [-pi, pi]; callers
	// must wrap the angle first (Record and TaggedRecord do).
	ErrMeanAnomalyRange = errors.New("tle: mean anomaly outside [-pi, pi]")
)

// MalformedLineError reports an element line shorter than the last column
// its fields occupy.
type MalformedLineError struct {
	Line   int // 1 or 2
	Length int
	Need   int
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("tle: line %d has %d characters, need at least %d", e.Line, e.Length, e.Need)
}

// FieldDecodeError reports numeric text that does not match the grammar of
// the named field. It carries the raw column text for diagnostics.
type FieldDecodeError struct {
	Field string
	Raw   string
	err   error
}

func (e *FieldDecodeError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("tle: field %s: cannot decode %q: %v", e.Field, e.Raw, e.err)
	}
	return fmt.Sprintf("tle: field %s: cannot decode %q", e.Field, e.Raw)
}

func (e *FieldDecodeError) Unwrap() error { return e.err }

// LineNumberMismatchError reports a line whose leading marker digit does not
// match its expected position in the triplet.
type LineNumberMismatchError struct {
	Want byte
	Got  byte
}

func (e *LineNumberMismatchError) Error() string {
	return fmt.Sprintf("tle: expected element line %c, found marker %q", e.Want, string(e.Got))
}
