package tle

import (
	"strconv"
	"strings"
)

// Element lines carry their last field up to column 68 (the trailing
// checksum column is not read).
const (
	line1Need = 68
	line2Need = 68
)

// slice extracts the half-open column range [start, end). Callers check the
// line length up front with checkLength; slice itself does not validate.
func slice(line string, start, end int) string {
	return line[start:end]
}

func checkLength(lineNum int, line string, need int) error {
	if len(line) < need {
		return &MalformedLineError{Line: lineNum, Length: len(line), Need: need}
	}
	return nil
}

// decodeFloat parses an ordinary decimal field, tolerating the column
// padding the format uses (" .00001909", "-.00000034", " 51.6464").
func decodeFloat(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &FieldDecodeError{Field: field, Raw: raw, err: err}
	}
	return v, nil
}

func decodeInt(field, raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &FieldDecodeError{Field: field, Raw: raw, err: err}
	}
	return v, nil
}

// decodeImpliedDecimal parses a field whose leading "0." is implied by the
// format: "0007999" means 0.0007999. Used for the eccentricity.
func decodeImpliedDecimal(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat("."+raw, 64)
	if err != nil {
		return 0, &FieldDecodeError{Field: field, Raw: raw, err: err}
	}
	return v, nil
}

// decodeImpliedExponent parses the 8-character exponential fields
// (second derivative of mean motion, BSTAR): a sign or space, five mantissa
// digits with the decimal point implied after the sign, then a signed
// one-digit exponent. " 12345-3" means +0.12345e-3.
func decodeImpliedExponent(field, raw string) (float64, error) {
	if len(raw) != 8 {
		return 0, &FieldDecodeError{Field: field, Raw: raw}
	}
	sign := raw[0]
	if sign == ' ' {
		sign = '+'
	}
	v, err := strconv.ParseFloat(string(sign)+"."+raw[1:6]+"e"+raw[6:8], 64)
	if err != nil {
		return 0, &FieldDecodeError{Field: field, Raw: raw, err: err}
	}
	return v, nil
}

// decodeYear resolves the two-digit epoch year against the 1957 pivot: the
// format predates no launch, so 57..99 map into the 1900s and 00..56 into
// the 2000s.
func decodeYear(field, raw string) (int, error) {
	y, err := decodeInt(field, raw)
	if err != nil {
		return 0, err
	}
	return resolveYear(y), nil
}

func resolveYear(y int) int {
	if y >= 57 {
		return 1900 + y
	}
	return 2000 + y
}
