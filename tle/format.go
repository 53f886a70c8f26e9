package tle

import (
	"fmt"
	"math"
	"strconv"
)

// Checksum computes the modulo-10 line checksum: the sum of all digits,
// with each minus sign counting one.
func Checksum(line string) int {
	sum := 0
	for i := 0; i < len(line); i++ {
		switch c := line[i]; {
		case c >= '0' && c <= '9':
			sum += int(c - '0')
		case c == '-':
			sum++
		}
	}
	return sum % 10
}

// ToLines renders the record back into canonical 69-column element lines,
// checksums included. Records parsed from canonical lines round-trip
// exactly; directly constructed records round-trip on every stored field as
// long as their values fit the format's column precision.
func (r *Record) ToLines() (name, line1, line2 string) {
	body1 := fmt.Sprintf("1 %5s%c %-8s %02d%012.8f %s %s %s 0 %4d",
		r.NoradID,
		r.Classification,
		r.IntlDesignator,
		r.EpochYear%100,
		r.EpochDay,
		formatMeanMotionDot(r.MeanMotionDot),
		formatImpliedExponent(r.MeanMotionDDot),
		formatImpliedExponent(r.Bstar),
		r.ElementSetNumber,
	)
	body2 := fmt.Sprintf("2 %5s %8.4f %8.4f %07d %8.4f %8.4f %11.8f%5d",
		r.NoradID,
		r.Inclination,
		r.RAAN,
		int(math.Round(r.Eccentricity*1e7)),
		r.ArgPerigee,
		r.MeanAnomaly,
		r.MeanMotion,
		r.RevNumber,
	)
	return r.Name,
		body1 + strconv.Itoa(Checksum(body1)),
		body2 + strconv.Itoa(Checksum(body2))
}

// formatMeanMotionDot renders the first-derivative field, a signed decimal
// with the leading zero suppressed: " .00001909", "-.00000034".
func formatMeanMotionDot(v float64) string {
	sign := byte(' ')
	if math.Signbit(v) {
		sign = '-'
	}
	s := strconv.FormatFloat(math.Abs(v), 'f', 8, 64)
	if len(s) > 0 && s[0] == '0' {
		s = s[1:]
	}
	return string(sign) + s
}

// formatImpliedExponent renders the 8-character exponential fields: sign,
// five mantissa digits with the point implied, signed one-digit exponent.
// 4.0858e-5 becomes " 40858-4"; zero is written " 00000-0" as NORAD does.
func formatImpliedExponent(v float64) string {
	if v == 0 {
		return " 00000-0"
	}
	sign := byte(' ')
	if math.Signbit(v) {
		sign = '-'
	}
	abs := math.Abs(v)

	// Pick exp so that abs/10^exp is in [0.1, 1).
	exp := int(math.Floor(math.Log10(abs))) + 1
	digits := int(math.Round(abs / math.Pow(10, float64(exp)) * 1e5))
	if digits >= 100000 {
		// Rounding carried the mantissa past five digits.
		digits /= 10
		exp++
	}
	return fmt.Sprintf("%c%05d%+d", sign, digits, exp)
}
