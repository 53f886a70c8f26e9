package tle

import "fmt"

// FromLines parses a single TLE from its name line and two element lines.
// Column offsets follow the canonical 69-column format; the trailing
// checksum column is ignored. Lines must carry their marker digit ('1' and
// '2') in column 0, and must be long enough to hold every field.
func FromLines(name, line1, line2 string) (*Record, error) {
	if err := checkLength(1, line1, line1Need); err != nil {
		return nil, err
	}
	if err := checkLength(2, line2, line2Need); err != nil {
		return nil, err
	}
	if line1[0] != '1' {
		return nil, &LineNumberMismatchError{Want: '1', Got: line1[0]}
	}
	if line2[0] != '2' {
		return nil, &LineNumberMismatchError{Want: '2', Got: line2[0]}
	}

	epochYear, err := decodeYear("epoch_year", slice(line1, 18, 20))
	if err != nil {
		return nil, err
	}
	epochDay, err := decodeFloat("epoch_day", slice(line1, 20, 32))
	if err != nil {
		return nil, err
	}
	meanMotionDot, err := decodeFloat("mean_motion_dot", slice(line1, 33, 43))
	if err != nil {
		return nil, err
	}
	meanMotionDDot, err := decodeImpliedExponent("mean_motion_ddot", slice(line1, 44, 52))
	if err != nil {
		return nil, err
	}
	bstar, err := decodeImpliedExponent("bstar", slice(line1, 53, 61))
	if err != nil {
		return nil, err
	}
	setNum, err := decodeInt("element_set_number", slice(line1, 64, 68))
	if err != nil {
		return nil, err
	}

	inclination, err := decodeFloat("inclination", slice(line2, 8, 16))
	if err != nil {
		return nil, err
	}
	raan, err := decodeFloat("raan", slice(line2, 17, 25))
	if err != nil {
		return nil, err
	}
	eccentricity, err := decodeImpliedDecimal("eccentricity", slice(line2, 26, 33))
	if err != nil {
		return nil, err
	}
	argPerigee, err := decodeFloat("arg_perigee", slice(line2, 34, 42))
	if err != nil {
		return nil, err
	}
	meanAnomaly, err := decodeFloat("mean_anomaly", slice(line2, 43, 51))
	if err != nil {
		return nil, err
	}
	meanMotion, err := decodeFloat("mean_motion", slice(line2, 52, 63))
	if err != nil {
		return nil, err
	}
	revNumber, err := decodeInt("rev_number", slice(line2, 63, 68))
	if err != nil {
		return nil, err
	}

	return NewRecord(Record{
		Name:             name,
		NoradID:          slice(line1, 2, 7),
		Classification:   line1[7],
		IntlDesignator:   slice(line1, 9, 17),
		EpochYear:        epochYear,
		EpochDay:         epochDay,
		MeanMotionDot:    meanMotionDot,
		MeanMotionDDot:   meanMotionDDot,
		Bstar:            bstar,
		ElementSetNumber: setNum,
		Inclination:      inclination,
		RAAN:             raan,
		Eccentricity:     eccentricity,
		ArgPerigee:       argPerigee,
		MeanAnomaly:      meanAnomaly,
		MeanMotion:       meanMotion,
		RevNumber:        revNumber,
	})
}

// ParseAll decodes consecutive name/line1/line2 triplets from a flat line
// sequence. A trailing group of fewer than three lines is discarded, the
// same way Partition drops a short remainder. The first bad triplet aborts
// the batch: the records decoded before it are returned alongside the
// error. Use Loader for a per-record error-collection policy.
func ParseAll(lines []string) ([]*Record, error) {
	groups := Partition(lines, 3)
	records := make([]*Record, 0, len(groups))
	for i, g := range groups {
		rec, err := FromLines(g[0], g[1], g[2])
		if err != nil {
			return records, fmt.Errorf("tle: record %d (%q): %w", i, g[0], err)
		}
		records = append(records, rec)
	}
	return records, nil
}
