package igc

import(
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/skypies/geo"

	"github.com/skypies/flightlog"
)

// MalformedRecordError describes a single line that Decode could not use. These never
// stop a decode; they are collected in the DecodeReport.
type MalformedRecordError struct {
	Line   int    // 1-based
	Text   string
	Reason string
}

func (e *MalformedRecordError)Error() string {
	return fmt.Sprintf("igc: line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// DecodeReport says what happened to the lines that did not turn into trackpoints.
type DecodeReport struct {
	Date    time.Time // From the last date header seen; zero if none
	Fixes   int       // B records that parsed
	Skipped []*MalformedRecordError
}

// Err folds all the skipped lines into one error, or nil if nothing was skipped.
func (r DecodeReport)Err() error {
	errs := make([]error, 0, len(r.Skipped))
	for _,e := range r.Skipped {
		errs = append(errs, e)
	}
	return errors.Join(errs...)
}

func (r DecodeReport)String() string {
	return fmt.Sprintf("%d fixes decoded, %d lines skipped", r.Fixes, len(r.Skipped))
}

// If a fix's time-of-day is this far behind the previous one, the flight crossed
// midnight UTC.
const midnightRolloverThreshold = 12 * time.Hour

// Decode reads the fixes out of an IGC document. Lines that can't be parsed are
// skipped and reported; decoding never fails outright. A document with no usable B
// records yields an empty track.
//
// The decoded trackpoints carry position, altitude and (when our own extension is
// present) accuracy. Speed and vario are left at zero; see Track.DeriveRates.
func Decode(text string) (flightlog.Track, DecodeReport) {
	t := flightlog.Track{}
	report := DecodeReport{}

	var date time.Time
	dayOffset := 0
	var prev time.Time

	skip := func(r Record, reason string) {
		report.Skipped = append(report.Skipped, &MalformedRecordError{Line:r.Line, Text:r.Text, Reason:reason})
	}

	for _,r := range Parse(text) {
		switch r.Kind {
		case Header:
			if !strings.HasPrefix(r.Text, "HFDTE") { continue }
			d,err := parseDateHeader(r.Text)
			if err != nil {
				skip(r, err.Error())
				continue
			}
			date, report.Date, dayOffset, prev = d, d, 0, time.Time{}

		case Fix:
			if date.IsZero() {
				skip(r, "fix before date header")
				continue
			}
			tp,err := parseFixRecord(r.Text, date.AddDate(0,0,dayOffset))
			if err != nil {
				skip(r, err.Error())
				continue
			}
			if !prev.IsZero() && tp.TimestampUTC.Before(prev.Add(-midnightRolloverThreshold)) {
				dayOffset++
				tp.TimestampUTC = tp.TimestampUTC.AddDate(0,0,1)
			}
			prev = tp.TimestampUTC
			t = append(t, tp)
		}
	}

	report.Fixes = len(t)
	return t, report
}

// parseDateHeader handles both "HFDTE150124" and the IGC 2.0 "HFDTEDATE:150124,01".
func parseDateHeader(line string) (time.Time, error) {
	s := strings.TrimPrefix(line, "HFDTE")
	s = strings.TrimPrefix(s, "DATE:")
	if len(s) < 6 { return time.Time{}, fmt.Errorf("date header too short") }

	day,err1 := parseDigits(s[0:2])
	month,err2 := parseDigits(s[2:4])
	yy,err3 := parseDigits(s[4:6])
	if err := errors.Join(err1, err2, err3); err != nil {
		return time.Time{}, fmt.Errorf("bad date: %v", err)
	}
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("date out of range")
	}

	year := 2000 + yy
	if yy >= 80 { year = 1900 + yy }

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day {
		return time.Time{}, fmt.Errorf("no such date")
	}
	return d, nil
}

// parseFixRecord pulls a trackpoint out of a B record. Offsets are 0-based:
//   [1:7] HHMMSS  [7:15] DDMMmmmN  [15:24] DDDMMmmmE  [24] validity
//   [25:30] pressure alt  [30:35] GPS alt  [35:37] FXA  [37:39] SIU
func parseFixRecord(line string, day time.Time) (flightlog.Trackpoint, error) {
	tp := flightlog.Trackpoint{}
	if len(line) < MinFixRecordLength {
		return tp, fmt.Errorf("fix too short (%d chars)", len(line))
	}

	hh,err1 := parseDigits(line[1:3])
	mm,err2 := parseDigits(line[3:5])
	ss,err3 := parseDigits(line[5:7])
	if err := errors.Join(err1, err2, err3); err != nil {
		return tp, fmt.Errorf("bad time: %v", err)
	}
	if hh > 23 || mm > 59 || ss > 59 {
		return tp, fmt.Errorf("time out of range")
	}

	lat,err := parseAngle(line[7:15], 2, 'N', 'S', 90)
	if err != nil { return tp, fmt.Errorf("bad latitude: %v", err) }
	long,err := parseAngle(line[15:24], 3, 'E', 'W', 180)
	if err != nil { return tp, fmt.Errorf("bad longitude: %v", err) }

	if v := line[24]; v != 'A' && v != 'V' {
		return tp, fmt.Errorf("bad validity %q", v)
	}

	pressAlt,err := parseAltitude(line[25:30])
	if err != nil { return tp, fmt.Errorf("bad pressure altitude: %v", err) }
	gpsAlt,err := parseAltitude(line[30:35])
	if err != nil { return tp, fmt.Errorf("bad GPS altitude: %v", err) }
	if gpsAlt == 0 { gpsAlt = pressAlt }

	tp.TimestampUTC = day.Add(time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute +
		time.Duration(ss)*time.Second)
	tp.Latlong = geo.Latlong{Lat:lat, Long:long}
	tp.Altitude = float64(gpsAlt)

	// Our own layout puts the accuracy straight after the altitudes; 99 means unknown.
	if len(line) == FixRecordLength {
		if acc,err := parseDigits(line[35:37]); err == nil && acc < 99 {
			tp.Accuracy = float64(acc)
		}
	}

	return tp, nil
}

// parseAngle is the inverse of formatAngle.
func parseAngle(s string, degWidth int, pos, neg byte, maxDeg int) (float64, error) {
	deg,err1 := parseDigits(s[0:degWidth])
	mins,err2 := parseDigits(s[degWidth:degWidth+2])
	frac,err3 := parseDigits(s[degWidth+2:degWidth+5])
	if err := errors.Join(err1, err2, err3); err != nil { return 0, err }
	if deg > maxDeg || mins > 59 {
		return 0, fmt.Errorf("out of range")
	}

	v := float64(deg) + (float64(mins) + float64(frac)/1000.0) / 60.0
	if v > float64(maxDeg) {
		return 0, fmt.Errorf("out of range")
	}

	switch s[degWidth+5] {
	case pos: return v, nil
	case neg: return -v, nil
	}
	return 0, fmt.Errorf("bad hemisphere %q", s[degWidth+5])
}

// parseDigits is strict: strconv.Atoi would let signs and spaces through.
func parseDigits(s string) (int, error) {
	if s == "" { return 0, fmt.Errorf("empty field") }
	n := 0
	for i:=0; i<len(s); i++ {
		if s[i] < '0' || s[i] > '9' { return 0, fmt.Errorf("non-numeric field %q", s) }
		n = n*10 + int(s[i]-'0')
	}
	return n, nil
}

func parseAltitude(s string) (int, error) {
	if strings.HasPrefix(s, "-") {
		n,err := parseDigits(s[1:])
		return -n, err
	}
	return parseDigits(s)
}
