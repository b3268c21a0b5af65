package igc

import(
	"fmt"
	"math"
	"strings"
	"time"
)

// All the fixed-width field formatting lives here, so that every numeric field is
// rounded the same way. The rule is round-half-away-from-zero (math.Round); the
// lat/long round trip depends on the encoder and decoder agreeing on it.

// NaN and the infinities have no integer value, so they round to 0.
func round(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) { return 0 }
	return int(math.Round(v))
}

// zeroPad left-pads a non-negative integer with zeros. Values too wide for the field
// are clamped to the largest value that fits.
func zeroPad(n, width int) string {
	if n < 0 { n = 0 }
	if max := int(math.Pow10(width)) - 1; n > max { n = max }
	return fmt.Sprintf("%0*d", width, n)
}

// fitString pads s on the right with pad, or truncates it, to exactly width bytes.
func fitString(s string, width int, pad byte) string {
	if len(s) >= width { return s[:width] }
	return s + strings.Repeat(string(pad), width-len(s))
}

// digitsOnly keeps the last width digits of s, zero-padded on the left.
func digitsOnly(s string, width int) string {
	d := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' { return r }
		return -1
	}, s)
	d = strings.Repeat("0", width) + d
	return d[len(d)-width:]
}

func formatDate(t time.Time) string { return t.UTC().Format("020106") }
func formatTime(t time.Time) string { return t.UTC().Format("150405") }

// formatAngle writes degrees, minutes and thousandths of a minute, then the hemisphere.
// A thousandths value that rounds up to 1000 carries into the minutes (and on into the
// degrees), so the fields never overflow.
func formatAngle(v float64, degWidth int, pos, neg byte) string {
	if math.IsNaN(v) || math.IsInf(v, 0) { v = 0 }
	abs := math.Abs(v)
	deg := math.Floor(abs)
	mins := (abs - deg) * 60.0
	minInt := math.Floor(mins)
	frac := round((mins - minInt) * 1000.0)

	d,m := int(deg), int(minInt)
	if frac >= 1000 { frac -= 1000; m++ }
	if m >= 60 { m -= 60; d++ }

	hemi := pos
	if v < 0 { hemi = neg }

	return zeroPad(d, degWidth) + zeroPad(m, 2) + zeroPad(frac, 3) + string(hemi)
}

func formatLatitude(lat float64) string { return formatAngle(lat, 2, 'N', 'S') }
func formatLongitude(long float64) string { return formatAngle(long, 3, 'E', 'W') }

// formatAltitude writes whole metres in five characters. Below sea level we follow
// the IGC convention of a leading minus and four digits.
func formatAltitude(alt float64) string {
	a := round(alt)
	if a < 0 {
		if a < -9999 { a = -9999 }
		return "-" + zeroPad(-a, 4)
	}
	return zeroPad(a, 5)
}

// formatAccuracy is the FXA extension: metres, 0-99, and 99 when we don't know.
func formatAccuracy(acc float64) string {
	if acc <= 0 || math.IsNaN(acc) || math.IsInf(acc, 0) { return "99" }
	return zeroPad(round(acc), 2)
}

// The G record is not a real signature. It is a cheap digest of the wall clock, there
// so that validators which insist on a G record are happy.
func securityDigest(now time.Time) string {
	sum := 0
	for _,c := range fmt.Sprintf("%d", now.UnixMilli()) {
		sum += int(c)
	}
	return fitLeft(fmt.Sprintf("%X", sum), 8, '0')
}

func fitLeft(s string, width int, pad byte) string {
	if len(s) >= width { return s[len(s)-width:] }
	return strings.Repeat(string(pad), width-len(s)) + s
}
