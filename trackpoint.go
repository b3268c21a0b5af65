package flightlog

import (
	"fmt"
	"time"

	"github.com/skypies/geo"
)

// Trackpoint is a single GPS fix taken during a flight.
type Trackpoint struct {
	TimestampUTC time.Time // Always in UTC, to make life SIMPLE

	geo.Latlong            // Embedded type, so we can call all the geo stuff directly on trackpoints

	Altitude     float64   // GPS altitude, metres. Zero if unknown.
	GroundSpeed  float64   // Metres per second
	Accuracy     float64   // Horizontal uncertainty in metres; zero if unknown
	Heading      float64   // [0.0, 360.0) degrees, optional
	VerticalRate float64   // Vario, in m/s. Derived (see DeriveRates), not raw GPS
}

func (tp Trackpoint)String() string {
	return fmt.Sprintf("[%s] (%.5f,%.5f) %.0fm, %.1fm/s, %.0fdeg, %+.1fm/s",
		tp.TimestampUTC.Format("15:04:05"), tp.Lat, tp.Long,
		tp.Altitude, tp.GroundSpeed, tp.Heading, tp.VerticalRate)
}

// SpeedKPH is the ground speed in km/h.
func (tp Trackpoint)SpeedKPH() float64 { return tp.GroundSpeed * MetresPerSecondToKPH }

// DistanceM returns the great-circle distance between the two fixes, in metres.
func (from Trackpoint)DistanceM(to Trackpoint) float64 {
	return from.DistKM(to.Latlong) * 1000.0
}

// VerticalRateTo is the altitude change per second going from one fix to the
// next. The bool is false when the two fixes are not separated in time.
func (from Trackpoint)VerticalRateTo(to Trackpoint) (float64, bool) {
	secs := to.TimestampUTC.Sub(from.TimestampUTC).Seconds()
	if secs <= 0 { return 0, false }
	return (to.Altitude - from.Altitude) / secs, true
}
