package analysis

import (
	"time"

	"github.com/skypies/flightlog"
)

// ProfileSample is one point of a chartable series; Index refers back into the track.
type ProfileSample struct {
	Index int
	Time  time.Time
	Value float64
}

type AltitudeAnalysis struct {
	TotalGain float64 // Sum of every climb between consecutive fixes
	TotalLoss float64 // Sum of every descent, as a positive number
	Range     float64 // Highest minus lowest
	Profile   []ProfileSample
}

// AltitudeOf accumulates gain and loss separately over the full track; only the
// profile is thinned.
func AltitudeOf(t flightlog.Track) AltitudeAnalysis {
	a := AltitudeAnalysis{Profile: []ProfileSample{}}
	if len(t) == 0 { return a }

	hi,lo := t[0].Altitude, t[0].Altitude
	for i,tp := range t {
		if tp.Altitude > hi { hi = tp.Altitude }
		if tp.Altitude < lo { lo = tp.Altitude }
		if i == 0 { continue }

		delta := tp.Altitude - t[i-1].Altitude
		if delta > 0 {
			a.TotalGain += delta
		} else {
			a.TotalLoss -= delta
		}
	}
	a.Range = hi - lo
	a.Profile = profile(t, DefaultProfilePoints, func(tp flightlog.Trackpoint) float64 { return tp.Altitude })

	return a
}

func profile(t flightlog.Track, max int, val func(flightlog.Trackpoint) float64) []ProfileSample {
	ret := []ProfileSample{}
	for _,i := range flightlog.SampleIndices(len(t), max) {
		ret = append(ret, ProfileSample{Index:i, Time:t[i].TimestampUTC, Value:val(t[i])})
	}
	return ret
}
