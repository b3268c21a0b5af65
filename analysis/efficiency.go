package analysis

import (
	"time"

	"github.com/skypies/flightlog"
)

// Efficiency looks only at the gliding parts of the flight: pairs of fixes where the
// altitude went down. We have no airspeed, so the L/D "ratio" is really the glide ratio
// over the ground, and the two fields are the same number.
type Efficiency struct {
	LDRatio    float64
	GlideRatio float64

	GlideDistanceM    float64 // Horizontal distance covered while descending
	GlideAltitudeLoss float64

	ThermalEfficiency float64 // Percentage of flight time spent in committed thermals
}

func EfficiencyOf(t flightlog.Track, thermals []Thermal) Efficiency {
	e := Efficiency{}

	for i:=1; i<len(t); i++ {
		prev,curr := t[i-1], t[i]
		if prev.Altitude > curr.Altitude {
			e.GlideDistanceM += prev.DistanceM(curr)
			e.GlideAltitudeLoss += prev.Altitude - curr.Altitude
		}
	}

	if e.GlideAltitudeLoss > 0 {
		e.LDRatio = e.GlideDistanceM / e.GlideAltitudeLoss
	}
	e.GlideRatio = e.LDRatio

	if len(t) > 0 {
		if flight := t.Duration(); flight > 0 {
			var inLift time.Duration
			for _,th := range thermals {
				inLift += th.Duration
			}
			e.ThermalEfficiency = float64(inLift) / float64(flight) * 100.0
		}
	}

	return e
}
