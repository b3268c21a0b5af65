package analysis

import (
	"time"

	"github.com/skypies/geo"

	"github.com/skypies/flightlog"
)

// BasicStats are the headline numbers for a flight. Speeds are km/h; climb and sink
// rates are m/s and both reported as positive numbers.
type BasicStats struct {
	StartTime, EndTime time.Time
	Duration           time.Duration
	PointCount         int
	TotalDistanceKM    float64

	MaxAltitude, MinAltitude, AvgAltitude float64
	MaxSpeed, AvgSpeed                    float64

	MaxClimbRate float64
	MaxSinkRate  float64

	BoundingBox geo.LatlongBox
}

func BasicStatsOf(t flightlog.Track) BasicStats {
	b := BasicStats{PointCount: len(t)}
	if len(t) == 0 { return b }

	b.StartTime, b.EndTime = t.Times()
	b.Duration = t.Duration()
	b.BoundingBox = t.BoundingBox()

	b.MaxAltitude, b.MinAltitude = t[0].Altitude, t[0].Altitude
	b.MaxSpeed = t[0].SpeedKPH()
	altSum, speedSum := 0.0, 0.0

	for i,tp := range t {
		altSum += tp.Altitude
		speedSum += tp.SpeedKPH()
		if tp.Altitude > b.MaxAltitude { b.MaxAltitude = tp.Altitude }
		if tp.Altitude < b.MinAltitude { b.MinAltitude = tp.Altitude }
		if tp.SpeedKPH() > b.MaxSpeed { b.MaxSpeed = tp.SpeedKPH() }

		if i == 0 { continue }
		prev := t[i-1]
		b.TotalDistanceKM += prev.DistanceM(tp) / 1000.0

		// Pairs without a time gap have no rate
		if rate,ok := prev.VerticalRateTo(tp); ok {
			if rate > b.MaxClimbRate { b.MaxClimbRate = rate }
			if -rate > b.MaxSinkRate { b.MaxSinkRate = -rate }
		}
	}

	b.AvgAltitude = altSum / float64(len(t))
	b.AvgSpeed = speedSum / float64(len(t))

	return b
}
