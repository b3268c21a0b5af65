package analysis

import (
	"fmt"
	"time"

	"github.com/skypies/flightlog"
)

// ThermalParams control what counts as a thermal.
type ThermalParams struct {
	MinClimbRate float64       // m/s; the vario must be strictly above this
	MinDuration  time.Duration // shorter climbs are treated as GPS noise
}

var DefaultThermalParams = ThermalParams{
	MinClimbRate: 0.5,
	MinDuration:  30 * time.Second,
}

// A Thermal is a stretch of the flight where the vario stayed above the climb
// threshold. It ends at the last fix that was still climbing.
type Thermal struct {
	StartTime, EndTime         time.Time
	StartAltitude, EndAltitude float64
	MaxClimbRate               float64
	Duration                   time.Duration // EndTime - StartTime
	Gain                       float64       // EndAltitude - StartAltitude
	Points                     flightlog.Track
}

func (th Thermal)String() string {
	return fmt.Sprintf("thermal %s +%s: %.0fm -> %.0fm (%+.0fm), max %.1fm/s, %d pts",
		th.StartTime.Format("15:04:05"), th.Duration, th.StartAltitude, th.EndAltitude,
		th.Gain, th.MaxClimbRate, len(th.Points))
}

type ThermalAnalysis struct {
	Count           int
	AverageGain     float64
	AverageDuration time.Duration
	Thermals        []Thermal
}

func ThermalAnalysisOf(thermals []Thermal) ThermalAnalysis {
	ta := ThermalAnalysis{Count: len(thermals), Thermals: thermals}
	if len(thermals) == 0 { return ta }

	gain := 0.0
	var dur time.Duration
	for _,th := range thermals {
		gain += th.Gain
		dur += th.Duration
	}
	ta.AverageGain = gain / float64(len(thermals))
	ta.AverageDuration = dur / time.Duration(len(thermals))
	return ta
}

// {{{ segmentation

type liftState int

const(
	idle liftState = iota
	inLift
)

// candidate accumulates a climb that might turn out to be a thermal.
type candidate struct {
	startTime time.Time
	startAlt  float64
	maxClimb  float64
	points    flightlog.Track
}

func openCandidate(tp flightlog.Trackpoint) candidate {
	return candidate{
		startTime: tp.TimestampUTC,
		startAlt:  tp.Altitude,
		maxClimb:  tp.VerticalRate,
		points:    flightlog.Track{tp},
	}
}

func (c *candidate)extend(tp flightlog.Trackpoint) {
	c.points = append(c.points, tp)
	if tp.VerticalRate > c.maxClimb { c.maxClimb = tp.VerticalRate }
}

// close ends the climb at last, which is the final fix that was still lifting.
func (c candidate)close(last flightlog.Trackpoint, minDuration time.Duration) (Thermal, bool) {
	dur := last.TimestampUTC.Sub(c.startTime)
	if dur < minDuration { return Thermal{}, false }

	return Thermal{
		StartTime:     c.startTime,
		EndTime:       last.TimestampUTC,
		StartAltitude: c.startAlt,
		EndAltitude:   last.Altitude,
		MaxClimbRate:  c.maxClimb,
		Duration:      dur,
		Gain:          last.Altitude - c.startAlt,
		Points:        c.points,
	}, true
}

// DetectThermals makes one pass over the track, reading the VerticalRate of each fix
// (which should already be smoothed; see Track.DeriveRates). The first fix has no
// predecessor and so no meaningful vario; scanning starts at the second. A climb still
// in progress when the track ends is dropped, since we never saw it finish.
func DetectThermals(t flightlog.Track, p ThermalParams) []Thermal {
	thermals := []Thermal{}
	state := idle
	var c candidate

	for i:=1; i<len(t); i++ {
		tp := t[i]
		lifting := tp.VerticalRate > p.MinClimbRate

		switch state {
		case idle:
			if lifting {
				c = openCandidate(tp)
				state = inLift
			}
		case inLift:
			if lifting {
				c.extend(tp)
			} else {
				if th,ok := c.close(t[i-1], p.MinDuration); ok {
					thermals = append(thermals, th)
				}
				state = idle
			}
		}
	}

	return thermals
}

// }}}
