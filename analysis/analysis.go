// Package analysis derives statistics from a recorded flight: distance, altitude and
// speed figures, thermals, and glide efficiency.
//
// Everything here is a pure function of the track. Nothing is cached between calls; a
// caller that wants the "last" analysis keeps it.
package analysis

import (
	"fmt"
	"time"

	"github.com/skypies/flightlog"
)

// DefaultProfilePoints is how many samples the altitude and speed profiles are thinned to.
const DefaultProfilePoints = 100

// FlightAnalysis is everything we know about a flight. Each part can also be computed on
// its own.
type FlightAnalysis struct {
	Basic      BasicStats
	Altitude   AltitudeAnalysis
	Speed      SpeedAnalysis
	Efficiency Efficiency
	Thermal    ThermalAnalysis
}

// Analyse runs every analysis over the track. An empty track gets ErrEmptyTrack; that is
// the normal state before the first fix arrives, so callers should expect it.
func Analyse(t flightlog.Track) (FlightAnalysis, error) {
	return AnalyseWith(t, DefaultThermalParams)
}

func AnalyseWith(t flightlog.Track, p ThermalParams) (FlightAnalysis, error) {
	if len(t) == 0 { return FlightAnalysis{}, flightlog.ErrEmptyTrack }

	thermals := DetectThermals(t, p)

	return FlightAnalysis{
		Basic:      BasicStatsOf(t),
		Altitude:   AltitudeOf(t),
		Speed:      SpeedOf(t),
		Efficiency: EfficiencyOf(t, thermals),
		Thermal:    ThermalAnalysisOf(thermals),
	}, nil
}

// Distance is the great-circle distance between two fixes, in metres.
func Distance(a, b flightlog.Trackpoint) float64 { return a.DistanceM(b) }

func (fa FlightAnalysis)String() string {
	b,e := fa.Basic, fa.Efficiency
	str := fmt.Sprintf("Flight time      %s\n", FormatDuration(b.Duration))
	str += fmt.Sprintf("Distance         %.2f km\n", b.TotalDistanceKM)
	str += fmt.Sprintf("Altitude         %.0f - %.0f m (avg %.0f m)\n", b.MinAltitude, b.MaxAltitude, b.AvgAltitude)
	str += fmt.Sprintf("Gain / loss      %.0f / %.0f m\n", fa.Altitude.TotalGain, fa.Altitude.TotalLoss)
	str += fmt.Sprintf("Speed            max %.1f, avg %.1f km/h\n", b.MaxSpeed, b.AvgSpeed)
	str += fmt.Sprintf("Climb / sink     %.1f / %.1f m/s\n", b.MaxClimbRate, b.MaxSinkRate)
	str += fmt.Sprintf("L/D              %.1f (1:%.1f)\n", e.LDRatio, e.GlideRatio)
	str += fmt.Sprintf("Thermals         %d, avg gain %.0f m, avg %s, %.1f%% of flight\n",
		fa.Thermal.Count, fa.Thermal.AverageGain, FormatDuration(fa.Thermal.AverageDuration),
		e.ThermalEfficiency)
	for _,r := range fa.Speed.Distribution {
		str += fmt.Sprintf("  %-11s %5d %5.1f%%\n", r.Label, r.Count, r.Percentage)
	}
	return str
}

// FormatDuration renders HH:MM:SS, truncating to the second.
func FormatDuration(d time.Duration) string {
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}
