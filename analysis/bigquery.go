package analysis

import (
	"fmt"
	"time"
)

// AnalysisForBigQuery is a denormalized summary of one flight, with thermal summaries
// instead of a track. It is designed to be loaded into BigQuery as newline-delimited
// JSON, one row per flight.
type AnalysisForBigQuery struct {
	Pilot        string

	Start,End    time.Time
	Date         string // Same format as BQ's DATE() function, taken from the UTC start
	DurationSecs float64
	PointCount   int

	DistanceKM   float64
	MaxAltitude  float64
	MinAltitude  float64
	MaxSpeedKPH  float64
	AvgSpeedKPH  float64
	MaxClimbRate float64
	MaxSinkRate  float64

	AltitudeGain float64
	AltitudeLoss float64

	LDRatio           float64
	ThermalEfficiency float64

	ThermalCount   int
	ThermalAvgGain float64
	Thermal        []ThermalForBigQuery // Not 'Thermals', so that the SQL reads more naturally
}

type ThermalForBigQuery struct {
	Start        time.Time
	DurationSecs float64
	Gain         float64
	MaxClimbRate float64
}

func (abq AnalysisForBigQuery)String() string {
	return fmt.Sprintf("%s %s %.1fkm %.0fs, %d thermals (avg %+.0fm), L/D %.1f",
		abq.Pilot, abq.Date, abq.DistanceKM, abq.DurationSecs, abq.ThermalCount,
		abq.ThermalAvgGain, abq.LDRatio)
}

func (fa FlightAnalysis)ForBigQuery(pilot string) *AnalysisForBigQuery {
	b := fa.Basic

	abq := AnalysisForBigQuery{
		Pilot: pilot,

		Start: b.StartTime,
		End: b.EndTime,
		Date: b.StartTime.UTC().Format("2006-01-02"),
		DurationSecs: b.Duration.Seconds(),
		PointCount: b.PointCount,

		DistanceKM: b.TotalDistanceKM,
		MaxAltitude: b.MaxAltitude,
		MinAltitude: b.MinAltitude,
		MaxSpeedKPH: b.MaxSpeed,
		AvgSpeedKPH: b.AvgSpeed,
		MaxClimbRate: b.MaxClimbRate,
		MaxSinkRate: b.MaxSinkRate,

		AltitudeGain: fa.Altitude.TotalGain,
		AltitudeLoss: fa.Altitude.TotalLoss,

		LDRatio: fa.Efficiency.LDRatio,
		ThermalEfficiency: fa.Efficiency.ThermalEfficiency,

		ThermalCount: fa.Thermal.Count,
		ThermalAvgGain: fa.Thermal.AverageGain,
		Thermal: []ThermalForBigQuery{},
	}

	for _,th := range fa.Thermal.Thermals {
		abq.Thermal = append(abq.Thermal, ThermalForBigQuery{
			Start: th.StartTime,
			DurationSecs: th.Duration.Seconds(),
			Gain: th.Gain,
			MaxClimbRate: th.MaxClimbRate,
		})
	}

	return &abq
}
