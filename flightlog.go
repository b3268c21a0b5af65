// Package flightlog holds the data model for a recorded free flight: a time-ordered
// list of GPS fixes. The codec (igc) and the analytics (analysis) packages both work
// on a Track, and neither of them does any I/O.
package flightlog

const(
	// Mean earth radius behind every great-circle distance (geo.Latlong.DistKM uses it).
	EarthRadiusM = 6371000.0

	MetresPerSecondToKPH = 3.6

	// DefaultSmoothingWindow is how many trailing samples DeriveRates averages altitude over.
	DefaultSmoothingWindow = 5

	// Vertical rates larger than this (in m/s) are GPS glitches, not air.
	MaxPlausibleVario = 20.0
)
