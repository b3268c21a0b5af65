// Package importer reads tracks recorded by other tools: GPX from phones and GPS units,
// KML from mapping software. Both come back as a time-ordered flightlog.Track.
//
// Neither format is guaranteed to carry timestamps. Fixes without one are placed a
// second after the fix before them (the first at start), which keeps the track
// monotonic and usable for analysis even if the times themselves are invented.
package importer

import (
	"fmt"
	"time"

	"github.com/skypies/geo"

	"github.com/skypies/flightlog"
)

// builder accumulates fixes in file order, filling in missing times.
type builder struct {
	start   time.Time
	t       flightlog.Track
	skipped int
}

func validLatlong(lat, long float64) bool {
	return lat >= -90 && lat <= 90 && long >= -180 && long <= 180
}

// add appends a fix; a zero tm means the file didn't say.
func (b *builder)add(tm time.Time, lat, long, alt float64) {
	if !validLatlong(lat, long) {
		b.skipped++
		return
	}
	if tm.IsZero() {
		tm = b.start
		if n := len(b.t); n > 0 { tm = b.t[n-1].TimestampUTC.Add(time.Second) }
	}
	b.t = append(b.t, flightlog.Trackpoint{
		TimestampUTC: tm.UTC(),
		Latlong: geo.Latlong{Lat:lat, Long:long},
		Altitude: alt,
	})
}

func (b *builder)track(format string) (flightlog.Track, error) {
	if len(b.t) == 0 {
		return nil, fmt.Errorf("%s: no usable fixes (%d skipped): %w", format, b.skipped, flightlog.ErrEmptyTrack)
	}
	b.t.Sort()
	return b.t, nil
}
