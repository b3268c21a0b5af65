package importer

import (
	"fmt"
	"io"
	"time"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/skypies/flightlog"
)

// ReadGPX takes every track point of every track segment, in file order. Routes and
// waypoints are not a flight and are ignored. Elevation, when present, is the altitude.
func ReadGPX(r io.Reader, start time.Time) (flightlog.Track, error) {
	data,err := io.ReadAll(r)
	if err != nil { return nil, err }

	g,err := gpx.ParseBytes(data)
	if err != nil { return nil, fmt.Errorf("gpx: %w", err) }

	b := builder{start: start}
	for _,trk := range g.Tracks {
		for _,seg := range trk.Segments {
			for _,pt := range seg.Points {
				alt := 0.0
				if pt.Elevation.NotNull() { alt = pt.Elevation.Value() }
				b.add(pt.Timestamp, pt.Latitude, pt.Longitude, alt)
			}
		}
	}

	return b.track("gpx")
}
