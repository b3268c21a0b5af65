package importer

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/skypies/flightlog"
)

// ReadKML understands the two ways a track shows up in KML. A gx:Track pairs each
// <when> with a <gx:coord>, and is used if present. Otherwise the first <coordinates>
// element (a LineString, usually) is taken, one fix per tuple, with invented times.
func ReadKML(r io.Reader, start time.Time) (flightlog.Track, error) {
	d := xml.NewDecoder(r)

	coordinates := ""
	haveCoordinates := false
	whens, gxCoords := []string{}, []string{}

	for {
		tok,err := d.Token()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("kml: %w", err)
		}

		se,ok := tok.(xml.StartElement)
		if !ok { continue }

		var text string
		switch se.Name.Local {
		case "coordinates":
			if err := d.DecodeElement(&text, &se); err != nil { return nil, fmt.Errorf("kml: %w", err) }
			if !haveCoordinates { coordinates, haveCoordinates = text, true }
		case "when":
			if err := d.DecodeElement(&text, &se); err != nil { return nil, fmt.Errorf("kml: %w", err) }
			whens = append(whens, strings.TrimSpace(text))
		case "coord":
			if err := d.DecodeElement(&text, &se); err != nil { return nil, fmt.Errorf("kml: %w", err) }
			gxCoords = append(gxCoords, strings.TrimSpace(text))
		}
	}

	b := builder{start: start}

	if len(gxCoords) > 0 {
		for i,c := range gxCoords {
			lat,long,alt,ok := parseKMLTuple(strings.Fields(c))
			if !ok { b.skipped++; continue }
			tm := time.Time{}
			if i < len(whens) {
				if parsed,err := time.Parse(time.RFC3339, whens[i]); err == nil { tm = parsed }
			}
			b.add(tm, lat, long, alt)
		}
		return b.track("kml")
	}

	for _,tuple := range strings.Fields(coordinates) {
		lat,long,alt,ok := parseKMLTuple(strings.Split(tuple, ","))
		if !ok { b.skipped++; continue }
		b.add(time.Time{}, lat, long, alt)
	}
	return b.track("kml")
}

// parseKMLTuple reads longitude, latitude and an optional altitude; KML puts longitude
// first.
func parseKMLTuple(parts []string) (lat, long, alt float64, ok bool) {
	if len(parts) < 2 || len(parts) > 3 { return 0, 0, 0, false }

	var err error
	if long,err = strconv.ParseFloat(parts[0], 64); err != nil { return 0, 0, 0, false }
	if lat,err = strconv.ParseFloat(parts[1], 64); err != nil { return 0, 0, 0, false }
	if len(parts) == 3 {
		if alt,err = strconv.ParseFloat(parts[2], 64); err != nil { return 0, 0, 0, false }
	}
	return lat, long, alt, true
}
