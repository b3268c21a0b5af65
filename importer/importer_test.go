package importer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/skypies/flightlog"
)

var tStart = time.Date(2024, 7, 14, 9, 0, 0, 0, time.UTC)

const gpxDoc = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <wpt lat="47.1" lon="11.1"><name>launch</name></wpt>
  <trk><name>flight</name>
    <trkseg>
      <trkpt lat="47.0" lon="11.0"><ele>1500</ele><time>2024-07-14T10:00:00Z</time></trkpt>
      <trkpt lat="47.001" lon="11.001"><ele>1510.5</ele><time>2024-07-14T10:00:10Z</time></trkpt>
    </trkseg>
    <trkseg>
      <trkpt lat="47.002" lon="11.002"><time>2024-07-14T10:00:20Z</time></trkpt>
      <trkpt lat="47.003" lon="11.003"><ele>1490</ele></trkpt>
    </trkseg>
  </trk>
</gpx>`

func TestReadGPX(t *testing.T) {
	tr,err := ReadGPX(strings.NewReader(gpxDoc), tStart)
	if err != nil { t.Fatalf("ReadGPX: %v", err) }

	if len(tr) != 4 {
		t.Fatalf("got %d points, wanted 4 (waypoints ignored)", len(tr))
	}

	tests := []struct{
		Lat, Long, Alt float64
		Time           string
	}{
		{47.0,   11.0,   1500,   "10:00:00"},
		{47.001, 11.001, 1510.5, "10:00:10"},
		{47.002, 11.002, 0,      "10:00:20"},  // no elevation
		{47.003, 11.003, 1490,   "10:00:21"},  // no time: a second after the one before
	}
	for i,test := range tests {
		tp := tr[i]
		if tp.Lat != test.Lat || tp.Long != test.Long || tp.Altitude != test.Alt {
			t.Errorf("[%d] got (%f,%f) %fm, wanted (%f,%f) %fm", i, tp.Lat, tp.Long, tp.Altitude,
				test.Lat, test.Long, test.Alt)
		}
		if got := tp.TimestampUTC.Format("15:04:05"); got != test.Time {
			t.Errorf("[%d] time: got %s, wanted %s", i, got, test.Time)
		}
	}
}

func TestReadGPXEmpty(t *testing.T) {
	doc := `<?xml version="1.0"?><gpx version="1.1" creator="x"><trk><trkseg></trkseg></trk></gpx>`
	if _,err := ReadGPX(strings.NewReader(doc), tStart); !errors.Is(err, flightlog.ErrEmptyTrack) {
		t.Errorf("no points: got %v, wanted ErrEmptyTrack", err)
	}
	if _,err := ReadGPX(strings.NewReader("not xml at all"), tStart); err == nil {
		t.Errorf("garbage: wanted an error")
	}
}

func TestReadKMLLineString(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
 <Document><Placemark><LineString>
  <coordinates>
    11.0,47.0,1500 11.001,47.001,1510
    11.002,47.002
    bad,47.0,100 200.0,47.0,100
  </coordinates>
 </LineString></Placemark>
 <Placemark><Point><coordinates>12.0,48.0,0</coordinates></Point></Placemark>
 </Document>
</kml>`

	tr,err := ReadKML(strings.NewReader(doc), tStart)
	if err != nil { t.Fatalf("ReadKML: %v", err) }
	if len(tr) != 3 {
		t.Fatalf("got %d points, wanted 3", len(tr))
	}
	if tr[0].Long != 11.0 || tr[0].Lat != 47.0 || tr[0].Altitude != 1500 {
		t.Errorf("first point: got %s", tr[0])
	}
	if tr[2].Altitude != 0 {
		t.Errorf("no altitude: got %f, wanted 0", tr[2].Altitude)
	}
	for i,tp := range tr {
		if wanted := tStart.Add(time.Duration(i) * time.Second); !tp.TimestampUTC.Equal(wanted) {
			t.Errorf("[%d] time: got %s, wanted %s", i, tp.TimestampUTC, wanted)
		}
	}
}

func TestReadKMLGxTrack(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2" xmlns:gx="http://www.google.com/kml/ext/2.2">
 <Placemark><gx:Track>
  <when>2024-07-14T10:00:10Z</when>
  <when>2024-07-14T10:00:00Z</when>
  <gx:coord>11.001 47.001 1510</gx:coord>
  <gx:coord>11.0 47.0 1500</gx:coord>
 </gx:Track></Placemark>
</kml>`

	tr,err := ReadKML(strings.NewReader(doc), tStart)
	if err != nil { t.Fatalf("ReadKML: %v", err) }
	if len(tr) != 2 {
		t.Fatalf("got %d points, wanted 2", len(tr))
	}
	// Sorted into time order
	if tr[0].Altitude != 1500 || tr[0].TimestampUTC.Format("15:04:05") != "10:00:00" {
		t.Errorf("first point: got %s", tr[0])
	}
	if !tr.IsMonotonic() {
		t.Errorf("track not in time order")
	}
}

func TestReadKMLEmpty(t *testing.T) {
	doc := `<kml><Document></Document></kml>`
	if _,err := ReadKML(strings.NewReader(doc), tStart); !errors.Is(err, flightlog.ErrEmptyTrack) {
		t.Errorf("no coordinates: got %v, wanted ErrEmptyTrack", err)
	}
}

func TestParseKMLTuple(t *testing.T) {
	tests := []struct{
		In            string
		Lat,Long,Alt  float64
		Ok            bool
	}{
		{"11.5,47.25,1000", 47.25, 11.5, 1000, true},
		{"11.5,47.25", 47.25, 11.5, 0, true},
		{"-122.1,37.4,-3.5", 37.4, -122.1, -3.5, true},
		{"11.5", 0, 0, 0, false},
		{"11.5,47.25,1000,9", 0, 0, 0, false},
		{"x,47.25", 0, 0, 0, false},
		{"11.5,47.25,high", 0, 0, 0, false},
	}
	for _,test := range tests {
		lat,long,alt,ok := parseKMLTuple(strings.Split(test.In, ","))
		if ok != test.Ok || lat != test.Lat || long != test.Long || alt != test.Alt {
			t.Errorf("%q: got (%f,%f,%f,%v), wanted (%f,%f,%f,%v)", test.In, lat, long, alt, ok,
				test.Lat, test.Long, test.Alt, test.Ok)
		}
	}
}
