package main

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/skypies/geo"

	"github.com/skypies/flightlog"
	"github.com/skypies/flightlog/config"
)

func TestFormat(t *testing.T) {
	tests := map[string]string{
		"a.igc":                   "igc",
		"A.IGC.gz":                "igc",
		"gs://b/2024/x.igc":       "igc",
		"track.json":              "json",
		"track.json.gz":           "json",
		"cache/track.msgpack.zst": "snapshot",
		"track.gpx":               "gpx",
		"phone.GPX.gz":            "gpx",
		"earth.kml":               "kml",
		"track.csv":               "",
		"igc":                     "",
	}
	for in,wanted := range tests {
		if got := format(in); got != wanted {
			t.Errorf("format(%q): got %q, wanted %q", in, got, wanted)
		}
	}
}

func testTool() tool {
	return tool{cfg: config.Config{Pilot: "Jo Pilot", SmoothingWindow: 5}}
}

func testTrack() flightlog.Track {
	tm := time.Date(2024, 7, 14, 10, 0, 0, 0, time.UTC)
	t := flightlog.Track{}
	for i:=0; i<5; i++ {
		t = append(t, flightlog.Trackpoint{
			TimestampUTC: tm.Add(time.Duration(i*10) * time.Second),
			Latlong: geo.Latlong{Lat:47.0 + float64(i)*0.001, Long:11.0 - float64(i)*0.002},
			Altitude: float64(1500 + i*10),
		})
	}
	return t
}

// Same fixes, allowing for IGC's thousandth-of-a-minute resolution.
func sameFixes(t *testing.T, what string, got, wanted flightlog.Track) {
	if len(got) != len(wanted) {
		t.Fatalf("%s: got %d points, wanted %d", what, len(got), len(wanted))
	}
	for i := range wanted {
		g,w := got[i], wanted[i]
		if !g.TimestampUTC.Equal(w.TimestampUTC) || g.Altitude != w.Altitude ||
			math.Abs(g.Lat-w.Lat) > 1e-5 || math.Abs(g.Long-w.Long) > 1e-5 {
			t.Errorf("%s [%d]: got %s, wanted %s", what, i, g, w)
		}
	}
}

func TestConvertRoundTrip(t *testing.T) {
	dir := t.TempDir()
	tl := testTool()
	orig := testTrack()

	b,err := json.Marshal(orig)
	if err != nil { t.Fatal(err) }
	in := filepath.Join(dir, "in.json")
	if err := os.WriteFile(in, b, 0o600); err != nil { t.Fatal(err) }

	// json -> igc -> snapshot -> json
	steps := []string{in, "flight.igc", "flight.msgpack.zst", "back.json"}
	for i:=1; i<len(steps); i++ {
		from, to := steps[i-1], filepath.Join(dir, steps[i])
		if i > 1 { from = filepath.Join(dir, steps[i-1]) }
		if err := tl.convert(from, to); err != nil {
			t.Fatalf("convert %s -> %s: %v", steps[i-1], steps[i], err)
		}

		got,err := tl.loadTrack(to)
		if err != nil { t.Fatalf("loadTrack(%s): %v", steps[i], err) }
		sameFixes(t, steps[i], got, orig)
	}

	// Decoded IGC gets its rates derived. The climb is 1m/s, but the smoothing window is
	// still filling at the second fix, so the averaged altitude has only risen by half that.
	got,_ := tl.loadTrack(filepath.Join(dir, "flight.igc"))
	if math.Abs(got[1].VerticalRate - 0.5) > 1e-9 || got[1].GroundSpeed <= 0 {
		t.Errorf("derived rates: got vario %f, speed %f", got[1].VerticalRate, got[1].GroundSpeed)
	}
}

func TestLoadTrackGPX(t *testing.T) {
	doc := `<?xml version="1.0"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1"><trk><trkseg>
 <trkpt lat="47.0" lon="11.0"><ele>1500</ele><time>2024-07-14T10:00:00Z</time></trkpt>
 <trkpt lat="47.0" lon="11.001"><ele>1520</ele><time>2024-07-14T10:00:10Z</time></trkpt>
</trkseg></trk></gpx>`

	dir := t.TempDir()
	in := filepath.Join(dir, "phone.gpx")
	if err := os.WriteFile(in, []byte(doc), 0o600); err != nil { t.Fatal(err) }

	tl := testTool()
	got,err := tl.loadTrack(in)
	if err != nil { t.Fatalf("loadTrack: %v", err) }
	if len(got) != 2 || got[1].Altitude != 1520 || got[1].VerticalRate <= 0 {
		t.Errorf("gpx track: got %v", got)
	}

	out := filepath.Join(dir, "phone.igc")
	if err := tl.convert(in, out); err != nil { t.Fatalf("convert gpx -> igc: %v", err) }
	if _,err := os.Stat(out); err != nil { t.Errorf("no igc written: %v", err) }
}

func TestConvertErrors(t *testing.T) {
	dir := t.TempDir()
	tl := testTool()

	if err := tl.convert(filepath.Join(dir, "missing.json"), filepath.Join(dir, "x.igc")); err == nil {
		t.Errorf("missing input: wanted an error")
	}

	in := filepath.Join(dir, "in.json")
	b,_ := json.Marshal(testTrack())
	os.WriteFile(in, b, 0o600)
	if err := tl.convert(in, filepath.Join(dir, "x.csv")); err == nil {
		t.Errorf("unknown output type: wanted an error")
	}

	empty := filepath.Join(dir, "empty.json")
	os.WriteFile(empty, []byte("[]"), 0o600)
	if err := tl.convert(empty, filepath.Join(dir, "empty.igc")); err == nil {
		t.Errorf("empty track to igc: wanted an error")
	}
}
