package flightlog

// go test -v github.com/skypies/flightlog

import(
	"math"
	"testing"
	"time"

	"github.com/skypies/geo"
)

func TestDistanceM(t *testing.T) {
	tokyo := Trackpoint{Latlong: geo.Latlong{Lat:35.6812, Long:139.7671}}
	shinjuku := Trackpoint{Latlong: geo.Latlong{Lat:35.6896, Long:139.7006}}

	d := tokyo.DistanceM(shinjuku)
	if d <= 6000 || d >= 8000 {
		t.Errorf("Tokyo->Shinjuku: expected 6-8km, got %.0fm", d)
	}
	if back := shinjuku.DistanceM(tokyo); math.Abs(back - d) > 1e-9 {
		t.Errorf("distance not symmetric: %f vs %f", d, back)
	}
}

func TestDistanceMSamePoint(t *testing.T) {
	pts := []geo.Latlong{ {Lat:0,Long:0}, {Lat:35.6762,Long:139.6503}, {Lat:-33.9,Long:151.2}, {Lat:89.999,Long:-179.9} }
	for _,pt := range pts {
		tp := Trackpoint{Latlong: pt}
		if d := tp.DistanceM(tp); math.Abs(d) > 1e-9 {
			t.Errorf("%v to itself: expected 0, got %f", pt, d)
		}
	}
}

func TestDistanceMOneDegree(t *testing.T) {
	// One degree of latitude is R*pi/180 on our sphere
	a,b := Trackpoint{Latlong: geo.Latlong{Lat:0, Long:0}}, Trackpoint{Latlong: geo.Latlong{Lat:1, Long:0}}
	d := a.DistanceM(b)
	wanted := EarthRadiusM * math.Pi / 180.0
	if math.Abs(d-wanted) > 0.001 {
		t.Errorf("one degree: got %f, wanted %f", d, wanted)
	}
}

func TestVerticalRateTo(t *testing.T) {
	tm := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	a := Trackpoint{TimestampUTC: tm, Altitude: 1000}
	b := Trackpoint{TimestampUTC: tm.Add(10*time.Second), Altitude: 1020}

	if v,ok := a.VerticalRateTo(b); !ok || v != 2.0 {
		t.Errorf("climb: got %f/%v, wanted 2.0/true", v, ok)
	}
	if v,ok := b.VerticalRateTo(a); ok {
		t.Errorf("backwards in time: got %f/%v, wanted not ok", v, ok)
	}
	if _,ok := a.VerticalRateTo(a); ok {
		t.Errorf("zero time delta should not produce a rate")
	}
}

func TestSpeedKPH(t *testing.T) {
	tp := Trackpoint{GroundSpeed: 10}
	if tp.SpeedKPH() != 36 {
		t.Errorf("got %f, wanted 36", tp.SpeedKPH())
	}
}
