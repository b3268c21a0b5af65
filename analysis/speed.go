package analysis

import (
	"encoding/json"
	"math"

	"github.com/skypies/flightlog"
)

// SpeedBucket is one bar of the speed histogram, covering [Min,Max) km/h.
type SpeedBucket struct {
	Label      string
	Min, Max   float64
	Count      int
	Percentage float64
}

// MarshalJSON writes the open-ended Max as null; JSON has no infinity.
func (b SpeedBucket)MarshalJSON() ([]byte, error) {
	type bucket SpeedBucket
	aux := struct{
		bucket
		Max *float64
	}{bucket: bucket(b)}
	if !math.IsInf(b.Max, 1) { aux.Max = &b.Max }
	return json.Marshal(aux)
}

type SpeedAnalysis struct {
	Distribution []SpeedBucket
	Profile      []ProfileSample // km/h
	Variability  float64         // Standard deviation of the km/h series
}

// The bucket edges, in km/h. The last bucket is open-ended.
var speedBucketEdges = []float64{0, 10, 20, 30, 40, 50}
var speedBucketLabels = []string{"0-10 km/h", "10-20 km/h", "20-30 km/h", "30-40 km/h", "40-50 km/h", "50+ km/h"}

func SpeedOf(t flightlog.Track) SpeedAnalysis {
	speeds := make([]float64, len(t))
	for i,tp := range t {
		speeds[i] = tp.SpeedKPH()
	}

	return SpeedAnalysis{
		Distribution: SpeedDistribution(speeds),
		Profile:      profile(t, DefaultProfilePoints, flightlog.Trackpoint.SpeedKPH),
		Variability:  stddev(speeds),
	}
}

// SpeedDistribution counts speeds (km/h) into the six buckets. Every value lands in
// exactly one bucket (anything below zero counts as the first), so the percentages add
// up to 100 for any non-empty input.
func SpeedDistribution(speeds []float64) []SpeedBucket {
	buckets := make([]SpeedBucket, len(speedBucketEdges))
	for i := range buckets {
		buckets[i].Label = speedBucketLabels[i]
		buckets[i].Min = speedBucketEdges[i]
		buckets[i].Max = math.Inf(1)
		if i+1 < len(speedBucketEdges) { buckets[i].Max = speedBucketEdges[i+1] }
	}

	for _,v := range speeds {
		buckets[speedBucketFor(v)].Count++
	}

	if len(speeds) > 0 {
		for i := range buckets {
			buckets[i].Percentage = float64(buckets[i].Count) / float64(len(speeds)) * 100.0
		}
	}
	return buckets
}

func speedBucketFor(kph float64) int {
	for i:=len(speedBucketEdges)-1; i>0; i-- {
		if kph >= speedBucketEdges[i] { return i }
	}
	return 0
}

// stddev is the population standard deviation; exactly zero for a constant series.
func stddev(vals []float64) float64 {
	if len(vals) == 0 { return 0 }

	lo,hi, sum := vals[0], vals[0], 0.0
	for _,v := range vals {
		sum += v
		lo,hi = math.Min(lo,v), math.Max(hi,v)
	}
	if lo == hi { return 0 }

	mean := sum / float64(len(vals))
	sq := 0.0
	for _,v := range vals {
		sq += (v-mean)*(v-mean)
	}
	return math.Sqrt(sq / float64(len(vals)))
}
