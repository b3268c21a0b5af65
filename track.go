package flightlog

import(
	"fmt"
	"sort"
	"time"

	"github.com/skypies/geo"
)

// A Track is a slice of Trackpoints. They are ordered in time, beginning to end.
type Track []Trackpoint

type byTimestampAscending Track
func (a byTimestampAscending) Len() int           { return len(a) }
func (a byTimestampAscending) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTimestampAscending) Less(i, j int) bool {
	return a[i].TimestampUTC.Before(a[j].TimestampUTC)
}

// These all assume a non-empty track.
func (t Track)Start() time.Time { return t[0].TimestampUTC }
func (t Track)End() time.Time { return t[len(t)-1].TimestampUTC }
func (t Track)Times() (s,e time.Time) { return t.Start(), t.End() }
func (t Track)Duration() time.Duration { return t.End().Sub(t.Start()) }

func (t Track)String() string {
	if len(t) == 0 { return "Track: (no trackpoints)" }
	str := fmt.Sprintf("Track: %d points, start=%s", len(t),
		t[0].TimestampUTC.Format("2006.01.02 15:04:05"))
	if len(t) > 1 {
		s,e := t[0],t[len(t)-1]
		str += fmt.Sprintf(", %s, %.1fKM (%.0f deg)",
			e.TimestampUTC.Sub(s.TimestampUTC), s.DistanceM(e)/1000.0, s.BearingTowards(e.Latlong))
	}
	return str
}

// BoundingBox is the smallest latlong box that contains every point of the track.
func (t Track)BoundingBox() geo.LatlongBox {
	box := t[0].BoxTo(t[0].Latlong)
	for _,tp := range t[1:] {
		box.Enclose(tp.Latlong)
	}
	return box
}

// IsMonotonic is true if no timestamp is earlier than the one before it.
func (t Track)IsMonotonic() bool {
	for i:=1; i<len(t); i++ {
		if t[i].TimestampUTC.Before(t[i-1].TimestampUTC) { return false }
	}
	return true
}

// Sort orders the track in place; the sort is stable, so fixes sharing a timestamp
// keep their recorded order.
func (t Track)Sort() { sort.Stable(byTimestampAscending(t)) }

// Copy returns a track that shares no storage with t.
func (t Track)Copy() Track {
	if t == nil { return nil }
	return append(Track{}, t...)
}

// Preview thins the track down to roughly max points for display. The final point is
// always kept, so the preview ends where the flight did.
func (t Track)Preview(max int) Track {
	ret := Track{}
	for _,i := range SampleIndices(len(t), max) {
		ret = append(ret, t[i])
	}
	return ret
}

// SampleIndices picks every step'th index out of [0,n), where step is n/max (at least
// 1), and then the final index if the stride missed it. max <= 0 means keep everything.
func SampleIndices(n, max int) []int {
	if n <= 0 { return []int{} }
	step := 1
	if max > 0 && n/max > 1 { step = n/max }

	ret := []int{}
	for i:=0; i<n; i+=step {
		ret = append(ret, i)
	}
	if (n-1) % step != 0 {
		ret = append(ret, n-1)
	}
	return ret
}
