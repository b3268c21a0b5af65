package flightlog

// DeriveRates returns a copy of the track with GroundSpeed and VerticalRate rebuilt from
// the positions and altitudes. Imported tracks (e.g. IGC files) carry neither field.
//
// Altitude is smoothed with a trailing moving average of window samples before the
// vario is taken, as the live tracker does; the altitudes in the returned track are
// left untouched. A vario beyond MaxPlausibleVario is replaced by the previous one.
func (t Track)DeriveRates(window int) Track {
	if window < 1 { window = DefaultSmoothingWindow }

	ret := t.Copy()
	if len(ret) == 0 { return ret }

	smoothed := make([]float64, len(ret))
	sum := 0.0
	for i,tp := range ret {
		sum += tp.Altitude
		if i >= window { sum -= ret[i-window].Altitude }
		n := i+1
		if n > window { n = window }
		smoothed[i] = sum / float64(n)
	}

	ret[0].VerticalRate = 0
	for i:=1; i<len(ret); i++ {
		prev,curr := &ret[i-1], &ret[i]
		secs := curr.TimestampUTC.Sub(prev.TimestampUTC).Seconds()
		if secs <= 0 {
			curr.VerticalRate = 0
			curr.GroundSpeed = prev.GroundSpeed
			continue
		}

		curr.GroundSpeed = prev.DistanceM(*curr) / secs

		vario := (smoothed[i] - smoothed[i-1]) / secs
		if vario > MaxPlausibleVario || vario < -MaxPlausibleVario {
			vario = prev.VerticalRate
		}
		curr.VerticalRate = vario
	}

	if len(ret) > 1 { ret[0].GroundSpeed = ret[1].GroundSpeed }

	return ret
}
