package flightlog

import "errors"

// ErrEmptyTrack is returned by every encode or analysis operation that was handed
// zero trackpoints. During live tracking this is routine, so check for it with errors.Is.
var ErrEmptyTrack = errors.New("flightlog: track has no points")
