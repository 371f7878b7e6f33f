// Package midiclock normalises driver timestamps to microseconds since a
// connection was opened.
package midiclock

import (
	"math"
	"time"
)

// FromMillis converts a driver's millisecond counter. Negative values clamp to 0.
func FromMillis(ms int64) uint64 {
	if ms <= 0 {
		return 0
	}
	if uint64(ms) > math.MaxUint64/1000 {
		return math.MaxUint64
	}
	return uint64(ms) * 1000
}

// Since is the elapsed time from start, in microseconds.
func Since(start time.Time) uint64 {
	d := time.Since(start).Microseconds()
	if d < 0 {
		return 0
	}
	return uint64(d)
}
