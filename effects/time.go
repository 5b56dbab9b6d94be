package effects

import (
	"time"

	"github.com/rickb777/date/v2/timespan"
)

type TimeSpan = timespan.TimeSpan

// Measure runs fn and returns the wall-clock window it occupied.
func Measure(fn func()) TimeSpan {
	start := time.Now()
	fn()
	return timespan.BetweenTimes(start, time.Now())
}
