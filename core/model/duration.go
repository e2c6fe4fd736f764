package model

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrDurationOutOfRange is returned when a value cannot be represented as a
// time.Duration.
var ErrDurationOutOfRange = errors.New("duration out of range")

const maxDurationNs = float64(math.MaxInt64)

// toDuration converts ns to a Duration, rejecting NaN and values outside the
// int64 range.
func toDuration(ns float64) (time.Duration, error) {
	if math.IsNaN(ns) || ns >= maxDurationNs || ns < -maxDurationNs {
		return 0, fmt.Errorf("%w: %g ns", ErrDurationOutOfRange, ns)
	}
	return time.Duration(ns), nil
}

// MinutesToDuration converts fractional minutes to a duration.
func MinutesToDuration(minutes float64) (time.Duration, error) {
	return toDuration(minutes * float64(time.Minute))
}

// AddDurations returns a+b, failing instead of wrapping on overflow.
func AddDurations(a, b time.Duration) (time.Duration, error) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, fmt.Errorf("%w: %s + %s", ErrDurationOutOfRange, a, b)
	}
	return sum, nil
}
