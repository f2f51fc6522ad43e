package clock

import (
	"math/rand"
	"time"
)

// Backoff returns failures² × base capped at max.
func Backoff(base, max time.Duration, failures int) time.Duration {
	if failures <= 0 {
		return 0
	}
	if base <= 0 {
		return max
	}
	limit := int64(max / base)
	n := int64(failures)
	if n > limit || n*n > limit {
		return max
	}
	return time.Duration(n*n) * base
}

// RandomBetween returns a uniformly distributed duration in [min, max].
func RandomBetween(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)+1))
}
