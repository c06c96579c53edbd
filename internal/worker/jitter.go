package worker

import (
	"math/rand/v2"
	"time"
)

// jitterSpread доля интервала опроса, на которую он случайно сдвигается в обе стороны.
const jitterSpread = 0.1

// jitterDuration разносит запуски нескольких инстансов, чтобы они не ходили в БД одновременно.
// Результат лежит в [0.9*d, 1.1*d].
func jitterDuration(d time.Duration) time.Duration {
	factor := 1 - jitterSpread + rand.Float64()*2*jitterSpread //nolint:gosec
	return time.Duration(float64(d) * factor)
}
