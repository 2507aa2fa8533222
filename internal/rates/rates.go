// Package rates converts pairs of cumulative counter snapshots into
// instantaneous rates and percentages. All functions are pure; the
// caller owns snapshot retention between ticks.
package rates

// CPUSnapshot holds cumulative per-mode CPU tick counters at one instant.
type CPUSnapshot struct {
	User   float64
	System float64
	Nice   float64
	Idle   float64
}

// Busy returns the cumulative non-idle tick count.
func (s CPUSnapshot) Busy() float64 {
	return s.User + s.System + s.Nice
}

// Total returns the cumulative tick count across all modes.
func (s CPUSnapshot) Total() float64 {
	return s.Busy() + s.Idle
}

// Delta returns current-prior for a cumulative counter. A counter that
// decreased is treated as reset and yields 0, never a wrapped value.
func Delta(prior, current uint64) uint64 {
	if current < prior {
		return 0
	}

	return current - prior
}

// ByteRate converts two cumulative byte counters and elapsed wall-clock
// seconds into bytes per second. A non-positive elapsed time returns the
// previous rate unchanged to avoid a divide by zero.
func ByteRate(prior, current uint64, elapsedSec, previousRate float64) float64 {
	if elapsedSec <= 0 {
		return previousRate
	}

	return float64(Delta(prior, current)) / elapsedSec
}

// CPUPercent computes busy CPU percentage from two cumulative tick
// snapshots. When the total delta is zero or negative the previous
// percentage is retained.
func CPUPercent(prior, current CPUSnapshot, previousPercent float64) float64 {
	busyDelta := current.Busy() - prior.Busy()
	totalDelta := current.Total() - prior.Total()

	if totalDelta <= 0 {
		return previousPercent
	}
	if busyDelta < 0 {
		busyDelta = 0
	}

	return ClampPercent(busyDelta / totalDelta * 100)
}

// ClampPercent bounds a percentage to [0,100].
func ClampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}

	return v
}
