// Package sampler converts raw OS and firmware readings into the
// normalized values the scheduler publishes. Each sampler is a function
// of an injected reader plus the previous tick's state, so every one of
// them is testable without a live kernel or firmware handle. The
// scheduler owns the state structs and threads them through each call;
// state is never advanced on a failed read, so a transient failure
// cannot poison the next delta.
package sampler

import (
	"codeberg.org/seliv/sysvitals/internal/logger"
	"codeberg.org/seliv/sysvitals/internal/rates"
)

// CPUTimesFunc reads the cumulative per-mode tick counters.
type CPUTimesFunc func() (rates.CPUSnapshot, error)

// CPUState is the retained delta state for the CPU sampler.
type CPUState struct {
	Prev    rates.CPUSnapshot
	HasPrev bool
	Percent float64
}

// SampleCPU diffs the current tick counters against the previous
// snapshot. The first call has nothing to diff against and reports 0%
// rather than the 100% artifact of naive instantaneous sampling.
func SampleCPU(read CPUTimesFunc, st CPUState) (float64, CPUState) {
	cur, err := read()
	if err != nil {
		logger.Debug().Err(err).Msg("CPU times read failed")
		return st.Percent, st
	}

	if !st.HasPrev {
		return 0, CPUState{Prev: cur, HasPrev: true, Percent: 0}
	}

	pct := rates.CPUPercent(st.Prev, cur, st.Percent)

	return pct, CPUState{Prev: cur, HasPrev: true, Percent: pct}
}
