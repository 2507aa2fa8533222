package sampler

import (
	"codeberg.org/seliv/sysvitals/internal/logger"
	"codeberg.org/seliv/sysvitals/internal/metrics"
	"codeberg.org/seliv/sysvitals/internal/rates"
)

// MemorySnapshot is one VM-statistics read in pages. The used formula
// follows activity-monitor semantics rather than "total minus free":
// app memory (internal less purgeable) plus wired plus compressor.
type MemorySnapshot struct {
	InternalPages   uint64
	PurgeablePages  uint64
	WiredPages      uint64
	CompressorPages uint64
	PageSize        uint64
	TotalBytes      uint64
}

// UsedBytes computes used memory from the page counts.
func (s MemorySnapshot) UsedBytes() uint64 {
	app := uint64(0)
	if s.InternalPages > s.PurgeablePages {
		app = s.InternalPages - s.PurgeablePages
	}

	return (app + s.WiredPages + s.CompressorPages) * s.PageSize
}

// MemoryReadFunc reads the current VM statistics.
type MemoryReadFunc func() (MemorySnapshot, error)

// SampleMemory recomputes memory pressure from a fresh snapshot. No
// state is retained between ticks.
func SampleMemory(read MemoryReadFunc) metrics.MemoryMetrics {
	snap, err := read()
	if err != nil {
		logger.Debug().Err(err).Msg("Memory statistics read failed")
		return metrics.MemoryMetrics{}
	}

	used := snap.UsedBytes()
	pct := 0.0
	if snap.TotalBytes > 0 {
		pct = rates.ClampPercent(float64(used) / float64(snap.TotalBytes) * 100)
	}

	return metrics.MemoryMetrics{
		UsedBytes:  used,
		TotalBytes: snap.TotalBytes,
		Percent:    pct,
	}
}
