package sampler

import (
	"codeberg.org/seliv/sysvitals/internal/logger"
	"codeberg.org/seliv/sysvitals/internal/metrics"
)

// StorageReadFunc reads free and total capacity of the boot volume.
type StorageReadFunc func() (free, total uint64, err error)

// SampleStorage reports boot volume capacity verbatim; no delta state.
func SampleStorage(read StorageReadFunc) metrics.StorageMetrics {
	free, total, err := read()
	if err != nil {
		logger.Debug().Err(err).Msg("Storage usage read failed")
		return metrics.StorageMetrics{}
	}

	return metrics.StorageMetrics{FreeBytes: free, TotalBytes: total}
}
