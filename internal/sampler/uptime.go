package sampler

import (
	"fmt"
	"time"

	"codeberg.org/seliv/sysvitals/internal/logger"
	"codeberg.org/seliv/sysvitals/internal/metrics"
)

// BootTimeFunc reads the kernel boot time as a Unix timestamp.
type BootTimeFunc func() (uint64, error)

// SampleUptime reads boot time and formats elapsed time since then.
func SampleUptime(read BootTimeFunc, now time.Time) string {
	boot, err := read()
	if err != nil {
		logger.Debug().Err(err).Msg("Boot time read failed")
		return metrics.ValueUnavailable
	}

	elapsed := now.Sub(time.Unix(int64(boot), 0))
	if elapsed < 0 {
		return metrics.ValueUnavailable
	}

	return FormatUptime(elapsed)
}

// FormatUptime renders a duration as its coarsest two non-zero units:
// days+hours, hours+minutes, or bare minutes.
func FormatUptime(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
