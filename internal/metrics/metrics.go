// Package metrics defines the externally visible snapshot the scheduler
// publishes after every sampling pass. The presentation layer reads these
// values; nothing here touches the OS.
package metrics

import (
	"time"

	"codeberg.org/seliv/sysvitals/internal/trend"
)

// ValueUnavailable is the neutral placeholder for string metrics that
// could not be sampled this tick.
const ValueUnavailable = "—"

// CPUMetrics is the normalized CPU load state.
type CPUMetrics struct {
	Percent float64
	Cores   int
}

// MemoryMetrics is the normalized memory pressure state.
type MemoryMetrics struct {
	UsedBytes  uint64
	TotalBytes uint64
	Percent    float64
}

// StorageMetrics is the boot volume capacity state.
type StorageMetrics struct {
	FreeBytes  uint64
	TotalBytes uint64
}

// BatteryMetrics is the derived battery condition. Health and Cycles
// are nil when no plausible registry reading was available; all fields
// are zero/false/nil when Present is false.
type BatteryMetrics struct {
	Present      bool
	LevelPercent float64
	Charging     bool
	Health       *float64
	Cycles       *int
	Condition    string
}

// NetworkMetrics is the aggregate physical-interface throughput plus
// the host's current local address.
type NetworkMetrics struct {
	InBytesPerSec  float64
	OutBytesPerSec float64
	LocalIP        string
}

// ThermalMetrics is the coarse OS thermal-pressure state.
type ThermalMetrics struct {
	Label    string
	Severity int
}

// ProcessEntry is one row of the memory-ranked process table.
type ProcessEntry struct {
	PID      int32
	Name     string
	MemoryMB float64
}

// Snapshot is the full published state, overwritten atomically at the
// end of each sampling pass.
type Snapshot struct {
	Timestamp time.Time

	CPU     CPUMetrics
	Memory  MemoryMetrics
	Storage StorageMetrics
	Battery BatteryMetrics
	Network NetworkMetrics
	Thermal ThermalMetrics

	// TemperatureC is nil until a plausible firmware or fallback sensor
	// reading has been obtained.
	TemperatureC *float64

	Uptime       string
	Health       string
	TopProcesses []ProcessEntry

	CPUTrend []trend.Point
	RAMTrend []trend.Point
}

// NewSnapshot returns a snapshot with neutral placeholder values.
func NewSnapshot() Snapshot {
	return Snapshot{
		Timestamp: time.Now(),
		Network:   NetworkMetrics{LocalIP: ValueUnavailable},
		Thermal:   ThermalMetrics{Label: "Nominal"},
		Uptime:    ValueUnavailable,
		Health:    ValueUnavailable,
	}
}
