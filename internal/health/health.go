// Package health maps current sampled values to human-readable warnings
// using fixed thresholds. Evaluation is pure; the scheduler feeds it the
// values it just published.
package health

import (
	"fmt"
	"strings"
)

// Thresholds are empirically chosen and deliberately exported as
// constants rather than re-derived.
const (
	BatteryHealthFloor  = 80.0
	ThermalSeverityWarn = 2
	CPUPercentCeiling   = 90.0
	RAMPercentCeiling   = 90.0
	FreeSpaceFloorFrac  = 0.10
)

// AllNominal is the canonical status when no threshold is crossed.
const AllNominal = "All systems nominal"

// Inputs carries the values the evaluator inspects. BatteryHealth is
// nil when health could not be derived this tick; a nil health never
// warns.
type Inputs struct {
	BatteryHealth   *float64
	ThermalSeverity int
	CPUPercent      float64
	RAMPercent      float64
	StorageFree     uint64
	StorageTotal    uint64
}

// Evaluate returns warnings in fixed order: battery, thermal, CPU, RAM,
// storage. An empty slice means all nominal.
func Evaluate(in Inputs) []string {
	var warnings []string

	if in.BatteryHealth != nil && *in.BatteryHealth < BatteryHealthFloor {
		warnings = append(warnings, fmt.Sprintf("Battery health degraded (%.0f%%)", *in.BatteryHealth))
	}

	if in.ThermalSeverity >= ThermalSeverityWarn {
		warnings = append(warnings, "Thermal pressure elevated")
	}

	if in.CPUPercent > CPUPercentCeiling {
		warnings = append(warnings, fmt.Sprintf("CPU load high (%.0f%%)", in.CPUPercent))
	}

	if in.RAMPercent > RAMPercentCeiling {
		warnings = append(warnings, fmt.Sprintf("Memory pressure high (%.0f%%)", in.RAMPercent))
	}

	if in.StorageTotal > 0 {
		freeFrac := float64(in.StorageFree) / float64(in.StorageTotal)
		if freeFrac < FreeSpaceFloorFrac {
			warnings = append(warnings, fmt.Sprintf("Disk space low (%.0f%% free)", freeFrac*100))
		}
	}

	return warnings
}

// Summary joins warnings for display, or returns the canonical nominal
// status when there are none.
func Summary(warnings []string) string {
	if len(warnings) == 0 {
		return AllNominal
	}

	return strings.Join(warnings, "; ")
}
