package sampler

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"codeberg.org/seliv/sysvitals/internal/logger"
	"codeberg.org/seliv/sysvitals/internal/metrics"
	"codeberg.org/seliv/sysvitals/internal/rates"
)

// Battery health is only trusted when max/design capacity lands inside
// this open band; anything else is a stale or garbage registry read.
// Empirical bounds, kept as tunables.
const (
	HealthRatioMin = 0.01
	HealthRatioMax = 1.15
)

// BatteryReading is one raw power-source query. Charge figures are in
// whatever unit the platform reports; only their ratios matter.
type BatteryReading struct {
	Present          bool
	ChargeNow        uint64
	ChargeFull       uint64
	ChargeFullDesign uint64
	CapacityPct      float64
	Charging         bool
	CycleCount       int
	HasCycles        bool
	Condition        string
}

// BatteryReadFunc queries the platform power-source list.
type BatteryReadFunc func() (BatteryReading, error)

// SampleBattery recomputes battery state from a fresh power-source
// query. Presence is re-decided every tick with no hysteresis.
func SampleBattery(read BatteryReadFunc) metrics.BatteryMetrics {
	reading, err := read()
	if err != nil {
		logger.Debug().Err(err).Msg("Power source query failed")
		return metrics.BatteryMetrics{}
	}

	return DeriveBattery(reading)
}

// DeriveBattery converts a raw reading into published battery metrics,
// applying the health plausibility band.
func DeriveBattery(r BatteryReading) metrics.BatteryMetrics {
	if !r.Present {
		return metrics.BatteryMetrics{}
	}

	level := r.CapacityPct
	if r.ChargeNow > 0 && r.ChargeFull > 0 {
		level = float64(r.ChargeNow) / float64(r.ChargeFull) * 100
	}

	out := metrics.BatteryMetrics{
		Present:      true,
		LevelPercent: rates.ClampPercent(level),
		Charging:     r.Charging,
		Condition:    r.Condition,
	}

	if r.HasCycles {
		cycles := r.CycleCount
		out.Cycles = &cycles
	}

	if r.ChargeFullDesign > 0 {
		ratio := float64(r.ChargeFull) / float64(r.ChargeFullDesign)
		if ratio > HealthRatioMin && ratio < HealthRatioMax {
			health := math.Round(ratio * 100)
			out.Health = &health
		} else {
			logger.Debug().Float64("ratio", ratio).Msg("Discarding implausible battery health ratio")
		}
	}

	return out
}

// powerSupplyRoot is the sysfs power-supply class directory; a variable
// so tests can point it at a fixture tree.
var powerSupplyRoot = "/sys/class/power_supply"

// ReadPowerSupply reads the first internal battery from the platform
// power-supply class. No battery entry is not an error; it yields a
// reading with Present false.
func ReadPowerSupply() (BatteryReading, error) {
	matches, err := filepath.Glob(filepath.Join(powerSupplyRoot, "BAT*"))
	if err != nil {
		return BatteryReading{}, err
	}
	if len(matches) == 0 {
		return BatteryReading{}, nil
	}

	data, err := os.ReadFile(filepath.Join(matches[0], "uevent"))
	if err != nil {
		return BatteryReading{}, err
	}

	props := parseUevent(string(data))

	reading := BatteryReading{
		Present:   true,
		Charging:  props["POWER_SUPPLY_STATUS"] == "Charging",
		Condition: props["POWER_SUPPLY_HEALTH"],
	}
	reading.CapacityPct, _ = strconv.ParseFloat(props["POWER_SUPPLY_CAPACITY"], 64)
	reading.ChargeNow, _ = strconv.ParseUint(props["POWER_SUPPLY_CHARGE_NOW"], 10, 64)
	reading.ChargeFull, _ = strconv.ParseUint(props["POWER_SUPPLY_CHARGE_FULL"], 10, 64)
	reading.ChargeFullDesign, _ = strconv.ParseUint(props["POWER_SUPPLY_CHARGE_FULL_DESIGN"], 10, 64)

	if raw, ok := props["POWER_SUPPLY_CYCLE_COUNT"]; ok {
		if cycles, err := strconv.Atoi(raw); err == nil {
			reading.CycleCount = cycles
			reading.HasCycles = true
		}
	}

	// Energy-reporting batteries expose energy_* instead of charge_*.
	if reading.ChargeFull == 0 {
		reading.ChargeNow, _ = strconv.ParseUint(props["POWER_SUPPLY_ENERGY_NOW"], 10, 64)
		reading.ChargeFull, _ = strconv.ParseUint(props["POWER_SUPPLY_ENERGY_FULL"], 10, 64)
		reading.ChargeFullDesign, _ = strconv.ParseUint(props["POWER_SUPPLY_ENERGY_FULL_DESIGN"], 10, 64)
	}

	return reading, nil
}

func parseUevent(data string) map[string]string {
	props := make(map[string]string)
	for _, line := range strings.Split(data, "\n") {
		if k, v, ok := strings.Cut(line, "="); ok {
			props[k] = strings.TrimSpace(v)
		}
	}

	return props
}
