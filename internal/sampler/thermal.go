package sampler

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"codeberg.org/seliv/sysvitals/internal/metrics"
)

// ThermalLevel is the coarse OS-reported thermal-pressure level.
type ThermalLevel int

const (
	ThermalNominal ThermalLevel = iota
	ThermalFair
	ThermalSerious
	ThermalCritical
)

// Label returns the display name for a level.
func (l ThermalLevel) Label() string {
	switch l {
	case ThermalFair:
		return "Fair"
	case ThermalSerious:
		return "Serious"
	case ThermalCritical:
		return "Critical"
	default:
		return "Nominal"
	}
}

// ParseThermalLevel maps a platform level string to a ThermalLevel.
// Unrecognized or future levels fail open to Nominal rather than crash.
func ParseThermalLevel(raw string) ThermalLevel {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "fair", "moderate":
		return ThermalFair
	case "serious":
		return ThermalSerious
	case "critical", "trapping", "sleeping":
		return ThermalCritical
	default:
		return ThermalNominal
	}
}

// ThermalLevelFunc reads the platform's coarse thermal level string.
type ThermalLevelFunc func() (string, error)

// SampleThermal maps the platform level to published thermal metrics.
// Any read failure degrades to nominal.
func SampleThermal(read ThermalLevelFunc) metrics.ThermalMetrics {
	raw, err := read()
	if err != nil {
		raw = ""
	}

	level := ParseThermalLevel(raw)

	return metrics.ThermalMetrics{
		Label:    level.Label(),
		Severity: int(level),
	}
}

// thermalZoneRoot is the sysfs thermal class directory; a variable so
// tests can point it at a fixture tree.
var thermalZoneRoot = "/sys/class/thermal"

// ReadThermalZoneLevel derives a coarse level by comparing the first
// thermal zone's temperature against its declared trip points.
func ReadThermalZoneLevel() (string, error) {
	zones, err := filepath.Glob(filepath.Join(thermalZoneRoot, "thermal_zone*"))
	if err != nil || len(zones) == 0 {
		return "", err
	}
	zone := zones[0]

	temp, err := readZoneInt(filepath.Join(zone, "temp"))
	if err != nil {
		return "", err
	}

	trips, err := filepath.Glob(filepath.Join(zone, "trip_point_*_temp"))
	if err != nil || len(trips) == 0 {
		return "nominal", nil
	}

	level := "nominal"
	for _, tripTempPath := range trips {
		tripTemp, err := readZoneInt(tripTempPath)
		if err != nil || temp < tripTemp {
			continue
		}

		tripTypePath := strings.TrimSuffix(tripTempPath, "_temp") + "_type"
		tripType, err := os.ReadFile(tripTypePath)
		if err != nil {
			continue
		}

		switch strings.TrimSpace(string(tripType)) {
		case "critical":
			return "critical", nil
		case "hot":
			level = "serious"
		case "passive", "active":
			if level == "nominal" {
				level = "fair"
			}
		}
	}

	return level, nil
}

func readZoneInt(path string) (int64, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	return strconv.ParseInt(strings.TrimSpace(string(b)), 10, 64)
}
