package sampler

// TemperatureFunc reads one temperature source, reporting ok=false when
// no plausible value is available this tick.
type TemperatureFunc func() (float64, bool)

// SampleTemperature tries each source in order and adopts the first
// plausible reading. When every source comes up empty the previous
// value is retained unchanged; a powered-down sensor never zeroes the
// published temperature.
func SampleTemperature(sources []TemperatureFunc, previous *float64) *float64 {
	for _, read := range sources {
		if read == nil {
			continue
		}
		if v, ok := read(); ok {
			return &v
		}
	}

	return previous
}
