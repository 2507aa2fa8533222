package smc

// CPU temperature key candidates, ordered by preference. Apple Silicon
// performance-core sensors come first; the TC0x family covers Intel-era
// firmware. The sampler adopts the maximum valid reading among the keys
// that decode, so stale or power-gated entries in the list are harmless.
var cpuTemperatureKeys = []string{
	// Apple Silicon
	"Tp09",
	"Tp0T",
	"Tp01",
	"Tp05",
	"Tp0D",
	"Tp0H",
	"Tp0L",
	"Tp0P",
	"Tp0X",
	"Tp0b",
	// Legacy
	"TC0P",
	"TC0D",
	"TC0E",
	"TC0F",
}

// CPUTemperatureKeys returns the ordered candidate key list.
func CPUTemperatureKeys() []string {
	keys := make([]string, len(cpuTemperatureKeys))
	copy(keys, cpuTemperatureKeys)

	return keys
}
