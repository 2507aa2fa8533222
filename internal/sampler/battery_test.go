package sampler_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/seliv/sysvitals/internal/sampler"
)

func TestDeriveBatteryHealthyReading(t *testing.T) {
	out := sampler.DeriveBattery(sampler.BatteryReading{
		Present:          true,
		ChargeNow:        4200,
		ChargeFull:       4900,
		ChargeFullDesign: 5200,
		Charging:         true,
		CycleCount:       312,
		HasCycles:        true,
		Condition:        "Good",
	})

	require.True(t, out.Present)
	assert.InDelta(t, 85.7, out.LevelPercent, 0.1)
	assert.True(t, out.Charging)
	require.NotNil(t, out.Health)
	assert.Equal(t, 94.0, *out.Health)
	require.NotNil(t, out.Cycles)
	assert.Equal(t, 312, *out.Cycles)
	assert.Equal(t, "Good", out.Condition)
}

func TestDeriveBatteryImplausibleHealthRatio(t *testing.T) {
	cases := []struct {
		name               string
		full, designedFull uint64
	}{
		{"far above design", 9000, 5000}, // ratio 1.8
		{"near zero", 10, 5000},          // ratio 0.002
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := sampler.DeriveBattery(sampler.BatteryReading{
				Present:          true,
				ChargeNow:        tc.full,
				ChargeFull:       tc.full,
				ChargeFullDesign: tc.designedFull,
			})

			assert.True(t, out.Present)
			assert.Nil(t, out.Health, "ratio outside the plausibility band must not publish health")
		})
	}
}

func TestDeriveBatteryAbsent(t *testing.T) {
	out := sampler.DeriveBattery(sampler.BatteryReading{Present: false})

	assert.False(t, out.Present)
	assert.Nil(t, out.Health)
	assert.Nil(t, out.Cycles)
}

func TestDeriveBatteryCapacityFallback(t *testing.T) {
	out := sampler.DeriveBattery(sampler.BatteryReading{
		Present:     true,
		CapacityPct: 63,
	})

	assert.Equal(t, 63.0, out.LevelPercent)
}

func TestDeriveBatteryLevelClamped(t *testing.T) {
	out := sampler.DeriveBattery(sampler.BatteryReading{
		Present:    true,
		ChargeNow:  5200,
		ChargeFull: 4900,
	})

	assert.Equal(t, 100.0, out.LevelPercent)
}

func TestSampleBatteryFailedQuery(t *testing.T) {
	read := func() (sampler.BatteryReading, error) {
		return sampler.BatteryReading{}, errors.New("power source query failed")
	}

	out := sampler.SampleBattery(read)

	assert.False(t, out.Present)
}
