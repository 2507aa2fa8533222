package smc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/seliv/sysvitals/internal/smc"
)

func TestDecodeSP78(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want float64
	}{
		{"one and a half", []byte{0x01, 0x80}, 1.5},
		{"whole degrees", []byte{0x2e, 0x00}, 46.0},
		{"negative", []byte{0xff, 0x00}, -1.0},
		{"zero", []byte{0x00, 0x00}, 0.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := smc.Decode(smc.TypeSP78, tc.data)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 0.0001)
		})
	}
}

func TestDecodeFLT(t *testing.T) {
	// 45.5 as little-endian float32
	got, err := smc.Decode(smc.TypeFLT, []byte{0x00, 0x00, 0x36, 0x42})
	require.NoError(t, err)
	assert.InDelta(t, 45.5, got, 0.0001)
}

func TestDecodeFLTRejectsNaN(t *testing.T) {
	_, err := smc.Decode(smc.TypeFLT, []byte{0x00, 0x00, 0xc0, 0x7f})
	assert.Error(t, err)
}

func TestDecodeFPE2(t *testing.T) {
	// 0x0bb8 = 3000, /4 = 750
	got, err := smc.Decode(smc.TypeFPE2, []byte{0x0b, 0xb8})
	require.NoError(t, err)
	assert.InDelta(t, 750.0, got, 0.0001)
}

func TestDecodeRejectsUnknownTag(t *testing.T) {
	_, err := smc.Decode("ui32", []byte{0x00, 0x00, 0x00, 0x01})
	assert.Error(t, err)
}

func TestDecodeRejectsWrongLength(t *testing.T) {
	_, err := smc.Decode(smc.TypeSP78, []byte{0x01})
	assert.Error(t, err)

	_, err = smc.Decode(smc.TypeFLT, []byte{0x01, 0x02})
	assert.Error(t, err)
}

func TestPlausibleTemperature(t *testing.T) {
	assert.True(t, smc.PlausibleTemperature(46.5))
	assert.False(t, smc.PlausibleTemperature(0.0), "power-gated sentinel")
	assert.False(t, smc.PlausibleTemperature(smc.TempSentinelLow), "band is open")
	assert.False(t, smc.PlausibleTemperature(smc.TempSentinelHigh), "band is open")
	assert.False(t, smc.PlausibleTemperature(-127.0))
	assert.False(t, smc.PlausibleTemperature(255.0))
}
