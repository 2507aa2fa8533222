package smc_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/seliv/sysvitals/internal/smc"
)

type fakeKey struct {
	typeTag string
	data    []byte
}

type fakeTransport struct {
	keys       map[string]fakeKey
	closeCount int
	closeErr   error
}

func (f *fakeTransport) KeyInfo(key string) (smc.KeyInfo, error) {
	k, ok := f.keys[key]
	if !ok {
		return smc.KeyInfo{}, errors.New("key not found")
	}

	return smc.KeyInfo{Size: len(k.data), Type: k.typeTag}, nil
}

func (f *fakeTransport) ReadData(key string, size int) ([]byte, error) {
	k, ok := f.keys[key]
	if !ok {
		return nil, errors.New("key not found")
	}
	if size != len(k.data) {
		return nil, errors.New("size mismatch")
	}

	return k.data, nil
}

func (f *fakeTransport) Close() error {
	f.closeCount++

	return f.closeErr
}

func TestReadValueTwoPhase(t *testing.T) {
	transport := &fakeTransport{keys: map[string]fakeKey{
		"Tp01": {typeTag: smc.TypeFLT, data: []byte{0x00, 0x00, 0x36, 0x42}}, // 45.5
	}}
	channel := smc.NewChannel(transport)

	got, err := channel.ReadValue("Tp01")
	require.NoError(t, err)
	assert.InDelta(t, 45.5, got, 0.0001)
}

func TestReadValueUnknownKey(t *testing.T) {
	channel := smc.NewChannel(&fakeTransport{keys: map[string]fakeKey{}})

	_, err := channel.ReadValue("Tp01")
	assert.Error(t, err)
}

func TestReadTemperaturePicksMaximum(t *testing.T) {
	transport := &fakeTransport{keys: map[string]fakeKey{
		"Tp01": {typeTag: smc.TypeSP78, data: []byte{0x28, 0x00}}, // 40.0
		"Tp05": {typeTag: smc.TypeSP78, data: []byte{0x30, 0x80}}, // 48.5
		"Tp09": {typeTag: smc.TypeSP78, data: []byte{0x2c, 0x00}}, // 44.0
	}}
	channel := smc.NewChannel(transport)

	got, ok := channel.ReadTemperature([]string{"Tp09", "Tp01", "Tp05"})
	require.True(t, ok)
	assert.InDelta(t, 48.5, got, 0.0001)
}

func TestReadTemperatureSkipsSentinels(t *testing.T) {
	transport := &fakeTransport{keys: map[string]fakeKey{
		"Tp09": {typeTag: smc.TypeSP78, data: []byte{0x00, 0x00}}, // power-gated
		"Tp01": {typeTag: smc.TypeSP78, data: []byte{0x2e, 0x00}}, // 46.0
	}}
	channel := smc.NewChannel(transport)

	got, ok := channel.ReadTemperature([]string{"Tp09", "Tp01"})
	require.True(t, ok)
	assert.InDelta(t, 46.0, got, 0.0001)
}

func TestReadTemperatureNoPlausibleReading(t *testing.T) {
	transport := &fakeTransport{keys: map[string]fakeKey{
		"Tp09": {typeTag: smc.TypeSP78, data: []byte{0x00, 0x00}},
	}}
	channel := smc.NewChannel(transport)

	_, ok := channel.ReadTemperature(smc.CPUTemperatureKeys())
	assert.False(t, ok)
}

func TestCloseIsIdempotent(t *testing.T) {
	transport := &fakeTransport{closeErr: errors.New("release failed")}
	channel := smc.NewChannel(transport)

	first := channel.Close()
	second := channel.Close()

	assert.Equal(t, 1, transport.closeCount)
	assert.Equal(t, first, second)
}

func TestCPUTemperatureKeysReturnsCopy(t *testing.T) {
	keys := smc.CPUTemperatureKeys()
	require.NotEmpty(t, keys)

	keys[0] = "XXXX"
	assert.NotEqual(t, "XXXX", smc.CPUTemperatureKeys()[0])
}
