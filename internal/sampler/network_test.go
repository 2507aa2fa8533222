package sampler_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"codeberg.org/seliv/sysvitals/internal/sampler"
)

func countersAt(in, out uint64) sampler.NetworkCountersFunc {
	return func() (sampler.NetworkCounters, error) {
		return sampler.NetworkCounters{BytesIn: in, BytesOut: out}, nil
	}
}

func TestSampleNetworkFirstTickSeedsState(t *testing.T) {
	now := time.Now()

	in, out, st := sampler.SampleNetwork(countersAt(5000, 3000), now, sampler.NetworkState{})

	assert.Equal(t, 0.0, in)
	assert.Equal(t, 0.0, out)
	assert.True(t, st.HasPrev)
	assert.Equal(t, uint64(5000), st.Prev.BytesIn)
}

func TestSampleNetworkComputesRates(t *testing.T) {
	t0 := time.Now()
	t1 := t0.Add(2 * time.Second)

	_, _, st := sampler.SampleNetwork(countersAt(1000, 500), t0, sampler.NetworkState{})
	in, out, _ := sampler.SampleNetwork(countersAt(3000, 1500), t1, st)

	assert.InDelta(t, 1000.0, in, 0.001)
	assert.InDelta(t, 500.0, out, 0.001)
}

func TestSampleNetworkCounterResetYieldsZero(t *testing.T) {
	t0 := time.Now()
	t1 := t0.Add(time.Second)

	_, _, st := sampler.SampleNetwork(countersAt(900_000, 400_000), t0, sampler.NetworkState{})
	in, out, st := sampler.SampleNetwork(countersAt(100, 50), t1, st)

	assert.Equal(t, 0.0, in)
	assert.Equal(t, 0.0, out)
	assert.Equal(t, uint64(100), st.Prev.BytesIn, "reset counters become the new baseline")
}

func TestSampleNetworkFailedReadKeepsState(t *testing.T) {
	prev := sampler.NetworkState{
		Prev:     sampler.NetworkCounters{BytesIn: 1000},
		PrevTime: time.Now(),
		HasPrev:  true,
		InRate:   123.0,
		OutRate:  45.0,
	}
	read := func() (sampler.NetworkCounters, error) {
		return sampler.NetworkCounters{}, errors.New("counters unavailable")
	}

	in, out, st := sampler.SampleNetwork(read, time.Now(), prev)

	assert.Equal(t, 123.0, in)
	assert.Equal(t, 45.0, out)
	assert.Equal(t, prev, st)
}

func TestIsPhysicalInterface(t *testing.T) {
	physical := []string{"eth0", "en0", "wlan0", "wlp3s0"}
	virtual := []string{"lo", "lo0", "docker0", "veth12ab", "br-09f2", "utun3", "awdl0", "vmnet8"}

	for _, name := range physical {
		assert.True(t, sampler.IsPhysicalInterface(name), name)
	}
	for _, name := range virtual {
		assert.False(t, sampler.IsPhysicalInterface(name), name)
	}
}
