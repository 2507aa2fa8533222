package sampler_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/seliv/sysvitals/internal/sampler"
)

const mib = 1024 * 1024

func TestRankProcessesFiltersSortsAndCaps(t *testing.T) {
	infos := make([]sampler.ProcessInfo, 0, 40)
	for i := 0; i < 40; i++ {
		infos = append(infos, sampler.ProcessInfo{
			PID:      int32(100 + i),
			Name:     fmt.Sprintf("proc%d", i),
			RSSBytes: uint64(i+1) * 20 * mib,
		})
	}
	// below the floor, must be dropped
	infos = append(infos, sampler.ProcessInfo{PID: 1, Name: "tiny", RSSBytes: 3 * mib})

	entries := sampler.RankProcesses(infos)

	require.Len(t, entries, 25)
	assert.Equal(t, "proc39", entries[0].Name)
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].MemoryMB, entries[i].MemoryMB)
	}
	for _, e := range entries {
		assert.NotEqual(t, "tiny", e.Name)
	}
}

func TestRankProcessesFloorIsExclusive(t *testing.T) {
	infos := []sampler.ProcessInfo{
		{PID: 10, Name: "exactly", RSSBytes: 10 * mib},
		{PID: 11, Name: "above", RSSBytes: 10*mib + 1},
	}

	entries := sampler.RankProcesses(infos)

	require.Len(t, entries, 1)
	assert.Equal(t, "above", entries[0].Name)
}

func TestRankProcessesNamelessFallsBackToPID(t *testing.T) {
	entries := sampler.RankProcesses([]sampler.ProcessInfo{
		{PID: 4242, Name: "", RSSBytes: 64 * mib},
	})

	require.Len(t, entries, 1)
	assert.Equal(t, "4242", entries[0].Name)
}

func TestSampleProcessesFailedEnumeration(t *testing.T) {
	list := func() ([]sampler.ProcessInfo, error) {
		return nil, errors.New("enumeration failed")
	}

	assert.Nil(t, sampler.SampleProcesses(list))
}
