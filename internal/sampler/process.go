package sampler

import (
	"sort"
	"strconv"

	"codeberg.org/seliv/sysvitals/internal/logger"
	"codeberg.org/seliv/sysvitals/internal/metrics"
)

const (
	// Processes below this resident footprint are noise for a memory
	// ranking and are dropped before sorting.
	minProcessMemoryMB = 10.0
	maxProcessEntries  = 25
)

// ProcessInfo is one enumerated process before ranking.
type ProcessInfo struct {
	PID      int32
	Name     string
	RSSBytes uint64
}

// ProcessListFunc enumerates running processes with resident memory.
type ProcessListFunc func() ([]ProcessInfo, error)

// SampleProcesses rebuilds the memory-ranked process table from
// scratch. Nothing is diffed across ticks.
func SampleProcesses(list ProcessListFunc) []metrics.ProcessEntry {
	infos, err := list()
	if err != nil {
		logger.Debug().Err(err).Msg("Process enumeration failed")
		return nil
	}

	return RankProcesses(infos)
}

// RankProcesses filters entries below the memory floor, sorts the rest
// descending by resident memory and keeps the top entries. A process
// with no resolvable name is labeled by its numeric id.
func RankProcesses(infos []ProcessInfo) []metrics.ProcessEntry {
	entries := make([]metrics.ProcessEntry, 0, len(infos))
	for _, info := range infos {
		memMB := float64(info.RSSBytes) / (1024 * 1024)
		if memMB <= minProcessMemoryMB {
			continue
		}

		name := info.Name
		if name == "" {
			name = strconv.Itoa(int(info.PID))
		}

		entries = append(entries, metrics.ProcessEntry{
			PID:      info.PID,
			Name:     name,
			MemoryMB: memMB,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].MemoryMB > entries[j].MemoryMB
	})

	if len(entries) > maxProcessEntries {
		entries = entries[:maxProcessEntries]
	}

	return entries
}
