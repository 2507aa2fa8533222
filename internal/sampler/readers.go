package sampler

import (
	"os"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	gopsnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"

	"codeberg.org/seliv/sysvitals/internal/rates"
	"codeberg.org/seliv/sysvitals/internal/smc"
)

// Production readers backing the injectable sampler functions. Each
// wraps one OS query; the samplers stay pure.

// ReadCPUTimes reads cumulative CPU tick counters for all cores
// combined.
func ReadCPUTimes() (rates.CPUSnapshot, error) {
	times, err := cpu.Times(false)
	if err != nil {
		return rates.CPUSnapshot{}, err
	}
	if len(times) == 0 {
		return rates.CPUSnapshot{}, nil
	}

	t := times[0]

	return rates.CPUSnapshot{
		User:   t.User,
		System: t.System + t.Irq + t.Softirq + t.Steal,
		Nice:   t.Nice,
		Idle:   t.Idle + t.Iowait,
	}, nil
}

// CoreCount returns the logical core count, 0 when unknown.
func CoreCount() int {
	n, err := cpu.Counts(true)
	if err != nil {
		return 0
	}

	return n
}

// ReadMemory reads VM statistics and maps them onto page counts. Wired
// memory is split out of the used figure so the activity-monitor
// formula reproduces the OS's own used number.
func ReadMemory() (MemorySnapshot, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return MemorySnapshot{}, err
	}

	pageSize := uint64(os.Getpagesize())

	internal := vm.Used
	if vm.Wired > 0 && vm.Wired < internal {
		internal -= vm.Wired
	}

	return MemorySnapshot{
		InternalPages:   internal / pageSize,
		WiredPages:      vm.Wired / pageSize,
		CompressorPages: 0,
		PurgeablePages:  0,
		PageSize:        pageSize,
		TotalBytes:      vm.Total,
	}, nil
}

// ReadStorage reads free and total capacity of the boot volume.
func ReadStorage() (free, total uint64, err error) {
	usage, err := disk.Usage("/")
	if err != nil {
		return 0, 0, err
	}

	return usage.Free, usage.Total, nil
}

// ReadNetworkCounters sums cumulative byte counters across physical
// interfaces.
func ReadNetworkCounters() (NetworkCounters, error) {
	counters, err := gopsnet.IOCounters(true)
	if err != nil {
		return NetworkCounters{}, err
	}

	var sum NetworkCounters
	for _, c := range counters {
		if !IsPhysicalInterface(c.Name) {
			continue
		}
		sum.BytesIn += c.BytesRecv
		sum.BytesOut += c.BytesSent
	}

	return sum, nil
}

// ReadBootTime reads the kernel boot time.
func ReadBootTime() (uint64, error) {
	return host.BootTime()
}

// ListProcesses enumerates all processes with name and resident memory.
// Individual process failures (exited mid-scan, permission denied) are
// skipped, not fatal.
func ListProcesses() ([]ProcessInfo, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, err
	}

	infos := make([]ProcessInfo, 0, len(procs))
	for _, p := range procs {
		memInfo, err := p.MemoryInfo()
		if err != nil || memInfo == nil {
			continue
		}

		name, _ := p.Name()

		infos = append(infos, ProcessInfo{
			PID:      p.Pid,
			Name:     name,
			RSSBytes: memInfo.RSS,
		})
	}

	return infos, nil
}

// FallbackTemperature reads the best CPU temperature from the generic
// sensor list, for hosts without the firmware channel. The same
// sentinel band applies as for firmware readings.
func FallbackTemperature() (float64, bool) {
	temps, err := host.SensorsTemperatures()
	if err != nil {
		return 0, false
	}

	best := 0.0
	bestScore := -1

	for _, t := range temps {
		if !smc.PlausibleTemperature(t.Temperature) {
			continue
		}

		key := strings.ToLower(t.SensorKey)
		score := 0
		switch {
		case strings.Contains(key, "package"):
			score = 3
		case strings.Contains(key, "tctl") || strings.Contains(key, "tdie"):
			score = 2
		case strings.Contains(key, "cpu"):
			score = 1
		}

		if score > bestScore || (score == bestScore && t.Temperature > best) {
			best = t.Temperature
			bestScore = score
		}
	}

	return best, bestScore >= 0
}
