// Package scheduler owns the sampling cadence. One goroutine drives all
// samplers, so the retained delta state needs no locking; inbound
// controls arrive over a command channel and the published snapshot is
// exposed through an atomic pointer: single writer, many readers.
package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"codeberg.org/seliv/sysvitals/internal/health"
	"codeberg.org/seliv/sysvitals/internal/logger"
	"codeberg.org/seliv/sysvitals/internal/metrics"
	"codeberg.org/seliv/sysvitals/internal/sampler"
	"codeberg.org/seliv/sysvitals/internal/smc"
	"codeberg.org/seliv/sysvitals/internal/trend"
)

const (
	// MinIntervalSec and MaxIntervalSec bound the polling cadence.
	MinIntervalSec = 1
	MaxIntervalSec = 10
)

// Firmware sensors can be powered down right after boot; the
// temperature read alone is retried at these points after startup until
// a plausible value lands.
var temperatureRetryDelays = []time.Duration{
	1 * time.Second,
	2 * time.Second,
	5 * time.Second,
	10 * time.Second,
	30 * time.Second,
}

// ClampIntervalSec bounds a requested polling interval in seconds.
func ClampIntervalSec(sec int) int {
	if sec < MinIntervalSec {
		return MinIntervalSec
	}
	if sec > MaxIntervalSec {
		return MaxIntervalSec
	}

	return sec
}

// Readers bundles the injectable sources the samplers read from. Tests
// substitute fakes; production wiring comes from DefaultReaders.
type Readers struct {
	CPUTimes    sampler.CPUTimesFunc
	Memory      sampler.MemoryReadFunc
	Storage     sampler.StorageReadFunc
	Battery     sampler.BatteryReadFunc
	Network     sampler.NetworkCountersFunc
	Thermal     sampler.ThermalLevelFunc
	BootTime    sampler.BootTimeFunc
	Processes   sampler.ProcessListFunc
	Temperature []sampler.TemperatureFunc
	LocalIP     func() string
	CoreCount   func() int
}

// DefaultReaders wires the production OS readers. The firmware channel
// may be nil (failed to open); temperature then relies on the fallback
// sensor list alone.
func DefaultReaders(ch *smc.Channel) Readers {
	var temps []sampler.TemperatureFunc
	if ch != nil {
		keys := smc.CPUTemperatureKeys()
		temps = append(temps, func() (float64, bool) {
			return ch.ReadTemperature(keys)
		})
	}
	temps = append(temps, sampler.FallbackTemperature)

	return Readers{
		CPUTimes:    sampler.ReadCPUTimes,
		Memory:      sampler.ReadMemory,
		Storage:     sampler.ReadStorage,
		Battery:     sampler.ReadPowerSupply,
		Network:     sampler.ReadNetworkCounters,
		Thermal:     sampler.ReadThermalZoneLevel,
		BootTime:    sampler.ReadBootTime,
		Processes:   sampler.ListProcesses,
		Temperature: temps,
		LocalIP:     sampler.LocalIP,
		CoreCount:   sampler.CoreCount,
	}
}

type commandKind int

const (
	cmdSetInterval commandKind = iota
	cmdSetVisible
	cmdSetProcessesOpen
	cmdFullRefresh
)

type command struct {
	kind     commandKind
	interval time.Duration
	flag     bool
}

// Scheduler drives the sampling loop and republishes metrics each tick.
type Scheduler struct {
	readers  Readers
	interval time.Duration

	cpuState    sampler.CPUState
	netState    sampler.NetworkState
	temperature *float64
	trends      *trend.Recorder

	visible       bool
	processesOpen bool

	published atomic.Pointer[metrics.Snapshot]
	cmds      chan command

	// OnPublish, when set before Run, is called on the scheduler
	// goroutine after every published snapshot.
	OnPublish func(metrics.Snapshot)
}

// New creates a scheduler with the given readers and polling interval
// in seconds (clamped).
func New(readers Readers, intervalSec int) *Scheduler {
	s := &Scheduler{
		readers:  readers,
		interval: time.Duration(ClampIntervalSec(intervalSec)) * time.Second,
		trends:   trend.NewRecorder(),
		cmds:     make(chan command, 16),
	}

	initial := metrics.NewSnapshot()
	s.published.Store(&initial)

	return s
}

// Latest returns the most recently published snapshot.
func (s *Scheduler) Latest() metrics.Snapshot {
	return *s.published.Load()
}

// SetIntervalSec requests a cadence change. The clamped value takes
// effect on the next tick boundary; there is no immediate re-fire.
func (s *Scheduler) SetIntervalSec(sec int) {
	d := time.Duration(ClampIntervalSec(sec)) * time.Second
	s.cmds <- command{kind: cmdSetInterval, interval: d}
}

// SetVisible toggles the full sampling tier.
func (s *Scheduler) SetVisible(visible bool) {
	s.cmds <- command{kind: cmdSetVisible, flag: visible}
}

// SetProcessesOpen toggles the process-table sampler within the full
// tier.
func (s *Scheduler) SetProcessesOpen(open bool) {
	s.cmds <- command{kind: cmdSetProcessesOpen, flag: open}
}

// FullRefresh runs the full tier immediately, regardless of the gating
// flags. Used when the consumer becomes visible.
func (s *Scheduler) FullRefresh() {
	s.cmds <- command{kind: cmdFullRefresh}
}

// Run executes the sampling loop until the context is cancelled. One
// full pass runs immediately, then periodic ticking begins.
func (s *Scheduler) Run(ctx context.Context) error {
	s.runPass(time.Now(), true, s.processesOpen)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	retry := s.newTemperatureRetry()

	for {
		select {
		case <-ctx.Done():
			return nil

		case now := <-ticker.C:
			s.runPass(now, s.visible, s.visible && s.processesOpen)

		case <-retry.C():
			if s.retryTemperature() {
				retry.Stop()
			} else {
				retry.Next()
			}

		case cmd := <-s.cmds:
			switch cmd.kind {
			case cmdSetInterval:
				if cmd.interval != s.interval {
					s.interval = cmd.interval
					ticker.Reset(s.interval)
					logger.Info().Dur("interval", s.interval).Msg("Polling interval changed")
				}
			case cmdSetVisible:
				s.visible = cmd.flag
			case cmdSetProcessesOpen:
				s.processesOpen = cmd.flag
			case cmdFullRefresh:
				s.runPass(time.Now(), true, s.processesOpen)
			}
		}
	}
}

// runPass executes one sampling pass. The light tier (CPU, memory,
// trends) always runs; the full tier is gated by visibility. A snapshot
// is always republished, even if every sampler degraded; no sampler
// failure may abort the pass.
func (s *Scheduler) runPass(now time.Time, full, includeProcesses bool) {
	snap := *s.published.Load()
	snap.Timestamp = now

	var cpuPct float64
	cpuPct, s.cpuState = sampler.SampleCPU(s.readers.CPUTimes, s.cpuState)
	snap.CPU.Percent = cpuPct
	if snap.CPU.Cores == 0 && s.readers.CoreCount != nil {
		snap.CPU.Cores = s.readers.CoreCount()
	}

	snap.Memory = sampler.SampleMemory(s.readers.Memory)

	s.trends.Record(now, snap.CPU.Percent, snap.Memory.Percent)
	snap.CPUTrend = s.trends.CPU.Points()
	snap.RAMTrend = s.trends.RAM.Points()

	if full {
		snap.Uptime = sampler.SampleUptime(s.readers.BootTime, now)
		snap.Thermal = sampler.SampleThermal(s.readers.Thermal)
		s.temperature = sampler.SampleTemperature(s.readers.Temperature, s.temperature)
		snap.TemperatureC = s.temperature
		snap.Storage = sampler.SampleStorage(s.readers.Storage)
		snap.Battery = sampler.SampleBattery(s.readers.Battery)

		var in, out float64
		in, out, s.netState = sampler.SampleNetwork(s.readers.Network, now, s.netState)
		snap.Network.InBytesPerSec = in
		snap.Network.OutBytesPerSec = out
		if s.readers.LocalIP != nil {
			snap.Network.LocalIP = s.readers.LocalIP()
		}

		snap.Health = health.Summary(health.Evaluate(health.Inputs{
			BatteryHealth:   snap.Battery.Health,
			ThermalSeverity: snap.Thermal.Severity,
			CPUPercent:      snap.CPU.Percent,
			RAMPercent:      snap.Memory.Percent,
			StorageFree:     snap.Storage.FreeBytes,
			StorageTotal:    snap.Storage.TotalBytes,
		}))

		if includeProcesses {
			snap.TopProcesses = sampler.SampleProcesses(s.readers.Processes)
		}
	}

	s.published.Store(&snap)

	if s.OnPublish != nil {
		s.OnPublish(snap)
	}
}

// retryTemperature attempts the temperature read alone, outside the
// normal tick, and republishes on success. Returns true once a value
// has been obtained.
func (s *Scheduler) retryTemperature() bool {
	if s.temperature != nil {
		return true
	}

	s.temperature = sampler.SampleTemperature(s.readers.Temperature, nil)
	if s.temperature == nil {
		return false
	}

	snap := *s.published.Load()
	snap.TemperatureC = s.temperature
	s.published.Store(&snap)
	logger.Debug().Float64("celsius", *s.temperature).Msg("Temperature obtained on startup retry")

	return true
}

// temperatureRetry walks the fixed backoff schedule. Stop disarms it;
// Next arms the following delay, or disarms after the last one.
type temperatureRetry struct {
	timer *time.Timer
	next  int
	done  bool
}

func (s *Scheduler) newTemperatureRetry() *temperatureRetry {
	r := &temperatureRetry{}
	if s.temperature != nil || len(temperatureRetryDelays) == 0 {
		r.done = true
		return r
	}

	r.timer = time.NewTimer(temperatureRetryDelays[0])
	r.next = 1

	return r
}

func (r *temperatureRetry) C() <-chan time.Time {
	if r.done {
		return nil
	}

	return r.timer.C
}

func (r *temperatureRetry) Next() {
	if r.done {
		return
	}
	if r.next >= len(temperatureRetryDelays) {
		r.Stop()
		return
	}

	r.timer.Reset(temperatureRetryDelays[r.next])
	r.next++
}

func (r *temperatureRetry) Stop() {
	if r.timer != nil {
		r.timer.Stop()
	}
	r.done = true
}
