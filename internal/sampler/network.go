package sampler

import (
	"net"
	"strings"
	"time"

	"codeberg.org/seliv/sysvitals/internal/logger"
	"codeberg.org/seliv/sysvitals/internal/metrics"
	"codeberg.org/seliv/sysvitals/internal/rates"
)

// NetworkCounters is one cumulative byte-counter snapshot summed across
// physical interfaces.
type NetworkCounters struct {
	BytesIn  uint64
	BytesOut uint64
}

// NetworkCountersFunc reads the current cumulative counters.
type NetworkCountersFunc func() (NetworkCounters, error)

// NetworkState is the retained delta state for the network sampler.
type NetworkState struct {
	Prev     NetworkCounters
	PrevTime time.Time
	HasPrev  bool
	InRate   float64
	OutRate  float64
}

// SampleNetwork rate-converts the cumulative counters against the
// previous snapshot. A counter that went backwards (interface reset,
// driver reload) contributes a zero delta, never a negative rate. The
// first call reports 0 and seeds the snapshot.
func SampleNetwork(read NetworkCountersFunc, now time.Time, st NetworkState) (in, out float64, newState NetworkState) {
	cur, err := read()
	if err != nil {
		logger.Debug().Err(err).Msg("Network counters read failed")
		return st.InRate, st.OutRate, st
	}

	if !st.HasPrev {
		return 0, 0, NetworkState{Prev: cur, PrevTime: now, HasPrev: true}
	}

	elapsed := now.Sub(st.PrevTime).Seconds()
	in = rates.ByteRate(st.Prev.BytesIn, cur.BytesIn, elapsed, st.InRate)
	out = rates.ByteRate(st.Prev.BytesOut, cur.BytesOut, elapsed, st.OutRate)

	return in, out, NetworkState{
		Prev:     cur,
		PrevTime: now,
		HasPrev:  true,
		InRate:   in,
		OutRate:  out,
	}
}

// virtualPrefixes marks interface names excluded from the physical
// byte-counter sum and from address resolution.
var virtualPrefixes = []string{
	"lo", "veth", "docker", "br-", "virbr", "tap", "tun",
	"utun", "awdl", "llw", "bridge", "vmnet", "zt",
}

// IsPhysicalInterface reports whether an interface name looks like real
// hardware rather than a loopback or virtual device.
func IsPhysicalInterface(name string) bool {
	for _, prefix := range virtualPrefixes {
		if strings.HasPrefix(name, prefix) {
			return false
		}
	}

	return true
}

// LocalIP resolves the first non-loopback IPv4 address bound to a
// physical interface. Resolved fresh on every call; addresses move.
func LocalIP() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return metrics.ValueUnavailable
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if !IsPhysicalInterface(iface.Name) {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			ip := ipNet.IP.To4()
			if ip == nil || ip.IsLoopback() || ip.IsLinkLocalUnicast() {
				continue
			}

			return ip.String()
		}
	}

	return metrics.ValueUnavailable
}
