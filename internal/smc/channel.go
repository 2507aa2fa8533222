package smc

import (
	"sync"

	"codeberg.org/seliv/sysvitals/internal/errors"
	"codeberg.org/seliv/sysvitals/internal/logger"
)

// KeyInfo is the phase-one answer for a key: the payload length and
// type tag the firmware declares for it.
type KeyInfo struct {
	Size int
	Type string
}

// Transport is the raw connection to the hardware-management service.
// Implementations are platform specific; tests substitute fakes.
type Transport interface {
	KeyInfo(key string) (KeyInfo, error)
	ReadData(key string, size int) ([]byte, error)
	Close() error
}

// Channel wraps a Transport with typed reads and idempotent release.
// A single Channel is shared across ticks; the scheduler never reads
// concurrently, so no locking is needed around reads.
type Channel struct {
	transport Transport
	closeOnce sync.Once
	closeErr  error
}

// Open connects to the platform hardware-management service. Failure is
// permanent for the process lifetime: callers fall back to other sensor
// sources and never retry the open.
func Open() (*Channel, error) {
	t, err := openTransport()
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrChannelOpen, err)
	}

	return NewChannel(t), nil
}

// NewChannel wraps an already-open transport.
func NewChannel(t Transport) *Channel {
	return &Channel{transport: t}
}

// ReadValue performs a two-phase read of one key and decodes the
// payload by its declared type tag.
func (c *Channel) ReadValue(key string) (float64, error) {
	info, err := c.transport.KeyInfo(key)
	if err != nil {
		return 0, errFactory.Wrap(errors.ErrKeyNotFound, err)
	}

	data, err := c.transport.ReadData(key, info.Size)
	if err != nil {
		return 0, errFactory.Wrap(errors.ErrKeyNotFound, err)
	}

	return Decode(info.Type, data)
}

// ReadTemperature tries each candidate key in order and returns the
// maximum plausible reading among those that decoded. ok is false when
// no key produced a plausible value this pass; callers keep their
// previous value in that case.
func (c *Channel) ReadTemperature(keys []string) (float64, bool) {
	best := 0.0
	found := false

	for _, key := range keys {
		v, err := c.ReadValue(key)
		if err != nil {
			continue
		}
		if !PlausibleTemperature(v) {
			logger.Debug().Str("key", key).Float64("value", v).Msg("Discarding sentinel sensor reading")
			continue
		}
		if !found || v > best {
			best = v
			found = true
		}
	}

	return best, found
}

// Close releases the transport. Safe to call more than once.
func (c *Channel) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.transport.Close()
	})

	return c.closeErr
}
