//go:build !darwin

package smc

import "codeberg.org/seliv/sysvitals/internal/errors"

// The firmware sensor service only exists on darwin hosts. Elsewhere
// the channel is permanently unavailable and the temperature sampler
// relies on its fallback source.
func openTransport() (Transport, error) {
	return nil, errFactory.New(errors.ErrUnavailable)
}
