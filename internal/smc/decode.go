// Package smc speaks the firmware key/value sensor protocol of the
// platform hardware-management service. Reads are two-phase: a key-info
// query returns the declared byte length and type tag for a 4-character
// key, then a data read fetches a payload of that length which is
// decoded according to the tag.
package smc

import (
	"encoding/binary"
	"math"

	"codeberg.org/seliv/sysvitals/internal/errors"
)

// Type tags the decoder understands. Anything else fails decoding and
// the reading is treated as unavailable.
const (
	TypeSP78 = "sp78" // signed 8.8 fixed point, big endian, 2 bytes
	TypeFLT  = "flt " // IEEE-754 float32, little endian, 4 bytes
	TypeFPE2 = "fpe2" // unsigned 14.2 fixed point, big endian, 2 bytes
)

const (
	// TempSentinelLow and TempSentinelHigh bound the plausible CPU
	// temperature band in degrees Celsius. Readings outside the open
	// interval are power-gated sentinels, not data. The bounds are
	// empirical; treat them as tunables, not derived truths.
	TempSentinelLow  = 20.0
	TempSentinelHigh = 150.0
)

var errFactory = errors.New()

// Decode converts a raw payload into a float value according to the
// declared type tag.
func Decode(typeTag string, data []byte) (float64, error) {
	switch typeTag {
	case TypeSP78:
		if len(data) != 2 {
			return 0, errFactory.WithData(errors.ErrUnsupportedType, len(data))
		}
		raw := int16(binary.BigEndian.Uint16(data))
		return float64(raw) / 256.0, nil

	case TypeFLT:
		if len(data) != 4 {
			return 0, errFactory.WithData(errors.ErrUnsupportedType, len(data))
		}
		bits := binary.LittleEndian.Uint32(data)
		v := float64(math.Float32frombits(bits))
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, errFactory.New(errors.ErrImplausibleRead)
		}
		return v, nil

	case TypeFPE2:
		if len(data) != 2 {
			return 0, errFactory.WithData(errors.ErrUnsupportedType, len(data))
		}
		raw := binary.BigEndian.Uint16(data)
		return float64(raw) / 4.0, nil
	}

	return 0, errFactory.WithData(errors.ErrUnsupportedType, typeTag)
}

// PlausibleTemperature reports whether a decoded temperature falls
// inside the open sentinel band.
func PlausibleTemperature(v float64) bool {
	return v > TempSentinelLow && v < TempSentinelHigh
}
