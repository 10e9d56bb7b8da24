package ble

import (
	"time"

	"github.com/bletio/ble/codec"
	"github.com/pkg/errors"
)

// Advertising interval limits, in 0.625 ms units.
const (
	AdvertisingIntervalMin uint16 = 0x0020
	AdvertisingIntervalMax uint16 = 0x4000
)

// Connection interval limits, in 1.25 ms units.
const (
	ConnectionIntervalMin uint16 = 0x0006
	ConnectionIntervalMax uint16 = 0x0C80
	// NoSpecificConnectionInterval leaves one end of a range open.
	NoSpecificConnectionInterval uint16 = 0xFFFF
)

// AdvertisingInterval is an advertising interval in 0.625 ms units.
type AdvertisingInterval uint16

// NewAdvertisingInterval validates v.
func NewAdvertisingInterval(v uint16) (AdvertisingInterval, error) {
	if v < AdvertisingIntervalMin || v > AdvertisingIntervalMax {
		return 0, errors.Wrapf(ErrInvalidInterval, "advertising interval 0x%04X not in [0x%04X, 0x%04X]",
			v, AdvertisingIntervalMin, AdvertisingIntervalMax)
	}
	return AdvertisingInterval(v), nil
}

// MustAdvertisingInterval is like NewAdvertisingInterval but panics on error.
// Use it for constant values so a typo fails at start up.
func MustAdvertisingInterval(v uint16) AdvertisingInterval {
	i, err := NewAdvertisingInterval(v)
	if err != nil {
		panic(err)
	}
	return i
}

// AdvertisingIntervalFromDuration rounds d down to 0.625 ms units and validates it.
func AdvertisingIntervalFromDuration(d time.Duration) (AdvertisingInterval, error) {
	u := d / (625 * time.Microsecond)
	if u > 0xFFFF {
		return 0, errors.Wrapf(ErrInvalidInterval, "advertising interval %s", d)
	}
	return NewAdvertisingInterval(uint16(u))
}

// Duration converts the interval to a time.Duration.
func (i AdvertisingInterval) Duration() time.Duration {
	return time.Duration(i) * 625 * time.Microsecond
}

// EncodedSize returns 2.
func (i AdvertisingInterval) EncodedSize() int { return 2 }

// Encode writes the interval little-endian.
func (i AdvertisingInterval) Encode(b *codec.Buffer) (int, error) {
	return b.EncodeLEU16(uint16(i))
}

// ConnectionInterval is a connection interval in 1.25 ms units.
type ConnectionInterval uint16

// NewConnectionInterval validates v.
func NewConnectionInterval(v uint16) (ConnectionInterval, error) {
	if v < ConnectionIntervalMin || v > ConnectionIntervalMax {
		return 0, errors.Wrapf(ErrInvalidInterval, "connection interval 0x%04X not in [0x%04X, 0x%04X]",
			v, ConnectionIntervalMin, ConnectionIntervalMax)
	}
	return ConnectionInterval(v), nil
}

// MustConnectionInterval is like NewConnectionInterval but panics on error.
func MustConnectionInterval(v uint16) ConnectionInterval {
	i, err := NewConnectionInterval(v)
	if err != nil {
		panic(err)
	}
	return i
}

// Duration converts the interval to a time.Duration.
func (i ConnectionInterval) Duration() time.Duration {
	return time.Duration(i) * 1250 * time.Microsecond
}

// ConnectionIntervalRange is a preferred connection interval range. Either
// end may be NoSpecificConnectionInterval.
type ConnectionIntervalRange struct {
	min uint16
	max uint16
}

func checkRangeEnd(v uint16) error {
	if v == NoSpecificConnectionInterval {
		return nil
	}
	_, err := NewConnectionInterval(v)
	return err
}

// NewConnectionIntervalRange validates both ends and min <= max when both are
// specified.
func NewConnectionIntervalRange(min, max uint16) (ConnectionIntervalRange, error) {
	if err := checkRangeEnd(min); err != nil {
		return ConnectionIntervalRange{}, errors.Wrap(err, "minimum")
	}
	if err := checkRangeEnd(max); err != nil {
		return ConnectionIntervalRange{}, errors.Wrap(err, "maximum")
	}
	if min != NoSpecificConnectionInterval && max != NoSpecificConnectionInterval && min > max {
		return ConnectionIntervalRange{}, errors.Wrapf(ErrInvalidInterval, "minimum 0x%04X above maximum 0x%04X", min, max)
	}
	return ConnectionIntervalRange{min: min, max: max}, nil
}

// MustConnectionIntervalRange is like NewConnectionIntervalRange but panics on error.
func MustConnectionIntervalRange(min, max uint16) ConnectionIntervalRange {
	r, err := NewConnectionIntervalRange(min, max)
	if err != nil {
		panic(err)
	}
	return r
}

// Min returns the lower end.
func (r ConnectionIntervalRange) Min() uint16 { return r.min }

// Max returns the upper end.
func (r ConnectionIntervalRange) Max() uint16 { return r.max }

// EncodedSize returns 4.
func (r ConnectionIntervalRange) EncodedSize() int { return 4 }

// Encode writes min then max, little-endian.
func (r ConnectionIntervalRange) Encode(b *codec.Buffer) (int, error) {
	if b.Remaining() < r.EncodedSize() {
		return 0, errors.Wrap(codec.ErrBufferFull, "connection interval range")
	}
	n, _ := b.EncodeLEU16(r.min)
	m, _ := b.EncodeLEU16(r.max)
	return n + m, nil
}
