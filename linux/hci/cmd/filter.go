package cmd

import (
	"fmt"

	"github.com/bletio/ble"
	"github.com/bletio/ble/codec"
	"github.com/pkg/errors"
)

// Filter accept list address types [Vol 4, Part E, 7.8.16].
const (
	FilterAcceptListPublic    uint8 = 0x00
	FilterAcceptListRandom    uint8 = 0x01
	FilterAcceptListAnonymous uint8 = 0xFF
)

// ErrInvalidAddressType is returned for an unknown address type discriminant.
var ErrInvalidAddressType = errors.New("invalid address type")

// FilterAcceptListAddress is an entry of the filter accept list: a public or
// random device, or the anonymous advertisers entry.
type FilterAcceptListAddress struct {
	anonymous bool
	addr      ble.Address
}

// FilterAcceptListDevice returns the entry for a device address.
func FilterAcceptListDevice(a ble.Address) FilterAcceptListAddress {
	return FilterAcceptListAddress{addr: a}
}

// FilterAcceptListAnonymousAdvertisers returns the entry matching advertising
// without an address.
func FilterAcceptListAnonymousAdvertisers() FilterAcceptListAddress {
	return FilterAcceptListAddress{anonymous: true}
}

// IsAnonymous reports whether this is the anonymous advertisers entry.
func (f FilterAcceptListAddress) IsAnonymous() bool { return f.anonymous }

// Address returns the device address; ok is false for the anonymous entry.
func (f FilterAcceptListAddress) Address() (a ble.Address, ok bool) {
	return f.addr, !f.anonymous
}

// AddressType returns the address type octet.
func (f FilterAcceptListAddress) AddressType() uint8 {
	if f.anonymous {
		return FilterAcceptListAnonymous
	}
	return f.addr.Type()
}

func (f FilterAcceptListAddress) String() string {
	if f.anonymous {
		return "anonymous"
	}
	return fmt.Sprintf("%s (%s)", f.addr, f.addr.Kind())
}

// EncodedSize returns 7.
func (f FilterAcceptListAddress) EncodedSize() int { return 7 }

// Encode writes [type][address]. The anonymous entry carries a zero address.
func (f FilterAcceptListAddress) Encode(b *codec.Buffer) (int, error) {
	if err := reserve(b, f); err != nil {
		return 0, err
	}
	b.TryPush(f.AddressType())
	v := f.addr.Value()
	if f.anonymous {
		v = [6]byte{}
	}
	b.CopyFromSlice(v[:])
	return 7, nil
}

// ParseFilterAcceptListAddress decodes exactly seven bytes.
func ParseFilterAcceptListAddress(p []byte) (FilterAcceptListAddress, error) {
	r := codec.NewReader(p)
	t, err := r.Byte()
	if err != nil {
		return FilterAcceptListAddress{}, err
	}
	v, err := r.Array6()
	if err != nil {
		return FilterAcceptListAddress{}, err
	}
	if err := r.Finish(); err != nil {
		return FilterAcceptListAddress{}, err
	}

	switch t {
	case FilterAcceptListPublic:
		return FilterAcceptListDevice(ble.PublicAddress(v)), nil
	case FilterAcceptListRandom:
		a, err := ble.NewRandomAddress(v)
		if err != nil {
			return FilterAcceptListAddress{}, err
		}
		return FilterAcceptListDevice(a), nil
	case FilterAcceptListAnonymous:
		return FilterAcceptListAnonymousAdvertisers(), nil
	}
	return FilterAcceptListAddress{}, errors.Wrapf(ErrInvalidAddressType, "0x%02X", t)
}
