package adv

import (
	"github.com/bletio/ble"
	"github.com/bletio/ble/codec"
	"github.com/pkg/errors"
)

// MaxTargetAddresses is the number of addresses that fit one structure.
const MaxTargetAddresses = MaxPayloadLength / 6

func checkTargets(t Type, addrs []ble.Address, random bool) error {
	if len(addrs) == 0 {
		return errors.Wrap(ErrEmptyList, t.String())
	}
	if len(addrs) > MaxTargetAddresses {
		return errors.Wrapf(ErrDataTooLong, "%s holds at most %d addresses", t, MaxTargetAddresses)
	}
	for _, a := range addrs {
		if a.IsRandom() != random {
			return errors.Wrapf(ErrInvalidTargetAddress, "%s in %s", a.Kind(), t)
		}
	}
	return nil
}

// PublicTargetAddress lists the public addresses the advertising is meant for.
type PublicTargetAddress struct {
	addrs []ble.Address
}

// NewPublicTargetAddress accepts 1 to 4 public addresses.
func NewPublicTargetAddress(addrs ...ble.Address) (PublicTargetAddress, error) {
	if err := checkTargets(TypePublicTargetAddress, addrs, false); err != nil {
		return PublicTargetAddress{}, err
	}
	return PublicTargetAddress{addrs: append([]ble.Address(nil), addrs...)}, nil
}

// Addresses returns a copy of the list.
func (p PublicTargetAddress) Addresses() []ble.Address { return append([]ble.Address(nil), p.addrs...) }

// Type returns TypePublicTargetAddress.
func (p PublicTargetAddress) Type() Type { return TypePublicTargetAddress }

// Unique returns true.
func (p PublicTargetAddress) Unique() bool { return true }

// EncodedSize returns the size of the structure.
func (p PublicTargetAddress) EncodedSize() int { return encodedSize(p) }

// Encode writes the structure.
func (p PublicTargetAddress) Encode(b *codec.Buffer) (int, error) { return encode(b, p) }

func (p PublicTargetAddress) payloadSize() int { return 6 * len(p.addrs) }

func (p PublicTargetAddress) writePayload(b *codec.Buffer) {
	for _, a := range p.addrs {
		a.Encode(b)
	}
}

// RandomTargetAddress lists the random addresses the advertising is meant for.
type RandomTargetAddress struct {
	addrs []ble.Address
}

// NewRandomTargetAddress accepts 1 to 4 random addresses.
func NewRandomTargetAddress(addrs ...ble.Address) (RandomTargetAddress, error) {
	if err := checkTargets(TypeRandomTargetAddress, addrs, true); err != nil {
		return RandomTargetAddress{}, err
	}
	return RandomTargetAddress{addrs: append([]ble.Address(nil), addrs...)}, nil
}

// Addresses returns a copy of the list.
func (r RandomTargetAddress) Addresses() []ble.Address { return append([]ble.Address(nil), r.addrs...) }

// Type returns TypeRandomTargetAddress.
func (r RandomTargetAddress) Type() Type { return TypeRandomTargetAddress }

// Unique returns true.
func (r RandomTargetAddress) Unique() bool { return true }

// EncodedSize returns the size of the structure.
func (r RandomTargetAddress) EncodedSize() int { return encodedSize(r) }

// Encode writes the structure.
func (r RandomTargetAddress) Encode(b *codec.Buffer) (int, error) { return encode(b, r) }

func (r RandomTargetAddress) payloadSize() int { return 6 * len(r.addrs) }

func (r RandomTargetAddress) writePayload(b *codec.Buffer) {
	for _, a := range r.addrs {
		a.Encode(b)
	}
}
