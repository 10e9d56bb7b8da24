package ble

import (
	"fmt"

	"github.com/bletio/ble/codec"
	"github.com/bletio/ble/sliceops"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// BaseUUID is the Bluetooth base UUID 00000000-0000-1000-8000-00805F9B34FB.
var BaseUUID = uuid.MustParse("00000000-0000-1000-8000-00805F9B34FB")

// UUID16 is a 16 bit SIG assigned UUID.
type UUID16 uint16

// UUID32 is a 32 bit SIG assigned UUID.
type UUID32 uint32

// UUID128 is a 128 bit UUID held in wire order, least significant octet first.
type UUID128 [16]byte

func (u UUID16) String() string { return fmt.Sprintf("%04X", uint16(u)) }

// EncodedSize returns 2.
func (u UUID16) EncodedSize() int { return 2 }

// Encode writes u little-endian.
func (u UUID16) Encode(b *codec.Buffer) (int, error) { return b.EncodeLEU16(uint16(u)) }

// UUID128 expands u onto the base UUID.
func (u UUID16) UUID128() UUID128 { return UUID32(u).UUID128() }

func (u UUID32) String() string { return fmt.Sprintf("%08X", uint32(u)) }

// EncodedSize returns 4.
func (u UUID32) EncodedSize() int { return 4 }

// Encode writes u little-endian.
func (u UUID32) Encode(b *codec.Buffer) (int, error) { return b.EncodeLEU32(uint32(u)) }

// UUID128 expands u onto the base UUID.
func (u UUID32) UUID128() UUID128 {
	full := BaseUUID
	full[0], full[1], full[2], full[3] = byte(u>>24), byte(u>>16), byte(u>>8), byte(u)
	return UUID128FromUUID(full)
}

// UUID128FromUUID converts a UUID in RFC 4122 byte order.
func UUID128FromUUID(u uuid.UUID) UUID128 {
	return UUID128(sliceops.Swap16(u))
}

// ParseUUID128 parses the canonical textual form.
func ParseUUID128(s string) (UUID128, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return UUID128{}, errors.Wrapf(ErrInvalidParameter, "uuid %q: %v", s, err)
	}
	return UUID128FromUUID(u), nil
}

// MustParseUUID128 is like ParseUUID128 but panics on error.
func MustParseUUID128(s string) UUID128 {
	u, err := ParseUUID128(s)
	if err != nil {
		panic(err)
	}
	return u
}

// UUID returns u in RFC 4122 byte order.
func (u UUID128) UUID() uuid.UUID { return uuid.UUID(sliceops.Swap16(u)) }

func (u UUID128) String() string { return u.UUID().String() }

// EncodedSize returns 16.
func (u UUID128) EncodedSize() int { return 16 }

// Encode writes the 16 octets in wire order.
func (u UUID128) Encode(b *codec.Buffer) (int, error) { return b.CopyFromSlice(u[:]) }

// MarshalText renders the canonical form.
func (u UUID128) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

// UnmarshalText parses the canonical form.
func (u *UUID128) UnmarshalText(text []byte) error {
	v, err := ParseUUID128(string(text))
	if err != nil {
		return err
	}
	*u = v
	return nil
}
