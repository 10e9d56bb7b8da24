package ble

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/bletio/ble/codec"
	"github.com/bletio/ble/sliceops"
	"github.com/pkg/errors"
)

// AddressKind tells how a device address was assigned.
type AddressKind uint8

// Address kinds.
const (
	AddressPublic AddressKind = iota
	AddressRandomStatic
	AddressRandomResolvablePrivate
	AddressRandomNonResolvablePrivate
)

// HCI address type octets.
const (
	AddressTypePublic uint8 = 0x00
	AddressTypeRandom uint8 = 0x01
)

var addressKindNames = map[AddressKind]string{
	AddressPublic:                     "public",
	AddressRandomStatic:               "random-static",
	AddressRandomResolvablePrivate:    "random-resolvable",
	AddressRandomNonResolvablePrivate: "random-non-resolvable",
}

func (k AddressKind) String() string {
	if n, ok := addressKindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("AddressKind(%d)", uint8(k))
}

// IsRandom reports whether k is one of the random kinds.
func (k AddressKind) IsRandom() bool { return k != AddressPublic }

// Address is a 48 bit device address together with its kind.
// The value is held in wire order: v[0] is the least significant octet.
type Address struct {
	kind AddressKind
	v    [6]byte
}

// ErrReservedRandomAddress is returned for random addresses whose two most
// significant bits are 10.
var ErrReservedRandomAddress = errors.New("reserved random address sub-type")

// PublicAddress wraps a public device address given in wire order.
func PublicAddress(v [6]byte) Address {
	return Address{kind: AddressPublic, v: v}
}

// ClassifyRandomAddress derives the random address sub-type from the two most
// significant bits of v[5].
func ClassifyRandomAddress(v [6]byte) (AddressKind, error) {
	switch v[5] >> 6 {
	case 0x3:
		return AddressRandomStatic, nil
	case 0x1:
		return AddressRandomResolvablePrivate, nil
	case 0x0:
		return AddressRandomNonResolvablePrivate, nil
	}
	return 0, ErrReservedRandomAddress
}

// randomPartUniform reports whether the bits below the two sub-type bits are
// all zero or all one.
func randomPartUniform(v [6]byte) bool {
	zero, one := true, true
	for i := 0; i < 5; i++ {
		zero = zero && v[i] == 0x00
		one = one && v[i] == 0xFF
	}
	top := v[5] & 0x3F
	return (zero && top == 0) || (one && top == 0x3F)
}

// IsValidRandomStaticAddress reports whether v is usable as a static random
// address.
func IsValidRandomStaticAddress(v [6]byte) bool {
	return v[5]>>6 == 0x3 && !randomPartUniform(v)
}

// NewRandomAddress validates v and classifies it.
func NewRandomAddress(v [6]byte) (Address, error) {
	k, err := ClassifyRandomAddress(v)
	if err != nil {
		return Address{}, errors.Wrap(ErrInvalidAddress, err.Error())
	}
	if k != AddressRandomResolvablePrivate && randomPartUniform(v) {
		return Address{}, errors.Wrapf(ErrInvalidAddress, "%s address random part is all zeros or all ones", k)
	}
	return Address{kind: k, v: v}, nil
}

// NewRandomStaticAddress validates v as a static random address.
func NewRandomStaticAddress(v [6]byte) (Address, error) {
	a, err := NewRandomAddress(v)
	if err != nil {
		return Address{}, err
	}
	if a.kind != AddressRandomStatic {
		return Address{}, errors.Wrapf(ErrInvalidAddress, "%s is %s, not random-static", a, a.kind)
	}
	return a, nil
}

// NewAddress builds an address from the HCI address type octet and wire
// order bytes.
func NewAddress(typ uint8, v [6]byte) (Address, error) {
	switch typ {
	case AddressTypePublic:
		return PublicAddress(v), nil
	case AddressTypeRandom:
		return NewRandomAddress(v)
	}
	return Address{}, errors.Wrapf(ErrInvalidAddress, "unknown address type 0x%02X", typ)
}

// ParseAddress parses the "AA:BB:CC:DD:EE:FF" form, most significant octet
// first. Dashes are accepted as separators too.
func ParseAddress(s string, random bool) (Address, error) {
	h := strings.NewReplacer(":", "", "-", "").Replace(s)
	if len(h) != 12 {
		return Address{}, errors.Wrapf(ErrInvalidAddress, "malformed address %q", s)
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return Address{}, errors.Wrapf(ErrInvalidAddress, "malformed address %q", s)
	}
	var v [6]byte
	copy(v[:], sliceops.SwapBuf(b))
	if !random {
		return PublicAddress(v), nil
	}
	return NewRandomAddress(v)
}

// MustParseAddress is like ParseAddress but panics on error.
func MustParseAddress(s string, random bool) Address {
	a, err := ParseAddress(s, random)
	if err != nil {
		panic(err)
	}
	return a
}

// Kind returns the address kind.
func (a Address) Kind() AddressKind { return a.kind }

// IsRandom reports whether a is a random address.
func (a Address) IsRandom() bool { return a.kind.IsRandom() }

// Type returns the HCI address type octet.
func (a Address) Type() uint8 {
	if a.IsRandom() {
		return AddressTypeRandom
	}
	return AddressTypePublic
}

// Value returns the address octets in wire order.
func (a Address) Value() [6]byte { return a.v }

// IsZero reports whether every octet is zero.
func (a Address) IsZero() bool { return a.v == [6]byte{} }

// Bytes returns a copy of the octets, most significant first.
func (a Address) Bytes() []byte { return sliceops.SwapBuf(a.v[:]) }

func (a Address) String() string {
	m := sliceops.Swap6(a.v)
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", m[0], m[1], m[2], m[3], m[4], m[5])
}

// EncodedSize returns the wire size of the address octets.
func (a Address) EncodedSize() int { return 6 }

// Encode writes the six octets in wire order.
func (a Address) Encode(b *codec.Buffer) (int, error) {
	return b.CopyFromSlice(a.v[:])
}

// MarshalText renders the address as "AA:BB:CC:DD:EE:FF/kind".
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String() + "/" + a.kind.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (a *Address) UnmarshalText(text []byte) error {
	s := string(text)
	kind := AddressPublic.String()
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s, kind = s[:i], s[i+1:]
	}
	na, err := ParseAddress(s, kind != AddressPublic.String())
	if err != nil {
		return err
	}
	if na.kind.String() != kind {
		return errors.Wrapf(ErrInvalidAddress, "%s is not %s", s, kind)
	}
	*a = na
	return nil
}
