package ble

import (
	"testing"

	"github.com/bletio/ble/codec"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyRandomAddress(t *testing.T) {
	cases := []struct {
		top  byte
		kind AddressKind
		err  bool
	}{
		{0xC1, AddressRandomStatic, false},
		{0x41, AddressRandomResolvablePrivate, false},
		{0x01, AddressRandomNonResolvablePrivate, false},
		{0x81, 0, true},
	}
	for _, c := range cases {
		k, err := ClassifyRandomAddress([6]byte{1, 2, 3, 4, 5, c.top})
		if c.err {
			assert.Equal(t, ErrReservedRandomAddress, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, c.kind, k)
	}
}

func TestRandomStaticRejectsUniformRandomPart(t *testing.T) {
	_, err := NewRandomStaticAddress([6]byte{0, 0, 0, 0, 0, 0xC0})
	assert.True(t, errors.Is(err, ErrInvalidAddress))
	_, err = NewRandomStaticAddress([6]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
	assert.True(t, errors.Is(err, ErrInvalidAddress))
	assert.False(t, IsValidRandomStaticAddress([6]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}))

	a, err := NewRandomStaticAddress([6]byte{0x01, 0, 0, 0, 0, 0xC0})
	require.NoError(t, err)
	assert.Equal(t, AddressRandomStatic, a.Kind())
	assert.Equal(t, AddressTypeRandom, a.Type())

	_, err = NewRandomStaticAddress([6]byte{0x01, 0, 0, 0, 0, 0x40})
	assert.True(t, errors.Is(err, ErrInvalidAddress))
}

func TestAddressStringIsMostSignificantFirst(t *testing.T) {
	a := PublicAddress([6]byte{0xCD, 0x2E, 0x0B, 0x04, 0x32, 0x56})
	assert.Equal(t, "56:32:04:0B:2E:CD", a.String())
	assert.Equal(t, []byte{0x56, 0x32, 0x04, 0x0B, 0x2E, 0xCD}, a.Bytes())

	p, err := ParseAddress("56:32:04:0b:2e:cd", false)
	require.NoError(t, err)
	assert.Equal(t, a, p)

	_, err = ParseAddress("56:32:04", false)
	assert.True(t, errors.Is(err, ErrInvalidAddress))
	_, err = ParseAddress("96:32:04:0B:2E:CD", true)
	assert.True(t, errors.Is(err, ErrInvalidAddress))
}

func TestAddressEncodeWireOrder(t *testing.T) {
	a := MustParseAddress("C0:11:22:33:44:55", true)
	b, err := codec.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x55, 0x44, 0x33, 0x22, 0x11, 0xC0}, b)
}

func TestAddressText(t *testing.T) {
	a := MustParseAddress("C0:11:22:33:44:55", true)
	txt, err := a.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "C0:11:22:33:44:55/random-static", string(txt))

	var b Address
	require.NoError(t, b.UnmarshalText(txt))
	assert.Equal(t, a, b)

	assert.Error(t, b.UnmarshalText([]byte("C0:11:22:33:44:55/random-resolvable")))
}

func TestNewAddress(t *testing.T) {
	a, err := NewAddress(AddressTypePublic, [6]byte{1, 2, 3, 4, 5, 0x80})
	require.NoError(t, err)
	assert.Equal(t, AddressPublic, a.Kind())

	_, err = NewAddress(AddressTypeRandom, [6]byte{1, 2, 3, 4, 5, 0x80})
	assert.True(t, errors.Is(err, ErrInvalidAddress))

	_, err = NewAddress(0x02, [6]byte{})
	assert.True(t, errors.Is(err, ErrInvalidAddress))
}
