package adv

import (
	"testing"

	"github.com/bletio/ble"
	"github.com/bletio/ble/assigned"
	"github.com/bletio/ble/codec"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagsEncoding(t *testing.T) {
	b, err := codec.Marshal(FlagBREDRNotSupported)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x01, 0x04}, b)

	b, err = codec.Marshal(Flags(0xE0))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x01, 0xE0}, b, "unknown bits are kept")
}

func TestTxPowerLevel(t *testing.T) {
	p, err := NewTxPowerLevel(-127)
	require.NoError(t, err)
	b, err := codec.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x0A, 0x81}, b)

	_, err = NewTxPowerLevel(-128)
	assert.True(t, errors.Is(err, ErrInvalidTxPower))
}

func TestEmptyIncompleteListRejected(t *testing.T) {
	_, err := NewServiceUUID16(false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyIncompleteList))
	assert.Contains(t, err.Error(), "empty list must be complete")

	s, err := NewServiceUUID16(true)
	require.NoError(t, err)
	b, err := codec.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x03}, b)
}

func TestManufacturerDataLimit(t *testing.T) {
	_, err := NewManufacturerSpecificData(assigned.CompanyAppleInc, make([]byte, 32))
	assert.True(t, errors.Is(err, ErrDataTooLong))

	_, err2 := NewManufacturerSpecificData(assigned.CompanyAppleInc, make([]byte, 28))
	assert.True(t, errors.Is(err2, ErrDataTooLong))
	_, err3 := NewManufacturerSpecificData(assigned.CompanyAppleInc, make([]byte, 28))
	assert.Equal(t, errors.Cause(err2), errors.Cause(err3), "same input, same error kind")

	m, err := NewManufacturerSpecificData(assigned.CompanyAppleInc, make([]byte, 27))
	require.NoError(t, err)
	assert.Equal(t, MaxEIRPacketLength, m.EncodedSize())
}

func TestUUIDListLimits(t *testing.T) {
	_, err := NewServiceUUID16(true, make([]ble.UUID16, 15)...)
	assert.True(t, errors.Is(err, ErrDataTooLong))
	_, err = NewServiceUUID16(true, make([]ble.UUID16, 14)...)
	assert.NoError(t, err)
	_, err = NewServiceUUID128(true, make([]ble.UUID128, 2)...)
	assert.True(t, errors.Is(err, ErrDataTooLong))
	_, err = NewServiceData128(ble.UUID128{}, make([]byte, 14))
	assert.True(t, errors.Is(err, ErrDataTooLong))
}

func TestLocalName(t *testing.T) {
	_, err := NewLocalName("", false)
	assert.True(t, errors.Is(err, ErrInvalidName))
	_, err = NewLocalName(string([]byte{0xFF}), true)
	assert.True(t, errors.Is(err, ErrInvalidName))
	n, err := NewLocalName("abc", false)
	require.NoError(t, err)
	assert.Equal(t, TypeShortenedLocalName, n.Type())
}

func TestTargetAddresses(t *testing.T) {
	pub := ble.MustParseAddress("00:11:22:33:44:55", false)
	rnd := ble.MustParseAddress("C0:11:22:33:44:55", true)

	_, err := NewRandomTargetAddress(pub)
	assert.True(t, errors.Is(err, ErrInvalidTargetAddress))
	_, err = NewPublicTargetAddress(rnd)
	assert.True(t, errors.Is(err, ErrInvalidTargetAddress))
	_, err = NewPublicTargetAddress(pub, pub, pub, pub, pub)
	assert.True(t, errors.Is(err, ErrDataTooLong))
	_, err = NewPublicTargetAddress()
	assert.True(t, errors.Is(err, ErrEmptyList))

	p, err := NewPublicTargetAddress(pub)
	require.NoError(t, err)
	b, err := codec.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x07, 0x17, 0x55, 0x44, 0x33, 0x22, 0x11, 0x00}, b)
}

func TestURI(t *testing.T) {
	u, err := NewURI("https://www.bluetooth.com")
	require.NoError(t, err)
	b, err := codec.Marshal(u)
	require.NoError(t, err)
	assert.Equal(t, append([]byte{0x15, 0x24, 0x17}, "//www.bluetooth.com"...), b)
	assert.Equal(t, "https://www.bluetooth.com", u.String())

	c, err := NewURI("x-app:go")
	require.NoError(t, err)
	assert.Equal(t, assigned.URISchemeEmpty, c.Scheme())
	b, err = codec.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, append([]byte{0x0A, 0x24, 0x01}, "x-app:go"...), b)

	for _, bad := range []string{"no-scheme", "1abc:x", ":x", "ht tp:x"} {
		_, err = NewURI(bad)
		assert.True(t, errors.Is(err, ErrInvalidURI), bad)
	}

	_, err = NewURI("https://" + string(make([]byte, 40)))
	assert.Error(t, err)
}

func TestLESupportedFeaturesTrimsZeroOctets(t *testing.T) {
	b, err := codec.Marshal(NewLESupportedFeatures(ble.LEFeatureEncryption | ble.LEFeature2MPHY))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x03, 0x27, 0x01, 0x01}, b)

	b, err = codec.Marshal(NewLESupportedFeatures(0))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x27, 0x00}, b)
}

func TestAutomaticRecordsRefuseEncoding(t *testing.T) {
	_, err := codec.Marshal(AutoAppearance())
	assert.True(t, errors.Is(err, ErrUnresolvedAutomatic))
}
