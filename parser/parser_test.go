package parser

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bletio/ble"
	"github.com/bletio/ble/linux/adv"
)

type testPdu struct {
	b []byte
}

func (t *testPdu) addBad(recTyp byte, badRecLen byte, recBytes []byte) {
	t.b = append(t.b, badRecLen, recTyp)
	t.b = append(t.b, recBytes...)
}

func (t *testPdu) add(recTyp byte, recBytes ...byte) {
	lb := byte(len(recBytes) + 1)
	t.b = append(t.b, lb, recTyp)
	t.b = append(t.b, recBytes...)
}

func (t *testPdu) bytes() []byte {
	return t.b
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse(nil)
	assert.Equal(t, EmptyOrNilPdu, err)
	_, err = Parse([]byte{})
	assert.Equal(t, EmptyOrNilPdu, err)
}

func TestParseScalars(t *testing.T) {
	p := testPdu{}
	p.add(0x01, 0x06)
	p.add(0x09, 'b', 'l', 'e')
	p.add(0x0A, 0xFC)
	p.add(0x19, 0xC0, 0x00)
	p.add(0x1A, 0xA0, 0x00)
	p.add(0x12, 0x06, 0x00, 0x80, 0x0C)
	p.add(0x27, 0x01, 0x01)

	m, err := Parse(p.bytes())
	require.NoError(t, err)
	assert.Equal(t, uint8(0x06), m[ble.AdvertisementMapKeys.Flags])
	assert.Equal(t, "ble", m[ble.AdvertisementMapKeys.Name])
	assert.NotContains(t, m, ble.AdvertisementMapKeys.ShortName)
	assert.Equal(t, int8(-4), m[ble.AdvertisementMapKeys.TxPower])
	assert.Equal(t, uint16(0x00C0), m[ble.AdvertisementMapKeys.Appearance])
	assert.Equal(t, uint16(0x00A0), m[ble.AdvertisementMapKeys.AdvInterval])
	assert.Equal(t, [2]uint16{0x0006, 0x0C80}, m[ble.AdvertisementMapKeys.ConnIntervalRange])
	assert.Equal(t, uint64(0x0101), m[ble.AdvertisementMapKeys.LEFeatures])
}

func TestParseShortName(t *testing.T) {
	p := testPdu{}
	p.add(0x08, 'b', 'l')

	m, err := Parse(p.bytes())
	require.NoError(t, err)
	assert.Equal(t, "bl", m[ble.AdvertisementMapKeys.ShortName])
	assert.NotContains(t, m, ble.AdvertisementMapKeys.Name)
}

func TestParserArrays(t *testing.T) {
	p := testPdu{}
	p.add(0x02, 0x0D, 0x18, 0x0F, 0x18)
	p.add(0x05, 0x78, 0x56, 0x34, 0x12)
	p.add(0x14, 0x00, 0x18)

	m, err := Parse(p.bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"180D", "180F", "12345678"}, m[ble.AdvertisementMapKeys.Services])
	assert.Equal(t, []string{"1800"}, m[ble.AdvertisementMapKeys.Solicited])
}

func TestParserArraysBad(t *testing.T) {
	for _, typ := range []byte{0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x14, 0x1F, 0x15} {
		p := testPdu{}
		// one byte short of any element width
		p.add(typ, 0x01)
		_, err := Parse(p.bytes())
		assert.Error(t, err, "type 0x%02X", typ)
	}
}

func TestServiceData(t *testing.T) {
	p := testPdu{}
	p.add(0x16, 0x0F, 0x18, 0x64)
	p.add(0x16, 0x0F, 0x18)

	m, err := Parse(p.bytes())
	require.NoError(t, err)
	assert.Equal(t, []ble.ServiceData{
		{UUID: "180F", Data: []byte{0x64}},
		{UUID: "180F"},
	}, m[ble.AdvertisementMapKeys.ServiceData])
}

func TestManufacturerData(t *testing.T) {
	p := testPdu{}
	p.add(0xFF, 0x59, 0x00, 0x01, 0x02)

	m, err := Parse(p.bytes())
	require.NoError(t, err)
	assert.Equal(t, []byte{0x59, 0x00, 0x01, 0x02}, m[ble.AdvertisementMapKeys.MFG])
}

func TestPublicTargets(t *testing.T) {
	p := testPdu{}
	p.add(0x17, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11)

	m, err := Parse(p.bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"11:22:33:44:55:66"}, m[ble.AdvertisementMapKeys.PublicTargets])
}

func TestParseCorruptLength(t *testing.T) {
	b := []byte{0x0D, 0x18}

	p := testPdu{}
	p.addBad(0x03, byte(len(b)+32), b)
	_, err := Parse(p.bytes())
	assert.True(t, errors.Is(err, adv.ErrMalformed))

	p = testPdu{}
	p.addBad(0x03, 255, b)
	_, err = Parse(p.bytes())
	assert.True(t, errors.Is(err, adv.ErrMalformed))

	p = testPdu{}
	p.addBad(0x03, 0, b)
	_, err = Parse(p.bytes())
	assert.True(t, errors.Is(err, adv.ErrMalformed))
}

func TestParseUnknownType(t *testing.T) {
	p := testPdu{}
	p.add(0x01, 0x06)
	p.add(0x3F, 0x00)

	m, err := Parse(p.bytes())
	assert.True(t, errors.Is(err, adv.ErrUnknownType))
	assert.Nil(t, m)
}

func TestParseBuilderOutput(t *testing.T) {
	d, err := adv.NewBuilder().
		WithFlags(adv.FlagLEGeneralDiscoverable|adv.FlagBREDRNotSupported).
		WithLocalName("sensor", true).
		WithServiceUUID16(true, 0x180F).
		Build()
	require.NoError(t, err)
	b, err := d.Bytes()
	require.NoError(t, err)

	m, err := Parse(b)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x06), m[ble.AdvertisementMapKeys.Flags])
	assert.Equal(t, "sensor", m[ble.AdvertisementMapKeys.Name])
	assert.Equal(t, []string{"180F"}, m[ble.AdvertisementMapKeys.Services])
}

func TestMerge(t *testing.T) {
	ad := testPdu{}
	ad.add(0x01, 0x06)
	ad.add(0x03, 0x0F, 0x18)
	ad.add(0xFF, 0x59, 0x00, 0x01)

	sr := testPdu{}
	sr.add(0x09, 'x')
	sr.add(0x03, 0x0D, 0x18)
	sr.add(0xFF, 0x59, 0x00, 0x02)

	m1, err := Parse(ad.bytes())
	require.NoError(t, err)
	m2, err := Parse(sr.bytes())
	require.NoError(t, err)

	m := Merge(m1, m2)
	assert.Equal(t, uint8(0x06), m[ble.AdvertisementMapKeys.Flags])
	assert.Equal(t, "x", m[ble.AdvertisementMapKeys.Name])
	assert.Equal(t, []string{"180F", "180D"}, m[ble.AdvertisementMapKeys.Services])
	assert.Equal(t, []byte{0x59, 0x00, 0x01, 0x02}, m[ble.AdvertisementMapKeys.MFG])

	assert.Equal(t, m2, Merge(nil, m2))
}
