package evt

import (
	"testing"

	"github.com/bletio/ble"
	"github.com/bletio/ble/codec"
	"github.com/bletio/ble/linux/hci/cmd"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	events := []Event{
		&CommandComplete{NumHCICommandPackets: 1, CommandOpcode: uint16(cmd.ResetOpCode), ReturnParameters: &cmd.StatusRP{}},
		&CommandComplete{NumHCICommandPackets: 1, CommandOpcode: uint16(cmd.LERandOpCode), ReturnParameters: &cmd.LERandRP{RandomNumber: 0xDEADBEEF}},
		&CommandComplete{
			NumHCICommandPackets: 5,
			CommandOpcode:        uint16(cmd.ReadLocalSupportedFeaturesOpCode),
			ReturnParameters:     &cmd.ReadLocalSupportedFeaturesRP{LMPFeatures: ble.FeatureLESupportedController},
		},
		&CommandStatus{Status: 0x0C, NumHCICommandPackets: 1, CommandOpcode: 0x2006},
		&DisconnectionComplete{ConnectionHandle: 0x0040, Reason: 0x13},
		&HardwareError{HardwareCode: 0x01},
		&DataBufferOverflow{LinkType: 0x01},
		&Unsupported{EventCode: 0x3E, Params: []byte{0x02, 0x01}},
	}
	for _, e := range events {
		b, err := Marshal(e)
		require.NoError(t, err, e.String())
		assert.Equal(t, HeaderLength+e.EncodedSize(), len(b))
		assert.Equal(t, e.Code(), b[1])
		assert.Equal(t, uint8(e.EncodedSize()), b[2])

		back, err := Parse(b)
		require.NoError(t, err, e.String())
		assert.Equal(t, e, back)
	}
}

func TestParseCommandComplete(t *testing.T) {
	b := []byte{0x04, 0x0E, 0x04, 0x01, 0x03, 0x0C, 0x00}
	e, err := Parse(b)
	require.NoError(t, err)
	cc, ok := e.(*CommandComplete)
	require.True(t, ok)
	assert.Equal(t, uint8(1), cc.NumHCICommandPackets)
	assert.Equal(t, uint16(cmd.ResetOpCode), cc.CommandOpcode)
	assert.Equal(t, uint8(0), cc.ReturnParameters.Status())
}

func TestParseCommandCompleteFailedStatusOnly(t *testing.T) {
	b := []byte{0x04, 0x0E, 0x04, 0x01, 0x18, 0x20, 0x01}
	e, err := Parse(b)
	require.NoError(t, err)
	cc := e.(*CommandComplete)
	assert.Equal(t, &cmd.StatusRP{StatusCode: 0x01}, cc.ReturnParameters)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]struct {
		in  []byte
		err error
	}{
		"empty":           {nil, codec.ErrShortInput},
		"command packet":  {[]byte{0x01, 0x03, 0x0C, 0x00}, ErrNotEvent},
		"no length":       {[]byte{0x04, 0x0E}, codec.ErrShortInput},
		"length too long": {[]byte{0x04, 0x10, 0x02, 0x01}, ErrLengthMismatch},
		"length short":    {[]byte{0x04, 0x10, 0x01, 0x01, 0x02}, ErrLengthMismatch},
		"hardware extra":  {[]byte{0x04, 0x10, 0x02, 0x01, 0x02}, codec.ErrTrailingBytes},
		"status short":    {[]byte{0x04, 0x0F, 0x03, 0x00, 0x01, 0x06}, codec.ErrShortInput},
		"complete rp":     {[]byte{0x04, 0x0E, 0x05, 0x01, 0x18, 0x20, 0x00, 0x01}, codec.ErrShortInput},
	}
	for name, c := range cases {
		_, err := Parse(c.in)
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, c.err), "%s: %v", name, err)
	}
}

func TestParseUnknownCodeKeepsParams(t *testing.T) {
	e, err := Parse([]byte{0x04, 0xFF, 0x02, 0xAA, 0xBB})
	require.NoError(t, err)
	assert.Equal(t, &Unsupported{EventCode: 0xFF, Params: []byte{0xAA, 0xBB}}, e)
}

func TestEncodeLeavesBufferOnFailure(t *testing.T) {
	b := codec.New(5)
	_, err := b.TryPush(0x77)
	require.NoError(t, err)
	_, err = Encode(&CommandStatus{CommandOpcode: 0x0C03}, b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, codec.ErrBufferFull))
	assert.Equal(t, []byte{0x77}, b.Bytes())
}
