package cmd

import (
	"testing"

	"github.com/bletio/ble"
	"github.com/bletio/ble/codec"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReturnParametersRoundTrip(t *testing.T) {
	var cmds ble.SupportedCommands
	cmds = cmds.With(ble.SupportedReset, ble.SupportedLERand)

	cases := map[int]CommandRP{
		ResetOpCode:                      &StatusRP{},
		ReadLocalSupportedCommandsOpCode: &ReadLocalSupportedCommandsRP{SupportedCommands: cmds},
		ReadLocalSupportedFeaturesOpCode: &ReadLocalSupportedFeaturesRP{LMPFeatures: ble.FeatureLESupportedController},
		ReadBufferSizeOpCode: &ReadBufferSizeRP{
			HCACLDataPacketLength:    1021,
			HCTotalNumACLDataPackets: 8,
		},
		ReadBDADDROpCode:                              &ReadBDADDRRP{BDADDR: [6]byte{1, 2, 3, 4, 5, 6}},
		LEReadBufferSizeOpCode:                        &LEReadBufferSizeRP{HCLEACLDataPacketLength: 251, HCTotalNumLEACLDataPackets: 4},
		LEReadLocalSupportedFeaturesOpCode:            &LEReadLocalSupportedFeaturesRP{LEFeatures: ble.LEFeatureLLPrivacy},
		LEReadAdvertisingPhysicalChannelTxPowerOpCode: &LEReadAdvertisingPhysicalChannelTxPowerRP{TransmitPowerLevel: -8},
		LERandOpCode:                                  &LERandRP{RandomNumber: 0x0102030405060708},
		LEReadSupportedStatesOpCode:                   &LEReadSupportedStatesRP{LEStates: 0x3FFFFFFFFFF},
		LEReadFilterAcceptListSizeOpCode:              &LEReadFilterAcceptListSizeRP{FilterAcceptListSize: 12},
	}
	for op, rp := range cases {
		b, err := codec.Marshal(rp)
		require.NoError(t, err)
		back, err := ParseReturnParameters(op, b)
		require.NoError(t, err, "opcode 0x%04X", op)
		assert.Equal(t, rp, back)

		_, err = ParseReturnParameters(op, append(b, 0x00))
		assert.True(t, errors.Is(err, codec.ErrTrailingBytes), "opcode 0x%04X", op)
	}
}

func TestShapeMismatchIsAnError(t *testing.T) {
	_, err := ParseReturnParameters(LEReadBufferSizeOpCode, []byte{0x00, 0xFB})
	assert.True(t, errors.Is(err, codec.ErrShortInput))
}

func TestFailedStatusOnly(t *testing.T) {
	rp, err := ParseReturnParameters(ReadLocalSupportedCommandsOpCode, []byte{0x01})
	require.NoError(t, err)
	assert.Equal(t, &StatusRP{StatusCode: 0x01}, rp)
	assert.Equal(t, uint8(0x01), rp.Status())
}

func TestUnknownOpcodeIsUnsupported(t *testing.T) {
	rp, err := ParseReturnParameters(0xFC01, []byte{0x00, 0xAA, 0xBB})
	require.NoError(t, err)
	u, ok := rp.(*UnsupportedRP)
	require.True(t, ok)
	assert.Equal(t, []byte{0x00, 0xAA, 0xBB}, u.Raw)

	rp, err = ParseReturnParameters(0x0000, nil)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), rp.Status())
}
