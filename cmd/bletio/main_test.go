package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bletio/ble"
	"github.com/bletio/ble/host"
	"github.com/bletio/ble/linux/adv"
	"github.com/bletio/ble/linux/hci/cmd"
	"github.com/bletio/ble/linux/hci/hcitest"
)

func run(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run(append([]string{"bletio"}, args...))
	return out.String(), err
}

func TestParseHex(t *testing.T) {
	for _, s := range []string{"020106", "02 01 06", "02:01:06", "0x020106"} {
		b, err := parseHex(s)
		require.NoError(t, err, s)
		assert.Equal(t, []byte{0x02, 0x01, 0x06}, b)
	}
	_, err := parseHex("0g")
	assert.True(t, errors.Is(err, ble.ErrInvalidParameter))
}

func TestAdEncode(t *testing.T) {
	out, err := run(t, "ad", "encode", "--name", "ble")
	require.NoError(t, err)
	assert.Equal(t, "0201060409626C65\n", out)

	out, err = run(t, "ad", "encode", "--flags", "0", "--uuid16", "180F", "--scan")
	require.NoError(t, err)
	assert.Equal(t, "03030F18\n", out)
}

func TestAdEncodeRejectsBadInput(t *testing.T) {
	_, err := run(t, "ad", "encode", "--uuid16", "xyz")
	assert.True(t, errors.Is(err, ble.ErrInvalidParameter))

	_, err = run(t, "ad", "encode", "--name", strings.Repeat("n", 40))
	assert.True(t, errors.Is(err, adv.ErrDataTooLong))
}

func TestDecodeAD(t *testing.T) {
	m, err := decodeAD("0201060409626C65", "03030F18")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x06), m[ble.AdvertisementMapKeys.Flags])
	assert.Equal(t, "ble", m[ble.AdvertisementMapKeys.Name])
	assert.Equal(t, []string{"180F"}, m[ble.AdvertisementMapKeys.Services])

	_, err = decodeAD("0201")
	assert.True(t, errors.Is(err, adv.ErrMalformed))
}

func TestAdDecodeCommand(t *testing.T) {
	out, err := run(t, "ad", "decode", "0409626C65")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "ble"`)

	_, err = run(t, "ad", "decode")
	assert.Error(t, err)
}

func TestDecodeEvent(t *testing.T) {
	e, err := decodeEvent("04 0E 04 01 03 0C 00")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x0E), e.Code)
	assert.Contains(t, e.Summary, "0x0C03")

	out, err := run(t, "evt", "decode", "040F0400010520")
	require.NoError(t, err)
	assert.Contains(t, out, `"code": 15`)
}

func TestReplayEvents(t *testing.T) {
	capture := strings.Join([]string{
		"# reset",
		"040E0401030C00",
		"",
		"04100101",
		"0405",
	}, "\n")

	var out bytes.Buffer
	err := replayEvents(strings.NewReader(capture), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "   2: Command Complete")
	assert.Contains(t, lines[1], "   4: ")
	assert.Contains(t, lines[2], "   5: error:")
}

func TestDescribe(t *testing.T) {
	addr := ble.MustParseAddress("11:22:33:44:55:66", false)
	ctl := hcitest.LEController(addr)

	s, err := openHost(context.Background(), ctl)
	require.NoError(t, err)

	ci := describe(context.Background(), s)
	assert.True(t, ci.LESupported)
	assert.True(t, ci.BREDRNotSupported)
	assert.Equal(t, 8, ci.FilterAcceptList)
	assert.Equal(t, addr, ci.Information.PublicAddress())
	assert.Contains(t, ci.LEFeatures, "2m-phy")
}

func TestRunAdvertising(t *testing.T) {
	ctl := hcitest.LEController(ble.MustParseAddress("11:22:33:44:55:66", false))
	s, err := openHost(context.Background(), ctl)
	require.NoError(t, err)

	ad, err := adv.NewBuilder().WithLocalName("ble", true).Build()
	require.NoError(t, err)

	ctl.Reset()
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	err = runAdvertising(ctx, s, true, host.DefaultAdvertisingParameters(), &ad)
	assert.Equal(t, context.DeadlineExceeded, err)
	assert.Nil(t, chkErr(err))

	ops := ctl.OpCodes()
	require.NotEmpty(t, ops)
	assert.Equal(t, cmd.LERandOpCode, ops[0])
	assert.Equal(t, cmd.LESetAdvertisingEnableOpCode, ops[len(ops)-1])

	p, ok := ctl.Params(cmd.LESetAdvertisingEnableOpCode)
	require.True(t, ok)
	assert.Equal(t, []byte{0x00}, p)

	p, ok = ctl.Params(cmd.LESetAdvertisingParametersOpCode)
	require.True(t, ok)
	assert.Equal(t, cmd.OwnAddressRandom, p[5])
}
