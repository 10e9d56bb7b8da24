package host

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/bletio/ble"
	"github.com/bletio/ble/assigned"
	"github.com/bletio/ble/linux/adv"
	"github.com/bletio/ble/linux/hci"
	"github.com/bletio/ble/linux/hci/cmd"
	"github.com/bletio/ble/linux/hci/evt"
	"github.com/bletio/ble/linux/hci/hcitest"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bdaddr = ble.MustParseAddress("00:1B:DC:07:32:F0", false)

func newHost(t *testing.T, c *hcitest.Controller, opts ...ble.Option) *InitialHost {
	t.Helper()
	h, err := hci.New(c)
	require.NoError(t, err)
	ih, err := New(h, opts...)
	require.NoError(t, err)
	return ih
}

func standby(t *testing.T, c *hcitest.Controller, opts ...ble.Option) *StandbyHost {
	t.Helper()
	sh, err := newHost(t, c, opts...).Setup(context.Background())
	require.NoError(t, err)
	c.Reset()
	return sh
}

func TestSetup(t *testing.T) {
	c := hcitest.LEController(bdaddr)
	ih := newHost(t, c)

	sh, err := ih.Setup(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{
		cmd.ResetOpCode,
		cmd.ReadLocalSupportedCommandsOpCode,
		cmd.ReadLocalSupportedFeaturesOpCode,
		cmd.SetEventMaskOpCode,
		cmd.LESetEventMaskOpCode,
		cmd.LEReadBufferSizeOpCode,
		cmd.LEReadLocalSupportedFeaturesOpCode,
		cmd.LEReadSupportedStatesOpCode,
		cmd.ReadBDADDROpCode,
	}, c.OpCodes())

	p, ok := c.Params(cmd.SetEventMaskOpCode)
	require.True(t, ok)
	assert.Equal(t, []byte{0xff, 0xff, 0xfb, 0xff, 0x07, 0xf8, 0xbf, 0x3d}, p)
	p, ok = c.Params(cmd.LESetEventMaskOpCode)
	require.True(t, ok)
	assert.Equal(t, []byte{0x1F, 0, 0, 0, 0, 0, 0, 0}, p)

	assert.Equal(t, bdaddr, sh.Address())
	assert.True(t, sh.SupportedFeatures().Contains(ble.FeatureLESupportedController))
	assert.Equal(t, ble.LEFeatureEncryption|ble.LEFeatureLLPrivacy|ble.LEFeature2MPHY, sh.SupportedLEFeatures())
	assert.Equal(t, ble.LEStates(0x000003FFFFFFFFFF), sh.SupportedLEStates())
	assert.True(t, sh.SupportedCommands().Contains(ble.SupportedLERand))
	assert.Equal(t, BufferSize{DataPacketLength: 251, TotalNumDataPackets: 8}, sh.DeviceInformation().BufferSize())
	_, ok = sh.RandomAddress()
	assert.False(t, ok)

	assert.True(t, ih.Consumed())
	_, err = ih.Setup(context.Background())
	assert.Equal(t, ErrHostConsumed, err)
	assert.Equal(t, ble.Address{}, ih.Address())
}

func TestSetupNonLECapableController(t *testing.T) {
	c := hcitest.LEController(bdaddr)
	c.Complete(cmd.ReadLocalSupportedFeaturesOpCode, &cmd.ReadLocalSupportedFeaturesRP{LMPFeatures: 0x00000000000000FF})
	ih := newHost(t, c)

	sh, err := ih.Setup(context.Background())
	assert.Nil(t, sh)
	assert.True(t, errors.Is(err, ErrNonLECapableController), "%v", err)
	assert.Equal(t, []int{
		cmd.ResetOpCode,
		cmd.ReadLocalSupportedCommandsOpCode,
		cmd.ReadLocalSupportedFeaturesOpCode,
	}, c.OpCodes())

	// still inspectable, but setup can't be retried
	assert.False(t, ih.Consumed())
	assert.Equal(t, ble.SupportedFeatures(0xFF), ih.SupportedFeatures())
	c.Reset()
	_, err = ih.Setup(context.Background())
	assert.True(t, errors.Is(err, ErrNonLECapableController))
	assert.Empty(t, c.OpCodes())
}

func TestSetupBufferSizeFallback(t *testing.T) {
	var supported ble.SupportedCommands
	supported = supported.With(ble.SupportedLEReadBufferSize, ble.SupportedReadBufferSize)

	c := hcitest.LEController(bdaddr)
	c.Complete(cmd.ReadLocalSupportedCommandsOpCode, &cmd.ReadLocalSupportedCommandsRP{SupportedCommands: supported})
	c.Complete(cmd.LEReadBufferSizeOpCode, &cmd.LEReadBufferSizeRP{})
	c.Complete(cmd.ReadBufferSizeOpCode, &cmd.ReadBufferSizeRP{HCACLDataPacketLength: 1021, HCTotalNumACLDataPackets: 6})

	sh, err := newHost(t, c).Setup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, BufferSize{DataPacketLength: 1021, TotalNumDataPackets: 6, Shared: true}, sh.DeviceInformation().BufferSize())

	// optional commands are skipped and leave defaults
	assert.Equal(t, []int{
		cmd.ResetOpCode,
		cmd.ReadLocalSupportedCommandsOpCode,
		cmd.ReadLocalSupportedFeaturesOpCode,
		cmd.LEReadBufferSizeOpCode,
		cmd.ReadBufferSizeOpCode,
	}, c.OpCodes())
	assert.True(t, sh.Address().IsZero())
	assert.Equal(t, ble.LEFeatures(0), sh.SupportedLEFeatures())
}

func TestSetupNoBufferSize(t *testing.T) {
	var supported ble.SupportedCommands
	supported = supported.With(ble.SupportedLEReadBufferSize)

	c := hcitest.LEController(bdaddr)
	c.Complete(cmd.ReadLocalSupportedCommandsOpCode, &cmd.ReadLocalSupportedCommandsRP{SupportedCommands: supported})
	c.Complete(cmd.LEReadBufferSizeOpCode, &cmd.LEReadBufferSizeRP{})
	ih := newHost(t, c)

	_, err := ih.Setup(context.Background())
	assert.True(t, errors.Is(err, ErrNoBufferSize), "%v", err)
	_, err = ih.Setup(context.Background())
	assert.True(t, errors.Is(err, ErrNoBufferSize), "%v", err)
}

func TestSetupTransientFailureIsRetryable(t *testing.T) {
	c := hcitest.LEController(bdaddr)
	c.Fail(cmd.ResetOpCode, uint8(hci.ErrHardwareFailure))
	ih := newHost(t, c)

	_, err := ih.Setup(context.Background())
	assert.Equal(t, hci.ErrHardwareFailure, errors.Cause(err))
	assert.False(t, ih.Consumed())

	c.Complete(cmd.ResetOpCode, &cmd.StatusRP{})
	_, err = ih.Setup(context.Background())
	assert.NoError(t, err)
}

func TestCreateRandomAddress(t *testing.T) {
	c := hcitest.LEController(bdaddr)
	sh := standby(t, c)

	rh, err := sh.CreateRandomAddress(context.Background())
	require.NoError(t, err)
	assert.True(t, sh.Consumed())
	assert.Equal(t, []int{cmd.LERandOpCode, cmd.LESetRandomAddressOpCode}, c.OpCodes())

	a, ok := rh.RandomAddress()
	require.True(t, ok)
	assert.Equal(t, ble.AddressRandomStatic, a.Kind())
	assert.Equal(t, "EE:00:11:22:33:44", a.String())
	p, _ := c.Params(cmd.LESetRandomAddressOpCode)
	assert.Equal(t, []byte{0x44, 0x33, 0x22, 0x11, 0x00, 0xEE}, p)

	_, err = rh.CreateRandomAddress(context.Background())
	assert.True(t, errors.Is(err, ErrRandomAddressAlreadyCreated), "%v", err)
	assert.False(t, rh.Consumed())

	_, err = sh.CreateRandomAddress(context.Background())
	assert.Equal(t, ErrHostConsumed, err)
}

func TestCreateRandomAddressRetries(t *testing.T) {
	values := []uint64{0x0000000000000000, 0x0000FFFFFFFFFFFF, 0x0000010203040506}
	calls := 0

	c := hcitest.LEController(bdaddr)
	c.Handle(cmd.LERandOpCode, func([]byte) []evt.Event {
		v := values[calls%len(values)]
		calls++
		return []evt.Event{hcitest.CommandComplete(cmd.LERandOpCode, &cmd.LERandRP{RandomNumber: v})}
	})
	sh := standby(t, c)

	rh, err := sh.CreateRandomAddress(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	a, _ := rh.RandomAddress()
	assert.Equal(t, "C1:02:03:04:05:06", a.String())
}

func TestCreateRandomAddressGivesUp(t *testing.T) {
	c := hcitest.LEController(bdaddr)
	c.Complete(cmd.LERandOpCode, &cmd.LERandRP{RandomNumber: 0})
	sh := standby(t, c, ble.OptRandomAddressRetries(3))

	_, err := sh.CreateRandomAddress(context.Background())
	assert.True(t, errors.Is(err, ErrRandomAddressRetries), "%v", err)
	assert.Equal(t, []int{cmd.LERandOpCode, cmd.LERandOpCode, cmd.LERandOpCode}, c.OpCodes())
	assert.False(t, sh.Consumed())
}

func testAdvertisingData(t *testing.T) adv.AdvertisingData {
	ad, err := adv.NewBuilder().
		WithFlags(adv.FlagLEGeneralDiscoverable | adv.FlagBREDRNotSupported).
		WithTxPowerLevelAuto().
		WithAppearanceAuto().
		Build()
	require.NoError(t, err)
	return ad
}

func TestStartStopAdvertising(t *testing.T) {
	c := hcitest.LEController(bdaddr)
	sh := standby(t, c, ble.OptAppearance(assigned.AppearanceGenericWatch))

	ad := testAdvertisingData(t)
	ah, err := sh.StartAdvertising(context.Background(), DefaultAdvertisingParameters(), &ad, nil)
	require.NoError(t, err)
	assert.True(t, sh.Consumed())
	assert.Equal(t, []int{
		cmd.LESetAdvertisingParametersOpCode,
		cmd.LEReadAdvertisingPhysicalChannelTxPowerOpCode,
		cmd.LESetAdvertisingDataOpCode,
		cmd.LESetScanResponseDataOpCode,
		cmd.LESetAdvertisingEnableOpCode,
	}, c.OpCodes())

	p, _ := c.Params(cmd.LESetAdvertisingParametersOpCode)
	assert.Equal(t, []byte{0xA0, 0x00, 0xA0, 0x00, 0x00, 0x00, 0x00, 0, 0, 0, 0, 0, 0, 0x07, 0x00}, p)

	want := make([]byte, 32)
	copy(want, []byte{0x0A, 0x02, 0x01, 0x06, 0x02, 0x0A, 0x04, 0x03, 0x19, 0xC0, 0x00})
	p, _ = c.Params(cmd.LESetAdvertisingDataOpCode)
	assert.Equal(t, want, p)

	p, _ = c.Params(cmd.LESetScanResponseDataOpCode)
	assert.Equal(t, make([]byte, 32), p)
	p, _ = c.Params(cmd.LESetAdvertisingEnableOpCode)
	assert.Equal(t, []byte{0x01}, p)

	assert.Equal(t, int8(4), ah.DeviceInformation().TxPowerLevel())
	assert.Equal(t, assigned.AppearanceGenericWatch, ah.DeviceInformation().Appearance())

	c.Reset()
	sh2, err := ah.StopAdvertising(context.Background())
	require.NoError(t, err)
	assert.True(t, ah.Consumed())
	p, _ = c.Params(cmd.LESetAdvertisingEnableOpCode)
	assert.Equal(t, []byte{0x00}, p)
	assert.Equal(t, bdaddr, sh2.Address())

	_, err = ah.StopAdvertising(context.Background())
	assert.Equal(t, ErrHostConsumed, err)
}

func TestCopiedStateIsConsumed(t *testing.T) {
	c := hcitest.LEController(bdaddr)
	sh := standby(t, c)
	cp := *sh

	ad := testAdvertisingData(t)
	ah, err := sh.StartAdvertising(context.Background(), DefaultAdvertisingParameters(), &ad, nil)
	require.NoError(t, err)
	c.Reset()

	assert.True(t, cp.Consumed())
	_, err = cp.CreateRandomAddress(context.Background())
	assert.Equal(t, ErrHostConsumed, err)
	_, err = cp.StartAdvertising(context.Background(), DefaultAdvertisingParameters(), &ad, nil)
	assert.Equal(t, ErrHostConsumed, err)
	_, err = cp.FilterAcceptListSize(context.Background())
	assert.Equal(t, ErrHostConsumed, err)
	assert.True(t, cp.Address().IsZero())
	assert.Empty(t, c.OpCodes())

	// a copy of the new state follows it through the next transition
	acp := *ah
	_, err = ah.StopAdvertising(context.Background())
	require.NoError(t, err)
	_, err = acp.StopAdvertising(context.Background())
	assert.Equal(t, ErrHostConsumed, err)
}

func TestConcurrentTransitionsFromCopies(t *testing.T) {
	c := hcitest.LEController(bdaddr)
	sh := standby(t, c)
	cp := *sh
	ad := testAdvertisingData(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, h := range []*StandbyHost{sh, &cp} {
		wg.Add(1)
		go func(i int, h *StandbyHost) {
			defer wg.Done()
			_, errs[i] = h.StartAdvertising(context.Background(), DefaultAdvertisingParameters(), &ad, nil)
		}(i, h)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
			continue
		}
		assert.Equal(t, ErrHostConsumed, err)
	}
	assert.Equal(t, 1, won)
	assert.Len(t, c.OpCodes(), 5)
}

func txPowerWarnings(hook *logtest.Hook) int {
	n := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && strings.Contains(e.Message, "tx power") {
			n++
		}
	}
	return n
}

func TestStartAdvertisingWithoutTxPowerRead(t *testing.T) {
	var supported ble.SupportedCommands
	supported = supported.With(ble.SupportedLEReadBufferSize)

	c := hcitest.LEController(bdaddr)
	c.Complete(cmd.ReadLocalSupportedCommandsOpCode, &cmd.ReadLocalSupportedCommandsRP{SupportedCommands: supported})
	l, hook := logtest.NewNullLogger()
	sh := standby(t, c, ble.OptLogger(ble.NewLogger(l)))
	hook.Reset()

	ad := testAdvertisingData(t)
	ah, err := sh.StartAdvertising(context.Background(), DefaultAdvertisingParameters(), &ad, nil)
	require.NoError(t, err)
	assert.NotContains(t, c.OpCodes(), cmd.LEReadAdvertisingPhysicalChannelTxPowerOpCode)

	// the automatic level goes out as 0 dBm, with a warning
	p, _ := c.Params(cmd.LESetAdvertisingDataOpCode)
	assert.Equal(t, []byte{0x02, 0x0A, 0x00}, p[4:7])
	assert.Equal(t, 1, txPowerWarnings(hook))

	// nothing automatic to fill, nothing to warn about
	c.Reset()
	hook.Reset()
	sh, err = ah.StopAdvertising(context.Background())
	require.NoError(t, err)
	fixed, err := adv.NewBuilder().WithFlags(adv.FlagLEGeneralDiscoverable).Build()
	require.NoError(t, err)
	_, err = sh.StartAdvertising(context.Background(), DefaultAdvertisingParameters(), &fixed, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, txPowerWarnings(hook))
}

func TestStartAdvertisingFailureKeepsStandby(t *testing.T) {
	c := hcitest.LEController(bdaddr)
	c.Fail(cmd.LESetAdvertisingEnableOpCode, uint8(hci.ErrDisallowed))
	sh := standby(t, c)

	ad := testAdvertisingData(t)
	ah, err := sh.StartAdvertising(context.Background(), DefaultAdvertisingParameters(), &ad, nil)
	assert.Nil(t, ah)
	assert.Equal(t, hci.ErrDisallowed, errors.Cause(err))
	assert.False(t, sh.Consumed())
	assert.Equal(t, int8(0), sh.DeviceInformation().TxPowerLevel())

	// every standby operation is still available
	n, err := sh.FilterAcceptListSize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	c.Complete(cmd.LESetAdvertisingEnableOpCode, &cmd.StatusRP{})
	ah, err = sh.StartAdvertising(context.Background(), DefaultAdvertisingParameters(), &ad, nil)
	require.NoError(t, err)
	assert.NotNil(t, ah)
}

func TestStartAdvertisingValidation(t *testing.T) {
	c := hcitest.LEController(bdaddr)
	sh := standby(t, c)

	p := DefaultAdvertisingParameters()
	p.OwnAddressType = cmd.OwnAddressRandom
	_, err := sh.StartAdvertising(context.Background(), p, nil, nil)
	assert.True(t, errors.Is(err, ErrRandomAddressRequired), "%v", err)

	p = DefaultAdvertisingParameters()
	p.Type = cmd.AdvDirectIndLow
	_, err = sh.StartAdvertising(context.Background(), p, nil, nil)
	assert.True(t, errors.Is(err, ble.ErrInvalidAddress), "%v", err)

	p = DefaultAdvertisingParameters()
	p.ChannelMap = 0
	_, err = sh.StartAdvertising(context.Background(), p, nil, nil)
	assert.True(t, errors.Is(err, ble.ErrInvalidParameter), "%v", err)

	ad, err := adv.NewBuilder().
		WithFlags(adv.FlagLEGeneralDiscoverable).
		WithLocalName("abcdefghijklmnopqrstuvwxyz012", true).
		Build()
	require.NoError(t, err)
	_, err = sh.StartAdvertising(context.Background(), DefaultAdvertisingParameters(), &ad, nil)
	assert.True(t, errors.Is(err, adv.ErrDataWillNotFit), "%v", err)

	assert.Empty(t, c.OpCodes())
	assert.False(t, sh.Consumed())
}

func TestStartAdvertisingFromRandomAddress(t *testing.T) {
	c := hcitest.LEController(bdaddr)
	sh := standby(t, c)
	rh, err := sh.CreateRandomAddress(context.Background())
	require.NoError(t, err)

	sr, err := adv.NewBuilder().WithLocalName("bletio", true).BuildScanResponse()
	require.NoError(t, err)

	p := DefaultAdvertisingParameters()
	p.OwnAddressType = cmd.OwnAddressRandom
	p.Type = cmd.AdvScanInd
	_, err = rh.StartAdvertising(context.Background(), p, nil, &sr)
	require.NoError(t, err)

	got, _ := c.Params(cmd.LESetScanResponseDataOpCode)
	want := make([]byte, 32)
	copy(want, append([]byte{0x08, 0x07, 0x09}, "bletio"...))
	assert.Equal(t, want, got)
}

func TestFilterAcceptList(t *testing.T) {
	c := hcitest.LEController(bdaddr)
	sh := standby(t, c)
	ctx := context.Background()

	n, err := sh.FilterAcceptListSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	peer := cmd.FilterAcceptListDevice(ble.MustParseAddress("56:32:04:0B:2E:CD", false))
	require.NoError(t, sh.AddDeviceToFilterAcceptList(ctx, peer))
	p, _ := c.Params(cmd.LEAddDeviceToFilterAcceptListOpCode)
	assert.Equal(t, []byte{0x00, 0xCD, 0x2E, 0x0B, 0x04, 0x32, 0x56}, p)

	require.NoError(t, sh.AddDeviceToFilterAcceptList(ctx, cmd.FilterAcceptListAnonymousAdvertisers()))
	p, _ = c.Params(cmd.LEAddDeviceToFilterAcceptListOpCode)
	assert.Equal(t, byte(0xFF), p[0])

	require.NoError(t, sh.RemoveDeviceFromFilterAcceptList(ctx, peer))
	require.NoError(t, sh.ClearFilterAcceptList(ctx))

	c.Fail(cmd.LEAddDeviceToFilterAcceptListOpCode, uint8(hci.ErrMemoryCapacity))
	err = sh.AddDeviceToFilterAcceptList(ctx, peer)
	assert.Equal(t, hci.ErrMemoryCapacity, errors.Cause(err))
}

func TestNewOptions(t *testing.T) {
	h, err := hci.New(hcitest.NewController())
	require.NoError(t, err)

	_, err = New(h, ble.OptRandomAddressRetries(0))
	assert.True(t, errors.Is(err, ble.ErrInvalidParameter))

	_, err = New(h, ble.OptCommandTimeout(-1))
	assert.True(t, errors.Is(err, ble.ErrInvalidParameter))

	_, err = New(nil)
	assert.Error(t, err)
}
