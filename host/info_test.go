package host

import (
	"context"
	"testing"

	"github.com/bletio/ble"
	"github.com/bletio/ble/linux/hci/hcitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCache map[ble.Address][]byte

func (m memCache) Store(a ble.Address, v interface{}, overwrite bool) error {
	if _, ok := m[a]; ok && !overwrite {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m[a] = b
	return nil
}

func (m memCache) Load(a ble.Address, v interface{}) error {
	return json.Unmarshal(m[a], v)
}

func (m memCache) Clear() error {
	for k := range m {
		delete(m, k)
	}
	return nil
}

func TestCapabilitiesAreCached(t *testing.T) {
	cache := memCache{}
	c := hcitest.LEController(bdaddr)
	sh := standby(t, c, ble.OptCapabilityCache(cache))

	var got DeviceInformation
	require.NoError(t, cache.Load(bdaddr, &got))
	assert.Equal(t, sh.DeviceInformation(), got)
	_, ok := got.RandomAddress()
	assert.False(t, ok)

	rh, err := sh.CreateRandomAddress(context.Background())
	require.NoError(t, err)
	require.NoError(t, cache.Load(bdaddr, &got))
	assert.Equal(t, rh.DeviceInformation(), got)
	a, ok := got.RandomAddress()
	assert.True(t, ok)
	assert.Equal(t, ble.AddressRandomStatic, a.Kind())
}

func TestDeviceInformationJSON(t *testing.T) {
	info := DeviceInformation{
		supportedFeatures: ble.FeatureLESupportedController,
		leFeatures:        ble.LEFeatureLLPrivacy,
		leStates:          0x3FF,
		bufferSize:        BufferSize{DataPacketLength: 27, TotalNumDataPackets: 3},
		publicAddress:     bdaddr,
		txPowerLevel:      -8,
		appearance:        0x00C0,
	}
	info.supportedCommands = info.supportedCommands.With(ble.SupportedReset)

	b, err := json.Marshal(info)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"publicAddress":"00:1B:DC:07:32:F0/public"`)
	assert.NotContains(t, string(b), "randomAddress")

	var back DeviceInformation
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, info, back)
}
