package hci

import (
	"testing"

	"github.com/bletio/ble"
	"github.com/bletio/ble/linux/hci/cmd"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidateAdvParams(t *testing.T) {
	assert.NoError(t, ValidateAdvParams(DefaultAdvParams()))

	direct := DefaultAdvParams()
	direct.AdvertisingType = cmd.AdvDirectIndHigh
	direct.AdvertisingIntervalMin = 0
	direct.AdvertisingIntervalMax = 0
	assert.NoError(t, ValidateAdvParams(direct), "interval is ignored for high duty cycle")

	cases := map[string]struct {
		mod func(p *cmd.LESetAdvertisingParameters)
		err error
	}{
		"type":        {func(p *cmd.LESetAdvertisingParameters) { p.AdvertisingType = 5 }, ble.ErrInvalidParameter},
		"min low":     {func(p *cmd.LESetAdvertisingParameters) { p.AdvertisingIntervalMin = 0x001F }, ble.ErrInvalidInterval},
		"max high":    {func(p *cmd.LESetAdvertisingParameters) { p.AdvertisingIntervalMax = 0x4001 }, ble.ErrInvalidInterval},
		"min > max":   {func(p *cmd.LESetAdvertisingParameters) { p.AdvertisingIntervalMin = 0x0100 }, ble.ErrInvalidInterval},
		"own addr":    {func(p *cmd.LESetAdvertisingParameters) { p.OwnAddressType = 4 }, ble.ErrInvalidParameter},
		"peer addr":   {func(p *cmd.LESetAdvertisingParameters) { p.PeerAddressType = 2 }, ble.ErrInvalidParameter},
		"no channels": {func(p *cmd.LESetAdvertisingParameters) { p.AdvertisingChannelMap = 0 }, ble.ErrInvalidParameter},
		"bad channel": {func(p *cmd.LESetAdvertisingParameters) { p.AdvertisingChannelMap = 0x08 }, ble.ErrInvalidParameter},
		"filter":      {func(p *cmd.LESetAdvertisingParameters) { p.AdvertisingFilterPolicy = 4 }, ble.ErrInvalidParameter},
	}
	for name, c := range cases {
		p := DefaultAdvParams()
		c.mod(&p)
		err := ValidateAdvParams(p)
		assert.True(t, errors.Is(err, c.err), "%s: %v", name, err)
	}
}
