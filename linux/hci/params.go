package hci

import (
	"github.com/bletio/ble"
	"github.com/bletio/ble/linux/hci/cmd"
	"github.com/pkg/errors"
)

// DefaultAdvParams returns connectable undirected advertising on all three
// channels at the fastest interval, from the public address.
func DefaultAdvParams() cmd.LESetAdvertisingParameters {
	return cmd.LESetAdvertisingParameters{
		AdvertisingIntervalMin:  ble.AdvertisingIntervalMin, // 0x0020 - 0x4000; N * 0.625 msec
		AdvertisingIntervalMax:  ble.AdvertisingIntervalMin, // 0x0020 - 0x4000; N * 0.625 msec
		AdvertisingType:         cmd.AdvInd,
		OwnAddressType:          cmd.OwnAddressPublic,
		PeerAddressType:         ble.AddressTypePublic,
		AdvertisingChannelMap:   cmd.AdvChannelAll,
		AdvertisingFilterPolicy: cmd.AdvFilterNone,
	}
}

// ValidateAdvParams checks advertising parameters before they are sent.
// The interval range is ignored for high duty cycle directed advertising.
func ValidateAdvParams(p cmd.LESetAdvertisingParameters) error {
	switch {
	case p.AdvertisingType > cmd.AdvDirectIndLow:
		return errors.Wrapf(ble.ErrInvalidParameter, "advertising type %v", p.AdvertisingType)

	case p.AdvertisingType != cmd.AdvDirectIndHigh && !validAdvInterval(p.AdvertisingIntervalMin):
		return errors.Wrapf(ble.ErrInvalidInterval, "advertising interval min 0x%04X", p.AdvertisingIntervalMin)

	case p.AdvertisingType != cmd.AdvDirectIndHigh && !validAdvInterval(p.AdvertisingIntervalMax):
		return errors.Wrapf(ble.ErrInvalidInterval, "advertising interval max 0x%04X", p.AdvertisingIntervalMax)

	case p.AdvertisingType != cmd.AdvDirectIndHigh && p.AdvertisingIntervalMin > p.AdvertisingIntervalMax:
		return errors.Wrapf(ble.ErrInvalidInterval, "advertising interval min 0x%04X > max 0x%04X", p.AdvertisingIntervalMin, p.AdvertisingIntervalMax)

	case p.OwnAddressType > cmd.OwnAddressRPAOrRandom:
		return errors.Wrapf(ble.ErrInvalidParameter, "own address type %v", p.OwnAddressType)

	case p.PeerAddressType != ble.AddressTypePublic && p.PeerAddressType != ble.AddressTypeRandom:
		return errors.Wrapf(ble.ErrInvalidParameter, "peer address type %v", p.PeerAddressType)

	case p.AdvertisingChannelMap == 0 || p.AdvertisingChannelMap&^cmd.AdvChannelAll != 0:
		return errors.Wrapf(ble.ErrInvalidParameter, "advertising channel map 0x%02X", p.AdvertisingChannelMap)

	case p.AdvertisingFilterPolicy > cmd.AdvFilterScanAndConnect:
		return errors.Wrapf(ble.ErrInvalidParameter, "advertising filter policy %v", p.AdvertisingFilterPolicy)
	}

	return nil
}

func validAdvInterval(v uint16) bool {
	return v >= ble.AdvertisingIntervalMin && v <= ble.AdvertisingIntervalMax
}
