package host

import (
	"context"

	"github.com/bletio/ble"
	"github.com/bletio/ble/linux/adv"
	"github.com/bletio/ble/linux/hci"
	"github.com/bletio/ble/linux/hci/cmd"
	"github.com/pkg/errors"
)

// AdvertisingParameters configures legacy advertising.
type AdvertisingParameters struct {
	IntervalMin ble.AdvertisingInterval
	IntervalMax ble.AdvertisingInterval
	// Type is one of cmd.AdvInd, cmd.AdvDirectIndHigh, cmd.AdvScanInd,
	// cmd.AdvNonconnInd or cmd.AdvDirectIndLow.
	Type uint8
	// OwnAddressType is one of the cmd.OwnAddress values. The random kinds
	// need CreateRandomAddress first.
	OwnAddressType uint8
	// PeerAddress is the target of directed advertising.
	PeerAddress  ble.Address
	ChannelMap   uint8
	FilterPolicy uint8
}

// DefaultAdvertisingParameters returns connectable undirected advertising
// every 100 ms on all channels from the public address.
func DefaultAdvertisingParameters() AdvertisingParameters {
	return AdvertisingParameters{
		IntervalMin:    ble.MustAdvertisingInterval(0x00A0),
		IntervalMax:    ble.MustAdvertisingInterval(0x00A0),
		Type:           cmd.AdvInd,
		OwnAddressType: cmd.OwnAddressPublic,
		ChannelMap:     cmd.AdvChannelAll,
		FilterPolicy:   cmd.AdvFilterNone,
	}
}

func (p AdvertisingParameters) command() *cmd.LESetAdvertisingParameters {
	return &cmd.LESetAdvertisingParameters{
		AdvertisingIntervalMin:  uint16(p.IntervalMin),
		AdvertisingIntervalMax:  uint16(p.IntervalMax),
		AdvertisingType:         p.Type,
		OwnAddressType:          p.OwnAddressType,
		PeerAddressType:         p.PeerAddress.Type(),
		PeerAddress:             p.PeerAddress.Value(),
		AdvertisingChannelMap:   p.ChannelMap,
		AdvertisingFilterPolicy: p.FilterPolicy,
	}
}

func (p AdvertisingParameters) directed() bool {
	return p.Type == cmd.AdvDirectIndHigh || p.Type == cmd.AdvDirectIndLow
}

func (s *session) validate(p AdvertisingParameters) error {
	if err := hci.ValidateAdvParams(*p.command()); err != nil {
		return err
	}
	if p.directed() && p.PeerAddress.IsZero() {
		return errors.Wrap(ble.ErrInvalidAddress, "directed advertising needs a peer address")
	}
	if p.OwnAddressType == cmd.OwnAddressRandom || p.OwnAddressType == cmd.OwnAddressRPAOrRandom {
		if _, ok := s.info.RandomAddress(); !ok {
			return errors.Wrapf(ErrRandomAddressRequired, "own address type %d", p.OwnAddressType)
		}
	}
	return nil
}

// payloads resolves automatic fields against info and encodes both packets.
func payloads(info DeviceInformation, ad *adv.AdvertisingData, sr *adv.ScanResponseData) (*cmd.LESetAdvertisingData, *cmd.LESetScanResponseData, error) {
	var adb, srb []byte
	var err error
	if ad != nil {
		if adb, err = ad.FillAutomaticData(info).Bytes(); err != nil {
			return nil, nil, errors.Wrap(err, "advertising data")
		}
	}
	if sr != nil {
		if srb, err = sr.FillAutomaticData(info).Bytes(); err != nil {
			return nil, nil, errors.Wrap(err, "scan response data")
		}
	}

	adc, err := cmd.NewLESetAdvertisingData(adb)
	if err != nil {
		return nil, nil, err
	}
	src, err := cmd.NewLESetScanResponseData(srb)
	if err != nil {
		return nil, nil, err
	}
	return adc, src, nil
}

// StartAdvertising configures and enables advertising. ad and sr may be
// nil, which sends empty data. Nothing is committed to the host unless
// every step succeeds.
func (h *StandbyHost) StartAdvertising(ctx context.Context, p AdvertisingParameters, ad *adv.AdvertisingData, sr *adv.ScanResponseData) (*AdvertisingHost, error) {
	s, release, err := h.enter()
	if err != nil {
		return nil, err
	}
	defer release()
	if err := s.validate(p); err != nil {
		return nil, err
	}
	info := s.info
	// fail on oversized payloads before talking to the controller
	if _, _, err := payloads(info, ad, sr); err != nil {
		return nil, err
	}

	if err := s.request(ctx, p.command(), nil); err != nil {
		return nil, errors.Wrap(err, "can't set advertising parameters")
	}

	if s.supports(ble.SupportedLEReadAdvertisingPhysicalChannelTxPwr) {
		var rp cmd.LEReadAdvertisingPhysicalChannelTxPowerRP
		if err := s.request(ctx, &cmd.LEReadAdvertisingPhysicalChannelTxPower{}, &rp); err != nil {
			return nil, errors.Wrap(err, "can't read advertising tx power")
		}
		info.txPowerLevel = rp.TransmitPowerLevel
	} else if autoTxPower(ad, sr) {
		s.log.Warnf("controller can't report advertising tx power, automatic tx power level advertised as %d dBm", info.txPowerLevel)
	}

	adc, src, err := payloads(info, ad, sr)
	if err != nil {
		return nil, err
	}
	if err := s.request(ctx, adc, nil); err != nil {
		return nil, errors.Wrap(err, "can't set advertising data")
	}
	if err := s.request(ctx, src, nil); err != nil {
		return nil, errors.Wrap(err, "can't set scan response data")
	}
	if err := s.request(ctx, &cmd.LESetAdvertisingEnable{AdvertisingEnable: cmd.AdvertisingEnabled}, nil); err != nil {
		return nil, errors.Wrap(err, "can't enable advertising")
	}

	s.info = info
	s.log.Infof("advertising, tx power %d dBm", info.txPowerLevel)
	return &AdvertisingHost{h.consume()}, nil
}

// StopAdvertising disables advertising.
func (h *AdvertisingHost) StopAdvertising(ctx context.Context) (*StandbyHost, error) {
	s, release, err := h.enter()
	if err != nil {
		return nil, err
	}
	defer release()
	if err := s.request(ctx, &cmd.LESetAdvertisingEnable{AdvertisingEnable: cmd.AdvertisingDisabled}, nil); err != nil {
		return nil, errors.Wrap(err, "can't disable advertising")
	}
	s.log.Info("advertising stopped")
	return &StandbyHost{h.consume()}, nil
}

// autoTxPower reports whether ad or sr carries a TX power level to be filled
// from the controller.
func autoTxPower(ad *adv.AdvertisingData, sr *adv.ScanResponseData) bool {
	var rr []adv.AdStruct
	if ad != nil {
		rr = append(rr, ad.Records()...)
	}
	if sr != nil {
		rr = append(rr, sr.Records()...)
	}
	for _, r := range rr {
		if p, ok := r.(adv.TxPowerLevel); ok && p.IsAutomatic() {
			return true
		}
	}
	return false
}
