package host

import (
	"context"

	"github.com/bletio/ble"
	"github.com/bletio/ble/linux/hci/cmd"
	"github.com/pkg/errors"
)

// Setup resets the controller and collects its capabilities. Optional
// commands the controller does not support are skipped. A controller
// without LE support, or without any usable buffer size, fails setup for
// good: later calls return the same error without touching the controller.
func (h *InitialHost) Setup(ctx context.Context) (*StandbyHost, error) {
	s, release, err := h.enter()
	if err != nil {
		return nil, err
	}
	defer release()
	if s.fatal != nil {
		return nil, s.fatal
	}

	info := s.info
	if err := s.setup(ctx, &info); err != nil {
		if errors.Is(err, ErrNonLECapableController) || errors.Is(err, ErrNoBufferSize) {
			s.fatal = err
			s.info = info
		}
		return nil, err
	}

	s.info = info
	s.log.Infof("controller %s ready, LE features %s", info.publicAddress, info.leFeatures)
	s.store()
	return &StandbyHost{h.consume()}, nil
}

func (s *session) setup(ctx context.Context, info *DeviceInformation) error {
	s.log.Info("hci reset")
	if err := s.request(ctx, &cmd.Reset{}, nil); err != nil {
		return errors.Wrap(err, "setup")
	}

	var commands cmd.ReadLocalSupportedCommandsRP
	if err := s.request(ctx, &cmd.ReadLocalSupportedCommands{}, &commands); err != nil {
		return errors.Wrap(err, "setup")
	}
	info.supportedCommands = commands.SupportedCommands
	supports := info.supportedCommands.Contains

	var features cmd.ReadLocalSupportedFeaturesRP
	if err := s.request(ctx, &cmd.ReadLocalSupportedFeatures{}, &features); err != nil {
		return errors.Wrap(err, "setup")
	}
	info.supportedFeatures = features.LMPFeatures
	if !info.supportedFeatures.Contains(ble.FeatureLESupportedController) {
		return errors.Wrapf(ErrNonLECapableController, "features %s", info.supportedFeatures)
	}

	if supports(ble.SupportedSetEventMask) {
		if err := s.request(ctx, &cmd.SetEventMask{EventMask: s.cfg.eventMask}, nil); err != nil {
			return errors.Wrap(err, "setup")
		}
	}
	if supports(ble.SupportedLESetEventMask) {
		if err := s.request(ctx, &cmd.LESetEventMask{LEEventMask: s.cfg.leEventMask}, nil); err != nil {
			return errors.Wrap(err, "setup")
		}
	}

	bs, err := s.readBufferSize(ctx, supports)
	if err != nil {
		return errors.Wrap(err, "setup")
	}
	info.bufferSize = bs

	if supports(ble.SupportedLEReadLocalSupportedFeatures) {
		var rp cmd.LEReadLocalSupportedFeaturesRP
		if err := s.request(ctx, &cmd.LEReadLocalSupportedFeatures{}, &rp); err != nil {
			return errors.Wrap(err, "setup")
		}
		info.leFeatures = rp.LEFeatures
	}

	if supports(ble.SupportedLEReadSupportedStates) {
		var rp cmd.LEReadSupportedStatesRP
		if err := s.request(ctx, &cmd.LEReadSupportedStates{}, &rp); err != nil {
			return errors.Wrap(err, "setup")
		}
		info.leStates = rp.LEStates
	}

	if supports(ble.SupportedReadBDADDR) {
		var rp cmd.ReadBDADDRRP
		if err := s.request(ctx, &cmd.ReadBDADDR{}, &rp); err != nil {
			return errors.Wrap(err, "setup")
		}
		info.publicAddress = ble.PublicAddress(rp.BDADDR)
	}
	return nil
}

// readBufferSize prefers the dedicated LE buffers and falls back to the
// shared BR/EDR ones when the controller reports none.
func (s *session) readBufferSize(ctx context.Context, supports func(ble.SupportedCommand) bool) (BufferSize, error) {
	if supports(ble.SupportedLEReadBufferSize) {
		var rp cmd.LEReadBufferSizeRP
		if err := s.request(ctx, &cmd.LEReadBufferSize{}, &rp); err != nil {
			return BufferSize{}, err
		}
		if rp.HCLEACLDataPacketLength != 0 && rp.HCTotalNumLEACLDataPackets != 0 {
			return BufferSize{
				DataPacketLength:    rp.HCLEACLDataPacketLength,
				TotalNumDataPackets: uint16(rp.HCTotalNumLEACLDataPackets),
			}, nil
		}
	}

	if !supports(ble.SupportedReadBufferSize) {
		return BufferSize{}, ErrNoBufferSize
	}
	var rp cmd.ReadBufferSizeRP
	if err := s.request(ctx, &cmd.ReadBufferSize{}, &rp); err != nil {
		return BufferSize{}, err
	}
	if rp.HCACLDataPacketLength == 0 || rp.HCTotalNumACLDataPackets == 0 {
		return BufferSize{}, errors.Wrap(ErrNoBufferSize, "read buffer size returned zero")
	}
	return BufferSize{
		DataPacketLength:    rp.HCACLDataPacketLength,
		TotalNumDataPackets: rp.HCTotalNumACLDataPackets,
		Shared:              true,
	}, nil
}
