package host

import (
	"context"
	"encoding/binary"

	"github.com/bletio/ble"
	"github.com/bletio/ble/linux/hci/cmd"
	"github.com/pkg/errors"
)

// CreateRandomAddress asks the controller for random bytes until they form
// a valid static random address, then installs it. A session creates at
// most one random address.
func (h *StandbyHost) CreateRandomAddress(ctx context.Context) (*StandbyHost, error) {
	s, release, err := h.enter()
	if err != nil {
		return nil, err
	}
	defer release()
	if a, ok := s.info.RandomAddress(); ok {
		return nil, errors.Wrapf(ErrRandomAddressAlreadyCreated, "using %s", a)
	}

	a, err := s.randomStaticAddress(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.request(ctx, &cmd.LESetRandomAddress{RandomAddress: a.Value()}, nil); err != nil {
		return nil, errors.Wrap(err, "can't set random address")
	}

	s.info.randomAddress = a
	s.info.hasRandomAddress = true
	s.log.Infof("random static address %s", a)
	s.store()
	return &StandbyHost{h.consume()}, nil
}

func (s *session) randomStaticAddress(ctx context.Context) (ble.Address, error) {
	for i := 0; i < s.cfg.randomRetries; i++ {
		var rp cmd.LERandRP
		if err := s.request(ctx, &cmd.LERand{}, &rp); err != nil {
			return ble.Address{}, errors.Wrap(err, "can't get random bytes")
		}

		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], rp.RandomNumber)
		var v [6]byte
		copy(v[:], b[:6])
		v[5] |= 0xC0

		if ble.IsValidRandomStaticAddress(v) {
			return ble.NewRandomStaticAddress(v)
		}
		s.log.Debugf("discarding random value % X", v)
	}
	return ble.Address{}, errors.Wrapf(ErrRandomAddressRetries, "%d attempts", s.cfg.randomRetries)
}
