package host

import (
	"context"

	"github.com/bletio/ble/linux/hci/cmd"
)

// FilterAcceptListSize returns the number of entries the controller's filter
// accept list holds.
func (h *StandbyHost) FilterAcceptListSize(ctx context.Context) (int, error) {
	s, release, err := h.enter()
	if err != nil {
		return 0, err
	}
	defer release()
	var rp cmd.LEReadFilterAcceptListSizeRP
	if err := s.request(ctx, &cmd.LEReadFilterAcceptListSize{}, &rp); err != nil {
		return 0, err
	}
	return int(rp.FilterAcceptListSize), nil
}

// ClearFilterAcceptList removes every entry.
func (h *StandbyHost) ClearFilterAcceptList(ctx context.Context) error {
	s, release, err := h.enter()
	if err != nil {
		return err
	}
	defer release()
	return s.request(ctx, &cmd.LEClearFilterAcceptList{}, nil)
}

// AddDeviceToFilterAcceptList adds a.
func (h *StandbyHost) AddDeviceToFilterAcceptList(ctx context.Context, a cmd.FilterAcceptListAddress) error {
	s, release, err := h.enter()
	if err != nil {
		return err
	}
	defer release()
	return s.request(ctx, &cmd.LEAddDeviceToFilterAcceptList{Address: a}, nil)
}

// RemoveDeviceFromFilterAcceptList removes a.
func (h *StandbyHost) RemoveDeviceFromFilterAcceptList(ctx context.Context, a cmd.FilterAcceptListAddress) error {
	s, release, err := h.enter()
	if err != nil {
		return err
	}
	defer release()
	return s.request(ctx, &cmd.LERemoveDeviceFromFilterAcceptList{Address: a}, nil)
}
