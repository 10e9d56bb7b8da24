package hci

import (
	"time"

	"github.com/bletio/ble"
	"github.com/bletio/ble/assigned"
	"github.com/pkg/errors"
)

// SetCommandTimeout bounds every command exchange.
func (h *HCI) SetCommandTimeout(d time.Duration) error {
	if d <= 0 {
		return errors.Wrapf(ble.ErrInvalidParameter, "command timeout %v", d)
	}
	h.timeout = d
	return nil
}

// SetLogger replaces the exchanger's logger.
func (h *HCI) SetLogger(l ble.Logger) error {
	if l == nil {
		return errors.Wrap(ble.ErrInvalidParameter, "nil logger")
	}
	h.log = l.ChildLogger(map[string]interface{}{"pkg": "hci"})
	return nil
}

// SetAppearance is a host setting, ignored here.
func (h *HCI) SetAppearance(assigned.Appearance) error { return nil }

// SetEventMask is a host setting, ignored here.
func (h *HCI) SetEventMask(uint64) error { return nil }

// SetLEEventMask is a host setting, ignored here.
func (h *HCI) SetLEEventMask(uint64) error { return nil }

// SetCapabilityCache is a host setting, ignored here.
func (h *HCI) SetCapabilityCache(ble.CapabilityCache) error { return nil }

// SetRandomAddressRetries is a host setting, ignored here.
func (h *HCI) SetRandomAddressRetries(int) error { return nil }
