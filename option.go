package ble

import (
	"time"

	"github.com/bletio/ble/assigned"
)

// DeviceOption is implemented by the components that accept configuration
// options. A component that has no use for a setting ignores it.
type DeviceOption interface {
	SetCommandTimeout(time.Duration) error
	SetLogger(Logger) error
	SetAppearance(assigned.Appearance) error
	SetEventMask(uint64) error
	SetLEEventMask(uint64) error
	SetCapabilityCache(CapabilityCache) error
	SetRandomAddressRetries(int) error
}

// An Option is a configuration function, which configures the device.
type Option func(DeviceOption) error

// OptCommandTimeout bounds every command exchange with the controller.
func OptCommandTimeout(d time.Duration) Option {
	return func(opt DeviceOption) error {
		return opt.SetCommandTimeout(d)
	}
}

// OptLogger sets the logger used instead of the package default.
func OptLogger(l Logger) Option {
	return func(opt DeviceOption) error {
		return opt.SetLogger(l)
	}
}

// OptAppearance sets the appearance filled into automatic advertising fields.
func OptAppearance(a assigned.Appearance) Option {
	return func(opt DeviceOption) error {
		return opt.SetAppearance(a)
	}
}

// OptEventMask overrides the event mask sent during setup.
func OptEventMask(mask uint64) Option {
	return func(opt DeviceOption) error {
		return opt.SetEventMask(mask)
	}
}

// OptLEEventMask overrides the LE event mask sent during setup.
func OptLEEventMask(mask uint64) Option {
	return func(opt DeviceOption) error {
		return opt.SetLEEventMask(mask)
	}
}

// OptCapabilityCache stores controller capability snapshots in c.
func OptCapabilityCache(c CapabilityCache) Option {
	return func(opt DeviceOption) error {
		return opt.SetCapabilityCache(c)
	}
}

// OptRandomAddressRetries bounds the LE Rand attempts made while looking for
// a valid static random address.
func OptRandomAddressRetries(n int) Option {
	return func(opt DeviceOption) error {
		return opt.SetRandomAddressRetries(n)
	}
}
