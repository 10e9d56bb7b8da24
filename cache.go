package ble

// CapabilityCache persists controller capability snapshots keyed by the
// controller address. v is any JSON serialisable value.
type CapabilityCache interface {
	Store(a Address, v interface{}, overwrite bool) error
	Load(a Address, v interface{}) error
	Clear() error
}
