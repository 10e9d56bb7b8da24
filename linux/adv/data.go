package adv

import (
	"github.com/bletio/ble"
	"github.com/bletio/ble/assigned"
	"github.com/bletio/ble/codec"
	"github.com/pkg/errors"
)

// DeviceInfo supplies the values of automatic fields.
type DeviceInfo interface {
	Appearance() assigned.Appearance
	LESupportedFeatures() ble.LEFeatures
	TxPowerLevel() int8
}

type filler interface {
	automatic
	fill(DeviceInfo) AdStruct
}

// records is an ordered list of AD structures with unique slots enforced.
type records []AdStruct

// put replaces a record of the same unique slot in place, or appends.
func (rr records) put(s AdStruct) records {
	if s.Unique() {
		for i, o := range rr {
			if o.Unique() && o.Type().slot() == s.Type().slot() {
				out := append(records(nil), rr...)
				out[i] = s
				return out
			}
		}
	}
	return append(rr, s)
}

func (rr records) size() int {
	n := 0
	for _, s := range rr {
		n += s.EncodedSize()
	}
	return n
}

func (rr records) encode(b *codec.Buffer) (int, error) {
	if n := rr.size(); n > MaxEIRPacketLength {
		return 0, errors.Wrapf(ErrDataWillNotFit, "%d bytes", n)
	}
	for _, s := range rr {
		if a, ok := s.(automatic); ok && a.IsAutomatic() {
			return 0, errors.Wrap(ErrUnresolvedAutomatic, s.Type().String())
		}
	}
	return b.EncodeAll(rr.encoders()...)
}

func (rr records) encoders() []codec.Encoder {
	ee := make([]codec.Encoder, len(rr))
	for i, s := range rr {
		ee[i] = s
	}
	return ee
}

func (rr records) fill(d DeviceInfo) records {
	out := make(records, len(rr))
	for i, s := range rr {
		if f, ok := s.(filler); ok && f.IsAutomatic() {
			s = f.fill(d)
		}
		out[i] = s
	}
	return out
}

func (rr records) hasAutomatic() bool {
	for _, s := range rr {
		if a, ok := s.(automatic); ok && a.IsAutomatic() {
			return true
		}
	}
	return false
}

// AdvertisingData is the payload of LE Set Advertising Data.
type AdvertisingData struct {
	rr records
}

// Records returns the structures in packet order.
func (d AdvertisingData) Records() []AdStruct { return append([]AdStruct(nil), d.rr...) }

// HasAutomatic reports whether some field still needs FillAutomaticData.
func (d AdvertisingData) HasAutomatic() bool { return d.rr.hasAutomatic() }

// EncodedSize returns the packet size.
func (d AdvertisingData) EncodedSize() int { return d.rr.size() }

// Encode writes the packet. Nothing is written when the total exceeds
// MaxEIRPacketLength or an automatic field is unresolved.
func (d AdvertisingData) Encode(b *codec.Buffer) (int, error) { return d.rr.encode(b) }

// Bytes returns the encoded packet.
func (d AdvertisingData) Bytes() ([]byte, error) { return codec.Marshal(d) }

// FillAutomaticData returns a copy with automatic fields resolved from info.
func (d AdvertisingData) FillAutomaticData(info DeviceInfo) AdvertisingData {
	return AdvertisingData{rr: d.rr.fill(info)}
}

// ScanResponseData is the payload of LE Set Scan Response Data.
type ScanResponseData struct {
	rr records
}

// Records returns the structures in packet order.
func (d ScanResponseData) Records() []AdStruct { return append([]AdStruct(nil), d.rr...) }

// HasAutomatic reports whether some field still needs FillAutomaticData.
func (d ScanResponseData) HasAutomatic() bool { return d.rr.hasAutomatic() }

// EncodedSize returns the packet size.
func (d ScanResponseData) EncodedSize() int { return d.rr.size() }

// Encode writes the packet. Flags are rejected.
func (d ScanResponseData) Encode(b *codec.Buffer) (int, error) {
	for _, s := range d.rr {
		if s.Type() == TypeFlags {
			return 0, ErrFlagsInScanResponse
		}
	}
	return d.rr.encode(b)
}

// Bytes returns the encoded packet.
func (d ScanResponseData) Bytes() ([]byte, error) { return codec.Marshal(d) }

// FillAutomaticData returns a copy with automatic fields resolved from info.
func (d ScanResponseData) FillAutomaticData(info DeviceInfo) ScanResponseData {
	return ScanResponseData{rr: d.rr.fill(info)}
}

// Builder collects AD structures. Unique kinds overwrite an earlier record of
// the same kind in place; the others are appended. The first construction
// error is kept and returned by Build.
type Builder struct {
	rr  records
	err error
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// With adds any AD structure.
func (b *Builder) With(s AdStruct) *Builder {
	if b.err == nil {
		b.rr = b.rr.put(s)
	}
	return b
}

func (b *Builder) with(s AdStruct, err error) *Builder {
	if b.err != nil {
		return b
	}
	if err != nil {
		b.err = err
		return b
	}
	return b.With(s)
}

// WithFlags sets the flags.
func (b *Builder) WithFlags(f Flags) *Builder { return b.With(f) }

// WithServiceUUID16 sets the 16 bit service UUID list.
func (b *Builder) WithServiceUUID16(complete bool, uuids ...ble.UUID16) *Builder {
	return b.with(NewServiceUUID16(complete, uuids...))
}

// WithServiceUUID32 sets the 32 bit service UUID list.
func (b *Builder) WithServiceUUID32(complete bool, uuids ...ble.UUID32) *Builder {
	return b.with(NewServiceUUID32(complete, uuids...))
}

// WithServiceUUID128 sets the 128 bit service UUID list.
func (b *Builder) WithServiceUUID128(complete bool, uuids ...ble.UUID128) *Builder {
	return b.with(NewServiceUUID128(complete, uuids...))
}

// WithLocalName sets the local name.
func (b *Builder) WithLocalName(name string, complete bool) *Builder {
	return b.with(NewLocalName(name, complete))
}

// WithTxPowerLevel sets a fixed TX power level.
func (b *Builder) WithTxPowerLevel(dbm int8) *Builder {
	return b.with(NewTxPowerLevel(dbm))
}

// WithTxPowerLevelAuto sends the advertising TX power read from the controller.
func (b *Builder) WithTxPowerLevelAuto() *Builder { return b.With(AutoTxPowerLevel()) }

// WithAppearance sets a fixed appearance.
func (b *Builder) WithAppearance(a assigned.Appearance) *Builder {
	return b.With(NewAppearance(a))
}

// WithAppearanceAuto sends the appearance configured on the host.
func (b *Builder) WithAppearanceAuto() *Builder { return b.With(AutoAppearance()) }

// WithAdvertisingInterval sets the advertising interval structure.
func (b *Builder) WithAdvertisingInterval(i ble.AdvertisingInterval) *Builder {
	return b.With(NewAdvertisingInterval(i))
}

// WithPeripheralConnectionIntervalRange sets the preferred connection interval range.
func (b *Builder) WithPeripheralConnectionIntervalRange(r ble.ConnectionIntervalRange) *Builder {
	return b.With(NewPeripheralConnectionIntervalRange(r))
}

// WithPublicTargetAddress sets the public target addresses.
func (b *Builder) WithPublicTargetAddress(addrs ...ble.Address) *Builder {
	return b.with(NewPublicTargetAddress(addrs...))
}

// WithRandomTargetAddress sets the random target addresses.
func (b *Builder) WithRandomTargetAddress(addrs ...ble.Address) *Builder {
	return b.with(NewRandomTargetAddress(addrs...))
}

// WithLESupportedFeatures sets fixed LE features.
func (b *Builder) WithLESupportedFeatures(f ble.LEFeatures) *Builder {
	return b.With(NewLESupportedFeatures(f))
}

// WithLESupportedFeaturesAuto sends the LE features read from the controller.
func (b *Builder) WithLESupportedFeaturesAuto() *Builder {
	return b.With(AutoLESupportedFeatures())
}

// WithURI appends a URI.
func (b *Builder) WithURI(uri string) *Builder { return b.with(NewURI(uri)) }

// WithServiceSolicitationUUID16 appends a 16 bit solicitation list.
func (b *Builder) WithServiceSolicitationUUID16(uuids ...ble.UUID16) *Builder {
	return b.with(NewServiceSolicitationUUID16(uuids...))
}

// WithServiceSolicitationUUID32 appends a 32 bit solicitation list.
func (b *Builder) WithServiceSolicitationUUID32(uuids ...ble.UUID32) *Builder {
	return b.with(NewServiceSolicitationUUID32(uuids...))
}

// WithServiceSolicitationUUID128 appends a 128 bit solicitation list.
func (b *Builder) WithServiceSolicitationUUID128(uuids ...ble.UUID128) *Builder {
	return b.with(NewServiceSolicitationUUID128(uuids...))
}

// WithServiceData16 appends service data.
func (b *Builder) WithServiceData16(u ble.UUID16, data []byte) *Builder {
	return b.with(NewServiceData16(u, data))
}

// WithServiceData32 appends service data.
func (b *Builder) WithServiceData32(u ble.UUID32, data []byte) *Builder {
	return b.with(NewServiceData32(u, data))
}

// WithServiceData128 appends service data.
func (b *Builder) WithServiceData128(u ble.UUID128, data []byte) *Builder {
	return b.with(NewServiceData128(u, data))
}

// WithManufacturerSpecificData appends manufacturer data.
func (b *Builder) WithManufacturerSpecificData(company assigned.CompanyIdentifier, data []byte) *Builder {
	return b.with(NewManufacturerSpecificData(company, data))
}

// Build returns the advertising data.
func (b *Builder) Build() (AdvertisingData, error) {
	if b.err != nil {
		return AdvertisingData{}, b.err
	}
	return AdvertisingData{rr: append(records(nil), b.rr...)}, nil
}

// BuildScanResponse returns the collected structures as scan response data.
func (b *Builder) BuildScanResponse() (ScanResponseData, error) {
	if b.err != nil {
		return ScanResponseData{}, b.err
	}
	return ScanResponseData{rr: append(records(nil), b.rr...)}, nil
}

func parseRecords(p []byte) (records, error) {
	if len(p) > MaxEIRPacketLength {
		return nil, errors.Wrapf(ErrDataWillNotFit, "%d bytes", len(p))
	}
	ss, err := Parse(p)
	if err != nil {
		return nil, err
	}
	seen := map[Type]bool{}
	for _, s := range ss {
		if !s.Unique() {
			continue
		}
		k := s.Type().slot()
		if seen[k] {
			return nil, errors.Wrap(ErrDuplicateType, s.Type().String())
		}
		seen[k] = true
	}
	return ss, nil
}

// ParseAdvertisingData rebuilds advertising data from its encoded form.
func ParseAdvertisingData(p []byte) (AdvertisingData, error) {
	rr, err := parseRecords(p)
	if err != nil {
		return AdvertisingData{}, err
	}
	return AdvertisingData{rr: rr}, nil
}

// ParseScanResponseData rebuilds scan response data from its encoded form.
func ParseScanResponseData(p []byte) (ScanResponseData, error) {
	rr, err := parseRecords(p)
	if err != nil {
		return ScanResponseData{}, err
	}
	for _, s := range rr {
		if s.Type() == TypeFlags {
			return ScanResponseData{}, ErrFlagsInScanResponse
		}
	}
	return ScanResponseData{rr: rr}, nil
}
