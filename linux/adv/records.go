package adv

import (
	"unicode/utf8"

	"github.com/bletio/ble"
	"github.com/bletio/ble/assigned"
	"github.com/bletio/ble/codec"
	"github.com/pkg/errors"
)

// Flags is the Flags AD structure. Bits without a name are sent as given.
type Flags uint8

// Flag bits [CSS, Part A, 1.3].
const (
	FlagLELimitedDiscoverable         Flags = 0x01
	FlagLEGeneralDiscoverable         Flags = 0x02
	FlagBREDRNotSupported             Flags = 0x04
	FlagSimultaneousLEBREDRController Flags = 0x08
	FlagSimultaneousLEBREDRHost       Flags = 0x10
)

// Contains reports whether all bits of o are set.
func (f Flags) Contains(o Flags) bool { return f&o == o }

// Type returns TypeFlags.
func (f Flags) Type() Type { return TypeFlags }

// Unique returns true.
func (f Flags) Unique() bool { return true }

// EncodedSize returns 3.
func (f Flags) EncodedSize() int { return encodedSize(f) }

// Encode writes the structure.
func (f Flags) Encode(b *codec.Buffer) (int, error) { return encode(b, f) }

func (f Flags) payloadSize() int { return 1 }

func (f Flags) writePayload(b *codec.Buffer) { b.TryPush(byte(f)) }

// LocalName is the shortened or complete local name.
type LocalName struct {
	name     string
	complete bool
}

// NewLocalName validates name.
func NewLocalName(name string, complete bool) (LocalName, error) {
	if !utf8.ValidString(name) {
		return LocalName{}, errors.Wrap(ErrInvalidName, "not valid UTF-8")
	}
	if !complete && name == "" {
		return LocalName{}, errors.Wrap(ErrInvalidName, "shortened name must not be empty")
	}
	if err := checkPayload(TypeCompleteLocalName, len(name)); err != nil {
		return LocalName{}, err
	}
	return LocalName{name: name, complete: complete}, nil
}

// Name returns the name.
func (n LocalName) Name() string { return n.name }

// Complete reports whether this is the complete name.
func (n LocalName) Complete() bool { return n.complete }

// Type returns the complete or shortened name type.
func (n LocalName) Type() Type {
	if n.complete {
		return TypeCompleteLocalName
	}
	return TypeShortenedLocalName
}

// Unique returns true.
func (n LocalName) Unique() bool { return true }

// EncodedSize returns the size of the structure.
func (n LocalName) EncodedSize() int { return encodedSize(n) }

// Encode writes the structure.
func (n LocalName) Encode(b *codec.Buffer) (int, error) { return encode(b, n) }

func (n LocalName) payloadSize() int { return len(n.name) }

func (n LocalName) writePayload(b *codec.Buffer) { b.CopyFromSlice([]byte(n.name)) }

// TxPowerLevel is the transmitted power level in dBm.
type TxPowerLevel struct {
	level int8
	auto  bool
}

// NewTxPowerLevel accepts -127..127 dBm.
func NewTxPowerLevel(dbm int8) (TxPowerLevel, error) {
	if dbm == -128 {
		return TxPowerLevel{}, errors.Wrapf(ErrInvalidTxPower, "%d dBm", dbm)
	}
	return TxPowerLevel{level: dbm}, nil
}

// AutoTxPowerLevel is filled with the advertising TX power read from the
// controller.
func AutoTxPowerLevel() TxPowerLevel { return TxPowerLevel{auto: true} }

// Level returns the level in dBm.
func (p TxPowerLevel) Level() int8 { return p.level }

// IsAutomatic reports whether the level is still to be filled.
func (p TxPowerLevel) IsAutomatic() bool { return p.auto }

// Type returns TypeTxPowerLevel.
func (p TxPowerLevel) Type() Type { return TypeTxPowerLevel }

// Unique returns true.
func (p TxPowerLevel) Unique() bool { return true }

// EncodedSize returns 3.
func (p TxPowerLevel) EncodedSize() int { return encodedSize(p) }

// Encode writes the structure.
func (p TxPowerLevel) Encode(b *codec.Buffer) (int, error) { return encode(b, p) }

func (p TxPowerLevel) payloadSize() int { return 1 }

func (p TxPowerLevel) writePayload(b *codec.Buffer) { b.TryPush(byte(p.level)) }

func (p TxPowerLevel) fill(d DeviceInfo) AdStruct {
	lvl := d.TxPowerLevel()
	if lvl == -128 {
		lvl = -127
	}
	return TxPowerLevel{level: lvl}
}

// Appearance is the external appearance of the device.
type Appearance struct {
	a    assigned.Appearance
	auto bool
}

// NewAppearance wraps a.
func NewAppearance(a assigned.Appearance) Appearance { return Appearance{a: a} }

// AutoAppearance is filled with the appearance configured on the host.
func AutoAppearance() Appearance { return Appearance{auto: true} }

// Appearance returns the value.
func (a Appearance) Appearance() assigned.Appearance { return a.a }

// IsAutomatic reports whether the value is still to be filled.
func (a Appearance) IsAutomatic() bool { return a.auto }

// Type returns TypeAppearance.
func (a Appearance) Type() Type { return TypeAppearance }

// Unique returns true.
func (a Appearance) Unique() bool { return true }

// EncodedSize returns 4.
func (a Appearance) EncodedSize() int { return encodedSize(a) }

// Encode writes the structure.
func (a Appearance) Encode(b *codec.Buffer) (int, error) { return encode(b, a) }

func (a Appearance) payloadSize() int { return 2 }

func (a Appearance) writePayload(b *codec.Buffer) { b.EncodeLEU16(uint16(a.a)) }

func (a Appearance) fill(d DeviceInfo) AdStruct { return Appearance{a: d.Appearance()} }

// AdvertisingInterval is the Advertising Interval AD structure.
type AdvertisingInterval struct {
	i ble.AdvertisingInterval
}

// NewAdvertisingInterval wraps a validated interval.
func NewAdvertisingInterval(i ble.AdvertisingInterval) AdvertisingInterval {
	return AdvertisingInterval{i: i}
}

// Interval returns the value.
func (a AdvertisingInterval) Interval() ble.AdvertisingInterval { return a.i }

// Type returns TypeAdvertisingInterval.
func (a AdvertisingInterval) Type() Type { return TypeAdvertisingInterval }

// Unique returns true.
func (a AdvertisingInterval) Unique() bool { return true }

// EncodedSize returns 4.
func (a AdvertisingInterval) EncodedSize() int { return encodedSize(a) }

// Encode writes the structure.
func (a AdvertisingInterval) Encode(b *codec.Buffer) (int, error) { return encode(b, a) }

func (a AdvertisingInterval) payloadSize() int { return 2 }

func (a AdvertisingInterval) writePayload(b *codec.Buffer) { a.i.Encode(b) }

// PeripheralConnectionIntervalRange is the preferred connection interval
// range of the peripheral.
type PeripheralConnectionIntervalRange struct {
	r ble.ConnectionIntervalRange
}

// NewPeripheralConnectionIntervalRange wraps a validated range.
func NewPeripheralConnectionIntervalRange(r ble.ConnectionIntervalRange) PeripheralConnectionIntervalRange {
	return PeripheralConnectionIntervalRange{r: r}
}

// Range returns the value.
func (p PeripheralConnectionIntervalRange) Range() ble.ConnectionIntervalRange { return p.r }

// Type returns TypePeripheralConnectionIntervalRange.
func (p PeripheralConnectionIntervalRange) Type() Type {
	return TypePeripheralConnectionIntervalRange
}

// Unique returns true.
func (p PeripheralConnectionIntervalRange) Unique() bool { return true }

// EncodedSize returns 6.
func (p PeripheralConnectionIntervalRange) EncodedSize() int { return encodedSize(p) }

// Encode writes the structure.
func (p PeripheralConnectionIntervalRange) Encode(b *codec.Buffer) (int, error) {
	return encode(b, p)
}

func (p PeripheralConnectionIntervalRange) payloadSize() int { return p.r.EncodedSize() }

func (p PeripheralConnectionIntervalRange) writePayload(b *codec.Buffer) { p.r.Encode(b) }

// LESupportedFeatures advertises the LE features of the controller.
// Trailing zero octets are not sent, except that a parsed record keeps the
// octet count it was received with.
type LESupportedFeatures struct {
	f      ble.LEFeatures
	octets int
	auto   bool
}

// NewLESupportedFeatures wraps f.
func NewLESupportedFeatures(f ble.LEFeatures) LESupportedFeatures {
	return LESupportedFeatures{f: f}
}

// AutoLESupportedFeatures is filled with the features read from the controller.
func AutoLESupportedFeatures() LESupportedFeatures { return LESupportedFeatures{auto: true} }

// Features returns the value.
func (l LESupportedFeatures) Features() ble.LEFeatures { return l.f }

// IsAutomatic reports whether the value is still to be filled.
func (l LESupportedFeatures) IsAutomatic() bool { return l.auto }

// Type returns TypeLESupportedFeatures.
func (l LESupportedFeatures) Type() Type { return TypeLESupportedFeatures }

// Unique returns true.
func (l LESupportedFeatures) Unique() bool { return true }

// EncodedSize returns the size of the structure.
func (l LESupportedFeatures) EncodedSize() int { return encodedSize(l) }

// Encode writes the structure.
func (l LESupportedFeatures) Encode(b *codec.Buffer) (int, error) { return encode(b, l) }

// payloadSize keeps at least one octet.
func (l LESupportedFeatures) payloadSize() int {
	n := 8
	for n > 1 && uint64(l.f)>>(8*uint(n-1)) == 0 {
		n--
	}
	if l.octets > n {
		return l.octets
	}
	return n
}

func (l LESupportedFeatures) writePayload(b *codec.Buffer) {
	for i := 0; i < l.payloadSize(); i++ {
		b.TryPush(byte(uint64(l.f) >> (8 * uint(i))))
	}
}

func (l LESupportedFeatures) fill(d DeviceInfo) AdStruct {
	return LESupportedFeatures{f: d.LESupportedFeatures()}
}

// ManufacturerSpecificData carries vendor data after a company identifier.
type ManufacturerSpecificData struct {
	company assigned.CompanyIdentifier
	data    []byte
}

// NewManufacturerSpecificData accepts up to MaxManufacturerDataLength bytes.
func NewManufacturerSpecificData(company assigned.CompanyIdentifier, data []byte) (ManufacturerSpecificData, error) {
	if len(data) > MaxManufacturerDataLength {
		return ManufacturerSpecificData{}, errors.Wrapf(ErrDataTooLong,
			"manufacturer data %d bytes, max %d", len(data), MaxManufacturerDataLength)
	}
	d := make([]byte, len(data))
	copy(d, data)
	return ManufacturerSpecificData{company: company, data: d}, nil
}

// Company returns the company identifier.
func (m ManufacturerSpecificData) Company() assigned.CompanyIdentifier { return m.company }

// Data returns a copy of the data.
func (m ManufacturerSpecificData) Data() []byte { return append([]byte(nil), m.data...) }

// Type returns TypeManufacturerSpecificData.
func (m ManufacturerSpecificData) Type() Type { return TypeManufacturerSpecificData }

// Unique returns false.
func (m ManufacturerSpecificData) Unique() bool { return false }

// EncodedSize returns the size of the structure.
func (m ManufacturerSpecificData) EncodedSize() int { return encodedSize(m) }

// Encode writes the structure.
func (m ManufacturerSpecificData) Encode(b *codec.Buffer) (int, error) { return encode(b, m) }

func (m ManufacturerSpecificData) payloadSize() int { return 2 + len(m.data) }

func (m ManufacturerSpecificData) writePayload(b *codec.Buffer) {
	b.EncodeLEU16(uint16(m.company))
	b.CopyFromSlice(m.data)
}
