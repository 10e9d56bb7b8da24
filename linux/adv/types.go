// Package adv builds and parses the AD structures carried in advertising and
// scan response data. Refer to Supplement to Bluetooth Core Specification,
// Part A, and Core Specification Vol 3, Part C, 11.
package adv

import (
	"fmt"

	"github.com/bletio/ble/codec"
	"github.com/pkg/errors"
)

// Packet limits.
const (
	MaxEIRPacketLength = 31
	// MaxPayloadLength is the payload of a single AD structure filling a packet.
	MaxPayloadLength = MaxEIRPacketLength - 2
	// MaxManufacturerDataLength leaves room for the company identifier.
	MaxManufacturerDataLength = MaxPayloadLength - 2
)

// Errors.
var (
	ErrDataTooLong          = errors.New("data too long for AD structure")
	ErrDataWillNotFit       = errors.New("data will not fit in advertising packet")
	ErrEmptyIncompleteList  = errors.New("empty list must be complete")
	ErrEmptyList            = errors.New("list must not be empty")
	ErrInvalidURI           = errors.New("invalid URI")
	ErrInvalidName          = errors.New("invalid local name")
	ErrInvalidTxPower       = errors.New("tx power level out of range")
	ErrInvalidTargetAddress = errors.New("invalid target address")
	ErrFlagsInScanResponse  = errors.New("flags not allowed in scan response data")
	ErrDuplicateType        = errors.New("duplicate unique AD type")
	ErrUnknownType          = errors.New("unknown AD type")
	ErrMalformed            = errors.New("malformed AD structure")
	ErrUnresolvedAutomatic  = errors.New("automatic field not filled")
)

// Type is an AD type code [Assigned Numbers, 2.3].
type Type uint8

// AD types.
const (
	TypeFlags                             Type = 0x01
	TypeIncompleteServiceUUID16           Type = 0x02
	TypeCompleteServiceUUID16             Type = 0x03
	TypeIncompleteServiceUUID32           Type = 0x04
	TypeCompleteServiceUUID32             Type = 0x05
	TypeIncompleteServiceUUID128          Type = 0x06
	TypeCompleteServiceUUID128            Type = 0x07
	TypeShortenedLocalName                Type = 0x08
	TypeCompleteLocalName                 Type = 0x09
	TypeTxPowerLevel                      Type = 0x0A
	TypePeripheralConnectionIntervalRange Type = 0x12
	TypeServiceSolicitationUUID16         Type = 0x14
	TypeServiceSolicitationUUID128        Type = 0x15
	TypeServiceData16                     Type = 0x16
	TypePublicTargetAddress               Type = 0x17
	TypeRandomTargetAddress               Type = 0x18
	TypeAppearance                        Type = 0x19
	TypeAdvertisingInterval               Type = 0x1A
	TypeServiceSolicitationUUID32         Type = 0x1F
	TypeServiceData32                     Type = 0x20
	TypeServiceData128                    Type = 0x21
	TypeURI                               Type = 0x24
	TypeLESupportedFeatures               Type = 0x27
	TypeManufacturerSpecificData          Type = 0xFF
)

var typeNames = map[Type]string{
	TypeFlags:                             "Flags",
	TypeIncompleteServiceUUID16:           "IncompleteServiceUUID16",
	TypeCompleteServiceUUID16:             "CompleteServiceUUID16",
	TypeIncompleteServiceUUID32:           "IncompleteServiceUUID32",
	TypeCompleteServiceUUID32:             "CompleteServiceUUID32",
	TypeIncompleteServiceUUID128:          "IncompleteServiceUUID128",
	TypeCompleteServiceUUID128:            "CompleteServiceUUID128",
	TypeShortenedLocalName:                "ShortenedLocalName",
	TypeCompleteLocalName:                 "CompleteLocalName",
	TypeTxPowerLevel:                      "TxPowerLevel",
	TypePeripheralConnectionIntervalRange: "PeripheralConnectionIntervalRange",
	TypeServiceSolicitationUUID16:         "ServiceSolicitationUUID16",
	TypeServiceSolicitationUUID128:        "ServiceSolicitationUUID128",
	TypeServiceData16:                     "ServiceData16",
	TypePublicTargetAddress:               "PublicTargetAddress",
	TypeRandomTargetAddress:               "RandomTargetAddress",
	TypeAppearance:                        "Appearance",
	TypeAdvertisingInterval:               "AdvertisingInterval",
	TypeServiceSolicitationUUID32:         "ServiceSolicitationUUID32",
	TypeServiceData32:                     "ServiceData32",
	TypeServiceData128:                    "ServiceData128",
	TypeURI:                               "URI",
	TypeLESupportedFeatures:               "LESupportedFeatures",
	TypeManufacturerSpecificData:          "ManufacturerSpecificData",
}

func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("AD(0x%02X)", uint8(t))
}

// slot maps complete and incomplete (or shortened) variants of the same
// information onto one key. At most one record per unique slot is allowed in
// a packet.
func (t Type) slot() Type {
	switch t {
	case TypeCompleteServiceUUID16, TypeCompleteServiceUUID32, TypeCompleteServiceUUID128, TypeCompleteLocalName:
		return t - 1
	}
	return t
}

// AdStruct is one [length][type][payload] record.
type AdStruct interface {
	codec.Encoder
	Type() Type
	// Unique reports whether at most one record of this type may appear in
	// a packet.
	Unique() bool
}

// payloadWriter is implemented by every record of this package. Payloads are
// validated at construction, so writePayload only runs once the space is
// known to be available.
type payloadWriter interface {
	Type() Type
	payloadSize() int
	writePayload(b *codec.Buffer)
}

type automatic interface {
	IsAutomatic() bool
}

func encodedSize(p payloadWriter) int {
	return 2 + p.payloadSize()
}

func encode(b *codec.Buffer, p payloadWriter) (int, error) {
	if a, ok := p.(automatic); ok && a.IsAutomatic() {
		return 0, errors.Wrap(ErrUnresolvedAutomatic, p.Type().String())
	}
	n := encodedSize(p)
	if b.Remaining() < n {
		return 0, errors.Wrapf(codec.ErrBufferFull, "%s needs %d bytes, %d left", p.Type(), n, b.Remaining())
	}
	b.TryPush(byte(n - 1))
	b.TryPush(byte(p.Type()))
	p.writePayload(b)
	return n, nil
}

func checkPayload(t Type, n int) error {
	if n > MaxPayloadLength {
		return errors.Wrapf(ErrDataTooLong, "%s payload %d bytes, max %d", t, n, MaxPayloadLength)
	}
	return nil
}
