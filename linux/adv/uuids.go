package adv

import (
	"github.com/bletio/ble"
	"github.com/bletio/ble/codec"
	"github.com/pkg/errors"
)

func checkUUIDList(t Type, n, width int, complete bool) error {
	if n == 0 && !complete {
		return errors.Wrap(ErrEmptyIncompleteList, t.String())
	}
	return checkPayload(t, n*width)
}

func serviceListType(base Type, complete bool) Type {
	if complete {
		return base + 1
	}
	return base
}

// ServiceUUID16 is a complete or incomplete list of 16 bit service UUIDs.
// An empty complete list states that the device has no such services.
type ServiceUUID16 struct {
	uuids    []ble.UUID16
	complete bool
}

// NewServiceUUID16 validates the list.
func NewServiceUUID16(complete bool, uuids ...ble.UUID16) (ServiceUUID16, error) {
	if err := checkUUIDList(serviceListType(TypeIncompleteServiceUUID16, complete), len(uuids), 2, complete); err != nil {
		return ServiceUUID16{}, err
	}
	return ServiceUUID16{uuids: append([]ble.UUID16(nil), uuids...), complete: complete}, nil
}

// UUIDs returns a copy of the list.
func (s ServiceUUID16) UUIDs() []ble.UUID16 { return append([]ble.UUID16(nil), s.uuids...) }

// Complete reports whether the list is complete.
func (s ServiceUUID16) Complete() bool { return s.complete }

// Type returns the complete or incomplete list type.
func (s ServiceUUID16) Type() Type { return serviceListType(TypeIncompleteServiceUUID16, s.complete) }

// Unique returns true.
func (s ServiceUUID16) Unique() bool { return true }

// EncodedSize returns the size of the structure.
func (s ServiceUUID16) EncodedSize() int { return encodedSize(s) }

// Encode writes the structure.
func (s ServiceUUID16) Encode(b *codec.Buffer) (int, error) { return encode(b, s) }

func (s ServiceUUID16) payloadSize() int { return 2 * len(s.uuids) }

func (s ServiceUUID16) writePayload(b *codec.Buffer) {
	for _, u := range s.uuids {
		u.Encode(b)
	}
}

// ServiceUUID32 is a complete or incomplete list of 32 bit service UUIDs.
type ServiceUUID32 struct {
	uuids    []ble.UUID32
	complete bool
}

// NewServiceUUID32 validates the list.
func NewServiceUUID32(complete bool, uuids ...ble.UUID32) (ServiceUUID32, error) {
	if err := checkUUIDList(serviceListType(TypeIncompleteServiceUUID32, complete), len(uuids), 4, complete); err != nil {
		return ServiceUUID32{}, err
	}
	return ServiceUUID32{uuids: append([]ble.UUID32(nil), uuids...), complete: complete}, nil
}

// UUIDs returns a copy of the list.
func (s ServiceUUID32) UUIDs() []ble.UUID32 { return append([]ble.UUID32(nil), s.uuids...) }

// Complete reports whether the list is complete.
func (s ServiceUUID32) Complete() bool { return s.complete }

// Type returns the complete or incomplete list type.
func (s ServiceUUID32) Type() Type { return serviceListType(TypeIncompleteServiceUUID32, s.complete) }

// Unique returns true.
func (s ServiceUUID32) Unique() bool { return true }

// EncodedSize returns the size of the structure.
func (s ServiceUUID32) EncodedSize() int { return encodedSize(s) }

// Encode writes the structure.
func (s ServiceUUID32) Encode(b *codec.Buffer) (int, error) { return encode(b, s) }

func (s ServiceUUID32) payloadSize() int { return 4 * len(s.uuids) }

func (s ServiceUUID32) writePayload(b *codec.Buffer) {
	for _, u := range s.uuids {
		u.Encode(b)
	}
}

// ServiceUUID128 is a complete or incomplete list of 128 bit service UUIDs.
type ServiceUUID128 struct {
	uuids    []ble.UUID128
	complete bool
}

// NewServiceUUID128 validates the list.
func NewServiceUUID128(complete bool, uuids ...ble.UUID128) (ServiceUUID128, error) {
	if err := checkUUIDList(serviceListType(TypeIncompleteServiceUUID128, complete), len(uuids), 16, complete); err != nil {
		return ServiceUUID128{}, err
	}
	return ServiceUUID128{uuids: append([]ble.UUID128(nil), uuids...), complete: complete}, nil
}

// UUIDs returns a copy of the list.
func (s ServiceUUID128) UUIDs() []ble.UUID128 { return append([]ble.UUID128(nil), s.uuids...) }

// Complete reports whether the list is complete.
func (s ServiceUUID128) Complete() bool { return s.complete }

// Type returns the complete or incomplete list type.
func (s ServiceUUID128) Type() Type {
	return serviceListType(TypeIncompleteServiceUUID128, s.complete)
}

// Unique returns true.
func (s ServiceUUID128) Unique() bool { return true }

// EncodedSize returns the size of the structure.
func (s ServiceUUID128) EncodedSize() int { return encodedSize(s) }

// Encode writes the structure.
func (s ServiceUUID128) Encode(b *codec.Buffer) (int, error) { return encode(b, s) }

func (s ServiceUUID128) payloadSize() int { return 16 * len(s.uuids) }

func (s ServiceUUID128) writePayload(b *codec.Buffer) {
	for _, u := range s.uuids {
		u.Encode(b)
	}
}

func checkSolicitation(t Type, n, width int) error {
	if n == 0 {
		return errors.Wrap(ErrEmptyList, t.String())
	}
	return checkPayload(t, n*width)
}

// ServiceSolicitationUUID16 lists 16 bit services the device wants a
// central to offer.
type ServiceSolicitationUUID16 struct {
	uuids []ble.UUID16
}

// NewServiceSolicitationUUID16 validates the list.
func NewServiceSolicitationUUID16(uuids ...ble.UUID16) (ServiceSolicitationUUID16, error) {
	if err := checkSolicitation(TypeServiceSolicitationUUID16, len(uuids), 2); err != nil {
		return ServiceSolicitationUUID16{}, err
	}
	return ServiceSolicitationUUID16{uuids: append([]ble.UUID16(nil), uuids...)}, nil
}

// UUIDs returns a copy of the list.
func (s ServiceSolicitationUUID16) UUIDs() []ble.UUID16 {
	return append([]ble.UUID16(nil), s.uuids...)
}

// Type returns TypeServiceSolicitationUUID16.
func (s ServiceSolicitationUUID16) Type() Type { return TypeServiceSolicitationUUID16 }

// Unique returns false.
func (s ServiceSolicitationUUID16) Unique() bool { return false }

// EncodedSize returns the size of the structure.
func (s ServiceSolicitationUUID16) EncodedSize() int { return encodedSize(s) }

// Encode writes the structure.
func (s ServiceSolicitationUUID16) Encode(b *codec.Buffer) (int, error) { return encode(b, s) }

func (s ServiceSolicitationUUID16) payloadSize() int { return 2 * len(s.uuids) }

func (s ServiceSolicitationUUID16) writePayload(b *codec.Buffer) {
	for _, u := range s.uuids {
		u.Encode(b)
	}
}

// ServiceSolicitationUUID32 lists 32 bit solicited services.
type ServiceSolicitationUUID32 struct {
	uuids []ble.UUID32
}

// NewServiceSolicitationUUID32 validates the list.
func NewServiceSolicitationUUID32(uuids ...ble.UUID32) (ServiceSolicitationUUID32, error) {
	if err := checkSolicitation(TypeServiceSolicitationUUID32, len(uuids), 4); err != nil {
		return ServiceSolicitationUUID32{}, err
	}
	return ServiceSolicitationUUID32{uuids: append([]ble.UUID32(nil), uuids...)}, nil
}

// UUIDs returns a copy of the list.
func (s ServiceSolicitationUUID32) UUIDs() []ble.UUID32 {
	return append([]ble.UUID32(nil), s.uuids...)
}

// Type returns TypeServiceSolicitationUUID32.
func (s ServiceSolicitationUUID32) Type() Type { return TypeServiceSolicitationUUID32 }

// Unique returns false.
func (s ServiceSolicitationUUID32) Unique() bool { return false }

// EncodedSize returns the size of the structure.
func (s ServiceSolicitationUUID32) EncodedSize() int { return encodedSize(s) }

// Encode writes the structure.
func (s ServiceSolicitationUUID32) Encode(b *codec.Buffer) (int, error) { return encode(b, s) }

func (s ServiceSolicitationUUID32) payloadSize() int { return 4 * len(s.uuids) }

func (s ServiceSolicitationUUID32) writePayload(b *codec.Buffer) {
	for _, u := range s.uuids {
		u.Encode(b)
	}
}

// ServiceSolicitationUUID128 lists 128 bit solicited services.
type ServiceSolicitationUUID128 struct {
	uuids []ble.UUID128
}

// NewServiceSolicitationUUID128 validates the list.
func NewServiceSolicitationUUID128(uuids ...ble.UUID128) (ServiceSolicitationUUID128, error) {
	if err := checkSolicitation(TypeServiceSolicitationUUID128, len(uuids), 16); err != nil {
		return ServiceSolicitationUUID128{}, err
	}
	return ServiceSolicitationUUID128{uuids: append([]ble.UUID128(nil), uuids...)}, nil
}

// UUIDs returns a copy of the list.
func (s ServiceSolicitationUUID128) UUIDs() []ble.UUID128 {
	return append([]ble.UUID128(nil), s.uuids...)
}

// Type returns TypeServiceSolicitationUUID128.
func (s ServiceSolicitationUUID128) Type() Type { return TypeServiceSolicitationUUID128 }

// Unique returns false.
func (s ServiceSolicitationUUID128) Unique() bool { return false }

// EncodedSize returns the size of the structure.
func (s ServiceSolicitationUUID128) EncodedSize() int { return encodedSize(s) }

// Encode writes the structure.
func (s ServiceSolicitationUUID128) Encode(b *codec.Buffer) (int, error) { return encode(b, s) }

func (s ServiceSolicitationUUID128) payloadSize() int { return 16 * len(s.uuids) }

func (s ServiceSolicitationUUID128) writePayload(b *codec.Buffer) {
	for _, u := range s.uuids {
		u.Encode(b)
	}
}

func checkServiceData(t Type, width, n int) error {
	if width+n > MaxPayloadLength {
		return errors.Wrapf(ErrDataTooLong, "%s data %d bytes, max %d", t, n, MaxPayloadLength-width)
	}
	return nil
}

// ServiceData16 is data associated with a 16 bit service UUID.
type ServiceData16 struct {
	uuid ble.UUID16
	data []byte
}

// NewServiceData16 accepts up to 27 bytes of data.
func NewServiceData16(u ble.UUID16, data []byte) (ServiceData16, error) {
	if err := checkServiceData(TypeServiceData16, 2, len(data)); err != nil {
		return ServiceData16{}, err
	}
	return ServiceData16{uuid: u, data: append([]byte(nil), data...)}, nil
}

// UUID returns the service UUID.
func (s ServiceData16) UUID() ble.UUID16 { return s.uuid }

// Data returns a copy of the data.
func (s ServiceData16) Data() []byte { return append([]byte(nil), s.data...) }

// Type returns TypeServiceData16.
func (s ServiceData16) Type() Type { return TypeServiceData16 }

// Unique returns false.
func (s ServiceData16) Unique() bool { return false }

// EncodedSize returns the size of the structure.
func (s ServiceData16) EncodedSize() int { return encodedSize(s) }

// Encode writes the structure.
func (s ServiceData16) Encode(b *codec.Buffer) (int, error) { return encode(b, s) }

func (s ServiceData16) payloadSize() int { return 2 + len(s.data) }

func (s ServiceData16) writePayload(b *codec.Buffer) {
	s.uuid.Encode(b)
	b.CopyFromSlice(s.data)
}

// ServiceData32 is data associated with a 32 bit service UUID.
type ServiceData32 struct {
	uuid ble.UUID32
	data []byte
}

// NewServiceData32 accepts up to 25 bytes of data.
func NewServiceData32(u ble.UUID32, data []byte) (ServiceData32, error) {
	if err := checkServiceData(TypeServiceData32, 4, len(data)); err != nil {
		return ServiceData32{}, err
	}
	return ServiceData32{uuid: u, data: append([]byte(nil), data...)}, nil
}

// UUID returns the service UUID.
func (s ServiceData32) UUID() ble.UUID32 { return s.uuid }

// Data returns a copy of the data.
func (s ServiceData32) Data() []byte { return append([]byte(nil), s.data...) }

// Type returns TypeServiceData32.
func (s ServiceData32) Type() Type { return TypeServiceData32 }

// Unique returns false.
func (s ServiceData32) Unique() bool { return false }

// EncodedSize returns the size of the structure.
func (s ServiceData32) EncodedSize() int { return encodedSize(s) }

// Encode writes the structure.
func (s ServiceData32) Encode(b *codec.Buffer) (int, error) { return encode(b, s) }

func (s ServiceData32) payloadSize() int { return 4 + len(s.data) }

func (s ServiceData32) writePayload(b *codec.Buffer) {
	s.uuid.Encode(b)
	b.CopyFromSlice(s.data)
}

// ServiceData128 is data associated with a 128 bit service UUID.
type ServiceData128 struct {
	uuid ble.UUID128
	data []byte
}

// NewServiceData128 accepts up to 13 bytes of data.
func NewServiceData128(u ble.UUID128, data []byte) (ServiceData128, error) {
	if err := checkServiceData(TypeServiceData128, 16, len(data)); err != nil {
		return ServiceData128{}, err
	}
	return ServiceData128{uuid: u, data: append([]byte(nil), data...)}, nil
}

// UUID returns the service UUID.
func (s ServiceData128) UUID() ble.UUID128 { return s.uuid }

// Data returns a copy of the data.
func (s ServiceData128) Data() []byte { return append([]byte(nil), s.data...) }

// Type returns TypeServiceData128.
func (s ServiceData128) Type() Type { return TypeServiceData128 }

// Unique returns false.
func (s ServiceData128) Unique() bool { return false }

// EncodedSize returns the size of the structure.
func (s ServiceData128) EncodedSize() int { return encodedSize(s) }

// Encode writes the structure.
func (s ServiceData128) Encode(b *codec.Buffer) (int, error) { return encode(b, s) }

func (s ServiceData128) payloadSize() int { return 16 + len(s.data) }

func (s ServiceData128) writePayload(b *codec.Buffer) {
	s.uuid.Encode(b)
	b.CopyFromSlice(s.data)
}
