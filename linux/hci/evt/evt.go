// Package evt decodes and encodes the HCI events the host consumes
// [Vol 4, Part E, 7.7].
package evt

import (
	"fmt"

	"github.com/bletio/ble/codec"
	"github.com/bletio/ble/linux/hci/cmd"
	"github.com/pkg/errors"
)

// PktTypeEvent is the HCI packet indicator of an event packet.
const PktTypeEvent uint8 = 0x04

// HeaderLength is the size of indicator, event code and length fields.
const HeaderLength = 3

// MaxParamsLength is the largest parameter block an event can carry.
const MaxParamsLength = 255

// Event codes.
const (
	DisconnectionCompleteCode uint8 = 0x05
	CommandCompleteCode       uint8 = 0x0E
	CommandStatusCode         uint8 = 0x0F
	HardwareErrorCode         uint8 = 0x10
	DataBufferOverflowCode    uint8 = 0x1A
)

// Errors.
var (
	ErrNotEvent       = errors.New("not an event packet")
	ErrLengthMismatch = errors.New("event length mismatch")
)

// Event is a decoded HCI event. Its codec.Encoder methods cover the
// parameter block only.
type Event interface {
	codec.Encoder
	fmt.Stringer
	Code() uint8
}

type decoder func(p []byte) (Event, error)

var decoders = map[uint8]decoder{
	DisconnectionCompleteCode: decodeDisconnectionComplete,
	CommandCompleteCode:       decodeCommandComplete,
	CommandStatusCode:         decodeCommandStatus,
	HardwareErrorCode:         decodeHardwareError,
	DataBufferOverflowCode:    decodeDataBufferOverflow,
}

// Parse decodes an event packet [indicator][code][length][parameters].
// The declared length must match the bytes present, and each known event
// must consume its parameters exactly. Unknown codes yield Unsupported.
func Parse(b []byte) (Event, error) {
	r := codec.NewReader(b)
	typ, err := r.Byte()
	if err != nil {
		return nil, errors.Wrap(err, "event indicator")
	}
	if typ != PktTypeEvent {
		return nil, errors.Wrapf(ErrNotEvent, "indicator 0x%02X", typ)
	}
	code, err := r.Byte()
	if err != nil {
		return nil, errors.Wrap(err, "event code")
	}
	n, err := r.Byte()
	if err != nil {
		return nil, errors.Wrap(err, "event length")
	}
	if int(n) != r.Remaining() {
		return nil, errors.Wrapf(ErrLengthMismatch, "event 0x%02X declares %d bytes, has %d", code, n, r.Remaining())
	}
	return ParseParams(code, r.Rest())
}

// ParseParams decodes the parameter block of an event with the given code.
func ParseParams(code uint8, p []byte) (Event, error) {
	dec, ok := decoders[code]
	if !ok {
		return &Unsupported{EventCode: code, Params: append([]byte(nil), p...)}, nil
	}
	e, err := dec(p)
	if err != nil {
		return nil, errors.Wrapf(err, "event 0x%02X", code)
	}
	return e, nil
}

// Encode writes the event packet to b. Nothing is left in b on failure.
func Encode(e Event, b *codec.Buffer) (int, error) {
	n := e.EncodedSize()
	if n > MaxParamsLength {
		return 0, errors.Errorf("%s: %d parameter bytes", e, n)
	}
	if b.Remaining() < HeaderLength+n {
		return 0, errors.Wrapf(codec.ErrBufferFull, "%s needs %d bytes, %d left", e, HeaderLength+n, b.Remaining())
	}
	start := b.Len()
	b.TryPush(PktTypeEvent)
	b.TryPush(e.Code())
	b.TryPush(uint8(n))
	if _, err := e.Encode(b); err != nil {
		b.Truncate(start)
		return 0, err
	}
	return HeaderLength + n, nil
}

// Marshal returns the event packet.
func Marshal(e Event) ([]byte, error) {
	b := codec.New(HeaderLength + e.EncodedSize())
	if _, err := Encode(e, b); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// CommandComplete implements Command Complete (0x0E) [Vol 4, Part E, 7.7.14].
type CommandComplete struct {
	NumHCICommandPackets uint8
	CommandOpcode        uint16
	ReturnParameters     cmd.CommandRP
}

// Code returns CommandCompleteCode.
func (e *CommandComplete) Code() uint8 { return CommandCompleteCode }

func (e *CommandComplete) String() string {
	return fmt.Sprintf("Command Complete (0x0E) opcode 0x%04X", e.CommandOpcode)
}

// EncodedSize returns the parameter length.
func (e *CommandComplete) EncodedSize() int {
	n := 3
	if e.ReturnParameters != nil {
		n += e.ReturnParameters.EncodedSize()
	}
	return n
}

// Encode serializes the event parameters.
func (e *CommandComplete) Encode(b *codec.Buffer) (int, error) {
	if b.Remaining() < e.EncodedSize() {
		return 0, errors.Wrap(codec.ErrBufferFull, e.String())
	}
	b.TryPush(e.NumHCICommandPackets)
	b.EncodeLEU16(e.CommandOpcode)
	if e.ReturnParameters != nil {
		if _, err := e.ReturnParameters.Encode(b); err != nil {
			return 0, err
		}
	}
	return e.EncodedSize(), nil
}

func decodeCommandComplete(p []byte) (Event, error) {
	r := codec.NewReader(p)
	e := &CommandComplete{}
	var err error
	if e.NumHCICommandPackets, err = r.Byte(); err != nil {
		return nil, err
	}
	if e.CommandOpcode, err = r.Uint16(); err != nil {
		return nil, err
	}
	if e.ReturnParameters, err = cmd.ParseReturnParameters(int(e.CommandOpcode), r.Rest()); err != nil {
		return nil, err
	}
	return e, nil
}

// CommandStatus implements Command Status (0x0F) [Vol 4, Part E, 7.7.15].
type CommandStatus struct {
	Status               uint8
	NumHCICommandPackets uint8
	CommandOpcode        uint16
}

// Code returns CommandStatusCode.
func (e *CommandStatus) Code() uint8 { return CommandStatusCode }

func (e *CommandStatus) String() string {
	return fmt.Sprintf("Command Status (0x0F) opcode 0x%04X status 0x%02X", e.CommandOpcode, e.Status)
}

// EncodedSize returns 4.
func (e *CommandStatus) EncodedSize() int { return 4 }

// Encode serializes the event parameters.
func (e *CommandStatus) Encode(b *codec.Buffer) (int, error) {
	if b.Remaining() < 4 {
		return 0, errors.Wrap(codec.ErrBufferFull, e.String())
	}
	b.TryPush(e.Status)
	b.TryPush(e.NumHCICommandPackets)
	b.EncodeLEU16(e.CommandOpcode)
	return 4, nil
}

func decodeCommandStatus(p []byte) (Event, error) {
	r := codec.NewReader(p)
	e := &CommandStatus{}
	var err error
	if e.Status, err = r.Byte(); err != nil {
		return nil, err
	}
	if e.NumHCICommandPackets, err = r.Byte(); err != nil {
		return nil, err
	}
	if e.CommandOpcode, err = r.Uint16(); err != nil {
		return nil, err
	}
	return e, r.Finish()
}

// DisconnectionComplete implements Disconnection Complete (0x05) [Vol 4, Part E, 7.7.5].
type DisconnectionComplete struct {
	Status           uint8
	ConnectionHandle uint16
	Reason           uint8
}

// Code returns DisconnectionCompleteCode.
func (e *DisconnectionComplete) Code() uint8 { return DisconnectionCompleteCode }

func (e *DisconnectionComplete) String() string {
	return fmt.Sprintf("Disconnection Complete (0x05) handle 0x%04X reason 0x%02X", e.ConnectionHandle, e.Reason)
}

// EncodedSize returns 4.
func (e *DisconnectionComplete) EncodedSize() int { return 4 }

// Encode serializes the event parameters.
func (e *DisconnectionComplete) Encode(b *codec.Buffer) (int, error) {
	if b.Remaining() < 4 {
		return 0, errors.Wrap(codec.ErrBufferFull, e.String())
	}
	b.TryPush(e.Status)
	b.EncodeLEU16(e.ConnectionHandle)
	b.TryPush(e.Reason)
	return 4, nil
}

func decodeDisconnectionComplete(p []byte) (Event, error) {
	r := codec.NewReader(p)
	e := &DisconnectionComplete{}
	var err error
	if e.Status, err = r.Byte(); err != nil {
		return nil, err
	}
	if e.ConnectionHandle, err = r.Uint16(); err != nil {
		return nil, err
	}
	if e.Reason, err = r.Byte(); err != nil {
		return nil, err
	}
	return e, r.Finish()
}

// HardwareError implements Hardware Error (0x10) [Vol 4, Part E, 7.7.16].
type HardwareError struct {
	HardwareCode uint8
}

// Code returns HardwareErrorCode.
func (e *HardwareError) Code() uint8 { return HardwareErrorCode }

func (e *HardwareError) String() string {
	return fmt.Sprintf("Hardware Error (0x10) code 0x%02X", e.HardwareCode)
}

// EncodedSize returns 1.
func (e *HardwareError) EncodedSize() int { return 1 }

// Encode serializes the event parameters.
func (e *HardwareError) Encode(b *codec.Buffer) (int, error) { return b.TryPush(e.HardwareCode) }

func decodeHardwareError(p []byte) (Event, error) {
	r := codec.NewReader(p)
	c, err := r.Byte()
	if err != nil {
		return nil, err
	}
	return &HardwareError{HardwareCode: c}, r.Finish()
}

// DataBufferOverflow implements Data Buffer Overflow (0x1A) [Vol 4, Part E, 7.7.26].
type DataBufferOverflow struct {
	LinkType uint8
}

// Code returns DataBufferOverflowCode.
func (e *DataBufferOverflow) Code() uint8 { return DataBufferOverflowCode }

func (e *DataBufferOverflow) String() string {
	return fmt.Sprintf("Data Buffer Overflow (0x1A) link type 0x%02X", e.LinkType)
}

// EncodedSize returns 1.
func (e *DataBufferOverflow) EncodedSize() int { return 1 }

// Encode serializes the event parameters.
func (e *DataBufferOverflow) Encode(b *codec.Buffer) (int, error) { return b.TryPush(e.LinkType) }

func decodeDataBufferOverflow(p []byte) (Event, error) {
	r := codec.NewReader(p)
	t, err := r.Byte()
	if err != nil {
		return nil, err
	}
	return &DataBufferOverflow{LinkType: t}, r.Finish()
}

// Unsupported is an event the host has no decoder for.
type Unsupported struct {
	EventCode uint8
	Params    []byte
}

// Code returns the event code.
func (e *Unsupported) Code() uint8 { return e.EventCode }

func (e *Unsupported) String() string {
	return fmt.Sprintf("Unsupported event (0x%02X) % X", e.EventCode, e.Params)
}

// EncodedSize returns the raw length.
func (e *Unsupported) EncodedSize() int { return len(e.Params) }

// Encode copies the raw parameters.
func (e *Unsupported) Encode(b *codec.Buffer) (int, error) { return b.CopyFromSlice(e.Params) }
