package cmd

import (
	"github.com/bletio/ble"
	"github.com/bletio/ble/codec"
	"github.com/pkg/errors"
)

// CommandRP is the return parameter block of a Command Complete event.
// Unmarshal consumes the whole input and fails on trailing bytes.
type CommandRP interface {
	codec.Encoder
	Status() uint8
	Unmarshal(b []byte) error
}

// StatusRP returns the status octet only. It is also the shape of every
// failed command whose controller sent nothing but the status.
type StatusRP struct {
	StatusCode uint8
}

// Status returns the status code.
func (c *StatusRP) Status() uint8 { return c.StatusCode }

// EncodedSize returns 1.
func (c *StatusRP) EncodedSize() int { return 1 }

// Encode serializes the return parameters.
func (c *StatusRP) Encode(b *codec.Buffer) (int, error) { return b.TryPush(c.StatusCode) }

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *StatusRP) Unmarshal(b []byte) error {
	r := codec.NewReader(b)
	var err error
	if c.StatusCode, err = r.Byte(); err != nil {
		return err
	}
	return r.Finish()
}

// ReadLocalSupportedCommandsRP returns the return parameter of Read Local Supported Commands
type ReadLocalSupportedCommandsRP struct {
	StatusCode        uint8
	SupportedCommands ble.SupportedCommands
}

// Status returns the status code.
func (c *ReadLocalSupportedCommandsRP) Status() uint8 { return c.StatusCode }

// EncodedSize returns 65.
func (c *ReadLocalSupportedCommandsRP) EncodedSize() int { return 1 + len(c.SupportedCommands) }

// Encode serializes the return parameters.
func (c *ReadLocalSupportedCommandsRP) Encode(b *codec.Buffer) (int, error) {
	if err := reserve(b, c); err != nil {
		return 0, err
	}
	b.TryPush(c.StatusCode)
	b.CopyFromSlice(c.SupportedCommands[:])
	return c.EncodedSize(), nil
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *ReadLocalSupportedCommandsRP) Unmarshal(b []byte) error {
	r := codec.NewReader(b)
	var err error
	if c.StatusCode, err = r.Byte(); err != nil {
		return err
	}
	s, err := r.Bytes(len(c.SupportedCommands))
	if err != nil {
		return err
	}
	copy(c.SupportedCommands[:], s)
	return r.Finish()
}

// ReadLocalSupportedFeaturesRP returns the return parameter of Read Local Supported Features
type ReadLocalSupportedFeaturesRP struct {
	StatusCode  uint8
	LMPFeatures ble.SupportedFeatures
}

// Status returns the status code.
func (c *ReadLocalSupportedFeaturesRP) Status() uint8 { return c.StatusCode }

// EncodedSize returns 9.
func (c *ReadLocalSupportedFeaturesRP) EncodedSize() int { return 9 }

// Encode serializes the return parameters.
func (c *ReadLocalSupportedFeaturesRP) Encode(b *codec.Buffer) (int, error) {
	if err := reserve(b, c); err != nil {
		return 0, err
	}
	b.TryPush(c.StatusCode)
	b.EncodeLEU64(uint64(c.LMPFeatures))
	return 9, nil
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *ReadLocalSupportedFeaturesRP) Unmarshal(b []byte) error {
	r := codec.NewReader(b)
	var err error
	if c.StatusCode, err = r.Byte(); err != nil {
		return err
	}
	f, err := r.Uint64()
	if err != nil {
		return err
	}
	c.LMPFeatures = ble.SupportedFeatures(f)
	return r.Finish()
}

// ReadBufferSizeRP returns the return parameter of Read Buffer Size
type ReadBufferSizeRP struct {
	StatusCode                       uint8
	HCACLDataPacketLength            uint16
	HCSynchronousDataPacketLength    uint8
	HCTotalNumACLDataPackets         uint16
	HCTotalNumSynchronousDataPackets uint16
}

// Status returns the status code.
func (c *ReadBufferSizeRP) Status() uint8 { return c.StatusCode }

// EncodedSize returns 8.
func (c *ReadBufferSizeRP) EncodedSize() int { return 8 }

// Encode serializes the return parameters.
func (c *ReadBufferSizeRP) Encode(b *codec.Buffer) (int, error) {
	if err := reserve(b, c); err != nil {
		return 0, err
	}
	b.TryPush(c.StatusCode)
	b.EncodeLEU16(c.HCACLDataPacketLength)
	b.TryPush(c.HCSynchronousDataPacketLength)
	b.EncodeLEU16(c.HCTotalNumACLDataPackets)
	b.EncodeLEU16(c.HCTotalNumSynchronousDataPackets)
	return 8, nil
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *ReadBufferSizeRP) Unmarshal(b []byte) error {
	r := codec.NewReader(b)
	var err error
	if c.StatusCode, err = r.Byte(); err != nil {
		return err
	}
	if c.HCACLDataPacketLength, err = r.Uint16(); err != nil {
		return err
	}
	if c.HCSynchronousDataPacketLength, err = r.Byte(); err != nil {
		return err
	}
	if c.HCTotalNumACLDataPackets, err = r.Uint16(); err != nil {
		return err
	}
	if c.HCTotalNumSynchronousDataPackets, err = r.Uint16(); err != nil {
		return err
	}
	return r.Finish()
}

// ReadBDADDRRP returns the return parameter of Read BD_ADDR
type ReadBDADDRRP struct {
	StatusCode uint8
	BDADDR     [6]byte
}

// Status returns the status code.
func (c *ReadBDADDRRP) Status() uint8 { return c.StatusCode }

// EncodedSize returns 7.
func (c *ReadBDADDRRP) EncodedSize() int { return 7 }

// Encode serializes the return parameters.
func (c *ReadBDADDRRP) Encode(b *codec.Buffer) (int, error) {
	if err := reserve(b, c); err != nil {
		return 0, err
	}
	b.TryPush(c.StatusCode)
	b.CopyFromSlice(c.BDADDR[:])
	return 7, nil
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *ReadBDADDRRP) Unmarshal(b []byte) error {
	r := codec.NewReader(b)
	var err error
	if c.StatusCode, err = r.Byte(); err != nil {
		return err
	}
	if c.BDADDR, err = r.Array6(); err != nil {
		return err
	}
	return r.Finish()
}

// LEReadBufferSizeRP returns the return parameter of LE Read Buffer Size
type LEReadBufferSizeRP struct {
	StatusCode                 uint8
	HCLEACLDataPacketLength    uint16
	HCTotalNumLEACLDataPackets uint8
}

// Status returns the status code.
func (c *LEReadBufferSizeRP) Status() uint8 { return c.StatusCode }

// EncodedSize returns 4.
func (c *LEReadBufferSizeRP) EncodedSize() int { return 4 }

// Encode serializes the return parameters.
func (c *LEReadBufferSizeRP) Encode(b *codec.Buffer) (int, error) {
	if err := reserve(b, c); err != nil {
		return 0, err
	}
	b.TryPush(c.StatusCode)
	b.EncodeLEU16(c.HCLEACLDataPacketLength)
	b.TryPush(c.HCTotalNumLEACLDataPackets)
	return 4, nil
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *LEReadBufferSizeRP) Unmarshal(b []byte) error {
	r := codec.NewReader(b)
	var err error
	if c.StatusCode, err = r.Byte(); err != nil {
		return err
	}
	if c.HCLEACLDataPacketLength, err = r.Uint16(); err != nil {
		return err
	}
	if c.HCTotalNumLEACLDataPackets, err = r.Byte(); err != nil {
		return err
	}
	return r.Finish()
}

// LEReadLocalSupportedFeaturesRP returns the return parameter of LE Read Local Supported Features
type LEReadLocalSupportedFeaturesRP struct {
	StatusCode uint8
	LEFeatures ble.LEFeatures
}

// Status returns the status code.
func (c *LEReadLocalSupportedFeaturesRP) Status() uint8 { return c.StatusCode }

// EncodedSize returns 9.
func (c *LEReadLocalSupportedFeaturesRP) EncodedSize() int { return 9 }

// Encode serializes the return parameters.
func (c *LEReadLocalSupportedFeaturesRP) Encode(b *codec.Buffer) (int, error) {
	if err := reserve(b, c); err != nil {
		return 0, err
	}
	b.TryPush(c.StatusCode)
	b.EncodeLEU64(uint64(c.LEFeatures))
	return 9, nil
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *LEReadLocalSupportedFeaturesRP) Unmarshal(b []byte) error {
	r := codec.NewReader(b)
	var err error
	if c.StatusCode, err = r.Byte(); err != nil {
		return err
	}
	f, err := r.Uint64()
	if err != nil {
		return err
	}
	c.LEFeatures = ble.LEFeatures(f)
	return r.Finish()
}

// LEReadAdvertisingPhysicalChannelTxPowerRP returns the return parameter of LE Read Advertising Physical Channel Tx Power
type LEReadAdvertisingPhysicalChannelTxPowerRP struct {
	StatusCode         uint8
	TransmitPowerLevel int8
}

// Status returns the status code.
func (c *LEReadAdvertisingPhysicalChannelTxPowerRP) Status() uint8 { return c.StatusCode }

// EncodedSize returns 2.
func (c *LEReadAdvertisingPhysicalChannelTxPowerRP) EncodedSize() int { return 2 }

// Encode serializes the return parameters.
func (c *LEReadAdvertisingPhysicalChannelTxPowerRP) Encode(b *codec.Buffer) (int, error) {
	if err := reserve(b, c); err != nil {
		return 0, err
	}
	b.TryPush(c.StatusCode)
	b.TryPush(uint8(c.TransmitPowerLevel))
	return 2, nil
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *LEReadAdvertisingPhysicalChannelTxPowerRP) Unmarshal(b []byte) error {
	r := codec.NewReader(b)
	var err error
	if c.StatusCode, err = r.Byte(); err != nil {
		return err
	}
	if c.TransmitPowerLevel, err = r.Int8(); err != nil {
		return err
	}
	return r.Finish()
}

// LERandRP returns the return parameter of LE Rand
type LERandRP struct {
	StatusCode   uint8
	RandomNumber uint64
}

// Status returns the status code.
func (c *LERandRP) Status() uint8 { return c.StatusCode }

// EncodedSize returns 9.
func (c *LERandRP) EncodedSize() int { return 9 }

// Encode serializes the return parameters.
func (c *LERandRP) Encode(b *codec.Buffer) (int, error) {
	if err := reserve(b, c); err != nil {
		return 0, err
	}
	b.TryPush(c.StatusCode)
	b.EncodeLEU64(c.RandomNumber)
	return 9, nil
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *LERandRP) Unmarshal(b []byte) error {
	r := codec.NewReader(b)
	var err error
	if c.StatusCode, err = r.Byte(); err != nil {
		return err
	}
	if c.RandomNumber, err = r.Uint64(); err != nil {
		return err
	}
	return r.Finish()
}

// LEReadSupportedStatesRP returns the return parameter of LE Read Supported States
type LEReadSupportedStatesRP struct {
	StatusCode uint8
	LEStates   ble.LEStates
}

// Status returns the status code.
func (c *LEReadSupportedStatesRP) Status() uint8 { return c.StatusCode }

// EncodedSize returns 9.
func (c *LEReadSupportedStatesRP) EncodedSize() int { return 9 }

// Encode serializes the return parameters.
func (c *LEReadSupportedStatesRP) Encode(b *codec.Buffer) (int, error) {
	if err := reserve(b, c); err != nil {
		return 0, err
	}
	b.TryPush(c.StatusCode)
	b.EncodeLEU64(uint64(c.LEStates))
	return 9, nil
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *LEReadSupportedStatesRP) Unmarshal(b []byte) error {
	r := codec.NewReader(b)
	var err error
	if c.StatusCode, err = r.Byte(); err != nil {
		return err
	}
	s, err := r.Uint64()
	if err != nil {
		return err
	}
	c.LEStates = ble.LEStates(s)
	return r.Finish()
}

// LEReadFilterAcceptListSizeRP returns the return parameter of LE Read Filter Accept List Size
type LEReadFilterAcceptListSizeRP struct {
	StatusCode           uint8
	FilterAcceptListSize uint8
}

// Status returns the status code.
func (c *LEReadFilterAcceptListSizeRP) Status() uint8 { return c.StatusCode }

// EncodedSize returns 2.
func (c *LEReadFilterAcceptListSizeRP) EncodedSize() int { return 2 }

// Encode serializes the return parameters.
func (c *LEReadFilterAcceptListSizeRP) Encode(b *codec.Buffer) (int, error) {
	if err := reserve(b, c); err != nil {
		return 0, err
	}
	b.TryPush(c.StatusCode)
	b.TryPush(c.FilterAcceptListSize)
	return 2, nil
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *LEReadFilterAcceptListSizeRP) Unmarshal(b []byte) error {
	r := codec.NewReader(b)
	var err error
	if c.StatusCode, err = r.Byte(); err != nil {
		return err
	}
	if c.FilterAcceptListSize, err = r.Byte(); err != nil {
		return err
	}
	return r.Finish()
}

// UnsupportedRP keeps the raw return parameters of an opcode the host does
// not know the shape of.
type UnsupportedRP struct {
	Raw []byte
}

// Status returns the first octet, which is the status for nearly every
// command, or 0 when there are no parameters.
func (c *UnsupportedRP) Status() uint8 {
	if len(c.Raw) == 0 {
		return 0
	}
	return c.Raw[0]
}

// EncodedSize returns the raw length.
func (c *UnsupportedRP) EncodedSize() int { return len(c.Raw) }

// Encode copies the raw bytes.
func (c *UnsupportedRP) Encode(b *codec.Buffer) (int, error) { return b.CopyFromSlice(c.Raw) }

// Unmarshal keeps a copy of b.
func (c *UnsupportedRP) Unmarshal(b []byte) error {
	c.Raw = append([]byte(nil), b...)
	return nil
}

var rpShapes = map[int]func() CommandRP{
	SetEventMaskOpCode:                            func() CommandRP { return &StatusRP{} },
	ResetOpCode:                                   func() CommandRP { return &StatusRP{} },
	ReadLocalSupportedCommandsOpCode:              func() CommandRP { return &ReadLocalSupportedCommandsRP{} },
	ReadLocalSupportedFeaturesOpCode:              func() CommandRP { return &ReadLocalSupportedFeaturesRP{} },
	ReadBufferSizeOpCode:                          func() CommandRP { return &ReadBufferSizeRP{} },
	ReadBDADDROpCode:                              func() CommandRP { return &ReadBDADDRRP{} },
	LESetEventMaskOpCode:                          func() CommandRP { return &StatusRP{} },
	LEReadBufferSizeOpCode:                        func() CommandRP { return &LEReadBufferSizeRP{} },
	LEReadLocalSupportedFeaturesOpCode:            func() CommandRP { return &LEReadLocalSupportedFeaturesRP{} },
	LESetRandomAddressOpCode:                      func() CommandRP { return &StatusRP{} },
	LESetAdvertisingParametersOpCode:              func() CommandRP { return &StatusRP{} },
	LEReadAdvertisingPhysicalChannelTxPowerOpCode: func() CommandRP { return &LEReadAdvertisingPhysicalChannelTxPowerRP{} },
	LESetAdvertisingDataOpCode:                    func() CommandRP { return &StatusRP{} },
	LESetScanResponseDataOpCode:                   func() CommandRP { return &StatusRP{} },
	LESetAdvertisingEnableOpCode:                  func() CommandRP { return &StatusRP{} },
	LEReadFilterAcceptListSizeOpCode:              func() CommandRP { return &LEReadFilterAcceptListSizeRP{} },
	LEClearFilterAcceptListOpCode:                 func() CommandRP { return &StatusRP{} },
	LEAddDeviceToFilterAcceptListOpCode:           func() CommandRP { return &StatusRP{} },
	LERemoveDeviceFromFilterAcceptListOpCode:      func() CommandRP { return &StatusRP{} },
	LERandOpCode:                                  func() CommandRP { return &LERandRP{} },
	LEReadSupportedStatesOpCode:                   func() CommandRP { return &LEReadSupportedStatesRP{} },
}

// NewReturnParameters returns an empty return parameter record of the shape
// expected for op. Opcodes without a known shape get an UnsupportedRP.
func NewReturnParameters(op int) CommandRP {
	if f, ok := rpShapes[op]; ok {
		return f()
	}
	return &UnsupportedRP{}
}

// ParseReturnParameters decodes the return parameters of op. A failed
// command whose parameters are the status octet alone decodes as StatusRP.
// Parameters that do not match the expected shape are an error.
func ParseReturnParameters(op int, b []byte) (CommandRP, error) {
	if len(b) == 1 && b[0] != 0x00 {
		return &StatusRP{StatusCode: b[0]}, nil
	}
	rp := NewReturnParameters(op)
	if err := rp.Unmarshal(b); err != nil {
		return nil, errors.Wrapf(err, "return parameters of opcode 0x%04X", op)
	}
	return rp, nil
}
