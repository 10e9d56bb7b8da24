package cmd

import "github.com/bletio/ble/codec"

// Opcodes of the commands in this package.
const (
	SetEventMaskOpCode                            = 0x03<<10 | 0x0001
	ResetOpCode                                   = 0x03<<10 | 0x0003
	ReadLocalSupportedCommandsOpCode              = 0x04<<10 | 0x0002
	ReadLocalSupportedFeaturesOpCode              = 0x04<<10 | 0x0003
	ReadBufferSizeOpCode                          = 0x04<<10 | 0x0005
	ReadBDADDROpCode                              = 0x04<<10 | 0x0009
	LESetEventMaskOpCode                          = 0x08<<10 | 0x0001
	LEReadBufferSizeOpCode                        = 0x08<<10 | 0x0002
	LEReadLocalSupportedFeaturesOpCode            = 0x08<<10 | 0x0003
	LESetRandomAddressOpCode                      = 0x08<<10 | 0x0005
	LEReadAdvertisingPhysicalChannelTxPowerOpCode = 0x08<<10 | 0x0007
	LESetAdvertisingEnableOpCode                  = 0x08<<10 | 0x000A
	LEReadFilterAcceptListSizeOpCode              = 0x08<<10 | 0x000F
	LEClearFilterAcceptListOpCode                 = 0x08<<10 | 0x0010
	LEAddDeviceToFilterAcceptListOpCode           = 0x08<<10 | 0x0011
	LERemoveDeviceFromFilterAcceptListOpCode      = 0x08<<10 | 0x0012
	LERandOpCode                                  = 0x08<<10 | 0x0018
	LEReadSupportedStatesOpCode                   = 0x08<<10 | 0x001C
	LESetAdvertisingParametersOpCode              = 0x08<<10 | 0x0006
	LESetAdvertisingDataOpCode                    = 0x08<<10 | 0x0008
	LESetScanResponseDataOpCode                   = 0x08<<10 | 0x0009
)

// SetEventMask implements Set Event Mask (0x03|0x0001) [Vol 4, Part E, 7.3.1]
type SetEventMask struct {
	EventMask uint64
}

func (c *SetEventMask) String() string {
	return "Set Event Mask (0x03|0x0001)"
}

// OpCode returns the opcode of the command.
func (c *SetEventMask) OpCode() int { return SetEventMaskOpCode }

// EncodedSize returns the length of the command parameters.
func (c *SetEventMask) EncodedSize() int { return 8 }

// Encode serializes the command parameters into binary form.
func (c *SetEventMask) Encode(b *codec.Buffer) (int, error) {
	if err := reserve(b, c); err != nil {
		return 0, err
	}
	b.EncodeLEU64(c.EventMask)
	return 8, nil
}

// Reset implements Reset (0x03|0x0003) [Vol 4, Part E, 7.3.2]
type Reset struct{}

func (c *Reset) String() string {
	return "Reset (0x03|0x0003)"
}

// OpCode returns the opcode of the command.
func (c *Reset) OpCode() int { return ResetOpCode }

// EncodedSize returns the length of the command parameters.
func (c *Reset) EncodedSize() int { return 0 }

// Encode serializes the command parameters into binary form.
func (c *Reset) Encode(b *codec.Buffer) (int, error) { return 0, nil }

// ReadLocalSupportedCommands implements Read Local Supported Commands (0x04|0x0002) [Vol 4, Part E, 7.4.2]
type ReadLocalSupportedCommands struct{}

func (c *ReadLocalSupportedCommands) String() string {
	return "Read Local Supported Commands (0x04|0x0002)"
}

// OpCode returns the opcode of the command.
func (c *ReadLocalSupportedCommands) OpCode() int { return ReadLocalSupportedCommandsOpCode }

// EncodedSize returns the length of the command parameters.
func (c *ReadLocalSupportedCommands) EncodedSize() int { return 0 }

// Encode serializes the command parameters into binary form.
func (c *ReadLocalSupportedCommands) Encode(b *codec.Buffer) (int, error) { return 0, nil }

// ReadLocalSupportedFeatures implements Read Local Supported Features (0x04|0x0003) [Vol 4, Part E, 7.4.3]
type ReadLocalSupportedFeatures struct{}

func (c *ReadLocalSupportedFeatures) String() string {
	return "Read Local Supported Features (0x04|0x0003)"
}

// OpCode returns the opcode of the command.
func (c *ReadLocalSupportedFeatures) OpCode() int { return ReadLocalSupportedFeaturesOpCode }

// EncodedSize returns the length of the command parameters.
func (c *ReadLocalSupportedFeatures) EncodedSize() int { return 0 }

// Encode serializes the command parameters into binary form.
func (c *ReadLocalSupportedFeatures) Encode(b *codec.Buffer) (int, error) { return 0, nil }

// ReadBufferSize implements Read Buffer Size (0x04|0x0005) [Vol 4, Part E, 7.4.5]
type ReadBufferSize struct{}

func (c *ReadBufferSize) String() string {
	return "Read Buffer Size (0x04|0x0005)"
}

// OpCode returns the opcode of the command.
func (c *ReadBufferSize) OpCode() int { return ReadBufferSizeOpCode }

// EncodedSize returns the length of the command parameters.
func (c *ReadBufferSize) EncodedSize() int { return 0 }

// Encode serializes the command parameters into binary form.
func (c *ReadBufferSize) Encode(b *codec.Buffer) (int, error) { return 0, nil }

// ReadBDADDR implements Read BD_ADDR (0x04|0x0009) [Vol 4, Part E, 7.4.6]
type ReadBDADDR struct{}

func (c *ReadBDADDR) String() string {
	return "Read BD_ADDR (0x04|0x0009)"
}

// OpCode returns the opcode of the command.
func (c *ReadBDADDR) OpCode() int { return ReadBDADDROpCode }

// EncodedSize returns the length of the command parameters.
func (c *ReadBDADDR) EncodedSize() int { return 0 }

// Encode serializes the command parameters into binary form.
func (c *ReadBDADDR) Encode(b *codec.Buffer) (int, error) { return 0, nil }

// LESetEventMask implements LE Set Event Mask (0x08|0x0001) [Vol 4, Part E, 7.8.1]
type LESetEventMask struct {
	LEEventMask uint64
}

func (c *LESetEventMask) String() string {
	return "LE Set Event Mask (0x08|0x0001)"
}

// OpCode returns the opcode of the command.
func (c *LESetEventMask) OpCode() int { return LESetEventMaskOpCode }

// EncodedSize returns the length of the command parameters.
func (c *LESetEventMask) EncodedSize() int { return 8 }

// Encode serializes the command parameters into binary form.
func (c *LESetEventMask) Encode(b *codec.Buffer) (int, error) {
	if err := reserve(b, c); err != nil {
		return 0, err
	}
	b.EncodeLEU64(c.LEEventMask)
	return 8, nil
}

// LEReadBufferSize implements LE Read Buffer Size (0x08|0x0002) [Vol 4, Part E, 7.8.2]
type LEReadBufferSize struct{}

func (c *LEReadBufferSize) String() string {
	return "LE Read Buffer Size (0x08|0x0002)"
}

// OpCode returns the opcode of the command.
func (c *LEReadBufferSize) OpCode() int { return LEReadBufferSizeOpCode }

// EncodedSize returns the length of the command parameters.
func (c *LEReadBufferSize) EncodedSize() int { return 0 }

// Encode serializes the command parameters into binary form.
func (c *LEReadBufferSize) Encode(b *codec.Buffer) (int, error) { return 0, nil }

// LEReadLocalSupportedFeatures implements LE Read Local Supported Features (0x08|0x0003) [Vol 4, Part E, 7.8.3]
type LEReadLocalSupportedFeatures struct{}

func (c *LEReadLocalSupportedFeatures) String() string {
	return "LE Read Local Supported Features (0x08|0x0003)"
}

// OpCode returns the opcode of the command.
func (c *LEReadLocalSupportedFeatures) OpCode() int { return LEReadLocalSupportedFeaturesOpCode }

// EncodedSize returns the length of the command parameters.
func (c *LEReadLocalSupportedFeatures) EncodedSize() int { return 0 }

// Encode serializes the command parameters into binary form.
func (c *LEReadLocalSupportedFeatures) Encode(b *codec.Buffer) (int, error) { return 0, nil }

// LESetRandomAddress implements LE Set Random Address (0x08|0x0005) [Vol 4, Part E, 7.8.4]
type LESetRandomAddress struct {
	RandomAddress [6]byte
}

func (c *LESetRandomAddress) String() string {
	return "LE Set Random Address (0x08|0x0005)"
}

// OpCode returns the opcode of the command.
func (c *LESetRandomAddress) OpCode() int { return LESetRandomAddressOpCode }

// EncodedSize returns the length of the command parameters.
func (c *LESetRandomAddress) EncodedSize() int { return 6 }

// Encode serializes the command parameters into binary form.
func (c *LESetRandomAddress) Encode(b *codec.Buffer) (int, error) {
	if err := reserve(b, c); err != nil {
		return 0, err
	}
	b.CopyFromSlice(c.RandomAddress[:])
	return 6, nil
}

// LEReadAdvertisingPhysicalChannelTxPower implements LE Read Advertising Physical Channel Tx Power (0x08|0x0007) [Vol 4, Part E, 7.8.6]
type LEReadAdvertisingPhysicalChannelTxPower struct{}

func (c *LEReadAdvertisingPhysicalChannelTxPower) String() string {
	return "LE Read Advertising Physical Channel Tx Power (0x08|0x0007)"
}

// OpCode returns the opcode of the command.
func (c *LEReadAdvertisingPhysicalChannelTxPower) OpCode() int {
	return LEReadAdvertisingPhysicalChannelTxPowerOpCode
}

// EncodedSize returns the length of the command parameters.
func (c *LEReadAdvertisingPhysicalChannelTxPower) EncodedSize() int { return 0 }

// Encode serializes the command parameters into binary form.
func (c *LEReadAdvertisingPhysicalChannelTxPower) Encode(b *codec.Buffer) (int, error) { return 0, nil }

// LESetAdvertisingEnable implements LE Set Advertising Enable (0x08|0x000A) [Vol 4, Part E, 7.8.9]
type LESetAdvertisingEnable struct {
	AdvertisingEnable uint8
}

func (c *LESetAdvertisingEnable) String() string {
	return "LE Set Advertising Enable (0x08|0x000A)"
}

// OpCode returns the opcode of the command.
func (c *LESetAdvertisingEnable) OpCode() int { return LESetAdvertisingEnableOpCode }

// EncodedSize returns the length of the command parameters.
func (c *LESetAdvertisingEnable) EncodedSize() int { return 1 }

// Encode serializes the command parameters into binary form.
func (c *LESetAdvertisingEnable) Encode(b *codec.Buffer) (int, error) {
	if err := reserve(b, c); err != nil {
		return 0, err
	}
	b.TryPush(c.AdvertisingEnable)
	return 1, nil
}

// LEReadFilterAcceptListSize implements LE Read Filter Accept List Size (0x08|0x000F) [Vol 4, Part E, 7.8.14]
type LEReadFilterAcceptListSize struct{}

func (c *LEReadFilterAcceptListSize) String() string {
	return "LE Read Filter Accept List Size (0x08|0x000F)"
}

// OpCode returns the opcode of the command.
func (c *LEReadFilterAcceptListSize) OpCode() int { return LEReadFilterAcceptListSizeOpCode }

// EncodedSize returns the length of the command parameters.
func (c *LEReadFilterAcceptListSize) EncodedSize() int { return 0 }

// Encode serializes the command parameters into binary form.
func (c *LEReadFilterAcceptListSize) Encode(b *codec.Buffer) (int, error) { return 0, nil }

// LEClearFilterAcceptList implements LE Clear Filter Accept List (0x08|0x0010) [Vol 4, Part E, 7.8.15]
type LEClearFilterAcceptList struct{}

func (c *LEClearFilterAcceptList) String() string {
	return "LE Clear Filter Accept List (0x08|0x0010)"
}

// OpCode returns the opcode of the command.
func (c *LEClearFilterAcceptList) OpCode() int { return LEClearFilterAcceptListOpCode }

// EncodedSize returns the length of the command parameters.
func (c *LEClearFilterAcceptList) EncodedSize() int { return 0 }

// Encode serializes the command parameters into binary form.
func (c *LEClearFilterAcceptList) Encode(b *codec.Buffer) (int, error) { return 0, nil }

// LEAddDeviceToFilterAcceptList implements LE Add Device To Filter Accept List (0x08|0x0011) [Vol 4, Part E, 7.8.16]
type LEAddDeviceToFilterAcceptList struct {
	Address FilterAcceptListAddress
}

func (c *LEAddDeviceToFilterAcceptList) String() string {
	return "LE Add Device To Filter Accept List (0x08|0x0011)"
}

// OpCode returns the opcode of the command.
func (c *LEAddDeviceToFilterAcceptList) OpCode() int { return LEAddDeviceToFilterAcceptListOpCode }

// EncodedSize returns the length of the command parameters.
func (c *LEAddDeviceToFilterAcceptList) EncodedSize() int { return 7 }

// Encode serializes the command parameters into binary form.
func (c *LEAddDeviceToFilterAcceptList) Encode(b *codec.Buffer) (int, error) {
	if err := reserve(b, c); err != nil {
		return 0, err
	}
	c.Address.Encode(b)
	return 7, nil
}

// LERemoveDeviceFromFilterAcceptList implements LE Remove Device From Filter Accept List (0x08|0x0012) [Vol 4, Part E, 7.8.17]
type LERemoveDeviceFromFilterAcceptList struct {
	Address FilterAcceptListAddress
}

func (c *LERemoveDeviceFromFilterAcceptList) String() string {
	return "LE Remove Device From Filter Accept List (0x08|0x0012)"
}

// OpCode returns the opcode of the command.
func (c *LERemoveDeviceFromFilterAcceptList) OpCode() int {
	return LERemoveDeviceFromFilterAcceptListOpCode
}

// EncodedSize returns the length of the command parameters.
func (c *LERemoveDeviceFromFilterAcceptList) EncodedSize() int { return 7 }

// Encode serializes the command parameters into binary form.
func (c *LERemoveDeviceFromFilterAcceptList) Encode(b *codec.Buffer) (int, error) {
	if err := reserve(b, c); err != nil {
		return 0, err
	}
	c.Address.Encode(b)
	return 7, nil
}

// LERand implements LE Rand (0x08|0x0018) [Vol 4, Part E, 7.8.23]
type LERand struct{}

func (c *LERand) String() string {
	return "LE Rand (0x08|0x0018)"
}

// OpCode returns the opcode of the command.
func (c *LERand) OpCode() int { return LERandOpCode }

// EncodedSize returns the length of the command parameters.
func (c *LERand) EncodedSize() int { return 0 }

// Encode serializes the command parameters into binary form.
func (c *LERand) Encode(b *codec.Buffer) (int, error) { return 0, nil }

// LEReadSupportedStates implements LE Read Supported States (0x08|0x001C) [Vol 4, Part E, 7.8.27]
type LEReadSupportedStates struct{}

func (c *LEReadSupportedStates) String() string {
	return "LE Read Supported States (0x08|0x001C)"
}

// OpCode returns the opcode of the command.
func (c *LEReadSupportedStates) OpCode() int { return LEReadSupportedStatesOpCode }

// EncodedSize returns the length of the command parameters.
func (c *LEReadSupportedStates) EncodedSize() int { return 0 }

// Encode serializes the command parameters into binary form.
func (c *LEReadSupportedStates) Encode(b *codec.Buffer) (int, error) { return 0, nil }
