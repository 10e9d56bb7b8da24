package cmd

import (
	"github.com/bletio/ble/codec"
	"github.com/pkg/errors"
)

// Advertising_Type values.
const (
	AdvInd           uint8 = 0x00 // connectable, scannable, undirected
	AdvDirectIndHigh uint8 = 0x01 // connectable, directed, high duty cycle
	AdvScanInd       uint8 = 0x02 // scannable, undirected
	AdvNonconnInd    uint8 = 0x03 // non-connectable, undirected
	AdvDirectIndLow  uint8 = 0x04 // connectable, directed, low duty cycle
)

// Own_Address_Type values.
const (
	OwnAddressPublic      uint8 = 0x00
	OwnAddressRandom      uint8 = 0x01
	OwnAddressRPAOrPublic uint8 = 0x02
	OwnAddressRPAOrRandom uint8 = 0x03
)

// Advertising_Channel_Map bits.
const (
	AdvChannel37  uint8 = 0x01
	AdvChannel38  uint8 = 0x02
	AdvChannel39  uint8 = 0x04
	AdvChannelAll uint8 = AdvChannel37 | AdvChannel38 | AdvChannel39
)

// Advertising_Filter_Policy values.
const (
	AdvFilterNone           uint8 = 0x00
	AdvFilterScan           uint8 = 0x01
	AdvFilterConnect        uint8 = 0x02
	AdvFilterScanAndConnect uint8 = 0x03
)

// Advertising_Enable values.
const (
	AdvertisingDisabled uint8 = 0x00
	AdvertisingEnabled  uint8 = 0x01
)

// LESetAdvertisingParameters implements LE Set Advertising Parameters (0x08|0x0006) [Vol 4, Part E, 7.8.5]
type LESetAdvertisingParameters struct {
	AdvertisingIntervalMin  uint16
	AdvertisingIntervalMax  uint16
	AdvertisingType         uint8
	OwnAddressType          uint8
	PeerAddressType         uint8
	PeerAddress             [6]byte
	AdvertisingChannelMap   uint8
	AdvertisingFilterPolicy uint8
}

func (c *LESetAdvertisingParameters) String() string {
	return "LE Set Advertising Parameters (0x08|0x0006)"
}

// OpCode returns the opcode of the command.
func (c *LESetAdvertisingParameters) OpCode() int { return LESetAdvertisingParametersOpCode }

// EncodedSize returns the length of the command parameters.
func (c *LESetAdvertisingParameters) EncodedSize() int { return 15 }

// Encode serializes the command parameters into binary form.
func (c *LESetAdvertisingParameters) Encode(b *codec.Buffer) (int, error) {
	if err := reserve(b, c); err != nil {
		return 0, err
	}
	b.EncodeLEU16(c.AdvertisingIntervalMin)
	b.EncodeLEU16(c.AdvertisingIntervalMax)
	b.TryPush(c.AdvertisingType)
	b.TryPush(c.OwnAddressType)
	b.TryPush(c.PeerAddressType)
	b.CopyFromSlice(c.PeerAddress[:])
	b.TryPush(c.AdvertisingChannelMap)
	b.TryPush(c.AdvertisingFilterPolicy)
	return 15, nil
}

// MaxAdvertisingDataLength is the size of the data field of the legacy
// advertising data commands.
const MaxAdvertisingDataLength = 31

// ErrAdvertisingDataTooLong is returned for payloads over 31 bytes.
var ErrAdvertisingDataTooLong = errors.New("advertising data longer than 31 bytes")

func encodeAdvertisingData(b *codec.Buffer, c codec.Encoder, n uint8, data *[MaxAdvertisingDataLength]byte) (int, error) {
	if n > MaxAdvertisingDataLength {
		return 0, errors.Wrapf(ErrAdvertisingDataTooLong, "%d bytes", n)
	}
	if err := reserve(b, c); err != nil {
		return 0, err
	}
	b.TryPush(n)
	b.CopyFromSlice(data[:])
	return 1 + MaxAdvertisingDataLength, nil
}

func fillAdvertisingData(p []byte, data *[MaxAdvertisingDataLength]byte) (uint8, error) {
	if len(p) > MaxAdvertisingDataLength {
		return 0, errors.Wrapf(ErrAdvertisingDataTooLong, "%d bytes", len(p))
	}
	*data = [MaxAdvertisingDataLength]byte{}
	copy(data[:], p)
	return uint8(len(p)), nil
}

// LESetAdvertisingData implements LE Set Advertising Data (0x08|0x0008) [Vol 4, Part E, 7.8.7]
// The data field is always sent as 31 octets, zero padded.
type LESetAdvertisingData struct {
	AdvertisingDataLength uint8
	AdvertisingData       [MaxAdvertisingDataLength]byte
}

// NewLESetAdvertisingData copies an encoded advertising payload.
func NewLESetAdvertisingData(p []byte) (*LESetAdvertisingData, error) {
	c := &LESetAdvertisingData{}
	n, err := fillAdvertisingData(p, &c.AdvertisingData)
	if err != nil {
		return nil, err
	}
	c.AdvertisingDataLength = n
	return c, nil
}

func (c *LESetAdvertisingData) String() string {
	return "LE Set Advertising Data (0x08|0x0008)"
}

// OpCode returns the opcode of the command.
func (c *LESetAdvertisingData) OpCode() int { return LESetAdvertisingDataOpCode }

// EncodedSize returns the length of the command parameters.
func (c *LESetAdvertisingData) EncodedSize() int { return 1 + MaxAdvertisingDataLength }

// Encode serializes the command parameters into binary form.
func (c *LESetAdvertisingData) Encode(b *codec.Buffer) (int, error) {
	return encodeAdvertisingData(b, c, c.AdvertisingDataLength, &c.AdvertisingData)
}

// Data returns the significant part of the data field.
func (c *LESetAdvertisingData) Data() []byte {
	return significant(c.AdvertisingData[:], c.AdvertisingDataLength)
}

// LESetScanResponseData implements LE Set Scan Response Data (0x08|0x0009) [Vol 4, Part E, 7.8.8]
type LESetScanResponseData struct {
	ScanResponseDataLength uint8
	ScanResponseData       [MaxAdvertisingDataLength]byte
}

// NewLESetScanResponseData copies an encoded scan response payload.
func NewLESetScanResponseData(p []byte) (*LESetScanResponseData, error) {
	c := &LESetScanResponseData{}
	n, err := fillAdvertisingData(p, &c.ScanResponseData)
	if err != nil {
		return nil, err
	}
	c.ScanResponseDataLength = n
	return c, nil
}

func (c *LESetScanResponseData) String() string {
	return "LE Set Scan Response Data (0x08|0x0009)"
}

// OpCode returns the opcode of the command.
func (c *LESetScanResponseData) OpCode() int { return LESetScanResponseDataOpCode }

// EncodedSize returns the length of the command parameters.
func (c *LESetScanResponseData) EncodedSize() int { return 1 + MaxAdvertisingDataLength }

// Encode serializes the command parameters into binary form.
func (c *LESetScanResponseData) Encode(b *codec.Buffer) (int, error) {
	return encodeAdvertisingData(b, c, c.ScanResponseDataLength, &c.ScanResponseData)
}

// Data returns the significant part of the data field.
func (c *LESetScanResponseData) Data() []byte {
	return significant(c.ScanResponseData[:], c.ScanResponseDataLength)
}

func significant(d []byte, n uint8) []byte {
	if int(n) > len(d) {
		n = uint8(len(d))
	}
	return append([]byte(nil), d[:n]...)
}
