// Package cmd holds the HCI commands the host sends and the return
// parameters the controller answers them with [Vol 4, Part E, 7].
package cmd

import (
	"fmt"

	"github.com/bletio/ble/codec"
	"github.com/pkg/errors"
)

// PktTypeCommand is the HCI packet indicator of a command packet.
const PktTypeCommand uint8 = 0x01

// MaxParamsLength is the largest parameter block a command can carry.
const MaxParamsLength = 255

// HeaderLength is the size of indicator, opcode and length fields.
const HeaderLength = 4

// NOPOpCode is carried by Command Complete events that only return
// command credits.
const NOPOpCode = 0x0000

// Opcode group fields.
const (
	OGFLinkControl    = 0x01
	OGFLinkPolicy     = 0x02
	OGFControllerBB   = 0x03
	OGFInformational  = 0x04
	OGFStatus         = 0x05
	OGFLE             = 0x08
	OGFVendorSpecific = 0x3F
	ogfBitShift       = 10
	ocfMask           = 0x03FF
)

// ErrParamsTooLong is returned for commands whose parameters exceed
// MaxParamsLength.
var ErrParamsTooLong = errors.New("command parameters too long")

// Command is an HCI command. Its codec.Encoder methods cover the parameter
// block only.
type Command interface {
	codec.Encoder
	fmt.Stringer
	OpCode() int
}

// OpCode packs a group and command field.
func OpCode(ogf, ocf int) int { return ogf<<ogfBitShift | ocf&ocfMask }

// OGF returns the group field of op.
func OGF(op int) int { return op >> ogfBitShift }

// OCF returns the command field of op.
func OCF(op int) int { return op & ocfMask }

// Encode writes the command packet
// [indicator][opcode LE][parameter length][parameters] to b.
// The parameter length octet always equals the number of parameter bytes
// written; nothing is left in b on failure.
func Encode(c Command, b *codec.Buffer) (int, error) {
	n := c.EncodedSize()
	if n > MaxParamsLength {
		return 0, errors.Wrapf(ErrParamsTooLong, "%s: %d bytes", c, n)
	}
	if b.Remaining() < HeaderLength+n {
		return 0, errors.Wrapf(codec.ErrBufferFull, "%s needs %d bytes, %d left", c, HeaderLength+n, b.Remaining())
	}

	start := b.Len()
	b.TryPush(PktTypeCommand)
	b.EncodeLEU16(uint16(c.OpCode()))
	b.TryPush(uint8(n))
	w, err := c.Encode(b)
	if err == nil && w != n {
		err = errors.Errorf("%s wrote %d parameter bytes, announced %d", c, w, n)
	}
	if err != nil {
		b.Truncate(start)
		return 0, err
	}
	return HeaderLength + n, nil
}

// Marshal returns the command packet.
func Marshal(c Command) ([]byte, error) {
	b := codec.New(HeaderLength + c.EncodedSize())
	if _, err := Encode(c, b); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// reserve fails unless e fits entirely in b.
func reserve(b *codec.Buffer, e codec.Encoder) error {
	if b.Remaining() < e.EncodedSize() {
		return errors.Wrapf(codec.ErrBufferFull, "need %d bytes, %d left", e.EncodedSize(), b.Remaining())
	}
	return nil
}

func name(s string, op int) string {
	return fmt.Sprintf("%s (0x%02X|0x%04X)", s, OGF(op), OCF(op))
}
