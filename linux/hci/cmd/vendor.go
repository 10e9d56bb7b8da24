package cmd

import (
	"fmt"

	"github.com/bletio/ble/codec"
)

// VendorCommand is a command of the vendor specific group (OGF 0x3F) with a
// raw parameter block.
type VendorCommand struct {
	OCF     uint16
	Payload []byte
}

// OpCode returns the opcode of the command.
func (c *VendorCommand) OpCode() int { return OpCode(OGFVendorSpecific, int(c.OCF)) }

func (c *VendorCommand) String() string {
	return fmt.Sprintf("%s; Payload (%02x)", name("Vendor Command", c.OpCode()), c.Payload)
}

// EncodedSize returns the length of the payload.
func (c *VendorCommand) EncodedSize() int { return len(c.Payload) }

// Encode copies the payload.
func (c *VendorCommand) Encode(b *codec.Buffer) (int, error) {
	return b.CopyFromSlice(c.Payload)
}
