package hci

import "time"

// HCI Packet types
const (
	PktTypeCommand uint8 = 0x01
	PktTypeACLData uint8 = 0x02
	PktTypeSCOData uint8 = 0x03
	PktTypeEvent   uint8 = 0x04
	PktTypeISOData uint8 = 0x05
	PktTypeVendor  uint8 = 0xFF
)

// DefaultCommandTimeout bounds a command exchange when no timeout is configured.
const DefaultCommandTimeout = 3 * time.Second

const (
	rxQueueSize = 16
	rxBufSize   = 4096
)

func pktTypeName(t uint8) string {
	switch t {
	case PktTypeCommand:
		return "command"
	case PktTypeACLData:
		return "acl"
	case PktTypeSCOData:
		return "sco"
	case PktTypeEvent:
		return "event"
	case PktTypeISOData:
		return "iso"
	case PktTypeVendor:
		return "vendor"
	default:
		return "invalid"
	}
}
