package hci

import (
	"fmt"

	"github.com/pkg/errors"
)

// Exchange errors.
var (
	ErrCommandPending = errors.New("command already in flight")
	ErrTimeout        = errors.New("no response to command")
	ErrHardware       = errors.New("controller hardware error")
	ErrUnexpectedRP   = errors.New("unexpected return parameters")
	ErrClosed         = errors.New("transport closed")
)

// ErrCommand is a non-zero status reported by the controller [Vol 1, Part F, 1.3].
type ErrCommand uint8

// Controller error codes.
const (
	ErrUnknownCommand       ErrCommand = 0x01
	ErrConnID               ErrCommand = 0x02
	ErrHardwareFailure      ErrCommand = 0x03
	ErrPageTimeout          ErrCommand = 0x04
	ErrAuth                 ErrCommand = 0x05
	ErrPINMissing           ErrCommand = 0x06
	ErrMemoryCapacity       ErrCommand = 0x07
	ErrConnTimeout          ErrCommand = 0x08
	ErrConnLimit            ErrCommand = 0x09
	ErrSCOConnLimit         ErrCommand = 0x0A
	ErrACLConnExists        ErrCommand = 0x0B
	ErrDisallowed           ErrCommand = 0x0C
	ErrLimitedResource      ErrCommand = 0x0D
	ErrSecurity             ErrCommand = 0x0E
	ErrBDADDR               ErrCommand = 0x0F
	ErrConnAcceptTimeout    ErrCommand = 0x10
	ErrUnsupportedParameter ErrCommand = 0x11
	ErrInvalidParameters    ErrCommand = 0x12
	ErrRemoteUser           ErrCommand = 0x13
	ErrRemoteLowResources   ErrCommand = 0x14
	ErrRemotePowerOff       ErrCommand = 0x15
	ErrLocalHost            ErrCommand = 0x16
	ErrRepeatedAttempts     ErrCommand = 0x17
	ErrPairingNotAllowed    ErrCommand = 0x18
	ErrUnknownLMPPDU        ErrCommand = 0x19
	ErrUnsupportedRemote    ErrCommand = 0x1A
	ErrUnspecified          ErrCommand = 0x1F
	ErrUnsupportedLMP       ErrCommand = 0x20
	ErrRoleChange           ErrCommand = 0x21
	ErrLLResponseTimeout    ErrCommand = 0x22
	ErrLMPTransaction       ErrCommand = 0x23
	ErrLMPPDU               ErrCommand = 0x24
	ErrEncryptionMode       ErrCommand = 0x25
	ErrUnitKey              ErrCommand = 0x26
	ErrQoS                  ErrCommand = 0x27
	ErrInstantPassed        ErrCommand = 0x28
	ErrUnitKeyPairing       ErrCommand = 0x29
	ErrDiffTransaction      ErrCommand = 0x2A
	ErrChannelClass         ErrCommand = 0x2E
	ErrInsufficientSecurity ErrCommand = 0x2F
	ErrParameterRange       ErrCommand = 0x30
	ErrRoleSwitchPending    ErrCommand = 0x32
	ErrSlotViolation        ErrCommand = 0x34
	ErrRoleSwitch           ErrCommand = 0x35
	ErrEIRTooLarge          ErrCommand = 0x36
	ErrSSPNotSupported      ErrCommand = 0x37
	ErrHostBusyPairing      ErrCommand = 0x38
	ErrNoSuitableChannel    ErrCommand = 0x39
	ErrControllerBusy       ErrCommand = 0x3A
	ErrConnParams           ErrCommand = 0x3B
	ErrAdvTimeout           ErrCommand = 0x3C
	ErrMIC                  ErrCommand = 0x3D
	ErrConnFailed           ErrCommand = 0x3E
	ErrMACConn              ErrCommand = 0x3F
	ErrCoarseClock          ErrCommand = 0x40
	ErrType0Submap          ErrCommand = 0x41
	ErrUnknownAdvertiser    ErrCommand = 0x42
	ErrLimitReached         ErrCommand = 0x43
	ErrOperationCancelled   ErrCommand = 0x44
	ErrPacketTooLong        ErrCommand = 0x45
)

var errCommandNames = map[ErrCommand]string{
	ErrUnknownCommand:       "unknown HCI command",
	ErrConnID:               "unknown connection identifier",
	ErrHardwareFailure:      "hardware failure",
	ErrPageTimeout:          "page timeout",
	ErrAuth:                 "authentication failure",
	ErrPINMissing:           "PIN or key missing",
	ErrMemoryCapacity:       "memory capacity exceeded",
	ErrConnTimeout:          "connection timeout",
	ErrConnLimit:            "connection limit exceeded",
	ErrSCOConnLimit:         "synchronous connection limit to a device exceeded",
	ErrACLConnExists:        "connection already exists",
	ErrDisallowed:           "command disallowed",
	ErrLimitedResource:      "connection rejected due to limited resources",
	ErrSecurity:             "connection rejected due to security reasons",
	ErrBDADDR:               "connection rejected due to unacceptable BD_ADDR",
	ErrConnAcceptTimeout:    "connection accept timeout exceeded",
	ErrUnsupportedParameter: "unsupported feature or parameter value",
	ErrInvalidParameters:    "invalid HCI command parameters",
	ErrRemoteUser:           "remote user terminated connection",
	ErrRemoteLowResources:   "remote device terminated connection due to low resources",
	ErrRemotePowerOff:       "remote device terminated connection due to power off",
	ErrLocalHost:            "connection terminated by local host",
	ErrRepeatedAttempts:     "repeated attempts",
	ErrPairingNotAllowed:    "pairing not allowed",
	ErrUnknownLMPPDU:        "unknown LMP PDU",
	ErrUnsupportedRemote:    "unsupported remote feature",
	ErrUnspecified:          "unspecified error",
	ErrUnsupportedLMP:       "unsupported LMP parameter value",
	ErrRoleChange:           "role change not allowed",
	ErrLLResponseTimeout:    "LMP response timeout / LL response timeout",
	ErrLMPTransaction:       "LMP error transaction collision",
	ErrLMPPDU:               "LMP PDU not allowed",
	ErrEncryptionMode:       "encryption mode not acceptable",
	ErrUnitKey:              "link key cannot be changed",
	ErrQoS:                  "requested QoS not supported",
	ErrInstantPassed:        "instant passed",
	ErrUnitKeyPairing:       "pairing with unit key not supported",
	ErrDiffTransaction:      "different transaction collision",
	ErrChannelClass:         "channel classification not supported",
	ErrInsufficientSecurity: "insufficient security",
	ErrParameterRange:       "parameter out of mandatory range",
	ErrRoleSwitchPending:    "role switch pending",
	ErrSlotViolation:        "reserved slot violation",
	ErrRoleSwitch:           "role switch failed",
	ErrEIRTooLarge:          "extended inquiry response too large",
	ErrSSPNotSupported:      "secure simple pairing not supported by host",
	ErrHostBusyPairing:      "host busy - pairing",
	ErrNoSuitableChannel:    "connection rejected due to no suitable channel found",
	ErrControllerBusy:       "controller busy",
	ErrConnParams:           "unacceptable connection parameters",
	ErrAdvTimeout:           "advertising timeout",
	ErrMIC:                  "connection terminated due to MIC failure",
	ErrConnFailed:           "connection failed to be established",
	ErrMACConn:              "MAC connection failed",
	ErrCoarseClock:          "coarse clock adjustment rejected but will try to adjust using clock dragging",
	ErrType0Submap:          "type0 submap not defined",
	ErrUnknownAdvertiser:    "unknown advertising identifier",
	ErrLimitReached:         "limit reached",
	ErrOperationCancelled:   "operation cancelled by host",
	ErrPacketTooLong:        "packet too long",
}

func (e ErrCommand) Error() string {
	if s, ok := errCommandNames[e]; ok {
		return fmt.Sprintf("hci: %s (0x%02X)", s, uint8(e))
	}
	return fmt.Sprintf("hci: reserved error code 0x%02X", uint8(e))
}
