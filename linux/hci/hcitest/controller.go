// Package hcitest provides a scripted controller for exercising the host
// side of HCI without hardware.
package hcitest

import (
	"context"
	"sync"

	"github.com/bletio/ble"
	"github.com/bletio/ble/codec"
	"github.com/bletio/ble/linux/hci/cmd"
	"github.com/bletio/ble/linux/hci/evt"
	"github.com/pkg/errors"
)

// StatusUnknownCommand is answered to commands without a handler.
const StatusUnknownCommand uint8 = 0x01

// Handler answers the parameter block of a command with zero or more events.
type Handler func(params []byte) []evt.Event

// Controller is an in-memory controller. It implements the transport
// contract of the hci package.
type Controller struct {
	mu       sync.Mutex
	handlers map[int]Handler
	sent     [][]byte
	writeErr error

	events chan []byte
}

// NewController returns a controller that answers every command with
// Unknown HCI Command until handlers are installed.
func NewController() *Controller {
	return &Controller{
		handlers: map[int]Handler{},
		events:   make(chan []byte, 64),
	}
}

// Handle installs h for op, replacing any previous handler.
func (c *Controller) Handle(op int, h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[op] = h
}

// Complete answers op with Command Complete carrying rp.
func (c *Controller) Complete(op int, rp cmd.CommandRP) {
	c.Handle(op, func([]byte) []evt.Event {
		return []evt.Event{CommandComplete(op, rp)}
	})
}

// Fail answers op with Command Complete carrying only status.
func (c *Controller) Fail(op int, status uint8) {
	c.Complete(op, &cmd.StatusRP{StatusCode: status})
}

// Ignore makes the controller swallow op without answering.
func (c *Controller) Ignore(op int) {
	c.Handle(op, func([]byte) []evt.Event { return nil })
}

// FailWrites makes every following WriteCommand return err.
func (c *Controller) FailWrites(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writeErr = err
}

// Inject queues an unsolicited event.
func (c *Controller) Inject(e evt.Event) error {
	b, err := evt.Marshal(e)
	if err != nil {
		return err
	}
	c.InjectRaw(b)
	return nil
}

// InjectRaw queues raw bytes as if read from the controller.
func (c *Controller) InjectRaw(p []byte) {
	c.events <- append([]byte(nil), p...)
}

// WriteCommand decodes the command header, records the packet and queues
// the handler's answer.
func (c *Controller) WriteCommand(ctx context.Context, p []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r := codec.NewReader(p)
	typ, err := r.Byte()
	if err != nil {
		return err
	}
	if typ != cmd.PktTypeCommand {
		return errors.Errorf("not a command packet: 0x%02X", typ)
	}
	op, err := r.Uint16()
	if err != nil {
		return err
	}
	n, err := r.Byte()
	if err != nil {
		return err
	}
	params, err := r.Bytes(int(n))
	if err != nil {
		return err
	}
	if err := r.Finish(); err != nil {
		return err
	}

	c.mu.Lock()
	if c.writeErr != nil {
		err := c.writeErr
		c.mu.Unlock()
		return err
	}
	c.sent = append(c.sent, append([]byte(nil), p...))
	h, ok := c.handlers[int(op)]
	c.mu.Unlock()

	var answer []evt.Event
	if ok {
		answer = h(params)
	} else {
		answer = []evt.Event{CommandComplete(int(op), &cmd.StatusRP{StatusCode: StatusUnknownCommand})}
	}
	for _, e := range answer {
		if err := c.Inject(e); err != nil {
			return err
		}
	}
	return nil
}

// ReadEvent returns the next queued event.
func (c *Controller) ReadEvent(ctx context.Context) ([]byte, error) {
	select {
	case p := <-c.events:
		return p, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Packets returns the command packets written so far.
func (c *Controller) Packets() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]byte(nil), c.sent...)
}

// OpCodes returns the opcodes written so far, in order.
func (c *Controller) OpCodes() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	ops := make([]int, 0, len(c.sent))
	for _, p := range c.sent {
		ops = append(ops, int(p[1])|int(p[2])<<8)
	}
	return ops
}

// Params returns the parameter block of the last command written with op.
func (c *Controller) Params(op int) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.sent) - 1; i >= 0; i-- {
		p := c.sent[i]
		if int(p[1])|int(p[2])<<8 == op {
			return p[cmd.HeaderLength:], true
		}
	}
	return nil, false
}

// Reset forgets the recorded packets.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = nil
}

// CommandComplete builds a Command Complete event for op.
func CommandComplete(op int, rp cmd.CommandRP) *evt.CommandComplete {
	return &evt.CommandComplete{NumHCICommandPackets: 1, CommandOpcode: uint16(op), ReturnParameters: rp}
}

// LEController returns a controller that answers the setup and advertising
// commands the way a typical LE only controller does.
func LEController(bdaddr ble.Address) *Controller {
	c := NewController()

	var supported ble.SupportedCommands
	supported = supported.With(
		ble.SupportedSetEventMask,
		ble.SupportedReset,
		ble.SupportedReadLocalVersionInformation,
		ble.SupportedReadLocalSupportedFeatures,
		ble.SupportedReadBDADDR,
		ble.SupportedLESetEventMask,
		ble.SupportedLEReadBufferSize,
		ble.SupportedLEReadLocalSupportedFeatures,
		ble.SupportedLESetRandomAddress,
		ble.SupportedLESetAdvertisingParameters,
		ble.SupportedLEReadAdvertisingPhysicalChannelTxPwr,
		ble.SupportedLESetAdvertisingData,
		ble.SupportedLESetScanResponseData,
		ble.SupportedLESetAdvertisingEnable,
		ble.SupportedLEReadFilterAcceptListSize,
		ble.SupportedLEClearFilterAcceptList,
		ble.SupportedLEAddDeviceToFilterAcceptList,
		ble.SupportedLERemoveDeviceFromFilterAcceptList,
		ble.SupportedLERand,
		ble.SupportedLEReadSupportedStates,
	)

	c.Complete(cmd.ResetOpCode, &cmd.StatusRP{})
	c.Complete(cmd.SetEventMaskOpCode, &cmd.StatusRP{})
	c.Complete(cmd.LESetEventMaskOpCode, &cmd.StatusRP{})
	c.Complete(cmd.ReadLocalSupportedCommandsOpCode, &cmd.ReadLocalSupportedCommandsRP{SupportedCommands: supported})
	c.Complete(cmd.ReadLocalSupportedFeaturesOpCode, &cmd.ReadLocalSupportedFeaturesRP{
		LMPFeatures: ble.FeatureBREDRNotSupported | ble.FeatureLESupportedController,
	})
	c.Complete(cmd.LEReadBufferSizeOpCode, &cmd.LEReadBufferSizeRP{HCLEACLDataPacketLength: 251, HCTotalNumLEACLDataPackets: 8})
	c.Complete(cmd.LEReadLocalSupportedFeaturesOpCode, &cmd.LEReadLocalSupportedFeaturesRP{
		LEFeatures: ble.LEFeatureEncryption | ble.LEFeatureLLPrivacy | ble.LEFeature2MPHY,
	})
	c.Complete(cmd.LEReadSupportedStatesOpCode, &cmd.LEReadSupportedStatesRP{LEStates: 0x000003FFFFFFFFFF})
	c.Complete(cmd.ReadBDADDROpCode, &cmd.ReadBDADDRRP{BDADDR: bdaddr.Value()})
	c.Complete(cmd.LERandOpCode, &cmd.LERandRP{RandomNumber: 0xC0FFEE0011223344})
	c.Complete(cmd.LESetRandomAddressOpCode, &cmd.StatusRP{})
	c.Complete(cmd.LESetAdvertisingParametersOpCode, &cmd.StatusRP{})
	c.Complete(cmd.LEReadAdvertisingPhysicalChannelTxPowerOpCode, &cmd.LEReadAdvertisingPhysicalChannelTxPowerRP{TransmitPowerLevel: 4})
	c.Complete(cmd.LESetAdvertisingDataOpCode, &cmd.StatusRP{})
	c.Complete(cmd.LESetScanResponseDataOpCode, &cmd.StatusRP{})
	c.Complete(cmd.LESetAdvertisingEnableOpCode, &cmd.StatusRP{})
	c.Complete(cmd.LEReadFilterAcceptListSizeOpCode, &cmd.LEReadFilterAcceptListSizeRP{FilterAcceptListSize: 8})
	c.Complete(cmd.LEClearFilterAcceptListOpCode, &cmd.StatusRP{})
	c.Complete(cmd.LEAddDeviceToFilterAcceptListOpCode, &cmd.StatusRP{})
	c.Complete(cmd.LERemoveDeviceFromFilterAcceptListOpCode, &cmd.StatusRP{})
	return c
}
