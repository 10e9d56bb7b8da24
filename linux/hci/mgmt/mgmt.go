// Package mgmt speaks the Linux Bluetooth management protocol, which the
// kernel uses to hand adapters to bluetoothd. The host only needs it to
// power an adapter off before taking it over through the user channel.
package mgmt

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/bletio/ble/codec"
)

// IndexNone addresses the management interface itself rather than an adapter.
const IndexNone uint16 = 0xFFFF

const (
	headerLength = 6

	opReadIndexList uint16 = 0x0003
	opSetPowered    uint16 = 0x0005

	evCommandComplete uint16 = 0x0001
	evCommandStatus   uint16 = 0x0002
)

var (
	ErrShortResponse = errors.New("mgmt: short response")
	ErrTimeout       = errors.New("mgmt: no response")
)

// Status is a non-zero management command status.
type Status uint8

func (s Status) Error() string {
	return fmt.Sprintf("mgmt: command failed with status 0x%02X", uint8(s))
}

// Response is one event read from the management channel.
type Response struct {
	Event uint16
	Index uint16
	Data  []byte
}

func command(op, index uint16, params []byte) []byte {
	b := codec.New(headerLength + len(params))
	b.EncodeLEU16(op)
	b.EncodeLEU16(index)
	b.EncodeLEU16(uint16(len(params)))
	b.CopyFromSlice(params)
	return b.Bytes()
}

func parseResponse(p []byte) (Response, error) {
	r := codec.NewReader(p)
	ev, _ := r.Uint16()
	idx, _ := r.Uint16()
	n, err := r.Uint16()
	if err != nil {
		return Response{}, errors.Wrapf(ErrShortResponse, "%d header bytes", len(p))
	}
	d, err := r.Bytes(int(n))
	if err != nil {
		return Response{}, errors.Wrapf(ErrShortResponse, "want %d parameter bytes, have %d", n, r.Remaining())
	}
	return Response{Event: ev, Index: idx, Data: append([]byte(nil), d...)}, nil
}

// result returns the return parameters if rsp terminates op. ok is false for
// unrelated events.
func (rsp Response) result(op uint16) (rp []byte, ok bool, err error) {
	if rsp.Event != evCommandComplete && rsp.Event != evCommandStatus {
		return nil, false, nil
	}
	r := codec.NewReader(rsp.Data)
	got, _ := r.Uint16()
	st, err := r.Byte()
	if err != nil {
		return nil, true, errors.Wrap(ErrShortResponse, "command status")
	}
	if got != op {
		return nil, false, nil
	}
	if st != 0 {
		return nil, true, errors.Wrapf(Status(st), "opcode 0x%04X", op)
	}
	return r.Rest(), true, nil
}

func parseIndexList(p []byte) ([]uint16, error) {
	r := codec.NewReader(p)
	n, err := r.Uint16()
	if err != nil {
		return nil, errors.Wrap(ErrShortResponse, "index count")
	}
	out := make([]uint16, 0, n)
	for i := 0; i < int(n); i++ {
		v, err := r.Uint16()
		if err != nil {
			return nil, errors.Wrapf(ErrShortResponse, "index %d of %d", i, n)
		}
		out = append(out, v)
	}
	return out, nil
}
