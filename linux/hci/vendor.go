package hci

import (
	"bytes"
	"context"
	"encoding/binary"

	"github.com/bletio/ble/codec"
	"github.com/bletio/ble/linux/hci/cmd"
	"github.com/pkg/errors"
)

// SendVendorSpecificCommand sends a vendor specific command (OGF 0x3F) and
// returns the raw return parameters. v is either a byte slice, sent as is,
// or a fixed size value serialised little endian.
func (h *HCI) SendVendorSpecificCommand(ctx context.Context, ocf uint16, v interface{}) ([]byte, error) {
	var payload []byte
	switch v := v.(type) {
	case nil:
	case []byte:
		payload = v
	default:
		buf := &bytes.Buffer{}
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			return nil, errors.Wrap(err, "can't serialise vendor payload")
		}
		payload = buf.Bytes()
	}
	if len(payload) > cmd.MaxParamsLength {
		return nil, errors.Wrapf(cmd.ErrParamsTooLong, "invalid length %v; max hci payload length is %v", len(payload), cmd.MaxParamsLength)
	}

	rp, err := h.Send(ctx, &cmd.VendorCommand{OCF: ocf, Payload: payload})
	if err != nil {
		return nil, err
	}
	return codec.Marshal(rp)
}
