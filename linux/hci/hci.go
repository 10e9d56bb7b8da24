package hci

import (
	"context"
	"sync"
	"time"

	"github.com/bletio/ble"
	"github.com/bletio/ble/codec"
	"github.com/bletio/ble/linux/hci/cmd"
	"github.com/bletio/ble/linux/hci/evt"
	"github.com/pkg/errors"
)

// HCI exchanges commands and events with a controller over a Transport.
// Only one command is in flight at a time.
type HCI struct {
	t       Transport
	timeout time.Duration
	log     ble.Logger

	mu      sync.Mutex
	pending bool
}

// New returns an HCI exchanger on t.
func New(t Transport, opts ...ble.Option) (*HCI, error) {
	if t == nil {
		return nil, errors.New("nil transport")
	}
	h := &HCI{
		t:       t,
		timeout: DefaultCommandTimeout,
		log:     ble.GetLogger().ChildLogger(map[string]interface{}{"pkg": "hci"}),
	}
	if err := h.Option(opts...); err != nil {
		return nil, errors.Wrap(err, "can't set options")
	}
	return h, nil
}

// Option sets the options specified.
func (h *HCI) Option(opts ...ble.Option) error {
	for _, opt := range opts {
		if err := opt(h); err != nil {
			return err
		}
	}
	return nil
}

// Logger returns the logger the exchanger writes to.
func (h *HCI) Logger() ble.Logger { return h.log }

func (h *HCI) acquire() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pending {
		return false
	}
	h.pending = true
	return true
}

func (h *HCI) release() {
	h.mu.Lock()
	h.pending = false
	h.mu.Unlock()
}

// Exchange sends c and waits for the Command Complete or Command Status event
// that echoes its opcode. Other events, including replies for other
// opcodes, are logged and skipped. The wait is
// bounded by the command timeout.
func (h *HCI) Exchange(ctx context.Context, c cmd.Command) (evt.Event, error) {
	if !h.acquire() {
		return nil, errors.Wrapf(ErrCommandPending, "can't send %s", c)
	}
	defer h.release()

	b, err := cmd.Marshal(c)
	if err != nil {
		return nil, errors.Wrapf(err, "can't encode %s", c)
	}

	tctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	h.log.Debugf("cmd: %s [% X]", c, b)
	if err := h.t.WriteCommand(tctx, b); err != nil {
		return nil, h.exchangeErr(ctx, err, c)
	}

	for {
		p, err := h.t.ReadEvent(tctx)
		if err != nil {
			return nil, h.exchangeErr(ctx, err, c)
		}
		e, err := evt.Parse(p)
		if err != nil {
			return nil, errors.Wrapf(err, "response to %s", c)
		}
		h.log.Debugf("evt: %s", e)

		var op uint16
		switch e := e.(type) {
		case *evt.CommandComplete:
			op = e.CommandOpcode
		case *evt.CommandStatus:
			op = e.CommandOpcode
		case *evt.HardwareError:
			return nil, errors.Wrapf(ErrHardware, "code 0x%02X while waiting for %s", e.HardwareCode, c)
		default:
			continue
		}

		switch {
		case int(op) == c.OpCode():
			return e, nil
		case op == cmd.NOPOpCode:
			// flow control only
			continue
		default:
			// late reply to a command that already timed out
			h.log.Warnf("dropping %s while waiting for %s", e, c)
			continue
		}
	}
}

func (h *HCI) exchangeErr(ctx context.Context, err error, c cmd.Command) error {
	if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
		h.log.Errorf("no response to %s within %v", c, h.timeout)
		return errors.Wrapf(ErrTimeout, "%s after %v", c, h.timeout)
	}
	return errors.Wrapf(err, "%s", c)
}

// Send runs c and returns its return parameters. A non-zero status is
// returned as an ErrCommand.
func (h *HCI) Send(ctx context.Context, c cmd.Command) (cmd.CommandRP, error) {
	e, err := h.Exchange(ctx, c)
	if err != nil {
		return nil, err
	}

	switch e := e.(type) {
	case *evt.CommandComplete:
		if s := e.ReturnParameters.Status(); s != 0x00 {
			return nil, errors.Wrapf(ErrCommand(s), "%s", c)
		}
		return e.ReturnParameters, nil

	case *evt.CommandStatus:
		if e.Status != 0x00 {
			return nil, errors.Wrapf(ErrCommand(e.Status), "%s", c)
		}
		return &cmd.StatusRP{}, nil

	default:
		return nil, errors.Errorf("%s: unexpected %s", c, e)
	}
}

// Request runs c and decodes its return parameters into r. r may be nil
// when only the status matters.
func (h *HCI) Request(ctx context.Context, c cmd.Command, r cmd.CommandRP) error {
	rp, err := h.Send(ctx, c)
	if err != nil {
		return err
	}
	if r == nil {
		return nil
	}
	b, err := codec.Marshal(rp)
	if err != nil {
		return err
	}
	if err := r.Unmarshal(b); err != nil {
		return errors.Wrapf(ErrUnexpectedRP, "%s: %v", c, err)
	}
	return nil
}
