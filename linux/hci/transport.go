package hci

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/bletio/ble"
	"github.com/bletio/ble/linux/hci/h4"
	"github.com/bletio/ble/linux/hci/socket"
	"github.com/pkg/errors"
)

// Transport moves whole HCI packets, indicator byte included, between the
// host and the controller.
type Transport interface {
	WriteCommand(ctx context.Context, p []byte) error
	ReadEvent(ctx context.Context) ([]byte, error)
}

// TransportKind selects the link to the controller.
type TransportKind string

// Supported transports.
const (
	TransportHCISocket TransportKind = "hci"
	TransportH4Uart    TransportKind = "uart"
	TransportH4Socket  TransportKind = "tcp"
)

// TransportConfig describes how to reach the controller.
type TransportConfig struct {
	Kind TransportKind

	// DeviceID is the hciN index of the user channel socket, -1 for the
	// first available device.
	DeviceID int

	// SerialPort and BaudRate configure the H4 UART.
	SerialPort string
	BaudRate   uint

	// Address and Timeout configure the H4 TCP link.
	Address string
	Timeout time.Duration
}

// OpenTransport opens the configured link and wraps it in a StreamTransport.
func OpenTransport(cfg TransportConfig) (*StreamTransport, error) {
	var rwc io.ReadWriteCloser
	var err error
	switch cfg.Kind {
	case TransportHCISocket:
		rwc, err = socket.NewSocket(cfg.DeviceID)

	case TransportH4Socket:
		rwc, err = h4.NewSocket(cfg.Address, cfg.Timeout)

	case TransportH4Uart:
		so := h4.DefaultSerialOptions()
		so.PortName = cfg.SerialPort
		if cfg.BaudRate != 0 {
			so.BaudRate = cfg.BaudRate
		}
		rwc, err = h4.NewSerial(so)

	default:
		return nil, errors.Errorf("no valid transport found for %q", cfg.Kind)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "open %s transport", cfg.Kind)
	}
	return NewStreamTransport(rwc), nil
}

// StreamTransport adapts a packet oriented ReadWriteCloser, where every Read
// returns one complete packet, to Transport. Packets other than events are
// logged and dropped.
type StreamTransport struct {
	rwc io.ReadWriteCloser
	log ble.Logger
	wmu sync.Mutex

	events chan []byte
	done   chan struct{}
	dead   chan struct{}
	err    error

	closeOnce sync.Once
}

// NewStreamTransport starts reading packets from rwc.
func NewStreamTransport(rwc io.ReadWriteCloser) *StreamTransport {
	t := &StreamTransport{
		rwc:    rwc,
		log:    ble.GetLogger().ChildLogger(map[string]interface{}{"pkg": "hci", "transport": "stream"}),
		events: make(chan []byte, rxQueueSize),
		done:   make(chan struct{}),
		dead:   make(chan struct{}),
	}
	go t.readLoop()
	return t
}

// WriteCommand writes one command packet.
func (t *StreamTransport) WriteCommand(ctx context.Context, p []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-t.dead:
		return t.closedErr()
	default:
	}

	t.wmu.Lock()
	defer t.wmu.Unlock()
	n, err := t.rwc.Write(p)
	if err != nil {
		return errors.Wrap(err, "can't write command")
	}
	if n != len(p) {
		return errors.Errorf("short command write: %d of %d bytes", n, len(p))
	}
	return nil
}

// ReadEvent returns the next event packet.
func (t *StreamTransport) ReadEvent(ctx context.Context) ([]byte, error) {
	select {
	case p := <-t.events:
		return p, nil
	default:
	}
	select {
	case p := <-t.events:
		return p, nil
	case <-t.dead:
		return nil, t.closedErr()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops the read loop and closes the underlying stream.
func (t *StreamTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.done)
		err = t.rwc.Close()
	})
	return errors.Wrap(err, "can't close transport")
}

func (t *StreamTransport) closedErr() error {
	if t.err != nil {
		return errors.Wrap(ErrClosed, t.err.Error())
	}
	return ErrClosed
}

func (t *StreamTransport) readLoop() {
	defer close(t.dead)

	b := make([]byte, rxBufSize)
	for {
		n, err := t.rwc.Read(b)
		switch {
		case err != nil:
			select {
			case <-t.done:
			default:
				t.err = err
				t.log.Debugf("read loop stopped: %v", err)
			}
			return

		case n == 0:
			// read timeout
			select {
			case <-t.done:
				return
			default:
				continue
			}
		}

		if b[0] != PktTypeEvent {
			t.log.Debugf("dropping %s packet [% X]", pktTypeName(b[0]), b[:n])
			continue
		}

		p := make([]byte, n)
		copy(p, b)
		select {
		case t.events <- p:
		case <-t.done:
			return
		}
	}
}
