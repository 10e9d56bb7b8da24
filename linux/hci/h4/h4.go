// Package h4 frames HCI packets over a UART or TCP byte stream using the
// H4 protocol [Vol 4, Part A].
package h4

import (
	"io"
	"net"
	"sync"
	"time"

	"github.com/bletio/ble"
	"github.com/jacobsa/go-serial/serial"
	"github.com/pkg/errors"
)

const (
	rxQueueSize = 64
	readTimeout = time.Second
)

// DefaultSerialOptions returns 1 Mbaud 8N1 with hardware flow control.
func DefaultSerialOptions() serial.OpenOptions {
	return serial.OpenOptions{
		BaudRate:          1000000,
		DataBits:          8,
		StopBits:          1,
		ParityMode:        serial.PARITY_NONE,
		RTSCTSFlowControl: true,
	}
}

// NewSerial opens an H4 UART.
func NewSerial(opts serial.OpenOptions) (io.ReadWriteCloser, error) {
	// force these
	opts.MinimumReadSize = 0
	opts.InterCharacterTimeout = 100

	log := logger()
	log.Infof("opening %s at %d baud", opts.PortName, opts.BaudRate)
	sp, err := serial.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "can't open %s", opts.PortName)
	}

	// drain whatever the controller had queued
	b := make([]byte, 2048)
	if _, err := sp.Read(b); err != nil && err != io.EOF {
		sp.Close()
		return nil, errors.Wrap(err, "can't flush serial port")
	}

	return newH4(sp, log, true), nil
}

// NewSocket connects to an H4 server over TCP. Reads and writes on the
// connection are bounded by timeout.
func NewSocket(addr string, timeout time.Duration) (io.ReadWriteCloser, error) {
	if timeout <= 0 {
		timeout = readTimeout
	}
	c, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, errors.Wrapf(err, "can't dial %s", addr)
	}
	log := logger()
	log.Infof("connected to %s", addr)
	return newH4(&connWithTimeout{c: c, timeout: timeout}, log, false), nil
}

func logger() ble.Logger {
	return ble.GetLogger().ChildLogger(map[string]interface{}{"pkg": "h4"})
}

// h4 turns a byte stream into a packet stream: every Read returns exactly one
// packet, or 0 bytes when none arrived within readTimeout.
type h4 struct {
	rw  io.ReadWriteCloser
	log ble.Logger
	wmu sync.Mutex

	// eofIdle treats io.EOF as an empty read, which is how a serial port
	// reports an expired inter character timeout.
	eofIdle bool

	rxQueue chan []byte
	done    chan struct{}
	dead    chan struct{}
	err     error
	once    sync.Once
}

func newH4(rw io.ReadWriteCloser, log ble.Logger, eofIdle bool) *h4 {
	h := &h4{
		rw:      rw,
		eofIdle: eofIdle,
		log:     log,
		rxQueue: make(chan []byte, rxQueueSize),
		done:    make(chan struct{}),
		dead:    make(chan struct{}),
	}
	go h.rxLoop()
	return h
}

func (h *h4) Read(p []byte) (int, error) {
	select {
	case t := <-h.rxQueue:
		if len(p) < len(t) {
			return 0, io.ErrShortBuffer
		}
		return copy(p, t), nil

	case <-h.dead:
		if h.err != nil {
			return 0, h.err
		}
		return 0, io.EOF

	case <-time.After(readTimeout):
		return 0, nil
	}
}

func (h *h4) Write(p []byte) (int, error) {
	select {
	case <-h.done:
		return 0, io.EOF
	default:
	}

	h.wmu.Lock()
	defer h.wmu.Unlock()
	n, err := h.rw.Write(p)
	h.log.Debugf("write [% X], %v, %v", p, n, err)
	return n, errors.Wrap(err, "can't write h4")
}

func (h *h4) Close() error {
	var err error
	h.once.Do(func() {
		close(h.done)
		err = h.rw.Close()
	})
	return errors.Wrap(err, "can't close h4")
}

func (h *h4) rxLoop() {
	defer close(h.dead)

	a := newAssembler()
	tmp := make([]byte, 512)
	for {
		n, err := h.rw.Read(tmp)
		select {
		case <-h.done:
			return
		default:
		}

		switch {
		case isTimeout(err):
			continue
		case err == io.EOF && n == 0 && h.eofIdle:
			continue
		case err != nil:
			h.err = err
			h.log.Errorf("read loop stopped: %v", err)
			return
		}

		for _, p := range a.Feed(tmp[:n]) {
			h.log.Debugf("read [% X]", p)
			select {
			case h.rxQueue <- p:
			case <-h.done:
				return
			}
		}
	}
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
