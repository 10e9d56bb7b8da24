//go:build linux
// +build linux

package mgmt

import (
	"encoding/hex"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/bletio/ble"
)

const pollTimeout = 1000

// Socket is a raw HCI socket bound to the management control channel.
type Socket struct {
	fd  int
	buf []byte
	mu  sync.Mutex
	log ble.Logger
}

// NewSocket opens the management control channel.
func NewSocket() (*Socket, error) {
	fd, err := unix.Socket(unix.AF_BLUETOOTH, unix.SOCK_RAW|unix.SOCK_CLOEXEC, unix.BTPROTO_HCI)
	if err != nil {
		return nil, errors.Wrap(err, "can't create socket")
	}

	sa := unix.SockaddrHCI{Dev: IndexNone, Channel: unix.HCI_CHANNEL_CONTROL}
	if err := unix.Bind(fd, &sa); err != nil {
		unix.Close(fd)
		return nil, errors.Wrap(err, "can't bind socket to hci control channel")
	}

	// poll for 20ms to see if any data becomes available, then clear it
	pfds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	unix.Poll(pfds, 20)
	if pfds[0].Revents&unix.POLLIN > 0 {
		b := make([]byte, 512)
		unix.Read(fd, b)
	}

	return &Socket{
		fd:  fd,
		buf: make([]byte, 4096),
		log: ble.GetLogger().ChildLogger(map[string]interface{}{"pkg": "mgmt"}),
	}, nil
}

// Indexes lists the adapters known to the kernel.
func (s *Socket) Indexes() ([]uint16, error) {
	rp, err := s.exchange(opReadIndexList, IndexNone, nil)
	if err != nil {
		return nil, err
	}
	return parseIndexList(rp)
}

// SetPowered powers adapter index on or off.
func (s *Socket) SetPowered(index uint16, on bool) error {
	v := byte(0)
	if on {
		v = 1
	}
	_, err := s.exchange(opSetPowered, index, []byte{v})
	return errors.Wrapf(err, "hci%d: set powered %v", index, on)
}

// Close releases the socket.
func (s *Socket) Close() error {
	return unix.Close(s.fd)
}

func (s *Socket) exchange(op, index uint16, params []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := command(op, index, params)
	s.log.Debugf("mgmt < %s", hex.EncodeToString(c))
	if _, err := unix.Write(s.fd, c); err != nil {
		return nil, errors.Wrap(err, "can't write mgmt socket")
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		pfds := []unix.PollFd{{Fd: int32(s.fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pfds, pollTimeout); err != nil && err != unix.EINTR {
			return nil, errors.Wrap(err, "can't poll mgmt socket")
		}
		if pfds[0].Revents&unix.POLLIN == 0 {
			continue
		}
		n, err := unix.Read(s.fd, s.buf)
		if err != nil {
			return nil, errors.Wrap(err, "can't read mgmt socket")
		}
		s.log.Debugf("mgmt > %s", hex.EncodeToString(s.buf[:n]))

		rsp, err := parseResponse(s.buf[:n])
		if err != nil {
			return nil, err
		}
		rp, ok, err := rsp.result(op)
		if ok || err != nil {
			return rp, err
		}
	}
	return nil, errors.Wrapf(ErrTimeout, "opcode 0x%04X", op)
}

// PowerOff powers adapter index off so its user channel can be bound.
func PowerOff(index uint16) error {
	s, err := NewSocket()
	if err != nil {
		return err
	}
	defer s.Close()
	return s.SetPowered(index, false)
}
