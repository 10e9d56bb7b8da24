//go:build linux
// +build linux

// Package socket opens a Linux HCI user channel, which gives the host
// exclusive raw access to a controller.
package socket

import (
	"io"
	"strings"
	"sync"
	"time"
	"unsafe"

	"github.com/bletio/ble"
	"github.com/bletio/ble/linux/hci/mgmt"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

const (
	maxDevices    = 16
	readTimeoutMs = 1000
	drainMs       = 20
	openRetryFor  = 10 * time.Second

	pollErr = int16(unix.POLLHUP | unix.POLLNVAL | unix.POLLERR)
	pollIn  = int16(unix.POLLIN)
)

// ioctl requests on 'H', encoded as in <asm-generic/ioctl.h>.
var (
	reqDevDown    = ioctlReq(1, 202) // HCIDEVDOWN
	reqDevListGet = ioctlReq(2, 210) // HCIGETDEVLIST
)

func ioctlReq(dir, nr uintptr) uintptr {
	const typ, size = 'H', 4
	return dir<<30 | size<<16 | typ<<8 | nr
}

func ioctl(fd int, req, arg uintptr) error {
	if _, _, e := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, arg); e != 0 {
		return e
	}
	return nil
}

type devList struct {
	n    uint16
	devs [maxDevices]struct {
		id  uint16
		opt uint32
	}
}

// Socket implements a HCI User Channel as ReadWriteCloser. Each Read
// returns one packet, or 0 bytes after a second without traffic.
type Socket struct {
	fd   int
	log  ble.Logger
	rmu  sync.Mutex
	wmu  sync.Mutex
	done chan struct{}
	once sync.Once
}

// NewSocket returns a HCI User Channel of specified device id.
// If id is -1, the first available HCI device is returned.
func NewSocket(id int) (*Socket, error) {
	if id == -1 {
		return openFirst()
	}

	var err error
	for deadline := time.Now().Add(openRetryFor); time.Now().Before(deadline); time.Sleep(time.Second) {
		var s *Socket
		if s, err = open(id); err == nil {
			return s, nil
		}
	}
	return nil, err
}

func openFirst() (*Socket, error) {
	ids, err := devices()
	if err != nil {
		return nil, err
	}
	var msgs []string
	for _, id := range ids {
		s, err := open(id)
		if err == nil {
			return s, nil
		}
		msgs = append(msgs, err.Error())
	}
	return nil, errors.Errorf("no devices available: %s", strings.Join(msgs, "; "))
}

func devices() ([]int, error) {
	fd, err := unix.Socket(unix.AF_BLUETOOTH, unix.SOCK_RAW, unix.BTPROTO_HCI)
	if err != nil {
		return nil, errors.Wrap(err, "can't create socket")
	}
	defer unix.Close(fd)

	l := devList{n: maxDevices}
	if err := ioctl(fd, reqDevListGet, uintptr(unsafe.Pointer(&l))); err != nil {
		return nil, errors.Wrap(err, "can't get device list")
	}
	ids := make([]int, 0, l.n)
	for _, d := range l.devs[:l.n] {
		ids = append(ids, int(d.id))
	}
	return ids, nil
}

func open(id int) (*Socket, error) {
	fd, err := unix.Socket(unix.AF_BLUETOOTH, unix.SOCK_RAW|unix.SOCK_CLOEXEC, unix.BTPROTO_HCI)
	if err != nil {
		return nil, errors.Wrap(err, "can't create socket")
	}
	if err := bindUser(fd, id); err != nil {
		unix.Close(fd)
		return nil, err
	}

	// stale events from before the bind
	switch ev := poll(fd, drainMs); {
	case ev&pollErr != 0:
		unix.Close(fd)
		return nil, errors.Wrapf(io.EOF, "hci%d: poll events 0x%04x", id, ev)
	case ev&pollIn != 0:
		unix.Read(fd, make([]byte, 2048))
	}

	log := ble.GetLogger().ChildLogger(map[string]interface{}{"pkg": "socket", "dev": id})
	log.Infof("opened hci%d user channel", id)
	return &Socket{fd: fd, log: log, done: make(chan struct{})}, nil
}

// bindUser takes the device down and binds its user channel. The kernel
// only grants the user channel on a device that is down and unclaimed.
func bindUser(fd, id int) error {
	if err := ioctl(fd, reqDevDown, uintptr(id)); err != nil {
		return errors.Wrapf(err, "hci%d: can't down device", id)
	}

	sa := unix.SockaddrHCI{Dev: uint16(id), Channel: unix.HCI_CHANNEL_USER}
	err := unix.Bind(fd, &sa)
	if errors.Is(err, unix.EBUSY) {
		// bluetoothd powered the adapter back up; ask it to let go
		if perr := mgmt.PowerOff(uint16(id)); perr != nil {
			ble.GetLogger().Warnf("hci%d: %v", id, perr)
		}
		err = unix.Bind(fd, &sa)
	}
	return errors.Wrapf(err, "hci%d: can't bind socket to hci user channel", id)
}

// poll waits up to ms for input and returns the revents. POLLERR and
// friends are always reported.
func poll(fd, ms int) int16 {
	pfds := []unix.PollFd{{Fd: int32(fd), Events: pollIn}}
	if _, err := unix.Poll(pfds, ms); err != nil {
		return 0
	}
	return pfds[0].Revents
}

func (s *Socket) Read(p []byte) (int, error) {
	if s.closed() {
		return 0, io.EOF
	}

	s.rmu.Lock()
	defer s.rmu.Unlock()

	ev := poll(s.fd, readTimeoutMs)
	if ev&pollErr != 0 {
		s.log.Errorf("hci socket error: poll events 0x%04x", ev)
		return 0, io.EOF
	}
	if ev&pollIn == 0 {
		return 0, nil
	}

	n, err := unix.Read(s.fd, p)
	// Close may have run while we were blocked
	if s.closed() {
		return 0, io.EOF
	}
	return n, errors.Wrap(err, "can't read hci socket")
}

func (s *Socket) Write(p []byte) (int, error) {
	if s.closed() {
		return 0, io.EOF
	}

	s.wmu.Lock()
	defer s.wmu.Unlock()
	n, err := unix.Write(s.fd, p)
	return n, errors.Wrap(err, "can't write hci socket")
}

// Close releases the user channel.
func (s *Socket) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		s.log.Info("closing hci socket")
		s.rmu.Lock()
		err = unix.Close(s.fd)
		s.rmu.Unlock()
	})
	return errors.Wrap(err, "can't close hci socket")
}

func (s *Socket) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}
