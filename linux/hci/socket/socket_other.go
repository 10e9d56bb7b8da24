//go:build !linux
// +build !linux

package socket

import (
	"github.com/pkg/errors"
)

// Socket is unavailable outside Linux.
type Socket struct{}

// NewSocket fails on platforms without HCI user channels.
func NewSocket(id int) (*Socket, error) {
	return nil, errors.Errorf("hci%d: user channel sockets are only available on linux", id)
}

func (s *Socket) Read(p []byte) (int, error)  { return 0, errors.New("unsupported") }
func (s *Socket) Write(p []byte) (int, error) { return 0, errors.New("unsupported") }

// Close does nothing.
func (s *Socket) Close() error { return nil }
