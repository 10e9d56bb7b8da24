package h4

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestH4OverPipe(t *testing.T) {
	local, remote := net.Pipe()
	h := newH4(&connWithTimeout{c: local, timeout: time.Second}, logger(), false)
	defer h.Close()

	go func() {
		remote.Write([]byte{0x04, 0x0E, 0x04})
		remote.Write([]byte{0x01, 0x03, 0x0C, 0x00})
	}()

	p := make([]byte, 64)
	n, err := h.Read(p)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0x0E, 0x04, 0x01, 0x03, 0x0C, 0x00}, p[:n])

	go func() {
		b := make([]byte, 4)
		io.ReadFull(remote, b)
		remote.Close()
	}()
	n, err = h.Write([]byte{0x01, 0x03, 0x0C, 0x00})
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	// the peer went away
	_, err = h.Read(p)
	assert.Error(t, err)
}

func TestH4ShortBuffer(t *testing.T) {
	local, remote := net.Pipe()
	defer remote.Close()
	h := newH4(&connWithTimeout{c: local, timeout: time.Second}, logger(), false)
	defer h.Close()

	go remote.Write([]byte{0x04, 0x10, 0x01, 0x01})

	_, err := h.Read(make([]byte, 2))
	assert.Equal(t, io.ErrShortBuffer, err)
}
