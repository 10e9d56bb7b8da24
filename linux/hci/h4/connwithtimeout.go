package h4

import (
	"net"
	"time"
)

// connWithTimeout bounds every Read and Write on c.
type connWithTimeout struct {
	c       net.Conn
	timeout time.Duration
}

func (cwt *connWithTimeout) Read(b []byte) (int, error) {
	if err := cwt.c.SetReadDeadline(time.Now().Add(cwt.timeout)); err != nil {
		return 0, err
	}
	return cwt.c.Read(b)
}

func (cwt *connWithTimeout) Write(b []byte) (int, error) {
	if err := cwt.c.SetWriteDeadline(time.Now().Add(cwt.timeout)); err != nil {
		return 0, err
	}
	return cwt.c.Write(b)
}

func (cwt *connWithTimeout) Close() error {
	return cwt.c.Close()
}
