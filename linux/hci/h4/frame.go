package h4

import (
	"time"
)

// Packet indicators the assembler frames.
const (
	aclPacket   = 0x02
	eventPacket = 0x04
)

const (
	eventHeaderLength = 3
	aclHeaderLength   = 5
	frameTimeout      = 500 * time.Millisecond
)

// assembler cuts a byte stream into H4 packets. A partial packet that is not
// completed within frameTimeout is discarded.
type assembler struct {
	b       []byte
	started time.Time
	now     func() time.Time
}

func newAssembler() *assembler {
	return &assembler{b: make([]byte, 0, 256), now: time.Now}
}

// Feed appends b and returns every packet completed by it.
func (a *assembler) Feed(b []byte) [][]byte {
	if len(a.b) != 0 && a.now().Sub(a.started) > frameTimeout {
		a.reset()
	}

	var out [][]byte
	for len(b) > 0 {
		if len(a.b) == 0 {
			if b = a.waitStart(b); len(b) == 0 {
				break
			}
			a.started = a.now()
		}

		a.b = append(a.b, b...)
		n, ok := a.length()
		if !ok || len(a.b) < n {
			break
		}
		out = append(out, append([]byte(nil), a.b[:n]...))
		b = a.b[n:]
		a.reset()
	}
	return out
}

func (a *assembler) reset() {
	a.b = a.b[:0:0]
	a.started = time.Time{}
}

// waitStart drops bytes up to the next packet indicator.
func (a *assembler) waitStart(b []byte) []byte {
	for i, v := range b {
		if v == eventPacket || v == aclPacket {
			return b[i:]
		}
	}
	return nil
}

func (a *assembler) length() (int, bool) {
	switch a.b[0] {
	case eventPacket:
		if len(a.b) < eventHeaderLength {
			return 0, false
		}
		return eventHeaderLength + int(a.b[2]), true

	case aclPacket:
		if len(a.b) < aclHeaderLength {
			return 0, false
		}
		return aclHeaderLength + (int(a.b[3]) | int(a.b[4])<<8), true

	default:
		return 0, false
	}
}
