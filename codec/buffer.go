// Package codec provides the fixed-capacity byte buffer every wire record is
// written into, and the cursor used to parse records back out of bytes.
package codec

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// ErrBufferFull is returned when a write does not fit in the remaining capacity.
var ErrBufferFull = errors.New("buffer full")

// Uint128 is an unsigned 128 bit value, e.g. a 128 bit UUID.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

// Encoder is implemented by every wire-visible value.
// EncodedSize must equal the number of bytes Encode writes.
type Encoder interface {
	EncodedSize() int
	Encode(b *Buffer) (int, error)
}

// Buffer is a byte sink with a capacity fixed at creation.
// Writes are length checked before any byte is placed, so a failed write
// leaves the buffer exactly as it was.
type Buffer struct {
	data []byte
	n    int
}

// New returns an empty buffer able to hold capacity bytes.
func New(capacity int) *Buffer {
	return &Buffer{data: make([]byte, capacity)}
}

// Wrap returns an empty buffer writing into b. The capacity is len(b).
func Wrap(b []byte) *Buffer {
	return &Buffer{data: b}
}

// Len returns the number of bytes written.
func (b *Buffer) Len() int { return b.n }

// Cap returns the fixed capacity.
func (b *Buffer) Cap() int { return len(b.data) }

// Remaining returns the number of bytes that can still be written.
func (b *Buffer) Remaining() int { return len(b.data) - b.n }

// Bytes returns the written bytes. The slice aliases the buffer storage.
func (b *Buffer) Bytes() []byte { return b.data[:b.n] }

// Reset discards the written bytes, keeping the storage.
func (b *Buffer) Reset() { b.n = 0 }

// Truncate discards all but the first n written bytes.
func (b *Buffer) Truncate(n int) {
	if n >= 0 && n < b.n {
		b.n = n
	}
}

func (b *Buffer) reserve(n int) ([]byte, error) {
	if n > b.Remaining() {
		return nil, errors.Wrapf(ErrBufferFull, "need %d bytes, %d left", n, b.Remaining())
	}
	s := b.data[b.n : b.n+n]
	b.n += n
	return s, nil
}

// TryPush appends a single byte.
func (b *Buffer) TryPush(v byte) (int, error) {
	s, err := b.reserve(1)
	if err != nil {
		return 0, err
	}
	s[0] = v
	return 1, nil
}

// CopyFromSlice appends all of p, or nothing.
func (b *Buffer) CopyFromSlice(p []byte) (int, error) {
	s, err := b.reserve(len(p))
	if err != nil {
		return 0, err
	}
	return copy(s, p), nil
}

// EncodeLEU16 appends v in little-endian order.
func (b *Buffer) EncodeLEU16(v uint16) (int, error) {
	s, err := b.reserve(2)
	if err != nil {
		return 0, err
	}
	binary.LittleEndian.PutUint16(s, v)
	return 2, nil
}

// EncodeLEU32 appends v in little-endian order.
func (b *Buffer) EncodeLEU32(v uint32) (int, error) {
	s, err := b.reserve(4)
	if err != nil {
		return 0, err
	}
	binary.LittleEndian.PutUint32(s, v)
	return 4, nil
}

// EncodeLEU64 appends v in little-endian order.
func (b *Buffer) EncodeLEU64(v uint64) (int, error) {
	s, err := b.reserve(8)
	if err != nil {
		return 0, err
	}
	binary.LittleEndian.PutUint64(s, v)
	return 8, nil
}

// EncodeLEU128 appends v in little-endian order, low half first.
func (b *Buffer) EncodeLEU128(v Uint128) (int, error) {
	s, err := b.reserve(16)
	if err != nil {
		return 0, err
	}
	binary.LittleEndian.PutUint64(s, v.Lo)
	binary.LittleEndian.PutUint64(s[8:], v.Hi)
	return 16, nil
}

// EncodeAll encodes each record in turn. It checks the summed size first so
// nothing is written when the records do not fit together.
func (b *Buffer) EncodeAll(ee ...Encoder) (int, error) {
	total := 0
	for _, e := range ee {
		total += e.EncodedSize()
	}
	if total > b.Remaining() {
		return 0, errors.Wrapf(ErrBufferFull, "need %d bytes, %d left", total, b.Remaining())
	}

	n := 0
	for _, e := range ee {
		w, err := e.Encode(b)
		n += w
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// Marshal encodes e into a new slice of exactly e.EncodedSize() bytes.
func Marshal(e Encoder) ([]byte, error) {
	b := New(e.EncodedSize())
	if _, err := e.Encode(b); err != nil {
		return nil, err
	}
	if b.Remaining() != 0 {
		return nil, errors.Errorf("encoded %d bytes, size reported %d", b.Len(), b.Cap())
	}
	return b.Bytes(), nil
}
