package codec

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

var (
	// ErrShortInput is returned when fewer bytes remain than a field needs.
	ErrShortInput = errors.New("short input")

	// ErrTrailingBytes is returned by Finish when input is left over.
	ErrTrailingBytes = errors.New("trailing bytes")
)

// Reader is a cursor over an input slice. Every read either consumes the
// whole field or fails without moving the cursor.
type Reader struct {
	b   []byte
	off int
}

// NewReader returns a reader positioned at the start of b.
func NewReader(b []byte) *Reader {
	return &Reader{b: b}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.b) - r.off }

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int { return r.off }

func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, errors.Wrapf(ErrShortInput, "need %d bytes at offset %d, have %d", n, r.off, r.Remaining())
	}
	s := r.b[r.off : r.off+n]
	r.off += n
	return s, nil
}

// Byte reads one byte.
func (r *Reader) Byte() (uint8, error) {
	s, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return s[0], nil
}

// Int8 reads one byte as a signed value.
func (r *Reader) Int8() (int8, error) {
	v, err := r.Byte()
	return int8(v), err
}

// Uint16 reads a little-endian uint16.
func (r *Reader) Uint16() (uint16, error) {
	s, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(s), nil
}

// Uint32 reads a little-endian uint32.
func (r *Reader) Uint32() (uint32, error) {
	s, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(s), nil
}

// Uint64 reads a little-endian uint64.
func (r *Reader) Uint64() (uint64, error) {
	s, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(s), nil
}

// Uint128 reads a little-endian 128 bit value.
func (r *Reader) Uint128() (Uint128, error) {
	s, err := r.take(16)
	if err != nil {
		return Uint128{}, err
	}
	return Uint128{Lo: binary.LittleEndian.Uint64(s), Hi: binary.LittleEndian.Uint64(s[8:])}, nil
}

// Bytes reads n bytes and returns a copy.
func (r *Reader) Bytes(n int) ([]byte, error) {
	s, err := r.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, s)
	return out, nil
}

// Array6 reads six bytes, the size of a device address.
func (r *Reader) Array6() ([6]byte, error) {
	var a [6]byte
	s, err := r.take(6)
	if err != nil {
		return a, err
	}
	copy(a[:], s)
	return a, nil
}

// Rest consumes and returns a copy of everything left.
func (r *Reader) Rest() []byte {
	out, _ := r.Bytes(r.Remaining())
	return out
}

// Finish fails if any input is left unread.
func (r *Reader) Finish() error {
	if r.Remaining() != 0 {
		return errors.Wrapf(ErrTrailingBytes, "%d unread bytes at offset %d", r.Remaining(), r.off)
	}
	return nil
}
