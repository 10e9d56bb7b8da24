// Package sliceops converts between the little-endian byte order used on the
// HCI and the most-significant-first order people read.
package sliceops

// SwapBuf returns a reversed copy of in.
func SwapBuf(in []byte) []byte {
	a := make([]byte, 0, len(in))
	a = append(a, in...)
	Reverse(a)
	return a
}

// Reverse reverses b in place.
func Reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// Swap6 reverses a six byte device address.
func Swap6(a [6]byte) [6]byte {
	return [6]byte{a[5], a[4], a[3], a[2], a[1], a[0]}
}

// Swap16 reverses a 128 bit value held as bytes.
func Swap16(a [16]byte) [16]byte {
	var o [16]byte
	for i := range a {
		o[15-i] = a[i]
	}
	return o
}
