package sliceops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSwapBuf(t *testing.T) {
	in := []byte{1, 2, 3, 4, 5}
	out := SwapBuf(in)
	assert.Equal(t, []byte{5, 4, 3, 2, 1}, out)
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, in, "input must not change")

	assert.Empty(t, SwapBuf(nil))
}

func TestReverseEven(t *testing.T) {
	b := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	Reverse(b)
	assert.Equal(t, []byte{0xDD, 0xCC, 0xBB, 0xAA}, b)
}

func TestSwapFixed(t *testing.T) {
	assert.Equal(t, [6]byte{6, 5, 4, 3, 2, 1}, Swap6([6]byte{1, 2, 3, 4, 5, 6}))

	var in [16]byte
	for i := range in {
		in[i] = byte(i)
	}
	out := Swap16(in)
	assert.Equal(t, byte(15), out[0])
	assert.Equal(t, byte(0), out[15])
}
