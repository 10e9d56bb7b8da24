package ble

import (
	"testing"

	"github.com/bletio/ble/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDWireOrder(t *testing.T) {
	u, err := ParseUUID128("6e400001-b5a3-f393-e0a9-e50e24dcca9e")
	require.NoError(t, err)
	assert.Equal(t, byte(0x9E), u[0])
	assert.Equal(t, byte(0x6E), u[15])
	assert.Equal(t, "6e400001-b5a3-f393-e0a9-e50e24dcca9e", u.String())

	b, err := codec.Marshal(UUID16(0x180F))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0F, 0x18}, b)

	_, err = ParseUUID128("nope")
	assert.Error(t, err)
}

func TestUUID16Expansion(t *testing.T) {
	assert.Equal(t, "0000180f-0000-1000-8000-00805f9b34fb", UUID16(0x180F).UUID128().String())
}
