package mgmt

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand(t *testing.T) {
	assert.Equal(t, []byte{0x05, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00}, command(opSetPowered, 1, []byte{0}))
	assert.Equal(t, []byte{0x03, 0x00, 0xFF, 0xFF, 0x00, 0x00}, command(opReadIndexList, IndexNone, nil))
}

func TestParseResponse(t *testing.T) {
	rsp, err := parseResponse([]byte{0x01, 0x00, 0xFF, 0xFF, 0x09, 0x00, 0x03, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x01, 0x00})
	require.NoError(t, err)
	assert.Equal(t, evCommandComplete, rsp.Event)
	assert.Equal(t, IndexNone, rsp.Index)

	rp, ok, err := rsp.result(opReadIndexList)
	require.NoError(t, err)
	require.True(t, ok)

	idx, err := parseIndexList(rp)
	require.NoError(t, err)
	assert.Equal(t, []uint16{0, 1}, idx)
}

func TestParseResponseShort(t *testing.T) {
	_, err := parseResponse([]byte{0x01, 0x00})
	assert.True(t, errors.Is(err, ErrShortResponse))

	_, err = parseResponse([]byte{0x01, 0x00, 0x00, 0x00, 0x04, 0x00, 0x05})
	assert.True(t, errors.Is(err, ErrShortResponse))
}

func TestResult(t *testing.T) {
	// unrelated event
	_, ok, err := Response{Event: 0x0006, Data: []byte{0x01}}.result(opSetPowered)
	assert.NoError(t, err)
	assert.False(t, ok)

	// complete for another command
	_, ok, err = Response{Event: evCommandComplete, Data: []byte{0x03, 0x00, 0x00}}.result(opSetPowered)
	assert.NoError(t, err)
	assert.False(t, ok)

	// failed status
	_, ok, err = Response{Event: evCommandStatus, Data: []byte{0x05, 0x00, 0x0A}}.result(opSetPowered)
	assert.True(t, ok)
	assert.Equal(t, Status(0x0A), errors.Cause(err))

	rp, ok, err := Response{Event: evCommandComplete, Data: []byte{0x05, 0x00, 0x00, 0xD0, 0x0A, 0x00, 0x00}}.result(opSetPowered)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte{0xD0, 0x0A, 0x00, 0x00}, rp)
}

func TestParseIndexList(t *testing.T) {
	idx, err := parseIndexList([]byte{0x02, 0x00, 0x00, 0x00, 0x01, 0x00})
	require.NoError(t, err)
	assert.Equal(t, []uint16{0, 1}, idx)

	_, err = parseIndexList([]byte{0x02, 0x00, 0x00, 0x00})
	assert.True(t, errors.Is(err, ErrShortResponse))
}
