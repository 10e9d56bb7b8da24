package ble

import (
	"testing"
	"time"

	"github.com/bletio/ble/codec"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvertisingInterval(t *testing.T) {
	_, err := NewAdvertisingInterval(0x001F)
	assert.True(t, errors.Is(err, ErrInvalidInterval))
	_, err = NewAdvertisingInterval(0x4001)
	assert.True(t, errors.Is(err, ErrInvalidInterval))

	i, err := NewAdvertisingInterval(0x0800)
	require.NoError(t, err)
	assert.Equal(t, 1280*time.Millisecond, i.Duration())

	d, err := AdvertisingIntervalFromDuration(100 * time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, AdvertisingInterval(160), d)

	assert.Panics(t, func() { MustAdvertisingInterval(0) })
}

func TestConnectionIntervalRange(t *testing.T) {
	r, err := NewConnectionIntervalRange(0x0006, 0x0C80)
	require.NoError(t, err)
	b, err := codec.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x06, 0x00, 0x80, 0x0C}, b)

	_, err = NewConnectionIntervalRange(0x0010, 0x0008)
	assert.True(t, errors.Is(err, ErrInvalidInterval))

	_, err = NewConnectionIntervalRange(0x0005, 0x0008)
	assert.True(t, errors.Is(err, ErrInvalidInterval))

	r, err = NewConnectionIntervalRange(0x0100, NoSpecificConnectionInterval)
	require.NoError(t, err)
	assert.Equal(t, NoSpecificConnectionInterval, r.Max())

	_, err = NewConnectionIntervalRange(NoSpecificConnectionInterval, 0x0100)
	require.NoError(t, err)
}

func TestConnectionIntervalRangeEncodeFull(t *testing.T) {
	b := codec.New(3)
	_, err := MustConnectionIntervalRange(6, 7).Encode(b)
	assert.True(t, errors.Is(err, codec.ErrBufferFull))
	assert.Equal(t, 0, b.Len())
}
