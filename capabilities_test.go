package ble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportedCommands(t *testing.T) {
	var s SupportedCommands
	assert.False(t, s.Contains(SupportedReset))

	s = s.With(SupportedReset, SupportedLERand)
	assert.Equal(t, byte(0x80), s[5])
	assert.Equal(t, byte(0x80), s[27])
	assert.True(t, s.Contains(SupportedReset))
	assert.False(t, s.Contains(SupportedSetEventMask))
	assert.False(t, s.Contains(SupportedCommand(64*8)))

	var o SupportedCommands
	o[63] = 0x01
	u := s.Union(o)
	assert.True(t, u.Contains(SupportedReset))
	assert.Equal(t, byte(0x01), u[63], "unknown bits are kept")

	txt, err := u.MarshalText()
	require.NoError(t, err)
	var back SupportedCommands
	require.NoError(t, back.UnmarshalText(txt))
	assert.Equal(t, u, back)
	assert.Error(t, back.UnmarshalText([]byte("00")))
}

func TestFeatures(t *testing.T) {
	f := SupportedFeatures(1 << 38)
	assert.True(t, f.Contains(FeatureLESupportedController))
	assert.False(t, SupportedFeatures(0).Contains(FeatureLESupportedController))

	le := LEFeatureEncryption | LEFeatureLLPrivacy | LEFeatures(1<<40)
	assert.Equal(t, "[encryption ll-privacy 0x10000000000]", le.String())
}
