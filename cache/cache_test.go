package cache

import (
	"path/filepath"
	"testing"

	"github.com/bletio/ble"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	Features ble.LEFeatures        `json:"features"`
	Commands ble.SupportedCommands `json:"commands"`
}

func TestFileCacheStoreLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "test.cache")
	c := New(fn)
	a := ble.MustParseAddress("12:34:56:78:90:AB", false)

	var cmds ble.SupportedCommands
	in := snapshot{Features: ble.LEFeatureLLPrivacy, Commands: cmds.With(ble.SupportedReset)}
	require.NoError(t, c.Store(a, in, false))

	var out snapshot
	require.NoError(t, New(fn).Load(a, &out))
	assert.Equal(t, in, out)

	err := c.Store(a, in, false)
	assert.True(t, errors.Is(err, ErrExists), "%v", err)
	require.NoError(t, c.Store(a, snapshot{}, true))
	require.NoError(t, c.Load(a, &out))
	assert.Equal(t, snapshot{}, out)

	other := ble.MustParseAddress("12:34:56:78:90:AC", false)
	err = c.Load(other, &out)
	assert.True(t, errors.Is(err, ErrNotFound), "%v", err)

	require.NoError(t, c.Clear())
	err = c.Load(a, &out)
	assert.True(t, errors.Is(err, ErrNotFound), "%v", err)
	assert.NoError(t, c.Clear())
}
