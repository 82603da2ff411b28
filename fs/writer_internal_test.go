package fs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShardDirName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		index int
		want  string
	}{
		{0, "AA"},
		{1, "AB"},
		{25, "AZ"},
		{26, "BA"},
		{27, "BB"},
		{675, "ZZ"},
		{676, "AA"}, // wraps
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, shardDirName(tt.index), "index %d", tt.index)
	}
}

func TestShardedWriter_directoryAdvancesEvery100Shards(t *testing.T) {
	t.Parallel()

	w, err := NewShardedWriter(t.TempDir(), MinShardBytes, false)
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, filepath.Join("AA", "wiki00"), w.shardPath)

	for i := 0; i < filesPerDir-1; i++ {
		require.NoError(t, w.shard.Close())
		require.NoError(t, w.openNextShard())
	}
	assert.Equal(t, filepath.Join("AA", "wiki99"), w.shardPath)

	require.NoError(t, w.shard.Close())
	require.NoError(t, w.openNextShard())
	assert.Equal(t, filepath.Join("AB", "wiki00"), w.shardPath)
}
