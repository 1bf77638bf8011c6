package cywil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeddq/cywil-sub002/core"
)

func TestOpen(t *testing.T) {
	t.Run("create new store", func(t *testing.T) {
		store, err := Open(filepath.Join(t.TempDir(), "db"))
		require.NoError(t, err)
		require.NotNil(t, store)
		defer store.Close()

		assert.NotNil(t, store.ChunkRepository())
		assert.NotNil(t, store.RulingRepository())
	})

	t.Run("error with invalid path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(tmpFile, []byte("test"), 0o644))

		store, err := Open(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, store)
	})
}

func TestStoreRoundTrip(t *testing.T) {
	store, err := Open("", WithInMemory())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	chunk := &core.Chunk{
		ChunkID: "KC_415",
		Text:    "Kto z winy swej wyrządził drugiemu szkodę...",
		Metadata: core.ChunkMetadata{
			Code:         "KC",
			Article:      "415",
			Status:       core.UnitActive,
			IndexingDate: "2026-08-30",
		},
	}

	written, err := store.ChunkRepository().PutChunks(ctx, chunk)
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	got, err := store.ChunkRepository().GetChunk(ctx, "KC_415")
	require.NoError(t, err)
	assert.Equal(t, chunk.Text, got.Text)
}

func TestStoreClose(t *testing.T) {
	store, err := Open("", WithInMemory())
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}
