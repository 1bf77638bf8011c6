package badger

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeddq/cywil-sub002/core"
	"github.com/zeddq/cywil-sub002/storage"
)

func testChunk(id, text string) *core.Chunk {
	return &core.Chunk{
		ChunkID: id,
		Text:    text,
		Metadata: core.ChunkMetadata{
			Code:         "KC",
			Article:      "415",
			Status:       core.UnitActive,
			Paragraph:    "main",
			IndexingDate: "2026-08-30",
		},
	}
}

func TestPutAndGetChunk(t *testing.T) {
	chunkRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()
	defer chunkRepo.Close()

	ctx := context.Background()
	chunk := testChunk("KC_415", "treść przepisu")

	written, err := chunkRepo.PutChunks(ctx, chunk)
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	got, err := chunkRepo.GetChunk(ctx, "KC_415")
	require.NoError(t, err)
	assert.Equal(t, chunk, got)
}

func TestPutChunksIdempotent(t *testing.T) {
	chunkRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()
	defer chunkRepo.Close()

	ctx := context.Background()
	chunk := testChunk("KC_415", "treść przepisu")

	written, err := chunkRepo.PutChunks(ctx, chunk)
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	// Same content again: fingerprint matches, nothing written.
	written, err = chunkRepo.PutChunks(ctx, chunk)
	require.NoError(t, err)
	assert.Equal(t, 0, written)

	// Changed content is written.
	changed := testChunk("KC_415", "treść po nowelizacji")
	written, err = chunkRepo.PutChunks(ctx, changed)
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	got, err := chunkRepo.GetChunk(ctx, "KC_415")
	require.NoError(t, err)
	assert.Equal(t, "treść po nowelizacji", got.Text)
}

func TestGetChunkNotFound(t *testing.T) {
	chunkRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()
	defer chunkRepo.Close()

	_, err = chunkRepo.GetChunk(context.Background(), "KC_999")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetChunksByCode(t *testing.T) {
	chunkRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()
	defer chunkRepo.Close()

	ctx := context.Background()
	var chunks []*core.Chunk
	for i := 1; i <= 3; i++ {
		chunks = append(chunks, testChunk(fmt.Sprintf("KC_41%d", i), "treść"))
	}
	other := testChunk("KPC_100", "inny kodeks")
	other.Metadata.Code = "KPC"

	_, err = chunkRepo.PutChunks(ctx, append(chunks, other)...)
	require.NoError(t, err)

	got, err := chunkRepo.GetChunksByCode(ctx, "KC")
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, c := range got {
		assert.Equal(t, fmt.Sprintf("KC_41%d", i+1), c.ChunkID)
	}
}

func TestDeleteChunks(t *testing.T) {
	chunkRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()
	defer chunkRepo.Close()

	ctx := context.Background()
	_, err = chunkRepo.PutChunks(ctx, testChunk("KC_415", "treść"))
	require.NoError(t, err)

	require.NoError(t, chunkRepo.DeleteChunks(ctx, "KC_415", "KC_416"))

	_, err = chunkRepo.GetChunk(ctx, "KC_415")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Fingerprint is gone too: re-putting writes again.
	written, err := chunkRepo.PutChunks(ctx, testChunk("KC_415", "treść"))
	require.NoError(t, err)
	assert.Equal(t, 1, written)
}

func TestPutChunksRejectsInvalid(t *testing.T) {
	chunkRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()
	defer chunkRepo.Close()

	bad := testChunk("", "treść")
	_, err = chunkRepo.PutChunks(context.Background(), bad)
	assert.Error(t, err)
}
