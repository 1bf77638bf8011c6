package storage

import (
	"context"

	"github.com/zeddq/cywil-sub002/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ChunkRepository provides operations for managing statute chunks.
type ChunkRepository interface {
	Repository

	// PutChunks stores one or more chunks, keyed by ChunkID. Storing is
	// idempotent: a chunk whose content fingerprint matches the stored
	// one is skipped, so re-ingesting an unchanged statute is a no-op.
	// Returns the number of chunks actually written.
	PutChunks(ctx context.Context, chunks ...*core.Chunk) (int, error)

	// GetChunk retrieves a single chunk by its ID.
	// Returns ErrNotFound if the chunk doesn't exist.
	GetChunk(ctx context.Context, chunkID string) (*core.Chunk, error)

	// GetChunksByCode retrieves all chunks of one statute code, ordered
	// by chunk ID.
	GetChunksByCode(ctx context.Context, code string) ([]*core.Chunk, error)

	// DeleteChunks removes chunks and their fingerprints by ID.
	// Missing IDs are ignored.
	DeleteChunks(ctx context.Context, chunkIDs ...string) error
}

// RulingRepository provides operations for managing rulings.
type RulingRepository interface {
	Repository

	// PutRuling stores a ruling keyed by its name. An existing ruling
	// under the same name is overwritten.
	PutRuling(ctx context.Context, r *core.Ruling) error

	// GetRuling retrieves a ruling by name.
	// Returns ErrNotFound if the ruling doesn't exist.
	GetRuling(ctx context.Context, name string) (*core.Ruling, error)

	// ListRulingNames returns the names of all stored rulings in
	// lexicographic order.
	ListRulingNames(ctx context.Context) ([]string, error)
}
