// Copyright 2025 Cywil Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/zeddq/cywil-sub002/core"
	"github.com/zeddq/cywil-sub002/storage"
)

// ChunkRepository implements storage.ChunkRepository for BadgerDB.
type ChunkRepository struct {
	backend *Backend
}

var _ storage.ChunkRepository = (*ChunkRepository)(nil)

// NewChunkRepository creates a new ChunkRepository.
func NewChunkRepository(backend *Backend) (*ChunkRepository, error) {
	return &ChunkRepository{
		backend: backend,
	}, nil
}

// Close releases resources. ChunkRepository has no resources to release.
func (r *ChunkRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ChunkRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutChunks stores chunks keyed by ChunkID. A chunk whose stored
// fingerprint matches the incoming serialization is skipped, which makes
// re-ingestion of an unchanged statute a no-op.
func (r *ChunkRepository) PutChunks(ctx context.Context, chunks ...*core.Chunk) (int, error) {
	written := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, chunk := range chunks {
			if err := core.ValidateChunk(chunk); err != nil {
				return err
			}
			value := storage.MarshalChunk(chunk)
			fp := core.Fingerprint(value)

			fpKey := makeChunkFingerprintKey(chunk.ChunkID)
			stored, err := readString(tx, fpKey)
			if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
			if stored == fp {
				continue
			}

			if err := tx.Set(makeChunkKey(chunk.ChunkID), value); err != nil {
				return err
			}
			if err := tx.Set(fpKey, []byte(fp)); err != nil {
				return err
			}
			written++
		}
		return tx.Commit()
	}, true)
	return written, err
}

// GetChunk retrieves a single chunk by its ID.
func (r *ChunkRepository) GetChunk(ctx context.Context, chunkID string) (*core.Chunk, error) {
	var chunk *core.Chunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeChunkKey(chunkID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			chunk, err = storage.UnmarshalChunk(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return chunk, nil
}

// GetChunksByCode retrieves all chunks of one statute code by prefix scan.
// Badger iterates keys in lexicographic order, so results are ordered by
// chunk ID.
func (r *ChunkRepository) GetChunksByCode(ctx context.Context, code string) ([]*core.Chunk, error) {
	chunks := []*core.Chunk{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeChunkCodePrefix(code)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk *core.Chunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}
			chunks = append(chunks, chunk)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// DeleteChunks removes chunks and their fingerprints. Missing IDs are ignored.
func (r *ChunkRepository) DeleteChunks(ctx context.Context, chunkIDs ...string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range chunkIDs {
			if err := tx.Delete(makeChunkKey(id)); err != nil {
				return err
			}
			if err := tx.Delete(makeChunkFingerprintKey(id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// readString reads a key's value as a string within a transaction.
func readString(tx *badger.Txn, key []byte) (string, error) {
	item, err := tx.Get(key)
	if err != nil {
		return "", err
	}
	var out string
	err = item.Value(func(val []byte) error {
		out = string(val)
		return nil
	})
	return out, err
}
