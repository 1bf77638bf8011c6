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
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/zeddq/cywil-sub002/core"
	"github.com/zeddq/cywil-sub002/storage"
)

// RulingRepository implements storage.RulingRepository for BadgerDB.
type RulingRepository struct {
	backend *Backend
}

var _ storage.RulingRepository = (*RulingRepository)(nil)

// NewRulingRepository creates a new RulingRepository.
func NewRulingRepository(backend *Backend) (*RulingRepository, error) {
	return &RulingRepository{
		backend: backend,
	}, nil
}

// Close releases resources. RulingRepository has no resources to release.
func (r *RulingRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *RulingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutRuling stores a ruling keyed by its name, overwriting any previous
// version.
func (r *RulingRepository) PutRuling(ctx context.Context, ruling *core.Ruling) error {
	if ruling.Name == "" {
		return storage.ErrSerializationFailed
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeRulingKey(ruling.Name), storage.MarshalRuling(ruling)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetRuling retrieves a ruling by name.
func (r *RulingRepository) GetRuling(ctx context.Context, name string) (*core.Ruling, error) {
	var ruling *core.Ruling
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeRulingKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			ruling, err = storage.UnmarshalRuling(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return ruling, nil
}

// ListRulingNames returns the names of all stored rulings. Badger iterates
// keys in lexicographic order.
func (r *RulingRepository) ListRulingNames(ctx context.Context) ([]string, error) {
	names := []string{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(rulingRecordPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := string(iter.Item().Key())
			names = append(names, strings.TrimPrefix(key, rulingRecordPrefix+":"))
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return names, nil
}
