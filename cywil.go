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

// Package cywil converts Polish statutes and Supreme Court rulings into
// hierarchically tagged, entity-enriched chunks for semantic search.
// Store bundles the persistence layer the pipeline writes into.
package cywil

import (
	"log/slog"

	"github.com/zeddq/cywil-sub002/storage"
	"github.com/zeddq/cywil-sub002/storage/badger"
)

// Store owns a BadgerDB backend and the repositories on top of it.
type Store struct {
	backend    *badger.Backend
	chunkRepo  storage.ChunkRepository
	rulingRepo storage.RulingRepository
	logger     *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*storeOptions)

type storeOptions struct {
	inMemory bool
}

// WithInMemory keeps all data in memory. Used by tests and dry runs.
func WithInMemory() StoreOption {
	return func(o *storeOptions) {
		o.inMemory = true
	}
}

// Open opens (creating if needed) the store at path.
func Open(path string, opts ...StoreOption) (*Store, error) {
	options := &storeOptions{}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(path, options.inMemory)
	if err != nil {
		return nil, err
	}

	chunkRepo, err := badger.NewChunkRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	rulingRepo, err := badger.NewRulingRepository(backend)
	if err != nil {
		chunkRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Store{
		backend:    backend,
		chunkRepo:  chunkRepo,
		rulingRepo: rulingRepo,
		logger:     slog.Default(),
	}, nil
}

// Close closes the repositories and the backend.
func (s *Store) Close() error {
	if err := s.rulingRepo.Close(); err != nil {
		s.logger.Error("error closing ruling repository", "err", err)
		return err
	}
	if err := s.chunkRepo.Close(); err != nil {
		s.logger.Error("error closing chunk repository", "err", err)
		return err
	}
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// ChunkRepository exposes statute chunk storage.
func (s *Store) ChunkRepository() storage.ChunkRepository {
	return s.chunkRepo
}

// RulingRepository exposes ruling storage.
func (s *Store) RulingRepository() storage.RulingRepository {
	return s.rulingRepo
}
