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


// Package storage defines repository interfaces for persisting ingestion
// output between runs.
//
// The pipeline writes JSONL as its exchange format; the repositories here
// additionally keep chunks and rulings in a local key-value store so that
// re-running ingestion can skip documents whose output has not changed.
//
// # Repositories
//
//   - ChunkRepository: statute chunks keyed by chunk_id, with a content
//     fingerprint per chunk for cheap change detection
//   - RulingRepository: rulings keyed by their docket-derived name
//
// Implementations live in sub-packages (storage/badger). All repositories
// must be safe for concurrent use.
//
// Records are serialized with the MUS binary format via the serializers in
// the core package.
package storage
