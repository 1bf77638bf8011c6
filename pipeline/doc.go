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


// Package pipeline orchestrates document ingestion: PDF extraction,
// structural parsing or paragraph segmentation, enrichment, chunking, and
// incremental JSONL output.
//
// Each document moves through an explicit state machine
// (pending -> extracting -> segmenting -> enriching -> chunked -> written,
// or failed at any stage). Failures are isolated: one failed document
// never aborts its siblings, and the run summary is a pure fold over final
// document states.
//
// Concurrency: in-flight documents are bounded by a semaphore to respect
// external rate limits, while CPU-bound stages are offloaded to a worker
// pool so they do not block concurrent I/O.
//
// Two operating modes are supported: interactive (full pipeline per
// document, bounded concurrency) and staged-batch (requests serialized to
// a JSONL file for the external service's bulk-job interface, reconciled
// later by composite key).
package pipeline
