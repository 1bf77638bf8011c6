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

package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// JSONLWriter appends records to a JSONL file as they become available,
// so a run interrupted midway leaves the already-processed documents on
// disk. Writes from concurrent workers are serialized; each record is
// flushed before Write returns.
type JSONLWriter struct {
	file    *os.File
	encoder *json.Encoder
	written int
	mu      sync.Mutex
}

// NewJSONLWriter opens path for writing, truncating any existing file.
func NewJSONLWriter(path string) (*JSONLWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", path, err)
	}
	return &JSONLWriter{
		file:    file,
		encoder: json.NewEncoder(file),
	}, nil
}

// Write appends one record as a JSON line and syncs it to disk.
func (w *JSONLWriter) Write(record any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return fmt.Errorf("writer is closed")
	}
	if err := w.encoder.Encode(record); err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	if err := w.file.Sync(); err != nil {
		return fmt.Errorf("syncing output file: %w", err)
	}
	w.written++
	return nil
}

// WriteAll appends every record in order, stopping at the first error.
func (w *JSONLWriter) WriteAll(records []any) error {
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// Written returns the number of records written so far.
func (w *JSONLWriter) Written() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Close flushes and closes the underlying file. Subsequent writes fail.
func (w *JSONLWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}
