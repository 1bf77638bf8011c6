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
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/semaphore"

	"github.com/zeddq/cywil-sub002/core"
	"github.com/zeddq/cywil-sub002/storage"
)

// Orchestrator runs document processors over a set of input files with
// bounded concurrency. One document's failure never aborts the run: the
// document is marked failed and the rest continue.
type Orchestrator struct {
	statutes   *StatuteProcessor
	rulings    *RulingProcessor
	chunkRepo  storage.ChunkRepository
	rulingRepo storage.RulingRepository
	pool       *ants.Pool
	workers    int
	progressW  io.Writer
	logger     *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithWorkers sets the number of documents processed concurrently.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithWorkers(n int) Option {
	return func(o *Orchestrator) error {
		if n < 1 {
			n = 1
		}
		if o.pool != nil {
			o.pool.Release()
		}
		pool, err := ants.NewPool(n)
		if err != nil {
			return err
		}
		o.pool = pool
		o.workers = n
		return nil
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// WithProgressWriter sets where the progress line is written.
// Default is os.Stderr.
func WithProgressWriter(w io.Writer) Option {
	return func(o *Orchestrator) error {
		if w == nil {
			w = io.Discard
		}
		o.progressW = w
		return nil
	}
}

// WithChunkRepository makes the orchestrator upsert statute chunks into
// storage after each document, in addition to writing JSONL records.
func WithChunkRepository(repo storage.ChunkRepository) Option {
	return func(o *Orchestrator) error {
		o.chunkRepo = repo
		return nil
	}
}

// WithRulingRepository makes the orchestrator upsert finished rulings
// into storage after each document.
func WithRulingRepository(repo storage.RulingRepository) Option {
	return func(o *Orchestrator) error {
		o.rulingRepo = repo
		return nil
	}
}

// NewOrchestrator creates an orchestrator over the given processors.
// Either processor may be nil when the corresponding mode is not used.
func NewOrchestrator(statutes *StatuteProcessor, rulings *RulingProcessor, opts ...Option) (*Orchestrator, error) {
	workers := runtime.NumCPU() / 2
	if workers < 1 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		statutes:  statutes,
		rulings:   rulings,
		pool:      pool,
		workers:   workers,
		progressW: os.Stderr,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if optErr := opt(o); optErr != nil {
			o.Release()
			return nil, optErr
		}
	}
	o.logger = o.logger.With("component", "orchestrator")
	return o, nil
}

// RunStatutes processes every statute file and appends chunk records to
// writer as each document finishes.
func (o *Orchestrator) RunStatutes(ctx context.Context, files []string, writer *JSONLWriter) (Summary, error) {
	if o.statutes == nil {
		return Summary{}, ErrNoStatuteProcessor
	}
	var unchanged atomic.Int64
	summary, err := o.run(ctx, files, func(ctx context.Context, state *DocState) error {
		chunks, err := o.statutes.Process(ctx, state.SourceFile, state)
		if err != nil {
			return err
		}
		for i := range chunks {
			if err := writer.Write(&chunks[i]); err != nil {
				return err
			}
		}
		if o.chunkRepo != nil {
			pointers := make([]*core.Chunk, len(chunks))
			for i := range chunks {
				pointers[i] = &chunks[i]
			}
			written, err := o.chunkRepo.PutChunks(ctx, pointers...)
			if err != nil {
				return err
			}
			unchanged.Add(int64(len(pointers) - written))
		}
		return nil
	})
	summary.Unchanged = int(unchanged.Load())
	return summary, err
}

// RunRulings processes every ruling file and appends paragraph records
// to writer as each document finishes. Documents filtered out by the
// metadata validity rule count as succeeded but write nothing.
func (o *Orchestrator) RunRulings(ctx context.Context, files []string, writer *JSONLWriter) (Summary, error) {
	if o.rulings == nil {
		return Summary{}, ErrNoRulingProcessor
	}
	return o.run(ctx, files, func(ctx context.Context, state *DocState) error {
		result, err := o.rulings.Process(ctx, state.SourceFile, state)
		if err != nil {
			return err
		}
		if result == nil {
			// Filtered out: nothing to write, but the document is done.
			return nil
		}
		for i := range result.Records {
			if err := writer.Write(&result.Records[i]); err != nil {
				return err
			}
		}
		if o.rulingRepo != nil {
			if err := o.rulingRepo.PutRuling(ctx, &result.Ruling); err != nil {
				return err
			}
		}
		return nil
	})
}

// documentFunc processes a single document end to end, advancing its
// state at stage boundaries.
type documentFunc func(ctx context.Context, state *DocState) error

// run fans the files out over the worker pool. A weighted semaphore
// bounds the number of documents in flight so an early failure in
// pool sizing cannot queue unbounded work.
func (o *Orchestrator) run(ctx context.Context, files []string, process documentFunc) (Summary, error) {
	runID := uuid.NewString()
	logger := o.logger.With("run_id", runID)
	logger.Info("starting run", "documents", len(files), "workers", o.workers)

	states := make([]*DocState, len(files))
	for i, path := range files {
		states[i] = NewDocState(path)
	}

	progress := NewProgressTracker(o.progressW, len(files), 1)
	progress.Start()

	sem := semaphore.NewWeighted(int64(o.workers))
	var wg sync.WaitGroup

	for i := range files {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Context cancelled: mark the rest as failed and stop.
			for j := i; j < len(files); j++ {
				states[j].Fail(err)
				progress.Fail()
			}
			break
		}

		state := states[i]
		wg.Add(1)
		submitErr := o.pool.Submit(func() {
			defer wg.Done()
			defer sem.Release(1)

			if err := o.processDocument(ctx, state, process); err != nil {
				state.Fail(err)
				progress.Fail()
				logger.Error("document failed", "file", state.SourceFile, "err", err)
				return
			}
			progress.Complete()
		})
		if submitErr != nil {
			wg.Done()
			sem.Release(1)
			state.Fail(submitErr)
			progress.Fail()
		}
	}

	wg.Wait()
	progress.Finish()

	summary := Summarize(states)
	logger.Info("run finished",
		"succeeded", summary.Succeeded, "failed", summary.Failed, "elapsed", progress.Elapsed())
	return summary, nil
}

// processDocument walks a document through its stage transitions.
func (o *Orchestrator) processDocument(ctx context.Context, state *DocState, process documentFunc) error {
	if err := state.Advance(StageExtracting); err != nil {
		return err
	}
	if err := process(ctx, state); err != nil {
		return err
	}
	if state.Stage != StageWritten {
		return state.Advance(StageWritten)
	}
	return nil
}

// Release frees the worker pool. The orchestrator should not be used
// after calling Release.
func (o *Orchestrator) Release() {
	if o.pool != nil {
		o.pool.Release()
	}
}
