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
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/zeddq/cywil-sub002/chunk"
	"github.com/zeddq/cywil-sub002/core"
	"github.com/zeddq/cywil-sub002/pdf"
	"github.com/zeddq/cywil-sub002/statute"
)

// StatuteProcessor turns one statute PDF into chunk records.
type StatuteProcessor struct {
	extractor *pdf.Extractor
	parser    *statute.Parser
	chunker   *chunk.Chunker
	logger    *slog.Logger
}

// NewStatuteProcessor wires the statute stages together.
func NewStatuteProcessor(extractor *pdf.Extractor, parser *statute.Parser, chunker *chunk.Chunker, logger *slog.Logger) *StatuteProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatuteProcessor{
		extractor: extractor,
		parser:    parser,
		chunker:   chunker,
		logger:    logger.With("component", "statute-processor"),
	}
}

// CodeFromFilename derives the statute code from the source filename:
// "kc.pdf" -> "KC", "kodeks_cywilny.pdf" -> "KC", "kpc.pdf" -> "KPC".
// Unknown names fall back to the uppercased base name.
func CodeFromFilename(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	switch strings.ToLower(base) {
	case "kc", "kodeks_cywilny", "kodeks-cywilny":
		return "KC"
	case "kpc", "kodeks_postepowania_cywilnego", "kodeks-postepowania-cywilnego":
		return "KPC"
	}
	return strings.ToUpper(base)
}

// Process extracts, parses and chunks a single statute PDF. The returned
// chunks are ordered by unit position then chunk index. A non-nil state
// is advanced through the statute stages as they complete.
func (p *StatuteProcessor) Process(ctx context.Context, path string, state *DocState) ([]core.Chunk, error) {
	code := CodeFromFilename(path)
	p.logger.Info("processing statute", "file", path, "code", code)

	result, err := p.extractor.ExtractText(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", path, err)
	}
	if err := advance(state, StageSegmenting); err != nil {
		return nil, err
	}

	units := p.parser.Parse(code, result.Text)
	if len(units) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoUnits)
	}
	if err := advance(state, StageChunked); err != nil {
		return nil, err
	}

	indexingDate := core.IndexingDate(time.Now())
	var chunks []core.Chunk
	for i := range units {
		chunks = append(chunks, p.chunker.Split(units[i], indexingDate)...)
	}

	p.logger.Info("statute processed",
		"file", path, "units", len(units), "chunks", len(chunks))
	return chunks, nil
}
