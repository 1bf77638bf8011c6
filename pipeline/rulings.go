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

	"github.com/zeddq/cywil-sub002/core"
	"github.com/zeddq/cywil-sub002/enrich"
	"github.com/zeddq/cywil-sub002/pdf"
	"github.com/zeddq/cywil-sub002/ruling"
)

// RulingResult is the output of processing one ruling PDF. Records hold
// one entry per paragraph; Ruling bundles the same paragraphs with the
// assembled case metadata for storage.
type RulingResult struct {
	Ruling  core.Ruling
	Records []core.RulingRecord
}

// RulingProcessor turns one Supreme Court ruling PDF into per-paragraph
// records. Documents whose metadata fails the validity rule (no docket,
// or neither date nor panel) are dropped with a warning rather than
// failing the run.
type RulingProcessor struct {
	extractor *pdf.Extractor
	segmenter *ruling.Segmenter
	enricher  *enrich.Enricher
	logger    *slog.Logger
}

// NewRulingProcessor wires the ruling stages together.
func NewRulingProcessor(extractor *pdf.Extractor, segmenter *ruling.Segmenter, enricher *enrich.Enricher, logger *slog.Logger) *RulingProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &RulingProcessor{
		extractor: extractor,
		segmenter: segmenter,
		enricher:  enricher,
		logger:    logger.With("component", "ruling-processor"),
	}
}

// Process extracts, segments and enriches a single ruling PDF.
// A nil result with nil error means the document was filtered out by
// the metadata validity rule. A non-nil state is advanced through the
// ruling stages as they complete.
func (p *RulingProcessor) Process(ctx context.Context, path string, state *DocState) (*RulingResult, error) {
	sourceFile := filepath.Base(path)
	p.logger.Info("processing ruling", "file", sourceFile)

	pages, err := p.extractor.ExtractLayout(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", path, err)
	}
	if err := advance(state, StageSegmenting); err != nil {
		return nil, err
	}

	paragraphs := p.segmenter.Segment(pages)
	if len(paragraphs) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoParagraphs)
	}
	if err := advance(state, StageEnriching); err != nil {
		return nil, err
	}

	enriched := p.enricher.Enrich(ctx, paragraphs)
	meta := p.enricher.Metadata(enriched, fullText(paragraphs))
	if !meta.Complete() {
		p.logger.Warn("ruling filtered out by metadata validity rule",
			"file", sourceFile, "docket", meta.Docket, "date", meta.Date, "panel", len(meta.Panel))
		return nil, nil
	}

	doc := ruling.BuildRuling(sourceFile, enriched)
	doc.Meta = meta
	if meta.Docket != "" {
		doc.Name = meta.Docket
	}

	records := make([]core.RulingRecord, 0, len(enriched))
	for _, para := range enriched {
		records = append(records, core.RulingRecord{
			SourceFile: sourceFile,
			Section:    para.Section,
			ParaNo:     para.ParaNo,
			Text:       para.Text,
			Entities:   para.Entities,
		})
	}

	p.logger.Info("ruling processed",
		"file", sourceFile, "docket", meta.Docket, "paragraphs", len(records))
	return &RulingResult{Ruling: doc, Records: records}, nil
}

// Extract runs only the extraction and segmentation stages, producing
// the per-document record the staged-batch mode serializes.
func (p *RulingProcessor) Extract(ctx context.Context, path string) (*ExtractedDocument, error) {
	sourceFile := filepath.Base(path)

	pages, err := p.extractor.ExtractLayout(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", path, err)
	}
	paragraphs := p.segmenter.Segment(pages)
	if len(paragraphs) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoParagraphs)
	}
	return &ExtractedDocument{SourceFile: sourceFile, Paragraphs: paragraphs}, nil
}

func fullText(paragraphs []core.RawParagraph) string {
	var sb strings.Builder
	for i, para := range paragraphs {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(para.Text)
	}
	return sb.String()
}
