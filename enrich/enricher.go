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


package enrich

import (
	"context"
	"log/slog"

	"github.com/zeddq/cywil-sub002/ai"
	"github.com/zeddq/cywil-sub002/core"
	"github.com/zeddq/cywil-sub002/ruling"
)

// Enricher labels ruling paragraphs and attaches entities. With an AI
// provider it asks the structured-output service first and falls back to
// regex on any service or schema error; without one it runs pure regex.
type Enricher struct {
	labeler   ai.SectionLabeler
	extractor ai.EntityExtractor
	fallback  *RegexExtractor
	logger    *slog.Logger
}

// NewEnricher creates an Enricher backed by the AI provider. A nil
// provider yields the regex-only strategy.
func NewEnricher(provider ai.AIProvider, logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Enricher{
		fallback: NewRegexExtractor(),
		logger:   logger.With("component", "enricher"),
	}
	if provider != nil {
		e.labeler = provider.SectionLabeler()
		e.extractor = provider.EntityExtractor()
	}
	return e
}

// Enrich assigns a section and an entity list to every paragraph.
// Paragraph order is preserved; a per-paragraph extraction failure never
// fails the document.
func (e *Enricher) Enrich(ctx context.Context, paragraphs []core.RawParagraph) []core.EnrichedParagraph {
	enriched := ruling.ClassifySections(paragraphs)

	if e.labeler != nil {
		texts := make([]string, len(paragraphs))
		for i, p := range paragraphs {
			texts[i] = p.Text
		}
		labels, err := e.labeler.LabelSections(ctx, texts)
		if err != nil {
			e.logger.Warn("section labeling failed, keeping heuristic labels", "err", err)
		} else {
			for i, label := range labels {
				enriched[i].Section = core.Section(label.Section)
			}
		}
	}

	for i := range enriched {
		enriched[i].Entities = e.extractEntities(ctx, enriched[i].Text)
	}
	return enriched
}

// Metadata assembles ruling metadata from the enriched paragraphs,
// falling back to full-text regex extraction when the header paragraphs
// yielded no docket.
func (e *Enricher) Metadata(paragraphs []core.EnrichedParagraph, fullText string) core.RulingMetadata {
	meta := ruling.AssembleMetadata(paragraphs)
	if meta.Docket == "" {
		meta = e.fallback.Metadata(fullText)
	}
	if meta.Date != "" {
		meta.Date = NormalizeDate(meta.Date)
	}
	return meta
}

func (e *Enricher) extractEntities(ctx context.Context, text string) []core.LegalEntity {
	if e.extractor != nil {
		raw, err := e.extractor.ExtractEntities(ctx, text)
		if err == nil {
			return ResolveOffsets(text, raw)
		}
		e.logger.Warn("entity extraction failed, using regex fallback", "err", err)
	}
	return e.fallback.Entities(text)
}
