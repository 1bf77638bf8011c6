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


// Package ruling reconstructs court-ruling paragraphs from PDF layout,
// classifies their rhetorical sections, and assembles case metadata.
package ruling

import (
	"log/slog"
	"sort"
	"strings"
	"unicode"

	"github.com/zeddq/cywil-sub002/core"
	"github.com/zeddq/cywil-sub002/pdf"
)

// Segmenter rebuilds paragraph boundaries from page line geometry.
type Segmenter struct {
	logger *slog.Logger
}

// NewSegmenter creates a Segmenter.
func NewSegmenter(logger *slog.Logger) *Segmenter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Segmenter{logger: logger.With("component", "ruling-segmenter")}
}

// candidate is a provisional paragraph with its vertical anchor.
type candidate struct {
	y    float64
	text string
}

// Segment produces the ordered, cleaned paragraphs of a ruling.
// Paragraph numbers are 1-based and follow reading order; they are never
// reordered afterwards.
func (s *Segmenter) Segment(pages []pdf.Page) []core.RawParagraph {
	var texts []string
	carry := ""

	for pi, page := range pages {
		cands := collectCandidates(page)

		// Block extraction order is not top-to-bottom; impose it.
		sort.SliceStable(cands, func(i, j int) bool { return cands[i].y < cands[j].y })

		if len(cands) == 0 {
			continue
		}

		if carry != "" {
			cands[0].text = carry + "\n" + cands[0].text
			carry = ""
		}

		for i, cd := range cands {
			// The bottom candidate may continue on the next page unless it
			// already closed a sentence.
			if i == len(cands)-1 && pi < len(pages)-1 && !endsSentence(cd.text) {
				carry = cd.text
				continue
			}
			texts = append(texts, cd.text)
		}
	}
	if carry != "" {
		texts = append(texts, carry)
	}

	paragraphs := make([]core.RawParagraph, 0, len(texts))
	for _, t := range texts {
		cleaned := Clean(t)
		if cleaned == "" {
			continue
		}
		paragraphs = append(paragraphs, core.RawParagraph{
			ParaNo: len(paragraphs) + 1,
			Text:   cleaned,
		})
	}

	s.logger.Debug("segmented ruling", "pages", len(pages), "paragraphs", len(paragraphs))
	return paragraphs
}

// collectCandidates walks a page's blocks in extraction order. Single-line
// and all-uppercase blocks (headings) are standalone candidates; runs of
// multi-line blocks are buffered into one candidate until a later block
// breaks the run.
func collectCandidates(page pdf.Page) []candidate {
	var cands []candidate
	var buf []string
	bufY := 0.0

	flush := func() {
		if len(buf) > 0 {
			cands = append(cands, candidate{y: bufY, text: strings.Join(buf, "\n")})
			buf = nil
		}
	}

	for _, block := range page.Blocks {
		if len(block.Lines) == 0 {
			continue
		}
		text := block.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		if len(block.Lines) == 1 || isAllUpper(text) {
			flush()
			cands = append(cands, candidate{y: block.YMin, text: text})
			continue
		}
		if len(buf) == 0 {
			bufY = block.YMin
		}
		for _, line := range block.Lines {
			buf = append(buf, line.Text())
		}
	}
	flush()
	return cands
}

// isAllUpper reports whether text has letters and none of them lowercase.
func isAllUpper(text string) bool {
	hasLetter := false
	for _, r := range text {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

// endsSentence reports whether the text closes with a sentence terminator.
func endsSentence(text string) bool {
	trimmed := strings.TrimRight(text, " \t\n\"”)")
	if trimmed == "" {
		return false
	}
	switch trimmed[len(trimmed)-1] {
	case '.', '!', '?', ':', ';':
		return true
	}
	return false
}
