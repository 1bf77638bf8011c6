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


// Package enrich attaches section labels and legal entities to ruling
// paragraphs, preferring the AI collaborator and falling back to regex
// extraction when it is unavailable or returns unusable output.
package enrich

import (
	"strings"
	"time"
	"unicode"

	"github.com/goodsign/monday"

	"github.com/zeddq/cywil-sub002/core"
)

const dateLayout = "2 January 2006"

// RegexExtractor is the deterministic fallback extraction strategy.
// It is stateless and safe for concurrent use.
type RegexExtractor struct{}

// NewRegexExtractor creates a RegexExtractor.
func NewRegexExtractor() *RegexExtractor {
	return &RegexExtractor{}
}

// Entities scans the paragraph with the fixed pattern table and returns
// every match with byte offsets. Overlapping matches under different
// labels are all kept.
func (x *RegexExtractor) Entities(text string) []core.LegalEntity {
	entities := []core.LegalEntity{}
	for _, row := range entityTable {
		for _, idx := range row.re.FindAllStringSubmatchIndex(text, -1) {
			g := row.group * 2
			if g+1 >= len(idx) || idx[g] < 0 {
				continue
			}
			start, end := idx[g], idx[g+1]
			entities = append(entities, core.LegalEntity{
				Text:  text[start:end],
				Label: core.EntityLabel(row.label),
				Start: start,
				End:   end,
			})
		}
	}
	return entities
}

// Docket returns the first docket signature found, trying the ordered
// pattern list. Empty when nothing matches.
func (x *RegexExtractor) Docket(text string) string {
	for _, re := range docketPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// Date returns the ruling date in ISO-8601 form when the labeled date
// phrase parses under the Polish locale, or the raw matched phrase when
// it does not. Empty when no phrase is found.
func (x *RegexExtractor) Date(text string) string {
	m := datePhraseRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	raw := m[1]
	t, err := monday.ParseInLocation(dateLayout, raw, time.UTC, monday.LocalePlPL)
	if err != nil {
		return raw
	}
	return t.Format("2006-01-02")
}

// Judges returns the panel members parsed from the judges line,
// comma-split with titles and roles stripped.
func (x *RegexExtractor) Judges(text string) []string {
	line := judgesLineRe.FindString(text)
	if line == "" {
		return []string{}
	}

	judges := []string{}
	for _, part := range strings.Split(line, ",") {
		part = judgeNoiseRe.ReplaceAllString(part, "")
		part = strings.TrimSpace(part)
		for _, title := range []string{"SSN", "SSA", "SSO", "SSR", "sędzia", "Sędzia"} {
			part = strings.TrimSpace(strings.TrimPrefix(part, title))
		}
		if isPersonName(part) {
			judges = append(judges, part)
		}
	}
	return judges
}

// Metadata runs the three fallback extractors over the full header text.
func (x *RegexExtractor) Metadata(text string) core.RulingMetadata {
	return core.RulingMetadata{
		Docket: x.Docket(text),
		Date:   x.Date(text),
		Panel:  x.Judges(text),
	}
}

// NormalizeDate converts a Polish written date to ISO-8601 when possible;
// dates already in ISO form or unparseable strings pass through unchanged.
func NormalizeDate(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimSuffix(cleaned, ".")
	cleaned = strings.TrimSpace(strings.TrimSuffix(cleaned, "r"))
	if m := datePhraseRe.FindStringSubmatch("dnia " + cleaned); m != nil {
		cleaned = m[1]
	}
	t, err := monday.ParseInLocation(dateLayout, cleaned, time.UTC, monday.LocalePlPL)
	if err != nil {
		return raw
	}
	return t.Format("2006-01-02")
}

// isPersonName reports whether the string looks like at least two
// capitalized words.
func isPersonName(s string) bool {
	words := strings.Fields(s)
	if len(words) < 2 {
		return false
	}
	for _, w := range words {
		first := []rune(w)[0]
		if !unicode.IsUpper(first) {
			return false
		}
	}
	return true
}
