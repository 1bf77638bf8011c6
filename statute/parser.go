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


// Package statute parses codified-law text into ordered structural units.
//
// The parser splits a statute on article markers, splits article bodies on
// paragraph markers, and attaches the running book/division/chapter context
// to every unit. Structural anomalies are never fatal: missing markers
// degrade to coarser-grained units rather than errors.
package statute

import (
	"log/slog"
	"strings"

	"github.com/zeddq/cywil-sub002/core"
)

// MainParagraph tags units of articles that have no § subdivisions.
const MainParagraph = "main"

// PreambleID is the unit id of the synthetic unit emitted for text that
// precedes the first article marker.
const PreambleID = "preamble"

// Parser turns flat statute text into structural units.
// A Parser is stateless and safe for concurrent use; per-document parse
// context lives on the stack of Parse.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a statute parser.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger.With("component", "statute-parser")}
}

// Parse produces the ordered units of the statute identified by code.
// Output order follows source order, and re-parsing identical input yields
// byte-identical units.
func (p *Parser) Parse(code, text string) []core.StructuralUnit {
	markers := articleRe.FindAllStringSubmatchIndex(text, -1)

	var units []core.StructuralUnit
	ctx := parseContext{}

	if len(markers) == 0 {
		// No article markers at all: degrade to a single preamble unit so
		// the document is not silently dropped.
		if body := strings.TrimSpace(text); len(body) >= minPreambleLen {
			p.logger.Warn("no article markers found, emitting preamble only", "code", code)
			units = append(units, p.preambleUnit(code, body, ctx))
		}
		return units
	}

	if head := text[:markers[0][0]]; len(strings.TrimSpace(head)) >= minPreambleLen {
		ctx = ctx.scanHeadings(head)
		units = append(units, p.preambleUnit(code, strings.TrimSpace(stripHeadings(head)), ctx))
	} else {
		ctx = ctx.scanHeadings(text[:markers[0][0]])
	}

	for i, m := range markers {
		article := text[m[2]:m[3]]
		end := len(text)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}
		body := text[m[1]:end]

		// Headings land in the trailing text of the preceding article's
		// segment, so a body's headings take effect from the next article on.
		next := ctx.scanHeadings(body)
		body = stripHeadings(body)

		units = append(units, p.articleUnits(code, article, body, ctx)...)
		ctx = next
	}

	p.logger.Debug("parsed statute", "code", code, "articles", len(markers), "units", len(units))
	return units
}

// articleUnits emits the unit(s) of one article body.
func (p *Parser) articleUnits(code, article, body string, ctx parseContext) []core.StructuralUnit {
	status := core.UnitActive
	if deletedRe.MatchString(head(body, deletedScanWindow)) {
		status = core.UnitDeleted
	}

	title := ""
	if m := titleRe.FindStringSubmatch(head(body, titleScanWindow)); m != nil {
		title = strings.TrimSpace(m[1])
		body = strings.Replace(body, m[0], "", 1)
	}

	base := core.StructuralUnit{
		Code:        code,
		Article:     article,
		Title:       title,
		SectionPath: ctx.sectionPath(),
		Status:      status,
		Hierarchy:   ctx.hierarchy(),
	}

	paras := paragraphRe.FindAllStringSubmatchIndex(body, -1)
	if len(paras) == 0 {
		// Whole body is the article. Emitted even when stripping leaves
		// nothing: deleted articles legitimately have empty content.
		unit := base
		unit.UnitID = article
		unit.Paragraph = MainParagraph
		unit.Content = strings.TrimSpace(body)
		return []core.StructuralUnit{unit}
	}

	var units []core.StructuralUnit

	// Text between the article marker and the first § is the article's own
	// intro; keep it as the main unit when it carries content.
	if intro := strings.TrimSpace(body[:paras[0][0]]); intro != "" {
		unit := base
		unit.UnitID = article
		unit.Paragraph = MainParagraph
		unit.Content = intro
		units = append(units, unit)
	}

	for i, pm := range paras {
		paraNo := body[pm[2]:pm[3]]
		end := len(body)
		if i+1 < len(paras) {
			end = paras[i+1][0]
		}
		unit := base
		unit.UnitID = article + "§" + paraNo
		unit.Paragraph = paraNo
		unit.Content = strings.TrimSpace(body[pm[1]:end])
		units = append(units, unit)
	}
	return units
}

func (p *Parser) preambleUnit(code, content string, ctx parseContext) core.StructuralUnit {
	return core.StructuralUnit{
		Code:        code,
		UnitID:      PreambleID,
		Article:     PreambleID,
		Paragraph:   MainParagraph,
		Content:     content,
		SectionPath: ctx.sectionPath(),
		Status:      core.UnitActive,
		Hierarchy:   ctx.hierarchy(),
	}
}

// stripHeadings removes book/division/chapter heading lines from a body so
// they do not leak into unit content.
func stripHeadings(body string) string {
	body = bookRe.ReplaceAllString(body, "")
	body = divisionRe.ReplaceAllString(body, "")
	body = chapterRe.ReplaceAllString(body, "")
	return body
}

// head returns the first n bytes of s, aligned back to a rune boundary.
func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}
