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


package ruling

import (
	"strings"

	"github.com/zeddq/cywil-sub002/core"
)

// judgeTitles are the tokens that mark a PERSON entity as a panel member
// when found near it in the header.
var judgeTitles = []string{"SSN", "SSA", "SSO", "SSR", "sędzia", "Sędzia", "Przewodniczący"}

const (
	judgeCtxBefore = 10
	judgeCtxAfter  = 1
)

// AssembleMetadata derives case metadata from header-section paragraphs:
// the first DOCKET entity, the first DATE entity, and every PERSON entity
// with a judge title in its immediate context. Re-running it on the same
// paragraphs yields the same result.
func AssembleMetadata(paragraphs []core.EnrichedParagraph) core.RulingMetadata {
	meta := core.RulingMetadata{Panel: []string{}}
	for _, para := range paragraphs {
		if para.Section != core.SectionHeader {
			continue
		}
		for _, ent := range para.Entities {
			switch ent.Label {
			case core.LabelDocket:
				if meta.Docket == "" {
					meta.Docket = ent.Text
				}
			case core.LabelDate:
				if meta.Date == "" {
					meta.Date = ent.Text
				}
			case core.LabelPerson:
				if nearJudgeTitle(para.Text, ent) {
					meta.Panel = append(meta.Panel, ent.Text)
				}
			}
		}
	}
	return meta
}

// BuildRuling attaches assembled metadata to the paragraphs. The ruling is
// named after its docket; sourceFile stands in when no docket was found so
// the record stays traceable.
func BuildRuling(sourceFile string, paragraphs []core.EnrichedParagraph) core.Ruling {
	meta := AssembleMetadata(paragraphs)
	name := meta.Docket
	if name == "" {
		name = sourceFile
	}
	return core.Ruling{Name: name, Meta: meta, Paragraphs: paragraphs}
}

// nearJudgeTitle reports whether a judge title occurs within the entity's
// local context window inside the paragraph text.
func nearJudgeTitle(text string, ent core.LegalEntity) bool {
	if ent.Start < 0 || ent.End > len(text) || ent.Start >= ent.End {
		return false
	}
	lo := ent.Start - judgeCtxBefore
	if lo < 0 {
		lo = 0
	}
	hi := ent.End + judgeCtxAfter
	if hi > len(text) {
		hi = len(text)
	}
	window := text[lo:hi]
	for _, title := range judgeTitles {
		if strings.Contains(window, title) {
			return true
		}
	}
	return false
}
