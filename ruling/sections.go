package ruling

import (
	"strings"

	"github.com/zeddq/cywil-sub002/core"
)

var dispositionCues = []string{
	"oddala skargę",
	"oddala kasację",
	"oddala apelację",
	"oddala zażalenie",
	"uchyla zaskarżon",
	"zasądza",
	"odmawia podjęcia uchwały",
	"umarza postępowanie",
	"odrzuca skargę",
}

var reasoningCues = []string{
	"zważył, co następuje",
	"zważył co następuje",
	"sąd najwyższy zważył",
	"uzasadnienie",
}

var questionCues = []string{
	"zagadnienie prawne",
	"czy w świetle",
	"przedstawione pytanie prawne",
}

// ClassifySections labels each raw paragraph with its rhetorical section.
// The first paragraph is always the header; lexical cues pick out the
// legal question, the court's reasoning, and the disposition; everything
// else is body text.
func ClassifySections(paragraphs []core.RawParagraph) []core.EnrichedParagraph {
	out := make([]core.EnrichedParagraph, 0, len(paragraphs))
	for i, para := range paragraphs {
		section := classify(i, para.Text)
		out = append(out, core.EnrichedParagraph{
			ParaNo:   para.ParaNo,
			Text:     para.Text,
			Section:  section,
			Entities: []core.LegalEntity{},
		})
	}
	return out
}

func classify(index int, text string) core.Section {
	if index == 0 {
		return core.SectionHeader
	}
	lower := strings.ToLower(text)
	for _, cue := range dispositionCues {
		if strings.Contains(lower, cue) {
			return core.SectionDisposition
		}
	}
	for _, cue := range reasoningCues {
		if strings.Contains(lower, cue) {
			return core.SectionReasoning
		}
	}
	for _, cue := range questionCues {
		if strings.Contains(lower, cue) {
			return core.SectionLegalQuestion
		}
	}
	return core.SectionBody
}
