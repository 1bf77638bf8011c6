package enrich

import (
	"strings"

	"github.com/zeddq/cywil-sub002/ai"
	"github.com/zeddq/cywil-sub002/core"
)

// ResolveOffsets anchors service-returned entities to byte offsets in the
// paragraph. Repeated surface forms are resolved left to right; an entity
// whose text cannot be found in the paragraph is dropped. Used both by the
// online enricher and by batch-mode reconciliation.
func ResolveOffsets(text string, entities []ai.Entity) []core.LegalEntity {
	resolved := []core.LegalEntity{}
	// Per-surface-form scan cursor so duplicates land on successive
	// occurrences instead of the same one.
	cursors := map[string]int{}
	for _, ent := range entities {
		if ent.Text == "" {
			continue
		}
		from := cursors[ent.Text]
		idx := -1
		if from <= len(text) {
			idx = strings.Index(text[from:], ent.Text)
		}
		if idx < 0 {
			// Duplicate forms past the last occurrence wrap to the first.
			idx = strings.Index(text, ent.Text)
			from = 0
			if idx < 0 {
				continue
			}
		}
		start := from + idx
		end := start + len(ent.Text)
		cursors[ent.Text] = end
		resolved = append(resolved, core.LegalEntity{
			Text:  ent.Text,
			Label: core.EntityLabel(ent.Label),
			Start: start,
			End:   end,
		})
	}
	return resolved
}
