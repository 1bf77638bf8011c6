package openai

import (
	"encoding/json"
	"fmt"

	"github.com/zeddq/cywil-sub002/ai"
)

// ParseSectionResponse turns raw model output into ordered paragraph
// labels. It strips code fences, repairs and schema-validates the JSON,
// and rejects responses that skip or duplicate paragraphs. Exported so
// batch-mode reconciliation can parse stored responses the same way the
// online client does.
func ParseSectionResponse(content string, paragraphCount int) ([]ai.ParagraphLabel, error) {
	text := sanitizeResponse(content)
	if err := validateAgainst(sectionSchema, []byte(text)); err != nil {
		return nil, err
	}

	var result labelResponse
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("%w: %w", ai.ErrSchemaViolation, err)
	}

	labels := make([]ai.ParagraphLabel, paragraphCount)
	seen := make(map[int]bool, paragraphCount)
	for _, p := range result.Paragraphs {
		if p.ParaNo < 1 || p.ParaNo > paragraphCount || seen[p.ParaNo] {
			return nil, fmt.Errorf("%w: paragraph numbering mismatch", ai.ErrSchemaViolation)
		}
		seen[p.ParaNo] = true
		labels[p.ParaNo-1] = ai.ParagraphLabel{ParaNo: p.ParaNo, Section: p.Section}
	}
	if len(seen) != paragraphCount {
		return nil, fmt.Errorf("%w: response covers %d of %d paragraphs", ai.ErrSchemaViolation, len(seen), paragraphCount)
	}
	return labels, nil
}

// ParseEntityResponse turns raw model output into entities. It applies the
// same fence stripping, repair, and schema validation as the online client.
func ParseEntityResponse(content string) ([]ai.Entity, error) {
	text := sanitizeResponse(content)
	if err := validateAgainst(entitySchema, []byte(text)); err != nil {
		return nil, err
	}

	var result entityResponse
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("%w: %w", ai.ErrSchemaViolation, err)
	}

	entities := make([]ai.Entity, 0, len(result.Entities))
	for _, ent := range result.Entities {
		entities = append(entities, ai.Entity{Text: ent.Text, Label: ent.Label})
	}
	return entities, nil
}
