package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/zeddq/cywil-sub002/ai"
)

var (
	sectionSchema = jsonschema.MustCompileString("sections.json", SectionResponseSchema)
	entitySchema  = jsonschema.MustCompileString("entities.json", EntityResponseSchema)
)

// validateAgainst checks raw model output against a compiled schema.
// A parse or validation failure is reported as ai.ErrSchemaViolation so
// callers can trigger the regex fallback.
func validateAgainst(schema *jsonschema.Schema, data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %w", ai.ErrSchemaViolation, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %w", ai.ErrSchemaViolation, err)
	}
	return nil
}

// sanitizeResponse strips markdown code fences and surrounding noise from
// a model response, then repairs common JSON defects.
func sanitizeResponse(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	return repairJSON(text)
}
