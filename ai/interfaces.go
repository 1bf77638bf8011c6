package ai

import "context"

// SectionLabeler assigns rhetorical section labels to ruling paragraphs.
// Implementations must be thread-safe for concurrent use.
type SectionLabeler interface {
	// LabelSections submits the ordered paragraph texts and returns one
	// label per paragraph, in input order. ParaNo in the result is 1-based
	// and refers back to the input position.
	// Returns an error wrapping ErrSchemaViolation when the service's
	// response does not conform to the expected schema; callers are then
	// expected to fall back to heuristic classification.
	LabelSections(ctx context.Context, paragraphs []string) ([]ParagraphLabel, error)
}

// EntityExtractor extracts labeled legal-entity spans from paragraph text.
// Implementations must be thread-safe for concurrent use.
type EntityExtractor interface {
	// ExtractEntities analyzes a single paragraph and returns the entities
	// found in it. Entities carry verbatim surface text and a label; byte
	// offsets are resolved by the caller against the paragraph.
	// Returns an empty slice if no entities are found.
	// Returns an error wrapping ErrSchemaViolation when the response fails
	// schema validation; callers are then expected to fall back to regex
	// extraction.
	ExtractEntities(ctx context.Context, text string) ([]Entity, error)
}

// AIProvider aggregates the enrichment services for convenient
// initialization and lifecycle management.
type AIProvider interface {
	// SectionLabeler returns the paragraph labeling service.
	// The returned SectionLabeler is safe for concurrent use.
	SectionLabeler() SectionLabeler

	// EntityExtractor returns the entity extraction service.
	// The returned EntityExtractor is safe for concurrent use.
	EntityExtractor() EntityExtractor

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
