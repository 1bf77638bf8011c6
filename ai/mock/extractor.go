package mock

import (
	"context"
	"regexp"

	"github.com/zeddq/cywil-sub002/ai"
)

var mockDocketRe = regexp.MustCompile(`\b[IVXL]+\s[A-Z]{2,4}\s\d+/\d{2}\b`)

// MockEntityExtractor is a test double for ai.EntityExtractor.
// It allows custom behavior injection via function fields.
type MockEntityExtractor struct {
	// ExtractEntitiesFunc is called by ExtractEntities if set.
	// If nil, a minimal docket-only default is used.
	ExtractEntitiesFunc func(ctx context.Context, text string) ([]ai.Entity, error)

	callCount int
}

// NewMockEntityExtractor creates a mock extractor with default behavior.
// Note: returns the concrete type to allow test assertions.
func NewMockEntityExtractor() *MockEntityExtractor {
	return &MockEntityExtractor{}
}

// ExtractEntities finds docket signatures only; enough for wiring tests
// without pretending to be a real model.
func (m *MockEntityExtractor) ExtractEntities(ctx context.Context, text string) ([]ai.Entity, error) {
	m.callCount++

	if m.ExtractEntitiesFunc != nil {
		return m.ExtractEntitiesFunc(ctx, text)
	}

	entities := []ai.Entity{}
	for _, match := range mockDocketRe.FindAllString(text, -1) {
		entities = append(entities, ai.Entity{Text: match, Label: "DOCKET"})
	}
	return entities, nil
}

// CallCount returns the number of times ExtractEntities was called.
func (m *MockEntityExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockEntityExtractor) Reset() {
	m.callCount = 0
	m.ExtractEntitiesFunc = nil
}
