package mock

import (
	"context"
	"strings"

	"github.com/zeddq/cywil-sub002/ai"
)

// MockSectionLabeler is a test double for ai.SectionLabeler.
// It allows custom behavior injection via function fields.
type MockSectionLabeler struct {
	// LabelSectionsFunc is called by LabelSections if set.
	// If nil, uses a simple positional/lexical default.
	LabelSectionsFunc func(ctx context.Context, paragraphs []string) ([]ai.ParagraphLabel, error)

	callCount int
}

// NewMockSectionLabeler creates a mock labeler with default behavior.
// Note: returns the concrete type to allow test assertions.
func NewMockSectionLabeler() *MockSectionLabeler {
	return &MockSectionLabeler{}
}

// LabelSections labels paragraphs with a crude heuristic: the first is the
// header, anything mentioning "zważył" is reasoning, the rest is body.
func (m *MockSectionLabeler) LabelSections(ctx context.Context, paragraphs []string) ([]ai.ParagraphLabel, error) {
	m.callCount++

	if m.LabelSectionsFunc != nil {
		return m.LabelSectionsFunc(ctx, paragraphs)
	}

	labels := make([]ai.ParagraphLabel, len(paragraphs))
	for i, p := range paragraphs {
		section := "body"
		switch {
		case i == 0:
			section = "header"
		case strings.Contains(strings.ToLower(p), "zważył"):
			section = "reasoning"
		}
		labels[i] = ai.ParagraphLabel{ParaNo: i + 1, Section: section}
	}
	return labels, nil
}

// CallCount returns the number of times LabelSections was called.
func (m *MockSectionLabeler) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockSectionLabeler) Reset() {
	m.callCount = 0
	m.LabelSectionsFunc = nil
}
