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


// Package mock provides test doubles for the ai package interfaces.
package mock

import "github.com/zeddq/cywil-sub002/ai"

// MockProvider is a test double for ai.AIProvider.
// It aggregates mock labeler and extractor instances.
type MockProvider struct {
	labeler   *MockSectionLabeler
	extractor *MockEntityExtractor
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.AIProvider interface for consistency with production
// constructors. Use GetMockLabeler()/GetMockExtractor() to access concrete
// types for test assertions.
func NewMockProvider() ai.AIProvider {
	return &MockProvider{
		labeler:   NewMockSectionLabeler(),
		extractor: NewMockEntityExtractor(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(labeler *MockSectionLabeler, extractor *MockEntityExtractor) ai.AIProvider {
	return &MockProvider{
		labeler:   labeler,
		extractor: extractor,
	}
}

// SectionLabeler returns the mock labeler.
func (p *MockProvider) SectionLabeler() ai.SectionLabeler {
	return p.labeler
}

// EntityExtractor returns the mock extractor.
func (p *MockProvider) EntityExtractor() ai.EntityExtractor {
	return p.extractor
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockLabeler returns the underlying mock labeler for test assertions.
func (p *MockProvider) GetMockLabeler() *MockSectionLabeler {
	return p.labeler
}

// GetMockExtractor returns the underlying mock extractor for test assertions.
func (p *MockProvider) GetMockExtractor() *MockEntityExtractor {
	return p.extractor
}
