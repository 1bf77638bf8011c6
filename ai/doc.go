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


// Package ai provides abstractions for the structured-output services used
// during ruling enrichment.
//
// This package defines interfaces for labeling ruling paragraphs with
// rhetorical sections and for extracting labeled legal entities from
// paragraph text. It follows the dependency inversion principle: the
// enrichment and pipeline layers depend on these abstractions, never on a
// concrete API client.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - SectionLabeler: assigns section labels to ruling paragraphs
//   - EntityExtractor: extracts legal entities from a paragraph
//   - AIProvider: aggregates both services for convenient initialization
//
// Every AI result is validated against a fixed JSON schema before it is
// accepted; a response that fails validation is reported as
// ErrSchemaViolation so callers can fall back to regex extraction.
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external services
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider and friends) return INTERFACE
// types to enforce abstraction. Mock constructors return CONCRETE types so
// tests can inject behavior and assert call counts.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithHost("http://localhost:11434"))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	labels, err := provider.SectionLabeler().LabelSections(ctx, paragraphs)
//	entities, err := provider.EntityExtractor().ExtractEntities(ctx, text)
package ai
