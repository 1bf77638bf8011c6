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


package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/zeddq/cywil-sub002/ai"
)

// retryBaseDelay seeds the exponential backoff between service attempts.
const retryBaseDelay = 500 * time.Millisecond

// SectionLabeler implements ai.SectionLabeler using OpenAI-compatible chat APIs.
type SectionLabeler struct {
	client      llms.Model
	maxAttempts int
	logger      *slog.Logger
}

// labelResponse matches the JSON structure the model is instructed to return.
type labelResponse struct {
	Paragraphs []struct {
		ParaNo  int    `json:"para_no"`
		Section string `json:"section"`
	} `json:"paragraphs"`
}

// newSectionLabeler is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newSectionLabeler(config *ai.Config) (*SectionLabeler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &SectionLabeler{
		client:      client,
		maxAttempts: config.MaxAttempts,
		logger:      slog.Default().With("component", "openai-labeler"),
	}, nil
}

// NewSectionLabeler creates a new section labeler using the provided configuration.
//
// Returns ai.SectionLabeler interface to enforce abstraction.
func NewSectionLabeler(config *ai.Config) (ai.SectionLabeler, error) {
	return newSectionLabeler(config)
}

// LabelSections labels the ordered paragraphs using an LLM. The response is
// schema-validated before being accepted; on persistent malformed output
// the last validation error is returned wrapping ai.ErrSchemaViolation.
func (l *SectionLabeler) LabelSections(ctx context.Context, paragraphs []string) ([]ai.ParagraphLabel, error) {
	if len(paragraphs) == 0 {
		return []ai.ParagraphLabel{}, nil
	}

	var input strings.Builder
	for i, p := range paragraphs {
		fmt.Fprintf(&input, "%d. %s\n", i+1, p)
	}

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(BuildSectionPrompt())},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(input.String())},
		},
	}

	var labels []ai.ParagraphLabel
	err := ai.RetryWithBackoff(ctx, func() error {
		response, err := l.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			l.logger.Warn("failed to generate content", "err", err)
			return err
		}
		if len(response.Choices) < 1 {
			return ai.ErrNoResponse
		}

		labels, err = ParseSectionResponse(response.Choices[0].Content, len(paragraphs))
		if err != nil {
			l.logger.Warn("labeler response failed validation", "err", err)
			return err
		}
		return nil
	}, l.maxAttempts, retryBaseDelay)
	if err != nil {
		l.logger.Error("failed to obtain valid labeling after retries", "err", err)
		return nil, err
	}

	l.logger.Debug("labeled paragraphs", "count", len(labels))
	return labels, nil
}
