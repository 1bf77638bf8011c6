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

package pipeline

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/zeddq/cywil-sub002/ai/openai"
	"github.com/zeddq/cywil-sub002/core"
	"github.com/zeddq/cywil-sub002/enrich"
	"github.com/zeddq/cywil-sub002/ruling"
)

// BatchStage identifies which enrichment stage a batch request belongs to.
type BatchStage string

const (
	// BatchStageSections labels one request per document carrying all of
	// its paragraphs for section classification.
	BatchStageSections BatchStage = "sections"

	// BatchStageEntities labels one request per paragraph for entity
	// extraction.
	BatchStageEntities BatchStage = "entities"
)

// BatchKey is the structured composite key encoded in a batch request's
// custom_id. Para is -1 for document-level (sections) requests.
type BatchKey struct {
	Stage BatchStage
	Doc   int
	Para  int
}

// CustomID renders the key as the wire custom_id:
// "sections-3" or "entities-3-7".
func (k BatchKey) CustomID() string {
	if k.Para < 0 {
		return fmt.Sprintf("%s-%d", k.Stage, k.Doc)
	}
	return fmt.Sprintf("%s-%d-%d", k.Stage, k.Doc, k.Para)
}

// ParseBatchKey decodes a custom_id back into its composite key.
func ParseBatchKey(customID string) (BatchKey, error) {
	parts := strings.Split(customID, "-")
	if len(parts) < 2 || len(parts) > 3 {
		return BatchKey{}, fmt.Errorf("%w: %q", ErrBadCustomID, customID)
	}

	stage := BatchStage(parts[0])
	switch stage {
	case BatchStageSections:
		if len(parts) != 2 {
			return BatchKey{}, fmt.Errorf("%w: %q", ErrBadCustomID, customID)
		}
	case BatchStageEntities:
		if len(parts) != 3 {
			return BatchKey{}, fmt.Errorf("%w: %q", ErrBadCustomID, customID)
		}
	default:
		return BatchKey{}, fmt.Errorf("%w: unknown stage in %q", ErrBadCustomID, customID)
	}

	doc, err := strconv.Atoi(parts[1])
	if err != nil || doc < 0 {
		return BatchKey{}, fmt.Errorf("%w: %q", ErrBadCustomID, customID)
	}

	para := -1
	if len(parts) == 3 {
		para, err = strconv.Atoi(parts[2])
		if err != nil || para < 0 {
			return BatchKey{}, fmt.Errorf("%w: %q", ErrBadCustomID, customID)
		}
	}
	return BatchKey{Stage: stage, Doc: doc, Para: para}, nil
}

// ExtractedDocument is one segmented ruling awaiting batch enrichment.
// Document order in the extracted file defines the Doc index of every
// batch key derived from it.
type ExtractedDocument struct {
	SourceFile string              `json:"source_file"`
	Paragraphs []core.RawParagraph `json:"paragraphs"`
}

// chatMessage is one message of a chat-completion request body.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type requestBody struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

// BatchRequest is one line of the bulk-job request file.
type BatchRequest struct {
	CustomID string      `json:"custom_id"`
	Method   string      `json:"method"`
	URL      string      `json:"url"`
	Body     requestBody `json:"body"`
}

const batchEndpoint = "/v1/chat/completions"

// WriteExtractedDocuments appends one JSON line per document.
func WriteExtractedDocuments(w io.Writer, docs []ExtractedDocument) error {
	enc := json.NewEncoder(w)
	for i := range docs {
		if err := enc.Encode(&docs[i]); err != nil {
			return fmt.Errorf("encoding extracted document %d: %w", i, err)
		}
	}
	return nil
}

// ReadExtractedDocuments reads the JSONL written by WriteExtractedDocuments.
func ReadExtractedDocuments(r io.Reader) ([]ExtractedDocument, error) {
	var docs []ExtractedDocument
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var doc ExtractedDocument
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			return nil, fmt.Errorf("decoding extracted document %d: %w", len(docs), err)
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// WriteBatchRequests emits the bulk-job request file for the documents:
// one sections request per document, one entities request per paragraph.
// Prompts and response format match the interactive-mode client so the
// two strategies stay interchangeable.
func WriteBatchRequests(w io.Writer, docs []ExtractedDocument, model string) error {
	enc := json.NewEncoder(w)
	for docIdx, doc := range docs {
		sections := BatchRequest{
			CustomID: BatchKey{Stage: BatchStageSections, Doc: docIdx, Para: -1}.CustomID(),
			Method:   "POST",
			URL:      batchEndpoint,
			Body: requestBody{
				Model: model,
				Messages: []chatMessage{
					{Role: "system", Content: openai.BuildSectionPrompt()},
					{Role: "user", Content: numberParagraphs(doc.Paragraphs)},
				},
				ResponseFormat: responseFormat{Type: "json_object"},
			},
		}
		if err := enc.Encode(&sections); err != nil {
			return fmt.Errorf("encoding sections request for document %d: %w", docIdx, err)
		}

		for paraIdx, para := range doc.Paragraphs {
			entities := BatchRequest{
				CustomID: BatchKey{Stage: BatchStageEntities, Doc: docIdx, Para: paraIdx}.CustomID(),
				Method:   "POST",
				URL:      batchEndpoint,
				Body: requestBody{
					Model: model,
					Messages: []chatMessage{
						{Role: "system", Content: openai.BuildEntityPrompt()},
						{Role: "user", Content: para.Text},
					},
					ResponseFormat: responseFormat{Type: "json_object"},
				},
			}
			if err := enc.Encode(&entities); err != nil {
				return fmt.Errorf("encoding entities request %d/%d: %w", docIdx, paraIdx, err)
			}
		}
	}
	return nil
}

// numberParagraphs renders paragraphs the way the interactive labeler
// submits them: "<n>. <text>" per line.
func numberParagraphs(paragraphs []core.RawParagraph) string {
	var sb strings.Builder
	for i, para := range paragraphs {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, para.Text)
	}
	return sb.String()
}

// BatchResults maps each answered request key to the model's content.
type BatchResults map[BatchKey]string

// Lookup returns the content for key, or ErrMissingResult when the
// response file did not cover it.
func (r BatchResults) Lookup(key BatchKey) (string, error) {
	content, ok := r[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingResult, key.CustomID())
	}
	return content, nil
}

// batchResponseLine mirrors the bulk-job output record shape.
type batchResponseLine struct {
	CustomID string `json:"custom_id"`
	Response struct {
		StatusCode int `json:"status_code"`
		Body       struct {
			Choices []struct {
				Message struct {
					Content string `json:"content"`
				} `json:"message"`
			} `json:"choices"`
		} `json:"body"`
	} `json:"response"`
}

// ReadBatchResults parses a bulk-job output file. Lines with a non-2xx
// status or an empty choice list are skipped; reconciliation treats
// them the same as requests the file never covered.
func ReadBatchResults(r io.Reader, logger *slog.Logger) (BatchResults, error) {
	if logger == nil {
		logger = slog.Default()
	}
	results := BatchResults{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var resp batchResponseLine
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			return nil, fmt.Errorf("decoding batch result line %d: %w", lineNo, err)
		}
		key, err := ParseBatchKey(resp.CustomID)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if resp.Response.StatusCode < 200 || resp.Response.StatusCode >= 300 {
			logger.Warn("skipping failed batch result",
				"custom_id", resp.CustomID, "status", resp.Response.StatusCode)
			continue
		}
		if len(resp.Response.Body.Choices) == 0 {
			logger.Warn("skipping empty batch result", "custom_id", resp.CustomID)
			continue
		}
		results[key] = resp.Response.Body.Choices[0].Message.Content
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Reconciler matches batch results back to extracted documents.
type Reconciler struct {
	fallback *enrich.RegexExtractor
	logger   *slog.Logger
}

// NewReconciler creates a reconciler. Regex extraction backs up every
// request the response file failed to cover.
func NewReconciler(logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		fallback: enrich.NewRegexExtractor(),
		logger:   logger.With("component", "batch-reconciler"),
	}
}

// Reconcile joins results to documents by composite key and applies the
// metadata validity filter. A partially covered document is still
// produced: paragraphs without an entities result keep empty entity
// lists, and a missing sections result falls back to the lexical
// classifier.
func (r *Reconciler) Reconcile(docs []ExtractedDocument, results BatchResults) []RulingResult {
	var out []RulingResult
	for docIdx := range docs {
		result := r.reconcileDocument(docIdx, &docs[docIdx], results)
		if result != nil {
			out = append(out, *result)
		}
	}
	return out
}

func (r *Reconciler) reconcileDocument(docIdx int, doc *ExtractedDocument, results BatchResults) *RulingResult {
	enriched := ruling.ClassifySections(doc.Paragraphs)

	content, err := results.Lookup(BatchKey{Stage: BatchStageSections, Doc: docIdx, Para: -1})
	if err != nil {
		r.logger.Warn("sections result missing, using lexical classification",
			"file", doc.SourceFile, "err", err)
	} else if labels, parseErr := openai.ParseSectionResponse(content, len(doc.Paragraphs)); parseErr != nil {
		r.logger.Warn("sections result rejected, using lexical classification",
			"file", doc.SourceFile, "err", parseErr)
	} else {
		for _, label := range labels {
			if label.ParaNo >= 1 && label.ParaNo <= len(enriched) {
				enriched[label.ParaNo-1].Section = core.Section(label.Section)
			}
		}
		// The first paragraph stays header regardless of the model.
		if len(enriched) > 0 {
			enriched[0].Section = core.SectionHeader
		}
	}

	for paraIdx := range enriched {
		key := BatchKey{Stage: BatchStageEntities, Doc: docIdx, Para: paraIdx}
		content, err := results.Lookup(key)
		if err != nil {
			r.logger.Debug("entities result missing, keeping empty list",
				"file", doc.SourceFile, "para", paraIdx, "err", err)
			continue
		}
		entities, parseErr := openai.ParseEntityResponse(content)
		if parseErr != nil {
			r.logger.Warn("entities result rejected, using regex extraction",
				"file", doc.SourceFile, "para", paraIdx, "err", parseErr)
			enriched[paraIdx].Entities = r.fallback.Entities(enriched[paraIdx].Text)
			continue
		}
		enriched[paraIdx].Entities = enrich.ResolveOffsets(enriched[paraIdx].Text, entities)
	}

	meta := ruling.AssembleMetadata(enriched)
	if meta.Docket == "" {
		meta = r.fallback.Metadata(fullText(doc.Paragraphs))
	}
	if meta.Date != "" {
		meta.Date = enrich.NormalizeDate(meta.Date)
	}
	if !meta.Complete() {
		r.logger.Warn("ruling filtered out by metadata validity rule",
			"file", doc.SourceFile, "docket", meta.Docket)
		return nil
	}

	rulingDoc := ruling.BuildRuling(doc.SourceFile, enriched)
	rulingDoc.Meta = meta
	if meta.Docket != "" {
		rulingDoc.Name = meta.Docket
	}

	records := make([]core.RulingRecord, 0, len(enriched))
	for _, para := range enriched {
		records = append(records, core.RulingRecord{
			SourceFile: doc.SourceFile,
			Section:    para.Section,
			ParaNo:     para.ParaNo,
			Text:       para.Text,
			Entities:   para.Entities,
		})
	}
	return &RulingResult{Ruling: rulingDoc, Records: records}
}
