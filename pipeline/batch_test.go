package pipeline

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeddq/cywil-sub002/core"
)

func TestBatchKeyCustomID(t *testing.T) {
	assert.Equal(t, "sections-3", BatchKey{Stage: BatchStageSections, Doc: 3, Para: -1}.CustomID())
	assert.Equal(t, "entities-3-7", BatchKey{Stage: BatchStageEntities, Doc: 3, Para: 7}.CustomID())
}

func TestParseBatchKeyRoundTrip(t *testing.T) {
	for _, key := range []BatchKey{
		{Stage: BatchStageSections, Doc: 0, Para: -1},
		{Stage: BatchStageSections, Doc: 12, Para: -1},
		{Stage: BatchStageEntities, Doc: 0, Para: 0},
		{Stage: BatchStageEntities, Doc: 4, Para: 31},
	} {
		parsed, err := ParseBatchKey(key.CustomID())
		require.NoError(t, err, key.CustomID())
		assert.Equal(t, key, parsed)
	}
}

func TestParseBatchKeyRejectsMalformed(t *testing.T) {
	for _, id := range []string{
		"",
		"sections",
		"sections-x",
		"sections-1-2",
		"entities-1",
		"entities-1-x",
		"embeddings-1-2",
		"sections-1-2-3",
	} {
		_, err := ParseBatchKey(id)
		assert.ErrorIs(t, err, ErrBadCustomID, "id %q", id)
	}
}

func TestExtractedDocumentsRoundTrip(t *testing.T) {
	docs := []ExtractedDocument{
		{SourceFile: "a.pdf", Paragraphs: []core.RawParagraph{
			{ParaNo: 1, Text: "Sygn. akt III CZP 11/20"},
			{ParaNo: 2, Text: "uzasadnienie"},
		}},
		{SourceFile: "b.pdf", Paragraphs: []core.RawParagraph{
			{ParaNo: 1, Text: "nagłówek"},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteExtractedDocuments(&buf, docs))

	got, err := ReadExtractedDocuments(&buf)
	require.NoError(t, err)
	assert.Equal(t, docs, got)
}

func TestWriteBatchRequests(t *testing.T) {
	docs := []ExtractedDocument{
		{SourceFile: "a.pdf", Paragraphs: []core.RawParagraph{
			{ParaNo: 1, Text: "pierwszy"},
			{ParaNo: 2, Text: "drugi"},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBatchRequests(&buf, docs, "gpt-4o-mini"))

	var requests []BatchRequest
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var req BatchRequest
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &req))
		requests = append(requests, req)
	}

	// One sections request plus one entities request per paragraph.
	require.Len(t, requests, 3)
	assert.Equal(t, "sections-0", requests[0].CustomID)
	assert.Equal(t, "entities-0-0", requests[1].CustomID)
	assert.Equal(t, "entities-0-1", requests[2].CustomID)

	for _, req := range requests {
		assert.Equal(t, "POST", req.Method)
		assert.Equal(t, "/v1/chat/completions", req.URL)
		assert.Equal(t, "gpt-4o-mini", req.Body.Model)
		assert.Equal(t, "json_object", req.Body.ResponseFormat.Type)
		require.Len(t, req.Body.Messages, 2)
		assert.Equal(t, "system", req.Body.Messages[0].Role)
		assert.Equal(t, "user", req.Body.Messages[1].Role)
	}

	// The sections request numbers paragraphs like the online labeler.
	assert.Contains(t, requests[0].Body.Messages[1].Content, "1. pierwszy")
	assert.Contains(t, requests[0].Body.Messages[1].Content, "2. drugi")
	assert.Equal(t, "drugi", requests[2].Body.Messages[1].Content)
}

func resultLine(customID string, status int, content string) string {
	body := map[string]any{
		"choices": []any{
			map[string]any{"message": map[string]any{"content": content}},
		},
	}
	line := map[string]any{
		"custom_id": customID,
		"response":  map[string]any{"status_code": status, "body": body},
	}
	encoded, _ := json.Marshal(line)
	return string(encoded)
}

func TestReadBatchResults(t *testing.T) {
	input := strings.Join([]string{
		resultLine("sections-0", 200, `{"paragraphs":[]}`),
		resultLine("entities-0-1", 200, `{"entities":[]}`),
		resultLine("entities-0-2", 500, `rate limited`),
		"",
	}, "\n")

	results, err := ReadBatchResults(strings.NewReader(input), nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	content, err := results.Lookup(BatchKey{Stage: BatchStageSections, Doc: 0, Para: -1})
	require.NoError(t, err)
	assert.Equal(t, `{"paragraphs":[]}`, content)

	_, err = results.Lookup(BatchKey{Stage: BatchStageEntities, Doc: 0, Para: 2})
	assert.ErrorIs(t, err, ErrMissingResult)
}

func TestReadBatchResultsRejectsBadCustomID(t *testing.T) {
	_, err := ReadBatchResults(strings.NewReader(resultLine("bogus", 200, "x")), nil)
	assert.ErrorIs(t, err, ErrBadCustomID)
}

const headerText = "Sygn. akt III CZP 11/20 z dnia 12 marca 2020 r. SSN Jan Kowalski"

func reconcileDocs() []ExtractedDocument {
	return []ExtractedDocument{
		{SourceFile: "uchwala.pdf", Paragraphs: []core.RawParagraph{
			{ParaNo: 1, Text: headerText},
			{ParaNo: 2, Text: "Sąd Najwyższy zważył, co następuje."},
			{ParaNo: 3, Text: "oddala skargę kasacyjną"},
		}},
	}
}

func TestReconcilePartialCoverage(t *testing.T) {
	docs := reconcileDocs()

	// Only paragraphs 0 and 2 of the three have entity results; the
	// sections result is present.
	results := BatchResults{
		{Stage: BatchStageSections, Doc: 0, Para: -1}: `{"paragraphs":[
			{"para_no":1,"section":"header"},
			{"para_no":2,"section":"reasoning"},
			{"para_no":3,"section":"disposition"}]}`,
		{Stage: BatchStageEntities, Doc: 0, Para: 0}: `{"entities":[{"text":"III CZP 11/20","label":"DOCKET"},{"text":"12 marca 2020","label":"DATE"},{"text":"Jan Kowalski","label":"PERSON"}]}`,
		{Stage: BatchStageEntities, Doc: 0, Para: 2}: `{"entities":[]}`,
	}

	out := NewReconciler(nil).Reconcile(docs, results)
	require.Len(t, out, 1)
	records := out[0].Records
	require.Len(t, records, 3)

	assert.Equal(t, core.SectionHeader, records[0].Section)
	assert.Equal(t, core.SectionReasoning, records[1].Section)
	assert.Equal(t, core.SectionDisposition, records[2].Section)

	// The uncovered paragraph keeps an empty entity list instead of
	// failing the document.
	assert.NotEmpty(t, records[0].Entities)
	assert.Empty(t, records[1].Entities)
	assert.Empty(t, records[2].Entities)

	assert.Equal(t, "III CZP 11/20", out[0].Ruling.Meta.Docket)
	assert.NotEmpty(t, out[0].Ruling.Meta.Date)
}

func TestReconcileModelLabelOverridesLexical(t *testing.T) {
	docs := reconcileDocs()

	// The model relabels paragraph 2 against its lexical cue, and tries
	// to relabel the header. Only the former sticks.
	out := NewReconciler(nil).Reconcile(docs, BatchResults{
		{Stage: BatchStageSections, Doc: 0, Para: -1}: `{"paragraphs":[
			{"para_no":1,"section":"body"},
			{"para_no":2,"section":"legal_question"},
			{"para_no":3,"section":"disposition"}]}`,
	})
	require.Len(t, out, 1)
	records := out[0].Records

	assert.Equal(t, core.SectionHeader, records[0].Section)
	assert.Equal(t, core.SectionLegalQuestion, records[1].Section)
	assert.Equal(t, core.SectionDisposition, records[2].Section)
}

func TestReconcileMissingSectionsFallsBackToLexical(t *testing.T) {
	docs := reconcileDocs()

	out := NewReconciler(nil).Reconcile(docs, BatchResults{
		{Stage: BatchStageEntities, Doc: 0, Para: 0}: `{"entities":[{"text":"III CZP 11/20","label":"DOCKET"},{"text":"12 marca 2020","label":"DATE"}]}`,
	})
	require.Len(t, out, 1)
	records := out[0].Records

	assert.Equal(t, core.SectionHeader, records[0].Section)
	assert.Equal(t, core.SectionReasoning, records[1].Section)
	assert.Equal(t, core.SectionDisposition, records[2].Section)
}

func TestReconcileEntityOffsetsValid(t *testing.T) {
	docs := reconcileDocs()
	results := BatchResults{
		{Stage: BatchStageEntities, Doc: 0, Para: 0}: `{"entities":[{"text":"III CZP 11/20","label":"DOCKET"},{"text":"12 marca 2020","label":"DATE"},{"text":"Jan Kowalski","label":"PERSON"}]}`,
	}

	out := NewReconciler(nil).Reconcile(docs, results)
	require.Len(t, out, 1)
	for _, rec := range out[0].Records {
		for _, ent := range rec.Entities {
			assert.NoError(t, core.ValidateEntity(ent, rec.Text),
				fmt.Sprintf("entity %q in paragraph %d", ent.Text, rec.ParaNo))
		}
	}
}

func TestReconcileBadEntityResultFallsBackToRegex(t *testing.T) {
	docs := reconcileDocs()
	results := BatchResults{
		{Stage: BatchStageEntities, Doc: 0, Para: 0}: `not json at all`,
	}

	out := NewReconciler(nil).Reconcile(docs, results)
	require.Len(t, out, 1)

	// Regex extraction still finds the docket in the header paragraph.
	labels := make(map[core.EntityLabel]bool)
	for _, ent := range out[0].Records[0].Entities {
		labels[ent.Label] = true
	}
	assert.True(t, labels["DOCKET"])
}

func TestReconcileFiltersInvalidMetadata(t *testing.T) {
	docs := []ExtractedDocument{
		{SourceFile: "szkic.pdf", Paragraphs: []core.RawParagraph{
			{ParaNo: 1, Text: "notatka bez sygnatury"},
			{ParaNo: 2, Text: "treść robocza"},
		}},
	}

	out := NewReconciler(nil).Reconcile(docs, BatchResults{})
	assert.Empty(t, out)
}
