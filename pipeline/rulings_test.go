package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeddq/cywil-sub002/core"
	"github.com/zeddq/cywil-sub002/enrich"
	"github.com/zeddq/cywil-sub002/pdf"
	"github.com/zeddq/cywil-sub002/ruling"
)

func newRulingProcessor(runner pdf.Runner) *RulingProcessor {
	extractor := pdf.NewExtractorWithRunner(pdf.Config{}, runner, nil)
	return NewRulingProcessor(extractor, ruling.NewSegmenter(nil), enrich.NewEnricher(nil, nil), nil)
}

func TestRulingProcessor(t *testing.T) {
	runner := &pathRunner{outputs: map[string][]byte{
		"in/uchwala.pdf": []byte(rulingXML()),
	}}
	proc := newRulingProcessor(runner)

	state := NewDocState("in/uchwala.pdf")
	require.NoError(t, state.Advance(StageExtracting))

	result, err := proc.Process(context.Background(), "in/uchwala.pdf", state)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, StageEnriching, state.Stage)

	assert.Equal(t, "III CZP 11/20", result.Ruling.Meta.Docket)
	assert.NotEmpty(t, result.Ruling.Meta.Date)
	assert.Contains(t, result.Ruling.Meta.Panel, "Jan Kowalski")
	// The ruling is keyed by its docket once metadata is complete.
	assert.Equal(t, "III CZP 11/20", result.Ruling.Name)

	require.Len(t, result.Records, 3)
	for _, rec := range result.Records {
		assert.Equal(t, "uchwala.pdf", rec.SourceFile)
		require.NoError(t, core.ValidateRulingRecord(&rec))
		for _, ent := range rec.Entities {
			assert.NoError(t, core.ValidateEntity(ent, rec.Text))
		}
	}
}

func TestRulingProcessorFiltersIncompleteMetadata(t *testing.T) {
	noDocket := xmlDoc(
		xmlBlock(74, "Notatka robocza bez sygnatury") +
			xmlBlock(200, "Treść dokumentu do przeglądu."),
	)
	runner := &pathRunner{outputs: map[string][]byte{
		"szkic.pdf": []byte(noDocket),
	}}
	proc := newRulingProcessor(runner)

	result, err := proc.Process(context.Background(), "szkic.pdf", nil)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestRulingProcessorExtract(t *testing.T) {
	runner := &pathRunner{outputs: map[string][]byte{
		"uchwala.pdf": []byte(rulingXML()),
	}}
	proc := newRulingProcessor(runner)

	doc, err := proc.Extract(context.Background(), "uchwala.pdf")
	require.NoError(t, err)
	assert.Equal(t, "uchwala.pdf", doc.SourceFile)
	require.Len(t, doc.Paragraphs, 3)
	assert.Equal(t, 1, doc.Paragraphs[0].ParaNo)
	assert.Contains(t, doc.Paragraphs[0].Text, "Sygn. akt III CZP 11/20")
}
