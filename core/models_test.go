package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkID(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		unitID string
		part   int
		want   string
	}{
		{"whole unit", "KC", "415", 0, "KC_415"},
		{"paragraph unit", "KC", "415§2", 0, "KC_415§2"},
		{"first part", "KC", "118", 1, "KC_118_part1"},
		{"later part", "KPC", "394", 3, "KPC_394_part3"},
		{"negative part treated as whole", "KC", "1", -1, "KC_1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChunkID(tt.code, tt.unitID, tt.part))
		})
	}
}

func TestRulingMetadataComplete(t *testing.T) {
	tests := []struct {
		name string
		meta RulingMetadata
		want bool
	}{
		{"docket and date", RulingMetadata{Docket: "III CZP 1/20", Date: "2020-01-01"}, true},
		{"docket and panel", RulingMetadata{Docket: "III CZP 1/20", Panel: []string{"Jan Kowalski"}}, true},
		{"docket only", RulingMetadata{Docket: "III CZP 1/20"}, false},
		{"date only", RulingMetadata{Date: "2020-01-01"}, false},
		{"empty", RulingMetadata{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.meta.Complete())
		})
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	a := Fingerprint([]byte("Art. 1. Foo."))
	b := Fingerprint([]byte("Art. 1. Foo."))
	c := Fingerprint([]byte("Art. 1. Bar."))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 32) // 16 bytes hex encoded
}

func TestChunkMUSRoundTrip(t *testing.T) {
	chunk := Chunk{
		ChunkID: "KC_415_part2",
		Text:    "Kto z winy swej wyrządził drugiemu szkodę...",
		Metadata: ChunkMetadata{
			Code:         "KC",
			Article:      "415",
			Title:        "[Odpowiedzialność deliktowa]",
			Book:         "KSIĘGA TRZECIA",
			Chapter:      "Rozdział I",
			Status:       UnitActive,
			Paragraph:    "2",
			ChunkIndex:   2,
			Partial:      true,
			IndexingDate: "2026-08-30",
		},
	}

	buf := make([]byte, ChunkMUS.Size(chunk))
	n := ChunkMUS.Marshal(chunk, buf)
	require.Equal(t, len(buf), n)

	got, m, err := ChunkMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, n, m)
	assert.Equal(t, chunk, got)
}

func TestRulingMUSRoundTrip(t *testing.T) {
	ruling := Ruling{
		Name: "III CZP 1/20",
		Meta: RulingMetadata{
			Docket: "III CZP 1/20",
			Date:   "2020-01-01",
			Panel:  []string{"Jan Kowalski", "Anna Nowak"},
		},
		Paragraphs: []EnrichedParagraph{
			{
				ParaNo:  1,
				Text:    "Sygn. akt III CZP 1/20",
				Section: SectionHeader,
				Entities: []LegalEntity{
					{Text: "III CZP 1/20", Label: LabelDocket, Start: 10, End: 22},
				},
			},
			{ParaNo: 2, Text: "uchwala się co następuje", Section: SectionDisposition, Entities: []LegalEntity{}},
		},
	}

	buf := make([]byte, RulingMUS.Size(ruling))
	n := RulingMUS.Marshal(ruling, buf)
	require.Equal(t, len(buf), n)

	got, m, err := RulingMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, n, m)
	assert.Equal(t, ruling, got)
}
