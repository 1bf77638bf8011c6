package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUnit(t *testing.T) {
	valid := &StructuralUnit{Code: "KC", UnitID: "415", Content: "Kto z winy swej...", Status: UnitActive}
	require.NoError(t, ValidateUnit(valid))

	tests := []struct {
		name    string
		unit    *StructuralUnit
		wantErr error
	}{
		{"nil unit", nil, ErrInvalidUnit},
		{"missing code", &StructuralUnit{UnitID: "1", Status: UnitActive}, ErrEmptyCode},
		{"missing unit id", &StructuralUnit{Code: "KC", Status: UnitActive}, ErrEmptyUnitID},
		{"unknown status", &StructuralUnit{Code: "KC", UnitID: "1", Status: "gone"}, ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUnit(tt.unit)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// Deleted articles may carry empty content.
	deleted := &StructuralUnit{Code: "KC", UnitID: "9", Status: UnitDeleted}
	assert.NoError(t, ValidateUnit(deleted))
}

func TestValidateEntity(t *testing.T) {
	text := "Sygn. akt III CZP 1/20"

	ok := LegalEntity{Text: "III CZP 1/20", Label: LabelDocket, Start: 10, End: 22}
	require.NoError(t, ValidateEntity(ok, text))

	tests := []struct {
		name    string
		entity  LegalEntity
		wantErr error
	}{
		{"negative start", LegalEntity{Text: "x", Start: -1, End: 1}, ErrInvalidSpan},
		{"empty span", LegalEntity{Text: "", Start: 5, End: 5}, ErrInvalidSpan},
		{"end past text", LegalEntity{Text: "x", Start: 10, End: 100}, ErrInvalidSpan},
		{"text mismatch", LegalEntity{Text: "IV CZP 1/20", Start: 10, End: 21}, ErrSpanMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, ValidateEntity(tt.entity, text), tt.wantErr)
		})
	}
}

func TestValidateRulingRecord(t *testing.T) {
	valid := &RulingRecord{
		SourceFile: "iii_czp_1_20.pdf",
		Section:    SectionHeader,
		ParaNo:     1,
		Text:       "Sygn. akt III CZP 1/20",
		Entities:   []LegalEntity{},
	}
	require.NoError(t, ValidateRulingRecord(valid))

	tests := []struct {
		name    string
		rec     *RulingRecord
		wantErr error
	}{
		{"nil record", nil, ErrInvalidRecord},
		{"empty text", &RulingRecord{Section: SectionBody, ParaNo: 1}, ErrEmptyText},
		{"zero para_no", &RulingRecord{Section: SectionBody, Text: "x"}, ErrInvalidParaNo},
		{"empty section", &RulingRecord{ParaNo: 1, Text: "x"}, ErrEmptySection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, ValidateRulingRecord(tt.rec), tt.wantErr)
		})
	}
}

func TestValidateChunk(t *testing.T) {
	valid := &Chunk{
		ChunkID: "KC_415",
		Text:    "Kto z winy swej...",
		Metadata: ChunkMetadata{Code: "KC", Article: "415", Status: UnitActive, IndexingDate: "2026-08-30"},
	}
	require.NoError(t, ValidateChunk(valid))

	assert.ErrorIs(t, ValidateChunk(nil), ErrInvalidChunk)
	assert.ErrorIs(t, ValidateChunk(&Chunk{Metadata: ChunkMetadata{Code: "KC", Status: UnitActive}}), ErrEmptyUnitID)
	assert.ErrorIs(t, ValidateChunk(&Chunk{ChunkID: "KC_1", Metadata: ChunkMetadata{Status: UnitActive}}), ErrEmptyCode)
	assert.ErrorIs(t, ValidateChunk(&Chunk{ChunkID: "KC_1", Metadata: ChunkMetadata{Code: "KC"}}), ErrInvalidStatus)
}
