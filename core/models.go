package core

import (
	"fmt"
	"time"
)

// UnitStatus marks whether a statute unit is in force or has been repealed.
type UnitStatus string

const (
	// UnitActive marks a unit that is currently in force.
	UnitActive UnitStatus = "active"
	// UnitDeleted marks a repealed unit. Content is retained, possibly empty.
	UnitDeleted UnitStatus = "deleted"
)

// Hierarchy captures the structural context a unit was parsed under.
// Fields are empty when the source carries no such heading before the unit.
type Hierarchy struct {
	Book     string `json:"book,omitempty"`
	Division string `json:"division,omitempty"`
	Chapter  string `json:"chapter,omitempty"`
}

// StructuralUnit is one codified-law segment: an article, or a numbered
// paragraph within an article. Identity is (Code, UnitID); UnitID may carry
// a paragraph suffix, e.g. "415§2". Immutable once produced.
type StructuralUnit struct {
	Code        string     `json:"code"`
	UnitID      string     `json:"unit_id"`
	Article     string     `json:"article"`
	Paragraph   string     `json:"paragraph,omitempty"` // "main" when the article has no § subdivisions
	Title       string     `json:"title,omitempty"`
	Content     string     `json:"content"`
	SectionPath []string   `json:"section_path,omitempty"`
	Status      UnitStatus `json:"status"`
	Hierarchy   Hierarchy  `json:"hierarchy"`
}

// EntityLabel classifies a labeled span found in a paragraph.
type EntityLabel string

const (
	LabelLawRef EntityLabel = "LAW_REF"
	LabelDocket EntityLabel = "DOCKET"
	LabelPerson EntityLabel = "PERSON"
	LabelOrg    EntityLabel = "ORG"
	LabelDate   EntityLabel = "DATE"
)

// EntityLabels lists every label the extractors may produce.
var EntityLabels = []EntityLabel{LabelLawRef, LabelDocket, LabelPerson, LabelOrg, LabelDate}

// LegalEntity is a labeled text span. Start and End are byte offsets into
// the owning paragraph's text, so paragraph.Text[Start:End] == Text holds.
type LegalEntity struct {
	Text  string      `json:"text"`
	Label EntityLabel `json:"label"`
	Start int         `json:"start"`
	End   int         `json:"end"`
}

// Section labels the rhetorical role of a ruling paragraph.
type Section string

const (
	SectionHeader        Section = "header"
	SectionLegalQuestion Section = "legal_question"
	SectionReasoning     Section = "reasoning"
	SectionDisposition   Section = "disposition"
	SectionBody          Section = "body"
)

// RawParagraph is one text block of a ruling in source order.
// ParaNo is 1-based, contiguous, and never reordered after segmentation.
type RawParagraph struct {
	ParaNo int    `json:"para_no"`
	Text   string `json:"text"`
}

// EnrichedParagraph is a RawParagraph with its section label and the
// entities found within it.
type EnrichedParagraph struct {
	ParaNo   int           `json:"para_no"`
	Text     string        `json:"text"`
	Section  Section       `json:"section"`
	Entities []LegalEntity `json:"entities"`
}

// RulingMetadata holds case metadata assembled from header paragraphs.
// Once assembled it is attached to exactly one Ruling and never mutated.
type RulingMetadata struct {
	Docket string   `json:"docket,omitempty"`
	Date   string   `json:"date,omitempty"` // ISO-8601 when parseable, raw match otherwise
	Panel  []string `json:"panel"`
}

// Complete reports whether the metadata satisfies the output validity rule:
// a non-empty docket and at least one of date or panel.
func (m RulingMetadata) Complete() bool {
	return m.Docket != "" && (m.Date != "" || len(m.Panel) > 0)
}

// Ruling is the unit of output for one court decision.
type Ruling struct {
	Name       string              `json:"name"`
	Meta       RulingMetadata      `json:"meta"`
	Paragraphs []EnrichedParagraph `json:"paragraphs"`
}

// ChunkMetadata carries the provenance of a chunk back to its source unit.
type ChunkMetadata struct {
	Code         string     `json:"code"`
	Article      string     `json:"article"`
	Title        string     `json:"title,omitempty"`
	Section      string     `json:"section,omitempty"`
	Book         string     `json:"book,omitempty"`
	Chapter      string     `json:"chapter,omitempty"`
	Status       UnitStatus `json:"status"`
	Paragraph    string     `json:"paragraph,omitempty"`
	ChunkIndex   int        `json:"chunk_index"`
	Partial      bool       `json:"partial,omitempty"`
	IndexingDate string     `json:"indexing_date"`
}

// Chunk is a size-bounded text unit fed to embedding and search.
// ChunkID is deterministic: {code}_{unit_id} for whole units, with a
// _part{n} suffix (n starting at 1) when a unit was split.
type Chunk struct {
	ChunkID  string        `json:"chunk_id"`
	Text     string        `json:"text"`
	Metadata ChunkMetadata `json:"metadata"`
}

// ChunkID builds the deterministic chunk identifier for a unit.
// part <= 0 means the unit fit in a single chunk and carries no suffix.
func ChunkID(code, unitID string, part int) string {
	if part <= 0 {
		return fmt.Sprintf("%s_%s", code, unitID)
	}
	return fmt.Sprintf("%s_%s_part%d", code, unitID, part)
}

// RulingRecord is the per-paragraph JSONL record written for rulings.
type RulingRecord struct {
	SourceFile string        `json:"source_file"`
	Section    Section       `json:"section"`
	ParaNo     int           `json:"para_no"`
	Text       string        `json:"text"`
	Entities   []LegalEntity `json:"entities"`
}

// IndexingDate formats t the way chunk metadata records it.
func IndexingDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
