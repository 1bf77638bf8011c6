package ai

// ParagraphLabel is one paragraph's section assignment as returned by a
// labeling service.
type ParagraphLabel struct {
	// ParaNo is the 1-based position of the paragraph in the submitted list.
	ParaNo int

	// Section is one of the values in SectionLabels.
	Section string
}

// Entity is a labeled span as returned by an extraction service. Text is
// the verbatim surface form; offsets into the owning paragraph are
// resolved by the caller.
type Entity struct {
	Text  string
	Label string
}

// SectionLabels defines the valid section values a labeler may return.
var SectionLabels = []string{
	"header",
	"legal_question",
	"reasoning",
	"disposition",
	"body",
}

// EntityLabels defines the valid entity labels an extractor may return.
var EntityLabels = []string{
	"LAW_REF",
	"DOCKET",
	"PERSON",
	"ORG",
	"DATE",
}
