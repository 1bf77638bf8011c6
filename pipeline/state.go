package pipeline

import "fmt"

// Stage is the processing phase a document is in.
type Stage string

const (
	StagePending    Stage = "pending"
	StageExtracting Stage = "extracting"
	StageSegmenting Stage = "segmenting"
	StageEnriching  Stage = "enriching"
	StageChunked    Stage = "chunked"
	StageWritten    Stage = "written"
	StageFailed     Stage = "failed"
)

// transitions lists the legal forward edges of the document state machine.
// Statutes skip enriching (segmenting goes straight to chunked) and
// rulings skip chunking (enriching goes straight to written). Any stage
// may additionally move to StageFailed.
var transitions = map[Stage][]Stage{
	StagePending:    {StageExtracting},
	StageExtracting: {StageSegmenting},
	StageSegmenting: {StageEnriching, StageChunked},
	StageEnriching:  {StageWritten},
	StageChunked:    {StageWritten},
}

// DocState tracks one document through its run.
type DocState struct {
	SourceFile string
	Stage      Stage
	Err        error
}

// NewDocState creates a pending state for a source file.
func NewDocState(sourceFile string) *DocState {
	return &DocState{SourceFile: sourceFile, Stage: StagePending}
}

// Advance moves the document to the next stage. Moving anywhere from a
// terminal stage, or skipping stages, is an error.
func (s *DocState) Advance(to Stage) error {
	if to == StageFailed {
		s.Stage = StageFailed
		return nil
	}
	for _, next := range transitions[s.Stage] {
		if next == to {
			s.Stage = to
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s (%s)", ErrInvalidTransition, s.Stage, to, s.SourceFile)
}

// Fail marks the document failed with its root cause. Idempotent: the
// first recorded cause wins.
func (s *DocState) Fail(err error) {
	if s.Stage == StageFailed {
		return
	}
	s.Stage = StageFailed
	s.Err = err
}

// advance moves a possibly-nil state forward. Processors call it at
// stage boundaries; a nil state makes the call a no-op so processors
// can run standalone.
func advance(s *DocState, to Stage) error {
	if s == nil {
		return nil
	}
	return s.Advance(to)
}

// Done reports whether the document reached a terminal stage.
func (s *DocState) Done() bool {
	return s.Stage == StageWritten || s.Stage == StageFailed
}

// Summary aggregates the outcome of a run.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	// Unchanged counts chunk records skipped on upsert because the
	// stored fingerprint already matched.
	Unchanged int
	// Failures maps source file to the root-cause message.
	Failures map[string]string
}

// Summarize folds final document states into a run summary.
func Summarize(states []*DocState) Summary {
	sum := Summary{Total: len(states), Failures: map[string]string{}}
	for _, st := range states {
		switch st.Stage {
		case StageWritten:
			sum.Succeeded++
		case StageFailed:
			sum.Failed++
			if st.Err != nil {
				sum.Failures[st.SourceFile] = st.Err.Error()
			} else {
				sum.Failures[st.SourceFile] = "unknown failure"
			}
		}
	}
	return sum
}
