package pipeline

import "errors"

var (
	// ErrInvalidTransition indicates an illegal document state change.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrMissingResult indicates a batch response file has no entry for a
	// submitted request key.
	ErrMissingResult = errors.New("no result for request key")

	// ErrBadCustomID indicates a batch record's custom_id could not be decoded.
	ErrBadCustomID = errors.New("malformed custom_id")

	// ErrNoUnits indicates a statute yielded no structural units.
	ErrNoUnits = errors.New("no structural units parsed")

	// ErrNoParagraphs indicates a ruling yielded no paragraphs.
	ErrNoParagraphs = errors.New("no paragraphs segmented")

	// ErrNoStatuteProcessor indicates a statutes run was requested on an
	// orchestrator built without one.
	ErrNoStatuteProcessor = errors.New("statute processor required")

	// ErrNoRulingProcessor indicates a rulings run was requested on an
	// orchestrator built without one.
	ErrNoRulingProcessor = errors.New("ruling processor required")
)
