package pdf

import "errors"

var (
	// ErrUnreadable indicates the PDF could not be opened or decoded.
	ErrUnreadable = errors.New("unreadable pdf")

	// ErrNoPages indicates extraction produced no pages.
	ErrNoPages = errors.New("pdf has no pages")

	// ErrBadLayout indicates the bbox layout output could not be parsed.
	ErrBadLayout = errors.New("malformed bbox layout")
)
