package pdf

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Config holds settings for the poppler-based extractor.
type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	MaxPages  int    // 0 = no limit
}

// TextResult is the outcome of a plain-text extraction.
type TextResult struct {
	Pages    []string // form-feed separated page texts, in order
	Text     string   // full document text
	Duration time.Duration
}

// Extractor extracts text and layout primitives from PDF files.
// It shells out to pdftotext through a stubbable Runner.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

// NewExtractor creates an Extractor using the system pdftotext binary.
func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger.With("component", "pdf-extractor")}
}

// NewExtractorWithRunner creates an Extractor with a custom Runner, for tests.
func NewExtractorWithRunner(cfg Config, runner Runner, logger *slog.Logger) *Extractor {
	e := NewExtractor(cfg, logger)
	e.runner = runner
	return e
}

// ExtractText returns the document's plain text, one entry per page.
// Page order follows the document; a form feed separates pages in Text.
func (e *Extractor) ExtractText(ctx context.Context, path string) (TextResult, error) {
	start := time.Now()

	args := []string{"-layout", "-enc", "UTF-8", "-eol", "unix"}
	if e.cfg.MaxPages > 0 {
		args = append(args, "-l", fmt.Sprintf("%d", e.cfg.MaxPages))
	}
	args = append(args, path, "-")

	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, args...)
	if err != nil {
		return TextResult{}, fmt.Errorf("%w: %s: %w (%s)", ErrUnreadable, path, err, strings.TrimSpace(string(errb)))
	}

	text := string(out)
	pages := strings.Split(text, "\f")
	// pdftotext terminates the last page with a form feed
	if len(pages) > 0 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}
	if len(pages) == 0 {
		return TextResult{}, fmt.Errorf("%w: %s", ErrNoPages, path)
	}

	e.logger.Debug("extracted text", "path", path, "pages", len(pages), "bytes", len(text))
	return TextResult{Pages: pages, Text: text, Duration: time.Since(start)}, nil
}

// ExtractLayout returns per-page text blocks with line bounding boxes,
// parsed from pdftotext -bbox-layout output.
func (e *Extractor) ExtractLayout(ctx context.Context, path string) ([]Page, error) {
	args := []string{"-bbox-layout", "-enc", "UTF-8"}
	if e.cfg.MaxPages > 0 {
		args = append(args, "-l", fmt.Sprintf("%d", e.cfg.MaxPages))
	}
	args = append(args, path, "-")

	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w (%s)", ErrUnreadable, path, err, strings.TrimSpace(string(errb)))
	}

	pages, err := parseBBoxLayout(out)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPages, path)
	}

	e.logger.Debug("extracted layout", "path", path, "pages", len(pages))
	return pages, nil
}
