// Package chunk splits structural units into size-bounded chunks for
// embedding and search, preserving provenance metadata.
package chunk

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/zeddq/cywil-sub002/core"
)

// Numbered points ("1) ...", "2. ...") are the preferred split boundaries
// inside long units.
var pointRe = regexp.MustCompile(`(?m)^\s*\d+[).]\s+`)

// Config bounds chunk sizes.
type Config struct {
	// MaxChunkSize is the maximum chunk content length in bytes.
	MaxChunkSize int
	// Overlap is the length of the trailing slice of a chunk re-seeded
	// into the next one. Must be smaller than MaxChunkSize.
	Overlap int
}

// DefaultConfig returns the chunking defaults.
func DefaultConfig() Config {
	return Config{MaxChunkSize: 2000, Overlap: 200}
}

// Chunker converts structural units into chunks. Chunking is deterministic:
// the same unit always yields a byte-identical chunk list.
type Chunker struct {
	cfg    Config
	logger *slog.Logger
}

// NewChunker creates a Chunker, falling back to defaults for zero values.
func NewChunker(cfg Config, logger *slog.Logger) *Chunker {
	def := DefaultConfig()
	if cfg.MaxChunkSize <= 0 {
		cfg.MaxChunkSize = def.MaxChunkSize
	}
	if cfg.Overlap < 0 || cfg.Overlap >= cfg.MaxChunkSize {
		cfg.Overlap = def.Overlap
		if cfg.Overlap >= cfg.MaxChunkSize {
			cfg.Overlap = cfg.MaxChunkSize / 10
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Chunker{cfg: cfg, logger: logger.With("component", "chunker")}
}

// Split turns one unit into one or more chunks. Units within the size limit
// become exactly one chunk with no part suffix; oversized units are split on
// numbered-point boundaries with a trailing overlap carried between parts.
func (c *Chunker) Split(unit core.StructuralUnit, indexingDate string) []core.Chunk {
	meta := core.ChunkMetadata{
		Code:         unit.Code,
		Article:      unit.Article,
		Title:        unit.Title,
		Section:      strings.Join(unit.SectionPath, " / "),
		Book:         unit.Hierarchy.Book,
		Chapter:      unit.Hierarchy.Chapter,
		Status:       unit.Status,
		Paragraph:    unit.Paragraph,
		IndexingDate: indexingDate,
	}

	if len(unit.Content) <= c.cfg.MaxChunkSize {
		return []core.Chunk{{
			ChunkID:  core.ChunkID(unit.Code, unit.UnitID, 0),
			Text:     unit.Content,
			Metadata: meta,
		}}
	}

	parts := c.splitContent(unit.Content)
	chunks := make([]core.Chunk, 0, len(parts))
	for i, text := range parts {
		m := meta
		m.ChunkIndex = i + 1
		m.Partial = true
		chunks = append(chunks, core.Chunk{
			ChunkID:  core.ChunkID(unit.Code, unit.UnitID, i+1),
			Text:     text,
			Metadata: m,
		})
	}

	c.logger.Debug("split oversized unit",
		"unit", unit.UnitID,
		"content_len", len(unit.Content),
		"chunks", len(chunks))
	return chunks
}

// splitContent accumulates numbered-point segments up to the size limit,
// re-seeding each new chunk with the previous chunk's trailing overlap.
// Segments longer than the limit are hard-split on rune boundaries.
func (c *Chunker) splitContent(content string) []string {
	var out []string
	cur := ""

	flushOversized := func() {
		for len(cur) > c.cfg.MaxChunkSize {
			cut := alignRune(cur, c.cfg.MaxChunkSize)
			head := cur[:cut]
			out = append(out, head)
			cur = overlapTail(head, c.cfg.Overlap) + cur[cut:]
		}
	}

	for _, seg := range splitOnPoints(content) {
		if cur != "" && len(cur)+len(seg) > c.cfg.MaxChunkSize {
			out = append(out, cur)
			cur = overlapTail(cur, c.cfg.Overlap)
		}
		cur += seg
		flushOversized()
	}
	if strings.TrimSpace(cur) != "" {
		out = append(out, cur)
	}
	return out
}

// splitOnPoints cuts content at numbered-point markers, keeping each marker
// with the text it introduces. Content with no markers is one segment.
func splitOnPoints(content string) []string {
	locs := pointRe.FindAllStringIndex(content, -1)
	if len(locs) == 0 {
		return []string{content}
	}
	var segs []string
	prev := 0
	for _, loc := range locs {
		if loc[0] > prev {
			segs = append(segs, content[prev:loc[0]])
		}
		prev = loc[0]
	}
	segs = append(segs, content[prev:])
	return segs
}

// overlapTail returns the last n bytes of s aligned to a rune boundary.
func overlapTail(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	start := len(s) - n
	for start < len(s) && !utf8.RuneStart(s[start]) {
		start++
	}
	return s[start:]
}

// alignRune moves n back to the nearest rune boundary in s.
func alignRune(s string, n int) int {
	if n >= len(s) {
		return len(s)
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return n
}
