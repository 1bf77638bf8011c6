package pdf

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// BBox is a bounding box in page coordinates, origin at the top-left.
type BBox struct {
	XMin float64 `xml:"xMin,attr"`
	YMin float64 `xml:"yMin,attr"`
	XMax float64 `xml:"xMax,attr"`
	YMax float64 `xml:"yMax,attr"`
}

// Word is a single word with its box.
type Word struct {
	BBox
	Text string `xml:",chardata"`
}

// Line is one visual text line inside a block.
type Line struct {
	BBox
	Words []Word `xml:"word"`
}

// Text joins the line's words with single spaces.
func (l Line) Text() string {
	parts := make([]string, 0, len(l.Words))
	for _, w := range l.Words {
		if t := strings.TrimSpace(w.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// Block is a contiguous group of lines as laid out by the PDF renderer.
// Extraction order of blocks within a page is not guaranteed to be
// top-to-bottom.
type Block struct {
	BBox
	Lines []Line `xml:"line"`
}

// Text joins the block's lines with newlines.
func (b Block) Text() string {
	parts := make([]string, 0, len(b.Lines))
	for _, l := range b.Lines {
		parts = append(parts, l.Text())
	}
	return strings.Join(parts, "\n")
}

// Page holds the layout primitives of one page.
type Page struct {
	Number int
	Width  float64 `xml:"width,attr"`
	Height float64 `xml:"height,attr"`
	Blocks []Block
}

// bbox-layout XML shape: page > flow > block > line > word.
type layoutFlow struct {
	Blocks []Block `xml:"block"`
}

type layoutPage struct {
	Width  float64      `xml:"width,attr"`
	Height float64      `xml:"height,attr"`
	Flows  []layoutFlow `xml:"flow"`
}

type layoutDoc struct {
	Pages []layoutPage `xml:"page"`
}

type layoutBody struct {
	Doc layoutDoc `xml:"doc"`
}

type layoutHTML struct {
	Body layoutBody `xml:"body"`
}

// parseBBoxLayout decodes the XHTML emitted by pdftotext -bbox-layout.
func parseBBoxLayout(data []byte) ([]Page, error) {
	var doc layoutHTML
	dec := xml.NewDecoder(strings.NewReader(string(data)))
	dec.Strict = false
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadLayout, err)
	}

	pages := make([]Page, 0, len(doc.Body.Doc.Pages))
	for i, lp := range doc.Body.Doc.Pages {
		page := Page{
			Number: i + 1,
			Width:  lp.Width,
			Height: lp.Height,
		}
		for _, flow := range lp.Flows {
			page.Blocks = append(page.Blocks, flow.Blocks...)
		}
		pages = append(pages, page)
	}
	return pages, nil
}
