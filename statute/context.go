package statute

import (
	"strings"

	"github.com/zeddq/cywil-sub002/core"
)

// parseContext tracks the structural headings in force at the current point
// of the parse. It is a value threaded through each article: one instance
// per document, never shared across concurrently parsed statutes.
type parseContext struct {
	book     string
	division string
	chapter  string
}

// scanHeadings returns the context updated with any book, division, or
// chapter headings found in the segment. A new book resets the division and
// chapter; a new division resets the chapter.
func (c parseContext) scanHeadings(segment string) parseContext {
	if m := bookRe.FindAllStringSubmatch(segment, -1); len(m) > 0 {
		c.book = collapseSpaces(m[len(m)-1][1])
		c.division = ""
		c.chapter = ""
	}
	if m := divisionRe.FindAllStringSubmatch(segment, -1); len(m) > 0 {
		c.division = collapseSpaces(m[len(m)-1][1])
		c.chapter = ""
	}
	if m := chapterRe.FindAllStringSubmatch(segment, -1); len(m) > 0 {
		c.chapter = collapseSpaces(m[len(m)-1][1])
	}
	return c
}

// hierarchy converts the context to the form attached to emitted units.
func (c parseContext) hierarchy() core.Hierarchy {
	return core.Hierarchy{Book: c.book, Division: c.division, Chapter: c.chapter}
}

// sectionPath lists the non-empty headings from outermost to innermost.
func (c parseContext) sectionPath() []string {
	var path []string
	for _, h := range []string{c.book, c.division, c.chapter} {
		if h != "" {
			path = append(path, h)
		}
	}
	return path
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
