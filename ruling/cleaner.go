package ruling

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var blankRunRe = regexp.MustCompile(`\n{3,}`)

// Clean normalizes an assembled paragraph: Unicode NFC, hyphenated line
// wraps joined, intra-sentence line breaks collapsed to spaces, and runs
// of blank lines reduced to at most one.
func Clean(text string) string {
	text = norm.NFC.String(text)
	text = blankRunRe.ReplaceAllString(text, "\n\n")

	blocks := strings.Split(text, "\n\n")
	for i, block := range blocks {
		blocks[i] = joinLines(block)
	}
	return strings.TrimSpace(strings.Join(blocks, "\n\n"))
}

// joinLines merges wrapped lines back into running text. A trailing hyphen
// followed by a lowercase continuation is a printer's word break, not a
// real hyphen.
func joinLines(block string) string {
	lines := strings.Split(block, "\n")
	var b strings.Builder
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if b.Len() == 0 {
			b.WriteString(line)
			continue
		}
		cur := b.String()
		if strings.HasSuffix(cur, "-") && startsLower(line) {
			merged := cur[:len(cur)-1] + line
			b.Reset()
			b.WriteString(merged)
			continue
		}
		b.WriteByte(' ')
		b.WriteString(line)
	}
	return b.String()
}

func startsLower(s string) bool {
	for _, r := range s {
		return unicode.IsLower(r)
	}
	return false
}
