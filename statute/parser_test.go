package statute

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeddq/cywil-sub002/core"
)

func TestParseArticlesAndParagraphs(t *testing.T) {
	p := NewParser(nil)
	text := "Art. 1. Foo.\nArt. 2. § 1. Bar.\n§ 2. Baz."

	units := p.Parse("KC", text)
	require.Len(t, units, 3)

	assert.Equal(t, "KC", units[0].Code)
	assert.Equal(t, "1", units[0].UnitID)
	assert.Equal(t, "Foo.", units[0].Content)
	assert.Equal(t, MainParagraph, units[0].Paragraph)

	assert.Equal(t, "2§1", units[1].UnitID)
	assert.Equal(t, "Bar.", units[1].Content)
	assert.Equal(t, "1", units[1].Paragraph)
	assert.Equal(t, "2", units[1].Article)

	assert.Equal(t, "2§2", units[2].UnitID)
	assert.Equal(t, "Baz.", units[2].Content)

	for _, u := range units {
		assert.Equal(t, core.UnitActive, u.Status)
		require.NoError(t, core.ValidateUnit(&u))
	}
}

func TestParseIsIdempotent(t *testing.T) {
	p := NewParser(nil)
	text := "Rozdział I\nArt. 1. [Zakres regulacji] Kodeks reguluje stosunki cywilnoprawne.\nArt. 2. § 1. Pierwszy.\n§ 2. Drugi."

	first := p.Parse("KC", text)
	second := p.Parse("KC", text)
	assert.Equal(t, first, second)
}

func TestParseUnitCountMatchesMarkers(t *testing.T) {
	p := NewParser(nil)
	var b strings.Builder
	for i := 1; i <= 20; i++ {
		fmt.Fprintf(&b, "Art. %d. Treść artykułu.\n", i)
	}
	// 20 well-formed markers, none with § subdivisions
	units := p.Parse("KC", b.String())
	assert.Len(t, units, 20)
}

func TestParseDeletedArticle(t *testing.T) {
	p := NewParser(nil)
	text := "Art. 1. (uchylony)\nArt. 2. Obowiązuje."

	units := p.Parse("KC", text)
	require.Len(t, units, 2)

	assert.Equal(t, core.UnitDeleted, units[0].Status)
	assert.Equal(t, "(uchylony)", units[0].Content) // content retained
	assert.Equal(t, core.UnitActive, units[1].Status)
}

func TestParseDeletedMarkerOutsideWindowIgnored(t *testing.T) {
	p := NewParser(nil)
	filler := strings.Repeat("a", deletedScanWindow+10)
	text := "Art. 1. " + filler + " (uchylony)"

	units := p.Parse("KC", text)
	require.Len(t, units, 1)
	// Marker appears past the scan window and is treated as content.
	assert.Equal(t, core.UnitActive, units[0].Status)
}

func TestParseTitleExtraction(t *testing.T) {
	p := NewParser(nil)
	text := "Art. 415. [Odpowiedzialność deliktowa] Kto z winy swej wyrządził drugiemu szkodę, obowiązany jest do jej naprawienia."

	units := p.Parse("KC", text)
	require.Len(t, units, 1)
	assert.Equal(t, "Odpowiedzialność deliktowa", units[0].Title)
	assert.NotContains(t, units[0].Content, "[")
	assert.True(t, strings.HasPrefix(units[0].Content, "Kto z winy swej"))
}

func TestParseHierarchyContext(t *testing.T) {
	p := NewParser(nil)
	text := strings.Join([]string{
		"KSIĘGA PIERWSZA",
		"Rozdział I",
		"Art. 1. Pierwszy.",
		"Rozdział II",
		"Art. 2. Drugi.",
		"KSIĘGA DRUGA",
		"Art. 3. Trzeci.",
	}, "\n")

	units := p.Parse("KC", text)
	require.Len(t, units, 3)

	assert.Equal(t, "KSIĘGA PIERWSZA", units[0].Hierarchy.Book)
	assert.Equal(t, "Rozdział I", units[0].Hierarchy.Chapter)

	// heading between articles applies to the following unit
	assert.Equal(t, "Rozdział II", units[1].Hierarchy.Chapter)

	// a new book resets the chapter
	assert.Equal(t, "KSIĘGA DRUGA", units[2].Hierarchy.Book)
	assert.Equal(t, "", units[2].Hierarchy.Chapter)

	assert.Equal(t, []string{"KSIĘGA PIERWSZA", "Rozdział I"}, units[0].SectionPath)

	// heading lines never leak into content
	for _, u := range units {
		assert.NotContains(t, u.Content, "KSIĘGA")
		assert.NotContains(t, u.Content, "Rozdział")
	}
}

func TestParsePreamble(t *testing.T) {
	p := NewParser(nil)
	preamble := strings.Repeat("W trosce o byt i przyszłość naszej Ojczyzny. ", 4)
	text := preamble + "\nArt. 1. Pierwszy."

	units := p.Parse("KONST", text)
	require.Len(t, units, 2)
	assert.Equal(t, PreambleID, units[0].UnitID)
	assert.True(t, strings.HasPrefix(units[0].Content, "W trosce"))
	assert.Equal(t, "1", units[1].UnitID)
}

func TestParseShortPreambleSkipped(t *testing.T) {
	p := NewParser(nil)
	text := "Przepisy ogólne\nArt. 1. Pierwszy."

	units := p.Parse("KC", text)
	require.Len(t, units, 1)
	assert.Equal(t, "1", units[0].UnitID)
}

func TestParseNoMarkers(t *testing.T) {
	p := NewParser(nil)

	// Short unmarked text produces nothing.
	assert.Empty(t, p.Parse("KC", "tylko kilka słów"))

	// Long unmarked text degrades to a single preamble unit.
	long := strings.Repeat("Tekst bez znaczników artykułów. ", 10)
	units := p.Parse("KC", long)
	require.Len(t, units, 1)
	assert.Equal(t, PreambleID, units[0].UnitID)
}

func TestParseSuperscriptArticle(t *testing.T) {
	p := NewParser(nil)
	text := "Art. 417¹. Przepis szczególny.\nArt. 418. Kolejny."

	units := p.Parse("KC", text)
	require.Len(t, units, 2)
	assert.Equal(t, "417¹", units[0].UnitID)
	assert.Equal(t, "418", units[1].UnitID)
}

func TestParseArticleWithIntroAndParagraphs(t *testing.T) {
	p := NewParser(nil)
	text := "Art. 33. Wspólne wprowadzenie.\n§ 1. Pierwszy.\n§ 2. Drugi."

	units := p.Parse("KC", text)
	require.Len(t, units, 3)
	assert.Equal(t, "33", units[0].UnitID)
	assert.Equal(t, "Wspólne wprowadzenie.", units[0].Content)
	assert.Equal(t, "33§1", units[1].UnitID)
	assert.Equal(t, "33§2", units[2].UnitID)
}
