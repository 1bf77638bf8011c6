package pdf

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRunner returns canned output instead of running pdftotext.
type stubRunner struct {
	stdout []byte
	stderr []byte
	err    error
	args   []string
}

func (s *stubRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.args = args
	return s.stdout, s.stderr, s.err
}

const sampleBBoxXML = `<?xml version="1.0"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<head><title>doc</title></head>
<body>
<doc>
<page width="612.000000" height="792.000000">
<flow>
<block xMin="72.0" yMin="74.0" xMax="540.0" yMax="88.0">
<line xMin="72.0" yMin="74.0" xMax="300.0" yMax="88.0">
<word xMin="72.0" yMin="74.0" xMax="110.0" yMax="88.0">Sygn.</word>
<word xMin="114.0" yMin="74.0" xMax="140.0" yMax="88.0">akt</word>
<word xMin="144.0" yMin="74.0" xMax="220.0" yMax="88.0">III</word>
<word xMin="224.0" yMin="74.0" xMax="300.0" yMax="88.0">CZP</word>
</line>
</block>
<block xMin="72.0" yMin="120.0" xMax="540.0" yMax="160.0">
<line xMin="72.0" yMin="120.0" xMax="540.0" yMax="134.0">
<word xMin="72.0" yMin="120.0" xMax="200.0" yMax="134.0">pierwsza</word>
</line>
<line xMin="72.0" yMin="140.0" xMax="540.0" yMax="154.0">
<word xMin="72.0" yMin="140.0" xMax="200.0" yMax="154.0">druga</word>
</line>
</block>
</flow>
</page>
<page width="612.000000" height="792.000000">
<flow>
<block xMin="72.0" yMin="74.0" xMax="540.0" yMax="88.0">
<line xMin="72.0" yMin="74.0" xMax="540.0" yMax="88.0">
<word xMin="72.0" yMin="74.0" xMax="200.0" yMax="88.0">dalej</word>
</line>
</block>
</flow>
</page>
</doc>
</body>
</html>`

func TestExtractText(t *testing.T) {
	runner := &stubRunner{stdout: []byte("strona pierwsza\ftekst drugiej strony\f")}
	e := NewExtractorWithRunner(Config{}, runner, nil)

	res, err := e.ExtractText(context.Background(), "in.pdf")
	require.NoError(t, err)
	assert.Len(t, res.Pages, 2)
	assert.Equal(t, "strona pierwsza", res.Pages[0])
	assert.Equal(t, "tekst drugiej strony", res.Pages[1])
	assert.Contains(t, runner.args, "-layout")
}

func TestExtractTextUnreadable(t *testing.T) {
	runner := &stubRunner{err: errors.New("exit status 1"), stderr: []byte("Syntax Error: bad xref")}
	e := NewExtractorWithRunner(Config{}, runner, nil)

	_, err := e.ExtractText(context.Background(), "broken.pdf")
	assert.ErrorIs(t, err, ErrUnreadable)
	assert.Contains(t, err.Error(), "bad xref")
}

func TestExtractTextEmpty(t *testing.T) {
	runner := &stubRunner{stdout: []byte("")}
	e := NewExtractorWithRunner(Config{}, runner, nil)

	_, err := e.ExtractText(context.Background(), "empty.pdf")
	assert.ErrorIs(t, err, ErrNoPages)
}

func TestExtractLayout(t *testing.T) {
	runner := &stubRunner{stdout: []byte(sampleBBoxXML)}
	e := NewExtractorWithRunner(Config{}, runner, nil)

	pages, err := e.ExtractLayout(context.Background(), "in.pdf")
	require.NoError(t, err)
	require.Len(t, pages, 2)

	first := pages[0]
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 612.0, first.Width)
	require.Len(t, first.Blocks, 2)

	oneLiner := first.Blocks[0]
	require.Len(t, oneLiner.Lines, 1)
	assert.Equal(t, "Sygn. akt III CZP", oneLiner.Lines[0].Text())
	assert.Equal(t, 74.0, oneLiner.YMin)

	multi := first.Blocks[1]
	require.Len(t, multi.Lines, 2)
	assert.Equal(t, "pierwsza\ndruga", multi.Text())

	assert.Equal(t, 2, pages[1].Number)
	assert.Contains(t, runner.args, "-bbox-layout")
}

func TestExtractLayoutMalformed(t *testing.T) {
	runner := &stubRunner{stdout: []byte("<html><body><doc><page")}
	e := NewExtractorWithRunner(Config{}, runner, nil)

	_, err := e.ExtractLayout(context.Background(), "in.pdf")
	assert.ErrorIs(t, err, ErrBadLayout)
}

func TestExtractLayoutMaxPages(t *testing.T) {
	runner := &stubRunner{stdout: []byte(sampleBBoxXML)}
	e := NewExtractorWithRunner(Config{MaxPages: 5}, runner, nil)

	_, err := e.ExtractLayout(context.Background(), "in.pdf")
	require.NoError(t, err)
	assert.Contains(t, runner.args, "-l")
	assert.Contains(t, runner.args, "5")
}
