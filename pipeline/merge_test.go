package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMergeJSONLOrdersByBaseFilename(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()

	// Completion order handed in reversed; merge re-imposes filename order.
	inputs := []string{
		writeFile(t, dirB, "b.jsonl", "{\"n\":2}\n"),
		writeFile(t, dirA, "a.jsonl", "{\"n\":1}\n"),
	}

	output := filepath.Join(t.TempDir(), "corpus.jsonl")
	lines, err := MergeJSONL(inputs, output)
	require.NoError(t, err)
	assert.Equal(t, 2, lines)

	merged, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "{\"n\":1}\n{\"n\":2}\n", string(merged))
}

func TestMergeJSONLSkipsBlankLines(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "a.jsonl", "{\"n\":1}\n\n\n{\"n\":2}\n")

	output := filepath.Join(dir, "corpus.jsonl")
	lines, err := MergeJSONL([]string{input}, output)
	require.NoError(t, err)
	assert.Equal(t, 2, lines)

	merged, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "{\"n\":1}\n{\"n\":2}\n", string(merged))
}

func TestMergeJSONLDeterministic(t *testing.T) {
	dir := t.TempDir()
	inputs := []string{
		writeFile(t, dir, "c.jsonl", "{\"n\":3}\n"),
		writeFile(t, dir, "a.jsonl", "{\"n\":1}\n"),
		writeFile(t, dir, "b.jsonl", "{\"n\":2}\n"),
	}

	first := filepath.Join(dir, "first.jsonl")
	second := filepath.Join(dir, "second.jsonl")
	_, err := MergeJSONL(inputs, first)
	require.NoError(t, err)
	_, err = MergeJSONL([]string{inputs[1], inputs[2], inputs[0]}, second)
	require.NoError(t, err)

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestMergeJSONLMissingInput(t *testing.T) {
	output := filepath.Join(t.TempDir(), "corpus.jsonl")
	_, err := MergeJSONL([]string{"does-not-exist.jsonl"}, output)
	assert.Error(t, err)
}
