package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTextCoversInputExactly(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString(strings.Repeat("lorem ipsum dolor sit amet ", 5))
		sb.WriteString("\n\n")
	}
	text := sb.String()

	chunks := SplitTextIntoChunks(text, 300, 100)
	require.NotEmpty(t, chunks)

	var joined strings.Builder
	for i, c := range chunks {
		assert.Equal(t, i, c.Index, "indices must be contiguous from zero")
		assert.LessOrEqual(t, len([]rune(c.Text)), 300)
		joined.WriteString(c.Text)
	}
	assert.Equal(t, text, joined.String(), "concatenated chunks must reproduce the input")
}

func TestChunkTextEmptyInput(t *testing.T) {
	assert.Empty(t, SplitTextIntoChunks("", 300, 100))
}

func TestChunkTextSingleSmallInput(t *testing.T) {
	chunks := SplitTextIntoChunks("short text", 300, 100)
	require.Len(t, chunks, 1)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, "short text", chunks[0].Text)
}

func TestChunkTextPrefersParagraphBreak(t *testing.T) {
	first := strings.Repeat("a", 80)
	second := strings.Repeat("b", 100)
	text := first + "\n\n" + second

	// Limit lands inside the second paragraph, break is within lookback.
	chunks := SplitTextIntoChunks(text, 100, 50)
	require.GreaterOrEqual(t, len(chunks), 2)
	assert.Equal(t, first+"\n\n", chunks[0].Text)
	assert.True(t, strings.HasPrefix(chunks[1].Text, "b"))
}

func TestChunkTextFallsBackToNewline(t *testing.T) {
	first := strings.Repeat("a", 80)
	second := strings.Repeat("b", 100)
	text := first + "\n" + second

	chunks := SplitTextIntoChunks(text, 100, 50)
	require.GreaterOrEqual(t, len(chunks), 2)
	assert.Equal(t, first+"\n", chunks[0].Text)
}

func TestChunkTextHardSplitsLongParagraph(t *testing.T) {
	text := strings.Repeat("x", 250) // no breaks at all

	chunks := SplitTextIntoChunks(text, 100, 50)
	require.Len(t, chunks, 3)
	assert.Equal(t, 100, len(chunks[0].Text))
	assert.Equal(t, 100, len(chunks[1].Text))
	assert.Equal(t, 50, len(chunks[2].Text))
}

func TestChunkTextSequenceIsRestartable(t *testing.T) {
	text := strings.Repeat("paragraph one two three\n\n", 20)
	seq := ChunkText(text, 120, 40)

	var first, second []Chunk
	for c := range seq {
		first = append(first, c)
	}
	for c := range seq {
		second = append(second, c)
	}
	assert.Equal(t, first, second)
}
