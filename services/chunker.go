package services

import "iter"

// Chunk is one bounded slice of extracted text, the unit of a single model
// call. Indices are contiguous from zero and concatenating chunk texts in
// index order reproduces the input exactly.
type Chunk struct {
	Index int
	Text  string
}

// ChunkText splits text into chunks of at most limit runes, lazily. The
// split is greedy, but when a paragraph break (blank line) falls within
// lookback runes of the cut point the chunk ends there instead, so chunks
// stay coherent for the model. A lone newline is the fallback boundary. A
// single paragraph longer than limit is hard-split at the limit.
//
// The returned sequence is restartable: ranging over it again re-splits from
// the start. Empty input yields no chunks.
func ChunkText(text string, limit, lookback int) iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		if text == "" {
			return
		}
		if limit <= 0 {
			limit = 3000
		}
		runes := []rune(text)
		index := 0
		for start := 0; start < len(runes); index++ {
			end := start + limit
			if end >= len(runes) {
				end = len(runes)
			} else {
				end = cutPoint(runes, start, end, lookback)
			}
			if !yield(Chunk{Index: index, Text: string(runes[start:end])}) {
				return
			}
			start = end
		}
	}
}

// SplitTextIntoChunks collects the chunk sequence into a slice.
func SplitTextIntoChunks(text string, limit, lookback int) []Chunk {
	var chunks []Chunk
	for c := range ChunkText(text, limit, lookback) {
		chunks = append(chunks, c)
	}
	return chunks
}

// cutPoint picks where to end the chunk starting at start whose hard limit
// is end. It prefers the last paragraph break inside the lookback window,
// then the last single newline, then the hard limit. The break characters
// stay with the earlier chunk so coverage is exact.
func cutPoint(runes []rune, start, end, lookback int) int {
	lo := end - lookback
	if lo <= start {
		lo = start + 1
	}
	newlineCut := 0
	for j := end - 1; j >= lo; j-- {
		if runes[j] != '\n' {
			continue
		}
		if j > start && runes[j-1] == '\n' {
			return j + 1
		}
		if newlineCut == 0 {
			newlineCut = j + 1
		}
	}
	if newlineCut > start {
		return newlineCut
	}
	return end
}
