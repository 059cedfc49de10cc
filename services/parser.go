package services

import (
	"regexp"
	"strings"
)

// CardPair is one parsed question/answer pair from raw model output.
type CardPair struct {
	Question string
	Answer   string
}

// Model output is free text, not a schema. The expected shape is repeated
// "Q: ..." / "A: ..." lines, but models drift: numbering, bullets, "Question
// 1:", stray prose. The markers below absorb the common variants; everything
// else is noise.
var (
	questionMarker = regexp.MustCompile(`(?i)^\s*(?:[-*]\s*)?(?:\d+[.)]\s*)?q(?:uestion)?\s*\d*\s*:\s*(.*)$`)
	answerMarker   = regexp.MustCompile(`(?i)^\s*(?:[-*]\s*)?(?:\d+[.)]\s*)?a(?:nswer)?\s*\d*\s*:\s*(.*)$`)
)

// ParseFlashcards scans one chunk's raw model output for question/answer
// marker lines. A pair is emitted only when both sides are non-empty; a
// dangling question at end of output is dropped, and lines matching neither
// marker (preambles, fences) are ignored.
func ParseFlashcards(raw string) []CardPair {
	var pairs []CardPair
	var pending string
	hasPending := false

	for _, line := range strings.Split(raw, "\n") {
		if m := questionMarker.FindStringSubmatch(line); m != nil {
			// A second question before any answer replaces the pending one.
			pending = strings.TrimSpace(m[1])
			hasPending = pending != ""
			continue
		}
		if m := answerMarker.FindStringSubmatch(line); m != nil {
			answer := strings.TrimSpace(m[1])
			if hasPending && answer != "" {
				pairs = append(pairs, CardPair{Question: pending, Answer: answer})
			}
			pending = ""
			hasPending = false
			continue
		}
	}

	return pairs
}
