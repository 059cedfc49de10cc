package services

import (
	"regexp"
	"strings"
)

// Extracted document text tends to carry page furniture the model only
// trips over. CleanExtractedText strips the obvious cases before chunking;
// pasted text is taken verbatim and never passes through here.
var (
	rePageNumberLine = regexp.MustCompile(`(?i)^\s*(page|trang)?\s*\d+\s*(of\s+\d+)?\s*$`)
	reTOCLine        = regexp.MustCompile(`(?i)^.*table of contents.*$`)
	reManyNewlines   = regexp.MustCompile(`\n{3,}`)
)

func CleanExtractedText(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if rePageNumberLine.MatchString(line) {
			continue
		}
		if reTOCLine.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	cleaned := strings.Join(kept, "\n")
	cleaned = reManyNewlines.ReplaceAllString(cleaned, "\n\n")
	return strings.TrimSpace(cleaned)
}
