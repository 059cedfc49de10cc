package services

import (
	"sort"
	"strings"

	"github.com/vnkhanh/flashcard-backend/models"
)

// DeduplicateCards filters candidates against the deck's existing flashcards
// and against each other. Two questions are duplicates when their normalized
// forms are equal, or when their token overlap reaches threshold. The first
// occurrence in chunk-index order wins; later duplicates are dropped
// silently. Running the filter twice yields the same result as running it
// once.
func DeduplicateCards(candidates []CardCandidate, existing []models.Flashcard, threshold float64) []CardCandidate {
	if threshold <= 0 || threshold > 1 {
		threshold = 0.8
	}

	sorted := make([]CardCandidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ChunkIndex < sorted[j].ChunkIndex
	})

	seen := make([]string, 0, len(existing)+len(sorted))
	for _, f := range existing {
		seen = append(seen, normalizeQuestion(f.Question))
	}

	var kept []CardCandidate
	for _, c := range sorted {
		norm := normalizeQuestion(c.Question)
		if isDuplicate(norm, seen, threshold) {
			continue
		}
		kept = append(kept, c)
		seen = append(seen, norm)
	}
	return kept
}

func isDuplicate(norm string, seen []string, threshold float64) bool {
	for _, s := range seen {
		if norm == s {
			return true
		}
		if tokenOverlap(norm, s) >= threshold {
			return true
		}
	}
	return false
}

// normalizeQuestion case-folds and collapses whitespace. This is a cheap
// textual check, not a semantic one.
func normalizeQuestion(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}

// tokenOverlap is the Jaccard index of the two questions' word sets.
func tokenOverlap(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	common := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			common++
		}
	}
	union := len(setA) + len(setB) - common
	return float64(common) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		tok = strings.Trim(tok, ".,;:!?\"'()")
		if tok != "" {
			set[tok] = struct{}{}
		}
	}
	return set
}
