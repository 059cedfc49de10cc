package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"
)

// CardCandidate is a parsed flashcard that has not been deduplicated or
// persisted yet. ChunkIndex records which chunk produced it.
type CardCandidate struct {
	ChunkIndex int
	Question   string
	Answer     string
}

// ChunkFailure records a chunk that produced no flashcards, with the reason.
type ChunkFailure struct {
	Index int
	Err   error
}

// GenerationReport is the outcome of one orchestrator run: every candidate
// from the chunks that succeeded, plus the chunks that definitively failed.
type GenerationReport struct {
	Cards  []CardCandidate
	Failed []ChunkFailure
}

const cardsPerChunk = 5

const promptTemplate = `You are a study assistant creating flashcards.
Create up to %d flashcards from the text below.
Write each flashcard as exactly two lines, a question line then an answer line:
Q: the question
A: the answer
Return only flashcard lines in that format, with no numbering and no other text.

Text:
%s`

// BuildPrompt wraps one chunk's text in the fixed instruction template.
func BuildPrompt(chunkText string) string {
	return fmt.Sprintf(promptTemplate, cardsPerChunk, chunkText)
}

// Orchestrator fans a job's chunks out to the model backend with bounded
// concurrency and fans the parsed candidates back in. A chunk that fails for
// good does not abort the job; the job fails only when every chunk does.
type Orchestrator struct {
	Backend      ModelBackend
	Concurrency  int           // chunks in flight at once
	MaxRetries   int           // extra attempts on retryable backend errors
	RetryBackoff time.Duration // sleep between attempts
}

type chunkResult struct {
	index int
	pairs []CardPair
	err   error
}

// Run processes every chunk and returns the collected candidates sorted by
// chunk index. Zero chunks is a valid empty result, not an error. When ctx
// expires, chunks already processed form a partial result and the rest are
// reported as failed.
func (o *Orchestrator) Run(ctx context.Context, chunks []Chunk) (GenerationReport, error) {
	var report GenerationReport
	if len(chunks) == 0 {
		return report, nil
	}

	workers := o.Concurrency
	if workers <= 0 {
		workers = 4
	}
	if workers > len(chunks) {
		workers = len(chunks)
	}

	jobs := make(chan Chunk)
	results := make(chan chunkResult, len(chunks))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for chunk := range jobs {
				results <- o.processChunk(ctx, chunk)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, chunk := range chunks {
			select {
			case jobs <- chunk:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	done := make(map[int]bool, len(chunks))
	var collected []chunkResult
	for res := range results {
		done[res.index] = true
		collected = append(collected, res)
	}

	// Chunks never dispatched because the request budget ran out still count
	// as failed.
	for _, chunk := range chunks {
		if !done[chunk.Index] {
			collected = append(collected, chunkResult{index: chunk.Index, err: ctx.Err()})
		}
	}

	sort.Slice(collected, func(i, j int) bool { return collected[i].index < collected[j].index })

	for _, res := range collected {
		if res.err != nil {
			log.Printf("chunk %d failed: %v", res.index, res.err)
			report.Failed = append(report.Failed, ChunkFailure{Index: res.index, Err: res.err})
			continue
		}
		for _, p := range res.pairs {
			report.Cards = append(report.Cards, CardCandidate{
				ChunkIndex: res.index,
				Question:   p.Question,
				Answer:     p.Answer,
			})
		}
	}

	if len(report.Failed) == len(chunks) {
		return report, ErrAllChunksFailed
	}
	return report, nil
}

func (o *Orchestrator) processChunk(ctx context.Context, chunk Chunk) chunkResult {
	attempts := o.MaxRetries + 1
	if attempts < 1 {
		attempts = 1
	}
	backoff := o.RetryBackoff
	if backoff <= 0 {
		backoff = time.Second
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		raw, err := o.Backend.Generate(ctx, BuildPrompt(chunk.Text))
		if err != nil {
			lastErr = err
			if !retryable(err) || attempt == attempts || ctx.Err() != nil {
				break
			}
			log.Printf("chunk %d attempt %d/%d failed, retrying: %v", chunk.Index, attempt, attempts, err)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return chunkResult{index: chunk.Index, err: ctx.Err()}
			}
			continue
		}

		log.Printf("chunk %d: model returned %d characters", chunk.Index, len(raw))
		pairs := ParseFlashcards(raw)
		if len(pairs) == 0 {
			// Soft parse failure: logged, not retried, not fatal to the job.
			return chunkResult{index: chunk.Index, err: fmt.Errorf("%w (output length %d)", ErrNoCards, len(raw))}
		}
		return chunkResult{index: chunk.Index, pairs: pairs}
	}
	return chunkResult{index: chunk.Index, err: lastErr}
}
