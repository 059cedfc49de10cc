package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/flashcard-backend/config"
	"github.com/vnkhanh/flashcard-backend/models"
)

// GenerationJob is the unit of work for one process-file request. It is
// never persisted; it references the target deck, the requesting user and
// the chunks of the extracted text.
type GenerationJob struct {
	DeckID uuid.UUID
	UserID uuid.UUID
	Chunks []Chunk
}

// Pipeline wires the generation stages together: orchestrate model calls,
// deduplicate the candidates, persist the survivors atomically.
type Pipeline struct {
	Orchestrator Orchestrator
	DedupOverlap float64
}

func NewPipeline(backend ModelBackend, cfg config.Pipeline) *Pipeline {
	return &Pipeline{
		Orchestrator: Orchestrator{
			Backend:      backend,
			Concurrency:  cfg.Concurrency,
			MaxRetries:   cfg.MaxRetries,
			RetryBackoff: cfg.RetryBackoff,
		},
		DedupOverlap: cfg.DedupOverlap,
	}
}

// Process runs one job to completion. Zero chunks is a valid empty result.
// On ErrAllChunksFailed or ErrPersistence nothing is saved; on partial
// success the failed chunk indices come back alongside the saved cards.
func (p *Pipeline) Process(ctx context.Context, db *gorm.DB, job GenerationJob) ([]models.Flashcard, []ChunkFailure, error) {
	if len(job.Chunks) == 0 {
		return nil, nil, nil
	}

	report, err := p.Orchestrator.Run(ctx, job.Chunks)
	if err != nil {
		return nil, report.Failed, err
	}

	var existing []models.Flashcard
	if err := db.Where("deck_id = ?", job.DeckID).Order("created_at ASC").Find(&existing).Error; err != nil {
		return nil, report.Failed, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	kept := DeduplicateCards(report.Cards, existing, p.DedupOverlap)

	saved, err := SaveFlashcards(db, job.DeckID, kept)
	if err != nil {
		return nil, report.Failed, err
	}
	return saved, report.Failed, nil
}

// SaveFlashcards inserts all candidates as one transaction: either every row
// is committed or none are.
func SaveFlashcards(db *gorm.DB, deckID uuid.UUID, cards []CardCandidate) ([]models.Flashcard, error) {
	if len(cards) == 0 {
		return nil, nil
	}

	rows := make([]models.Flashcard, len(cards))
	for i, c := range cards {
		rows[i] = models.Flashcard{
			DeckID:     deckID,
			Question:   c.Question,
			Answer:     c.Answer,
			ChunkIndex: c.ChunkIndex,
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			if err := tx.Create(&rows[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return rows, nil
}
