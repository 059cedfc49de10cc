package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Flashcard struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DeckID   uuid.UUID `gorm:"type:uuid;not null;index" json:"deck_id"`
	Deck     Deck      `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Question string    `gorm:"type:text;not null" json:"question"`
	Answer   string    `gorm:"type:text;not null" json:"answer"`

	// Index of the source chunk the card was generated from, for diagnostics.
	// Zero for cards created by hand.
	ChunkIndex int `json:"chunk_index"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (f *Flashcard) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
