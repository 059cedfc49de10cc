package controllers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/flashcard-backend/config"
	"github.com/vnkhanh/flashcard-backend/models"
	"github.com/vnkhanh/flashcard-backend/services"
)

const maxUploadSize = 20 * 1024 * 1024

// ProcessFile returns the handler for POST /process-file: multipart request
// with a file or raw text plus deck_id and user_id, blocking until the whole
// generation job resolves. The request budget caps the job; whatever chunks
// completed by then are persisted as a partial result.
func ProcessFile(pipeline *services.Pipeline, cfg config.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		db := c.MustGet("db").(*gorm.DB)

		user, ok := currentUser(c, db)
		if !ok {
			return
		}

		deckID, err := uuid.Parse(c.PostForm("deck_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid deck_id"})
			return
		}
		var deck models.Deck
		if err := db.First(&deck, "id = ? AND user_id = ?", deckID, user.ID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Deck not found"})
			return
		}

		content, ok := readInput(c)
		if !ok {
			return
		}

		chunks := services.SplitTextIntoChunks(content, cfg.ChunkSize, cfg.ChunkLookback)
		if len(chunks) == 0 {
			// Empty input is a valid empty result, not an error.
			c.JSON(http.StatusOK, gin.H{
				"message":    "No content to process, no flashcards generated",
				"flashcards": []models.Flashcard{},
			})
			return
		}
		log.Printf("processing job for deck %s: %d chunks", deck.ID, len(chunks))

		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.JobTimeout)
		defer cancel()

		job := services.GenerationJob{DeckID: deck.ID, UserID: user.ID, Chunks: chunks}
		saved, failed, err := pipeline.Process(ctx, db, job)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrAllChunksFailed):
				c.JSON(http.StatusBadGateway, gin.H{"detail": "Flashcard generation failed for every part of the document"})
			case errors.Is(err, services.ErrPersistence):
				c.JSON(http.StatusInternalServerError, gin.H{"detail": "Flashcards were generated but could not be saved"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"detail": "Error processing content: " + err.Error()})
			}
			return
		}

		failedChunks := make([]int, 0, len(failed))
		for _, f := range failed {
			failedChunks = append(failedChunks, f.Index)
		}

		if saved == nil {
			saved = []models.Flashcard{}
		}
		c.JSON(http.StatusOK, gin.H{
			"message":       "Successfully added flashcards to deck",
			"flashcards":    saved,
			"generated":     len(saved),
			"failed_chunks": failedChunks,
		})
	}
}

// readInput pulls the text to process out of the request: an uploaded file
// (extracted by format) or the raw text field. Writes the error response
// itself on failure.
func readInput(c *gin.Context) (string, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		// No file attached; fall back to pasted text, which skips
		// extraction entirely.
		text := c.PostForm("text")
		if strings.TrimSpace(text) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "No file or text provided"})
			return "", false
		}
		return text, true
	}

	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "File exceeds the 20MB limit"})
		return "", false
	}

	format, err := services.DetectFormat(fileHeader.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Unsupported file format. Please upload PDF or PPTX files."})
		return "", false
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "could not read uploaded file"})
		return "", false
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "could not read uploaded file"})
		return "", false
	}

	content, err := services.ExtractText(services.Document{
		Filename: fileHeader.Filename,
		Format:   format,
		Data:     data,
	})
	if err != nil {
		if errors.Is(err, services.ErrCorruptDocument) || errors.Is(err, services.ErrUnsupportedFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Could not extract content from the file: " + err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Error extracting content: " + err.Error()})
		}
		return "", false
	}
	return services.CleanExtractedText(content), true
}
