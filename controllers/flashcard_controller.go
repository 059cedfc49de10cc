package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/flashcard-backend/models"
)

// GET /decks/:id/flashcards
func GetFlashcards(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var deck models.Deck
	if err := db.First(&deck, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Deck not found"})
		return
	}

	var flashcards []models.Flashcard
	if err := db.Where("deck_id = ?", deck.ID).Order("created_at ASC").Find(&flashcards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "could not list flashcards"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"flashcards": flashcards})
}

// POST /decks/:id/flashcards
func CreateFlashcard(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var deck models.Deck
	if err := db.First(&deck, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Deck not found"})
		return
	}

	question := strings.TrimSpace(c.PostForm("question"))
	answer := strings.TrimSpace(c.PostForm("answer"))
	if question == "" || answer == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "question and answer are required"})
		return
	}

	card := models.Flashcard{DeckID: deck.ID, Question: question, Answer: answer}
	if err := db.Create(&card).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "could not create flashcard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"card_id": card.ID, "question": card.Question, "answer": card.Answer})
}

// PUT /flashcards/:id
func UpdateFlashcard(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var card models.Flashcard
	if err := db.First(&card, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Flashcard not found"})
		return
	}

	question := strings.TrimSpace(c.PostForm("question"))
	answer := strings.TrimSpace(c.PostForm("answer"))
	if question == "" || answer == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "question and answer are required"})
		return
	}

	if err := db.Model(&card).Updates(map[string]interface{}{
		"question": question,
		"answer":   answer,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "could not update flashcard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"card_id": card.ID, "question": question, "answer": answer})
}

// DELETE /flashcards/:id
func DeleteFlashcard(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	if err := db.Delete(&models.Flashcard{}, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "could not delete flashcard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Flashcard deleted successfully"})
}
