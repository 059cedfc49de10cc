package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/flashcard-backend/models"
)

// currentUser resolves the user_id field (form or query, there is no auth)
// to a User row. Writes the error response itself on failure.
func currentUser(c *gin.Context, db *gorm.DB) (*models.User, bool) {
	idStr := c.PostForm("user_id")
	if idStr == "" {
		idStr = c.Query("user_id")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid user_id"})
		return nil, false
	}

	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return nil, false
	}
	return &user, true
}

// POST /decks
func CreateDeck(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	user, ok := currentUser(c, db)
	if !ok {
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "name is required"})
		return
	}

	deck := models.Deck{
		UserID:      user.ID,
		Name:        name,
		Description: c.PostForm("description"),
	}
	if err := db.Create(&deck).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "could not create deck"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deck_id":     deck.ID,
		"name":        deck.Name,
		"description": deck.Description,
		"user_id":     deck.UserID,
	})
}

// GET /decks?user_id=...
func GetDecks(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	user, ok := currentUser(c, db)
	if !ok {
		return
	}

	var decks []models.Deck
	if err := db.Where("user_id = ?", user.ID).Order("created_at ASC").Find(&decks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "could not list decks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"decks": decks})
}

// PUT /decks/:id
func UpdateDeck(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var deck models.Deck
	if err := db.First(&deck, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Deck not found"})
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "name is required"})
		return
	}

	updates := map[string]interface{}{
		"name":        name,
		"description": c.PostForm("description"),
	}
	if err := db.Model(&deck).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "could not update deck"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deck_id": deck.ID, "name": name, "description": updates["description"]})
}

// DELETE /decks/:id
func DeleteDeck(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	deckID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid deck id"})
		return
	}

	// Cards first, deck second, one transaction.
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Flashcard{}, "deck_id = ?", deckID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Deck{}, "id = ?", deckID).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "could not delete deck"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deck deleted successfully"})
}
