package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/flashcard-backend/config"
	"github.com/vnkhanh/flashcard-backend/controllers"
	"github.com/vnkhanh/flashcard-backend/middleware"
	"github.com/vnkhanh/flashcard-backend/services"
)

func SetupRouter(r *gin.Engine, db *gorm.DB, pipeline *services.Pipeline, cfg config.Pipeline) *gin.Engine {
	r.Use(middleware.DBMiddleware(db))

	r.GET("/health", controllers.HealthCheck)

	// Users
	r.POST("/users", controllers.CreateUser)
	r.GET("/users/:id", controllers.GetUser)

	// Decks
	r.POST("/decks", controllers.CreateDeck)
	r.GET("/decks", controllers.GetDecks)
	r.PUT("/decks/:id", controllers.UpdateDeck)
	r.DELETE("/decks/:id", controllers.DeleteDeck)

	// Flashcards
	r.GET("/decks/:id/flashcards", controllers.GetFlashcards)
	r.POST("/decks/:id/flashcards", controllers.CreateFlashcard)
	r.PUT("/flashcards/:id", controllers.UpdateFlashcard)
	r.DELETE("/flashcards/:id", controllers.DeleteFlashcard)

	// Generation pipeline
	r.POST("/process-file", controllers.ProcessFile(pipeline, cfg))

	return r
}
