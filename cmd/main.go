package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/vnkhanh/flashcard-backend/config"
	"github.com/vnkhanh/flashcard-backend/routes"
	"github.com/vnkhanh/flashcard-backend/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found")
	}

	config.InitDB()
	cfg := config.Load()

	backend, err := services.NewGeminiBackend(context.Background(), cfg)
	if err != nil {
		log.Fatal("cannot init model backend: ", err)
	}
	defer backend.Close()

	pipeline := services.NewPipeline(backend, cfg)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	r = routes.SetupRouter(r, config.DB, pipeline, cfg)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("server running at port " + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
