package main

import (
	"context"
	"log"
	"os"
	"time"

	"cafedir/config"
	"cafedir/controller"
	"cafedir/media"
	"cafedir/route"
	"cafedir/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}
	cfg := config.Load()

	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		log.Fatal("ADMIN_USERNAME and ADMIN_PASSWORD must be set")
	}

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Println("Running in debug mode")
	}

	uploader, err := media.NewClient(context.Background(), cfg.Media)
	if err != nil {
		log.Fatalf("Failed to configure media host: %v", err)
	}

	st := store.New(cfg.CafesFile, cfg.UsersFile)

	router := gin.Default()

	corsConfig := cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))
	log.Println("CORS configured")

	cafes := controller.NewCafeController(st, uploader)
	admin := controller.NewAdminController(cfg.AdminUsername, cfg.AdminPassword)
	route.CafeRoutes(router, cafes, admin)
	log.Println("Routes configured successfully")

	log.Printf("Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
