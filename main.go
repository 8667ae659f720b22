package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"curtainpro-backend/blobstore"
	"curtainpro-backend/config"
	"curtainpro-backend/controllers"
	"curtainpro-backend/models"
	"curtainpro-backend/routes"
	"curtainpro-backend/services"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Order{},
		&models.WindowEntry{},
	)
}

func main() {
	store, err := blobstore.Open(context.Background())
	if err != nil {
		log.Fatalf("Failed to open image store: %v", err)
	}

	controllers.Setup(services.NewDraftService(), store, services.NewNotifyService())

	cleanup := services.NewCleanupService(config.DB, store)
	cleanup.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
