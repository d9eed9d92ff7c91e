package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"backoffice/config"
	"backoffice/database"
	"backoffice/forecast"
	"backoffice/handlers"
	"backoffice/history"
	"backoffice/middleware"
	"backoffice/reportquery"
	"backoffice/routes"
	"backoffice/store"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	// Load configuration
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	config.Load()
	if config.AppConfig.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}
	middleware.JWTSecret = []byte(config.AppConfig.JWTSecret)

	// Initialize database
	database.InitDB(databaseURL)
	defer database.CloseDB()

	// Wire handler dependencies
	pg := store.NewPostgres(database.GetDB())
	handlers.Init(
		reportquery.NewBuilder(pg),
		history.NewPostgres(database.GetDB()),
		forecast.New(forecast.NewFileStore(config.AppConfig.ModelPath)),
		pg,
	)

	app := fiber.New()

	// Add CORS middleware
	app.Use(cors.New())

	// Setup routes
	routes.SetupRoutes(app)

	// Start server
	log.Fatal(app.Listen(config.AppConfig.Addr))
}
