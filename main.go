package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"app/aiplanner"
	"app/catalog"
	"app/config"
	"app/database"
	"app/handlers"
	"app/middleware"
	"app/routes"
	"app/scheduler"
	"app/store"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	config.AppConfig = config.Config{
		Port:         os.Getenv("PORT"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
	}
	if config.AppConfig.Port == "" {
		config.AppConfig.Port = "3000"
	}

	// Activity catalog: Postgres when configured, otherwise the in-memory
	// sample catalog for local runs.
	var source catalog.Source
	if config.AppConfig.DatabaseURL != "" {
		database.Connect(config.AppConfig.DatabaseURL)
		defer database.Close()
		source = catalog.NewPostgresSource(database.GetDB())
	} else {
		log.Println("DATABASE_URL is not set, using in-memory sample catalog")
		source = catalog.NewMemorySource(catalog.SampleActivities()...)
	}

	// Schedule persistence is best-effort; without Redis the engine simply
	// skips saving.
	var saver scheduler.ScheduleSaver
	if config.AppConfig.RedisURL != "" {
		if err := store.Connect(config.AppConfig.RedisURL); err != nil {
			log.Printf("Invalid REDIS_URL, schedule persistence disabled: %v", err)
		} else {
			defer store.Close()
			schedules := store.NewScheduleStore(store.Client)
			handlers.Schedules = schedules
			saver = schedules
		}
	}

	handlers.Catalog = source
	handlers.Engine = scheduler.NewEngine(source, saver, scheduler.DefaultConfig())
	if config.AppConfig.GeminiAPIKey != "" {
		handlers.Planner = aiplanner.New(config.AppConfig.GeminiAPIKey)
	}

	app := fiber.New()

	// Add CORS and rate-limit middleware
	app.Use(cors.New())
	app.Use(middleware.NewRateLimiter(10, 20).Handle)

	// Setup routes
	routes.SetupRoutes(app)

	// Start server
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
