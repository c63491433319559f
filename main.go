package main

import (
	"fmt"
	"os"
	"time"

	"fleetflow/database"
	"fleetflow/database/seeders"
	"fleetflow/logger"
	"fleetflow/middleware"
	"fleetflow/routes"
	"fleetflow/services/authtoken"
	trackingService "fleetflow/services/tracking"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	app := fiber.New(fiber.Config{
		ReadBufferSize:  32768, // 32KB read buffer
		WriteBufferSize: 32768, // 32KB write buffer
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
		BodyLimit:       10 * 1024 * 1024, // 10MB body limit
	})
	env := godotenv.Load()
	if env != nil {
		logger.Error("Error loading .env file", env)
		fmt.Println("Error loading .env file", env)
	}
	logger.Success("Server is running on ip: " + os.Getenv("APP_HOST") + " port: " + os.Getenv("APP_PORT") +
		"\n\t\t\t\t\t\t******************************************************************************************\n")

	db, err := database.InitDB()
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return
	}

	seeders.SeedAdminUser(db)

	tokens := authtoken.NewService(db)
	middleware.Init(tokens)

	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("FRONTEND_URL"),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	routes.SetupRoutes(app, db, tokens)

	// Telemetry ingest is optional and only starts when a broker is configured.
	ingestor, err := trackingService.StartIngestor(trackingService.NewService(db))
	if err != nil {
		logger.Error("Failed to start telemetry ingestor", err)
		return
	}
	if ingestor != nil {
		defer ingestor.Stop()
	}

	app_host := os.Getenv("APP_HOST")
	app_port := os.Getenv("APP_PORT")
	app.Listen(app_host + ":" + app_port)
}
