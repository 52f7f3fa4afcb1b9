package main

import (
	"log"

	"storyisle/config"
	"storyisle/database"
	attemptRoutes "storyisle/routers/attemptRoutes"
	islandRoutes "storyisle/routers/islandRoutes"
	progressRoutes "storyisle/routers/progressRoutes"
	questionRoutes "storyisle/routers/questionRoutes"
	statisticsRoutes "storyisle/routers/statisticsRoutes"
	storyRoutes "storyisle/routers/storyRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	islandRoutes.SetupIslandRoutes(app)
	storyRoutes.SetupStoryRoutes(app)
	questionRoutes.SetupQuestionRoutes(app)
	attemptRoutes.SetupAttemptRoutes(app)
	progressRoutes.SetupProgressRoutes(app)
	statisticsRoutes.SetupStatisticsRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
