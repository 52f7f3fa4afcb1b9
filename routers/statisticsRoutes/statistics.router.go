package statisticsRoutes

import (
	controllers "storyisle/controllers/statistics"
	"storyisle/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupStatisticsRoutes sets up the statistics read path
func SetupStatisticsRoutes(app *fiber.App) {
	app.Get("/statistics", middleware.JWTMiddleware, controllers.GetMyStatistics)
}
