package progressRoutes

import (
	controllers "storyisle/controllers/progress"
	"storyisle/middleware"
	validators "storyisle/validators/progress"

	"github.com/gofiber/fiber/v2"
)

// SetupProgressRoutes sets up per-island progress routes
func SetupProgressRoutes(app *fiber.App) {
	progressGroup := app.Group("/progress")

	progressGroup.Get("/", middleware.JWTMiddleware, validators.ListProgress(), controllers.GetMyProgress)
	progressGroup.Get("/island/:islandId", middleware.JWTMiddleware, validators.IslandID(), controllers.GetIslandProgress)
	progressGroup.Post("/", middleware.JWTMiddleware, validators.UpsertProgress(), controllers.UpsertProgress)
	progressGroup.Patch("/:id", middleware.JWTMiddleware, validators.UpdateProgress(), controllers.UpdateProgress)
}
