package islandRoutes

import (
	controllers "storyisle/controllers/island"
	"storyisle/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupIslandRoutes sets up island browsing and admin management routes
func SetupIslandRoutes(app *fiber.App) {
	islandGroup := app.Group("/islands")

	islandGroup.Get("/", middleware.JWTMiddleware, controllers.GetAllIslands)
	islandGroup.Get("/:id", middleware.JWTMiddleware, controllers.GetIsland)

	islandGroup.Post("/", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), controllers.CreateIsland)
	islandGroup.Patch("/:id", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), controllers.UpdateIsland)
	islandGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), controllers.DeleteIsland)
}
