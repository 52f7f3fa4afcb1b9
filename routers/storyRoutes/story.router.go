package storyRoutes

import (
	controllers "storyisle/controllers/story"
	"storyisle/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupStoryRoutes sets up story browsing and admin management routes
func SetupStoryRoutes(app *fiber.App) {
	storyGroup := app.Group("/stories")

	storyGroup.Get("/", middleware.JWTMiddleware, controllers.GetAllStories)
	storyGroup.Get("/:id", middleware.JWTMiddleware, controllers.GetStory)

	storyGroup.Post("/", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), controllers.CreateStory)
	storyGroup.Patch("/:id", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), controllers.UpdateStory)
	storyGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), controllers.DeleteStory)
	storyGroup.Post("/:id/slides", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), controllers.AddSlide)
}
