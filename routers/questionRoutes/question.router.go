package questionRoutes

import (
	controllers "storyisle/controllers/question"
	"storyisle/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupQuestionRoutes sets up question browsing and admin management routes
func SetupQuestionRoutes(app *fiber.App) {
	questionGroup := app.Group("/questions")

	questionGroup.Get("/", middleware.JWTMiddleware, controllers.GetAllQuestions)
	questionGroup.Get("/:id", middleware.JWTMiddleware, controllers.GetQuestion)

	questionGroup.Post("/", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), controllers.CreateQuestion)
	questionGroup.Patch("/:id", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), controllers.UpdateQuestion)
	questionGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), controllers.DeleteQuestion)
}
