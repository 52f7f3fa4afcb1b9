package attemptRoutes

import (
	controllers "storyisle/controllers/attempt"
	"storyisle/middleware"
	validators "storyisle/validators/attempt"

	"github.com/gofiber/fiber/v2"
)

// SetupAttemptRoutes sets up all attempt tracking routes
func SetupAttemptRoutes(app *fiber.App) {
	attemptGroup := app.Group("/attempts")

	attemptGroup.Get("/", middleware.JWTMiddleware, validators.ListAttempts(), controllers.GetMyAttempts)
	attemptGroup.Post("/", middleware.JWTMiddleware, validators.CreateAttempt(), controllers.CreateAttempt)
	attemptGroup.Get("/:id", middleware.JWTMiddleware, validators.AttemptID(), controllers.GetAttempt)
	attemptGroup.Patch("/:id", middleware.JWTMiddleware, validators.AttemptID(), validators.UpdateAttempt(), controllers.UpdateAttempt)
	attemptGroup.Delete("/:id", middleware.JWTMiddleware, validators.AttemptID(), controllers.DeleteAttempt)

	// Stage completions and answer submissions
	attemptGroup.Post("/:id/stages", middleware.JWTMiddleware, validators.AttemptID(), validators.AddStage(), controllers.AddStageAttempt)
	attemptGroup.Post("/:id/logs", middleware.JWTMiddleware, validators.AttemptID(), validators.AddLog(), controllers.AddQuestionLog)
}
