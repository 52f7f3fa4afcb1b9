package controllers

import (
	"errors"

	"storyisle/database"
	"storyisle/middleware"
	attemptService "storyisle/services/attempt"
	"storyisle/utils"

	"github.com/gofiber/fiber/v2"
)

// serviceError maps engine failures onto user-visible statuses
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, attemptService.ErrNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Not found!", nil)
	case errors.Is(err, attemptService.ErrForbidden):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this resource!", nil)
	case errors.Is(err, attemptService.ErrInvalidInput):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	case errors.Is(err, attemptService.ErrNotConfigured):
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Question is not configured for grading!", nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}
}

// requireOwnership checks the attempt belongs to the caller. Missing and
// foreign attempts both answer 404 so ids cannot be enumerated.
func requireOwnership(c *fiber.Ctx, attemptID, userID uint) (bool, error) {
	owned, err := attemptService.BelongsToUser(database.Database.Db, attemptID, userID)
	if err != nil {
		return false, middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}
	if !owned {
		return false, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Attempt not found!", nil)
	}
	return true, nil
}

// GetMyAttempts lists the caller's attempts with filters and cursor pagination
func GetMyAttempts(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	filters := c.Locals("attemptFilters").(attemptService.ListFilters)
	filters.UserID = userID
	pagination := c.Locals("pagination").(utils.PaginationParams)

	page, err := attemptService.List(database.Database.Db, filters, pagination)
	if err != nil {
		return serviceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", page)
}

// GetAttempt returns one attempt with its stages and question logs
func GetAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	attemptID := c.Locals("attemptID").(uint)

	row, err := attemptService.GetByID(database.Database.Db, attemptID)
	if err != nil {
		return serviceError(c, err)
	}

	// Owner-only read; the attempt exists but is not the caller's
	if row.UserID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this attempt!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt fetched successfully!", row)
}

// CreateAttempt starts a new attempt, or resumes the unfinished one
func CreateAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	storyID := c.Locals("storyID").(uint)

	row, err := attemptService.CreateOrResume(database.Database.Db, userID, storyID)
	if err != nil {
		return serviceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt started!", row)
}

// UpdateAttempt applies a partial update (finish, scores, XP, essay)
func UpdateAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	attemptID := c.Locals("attemptID").(uint)
	if owned, resp := requireOwnership(c, attemptID, userID); !owned {
		return resp
	}

	fields := c.Locals("attemptUpdate").(attemptService.UpdateFields)

	row, err := attemptService.Update(database.Database.Db, attemptID, fields)
	if err != nil {
		return serviceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt updated!", row)
}

// DeleteAttempt removes an attempt and everything recorded under it
func DeleteAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	attemptID := c.Locals("attemptID").(uint)
	if owned, resp := requireOwnership(c, attemptID, userID); !owned {
		return resp
	}

	if err := attemptService.Delete(database.Database.Db, attemptID); err != nil {
		return serviceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt deleted successfully!", nil)
}

// AddStageAttempt records one completed stage of the attempt
func AddStageAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	attemptID := c.Locals("attemptID").(uint)
	if owned, resp := requireOwnership(c, attemptID, userID); !owned {
		return resp
	}

	input := c.Locals("stageInput").(attemptService.StageInput)

	stage, err := attemptService.AddStageAttempt(database.Database.Db, attemptID, input)
	if err != nil {
		return serviceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stage attempt recorded!", stage)
}

// AddQuestionLog validates and records one answer submission
func AddQuestionLog(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	attemptID := c.Locals("attemptID").(uint)
	if owned, resp := requireOwnership(c, attemptID, userID); !owned {
		return resp
	}

	questionID := c.Locals("questionID").(uint)
	submission := c.Locals("answerSubmission").(attemptService.AnswerSubmission)

	entry, err := attemptService.AddQuestionLog(database.Database.Db, attemptID, questionID, submission)
	if err != nil {
		return serviceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer recorded!", entry)
}
