package controllers

import (
	"errors"

	"storyisle/database"
	"storyisle/middleware"
	progressService "storyisle/services/progress"

	"github.com/gofiber/fiber/v2"
)

// GetMyProgress lists the caller's per-island progress
func GetMyProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	filters := c.Locals("progressFilters").(progressService.ListFilters)

	rows, err := progressService.List(database.Database.Db, userID, filters)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", rows)
}

// GetIslandProgress returns the caller's progress on one island
func GetIslandProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	islandID := c.Locals("islandID").(uint)

	row, err := progressService.GetByIsland(database.Database.Db, userID, islandID)
	if err != nil {
		if errors.Is(err, progressService.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No progress for this island yet!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", row)
}

// UpsertProgress creates or updates the caller's progress on an island
func UpsertProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	islandID := c.Locals("islandID").(uint)
	isUnlocked, _ := c.Locals("isUnlocked").(*bool)
	isCompleted, _ := c.Locals("isCompleted").(*bool)

	row, err := progressService.Upsert(database.Database.Db, userID, islandID, isUnlocked, isCompleted)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress saved!", row)
}

// UpdateProgress patches a progress row the caller owns
func UpdateProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	progressID := c.Locals("progressID").(uint)

	owned, err := progressService.BelongsToUser(database.Database.Db, progressID, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}
	if !owned {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Progress not found!", nil)
	}

	isUnlocked, _ := c.Locals("isUnlocked").(*bool)
	isCompleted, _ := c.Locals("isCompleted").(*bool)

	row, err := progressService.UpdateByID(database.Database.Db, progressID, isUnlocked, isCompleted)
	if err != nil {
		if errors.Is(err, progressService.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Progress not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated!", row)
}
