package controllers

import (
	"storyisle/database"
	"storyisle/middleware"
	statisticsService "storyisle/services/statistics"

	"github.com/gofiber/fiber/v2"
)

// GetMyStatistics aggregates the caller's learning statistics
func GetMyStatistics(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	summary, err := statisticsService.ForUser(database.Database.Db, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch statistics!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Statistics fetched successfully!", summary)
}
