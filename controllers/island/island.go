package controllers

import (
	"storyisle/database"
	"storyisle/middleware"
	"storyisle/models"
	"storyisle/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetAllIslands lists islands with search and cursor pagination
func GetAllIslands(c *fiber.Ctx) error {
	pagination := utils.PaginationParams{
		Cursor:    c.Query("cursor"),
		Limit:     c.QueryInt("limit"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	sortFields := []string{"unlock_order", "island_name", "id"}

	var islands []models.Island
	err := database.Database.Db.Model(&models.Island{}).
		Scopes(
			utils.BuildSearch(c.Query("search"), []string{"island_name"}),
			utils.ApplyPagination(pagination, sortFields, "unlock_order"),
		).
		Find(&islands).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch islands!", nil)
	}

	sortField, _ := utils.NormalizeSort(pagination, sortFields, "unlock_order")
	page := utils.BuildPage(islands, pagination.Limit, func(i models.Island) utils.CursorData {
		key := utils.CursorData{ID: i.ID}
		switch sortField {
		case "unlock_order":
			key.SortValue = i.UnlockOrder
		case "island_name":
			key.SortValue = i.IslandName
		}
		return key
	})
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Islands fetched successfully!", page)
}

// GetIsland returns one island with its stories
func GetIsland(c *fiber.Ctx) error {
	islandID, err := c.ParamsInt("id")
	if err != nil || islandID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid island ID!", nil)
	}

	var island models.Island
	if err := database.Database.Db.First(&island, islandID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Island not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch island!", nil)
	}

	var stories []models.Story
	database.Database.Db.Where("island_id = ?", island.ID).Order("order_index asc").Find(&stories)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Island fetched successfully!", fiber.Map{
		"island":  island,
		"stories": stories,
	})
}

// CreateIsland creates an island (admin)
func CreateIsland(c *fiber.Ctx) error {
	reqData := new(struct {
		IslandName      string `json:"island_name"`
		Description     string `json:"description"`
		UnlockOrder     int    `json:"unlock_order"`
		IsLockedDefault *bool  `json:"is_locked_default"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.IslandName == "" {
		return middleware.ValidationErrorResponse(c, map[string]string{"island_name": "Island name is required!"})
	}

	island := models.Island{
		IslandName:      reqData.IslandName,
		Description:     reqData.Description,
		UnlockOrder:     reqData.UnlockOrder,
		IsLockedDefault: true,
	}
	if reqData.IsLockedDefault != nil {
		island.IsLockedDefault = *reqData.IsLockedDefault
	}

	if err := database.Database.Db.Create(&island).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create island!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Island created!", island)
}

// UpdateIsland updates an island (admin)
func UpdateIsland(c *fiber.Ctx) error {
	islandID, err := c.ParamsInt("id")
	if err != nil || islandID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid island ID!", nil)
	}

	var island models.Island
	if err := database.Database.Db.First(&island, islandID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Island not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch island!", nil)
	}

	reqData := new(struct {
		IslandName      *string `json:"island_name"`
		Description     *string `json:"description"`
		UnlockOrder     *int    `json:"unlock_order"`
		IsLockedDefault *bool   `json:"is_locked_default"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.IslandName != nil {
		island.IslandName = *reqData.IslandName
	}
	if reqData.Description != nil {
		island.Description = *reqData.Description
	}
	if reqData.UnlockOrder != nil {
		island.UnlockOrder = *reqData.UnlockOrder
	}
	if reqData.IsLockedDefault != nil {
		island.IsLockedDefault = *reqData.IsLockedDefault
	}

	if err := database.Database.Db.Save(&island).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update island!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Island updated!", island)
}

// DeleteIsland removes an island (admin)
func DeleteIsland(c *fiber.Ctx) error {
	islandID, err := c.ParamsInt("id")
	if err != nil || islandID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid island ID!", nil)
	}

	result := database.Database.Db.Delete(&models.Island{}, islandID)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete island!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Island not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Island deleted successfully!", nil)
}
