package controllers

import (
	"storyisle/database"
	"storyisle/middleware"
	"storyisle/models"
	"storyisle/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetAllStories lists stories with filters, search and cursor pagination
func GetAllStories(c *fiber.Ctx) error {
	pagination := utils.PaginationParams{
		Cursor:    c.Query("cursor"),
		Limit:     c.QueryInt("limit"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	filters := map[string]interface{}{}
	if raw := c.Query("island_id"); raw != "" {
		filters["island_id"] = raw
	}
	if raw := c.Query("story_type"); raw != "" {
		filters["story_type"] = raw
	}

	sortFields := []string{"title", "order_index", "id"}

	var stories []models.Story
	err := database.Database.Db.Model(&models.Story{}).
		Scopes(
			utils.BuildWhere(filters, []string{"island_id", "story_type"}),
			utils.BuildSearch(c.Query("search"), []string{"title"}),
			utils.ApplyPagination(pagination, sortFields, "order_index"),
		).
		Find(&stories).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stories!", nil)
	}

	sortField, _ := utils.NormalizeSort(pagination, sortFields, "order_index")
	page := utils.BuildPage(stories, pagination.Limit, func(s models.Story) utils.CursorData {
		key := utils.CursorData{ID: s.ID}
		switch sortField {
		case "title":
			key.SortValue = s.Title
		case "order_index":
			key.SortValue = s.Order
		}
		return key
	})
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stories fetched successfully!", page)
}

// GetStory returns one story with its slides
func GetStory(c *fiber.Ctx) error {
	storyID, err := c.ParamsInt("id")
	if err != nil || storyID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid story ID!", nil)
	}

	var story models.Story
	if err := database.Database.Db.First(&story, storyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Story not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch story!", nil)
	}

	response := fiber.Map{"story": story}
	switch story.StoryType {
	case models.StoryTypeStatic:
		var slides []models.StaticSlide
		database.Database.Db.Where("story_id = ?", story.ID).Order("slide_number asc").Find(&slides)
		response["slides"] = slides
	case models.StoryTypeInteractive:
		var slides []models.InteractiveSlide
		database.Database.Db.Where("story_id = ?", story.ID).Order("slide_number asc").Find(&slides)
		response["slides"] = slides
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Story fetched successfully!", response)
}

// CreateStory creates a story under an island (admin)
func CreateStory(c *fiber.Ctx) error {
	reqData := new(struct {
		IslandID  uint   `json:"island_id"`
		Title     string `json:"title"`
		StoryType string `json:"story_type"`
		Order     int    `json:"order"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	errors := make(map[string]string)
	if reqData.IslandID == 0 {
		errors["island_id"] = "Island ID is required!"
	}
	if reqData.Title == "" {
		errors["title"] = "Title is required!"
	}
	if reqData.StoryType != models.StoryTypeStatic && reqData.StoryType != models.StoryTypeInteractive {
		errors["story_type"] = "Story type must be STATIC or INTERACTIVE!"
	}
	if len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	var island models.Island
	if err := database.Database.Db.First(&island, reqData.IslandID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Island not found!", nil)
	}

	story := models.Story{
		IslandID:  reqData.IslandID,
		Title:     reqData.Title,
		StoryType: reqData.StoryType,
		Order:     reqData.Order,
	}
	if err := database.Database.Db.Create(&story).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create story!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Story created!", story)
}

// UpdateStory updates a story (admin)
func UpdateStory(c *fiber.Ctx) error {
	storyID, err := c.ParamsInt("id")
	if err != nil || storyID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid story ID!", nil)
	}

	var story models.Story
	if err := database.Database.Db.First(&story, storyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Story not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch story!", nil)
	}

	reqData := new(struct {
		Title     *string `json:"title"`
		StoryType *string `json:"story_type"`
		Order     *int    `json:"order"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Title != nil {
		story.Title = *reqData.Title
	}
	if reqData.StoryType != nil {
		if *reqData.StoryType != models.StoryTypeStatic && *reqData.StoryType != models.StoryTypeInteractive {
			return middleware.ValidationErrorResponse(c, map[string]string{"story_type": "Story type must be STATIC or INTERACTIVE!"})
		}
		story.StoryType = *reqData.StoryType
	}
	if reqData.Order != nil {
		story.Order = *reqData.Order
	}

	if err := database.Database.Db.Save(&story).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update story!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Story updated!", story)
}

// DeleteStory removes a story (admin)
func DeleteStory(c *fiber.Ctx) error {
	storyID, err := c.ParamsInt("id")
	if err != nil || storyID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid story ID!", nil)
	}

	result := database.Database.Db.Delete(&models.Story{}, storyID)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete story!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Story not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Story deleted successfully!", nil)
}

// AddSlide appends a slide to a story, typed by the story's kind (admin)
func AddSlide(c *fiber.Ctx) error {
	storyID, err := c.ParamsInt("id")
	if err != nil || storyID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid story ID!", nil)
	}

	var story models.Story
	if err := database.Database.Db.First(&story, storyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Story not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch story!", nil)
	}

	reqData := new(struct {
		SlideNumber int    `json:"slide_number"`
		Content     string `json:"content"`
		ImageURL    string `json:"image_url"`
		QuestionID  *uint  `json:"question_id"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	switch story.StoryType {
	case models.StoryTypeStatic:
		slide := models.StaticSlide{
			StoryID:     story.ID,
			SlideNumber: reqData.SlideNumber,
			Content:     reqData.Content,
			ImageURL:    reqData.ImageURL,
		}
		if err := database.Database.Db.Create(&slide).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create slide!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Slide created!", slide)
	default:
		slide := models.InteractiveSlide{
			StoryID:     story.ID,
			SlideNumber: reqData.SlideNumber,
			Content:     reqData.Content,
			ImageURL:    reqData.ImageURL,
			QuestionID:  reqData.QuestionID,
		}
		if err := database.Database.Db.Create(&slide).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create slide!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Slide created!", slide)
	}
}
