package controllers

import (
	"encoding/json"

	"storyisle/database"
	"storyisle/middleware"
	"storyisle/models"
	"storyisle/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// publicOption is an answer option with the correctness flag stripped,
// so clients can never read the right answer off the wire
type publicOption struct {
	ID         uint   `json:"id"`
	QuestionID uint   `json:"question_id"`
	OptionText string `json:"option_text"`
}

type publicQuestion struct {
	models.Question
	AnswerOptions []publicOption `json:"answer_options"`
}

func sanitizeQuestion(q models.Question) publicQuestion {
	options := make([]publicOption, len(q.AnswerOptions))
	for i, opt := range q.AnswerOptions {
		options[i] = publicOption{ID: opt.ID, QuestionID: opt.QuestionID, OptionText: opt.OptionText}
	}
	q.AnswerOptions = nil
	return publicQuestion{Question: q, AnswerOptions: options}
}

func isAdmin(c *fiber.Ctx) bool {
	role, _ := c.Locals("userRole").(string)
	return role == "ADMIN"
}

// GetAllQuestions lists questions; non-admin callers get options
// without the correctness flag
func GetAllQuestions(c *fiber.Ctx) error {
	pagination := utils.PaginationParams{
		Cursor:    c.Query("cursor"),
		Limit:     c.QueryInt("limit"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	filters := map[string]interface{}{}
	if raw := c.Query("story_id"); raw != "" {
		filters["story_id"] = raw
	}
	if raw := c.Query("stage_type"); raw != "" {
		filters["stage_type"] = raw
	}
	if raw := c.Query("question_type"); raw != "" {
		filters["question_type"] = raw
	}

	sortFields := []string{"xp_value", "question_text", "id"}

	var questions []models.Question
	err := database.Database.Db.Model(&models.Question{}).
		Preload("AnswerOptions").
		Scopes(
			utils.BuildWhere(filters, []string{"story_id", "stage_type", "question_type"}),
			utils.BuildSearch(c.Query("search"), []string{"question_text"}),
			utils.ApplyPagination(pagination, sortFields, "id"),
		).
		Find(&questions).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	sortField, _ := utils.NormalizeSort(pagination, sortFields, "id")
	keyOf := func(q models.Question) utils.CursorData {
		key := utils.CursorData{ID: q.ID}
		switch sortField {
		case "xp_value":
			key.SortValue = q.XpValue
		case "question_text":
			key.SortValue = q.QuestionText
		}
		return key
	}

	if isAdmin(c) {
		page := utils.BuildPage(questions, pagination.Limit, keyOf)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions fetched successfully!", page)
	}

	sanitized := make([]publicQuestion, len(questions))
	for i, q := range questions {
		sanitized[i] = sanitizeQuestion(q)
	}
	page := utils.BuildPage(sanitized, pagination.Limit, func(q publicQuestion) utils.CursorData {
		return keyOf(q.Question)
	})
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions fetched successfully!", page)
}

// GetQuestion returns one question; options are sanitized for non-admins
func GetQuestion(c *fiber.Ctx) error {
	questionID, err := c.ParamsInt("id")
	if err != nil || questionID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question ID!", nil)
	}

	var question models.Question
	if err := database.Database.Db.Preload("AnswerOptions").First(&question, questionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch question!", nil)
	}

	if isAdmin(c) {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Question fetched successfully!", question)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question fetched successfully!", sanitizeQuestion(question))
}

type questionBody struct {
	StoryID      uint                     `json:"story_id"`
	StageType    string                   `json:"stage_type"`
	QuestionType string                   `json:"question_type"`
	QuestionText string                   `json:"question_text"`
	XpValue      *int                     `json:"xp_value"`
	Metadata     *models.DragDropMetadata `json:"metadata"`
	Options      []struct {
		OptionText string `json:"option_text"`
		IsCorrect  bool   `json:"is_correct"`
	} `json:"answer_options"`
}

func validStageType(s string) bool {
	return s == models.QuestionStagePreTest || s == models.QuestionStagePostTest || s == models.QuestionStageInteractive
}

func validQuestionType(s string) bool {
	switch s {
	case models.QuestionTypeMCQ, models.QuestionTypeTrueFalse, models.QuestionTypeDragDrop, models.QuestionTypeEssay:
		return true
	}
	return false
}

// CreateQuestion creates a question with its answer options (admin)
func CreateQuestion(c *fiber.Ctx) error {
	reqData := new(questionBody)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	errors := make(map[string]string)
	if reqData.StoryID == 0 {
		errors["story_id"] = "Story ID is required!"
	}
	if !validStageType(reqData.StageType) {
		errors["stage_type"] = "Stage type must be PRE_TEST, POST_TEST or INTERACTIVE!"
	}
	if !validQuestionType(reqData.QuestionType) {
		errors["question_type"] = "Question type must be MCQ, TRUE_FALSE, DRAG_DROP or ESSAY!"
	}
	if reqData.QuestionText == "" {
		errors["question_text"] = "Question text is required!"
	}
	if reqData.QuestionType == models.QuestionTypeDragDrop {
		if reqData.Metadata == nil || len(reqData.Metadata.CorrectOrder) == 0 {
			errors["metadata"] = "DRAG_DROP questions require items and a correctOrder!"
		}
	}
	if len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	question := models.Question{
		StoryID:      reqData.StoryID,
		StageType:    reqData.StageType,
		QuestionType: reqData.QuestionType,
		QuestionText: reqData.QuestionText,
		XpValue:      10,
	}
	if reqData.XpValue != nil {
		question.XpValue = *reqData.XpValue
	}
	if reqData.Metadata != nil {
		raw, err := json.Marshal(reqData.Metadata)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question metadata!", nil)
		}
		question.Metadata = datatypes.JSON(raw)
	}
	for _, opt := range reqData.Options {
		question.AnswerOptions = append(question.AnswerOptions, models.AnswerOption{
			OptionText: opt.OptionText,
			IsCorrect:  opt.IsCorrect,
		})
	}

	if err := database.Database.Db.Create(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question created!", question)
}

// UpdateQuestion updates question fields and metadata (admin)
func UpdateQuestion(c *fiber.Ctx) error {
	questionID, err := c.ParamsInt("id")
	if err != nil || questionID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question ID!", nil)
	}

	var question models.Question
	if err := database.Database.Db.First(&question, questionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch question!", nil)
	}

	reqData := new(struct {
		QuestionText *string                  `json:"question_text"`
		XpValue      *int                     `json:"xp_value"`
		Metadata     *models.DragDropMetadata `json:"metadata"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.QuestionText != nil {
		question.QuestionText = *reqData.QuestionText
	}
	if reqData.XpValue != nil {
		question.XpValue = *reqData.XpValue
	}
	if reqData.Metadata != nil {
		raw, err := json.Marshal(reqData.Metadata)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question metadata!", nil)
		}
		question.Metadata = datatypes.JSON(raw)
	}

	if err := database.Database.Db.Save(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question updated!", question)
}

// DeleteQuestion removes a question and its options (admin)
func DeleteQuestion(c *fiber.Ctx) error {
	questionID, err := c.ParamsInt("id")
	if err != nil || questionID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question ID!", nil)
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("question_id = ?", questionID).Delete(&models.AnswerOption{}).Error; err != nil {
			return err
		}
		result := tx.Unscoped().Delete(&models.Question{}, questionID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully!", nil)
}
