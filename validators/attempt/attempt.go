package attemptValidator

import (
	"strconv"
	"strings"
	"time"

	"storyisle/middleware"
	attemptService "storyisle/services/attempt"
	"storyisle/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// parseID reads a numeric path parameter and stores it in Locals
func parseID(c *fiber.Ctx, param, local string) (bool, error) {
	raw := strings.TrimSpace(c.Params(param))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return false, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+" in the URL!", nil)
	}
	c.Locals(local, uint(id))
	return true, nil
}

// AttemptID validates the :id path parameter
func AttemptID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, resp := parseID(c, "id", "attemptID"); !ok {
			return resp
		}
		return c.Next()
	}
}

// ListAttempts parses list filters and pagination from the query string
func ListAttempts() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filters := attemptService.ListFilters{}

		if raw := c.Query("story_id"); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid story_id filter!", nil)
			}
			storyID := uint(id)
			filters.StoryID = &storyID
		}
		if raw := c.Query("island_id"); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid island_id filter!", nil)
			}
			islandID := uint(id)
			filters.IslandID = &islandID
		}
		if raw := c.Query("is_finished"); raw != "" {
			finished, err := strconv.ParseBool(raw)
			if err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid is_finished filter!", nil)
			}
			filters.IsFinished = &finished
		}

		c.Locals("attemptFilters", filters)
		c.Locals("pagination", utils.PaginationParams{
			Cursor:    c.Query("cursor"),
			Limit:     c.QueryInt("limit"),
			SortBy:    c.Query("sort_by"),
			SortOrder: c.Query("sort_order"),
		})
		return c.Next()
	}
}

// CreateAttempt validates the start-attempt body
func CreateAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			StoryID uint `json:"story_id" validate:"required,gt=0"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"story_id": "Story ID is required!"})
		}

		c.Locals("storyID", reqData.StoryID)
		return c.Next()
	}
}

// UpdateAttempt validates the partial-update body
func UpdateAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			FinishedAt            *time.Time `json:"finished_at"`
			TotalTimeSeconds      *int       `json:"total_time_seconds" validate:"omitempty,gte=0"`
			TotalXpGained         *int       `json:"total_xp_gained" validate:"omitempty,gte=0"`
			PreTestScore          *float64   `json:"pre_test_score" validate:"omitempty,gte=0,lte=100"`
			PostTestScore         *float64   `json:"post_test_score" validate:"omitempty,gte=0,lte=100"`
			CorrectInteractiveCnt *int       `json:"correct_interactive_cnt" validate:"omitempty,gte=0"`
			WrongInteractiveCnt   *int       `json:"wrong_interactive_cnt" validate:"omitempty,gte=0"`
			EssayAnswer           *string    `json:"essay_answer"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[fieldErr.Field()] = "Value out of range!"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("attemptUpdate", attemptService.UpdateFields{
			FinishedAt:            reqData.FinishedAt,
			TotalTimeSeconds:      reqData.TotalTimeSeconds,
			TotalXpGained:         reqData.TotalXpGained,
			PreTestScore:          reqData.PreTestScore,
			PostTestScore:         reqData.PostTestScore,
			CorrectInteractiveCnt: reqData.CorrectInteractiveCnt,
			WrongInteractiveCnt:   reqData.WrongInteractiveCnt,
			EssayAnswer:           reqData.EssayAnswer,
		})
		return c.Next()
	}
}

// AddStage validates the stage-completion body
func AddStage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			StageType        string   `json:"stage_type" validate:"required,oneof=PRE_TEST STORY POST_TEST"`
			TimeSpentSeconds int      `json:"time_spent_seconds" validate:"gte=0"`
			XpGained         int      `json:"xp_gained" validate:"gte=0"`
			Score            *float64 `json:"score" validate:"omitempty,gte=0,lte=100"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"stage_type": "Stage type must be one of PRE_TEST, STORY, POST_TEST!",
			})
		}

		c.Locals("stageInput", attemptService.StageInput{
			StageType:        reqData.StageType,
			TimeSpentSeconds: reqData.TimeSpentSeconds,
			XpGained:         reqData.XpGained,
			Score:            reqData.Score,
		})
		return c.Next()
	}
}

// AddLog validates the answer-submission body. Any client-sent
// correctness flag is deliberately not parsed.
func AddLog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			QuestionID       uint    `json:"question_id" validate:"required,gt=0"`
			SelectedOptionID *uint   `json:"selected_option_id" validate:"omitempty,gt=0"`
			UserAnswerText   *string `json:"user_answer_text"`
			AttemptCount     *int    `json:"attempt_count" validate:"omitempty,gt=0"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"question_id": "Question ID is required!"})
		}

		c.Locals("questionID", reqData.QuestionID)
		c.Locals("answerSubmission", attemptService.AnswerSubmission{
			SelectedOptionID: reqData.SelectedOptionID,
			UserAnswerText:   reqData.UserAnswerText,
			AttemptCount:     reqData.AttemptCount,
		})
		return c.Next()
	}
}
