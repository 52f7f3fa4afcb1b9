package attempt

import (
	"fmt"
	"time"

	"storyisle/models"
	"storyisle/services/progress"
	"storyisle/services/xp"
	"storyisle/utils"

	"gorm.io/gorm"
)

// ListFilters narrows an attempt listing
type ListFilters struct {
	UserID     uint
	StoryID    *uint
	IslandID   *uint
	IsFinished *bool
}

// UpdateFields is the partial-update payload for an attempt. Nil fields
// are left untouched.
type UpdateFields struct {
	FinishedAt            *time.Time
	TotalTimeSeconds      *int
	TotalXpGained         *int
	PreTestScore          *float64
	PostTestScore         *float64
	CorrectInteractiveCnt *int
	WrongInteractiveCnt   *int
	EssayAnswer           *string
}

// StageInput describes one stage completion. Score nil means "compute
// it from the question logs".
type StageInput struct {
	StageType        string
	TimeSpentSeconds int
	XpGained         int
	Score            *float64
}

// CreateOrResume returns the user's unfinished attempt for the story if
// one exists, otherwise starts a new one.
func CreateOrResume(db *gorm.DB, userID, storyID uint) (*models.StoryAttempt, error) {
	var existing models.StoryAttempt
	err := db.Preload("QuestionLogs", func(db *gorm.DB) *gorm.DB {
		return db.Order("answered_at asc")
	}).
		Where("user_id = ? AND story_id = ? AND finished_at IS NULL", userID, storyID).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	created := models.StoryAttempt{
		UserID:    userID,
		StoryID:   storyID,
		StartedAt: time.Now(),
	}
	if err := db.Create(&created).Error; err != nil {
		return nil, err
	}
	created.QuestionLogs = []models.QuestionAttemptLog{}
	return &created, nil
}

// GetByID loads an attempt with its stage attempts and question logs
func GetByID(db *gorm.DB, id uint) (*models.StoryAttempt, error) {
	var row models.StoryAttempt
	err := db.
		Preload("StageAttempts", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("QuestionLogs", func(db *gorm.DB) *gorm.DB { return db.Order("answered_at asc") }).
		First(&row, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: attempt %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &row, nil
}

// BelongsToUser reports whether the attempt is owned by the user
func BelongsToUser(db *gorm.DB, id, userID uint) (bool, error) {
	var count int64
	err := db.Model(&models.StoryAttempt{}).
		Where("id = ? AND user_id = ?", id, userID).
		Count(&count).Error
	return count > 0, err
}

var attemptSortFields = []string{"started_at", "finished_at", "total_xp_gained", "id"}

func attemptSortValue(a models.StoryAttempt, field string) interface{} {
	switch field {
	case "started_at":
		return a.StartedAt
	case "finished_at":
		return a.FinishedAt
	case "total_xp_gained":
		return a.TotalXpGained
	}
	return nil
}

// List returns one page of the user's attempts, newest first
func List(db *gorm.DB, filters ListFilters, pagination utils.PaginationParams) (utils.PaginatedResult, error) {
	query := db.Model(&models.StoryAttempt{}).
		Where("story_attempts.user_id = ?", filters.UserID)

	if filters.StoryID != nil {
		query = query.Where("story_attempts.story_id = ?", *filters.StoryID)
	}
	if filters.IslandID != nil {
		query = query.
			Joins("JOIN stories ON stories.id = story_attempts.story_id").
			Where("stories.island_id = ?", *filters.IslandID)
	}
	if filters.IsFinished != nil {
		if *filters.IsFinished {
			query = query.Where("story_attempts.finished_at IS NOT NULL")
		} else {
			query = query.Where("story_attempts.finished_at IS NULL")
		}
	}

	var rows []models.StoryAttempt
	err := query.
		Scopes(utils.ApplyPagination(pagination, attemptSortFields, "started_at")).
		Find(&rows).Error
	if err != nil {
		return utils.PaginatedResult{}, err
	}

	sortField, _ := utils.NormalizeSort(pagination, attemptSortFields, "started_at")
	page := utils.BuildPage(rows, pagination.Limit, func(a models.StoryAttempt) utils.CursorData {
		return utils.CursorData{ID: a.ID, SortValue: attemptSortValue(a, sortField)}
	})
	return page, nil
}

// Update applies a partial update to an attempt. Setting a positive
// TotalXpGained also awards that XP to the owning user, through the
// grant ledger so a resent value is not counted twice.
func Update(db *gorm.DB, attemptID uint, fields UpdateFields) (*models.StoryAttempt, error) {
	var updated *models.StoryAttempt

	err := db.Transaction(func(tx *gorm.DB) error {
		var row models.StoryAttempt
		if err := tx.First(&row, attemptID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: attempt %d", ErrNotFound, attemptID)
			}
			return err
		}

		if fields.TotalXpGained != nil && *fields.TotalXpGained > 0 {
			if _, err := xp.Grant(tx, row.UserID, row.ID, models.XpSourceAttempt, *fields.TotalXpGained); err != nil {
				return err
			}
		}

		if fields.FinishedAt != nil {
			row.FinishedAt = fields.FinishedAt
		}
		if fields.TotalTimeSeconds != nil {
			row.TotalTimeSeconds = *fields.TotalTimeSeconds
		}
		if fields.TotalXpGained != nil {
			row.TotalXpGained = *fields.TotalXpGained
		}
		if fields.PreTestScore != nil {
			row.PreTestScore = fields.PreTestScore
		}
		if fields.PostTestScore != nil {
			row.PostTestScore = fields.PostTestScore
		}
		if fields.CorrectInteractiveCnt != nil {
			row.CorrectInteractiveCnt = *fields.CorrectInteractiveCnt
		}
		if fields.WrongInteractiveCnt != nil {
			row.WrongInteractiveCnt = *fields.WrongInteractiveCnt
		}
		if fields.EssayAnswer != nil {
			row.EssayAnswer = fields.EssayAnswer
		}

		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		updated = &row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an attempt together with its stage attempts and
// question logs, leaving no orphans.
func Delete(db *gorm.DB, attemptID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var row models.StoryAttempt
		if err := tx.First(&row, attemptID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: attempt %d", ErrNotFound, attemptID)
			}
			return err
		}

		if err := tx.Unscoped().Where("attempt_id = ?", attemptID).Delete(&models.QuestionAttemptLog{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("attempt_id = ?", attemptID).Delete(&models.StageAttempt{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&row).Error
	})
}

// AddStageAttempt records one completed stage. The score is computed
// from the question logs when the caller does not supply one, then
// propagated to the parent attempt: PRE_TEST fills PreTestScore,
// POST_TEST fills PostTestScore and triggers cycle detection for the
// story's island. Positive XP is awarded through the grant ledger.
// The whole sequence runs in one transaction so concurrent completions
// cannot double-increment the cycle count.
func AddStageAttempt(db *gorm.DB, attemptID uint, input StageInput) (*models.StageAttempt, error) {
	switch input.StageType {
	case models.StagePreTest, models.StageStory, models.StagePostTest:
	default:
		return nil, fmt.Errorf("%w: unknown stage type %q", ErrInvalidInput, input.StageType)
	}

	var created *models.StageAttempt

	err := db.Transaction(func(tx *gorm.DB) error {
		var parent models.StoryAttempt
		if err := tx.First(&parent, attemptID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: attempt %d", ErrNotFound, attemptID)
			}
			return err
		}

		var existing int64
		if err := tx.Model(&models.StageAttempt{}).
			Where("attempt_id = ? AND stage_type = ?", attemptID, input.StageType).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return fmt.Errorf("%w: stage %s already recorded for attempt %d", ErrInvalidInput, input.StageType, attemptID)
		}

		score := input.Score
		if score == nil {
			computed, err := StageScore(tx, attemptID, input.StageType)
			if err != nil {
				return err
			}
			score = &computed
		}

		stage := models.StageAttempt{
			AttemptID:        attemptID,
			StageType:        input.StageType,
			TimeSpentSeconds: input.TimeSpentSeconds,
			XpGained:         input.XpGained,
			Score:            score,
		}
		if err := tx.Create(&stage).Error; err != nil {
			return err
		}

		switch input.StageType {
		case models.StagePreTest:
			if err := tx.Model(&parent).Update("pre_test_score", score).Error; err != nil {
				return err
			}
		case models.StagePostTest:
			if err := tx.Model(&parent).Update("post_test_score", score).Error; err != nil {
				return err
			}

			var story models.Story
			if err := tx.First(&story, parent.StoryID).Error; err != nil {
				return err
			}

			complete, err := IsCycleComplete(tx, parent.UserID, story.IslandID)
			if err != nil {
				return err
			}
			if complete {
				if _, err := progress.IncrementCycleCount(tx, parent.UserID, story.IslandID); err != nil {
					return err
				}
			}
		}

		if input.XpGained > 0 {
			source := models.XpSourceStagePrefix + input.StageType
			if _, err := xp.Grant(tx, parent.UserID, attemptID, source, input.XpGained); err != nil {
				return err
			}
		}

		created = &stage
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// AddQuestionLog validates a submission server-side and appends the
// resulting log entry. Invalid submissions produce no log row.
func AddQuestionLog(db *gorm.DB, attemptID, questionID uint, sub AnswerSubmission) (*models.QuestionAttemptLog, error) {
	var created *models.QuestionAttemptLog

	err := db.Transaction(func(tx *gorm.DB) error {
		var parent models.StoryAttempt
		if err := tx.First(&parent, attemptID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: attempt %d", ErrNotFound, attemptID)
			}
			return err
		}

		var question models.Question
		if err := tx.First(&question, questionID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: question %d", ErrNotFound, questionID)
			}
			return err
		}

		isCorrect, answerText, err := ValidateAnswer(tx, &question, sub)
		if err != nil {
			return err
		}

		attemptCount := 1
		if sub.AttemptCount != nil && *sub.AttemptCount > 0 {
			attemptCount = *sub.AttemptCount
		}

		entry := models.QuestionAttemptLog{
			AttemptID:      attemptID,
			QuestionID:     questionID,
			UserAnswerText: answerText,
			IsCorrect:      isCorrect,
			AttemptCount:   attemptCount,
			AnsweredAt:     time.Now(),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		created = &entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
