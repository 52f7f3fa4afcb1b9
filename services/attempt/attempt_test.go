package attempt

import (
	"testing"
	"time"

	"storyisle/database"
	"storyisle/models"
	"storyisle/services/xp"
	"storyisle/utils"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{Name: "Test Learner", Email: email}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createIslandWithStory(t *testing.T, db *gorm.DB) (*models.Island, *models.Story) {
	t.Helper()
	island := models.Island{IslandName: "Sulawesi", UnlockOrder: 1}
	require.NoError(t, db.Create(&island).Error)

	story := models.Story{IslandID: island.ID, Title: "Cerita Rakyat", StoryType: models.StoryTypeInteractive}
	require.NoError(t, db.Create(&story).Error)
	require.NoError(t, db.Create(&models.InteractiveSlide{StoryID: story.ID, SlideNumber: 1, Content: "Pada zaman dahulu..."}).Error)

	return &island, &story
}

func createQuestion(t *testing.T, db *gorm.DB, storyID uint, stageType string) *models.Question {
	t.Helper()
	question := models.Question{
		StoryID:      storyID,
		StageType:    stageType,
		QuestionType: models.QuestionTypeMCQ,
		QuestionText: "Siapa tokoh utama?",
		AnswerOptions: []models.AnswerOption{
			{OptionText: "benar", IsCorrect: true},
			{OptionText: "salah", IsCorrect: false},
		},
	}
	require.NoError(t, db.Create(&question).Error)
	return &question
}

func logAnswer(t *testing.T, db *gorm.DB, attemptID, questionID uint, correct bool) {
	t.Helper()
	entry := models.QuestionAttemptLog{
		AttemptID:  attemptID,
		QuestionID: questionID,
		IsCorrect:  &correct,
		AnsweredAt: time.Now(),
	}
	require.NoError(t, db.Create(&entry).Error)
}

func TestCreateOrResumeReturnsExistingUnfinished(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "resume@example.com")
	_, story := createIslandWithStory(t, db)

	first, err := CreateOrResume(db, user.ID, story.ID)
	require.NoError(t, err)

	second, err := CreateOrResume(db, user.ID, story.ID)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID, "unfinished attempt must be resumed, not duplicated")

	var count int64
	require.NoError(t, db.Model(&models.StoryAttempt{}).
		Where("user_id = ? AND story_id = ?", user.ID, story.ID).
		Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestCreateOrResumeStartsFreshAfterFinish(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "fresh@example.com")
	_, story := createIslandWithStory(t, db)

	first, err := CreateOrResume(db, user.ID, story.ID)
	require.NoError(t, err)

	now := time.Now()
	_, err = Update(db, first.ID, UpdateFields{FinishedAt: &now})
	require.NoError(t, err)

	second, err := CreateOrResume(db, user.ID, story.ID)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
}

func TestAddStageAttemptComputesScoreFromLogs(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "score@example.com")
	_, story := createIslandWithStory(t, db)

	attempt, err := CreateOrResume(db, user.ID, story.ID)
	require.NoError(t, err)

	// 2 correct, 1 wrong on interactive questions: the STORY stage is
	// scored against them
	q1 := createQuestion(t, db, story.ID, models.QuestionStageInteractive)
	q2 := createQuestion(t, db, story.ID, models.QuestionStageInteractive)
	q3 := createQuestion(t, db, story.ID, models.QuestionStageInteractive)
	logAnswer(t, db, attempt.ID, q1.ID, true)
	logAnswer(t, db, attempt.ID, q2.ID, true)
	logAnswer(t, db, attempt.ID, q3.ID, false)

	stage, err := AddStageAttempt(db, attempt.ID, StageInput{StageType: models.StageStory})
	require.NoError(t, err)
	require.NotNil(t, stage.Score)
	require.InDelta(t, 66.7, *stage.Score, 0.1)
}

func TestAddStageAttemptExplicitScoreWins(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "explicit@example.com")
	_, story := createIslandWithStory(t, db)

	attempt, err := CreateOrResume(db, user.ID, story.ID)
	require.NoError(t, err)

	explicit := 88.0
	stage, err := AddStageAttempt(db, attempt.ID, StageInput{StageType: models.StagePreTest, Score: &explicit})
	require.NoError(t, err)
	require.Equal(t, explicit, *stage.Score)

	var parent models.StoryAttempt
	require.NoError(t, db.First(&parent, attempt.ID).Error)
	require.NotNil(t, parent.PreTestScore)
	require.Equal(t, explicit, *parent.PreTestScore)
}

func TestAddStageAttemptZeroLogsScoresZero(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "zero@example.com")
	_, story := createIslandWithStory(t, db)

	attempt, err := CreateOrResume(db, user.ID, story.ID)
	require.NoError(t, err)

	stage, err := AddStageAttempt(db, attempt.ID, StageInput{StageType: models.StagePreTest})
	require.NoError(t, err)
	require.NotNil(t, stage.Score)
	require.Equal(t, 0.0, *stage.Score)
}

func TestStageXpAccrualIsAdditive(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "xp@example.com")
	_, story := createIslandWithStory(t, db)

	attempt, err := CreateOrResume(db, user.ID, story.ID)
	require.NoError(t, err)

	_, err = AddStageAttempt(db, attempt.ID, StageInput{StageType: models.StagePreTest, XpGained: 10})
	require.NoError(t, err)
	_, err = AddStageAttempt(db, attempt.ID, StageInput{StageType: models.StageStory, XpGained: 10})
	require.NoError(t, err)

	total, err := xp.TotalForUser(db, user.ID)
	require.NoError(t, err)
	require.Equal(t, 20, total, "two grants of 10 must add up, not overwrite")
}

func TestUpdateResentXpIsNotDoubleCounted(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "noreplay@example.com")
	_, story := createIslandWithStory(t, db)

	attempt, err := CreateOrResume(db, user.ID, story.ID)
	require.NoError(t, err)

	amount := 50
	_, err = Update(db, attempt.ID, UpdateFields{TotalXpGained: &amount})
	require.NoError(t, err)
	_, err = Update(db, attempt.ID, UpdateFields{TotalXpGained: &amount})
	require.NoError(t, err)

	total, err := xp.TotalForUser(db, user.ID)
	require.NoError(t, err)
	require.Equal(t, 50, total, "resending the same cumulative value must not double count")
}

func TestUpdateUnknownAttempt(t *testing.T) {
	db := setupTestDB(t)

	_, err := Update(db, 9999, UpdateFields{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRemovesStagesAndLogs(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "delete@example.com")
	_, story := createIslandWithStory(t, db)

	attempt, err := CreateOrResume(db, user.ID, story.ID)
	require.NoError(t, err)

	question := createQuestion(t, db, story.ID, models.QuestionStageInteractive)
	logAnswer(t, db, attempt.ID, question.ID, true)
	_, err = AddStageAttempt(db, attempt.ID, StageInput{StageType: models.StageStory})
	require.NoError(t, err)

	require.NoError(t, Delete(db, attempt.ID))

	var stageCount, logCount int64
	require.NoError(t, db.Model(&models.StageAttempt{}).Where("attempt_id = ?", attempt.ID).Count(&stageCount).Error)
	require.NoError(t, db.Model(&models.QuestionAttemptLog{}).Where("attempt_id = ?", attempt.ID).Count(&logCount).Error)
	require.EqualValues(t, 0, stageCount, "no orphaned stage attempts")
	require.EqualValues(t, 0, logCount, "no orphaned question logs")

	require.ErrorIs(t, Delete(db, attempt.ID), ErrNotFound)
}

func TestPostTestCompletionAdvancesCycle(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "cycle@example.com")
	island, story := createIslandWithStory(t, db)

	// A second trackable story on the same island
	other := models.Story{IslandID: island.ID, Title: "Cerita Kedua", StoryType: models.StoryTypeInteractive}
	require.NoError(t, db.Create(&other).Error)
	require.NoError(t, db.Create(&models.InteractiveSlide{StoryID: other.ID, SlideNumber: 1, Content: "Bab dua"}).Error)

	finishAttempt := func(storyID uint) *models.StoryAttempt {
		row, err := CreateOrResume(db, user.ID, storyID)
		require.NoError(t, err)
		now := time.Now()
		_, err = Update(db, row.ID, UpdateFields{FinishedAt: &now})
		require.NoError(t, err)
		return row
	}

	// Only one of two trackable stories finished: no cycle yet
	finishAttempt(story.ID)
	complete, err := IsCycleComplete(db, user.ID, island.ID)
	require.NoError(t, err)
	require.False(t, complete)

	lastAttempt := finishAttempt(other.ID)
	complete, err = IsCycleComplete(db, user.ID, island.ID)
	require.NoError(t, err)
	require.True(t, complete)

	// Post-test completion on the last attempt flips the progress row
	_, err = AddStageAttempt(db, lastAttempt.ID, StageInput{StageType: models.StagePostTest})
	require.NoError(t, err)

	var row models.UserProgress
	require.NoError(t, db.Where("user_id = ? AND island_id = ?", user.ID, island.ID).First(&row).Error)
	require.Equal(t, 1, row.CycleCount)
	require.True(t, row.IsCompleted)
}

func TestAddStageAttemptRejectsDuplicateStage(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "dupstage@example.com")
	_, story := createIslandWithStory(t, db)

	attempt, err := CreateOrResume(db, user.ID, story.ID)
	require.NoError(t, err)

	_, err = AddStageAttempt(db, attempt.ID, StageInput{StageType: models.StagePreTest})
	require.NoError(t, err)

	_, err = AddStageAttempt(db, attempt.ID, StageInput{StageType: models.StagePreTest})
	require.ErrorIs(t, err, ErrInvalidInput, "a stage is recorded once per attempt")

	var count int64
	require.NoError(t, db.Model(&models.StageAttempt{}).Where("attempt_id = ?", attempt.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestListPaginatesUnderXpSort(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "pages@example.com")
	_, story := createIslandWithStory(t, db)

	// Insertion order deliberately differs from the sort order
	now := time.Now()
	for _, xpGained := range []int{10, 30, 20} {
		row := models.StoryAttempt{
			UserID:        user.ID,
			StoryID:       story.ID,
			StartedAt:     now,
			FinishedAt:    &now,
			TotalXpGained: xpGained,
		}
		require.NoError(t, db.Create(&row).Error)
	}

	pagination := utils.PaginationParams{Limit: 1, SortBy: "total_xp_gained", SortOrder: "desc"}

	var seen []int
	for {
		page, err := List(db, ListFilters{UserID: user.ID}, pagination)
		require.NoError(t, err)
		for _, row := range page.Items.([]models.StoryAttempt) {
			seen = append(seen, row.TotalXpGained)
		}
		if !page.HasMore {
			break
		}
		require.NotNil(t, page.NextCursor)
		pagination.Cursor = *page.NextCursor
	}

	require.Equal(t, []int{30, 20, 10}, seen, "every attempt appears exactly once, in sort order")
}

func TestAddStageAttemptRejectsUnknownStage(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "badstage@example.com")
	_, story := createIslandWithStory(t, db)

	attempt, err := CreateOrResume(db, user.ID, story.ID)
	require.NoError(t, err)

	_, err = AddStageAttempt(db, attempt.ID, StageInput{StageType: "BONUS_ROUND"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddQuestionLog(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "log@example.com")
	_, story := createIslandWithStory(t, db)
	question := createQuestion(t, db, story.ID, models.QuestionStagePreTest)

	attempt, err := CreateOrResume(db, user.ID, story.ID)
	require.NoError(t, err)

	correctOption := question.AnswerOptions[0]
	entry, err := AddQuestionLog(db, attempt.ID, question.ID, AnswerSubmission{SelectedOptionID: &correctOption.ID})
	require.NoError(t, err)
	require.NotNil(t, entry.IsCorrect)
	require.True(t, *entry.IsCorrect)
	require.Equal(t, 1, entry.AttemptCount)
	require.NotNil(t, entry.UserAnswerText)
	require.Equal(t, correctOption.OptionText, *entry.UserAnswerText)

	_, err = AddQuestionLog(db, attempt.ID, 9999, AnswerSubmission{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAddQuestionLogInvalidOptionLeavesNoRow(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "spoof@example.com")
	_, story := createIslandWithStory(t, db)
	target := createQuestion(t, db, story.ID, models.QuestionStagePreTest)
	other := createQuestion(t, db, story.ID, models.QuestionStagePostTest)

	attempt, err := CreateOrResume(db, user.ID, story.ID)
	require.NoError(t, err)

	// Option id from a different question must be rejected outright
	foreignOption := other.AnswerOptions[0]
	_, err = AddQuestionLog(db, attempt.ID, target.ID, AnswerSubmission{SelectedOptionID: &foreignOption.ID})
	require.ErrorIs(t, err, ErrInvalidInput)

	var count int64
	require.NoError(t, db.Model(&models.QuestionAttemptLog{}).Where("attempt_id = ?", attempt.ID).Count(&count).Error)
	require.EqualValues(t, 0, count, "rejected submissions must not be logged")
}
