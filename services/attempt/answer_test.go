package attempt

import (
	"encoding/json"
	"testing"

	"storyisle/models"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func createDragDropQuestion(t *testing.T, db *gorm.DB, storyID uint, correctOrder []string) *models.Question {
	t.Helper()

	var meta []byte
	if correctOrder != nil {
		raw, err := json.Marshal(models.DragDropMetadata{
			Items: []models.DragDropItem{
				{ID: "a", Label: "Awal"},
				{ID: "b", Label: "Tengah"},
				{ID: "c", Label: "Akhir"},
			},
			CorrectOrder: correctOrder,
		})
		require.NoError(t, err)
		meta = raw
	}

	question := models.Question{
		StoryID:      storyID,
		StageType:    models.QuestionStagePostTest,
		QuestionType: models.QuestionTypeDragDrop,
		QuestionText: "Urutkan bagian cerita!",
		Metadata:     datatypes.JSON(meta),
	}
	require.NoError(t, db.Create(&question).Error)
	return &question
}

func strPtr(s string) *string { return &s }

func TestValidateAnswerOptionCorrectnessIsServerSide(t *testing.T) {
	db := setupTestDB(t)
	_, story := createIslandWithStory(t, db)
	question := createQuestion(t, db, story.ID, models.QuestionStagePreTest)

	// The stored flag decides, whatever the client believes
	for _, option := range question.AnswerOptions {
		isCorrect, text, err := ValidateAnswer(db, question, AnswerSubmission{SelectedOptionID: &option.ID})
		require.NoError(t, err)
		require.NotNil(t, isCorrect)
		require.Equal(t, option.IsCorrect, *isCorrect)
		require.NotNil(t, text)
		require.Equal(t, option.OptionText, *text, "answer text back-filled from the option")
	}
}

func TestValidateAnswerKeepsClientText(t *testing.T) {
	db := setupTestDB(t)
	_, story := createIslandWithStory(t, db)
	question := createQuestion(t, db, story.ID, models.QuestionStagePreTest)

	option := question.AnswerOptions[0]
	_, text, err := ValidateAnswer(db, question, AnswerSubmission{
		SelectedOptionID: &option.ID,
		UserAnswerText:   strPtr("my own words"),
	})
	require.NoError(t, err)
	require.Equal(t, "my own words", *text)
}

func TestValidateAnswerRejectsUnknownOption(t *testing.T) {
	db := setupTestDB(t)
	_, story := createIslandWithStory(t, db)
	question := createQuestion(t, db, story.ID, models.QuestionStagePreTest)

	bogus := uint(9999)
	_, _, err := ValidateAnswer(db, question, AnswerSubmission{SelectedOptionID: &bogus})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestValidateAnswerRejectsForeignOption(t *testing.T) {
	db := setupTestDB(t)
	_, story := createIslandWithStory(t, db)
	target := createQuestion(t, db, story.ID, models.QuestionStagePreTest)
	other := createQuestion(t, db, story.ID, models.QuestionStagePostTest)

	foreign := other.AnswerOptions[0]
	_, _, err := ValidateAnswer(db, target, AnswerSubmission{SelectedOptionID: &foreign.ID})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestValidateAnswerDragDropOrder(t *testing.T) {
	db := setupTestDB(t)
	_, story := createIslandWithStory(t, db)
	question := createDragDropQuestion(t, db, story.ID, []string{"a", "b", "c"})

	tests := []struct {
		name    string
		answer  string
		correct bool
	}{
		{"exact order", `["a","b","c"]`, true},
		{"same set wrong order", `["b","a","c"]`, false},
		{"missing element", `["a","b"]`, false},
		{"extra element", `["a","b","c","a"]`, false},
		{"list of non-string ids", `[1,2,3]`, false},
		{"mixed types", `["a",2,"c"]`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isCorrect, _, err := ValidateAnswer(db, question, AnswerSubmission{UserAnswerText: strPtr(tt.answer)})
			require.NoError(t, err)
			require.NotNil(t, isCorrect)
			require.Equal(t, tt.correct, *isCorrect)
		})
	}
}

func TestValidateAnswerDragDropMalformedPayload(t *testing.T) {
	db := setupTestDB(t)
	_, story := createIslandWithStory(t, db)
	question := createDragDropQuestion(t, db, story.ID, []string{"a", "b", "c"})

	// Only payloads that are not a list at all are rejected
	for _, payload := range []string{`not a list`, `{"a":1}`, `"a"`} {
		_, _, err := ValidateAnswer(db, question, AnswerSubmission{UserAnswerText: strPtr(payload)})
		require.ErrorIs(t, err, ErrInvalidInput, payload)
	}
}

func TestValidateAnswerDragDropMissingOrderMetadata(t *testing.T) {
	db := setupTestDB(t)
	_, story := createIslandWithStory(t, db)
	question := createDragDropQuestion(t, db, story.ID, nil)

	_, _, err := ValidateAnswer(db, question, AnswerSubmission{UserAnswerText: strPtr(`["a","b","c"]`)})
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestValidateAnswerEssayStaysUngraded(t *testing.T) {
	db := setupTestDB(t)
	_, story := createIslandWithStory(t, db)

	essay := models.Question{
		StoryID:      story.ID,
		StageType:    models.QuestionStagePostTest,
		QuestionType: models.QuestionTypeEssay,
		QuestionText: "Ceritakan kembali dengan kata-katamu sendiri.",
	}
	require.NoError(t, db.Create(&essay).Error)

	isCorrect, text, err := ValidateAnswer(db, &essay, AnswerSubmission{UserAnswerText: strPtr("jawaban bebas")})
	require.NoError(t, err)
	require.Nil(t, isCorrect, "essays are never auto-graded")
	require.Equal(t, "jawaban bebas", *text)
}

func TestValidateAnswerEmptySubmissionIsWrong(t *testing.T) {
	db := setupTestDB(t)
	_, story := createIslandWithStory(t, db)
	question := createQuestion(t, db, story.ID, models.QuestionStagePreTest)

	isCorrect, _, err := ValidateAnswer(db, question, AnswerSubmission{})
	require.NoError(t, err)
	require.NotNil(t, isCorrect)
	require.False(t, *isCorrect)
}
