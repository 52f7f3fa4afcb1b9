package attempt

import (
	"encoding/json"
	"fmt"

	"storyisle/models"

	"gorm.io/gorm"
)

// AnswerSubmission is one answer as sent by the client. Any IsCorrect
// flag the client includes is ignored; correctness is always computed
// server-side.
type AnswerSubmission struct {
	SelectedOptionID *uint
	UserAnswerText   *string
	AttemptCount     *int
}

// ValidateAnswer determines correctness for a submission against a
// question. Returns the correctness (nil when not decidable, e.g.
// essays without an option) and the answer text to persist.
func ValidateAnswer(db *gorm.DB, question *models.Question, sub AnswerSubmission) (*bool, *string, error) {
	answerText := sub.UserAnswerText

	// MCQ / TRUE_FALSE answered by option id
	if sub.SelectedOptionID != nil {
		var option models.AnswerOption
		if err := db.First(&option, *sub.SelectedOptionID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, nil, fmt.Errorf("%w: answer option %d does not exist", ErrInvalidInput, *sub.SelectedOptionID)
			}
			return nil, nil, err
		}

		// Reject option ids belonging to another question; scoring them
		// silently would let clients shop for a correct option elsewhere.
		if option.QuestionID != question.ID {
			return nil, nil, fmt.Errorf("%w: answer option %d does not belong to question %d", ErrInvalidInput, option.ID, question.ID)
		}

		isCorrect := option.IsCorrect
		if answerText == nil || *answerText == "" {
			answerText = &option.OptionText
		}
		return &isCorrect, answerText, nil
	}

	// DRAG_DROP answered by an ordered list of item ids
	if question.QuestionType == models.QuestionTypeDragDrop && answerText != nil && *answerText != "" {
		meta, err := question.DragDropMeta()
		if err != nil || meta == nil || len(meta.CorrectOrder) == 0 {
			return nil, nil, fmt.Errorf("%w: question %d is DRAG_DROP but has no correctOrder metadata", ErrNotConfigured, question.ID)
		}

		// Only "not a list" is rejected; a list of wrong-typed ids is a
		// wrong answer, not an invalid submission.
		var rawOrder []interface{}
		if err := json.Unmarshal([]byte(*answerText), &rawOrder); err != nil {
			return nil, nil, fmt.Errorf("%w: DRAG_DROP answer must be a JSON array of item ids", ErrInvalidInput)
		}

		userOrder := make([]string, 0, len(rawOrder))
		allStrings := true
		for _, item := range rawOrder {
			id, ok := item.(string)
			if !ok {
				allStrings = false
				break
			}
			userOrder = append(userOrder, id)
		}

		isCorrect := allStrings && orderMatches(userOrder, meta.CorrectOrder)
		return &isCorrect, answerText, nil
	}

	// Essays (and anything else without a decidable answer) stay ungraded
	if question.QuestionType == models.QuestionTypeEssay {
		return nil, answerText, nil
	}

	// No option, no parseable text: counted as wrong
	isCorrect := false
	return &isCorrect, answerText, nil
}

// orderMatches requires positional equality: same length and the same
// id at every index. Set equality is not enough.
func orderMatches(submitted, correct []string) bool {
	if len(submitted) != len(correct) {
		return false
	}
	for i, id := range submitted {
		if id != correct[i] {
			return false
		}
	}
	return true
}
