package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question stage types (which part of a story the question belongs to)
const (
	QuestionStagePreTest     = "PRE_TEST"
	QuestionStagePostTest    = "POST_TEST"
	QuestionStageInteractive = "INTERACTIVE"
)

// Question types
const (
	QuestionTypeMCQ       = "MCQ"
	QuestionTypeTrueFalse = "TRUE_FALSE"
	QuestionTypeDragDrop  = "DRAG_DROP"
	QuestionTypeEssay     = "ESSAY"
)

type Question struct {
	gorm.Model
	StoryID       uint           `json:"story_id" gorm:"index;not null"`
	StageType     string         `json:"stage_type" gorm:"index;not null"` // PRE_TEST, POST_TEST, INTERACTIVE
	QuestionType  string         `json:"question_type" gorm:"not null"`    // MCQ, TRUE_FALSE, DRAG_DROP, ESSAY
	QuestionText  string         `json:"question_text" gorm:"type:text"`
	XpValue       int            `json:"xp_value" gorm:"default:10"`
	Metadata      datatypes.JSON `json:"metadata"` // DRAG_DROP payload, see DragDropMetadata
	AnswerOptions []AnswerOption `json:"answer_options" gorm:"foreignKey:QuestionID"`
}

type AnswerOption struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	OptionText string `json:"option_text" gorm:"type:text"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
}

// DragDropItem is one draggable element of a DRAG_DROP question
type DragDropItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// DragDropMetadata is the typed payload stored in Question.Metadata for
// DRAG_DROP questions. CorrectOrder lists item ids in the expected order.
type DragDropMetadata struct {
	Items        []DragDropItem `json:"items"`
	CorrectOrder []string       `json:"correctOrder"`
}

// DragDropMeta decodes the metadata payload for a DRAG_DROP question.
// Returns nil when no metadata is stored.
func (q *Question) DragDropMeta() (*DragDropMetadata, error) {
	if len(q.Metadata) == 0 {
		return nil, nil
	}
	var meta DragDropMetadata
	if err := json.Unmarshal(q.Metadata, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}
