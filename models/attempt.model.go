package models

import (
	"time"

	"gorm.io/gorm"
)

// Attempt stage types. STORY stages are scored against questions with
// stage type INTERACTIVE (the embedded story quiz uses its own label).
const (
	StagePreTest  = "PRE_TEST"
	StageStory    = "STORY"
	StagePostTest = "POST_TEST"
)

// StoryAttempt is one learner's run through one story. At most one
// unfinished attempt (FinishedAt == nil) exists per (UserID, StoryID).
type StoryAttempt struct {
	gorm.Model
	UserID                uint       `json:"user_id" gorm:"index;not null"`
	StoryID               uint       `json:"story_id" gorm:"index;not null"`
	StartedAt             time.Time  `json:"started_at" gorm:"autoCreateTime"`
	FinishedAt            *time.Time `json:"finished_at" gorm:"index"`
	TotalTimeSeconds      int        `json:"total_time_seconds" gorm:"default:0"`
	TotalXpGained         int        `json:"total_xp_gained" gorm:"default:0"`
	PreTestScore          *float64   `json:"pre_test_score"`
	PostTestScore         *float64   `json:"post_test_score"`
	CorrectInteractiveCnt int        `json:"correct_interactive_cnt" gorm:"default:0"`
	WrongInteractiveCnt   int        `json:"wrong_interactive_cnt" gorm:"default:0"`
	EssayAnswer           *string    `json:"essay_answer" gorm:"type:text"`

	StageAttempts []StageAttempt       `json:"stage_attempts,omitempty" gorm:"foreignKey:AttemptID"`
	QuestionLogs  []QuestionAttemptLog `json:"question_logs,omitempty" gorm:"foreignKey:AttemptID"`
}

// StageAttempt is one scored segment of an attempt. Created once per
// stage per attempt, immutable afterwards.
type StageAttempt struct {
	gorm.Model
	AttemptID        uint     `json:"attempt_id" gorm:"index;not null;uniqueIndex:idx_stage_per_attempt"`
	StageType        string   `json:"stage_type" gorm:"not null;uniqueIndex:idx_stage_per_attempt"` // PRE_TEST, STORY, POST_TEST
	TimeSpentSeconds int      `json:"time_spent_seconds" gorm:"default:0"`
	XpGained         int      `json:"xp_gained" gorm:"default:0"`
	Score            *float64 `json:"score"`
}

// QuestionAttemptLog is one answer submission. Append-only; retries of
// the same question produce additional rows.
type QuestionAttemptLog struct {
	gorm.Model
	AttemptID      uint      `json:"attempt_id" gorm:"index;not null"`
	QuestionID     uint      `json:"question_id" gorm:"index;not null"`
	UserAnswerText *string   `json:"user_answer_text" gorm:"type:text"`
	IsCorrect      *bool     `json:"is_correct"` // nil when not decidable (essay)
	AttemptCount   int       `json:"attempt_count" gorm:"default:1"`
	AnsweredAt     time.Time `json:"answered_at" gorm:"autoCreateTime"`
}
