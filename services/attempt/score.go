package attempt

import (
	"storyisle/models"

	"gorm.io/gorm"
)

// StageScore aggregates the attempt's question logs for one stage into
// a 0-100 percentage. STORY stages are scored against questions whose
// stage type is INTERACTIVE; no logs means a score of 0.
func StageScore(db *gorm.DB, attemptID uint, stageType string) (float64, error) {
	questionStage := stageType
	if stageType == models.StageStory {
		questionStage = models.QuestionStageInteractive
	}

	var logs []models.QuestionAttemptLog
	err := db.
		Joins("JOIN questions ON questions.id = question_attempt_logs.question_id").
		Where("question_attempt_logs.attempt_id = ? AND questions.stage_type = ?", attemptID, questionStage).
		Find(&logs).Error
	if err != nil {
		return 0, err
	}

	if len(logs) == 0 {
		return 0, nil
	}

	correct := 0
	for _, entry := range logs {
		if entry.IsCorrect != nil && *entry.IsCorrect {
			correct++
		}
	}

	return float64(correct) / float64(len(logs)) * 100, nil
}
