package statistics

import (
	"math"

	"storyisle/models"
	"storyisle/services/xp"

	"gorm.io/gorm"
)

// Summary is the per-user learning statistics read model
type Summary struct {
	StoriesCompleted     int `json:"stories_completed"`
	TotalXp              int `json:"total_xp"`
	AveragePreTestScore  int `json:"average_pre_test_score"`
	AveragePostTestScore int `json:"average_post_test_score"`
}

// ForUser aggregates the user's distinct finished stories, cumulative
// XP and rounded average pre/post-test scores over finished attempts.
func ForUser(db *gorm.DB, userID uint) (*Summary, error) {
	var storiesCompleted int64
	err := db.Model(&models.StoryAttempt{}).
		Where("user_id = ? AND finished_at IS NOT NULL", userID).
		Distinct("story_id").
		Count(&storiesCompleted).Error
	if err != nil {
		return nil, err
	}

	totalXp, err := xp.TotalForUser(db, userID)
	if err != nil {
		return nil, err
	}

	var averages struct {
		AvgPre  *float64
		AvgPost *float64
	}
	err = db.Model(&models.StoryAttempt{}).
		Where("user_id = ? AND finished_at IS NOT NULL", userID).
		Select("AVG(pre_test_score) AS avg_pre, AVG(post_test_score) AS avg_post").
		Scan(&averages).Error
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		StoriesCompleted: int(storiesCompleted),
		TotalXp:          totalXp,
	}
	if averages.AvgPre != nil {
		summary.AveragePreTestScore = int(math.Round(*averages.AvgPre))
	}
	if averages.AvgPost != nil {
		summary.AveragePostTestScore = int(math.Round(*averages.AvgPost))
	}
	return summary, nil
}
