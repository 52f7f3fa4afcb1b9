package attempt

import (
	"storyisle/models"

	"gorm.io/gorm"
)

// IsCycleComplete reports whether the user has a finished attempt on
// every trackable story of the island. A story is trackable when it has
// at least one slide of its own type; placeholder stories without
// content never block completion. An island with zero trackable stories
// is never complete.
func IsCycleComplete(db *gorm.DB, userID, islandID uint) (bool, error) {
	var stories []models.Story
	if err := db.Where("island_id = ?", islandID).Find(&stories).Error; err != nil {
		return false, err
	}

	var trackableIDs []uint
	for _, story := range stories {
		hasContent, err := storyHasContent(db, &story)
		if err != nil {
			return false, err
		}
		if hasContent {
			trackableIDs = append(trackableIDs, story.ID)
		}
	}

	if len(trackableIDs) == 0 {
		return false, nil
	}

	// Distinct-story coverage: several finished attempts on one story
	// still count as one.
	var finishedStoryIDs []uint
	err := db.Model(&models.StoryAttempt{}).
		Distinct("story_id").
		Where("user_id = ? AND story_id IN ? AND finished_at IS NOT NULL", userID, trackableIDs).
		Pluck("story_id", &finishedStoryIDs).Error
	if err != nil {
		return false, err
	}

	return len(finishedStoryIDs) >= len(trackableIDs), nil
}

func storyHasContent(db *gorm.DB, story *models.Story) (bool, error) {
	var count int64
	var err error
	switch story.StoryType {
	case models.StoryTypeStatic:
		err = db.Model(&models.StaticSlide{}).Where("story_id = ?", story.ID).Count(&count).Error
	case models.StoryTypeInteractive:
		err = db.Model(&models.InteractiveSlide{}).Where("story_id = ?", story.ID).Count(&count).Error
	}
	return count > 0, err
}
