package progress

import (
	"errors"

	"storyisle/models"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("progress not found")

// ListFilters narrows a user's progress listing
type ListFilters struct {
	IsUnlocked  *bool
	IsCompleted *bool
}

// List returns the user's progress rows across islands
func List(db *gorm.DB, userID uint, filters ListFilters) ([]models.UserProgress, error) {
	query := db.Where("user_id = ?", userID)
	if filters.IsUnlocked != nil {
		query = query.Where("is_unlocked = ?", *filters.IsUnlocked)
	}
	if filters.IsCompleted != nil {
		query = query.Where("is_completed = ?", *filters.IsCompleted)
	}

	var rows []models.UserProgress
	err := query.Order("island_id asc").Find(&rows).Error
	return rows, err
}

// GetByIsland returns the user's progress on one island, or ErrNotFound
func GetByIsland(db *gorm.DB, userID, islandID uint) (*models.UserProgress, error) {
	var row models.UserProgress
	err := db.Where("user_id = ? AND island_id = ?", userID, islandID).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// Upsert creates or updates the user's progress row for an island.
// Absent fields keep their current values.
func Upsert(db *gorm.DB, userID, islandID uint, isUnlocked, isCompleted *bool) (*models.UserProgress, error) {
	var row models.UserProgress
	err := db.Where("user_id = ? AND island_id = ?", userID, islandID).First(&row).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}

	if err == gorm.ErrRecordNotFound {
		row = models.UserProgress{UserID: userID, IslandID: islandID}
	}
	if isUnlocked != nil {
		row.IsUnlocked = *isUnlocked
	}
	if isCompleted != nil {
		row.IsCompleted = *isCompleted
	}

	if err := db.Save(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// UpdateByID patches unlock/completion flags on an existing row
func UpdateByID(db *gorm.DB, id uint, isUnlocked, isCompleted *bool) (*models.UserProgress, error) {
	var row models.UserProgress
	if err := db.First(&row, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if isUnlocked != nil {
		row.IsUnlocked = *isUnlocked
	}
	if isCompleted != nil {
		row.IsCompleted = *isCompleted
	}

	if err := db.Save(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// BelongsToUser reports whether the progress row is owned by the user
func BelongsToUser(db *gorm.DB, id, userID uint) (bool, error) {
	var count int64
	err := db.Model(&models.UserProgress{}).
		Where("id = ? AND user_id = ?", id, userID).
		Count(&count).Error
	return count > 0, err
}

// InitializeForUser creates one progress row per island for a new user,
// unlocked according to each island's default. Existing rows are kept.
func InitializeForUser(db *gorm.DB, userID uint) error {
	var islands []models.Island
	if err := db.Order("unlock_order asc").Find(&islands).Error; err != nil {
		return err
	}

	for _, island := range islands {
		var count int64
		if err := db.Model(&models.UserProgress{}).
			Where("user_id = ? AND island_id = ?", userID, island.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		row := models.UserProgress{
			UserID:     userID,
			IslandID:   island.ID,
			IsUnlocked: !island.IsLockedDefault,
		}
		if err := db.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// IncrementCycleCount bumps the user's completion cycle on an island
// and marks it completed, creating the row if it does not exist yet.
func IncrementCycleCount(db *gorm.DB, userID, islandID uint) (*models.UserProgress, error) {
	var row models.UserProgress
	err := db.Where("user_id = ? AND island_id = ?", userID, islandID).First(&row).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}

	if err == gorm.ErrRecordNotFound {
		row = models.UserProgress{
			UserID:      userID,
			IslandID:    islandID,
			IsUnlocked:  true,
			IsCompleted: true,
			CycleCount:  1,
		}
		if err := db.Create(&row).Error; err != nil {
			return nil, err
		}
		return &row, nil
	}

	row.CycleCount++
	row.IsCompleted = true
	if err := db.Save(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
