package xp

import (
	"storyisle/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Grant records one XP award for the user. Grants are keyed by
// (attemptID, source); a repeat of an already-recorded grant is dropped
// instead of double counting. Reports whether a new grant was written.
func Grant(db *gorm.DB, userID, attemptID uint, source string, amount int) (bool, error) {
	if amount <= 0 {
		return false, nil
	}

	grant := models.XpGrant{
		UserID:    userID,
		AttemptID: attemptID,
		Source:    source,
		Amount:    amount,
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "attempt_id"}, {Name: "source"}},
		DoNothing: true,
	}).Create(&grant)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// TotalForUser folds the grant ledger into the user's current XP total
func TotalForUser(db *gorm.DB, userID uint) (int, error) {
	var total int64
	err := db.Model(&models.XpGrant{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return int(total), err
}
