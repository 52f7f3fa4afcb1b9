package models

import "gorm.io/gorm"

// UserProgress tracks per-user, per-island unlock/completion state.
// One row per (UserID, IslandID), created lazily.
type UserProgress struct {
	gorm.Model
	UserID      uint `json:"user_id" gorm:"not null;uniqueIndex:idx_user_island"`
	IslandID    uint `json:"island_id" gorm:"not null;uniqueIndex:idx_user_island"`
	IsUnlocked  bool `json:"is_unlocked" gorm:"default:false"`
	IsCompleted bool `json:"is_completed" gorm:"default:false"`
	CycleCount  int  `json:"cycle_count" gorm:"default:0"`
}
