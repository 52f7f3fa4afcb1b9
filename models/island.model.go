package models

import "gorm.io/gorm"

// Island groups stories into one unlockable map region
type Island struct {
	gorm.Model
	IslandName      string `json:"island_name" gorm:"not null"`
	Description     string `json:"description" gorm:"default:''"`
	UnlockOrder     int    `json:"unlock_order" gorm:"default:0;index"`
	IsLockedDefault bool   `json:"is_locked_default" gorm:"default:true"`
}
