package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name         string `json:"name" gorm:"default:''"`
	Email        string `json:"email" gorm:"unique;not null"`
	ProfileImage string `json:"profile_image" gorm:"default:''"`
	Role         string `json:"role" gorm:"default:'USER'"` // USER, ADMIN
	IsDeleted    bool   `gorm:"default:false"`
}
