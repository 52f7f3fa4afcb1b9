package models

import "gorm.io/gorm"

// Story types
const (
	StoryTypeStatic      = "STATIC"
	StoryTypeInteractive = "INTERACTIVE"
)

type Story struct {
	gorm.Model
	IslandID  uint   `json:"island_id" gorm:"index;not null"`
	Title     string `json:"title" gorm:"not null"`
	StoryType string `json:"story_type" gorm:"default:'STATIC'"` // STATIC, INTERACTIVE
	Order     int    `json:"order" gorm:"column:order_index;default:0"`
}

// StaticSlide is one page of a static (read-only) story
type StaticSlide struct {
	gorm.Model
	StoryID     uint   `json:"story_id" gorm:"index;not null"`
	SlideNumber int    `json:"slide_number" gorm:"default:0"`
	Content     string `json:"content" gorm:"type:text"`
	ImageURL    string `json:"image_url" gorm:"default:''"`
}

// InteractiveSlide is one page of an interactive story, optionally
// carrying an embedded quiz question
type InteractiveSlide struct {
	gorm.Model
	StoryID     uint   `json:"story_id" gorm:"index;not null"`
	SlideNumber int    `json:"slide_number" gorm:"default:0"`
	Content     string `json:"content" gorm:"type:text"`
	ImageURL    string `json:"image_url" gorm:"default:''"`
	QuestionID  *uint  `json:"question_id" gorm:"index"`
}
