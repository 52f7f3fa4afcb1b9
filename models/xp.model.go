package models

import "gorm.io/gorm"

// XP grant sources
const (
	XpSourceAttempt     = "attempt"
	XpSourceStagePrefix = "stage:" // followed by the stage type
)

// XpGrant is one immutable XP award. A user's total XP is the sum of
// their grants. The unique (AttemptID, Source) index makes repeated
// grants from the same call site no-ops instead of double counts.
type XpGrant struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	AttemptID uint   `json:"attempt_id" gorm:"not null;uniqueIndex:idx_grant_per_source"`
	Source    string `json:"source" gorm:"not null;uniqueIndex:idx_grant_per_source"`
	Amount    int    `json:"amount" gorm:"not null"`
}
