// pkg/db/models.go
package db

import (
	"time"

	"gorm.io/datatypes"
)

type Word struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      int64  `gorm:"index;uniqueIndex:idx_user_term"` // To keep vocabularies separate for each user
	Term        string `gorm:"not null;uniqueIndex:idx_user_term"`
	Translation string `gorm:"not null"`
	CreatedAt   time.Time
}

// ReviewProgress holds the spaced-repetition state of one user for one
// word. Exactly one row exists per (user_id, word_id).
type ReviewProgress struct {
	ID             uint           `gorm:"primaryKey"`
	UserID         int64          `gorm:"index;uniqueIndex:idx_user_word;index:idx_user_due"`
	WordID         uint           `gorm:"not null;uniqueIndex:idx_user_word"`
	ReviewStage    int            `gorm:"not null;default:0"` // 0..review.MaxStage
	NextReviewDate datatypes.Date `gorm:"not null;index:idx_user_due"`
	LastReviewedAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (ReviewProgress) TableName() string {
	return "review_progress"
}

// WordSet is a named collection of a user's words. Membership is kept
// as a JSON array of word ids, resolved on demand.
type WordSet struct {
	ID        uint           `gorm:"primaryKey"`
	UserID    int64          `gorm:"index;uniqueIndex:idx_user_set_name"`
	Name      string         `gorm:"not null;uniqueIndex:idx_user_set_name"`
	WordIDs   datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserSettings struct {
	ID              uint  `gorm:"primaryKey"`
	UserID          int64 `gorm:"index"`
	WordsPerSession int   `gorm:"default:10"`
	ReminderHourUTC int   `gorm:"not null;default:8"`
	RemindersPaused bool  `gorm:"not null;default:false"`
}
