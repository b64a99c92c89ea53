package db

import (
	"time"

	"gorm.io/gorm"
)

// Difficulty levels accepted on a challenge profile.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Recovery statuses cached on the profile by the nightly scheduler.
// GREEN = on track, YELLOW = grace window open, RED = streak broken.
const (
	RecoveryGreen  = "GREEN"
	RecoveryYellow = "YELLOW"
	RecoveryRed    = "RED"
)

// ChallengeProfile holds one user's challenge state. StartDate stays nil
// until the first morning check-in; CurrentDay and RecoveryStatus are
// display caches only, the authoritative values are always recomputed
// from StartDate and the log history.
type ChallengeProfile struct {
	gorm.Model
	UserID          uint `gorm:"uniqueIndex"`
	User            User `gorm:"constraint:OnDelete:CASCADE"`
	StartDate       *time.Time
	CurrentDay      int
	DifficultyLevel string `gorm:"default:easy"`
	RecoveryStatus  string
	TotalXP         int
	SelectedDietID  *uint
}
