package db

import (
	"time"

	"gorm.io/gorm"
)

// DailyLog is the one-row-per-user-per-date record behind every rule
// toggle. UserID + LogDate carry a unique composite index so that all
// mutations can run as insert-or-update on that key; LogDate is always
// midnight-normalized.
type DailyLog struct {
	gorm.Model
	UserID  uint      `gorm:"index;index:idx_daily_log_unique,unique"`
	User    User      `gorm:"constraint:OnDelete:CASCADE"`
	LogDate time.Time `gorm:"index:idx_daily_log_unique,unique"`

	// Morning check-in scores, 1-10, nil until the check-in happens.
	SleepScore      *int
	BodyScore       *int
	EnergyScore     *int
	StressScore     *int
	MotivationScore *int

	// Rule completion flags.
	DietCompleted           bool
	WorkoutOutdoorCompleted bool
	WorkoutIndoorCompleted  bool
	ReadingCompleted        bool
	PhotoUploaded           bool

	ProgressPhotoURL string
	WaterIntake      float64

	IsCompleted    bool
	BonusCompleted bool
	IsHardWorkout  bool

	// Next-day planning, free text.
	PlanWorkout1     string
	PlanWorkout1Time string
	PlanWorkout2     string
	PlanWorkout2Time string
	PlanDiet         string
}

// TableName pins the table so the composite index lands on
// user_id + log_date.
func (DailyLog) TableName() string {
	return "daily_logs"
}
