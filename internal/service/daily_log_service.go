package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Barrelito/pannben-75/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrUnknownRule is returned when a toggle names a rule outside the
	// five known completion flags.
	ErrUnknownRule = errors.New("unknown rule")
	// ErrInvalidWater rejects negative absolute water values.
	ErrInvalidWater = errors.New("water intake cannot be negative")
	// ErrInvalidWellbeingScore rejects check-in scores outside 1-10.
	ErrInvalidWellbeingScore = errors.New("wellbeing score must be between 1 and 10")
	// ErrDayAlreadyCompleted guards the one-XP-award-per-date invariant.
	ErrDayAlreadyCompleted = errors.New("day already completed")
	// ErrBonusAlreadyLogged guards the one-bonus-per-date invariant.
	ErrBonusAlreadyLogged = errors.New("bonus workout already registered today")
	// ErrProfileNotFound is returned by mutations that need profile state.
	ErrProfileNotFound = errors.New("challenge profile not found")
)

// DailyLogService owns the one-row-per-user-per-date record and the two
// cross-entity mutations (complete day, bonus workout) that also touch
// the profile's XP total.
type DailyLogService struct {
	db *gorm.DB
}

// NewDailyLogService constructs a DailyLogService.
func NewDailyLogService(gdb *gorm.DB) *DailyLogService {
	return &DailyLogService{db: gdb}
}

// WellbeingInput carries the five morning check-in scores.
type WellbeingInput struct {
	Sleep      int
	Body       int
	Energy     int
	Stress     int
	Motivation int
}

// PlanningInput carries the next-day planning fields.
type PlanningInput struct {
	Workout1     string
	Workout1Time string
	Workout2     string
	Workout2Time string
	Diet         string
}

// upsert inserts or patches the (user, date) row, assigning exactly the
// given columns on conflict. The record passed in carries the same
// values for the insert path.
func (s *DailyLogService) upsert(tx *gorm.DB, record *db.DailyLog, columns []string) error {
	record.LogDate = normalizeToDate(record.LogDate)
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "log_date"}},
		DoUpdates: clause.AssignmentColumns(append(columns, "updated_at")),
	}).Create(record).Error
}

// ToggleRule sets one completion flag for the given date, creating the
// row when absent. rule must be one of the five known names; each
// toggle assigns only the column it owns, which keeps independent
// toggles commutative and replay-safe.
func (s *DailyLogService) ToggleRule(userID uint, date time.Time, rule string, value bool) error {
	record := db.DailyLog{UserID: userID, LogDate: date}

	switch rule {
	case "diet_completed":
		record.DietCompleted = value
	case "workout_outdoor_completed":
		record.WorkoutOutdoorCompleted = value
	case "workout_indoor_completed":
		record.WorkoutIndoorCompleted = value
	case "reading_completed":
		record.ReadingCompleted = value
	case "photo_uploaded":
		record.PhotoUploaded = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownRule, rule)
	}

	if err := s.upsert(s.db, &record, []string{rule}); err != nil {
		return fmt.Errorf("toggle rule %s: %w", rule, err)
	}
	return nil
}

// UpdateWater sets the absolute water total for the date. Callers send
// the new total, not a delta; the UI steps by WaterStepLiters.
func (s *DailyLogService) UpdateWater(userID uint, date time.Time, liters float64) error {
	if liters < 0 {
		return ErrInvalidWater
	}

	record := db.DailyLog{UserID: userID, LogDate: date, WaterIntake: liters}
	if err := s.upsert(s.db, &record, []string{"water_intake"}); err != nil {
		return fmt.Errorf("update water: %w", err)
	}
	return nil
}

// UpdatePlanning sets the next-day planning fields, independent of the
// date's completion state.
func (s *DailyLogService) UpdatePlanning(userID uint, date time.Time, input PlanningInput) error {
	record := db.DailyLog{
		UserID:           userID,
		LogDate:          date,
		PlanWorkout1:     input.Workout1,
		PlanWorkout1Time: input.Workout1Time,
		PlanWorkout2:     input.Workout2,
		PlanWorkout2Time: input.Workout2Time,
		PlanDiet:         input.Diet,
	}
	columns := []string{"plan_workout1", "plan_workout1_time", "plan_workout2", "plan_workout2_time", "plan_diet"}
	if err := s.upsert(s.db, &record, columns); err != nil {
		return fmt.Errorf("update planning: %w", err)
	}
	return nil
}

// CheckIn records the morning wellbeing scores and, on the very first
// check-in, starts the challenge by setting the profile's start date.
// The start date is set exactly once; later check-ins never move it.
func (s *DailyLogService) CheckIn(userID uint, date time.Time, input WellbeingInput) error {
	scores := []int{input.Sleep, input.Body, input.Energy, input.Stress, input.Motivation}
	for _, score := range scores {
		if score < 1 || score > 10 {
			return ErrInvalidWellbeingScore
		}
	}

	date = normalizeToDate(date)

	return s.db.Transaction(func(tx *gorm.DB) error {
		record := db.DailyLog{
			UserID:          userID,
			LogDate:         date,
			SleepScore:      &input.Sleep,
			BodyScore:       &input.Body,
			EnergyScore:     &input.Energy,
			StressScore:     &input.Stress,
			MotivationScore: &input.Motivation,
		}
		columns := []string{"sleep_score", "body_score", "energy_score", "stress_score", "motivation_score"}
		if err := s.upsert(tx, &record, columns); err != nil {
			return fmt.Errorf("check in: %w", err)
		}

		var profile db.ChallengeProfile
		if err := tx.Where("user_id = ?", userID).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProfileNotFound
			}
			return fmt.Errorf("load profile: %w", err)
		}

		if profile.StartDate == nil {
			updates := map[string]interface{}{"start_date": date, "current_day": 1}
			if err := tx.Model(&db.ChallengeProfile{}).Where("user_id = ?", userID).Updates(updates).Error; err != nil {
				return fmt.Errorf("set start date: %w", err)
			}
		}

		return nil
	})
}

// SetProgressPhoto stores the photo URL and marks the rule done.
func (s *DailyLogService) SetProgressPhoto(userID uint, date time.Time, url string) error {
	record := db.DailyLog{UserID: userID, LogDate: date, ProgressPhotoURL: url, PhotoUploaded: true}
	if err := s.upsert(s.db, &record, []string{"progress_photo_url", "photo_uploaded"}); err != nil {
		return fmt.Errorf("set progress photo: %w", err)
	}
	return nil
}

// MarkHardWorkout flags the date's workout as hard; the medium tier
// counts these against its Monday-Sunday weekly quota.
func (s *DailyLogService) MarkHardWorkout(userID uint, date time.Time, value bool) error {
	record := db.DailyLog{UserID: userID, LogDate: date, IsHardWorkout: value}
	if err := s.upsert(s.db, &record, []string{"is_hard_workout"}); err != nil {
		return fmt.Errorf("mark hard workout: %w", err)
	}
	return nil
}

// CompleteDay marks the date completed and pays the base XP award in
// one transaction. IsCompleted is the idempotency flag: a second call
// on the same date fails with ErrDayAlreadyCompleted and awards nothing.
// Returns the XP awarded and the new cumulative total.
func (s *DailyLogService) CompleteDay(userID uint, date time.Time) (awarded int, totalXP int, err error) {
	date = normalizeToDate(date)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing db.DailyLog
		findErr := tx.Where("user_id = ? AND log_date = ?", userID, date).First(&existing).Error
		if findErr == nil && existing.IsCompleted {
			return ErrDayAlreadyCompleted
		}
		if findErr != nil && !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return fmt.Errorf("load log: %w", findErr)
		}

		var profile db.ChallengeProfile
		if err := tx.Where("user_id = ?", userID).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProfileNotFound
			}
			return fmt.Errorf("load profile: %w", err)
		}

		weeklyHard, err := s.weeklyHardWorkoutCount(tx, userID, date)
		if err != nil {
			return err
		}

		awarded = DailyXP(profile.DifficultyLevel, weeklyHard)

		record := db.DailyLog{UserID: userID, LogDate: date, IsCompleted: true}
		if err := s.upsert(tx, &record, []string{"is_completed"}); err != nil {
			return fmt.Errorf("complete day: %w", err)
		}

		if err := tx.Model(&db.ChallengeProfile{}).
			Where("user_id = ?", userID).
			Update("total_xp", gorm.Expr("total_xp + ?", awarded)).Error; err != nil {
			return fmt.Errorf("award xp: %w", err)
		}

		totalXP = profile.TotalXP + awarded
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return awarded, totalXP, nil
}

// LogBonusWorkout pays the flat bonus award once per date, guarded by
// BonusCompleted. A repeat call fails with ErrBonusAlreadyLogged and
// leaves the XP total untouched. Returns the new cumulative total so
// callers can refresh a display without a re-read.
func (s *DailyLogService) LogBonusWorkout(userID uint, date time.Time) (totalXP int, err error) {
	date = normalizeToDate(date)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing db.DailyLog
		findErr := tx.Where("user_id = ? AND log_date = ?", userID, date).First(&existing).Error
		if findErr == nil && existing.BonusCompleted {
			return ErrBonusAlreadyLogged
		}
		if findErr != nil && !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return fmt.Errorf("load log: %w", findErr)
		}

		var profile db.ChallengeProfile
		if err := tx.Where("user_id = ?", userID).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProfileNotFound
			}
			return fmt.Errorf("load profile: %w", err)
		}

		record := db.DailyLog{UserID: userID, LogDate: date, BonusCompleted: true}
		if err := s.upsert(tx, &record, []string{"bonus_completed"}); err != nil {
			return fmt.Errorf("log bonus workout: %w", err)
		}

		if err := tx.Model(&db.ChallengeProfile{}).
			Where("user_id = ?", userID).
			Update("total_xp", gorm.Expr("total_xp + ?", BonusWorkoutXP)).Error; err != nil {
			return fmt.Errorf("award bonus xp: %w", err)
		}

		totalXP = profile.TotalXP + BonusWorkoutXP
		return nil
	})
	if err != nil {
		return 0, err
	}
	return totalXP, nil
}

// GetLog returns the row for (user, date), or nil when no log exists
// yet — an absent row is a valid state, not an error.
func (s *DailyLogService) GetLog(userID uint, date time.Time) (*db.DailyLog, error) {
	var log db.DailyLog
	err := s.db.Where("user_id = ? AND log_date = ?", userID, normalizeToDate(date)).First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get log: %w", err)
	}
	return &log, nil
}

// ListLogs returns the full history, most recent first.
func (s *DailyLogService) ListLogs(userID uint) ([]db.DailyLog, error) {
	var logs []db.DailyLog
	if err := s.db.Where("user_id = ?", userID).Order("log_date DESC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	return logs, nil
}

// WeeklyHardWorkoutCount counts hard workouts in the Monday-Sunday week
// containing today, in the user's local calendar.
func (s *DailyLogService) WeeklyHardWorkoutCount(userID uint, today time.Time) (int, error) {
	return s.weeklyHardWorkoutCount(s.db, userID, today)
}

func (s *DailyLogService) weeklyHardWorkoutCount(tx *gorm.DB, userID uint, today time.Time) (int, error) {
	start, end := weekBounds(today)

	var count int64
	if err := tx.Model(&db.DailyLog{}).
		Where("user_id = ? AND is_hard_workout = ?", userID, true).
		Where("log_date BETWEEN ? AND ?", start, end).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count hard workouts: %w", err)
	}
	return int(count), nil
}

// ResetProgress is the engine's only destructive operation: it removes
// every daily log and zeroes the challenge fields on the profile in one
// transaction, so a failure leaves nothing half-cleared. Call sites
// must require explicit user confirmation.
func (s *DailyLogService) ResetProgress(userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&db.DailyLog{}).Error; err != nil {
			return fmt.Errorf("delete logs: %w", err)
		}

		updates := map[string]interface{}{
			"start_date":      nil,
			"current_day":     0,
			"recovery_status": "",
			"total_xp":        0,
		}
		if err := tx.Model(&db.ChallengeProfile{}).Where("user_id = ?", userID).Updates(updates).Error; err != nil {
			return fmt.Errorf("reset profile: %w", err)
		}

		return nil
	})
}

// weekBounds returns the Monday and Sunday of the week containing t.
func weekBounds(t time.Time) (time.Time, time.Time) {
	t = normalizeToDate(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	start := t.AddDate(0, 0, -(weekday - 1))
	end := start.AddDate(0, 0, 6)
	return start, end
}
