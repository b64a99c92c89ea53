package service

import (
	"errors"
	"fmt"

	"github.com/Barrelito/pannben-75/internal/db"
	"gorm.io/gorm"
)

// ErrInvalidDifficulty is returned when a tier outside easy/medium/hard
// is submitted.
var ErrInvalidDifficulty = errors.New("invalid difficulty level")

// ProfileService maintains the challenge profile. All writes are
// partial column updates; the whole row is never replaced.
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService constructs a ProfileService.
func NewProfileService(gdb *gorm.DB) *ProfileService {
	return &ProfileService{db: gdb}
}

// Get returns the user's profile, or ErrProfileNotFound.
func (s *ProfileService) Get(userID uint) (*db.ChallengeProfile, error) {
	var profile db.ChallengeProfile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

// Ensure creates the profile at signup when missing. The start date
// stays nil until the first morning check-in.
func (s *ProfileService) Ensure(userID uint) (*db.ChallengeProfile, error) {
	profile, err := s.Get(userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return nil, err
	}

	created := db.ChallengeProfile{UserID: userID, DifficultyLevel: db.DifficultyEasy}
	if err := s.db.Create(&created).Error; err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return &created, nil
}

// SetDifficulty switches the tier. Derived targets are never cached, so
// the change takes effect on the next ResolveTargets call.
func (s *ProfileService) SetDifficulty(userID uint, level string) error {
	if !ValidDifficulty(level) {
		return fmt.Errorf("%w: %s", ErrInvalidDifficulty, level)
	}

	result := s.db.Model(&db.ChallengeProfile{}).Where("user_id = ?", userID).Update("difficulty_level", level)
	if result.Error != nil {
		return fmt.Errorf("set difficulty: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// SelectDiet points the profile at a diet plan.
func (s *ProfileService) SelectDiet(userID uint, dietID uint) error {
	var diet db.DietPlan
	if err := s.db.First(&diet, dietID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDietPlanNotFound
		}
		return fmt.Errorf("load diet plan: %w", err)
	}

	result := s.db.Model(&db.ChallengeProfile{}).Where("user_id = ?", userID).Update("selected_diet_id", dietID)
	if result.Error != nil {
		return fmt.Errorf("select diet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// SetRecoveryStatus writes the cached recovery color. Display hint
// only; nothing in the request path branches on it.
func (s *ProfileService) SetRecoveryStatus(userID uint, status string) error {
	if err := s.db.Model(&db.ChallengeProfile{}).Where("user_id = ?", userID).Update("recovery_status", status).Error; err != nil {
		return fmt.Errorf("set recovery status: %w", err)
	}
	return nil
}

// SetCurrentDay refreshes the informational day counter.
func (s *ProfileService) SetCurrentDay(userID uint, day int) error {
	if err := s.db.Model(&db.ChallengeProfile{}).Where("user_id = ?", userID).Update("current_day", day).Error; err != nil {
		return fmt.Errorf("set current day: %w", err)
	}
	return nil
}

// ListWithStartDate returns every profile that has begun the challenge.
// Used by the nightly recovery-status job.
func (s *ProfileService) ListWithStartDate() ([]db.ChallengeProfile, error) {
	var profiles []db.ChallengeProfile
	if err := s.db.Where("start_date IS NOT NULL").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("list started profiles: %w", err)
	}
	return profiles, nil
}
