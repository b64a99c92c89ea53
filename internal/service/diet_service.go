package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Barrelito/pannben-75/internal/db"
	"gorm.io/gorm"
)

// ErrDietPlanNotFound is returned when a diet plan lookup misses.
var ErrDietPlanNotFound = errors.New("diet plan not found")

// DietPlanService lists the selectable diet plans.
type DietPlanService struct {
	db *gorm.DB
}

// NewDietPlanService constructs a DietPlanService.
func NewDietPlanService(gdb *gorm.DB) *DietPlanService {
	return &DietPlanService{db: gdb}
}

// List returns all diet plans, optionally filtered by tier.
func (s *DietPlanService) List(tier string) ([]db.DietPlan, error) {
	query := s.db.Model(&db.DietPlan{})
	if tier = strings.TrimSpace(tier); tier != "" {
		query = query.Where("tier = ?", tier)
	}

	var plans []db.DietPlan
	if err := query.Order("name ASC").Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("list diet plans: %w", err)
	}
	return plans, nil
}

// GetBySlug returns one diet plan.
func (s *DietPlanService) GetBySlug(slug string) (*db.DietPlan, error) {
	var plan db.DietPlan
	if err := s.db.Where("slug = ?", strings.TrimSpace(slug)).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDietPlanNotFound
		}
		return nil, fmt.Errorf("get diet plan: %w", err)
	}
	return &plan, nil
}

// EnsureDefaults seeds the built-in plans when the table is empty.
func (s *DietPlanService) EnsureDefaults() error {
	var count int64
	if err := s.db.Model(&db.DietPlan{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count diet plans: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []db.DietPlan{
		{
			Name: "Flexible", Slug: "flexible", Tier: db.DifficultyEasy,
			Description: "Eat normally, **no junk food** and no alcohol.\n\n- One cheat meal per week is allowed\n- Sugary drinks count as junk",
		},
		{
			Name: "Clean", Slug: "clean", Tier: db.DifficultyMedium,
			Description: "Whole foods only.\n\n- No processed food\n- No added sugar\n- No alcohol",
		},
		{
			Name: "Strict", Slug: "strict", Tier: db.DifficultyHard,
			Description: "A fixed meal plan with **zero deviations**.\n\n- No cheat meals\n- No alcohol\n- Weighed portions",
		},
	}

	if err := s.db.Create(&defaults).Error; err != nil {
		return fmt.Errorf("seed diet plans: %w", err)
	}
	return nil
}
