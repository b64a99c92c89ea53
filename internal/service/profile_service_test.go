package service

import (
	"errors"
	"testing"

	"github.com/Barrelito/pannben-75/internal/db"
)

func TestEnsureProfileIsIdempotent(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	user := db.User{Username: "newcomer", Password: "x"}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	svc := NewProfileService(db.DB)

	first, err := svc.Ensure(user.ID)
	if err != nil {
		t.Fatalf("Ensure returned error: %v", err)
	}
	if first.StartDate != nil {
		t.Fatal("fresh profile must have no start date")
	}
	if first.DifficultyLevel != db.DifficultyEasy {
		t.Fatalf("fresh profile defaults to easy, got %s", first.DifficultyLevel)
	}

	second, err := svc.Ensure(user.ID)
	if err != nil {
		t.Fatalf("second Ensure returned error: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("Ensure created a duplicate profile: %d vs %d", second.ID, first.ID)
	}
}

func TestSetDifficulty(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	userID := createTestUser(t, "switcher", nil, db.DifficultyEasy)
	svc := NewProfileService(db.DB)

	if err := svc.SetDifficulty(userID, db.DifficultyHard); err != nil {
		t.Fatalf("SetDifficulty returned error: %v", err)
	}

	profile, _ := svc.Get(userID)
	if profile.DifficultyLevel != db.DifficultyHard {
		t.Fatalf("difficulty not updated: %s", profile.DifficultyLevel)
	}

	if err := svc.SetDifficulty(userID, "brutal"); !errors.Is(err, ErrInvalidDifficulty) {
		t.Fatalf("expected ErrInvalidDifficulty, got %v", err)
	}

	if err := svc.SetDifficulty(9999, db.DifficultyEasy); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestSelectDiet(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	userID := createTestUser(t, "eater", nil, db.DifficultyMedium)

	diets := NewDietPlanService(db.DB)
	if err := diets.EnsureDefaults(); err != nil {
		t.Fatalf("EnsureDefaults returned error: %v", err)
	}

	plan, err := diets.GetBySlug("clean")
	if err != nil {
		t.Fatalf("GetBySlug returned error: %v", err)
	}

	svc := NewProfileService(db.DB)
	if err := svc.SelectDiet(userID, plan.ID); err != nil {
		t.Fatalf("SelectDiet returned error: %v", err)
	}

	profile, _ := svc.Get(userID)
	if profile.SelectedDietID == nil || *profile.SelectedDietID != plan.ID {
		t.Fatalf("diet not selected: %+v", profile.SelectedDietID)
	}

	if err := svc.SelectDiet(userID, 424242); !errors.Is(err, ErrDietPlanNotFound) {
		t.Fatalf("expected ErrDietPlanNotFound, got %v", err)
	}
}

func TestDietPlanDefaultsSeedOnce(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	diets := NewDietPlanService(db.DB)
	if err := diets.EnsureDefaults(); err != nil {
		t.Fatalf("EnsureDefaults returned error: %v", err)
	}
	if err := diets.EnsureDefaults(); err != nil {
		t.Fatalf("second EnsureDefaults returned error: %v", err)
	}

	plans, err := diets.List("")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(plans) != 3 {
		t.Fatalf("expected 3 seeded plans, got %d", len(plans))
	}

	strictOnly, err := diets.List(db.DifficultyHard)
	if err != nil {
		t.Fatalf("List with tier returned error: %v", err)
	}
	if len(strictOnly) != 1 || strictOnly[0].Slug != "strict" {
		t.Fatalf("unexpected tier filter result: %+v", strictOnly)
	}
}
