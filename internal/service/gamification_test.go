package service

import (
	"testing"

	"github.com/Barrelito/pannben-75/internal/db"
)

func TestDailyXPByTier(t *testing.T) {
	if got := DailyXP(db.DifficultyEasy, 0); got != XPDailyEasy {
		t.Fatalf("easy base award: got %d, want %d", got, XPDailyEasy)
	}
	if got := DailyXP(db.DifficultyMedium, 0); got != XPDailyMedium {
		t.Fatalf("medium base award: got %d, want %d", got, XPDailyMedium)
	}
	if got := DailyXP(db.DifficultyHard, 0); got != XPDailyHard {
		t.Fatalf("hard base award: got %d, want %d", got, XPDailyHard)
	}

	// Harder tiers pay more per completed day.
	if !(DailyXP(db.DifficultyEasy, 0) < DailyXP(db.DifficultyMedium, 0) &&
		DailyXP(db.DifficultyMedium, 0) < DailyXP(db.DifficultyHard, 0)) {
		t.Fatal("daily awards must increase with tier")
	}
}

func TestDailyXPMediumHardWorkoutBonusIsCapped(t *testing.T) {
	base := DailyXP(db.DifficultyMedium, 0)
	one := DailyXP(db.DifficultyMedium, 1)
	two := DailyXP(db.DifficultyMedium, 2)
	overQuota := DailyXP(db.DifficultyMedium, 5)

	if one != base+XPHardWorkoutWeekly {
		t.Fatalf("one hard workout: got %d, want %d", one, base+XPHardWorkoutWeekly)
	}
	if overQuota != two {
		t.Fatalf("award must cap at the weekly quota: got %d, want %d", overQuota, two)
	}

	// Other tiers ignore the count.
	if DailyXP(db.DifficultyHard, 3) != XPDailyHard {
		t.Fatal("hard tier must ignore the weekly hard count")
	}
}

func TestRankForIsMonotonic(t *testing.T) {
	previous := RankFor(0)
	for xp := 0; xp <= 2000; xp += 25 {
		rank := RankFor(xp)
		if rank.Threshold < previous.Threshold {
			t.Fatalf("rank demoted at %d XP: %s after %s", xp, rank.Name, previous.Name)
		}
		previous = rank
	}
}

func TestRankForThresholds(t *testing.T) {
	if got := RankFor(0).Name; got != "Rookie" {
		t.Fatalf("0 XP: got %s", got)
	}
	if got := RankFor(XPRankChallenger).Name; got != "Challenger" {
		t.Fatalf("at threshold: got %s", got)
	}
	if got := RankFor(XPRankChallenger - 1).Name; got != "Rookie" {
		t.Fatalf("below threshold: got %s", got)
	}
	if got := RankFor(99999).Name; got != "Legend" {
		t.Fatalf("top of ladder: got %s", got)
	}
	if got := RankFor(-10).Name; got != "Rookie" {
		t.Fatalf("negative XP clamps to lowest rank, got %s", got)
	}
}

func TestNextRank(t *testing.T) {
	next := NextRank(0)
	if next == nil || next.Name != "Challenger" {
		t.Fatalf("unexpected next rank at 0 XP: %+v", next)
	}
	if NextRank(XPRankLegend) != nil {
		t.Fatal("no next rank above the top threshold")
	}
}
