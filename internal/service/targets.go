package service

import (
	"fmt"

	"github.com/Barrelito/pannben-75/internal/db"
)

// DailyTargets are the quantitative rule targets for one challenge day.
// They are a pure projection of the difficulty level and must never be
// cached past a tier change.
type DailyTargets struct {
	Workouts        int
	WorkoutMinutes  int
	RequireOutdoor  bool
	WaterLiters     float64
	ReadingPages    int
	PhotoRequired   bool
	WeeklyHardQuota int
	DietRuleset     string
}

// Named defaults used wherever a possibly-absent log field needs a
// display value. Kept here so fallback literals do not scatter across
// call sites.
const (
	DefaultWellbeingScore = 5
	WaterStepLiters       = 0.25
)

// Diet rulesets referenced by DailyTargets.DietRuleset.
const (
	DietRulesetFlexible = "flexible"
	DietRulesetClean    = "clean"
	DietRulesetStrict   = "strict"
)

// targetsByLevel is the policy table. Values are constants by design
// decision, not computed.
var targetsByLevel = map[string]DailyTargets{
	db.DifficultyEasy: {
		Workouts:        1,
		WorkoutMinutes:  30,
		RequireOutdoor:  false,
		WaterLiters:     2.0,
		ReadingPages:    5,
		PhotoRequired:   false,
		WeeklyHardQuota: 0,
		DietRuleset:     DietRulesetFlexible,
	},
	db.DifficultyMedium: {
		Workouts:        1,
		WorkoutMinutes:  30,
		RequireOutdoor:  false,
		WaterLiters:     3.0,
		ReadingPages:    10,
		PhotoRequired:   true,
		WeeklyHardQuota: 2,
		DietRuleset:     DietRulesetClean,
	},
	db.DifficultyHard: {
		Workouts:        2,
		WorkoutMinutes:  45,
		RequireOutdoor:  true,
		WaterLiters:     4.0,
		ReadingPages:    10,
		PhotoRequired:   true,
		WeeklyHardQuota: 0,
		DietRuleset:     DietRulesetStrict,
	},
}

// ResolveTargets maps a difficulty level to its daily targets. An
// unknown level is a programming error, not user input, so it panics.
func ResolveTargets(level string) DailyTargets {
	targets, ok := targetsByLevel[level]
	if !ok {
		panic(fmt.Sprintf("unknown difficulty level %q", level))
	}
	return targets
}

// ValidDifficulty reports whether level is one of the three tiers.
func ValidDifficulty(level string) bool {
	_, ok := targetsByLevel[level]
	return ok
}
