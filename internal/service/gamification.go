package service

import "github.com/Barrelito/pannben-75/internal/db"

// XP awards. The bonus workout pays a flat amount independent of tier
// and is capped at one per calendar date via DailyLog.BonusCompleted.
const (
	XPDailyEasy   = 10
	XPDailyMedium = 20
	XPDailyHard   = 30

	// Extra pay per hard workout already banked this week on the
	// medium tier, capped at the weekly quota.
	XPHardWorkoutWeekly = 5

	BonusWorkoutXP = 20
)

// Rank thresholds over cumulative XP. The ladder is total-ordered and
// ranks never demote.
const (
	XPRankLegend     = 1500
	XPRankSpartan    = 700
	XPRankWarrior    = 300
	XPRankChallenger = 100
	XPRankRookie     = 0
)

// Rank is a display tier derived from cumulative XP.
type Rank struct {
	Name      string `json:"name"`
	Emoji     string `json:"emoji"`
	Threshold int    `json:"threshold"`
}

// rankLadder is ordered ascending by threshold.
var rankLadder = []Rank{
	{Name: "Rookie", Emoji: "🐣", Threshold: XPRankRookie},
	{Name: "Challenger", Emoji: "🔥", Threshold: XPRankChallenger},
	{Name: "Warrior", Emoji: "⚔️", Threshold: XPRankWarrior},
	{Name: "Spartan", Emoji: "🛡️", Threshold: XPRankSpartan},
	{Name: "Legend", Emoji: "👑", Threshold: XPRankLegend},
}

// DailyXP returns the base completion award for one day on the given
// tier. weeklyHardCount is the number of hard workouts already logged
// in the current Monday-Sunday week; it only pays extra on the medium
// tier and never beyond the weekly quota.
func DailyXP(level string, weeklyHardCount int) int {
	switch level {
	case db.DifficultyEasy:
		return XPDailyEasy
	case db.DifficultyMedium:
		quota := ResolveTargets(db.DifficultyMedium).WeeklyHardQuota
		if weeklyHardCount > quota {
			weeklyHardCount = quota
		}
		if weeklyHardCount < 0 {
			weeklyHardCount = 0
		}
		return XPDailyMedium + weeklyHardCount*XPHardWorkoutWeekly
	case db.DifficultyHard:
		return XPDailyHard
	default:
		return XPDailyEasy
	}
}

// RankFor maps cumulative XP to its rank. Monotonic: more XP never
// yields a lower rank. Negative input clamps to the lowest rank.
func RankFor(totalXP int) Rank {
	current := rankLadder[0]
	for _, rank := range rankLadder {
		if totalXP >= rank.Threshold {
			current = rank
		}
	}
	return current
}

// NextRank returns the rank above the given XP total, or nil at the top
// of the ladder. Used for progress display only.
func NextRank(totalXP int) *Rank {
	for i := range rankLadder {
		if totalXP < rankLadder[i].Threshold {
			next := rankLadder[i]
			return &next
		}
	}
	return nil
}
