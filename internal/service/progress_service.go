package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Barrelito/pannben-75/internal/db"
	"gorm.io/gorm"
)

// ChallengeLengthDays is the fixed length of the challenge.
const ChallengeLengthDays = 75

// ProgressService computes day numbers, streaks and the grace-period
// classification. It is read-only: it never mutates profile or logs.
type ProgressService struct {
	db *gorm.DB
}

// NewProgressService constructs a ProgressService.
func NewProgressService(gdb *gorm.DB) *ProgressService {
	return &ProgressService{db: gdb}
}

// StreakResult carries the current and best consecutive-completion runs.
type StreakResult struct {
	Current int `json:"current"`
	Best    int `json:"best"`
}

// GracePeriodResult is the session-bootstrap classification of today's
// logging state. It is derived state, recomputed on every call and
// never persisted.
type GracePeriodResult struct {
	CanLogToday      bool       `json:"can_log_today"`
	MustLogYesterday bool       `json:"must_log_yesterday"`
	StreakBroken     bool       `json:"streak_broken"`
	DaysMissed       int        `json:"days_missed"`
	CurrentDay       int        `json:"current_day"`
	LastLogDate      *time.Time `json:"last_log_date,omitempty"`
	Message          string     `json:"message,omitempty"`
}

// DayNumber returns the 1-based challenge day for today, or 0 when the
// challenge has not started or today precedes the start date. Both
// inputs are compared as calendar dates, never as timestamps.
func DayNumber(start *time.Time, today time.Time) int {
	if start == nil {
		return 0
	}

	day := daysBetween(*start, today) + 1
	if day < 1 {
		return 0
	}
	return day
}

// ComputeStreak walks logs sorted descending by date and accumulates
// consecutive completed days. A gap of more than one day or an
// incomplete day terminates a run. Current only counts the most recent
// run when that run reaches today or yesterday; an unbroken run that
// ended further in the past is history, not a current streak.
func ComputeStreak(logs []db.DailyLog, today time.Time) StreakResult {
	today = normalizeToDate(today)

	var result StreakResult
	runLen := 0
	var runRecent, prev time.Time
	firstRunSeen := false

	closeRun := func() {
		if runLen == 0 {
			return
		}
		if runLen > result.Best {
			result.Best = runLen
		}
		if !firstRunSeen {
			firstRunSeen = true
			if daysBetween(runRecent, today) <= 1 {
				result.Current = runLen
			}
		}
		runLen = 0
	}

	for _, log := range logs {
		date := normalizeToDate(log.LogDate)
		if !log.IsCompleted {
			closeRun()
			continue
		}

		if runLen > 0 && daysBetween(date, prev) == 1 {
			runLen++
		} else {
			closeRun()
			runLen = 1
			runRecent = date
		}
		prev = date
	}
	closeRun()

	return result
}

// CheckGracePeriod classifies today's logging state for a user. It
// fails open: a store failure yields a loggable state with an advisory
// message rather than locking the user out on a transient error. The
// returned result is authoritative; it never mutates anything.
func (s *ProgressService) CheckGracePeriod(userID uint, today time.Time) *GracePeriodResult {
	today = normalizeToDate(today)

	var profile db.ChallengeProfile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &GracePeriodResult{CanLogToday: true, Message: "Challenge not started yet."}
		}
		return failOpen(err)
	}

	if profile.StartDate == nil {
		return &GracePeriodResult{CanLogToday: true, Message: "Challenge not started yet."}
	}

	currentDay := DayNumber(profile.StartDate, today)
	if currentDay <= 1 {
		// First day has no history to violate.
		return &GracePeriodResult{CanLogToday: true, CurrentDay: currentDay}
	}

	var lastLog db.DailyLog
	var lastLogDate *time.Time
	err := s.db.Where("user_id = ?", userID).Order("log_date DESC").First(&lastLog).Error
	switch {
	case err == nil:
		d := normalizeToDate(lastLog.LogDate)
		lastLogDate = &d
	case errors.Is(err, gorm.ErrRecordNotFound):
		// No log at all: measure the gap from the start date.
	default:
		return failOpen(err)
	}

	// The first date still expected to be logged: the day after the
	// most recent log, or the start date when nothing was ever logged.
	// logged yesterday -> 0 missed, logged two days ago -> 1 missed.
	expected := normalizeToDate(*profile.StartDate)
	if lastLogDate != nil {
		expected = lastLogDate.AddDate(0, 0, 1)
	}
	daysMissed := daysBetween(expected, today)
	if daysMissed < 0 {
		daysMissed = 0
	}

	result := &GracePeriodResult{
		DaysMissed:  daysMissed,
		CurrentDay:  currentDay,
		LastLogDate: lastLogDate,
	}

	switch {
	case daysMissed <= 0:
		result.CanLogToday = true
	case daysMissed == 1:
		result.MustLogYesterday = true
		result.Message = "You missed yesterday. Log it now to keep your streak alive."
	default:
		result.StreakBroken = true
		result.Message = fmt.Sprintf("You missed %d days. The challenge must be restarted from day 1.", daysMissed)
	}

	return result
}

// Streak loads the user's full history and computes the streak.
func (s *ProgressService) Streak(userID uint, today time.Time) (StreakResult, error) {
	var logs []db.DailyLog
	if err := s.db.Where("user_id = ?", userID).Order("log_date DESC").Find(&logs).Error; err != nil {
		return StreakResult{}, fmt.Errorf("list logs for streak: %w", err)
	}
	return ComputeStreak(logs, today), nil
}

// RecoveryStatusFor maps a grace classification to the profile's cached
// recovery status. The cache is display-only; request paths never
// branch on it.
func RecoveryStatusFor(result *GracePeriodResult) string {
	switch {
	case result.StreakBroken:
		return db.RecoveryRed
	case result.MustLogYesterday:
		return db.RecoveryYellow
	default:
		return db.RecoveryGreen
	}
}

func failOpen(err error) *GracePeriodResult {
	return &GracePeriodResult{
		CanLogToday: true,
		Message:     fmt.Sprintf("Could not verify challenge status (%v). Logging stays open.", err),
	}
}

// normalizeToDate strips the time-of-day component, keeping the
// location so day arithmetic follows the user's local calendar.
func normalizeToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts whole calendar days from a to b. Rounding guards
// against DST shortening or stretching a day.
func daysBetween(a, b time.Time) int {
	a = normalizeToDate(a)
	b = normalizeToDate(b)
	return int(math.Round(b.Sub(a).Hours() / 24))
}
