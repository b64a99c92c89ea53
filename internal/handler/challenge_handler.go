package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/Barrelito/pannben-75/internal/service"
	"github.com/gin-gonic/gin"
)

// Bootstrap is the once-per-session call: it classifies today's logging
// state and returns everything the client needs to render the day.
func (a *API) Bootstrap(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "login required")
		return
	}

	now := time.Now()
	grace := a.progress.CheckGracePeriod(userID, now)

	profile, err := a.profiles.Get(userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			respondError(c, http.StatusNotFound, "challenge profile not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load profile")
		return
	}

	streak, err := a.progress.Streak(userID, now)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to compute streak")
		return
	}

	todayLog, err := a.logs.GetLog(userID, now)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load today's log")
		return
	}

	weeklyHard, err := a.logs.WeeklyHardWorkoutCount(userID, now)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to count hard workouts")
		return
	}

	payload := gin.H{
		"grace":             grace,
		"day_number":        service.DayNumber(profile.StartDate, now),
		"challenge_length":  service.ChallengeLengthDays,
		"difficulty":        profile.DifficultyLevel,
		"targets":           service.ResolveTargets(profile.DifficultyLevel),
		"streak":            streak,
		"total_xp":          profile.TotalXP,
		"rank":              service.RankFor(profile.TotalXP),
		"next_rank":         service.NextRank(profile.TotalXP),
		"weekly_hard_count": weeklyHard,
		"recovery_status":   profile.RecoveryStatus,
		"selected_diet_id":  profile.SelectedDietID,
	}
	if profile.StartDate != nil {
		payload["start_date"] = formatDate(*profile.StartDate)
	}
	if todayLog != nil {
		payload["today"] = logToPayload(*todayLog)
	}

	c.JSON(http.StatusOK, payload)
}

// GetTargets returns the daily targets for the user's current tier.
func (a *API) GetTargets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "login required")
		return
	}

	profile, err := a.profiles.Get(userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			respondError(c, http.StatusNotFound, "challenge profile not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"difficulty": profile.DifficultyLevel,
		"targets":    service.ResolveTargets(profile.DifficultyLevel),
	})
}

type difficultyPayload struct {
	Level string `json:"level"`
}

// SetDifficulty switches the profile's tier.
func (a *API) SetDifficulty(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "login required")
		return
	}

	var payload difficultyPayload
	if !bindJSON(c, &payload, "invalid difficulty payload") {
		return
	}

	if err := a.profiles.SetDifficulty(userID, payload.Level); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDifficulty):
			respondError(c, http.StatusBadRequest, "difficulty must be easy, medium or hard")
		case errors.Is(err, service.ErrProfileNotFound):
			respondError(c, http.StatusNotFound, "challenge profile not found")
		default:
			respondError(c, http.StatusInternalServerError, "failed to update difficulty")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"difficulty": payload.Level,
		"targets":    service.ResolveTargets(payload.Level),
	})
}

type selectDietPayload struct {
	DietID uint `json:"diet_id"`
}

// SelectDiet points the profile at one of the seeded diet plans.
func (a *API) SelectDiet(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "login required")
		return
	}

	var payload selectDietPayload
	if !bindJSON(c, &payload, "invalid diet payload") {
		return
	}

	if err := a.profiles.SelectDiet(userID, payload.DietID); err != nil {
		switch {
		case errors.Is(err, service.ErrDietPlanNotFound):
			respondError(c, http.StatusNotFound, "diet plan not found")
		case errors.Is(err, service.ErrProfileNotFound):
			respondError(c, http.StatusNotFound, "challenge profile not found")
		default:
			respondError(c, http.StatusInternalServerError, "failed to select diet")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"diet_id": payload.DietID})
}

type resetPayload struct {
	Confirm bool `json:"confirm"`
}

// Reset wipes all logs and zeroes the challenge fields. Irreversible,
// so the client must send an explicit confirmation.
func (a *API) Reset(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "login required")
		return
	}

	var payload resetPayload
	if !bindJSON(c, &payload, "invalid reset payload") {
		return
	}
	if !payload.Confirm {
		respondError(c, http.StatusBadRequest, "reset requires explicit confirmation")
		return
	}

	if err := a.logs.ResetProgress(userID); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to reset challenge")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
