package handler

import (
	"errors"
	"net/http"

	"github.com/Barrelito/pannben-75/internal/db"
	"github.com/Barrelito/pannben-75/internal/service"
	"github.com/gin-gonic/gin"
)

func logToPayload(log db.DailyLog) gin.H {
	payload := gin.H{
		"date":                      formatDate(log.LogDate),
		"diet_completed":            log.DietCompleted,
		"workout_outdoor_completed": log.WorkoutOutdoorCompleted,
		"workout_indoor_completed":  log.WorkoutIndoorCompleted,
		"reading_completed":         log.ReadingCompleted,
		"photo_uploaded":            log.PhotoUploaded,
		"progress_photo_url":        log.ProgressPhotoURL,
		"water_intake":              log.WaterIntake,
		"is_completed":              log.IsCompleted,
		"bonus_completed":           log.BonusCompleted,
		"is_hard_workout":           log.IsHardWorkout,
		"plan_workout_1":            log.PlanWorkout1,
		"plan_workout_1_time":       log.PlanWorkout1Time,
		"plan_workout_2":            log.PlanWorkout2,
		"plan_workout_2_time":       log.PlanWorkout2Time,
		"plan_diet":                 log.PlanDiet,
	}

	scores := gin.H{}
	if log.SleepScore != nil {
		scores["sleep"] = *log.SleepScore
	}
	if log.BodyScore != nil {
		scores["body"] = *log.BodyScore
	}
	if log.EnergyScore != nil {
		scores["energy"] = *log.EnergyScore
	}
	if log.StressScore != nil {
		scores["stress"] = *log.StressScore
	}
	if log.MotivationScore != nil {
		scores["motivation"] = *log.MotivationScore
	}
	payload["wellbeing"] = scores

	return payload
}

// ListLogs returns the full history, most recent first.
func (a *API) ListLogs(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "login required")
		return
	}

	logs, err := a.logs.ListLogs(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load logs")
		return
	}

	items := make([]gin.H, 0, len(logs))
	for _, log := range logs {
		items = append(items, logToPayload(log))
	}
	c.JSON(http.StatusOK, gin.H{"logs": items})
}

// GetLog returns one date's log; 404 means nothing logged yet.
func (a *API) GetLog(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "login required")
		return
	}

	date, err := parseLogDate(c, true)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	log, err := a.logs.GetLog(userID, date)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load log")
		return
	}
	if log == nil {
		respondError(c, http.StatusNotFound, "no log for that date")
		return
	}

	c.JSON(http.StatusOK, logToPayload(*log))
}

type checkInPayload struct {
	Sleep      int `json:"sleep"`
	Body       int `json:"body"`
	Energy     int `json:"energy"`
	Stress     int `json:"stress"`
	Motivation int `json:"motivation"`
}

// CheckIn records the morning wellbeing scores. The first check-in ever
// starts the 75-day clock.
func (a *API) CheckIn(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "login required")
		return
	}

	date, err := parseLogDate(c, false)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var payload checkInPayload
	if !bindJSON(c, &payload, "invalid check-in payload") {
		return
	}

	input := service.WellbeingInput{
		Sleep:      payload.Sleep,
		Body:       payload.Body,
		Energy:     payload.Energy,
		Stress:     payload.Stress,
		Motivation: payload.Motivation,
	}
	if err := a.logs.CheckIn(userID, date, input); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidWellbeingScore):
			respondError(c, http.StatusBadRequest, "scores must be between 1 and 10")
		case errors.Is(err, service.ErrProfileNotFound):
			respondError(c, http.StatusNotFound, "challenge profile not found")
		default:
			respondError(c, http.StatusInternalServerError, "failed to save check-in")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "date": formatDate(date)})
}

type togglePayload struct {
	Rule  string `json:"rule"`
	Value bool   `json:"value"`
}

// ToggleRule flips a single completion flag for the date.
func (a *API) ToggleRule(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "login required")
		return
	}

	date, err := parseLogDate(c, false)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var payload togglePayload
	if !bindJSON(c, &payload, "invalid rule payload") {
		return
	}

	if err := a.logs.ToggleRule(userID, date, payload.Rule, payload.Value); err != nil {
		if errors.Is(err, service.ErrUnknownRule) {
			respondError(c, http.StatusBadRequest, "unknown rule")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to update rule")
		return
	}

	c.JSON(http.StatusOK, gin.H{"rule": payload.Rule, "value": payload.Value, "date": formatDate(date)})
}

type waterPayload struct {
	Liters float64 `json:"liters"`
}

// UpdateWater sets the absolute water total for the date.
func (a *API) UpdateWater(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "login required")
		return
	}

	date, err := parseLogDate(c, false)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var payload waterPayload
	if !bindJSON(c, &payload, "invalid water payload") {
		return
	}

	if err := a.logs.UpdateWater(userID, date, payload.Liters); err != nil {
		if errors.Is(err, service.ErrInvalidWater) {
			respondError(c, http.StatusBadRequest, "water intake cannot be negative")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to update water intake")
		return
	}

	c.JSON(http.StatusOK, gin.H{"liters": payload.Liters, "date": formatDate(date)})
}

type planningPayload struct {
	Workout1     string `json:"plan_workout_1"`
	Workout1Time string `json:"plan_workout_1_time"`
	Workout2     string `json:"plan_workout_2"`
	Workout2Time string `json:"plan_workout_2_time"`
	Diet         string `json:"plan_diet"`
}

// UpdatePlanning sets tomorrow's plan on today's row.
func (a *API) UpdatePlanning(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "login required")
		return
	}

	date, err := parseLogDate(c, false)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var payload planningPayload
	if !bindJSON(c, &payload, "invalid planning payload") {
		return
	}

	input := service.PlanningInput{
		Workout1:     payload.Workout1,
		Workout1Time: payload.Workout1Time,
		Workout2:     payload.Workout2,
		Workout2Time: payload.Workout2Time,
		Diet:         payload.Diet,
	}
	if err := a.logs.UpdatePlanning(userID, date, input); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to update planning")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "date": formatDate(date)})
}

type hardWorkoutPayload struct {
	Value bool `json:"value"`
}

// MarkHardWorkout flags the date's workout as a hard one.
func (a *API) MarkHardWorkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "login required")
		return
	}

	date, err := parseLogDate(c, false)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var payload hardWorkoutPayload
	if !bindJSON(c, &payload, "invalid payload") {
		return
	}

	if err := a.logs.MarkHardWorkout(userID, date, payload.Value); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to mark hard workout")
		return
	}

	c.JSON(http.StatusOK, gin.H{"value": payload.Value, "date": formatDate(date)})
}

// CompleteDay marks the date done and pays the daily XP award.
func (a *API) CompleteDay(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "login required")
		return
	}

	date, err := parseLogDate(c, false)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	awarded, total, err := a.logs.CompleteDay(userID, date)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDayAlreadyCompleted):
			respondError(c, http.StatusConflict, "day already completed")
		case errors.Is(err, service.ErrProfileNotFound):
			respondError(c, http.StatusNotFound, "challenge profile not found")
		default:
			respondError(c, http.StatusInternalServerError, "failed to complete day")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":       formatDate(date),
		"awarded_xp": awarded,
		"total_xp":   total,
		"rank":       service.RankFor(total),
	})
}

// BonusWorkout registers the one bonus workout allowed per date.
func (a *API) BonusWorkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "login required")
		return
	}

	date, err := parseLogDate(c, false)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	total, err := a.logs.LogBonusWorkout(userID, date)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBonusAlreadyLogged):
			respondError(c, http.StatusConflict, "bonus workout already registered today")
		case errors.Is(err, service.ErrProfileNotFound):
			respondError(c, http.StatusNotFound, "challenge profile not found")
		default:
			respondError(c, http.StatusInternalServerError, "failed to register bonus workout")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":       formatDate(date),
		"awarded_xp": service.BonusWorkoutXP,
		"total_xp":   total,
	})
}
