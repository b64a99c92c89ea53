package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const dateFormat = "2006-01-02"

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// currentUserID reads the authenticated user from the session. Routes
// using it sit behind AuthRequired, so a miss means a broken session.
func currentUserID(c *gin.Context) (uint, bool) {
	session := sessions.Default(c)
	raw := session.Get("user_id")
	if raw == nil {
		return 0, false
	}
	id, ok := raw.(uint)
	return id, ok
}

// parseLogDate resolves the :date path segment. It accepts the aliases
// today and yesterday, or an ISO calendar date, and enforces the
// logging window: mutations may only target today or yesterday (the
// backfill path uses the same key space with yesterday's date).
func parseLogDate(c *gin.Context, allowHistory bool) (time.Time, error) {
	raw := strings.TrimSpace(strings.ToLower(c.Param("date")))
	today := startOfDay(time.Now())

	var date time.Time
	switch raw {
	case "", "today":
		date = today
	case "yesterday":
		date = today.AddDate(0, 0, -1)
	default:
		parsed, err := time.ParseInLocation(dateFormat, raw, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q", raw)
		}
		date = parsed
	}

	if !allowHistory {
		diff := int(today.Sub(date).Hours() / 24)
		if diff < 0 || diff > 1 {
			return time.Time{}, fmt.Errorf("date %s is outside the logging window", date.Format(dateFormat))
		}
	}

	return date, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func formatDate(t time.Time) string {
	return t.Format(dateFormat)
}
