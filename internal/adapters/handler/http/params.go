package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
)

// Clock returns the current calendar day in the configured time zone.
type Clock func() domain.Date

// NewClock builds a Clock for loc. A nil location means UTC.
func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return func() domain.Date {
		return domain.Today(loc)
	}
}

func currentUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user context missing"})
		return "", false
	}
	return userID, true
}

func habitIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit id"})
		return 0, false
	}
	return id, true
}

// periodQuery reads ?period= and ?mode=, defaulting to week and calendar.
func periodQuery(c *gin.Context) (domain.Period, domain.IntervalMode, bool) {
	period, err := domain.ParsePeriod(c.Query("period"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", "", false
	}
	mode, err := domain.ParseIntervalMode(c.Query("mode"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", "", false
	}
	return period, mode, true
}

// optionalDate parses an ISO date query parameter; an absent one is the zero date.
func optionalDate(c *gin.Context, key string) (domain.Date, bool) {
	raw := c.Query(key)
	if raw == "" {
		return domain.Date{}, true
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return domain.Date{}, false
	}
	return d, true
}
