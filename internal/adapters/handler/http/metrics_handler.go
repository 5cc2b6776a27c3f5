package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/metrics"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/services"
)

type MetricsHandler struct {
	svc   *services.MetricsService
	today Clock
}

func NewMetricsHandler(svc *services.MetricsService, today Clock) *MetricsHandler {
	return &MetricsHandler{
		svc:   svc,
		today: today,
	}
}

func (h *MetricsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/metrics/overview", h.Overview)

	habit := router.Group("/habits/:id")
	{
		habit.GET("/metrics", h.Report)
		habit.GET("/trend", h.Trend)
		habit.GET("/heatmap", h.Heatmap)
	}
}

// query assembles the metrics query shared by every endpoint. withHabit is false
// for the user-wide overview.
func (h *MetricsHandler) query(c *gin.Context, withHabit bool) (services.MetricsQuery, bool) {
	userID, ok := currentUser(c)
	if !ok {
		return services.MetricsQuery{}, false
	}

	var habitID int64
	if withHabit {
		if habitID, ok = habitIDParam(c); !ok {
			return services.MetricsQuery{}, false
		}
	}

	period, mode, ok := periodQuery(c)
	if !ok {
		return services.MetricsQuery{}, false
	}

	return services.MetricsQuery{
		HabitID: habitID,
		UserID:  userID,
		Period:  period,
		Mode:    mode,
		Today:   h.today(),
	}, true
}

func (h *MetricsHandler) Report(c *gin.Context) {
	q, ok := h.query(c, true)
	if !ok {
		return
	}

	report, err := h.svc.HabitReport(c.Request.Context(), q)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *MetricsHandler) Overview(c *gin.Context) {
	q, ok := h.query(c, false)
	if !ok {
		return
	}

	reports, err := h.svc.Overview(c.Request.Context(), q)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"period":  q.Period,
		"mode":    q.Mode,
		"today":   q.Today,
		"reports": reports,
	})
}

func (h *MetricsHandler) Trend(c *gin.Context) {
	q, ok := h.query(c, true)
	if !ok {
		return
	}

	points, err := h.svc.Trend(c.Request.Context(), q)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"window": metrics.AverageWindow(q.Period),
		"points": points,
	})
}

func (h *MetricsHandler) Heatmap(c *gin.Context) {
	q, ok := h.query(c, true)
	if !ok {
		return
	}

	weeks, err := h.svc.Heatmap(c.Request.Context(), q)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"weeks": weeks})
}
