package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/services"
)

type LogHandler struct {
	svc   *services.LogService
	today Clock
}

func NewLogHandler(svc *services.LogService, today Clock) *LogHandler {
	return &LogHandler{
		svc:   svc,
		today: today,
	}
}

// recordLogRequest takes a boolean for qualitative habits and a number otherwise.
type recordLogRequest struct {
	Value domain.LogValue `json:"value"`
}

func (h *LogHandler) RegisterRoutes(router *gin.RouterGroup) {
	logs := router.Group("/habits/:id/logs")
	{
		logs.GET("", h.List)
		logs.PUT("/:date", h.Record)
	}
}

func (h *LogHandler) Record(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	habitID, ok := habitIDParam(c)
	if !ok {
		return
	}

	date, err := domain.ParseDate(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req recordLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	result, err := h.svc.Record(c.Request.Context(), services.RecordLogInput{
		HabitID: habitID,
		UserID:  userID,
		Date:    date,
		Value:   req.Value,
		Today:   h.today(),
	})
	if err != nil {
		handleError(c, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, result)
}

func (h *LogHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	habitID, ok := habitIDParam(c)
	if !ok {
		return
	}
	from, ok := optionalDate(c, "from")
	if !ok {
		return
	}
	to, ok := optionalDate(c, "to")
	if !ok {
		return
	}

	logs, err := h.svc.List(c.Request.Context(), habitID, userID, from, to)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}
