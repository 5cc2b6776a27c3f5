package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/services"
)

type ReflectionHandler struct {
	svc   *services.ReflectionService
	today Clock
}

func NewReflectionHandler(svc *services.ReflectionService, today Clock) *ReflectionHandler {
	return &ReflectionHandler{
		svc:   svc,
		today: today,
	}
}

type addReflectionRequest struct {
	Date       string `json:"date"`
	Reason     string `json:"reason" binding:"required"`
	Suggestion string `json:"suggestion"`
}

func (h *ReflectionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/reflections/catalog", h.Catalog)

	habit := router.Group("/habits/:id")
	{
		habit.POST("/reflections", h.Add)
		habit.GET("/reflections", h.List)
		habit.GET("/barriers", h.Barriers)
	}
}

func (h *ReflectionHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"reasons":     domain.ReflectionReasons,
		"suggestions": domain.ReflectionSuggestions,
	})
}

func (h *ReflectionHandler) Add(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	habitID, ok := habitIDParam(c)
	if !ok {
		return
	}

	var req addReflectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var date domain.Date
	if req.Date != "" {
		d, err := domain.ParseDate(req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		date = d
	}

	ref, err := h.svc.Add(c.Request.Context(), services.AddReflectionInput{
		HabitID:    habitID,
		UserID:     userID,
		Date:       date,
		Reason:     req.Reason,
		Suggestion: req.Suggestion,
		Today:      h.today(),
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ref)
}

func (h *ReflectionHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	habitID, ok := habitIDParam(c)
	if !ok {
		return
	}

	refs, err := h.svc.List(c.Request.Context(), habitID, userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, refs)
}

func (h *ReflectionHandler) Barriers(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	habitID, ok := habitIDParam(c)
	if !ok {
		return
	}
	period, mode, ok := periodQuery(c)
	if !ok {
		return
	}

	minOccurrences := 0
	if raw := c.Query("min"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "min must be an integer"})
			return
		}
		minOccurrences = n
	}

	barriers, err := h.svc.Barriers(c.Request.Context(), services.BarriersInput{
		HabitID:        habitID,
		UserID:         userID,
		Period:         period,
		Mode:           mode,
		Today:          h.today(),
		MinOccurrences: minOccurrences,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, barriers)
}
