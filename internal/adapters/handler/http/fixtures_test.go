package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-mindful-tracker/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/services"
)

// 2026-10-18 is a Sunday, so the calendar week is 12..18 October.
var today = domain.NewDate(2026, time.October, 18)

func fixedClock() domain.Date { return today }

type testServer struct {
	router *gin.Engine
	habits *services.HabitService
}

// headerUser stands in for the JWT middleware: the caller is whoever X-User-ID names.
func headerUser(c *gin.Context) {
	if id := c.GetHeader("X-User-ID"); id != "" {
		c.Set(middleware.ContextUserIDKey, id)
	}
	c.Next()
}

func setupServer() *testServer {
	gin.SetMode(gin.TestMode)

	habitRepo := repository.NewInMemoryHabitRepository()
	logRepo := repository.NewInMemoryLogRepository()
	refRepo := repository.NewInMemoryReflectionRepository()
	metricsCache := cache.NewMemoryMetricsCache()

	habitSvc := services.NewHabitService(habitRepo, logRepo, refRepo, metricsCache, nil)
	logSvc := services.NewLogService(habitRepo, logRepo, metricsCache, nil)
	refSvc := services.NewReflectionService(habitRepo, refRepo)
	metricsSvc := services.NewMetricsService(habitRepo, logRepo, metricsCache)

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(headerUser)

	adapterHTTP.NewHabitHandler(habitSvc).RegisterRoutes(api)
	adapterHTTP.NewLogHandler(logSvc, fixedClock).RegisterRoutes(api)
	adapterHTTP.NewReflectionHandler(refSvc, fixedClock).RegisterRoutes(api)
	adapterHTTP.NewMetricsHandler(metricsSvc, fixedClock).RegisterRoutes(api)

	return &testServer{router: r, habits: habitSvc}
}

func (s *testServer) do(method, path, userID, body string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// createHabit posts a habit for user-1 and returns its id.
func (s *testServer) createHabit(t *testing.T, body string) int64 {
	t.Helper()
	w := s.do(http.MethodPost, "/api/v1/habits", "user-1", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var h domain.Habit
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &h))
	return h.ID
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

const (
	qualitativeHabit  = `{"name": "Meditate", "type": "Start", "mode": "Qualitative"}`
	quantitativeHabit = `{"name": "Run", "type": "Start", "mode": "Quantitative", "unit": "km", "goal": 5}`
)
