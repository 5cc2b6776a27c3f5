package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
)

var validationErrors = []error{
	domain.ErrInvalidDate,
	domain.ErrInvalidDateRange,
	domain.ErrInvalidPeriod,
	domain.ErrInvalidIntervalMode,
	domain.ErrInvalidPolarity,
	domain.ErrInvalidTrackingMode,
	domain.ErrHabitNameEmpty,
	domain.ErrHabitNameTooLong,
	domain.ErrHabitUnitTooLong,
	domain.ErrHabitInvalidUserID,
	domain.ErrInvalidGoal,
	domain.ErrHabitDeleted,
	domain.ErrInvalidLogValue,
	domain.ErrLogModeMismatch,
	domain.ErrNegativeLogValue,
	domain.ErrFutureLog,
	domain.ErrLogImmutable,
	domain.ErrReflectionReasonEmpty,
	domain.ErrReflectionTooLong,
	domain.ErrFutureReflection,
	domain.ErrInvalidEmail,
	domain.ErrPasswordTooShort,
}

func isValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// handleError maps domain errors to status codes. Not-found is checked before
// unauthorized so another user's habit is indistinguishable from a missing one.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrHabitNotFound) || errors.Is(err, domain.ErrLogNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})

	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "unauthorized access"})

	case errors.Is(err, domain.ErrHabitConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "version conflict",
			"message": "data has been modified elsewhere, please reload",
		})

	case errors.Is(err, domain.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})

	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})

	case isValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		log.Printf("[ERROR] Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)

		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
