package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fixitnow/services/booking"
)

// respondError maps domain error codes to HTTP statuses. Repository
// failures and foreign errors surface as 500s.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch booking.CodeOf(err) {
	case booking.CodeValidation, booking.CodeState:
		status = http.StatusBadRequest
	case booking.CodeForbidden:
		status = http.StatusForbidden
	case booking.CodeNotFound:
		status = http.StatusNotFound
	case booking.CodeConflict:
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		zap.L().Error("request failed", zap.Error(err))
		c.JSON(status, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
