package handlers

import (
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	providerRepo "fixitnow/database/repository/provider"
	"fixitnow/middleware"
	"fixitnow/models"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	slotPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// ProviderHandler exposes provider self-service operations.
type ProviderHandler struct {
	Repo providerRepo.ProviderRepository
}

// NewProviderHandler creates a new ProviderHandler.
func NewProviderHandler(repo providerRepo.ProviderRepository) *ProviderHandler {
	return &ProviderHandler{Repo: repo}
}

// UpdateAvailability handles PUT /api/providers/availability: the
// calling provider replaces their open slots.
func (h *ProviderHandler) UpdateAvailability(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing principal"})
		return
	}

	var input struct {
		Availability []models.AvailabilityEntry `json:"availability" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	for _, entry := range input.Availability {
		if _, err := time.Parse("2006-01-02", entry.Date); err != nil || !datePattern.MatchString(entry.Date) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "availability dates must be YYYY-MM-DD"})
			return
		}
		for _, slot := range entry.Slots {
			if !slotPattern.MatchString(slot) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "availability slots must be HH:MM"})
				return
			}
		}
	}

	if err := h.Repo.UpdateAvailability(principal.ID, input.Availability); err != nil {
		if err == providerRepo.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "provider not found"})
			return
		}
		zap.L().Error("failed to update availability", zap.String("providerId", principal.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update availability"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": input.Availability})
}

// GetProvider handles GET /api/providers/:id.
func (h *ProviderHandler) GetProvider(c *gin.Context) {
	p, err := h.Repo.GetByID(c.Param("id"))
	if err != nil {
		if err == providerRepo.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "provider not found"})
			return
		}
		zap.L().Error("failed to fetch provider", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch provider"})
		return
	}
	c.JSON(http.StatusOK, p)
}
