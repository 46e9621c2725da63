package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bookingRepo "fixitnow/database/repository/booking"
	providerRepo "fixitnow/database/repository/provider"
	"fixitnow/models"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	Bookings  bookingRepo.BookingRepository
	Providers providerRepo.ProviderRepository
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(bookings bookingRepo.BookingRepository, providers providerRepo.ProviderRepository) *AdminHandler {
	return &AdminHandler{Bookings: bookings, Providers: providers}
}

// GetStats handles GET /api/admin/stats.
func (ah *AdminHandler) GetStats(c *gin.Context) {
	stats := gin.H{}
	for _, status := range []models.BookingStatus{
		models.StatusPending, models.StatusAutoAssigned, models.StatusAccepted,
		models.StatusInProgress, models.StatusAwaitingConfirm,
		models.StatusCompleted, models.StatusCancelled,
	} {
		count, err := ah.Bookings.CountByStatus(status)
		if err != nil {
			zap.L().Error("failed to count bookings", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
			return
		}
		stats[string(status)] = count
	}

	verified, err := ah.Providers.CountByVerification(models.StatusVerifiedAccount)
	if err != nil {
		zap.L().Error("failed to count providers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings":          stats,
		"verifiedProviders": verified,
	})
}

// GetAllProviders handles GET /api/admin/providers.
func (ah *AdminHandler) GetAllProviders(c *gin.Context) {
	providers, err := ah.Providers.GetAll()
	if err != nil {
		zap.L().Error("Failed to fetch all providers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch providers"})
		return
	}
	c.JSON(http.StatusOK, providers)
}

// UpdateProviderStatus handles PATCH /api/admin/providers/:id/status:
// verify or block a provider.
func (ah *AdminHandler) UpdateProviderStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	switch input.Status {
	case models.StatusPendingAccount, models.StatusVerifiedAccount, models.StatusBlocked:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be Pending, Verified or Blocked"})
		return
	}

	id := c.Param("id")
	if err := ah.Providers.UpdateVerificationStatus(id, input.Status); err != nil {
		if err == providerRepo.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "provider not found"})
			return
		}
		zap.L().Error("failed to update provider status", zap.String("providerId", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update provider status"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": input.Status})
}
