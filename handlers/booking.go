package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fixitnow/middleware"
	"fixitnow/models"
	"fixitnow/services/booking"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing principal"})
		return
	}

	var req booking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := h.Service.CreateBooking(principal, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// UpdateStatus handles PATCH /api/bookings/:id/status.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing principal"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := h.Service.Transition(principal, c.Param("id"), models.BookingStatus(input.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetUserBookings handles GET /api/bookings.
func (h *BookingHandler) GetUserBookings(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing principal"})
		return
	}

	bookings, err := h.Service.ListForUser(principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetProviderPool handles GET /api/bookings/pool: jobs assigned to the
// calling provider plus the open request pool.
func (h *BookingHandler) GetProviderPool(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing principal"})
		return
	}

	bookings, err := h.Service.ListProviderPool(principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing principal"})
		return
	}

	b, err := h.Service.GetByID(principal, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// MarkSeen handles POST /api/bookings/:id/seen.
func (h *BookingHandler) MarkSeen(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing principal"})
		return
	}

	if err := h.Service.MarkSeen(principal, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seen": true})
}
