package booking

import (
	"time"

	bookingRepo "fixitnow/database/repository/booking"
	providerRepo "fixitnow/database/repository/provider"
	"fixitnow/models"
	"fixitnow/services/assignment"
	"fixitnow/services/geocode"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CreateBookingRequest carries the fields a user submits for a new
// booking.
type CreateBookingRequest struct {
	ServiceID     string    `json:"serviceId" binding:"required"`
	Address       string    `json:"address" binding:"required"`
	ScheduledDate time.Time `json:"scheduledDate" binding:"required"`
	TimeSlot      string    `json:"timeSlot" binding:"required"`
	Description   string    `json:"description"`
	Amount        float64   `json:"amount"`
}

// BookingService drives the booking lifecycle: creation with an initial
// assignment pass, role-gated status transitions, and dashboard queries.
type BookingService interface {
	CreateBooking(actor models.Principal, req CreateBookingRequest) (*models.Booking, error)
	Transition(actor models.Principal, bookingID string, requested models.BookingStatus) (*models.Booking, error)
	GetByID(actor models.Principal, bookingID string) (*models.Booking, error)
	ListForUser(actor models.Principal) ([]models.Booking, error)
	ListProviderPool(actor models.Principal) ([]models.Booking, error)
	MarkSeen(actor models.Principal, bookingID string) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo         bookingRepo.BookingRepository
	ProviderRepo providerRepo.ProviderRepository
	Engine       assignment.Engine
	Geocoder     geocode.Service
	Cache        *redis.Client
	Logger       *zap.Logger
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}
