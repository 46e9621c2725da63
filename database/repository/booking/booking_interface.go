package bookingRepo

import (
	"errors"

	"fixitnow/models"
)

// ErrNotFound is returned when no booking matches the given id.
var ErrNotFound = errors.New("booking not found")

// ErrConflict is returned when a compare-and-set write loses the race:
// the booking exists but its status/provider no longer match the
// expected prior state.
var ErrConflict = errors.New("booking was modified concurrently")

// BookingRepository defines storage access for bookings.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(b *models.Booking) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(id string) (*models.Booking, error)
	// GetByUser retrieves all bookings made by a user, newest first.
	GetByUser(userID string) ([]models.Booking, error)
	// GetProviderPool retrieves bookings assigned to the provider plus the
	// open Pending pool, newest first.
	GetProviderPool(providerID string) ([]models.Booking, error)
	// CompareAndSwap persists b only if the stored booking still carries
	// the expected status and provider. Returns ErrConflict on a lost
	// race and ErrNotFound if the booking no longer exists.
	CompareAndSwap(b *models.Booking, expectStatus models.BookingStatus, expectProviderID string) error
	// UpdateSeen sets the seen flag of one role on a booking.
	UpdateSeen(id string, role models.Role, seen bool) error
	// CountByStatus returns the number of bookings in the given status.
	CountByStatus(status models.BookingStatus) (int64, error)
}
