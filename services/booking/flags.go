package booking

import (
	"errors"

	bookingRepo "fixitnow/database/repository/booking"
	"fixitnow/models"
)

// MarkSeen records that the caller has viewed the booking on their
// dashboard.
func (s *DefaultBookingService) MarkSeen(actor models.Principal, bookingID string) error {
	if actor.Role == models.RoleAdmin {
		return nil
	}
	b, err := s.loadBooking(bookingID)
	if err != nil {
		return err
	}
	if err := authorizeRead(b, actor); err != nil {
		return err
	}
	if err := s.Repo.UpdateSeen(bookingID, actor.Role, true); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return NewNotFoundError("booking not found")
		}
		return NewRepositoryError(err)
	}
	s.invalidateCache(bookingID)
	return nil
}
