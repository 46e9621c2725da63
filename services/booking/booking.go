package booking

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	bookingRepo "fixitnow/database/repository/booking"
	"fixitnow/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var timeSlotPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// CreateBooking validates the request, geocodes the address, runs a
// single assignment pass and inserts the booking. A failed geocode
// aborts creation; a failed assignment pass degrades to Pending only
// when the pool is empty, never when the search itself errors.
func (s *DefaultBookingService) CreateBooking(actor models.Principal, req CreateBookingRequest) (*models.Booking, error) {
	if actor.Role != models.RoleUser {
		return nil, NewForbiddenError("only users may create bookings")
	}
	if actor.IsBlocked() {
		return nil, NewForbiddenError("account is blocked")
	}
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	resolved, err := s.Geocoder.Geocode(req.Address)
	if err != nil {
		s.logger().Warn("geocoding failed", zap.String("address", req.Address), zap.Error(err))
		return nil, NewValidationError("could not resolve booking location")
	}
	if resolved == nil {
		return nil, NewValidationError("could not resolve booking location")
	}

	now := time.Now()
	b := &models.Booking{
		ID:        uuid.New().String(),
		UserID:    actor.ID,
		ServiceID: req.ServiceID,
		Location: models.Location{
			Type:        "Point",
			Coordinates: []float64{resolved.Lng, resolved.Lat},
			Address:     req.Address,
		},
		ScheduledDate: req.ScheduledDate,
		TimeSlot:      req.TimeSlot,
		Description:   req.Description,
		Amount:        req.Amount,
		Status:        models.StatusPending,
		UserSeen:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	best, err := s.Engine.FindBestProvider(b.ServiceID, b.Location.Point(), b.ScheduledDate, b.TimeSlot, nil)
	if err != nil {
		return nil, NewRepositoryError(fmt.Errorf("assignment search failed: %w", err))
	}
	if best != nil {
		b.ProviderID = best.ID
		b.Status = models.StatusAutoAssigned
		b.LastAssignedAt = &now
	}

	if err := s.Repo.Create(b); err != nil {
		return nil, NewRepositoryError(err)
	}

	if best != nil {
		s.stampProvider(best.ID, now)
	}

	s.logger().Info("booking created",
		zap.String("bookingId", b.ID),
		zap.String("userId", b.UserID),
		zap.String("status", string(b.Status)))
	return b, nil
}

// Transition validates and applies a role-gated status change, persisting
// it with a single compare-and-set keyed on the pre-transition
// status/provider pair. A Decline routes through reassignment before the
// write, so a booking acknowledged as declined always rests with either
// a new provider or Pending status.
func (s *DefaultBookingService) Transition(actor models.Principal, bookingID string, requested models.BookingStatus) (*models.Booking, error) {
	if !models.ValidBookingStatus(requested) {
		return nil, NewValidationError(fmt.Sprintf("unknown status %q", requested))
	}
	if actor.IsBlocked() {
		return nil, NewForbiddenError("account is blocked")
	}
	if actor.Role == models.RoleProvider && !actor.IsVerifiedProvider() {
		return nil, NewForbiddenError("provider is not verified")
	}
	if actor.Role == models.RoleAdmin && requested == models.StatusDeclined {
		return nil, NewValidationError("declined is not a resting status")
	}

	b, err := s.loadBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status.IsTerminal() {
		return nil, NewStateError(fmt.Sprintf("booking is already %s", b.Status))
	}

	expectStatus, expectProvider := b.Status, b.ProviderID

	rule, err := lookupTransition(b.Status, actor.Role, requested)
	if err != nil {
		return nil, err
	}
	if rule.guard != nil {
		if err := rule.guard(b, actor); err != nil {
			return nil, err
		}
	}
	rule.action(b, actor)

	// A decline is transient: re-run assignment synchronously so the
	// booking never rests as Declined. A failed search aborts the whole
	// transition; nothing has been written yet.
	var assigned *models.Provider
	if requested == models.StatusDeclined {
		assigned, err = s.Engine.Reassign(b)
		if err != nil {
			return nil, NewRepositoryError(fmt.Errorf("reassignment failed: %w", err))
		}
	}

	s.flagOtherParty(b, actor.Role)
	b.UpdatedAt = time.Now()

	if err := s.Repo.CompareAndSwap(b, expectStatus, expectProvider); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrConflict):
			return nil, NewConflictError("booking was modified concurrently, re-fetch and retry")
		case errors.Is(err, bookingRepo.ErrNotFound):
			return nil, NewNotFoundError("booking not found")
		default:
			return nil, NewRepositoryError(err)
		}
	}

	if assigned != nil {
		s.stampProvider(assigned.ID, time.Now())
	}
	s.invalidateCache(b.ID)

	s.logger().Info("booking transitioned",
		zap.String("bookingId", b.ID),
		zap.String("actor", string(actor.Role)),
		zap.String("from", string(expectStatus)),
		zap.String("requested", string(requested)),
		zap.String("status", string(b.Status)))
	return b, nil
}

// ListForUser returns the caller's bookings.
func (s *DefaultBookingService) ListForUser(actor models.Principal) ([]models.Booking, error) {
	if actor.IsBlocked() {
		return nil, NewForbiddenError("account is blocked")
	}
	bookings, err := s.Repo.GetByUser(actor.ID)
	if err != nil {
		return nil, NewRepositoryError(err)
	}
	return bookings, nil
}

// ListProviderPool returns jobs assigned to the calling provider plus
// the open request pool.
func (s *DefaultBookingService) ListProviderPool(actor models.Principal) ([]models.Booking, error) {
	if actor.IsBlocked() {
		return nil, NewForbiddenError("account is blocked")
	}
	bookings, err := s.Repo.GetProviderPool(actor.ID)
	if err != nil {
		return nil, NewRepositoryError(err)
	}
	return bookings, nil
}

// GetByID returns a single booking, cached, if the caller is a party to
// it.
func (s *DefaultBookingService) GetByID(actor models.Principal, bookingID string) (*models.Booking, error) {
	if cached := s.cacheGet(bookingID); cached != nil {
		if err := authorizeRead(cached, actor); err != nil {
			return nil, err
		}
		return cached, nil
	}

	b, err := s.loadBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if err := authorizeRead(b, actor); err != nil {
		return nil, err
	}
	s.cacheSet(b)
	return b, nil
}

func (s *DefaultBookingService) loadBooking(id string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, NewNotFoundError("booking not found")
		}
		return nil, NewRepositoryError(err)
	}
	return b, nil
}

func authorizeRead(b *models.Booking, actor models.Principal) error {
	switch actor.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleUser:
		if b.UserID == actor.ID {
			return nil
		}
	case models.RoleProvider:
		if b.ProviderID == actor.ID || (b.ProviderID == "" && b.Status == models.StatusPending) {
			return nil
		}
	}
	return NewForbiddenError("not a party to this booking")
}

// flagOtherParty marks the booking unseen for whoever did not act.
func (s *DefaultBookingService) flagOtherParty(b *models.Booking, role models.Role) {
	switch role {
	case models.RoleUser:
		b.ProviderSeen = false
	case models.RoleProvider:
		b.UserSeen = false
	default:
		b.UserSeen = false
		b.ProviderSeen = false
	}
}

// stampProvider records the provider's latest assignment. Best effort:
// the booking write already succeeded, so a failure here only skews the
// fairness adjustment and is logged rather than surfaced.
func (s *DefaultBookingService) stampProvider(providerID string, t time.Time) {
	if err := s.ProviderRepo.UpdateLastAssigned(providerID, t); err != nil {
		s.logger().Warn("failed to stamp provider assignment",
			zap.String("providerId", providerID), zap.Error(err))
	}
}

func validateCreateRequest(req CreateBookingRequest) error {
	if req.ServiceID == "" {
		return NewValidationError("serviceId is required")
	}
	if req.Address == "" {
		return NewValidationError("address is required")
	}
	if req.ScheduledDate.IsZero() {
		return NewValidationError("scheduledDate is required")
	}
	if !timeSlotPattern.MatchString(req.TimeSlot) {
		return NewValidationError("timeSlot must be HH:MM")
	}
	return nil
}
