package assignment

import (
	"time"

	"fixitnow/models"

	"go.uber.org/zap"
)

// Reassign re-runs the provider search for a booking whose assignment
// fell through. The exclusion set is the booking's rejection history
// plus whoever currently holds it. On a hit the booking moves to
// Auto-Assigned with a fresh assignment timestamp; on a miss it returns
// to the open Pending pool with its rejection history intact.
func (e *DefaultEngine) Reassign(b *models.Booking) (*models.Provider, error) {
	excluded := make([]string, 0, len(b.RejectedProviders)+1)
	excluded = append(excluded, b.RejectedProviders...)
	if b.ProviderID != "" && !b.HasRejected(b.ProviderID) {
		excluded = append(excluded, b.ProviderID)
	}

	best, err := e.FindBestProvider(b.ServiceID, b.Location.Point(), b.ScheduledDate, DefaultAssignmentSlot, excluded)
	if err != nil {
		return nil, err
	}

	if best == nil {
		b.ProviderID = ""
		b.Status = models.StatusPending
		e.logger().Info("reassignment exhausted the candidate pool, booking returns to pool",
			zap.String("bookingId", b.ID),
			zap.Int("rejections", len(b.RejectedProviders)))
		return nil, nil
	}

	now := time.Now()
	b.ProviderID = best.ID
	b.Status = models.StatusAutoAssigned
	b.LastAssignedAt = &now

	e.logger().Info("booking reassigned",
		zap.String("bookingId", b.ID),
		zap.String("providerId", best.ID))
	return best, nil
}
