package assignment

import (
	"time"

	providerRepo "fixitnow/database/repository/provider"
	"fixitnow/models"

	"go.uber.org/zap"
)

// Engine selects providers for bookings. Selection is a greedy,
// stateless, single-shot pass over the nearby candidate pool:
// deterministic given identical inputs, not globally optimal.
type Engine interface {
	// FindBestProvider returns the highest-scoring eligible provider for
	// the request, or nil when the pool is empty. An empty pool is a
	// normal outcome, not an error.
	FindBestProvider(serviceID string, location models.GeoPoint, date time.Time, timeSlot string, excluded []string) (*models.Provider, error)
	// Reassign re-runs the search for a booking after a decline,
	// excluding every provider that already rejected it plus the current
	// one. It mutates the booking to its next state (Auto-Assigned with a
	// new provider, or back to Pending) and returns the newly assigned
	// provider, if any. Persistence is the caller's responsibility.
	Reassign(b *models.Booking) (*models.Provider, error)
}

// DefaultEngine implements Engine on top of the provider repository's
// geospatial search.
type DefaultEngine struct {
	ProviderRepo providerRepo.ProviderRepository
	Logger       *zap.Logger
}
