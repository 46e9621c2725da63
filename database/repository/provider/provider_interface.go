package providerRepo

import (
	"errors"
	"time"

	"fixitnow/models"
)

// ErrNotFound is returned when no provider matches the given id.
var ErrNotFound = errors.New("provider not found")

// NearQuery describes a geospatial candidate search. Results are Verified
// providers offering the service, not in the exclusion set, within the
// radius, ordered by ascending distance and capped at Limit. Availability
// filtering is deliberately left to the caller so the selection algorithm
// stays testable against an in-memory fake.
type NearQuery struct {
	ServiceID    string
	Location     models.GeoPoint
	RadiusMeters float64
	Excluded     []string
	Limit        int64
}

// ProviderRepository defines methods for provider data access.
type ProviderRepository interface {
	// GetByID retrieves a provider by its unique ID.
	GetByID(id string) (*models.Provider, error)
	// GetAll retrieves all providers.
	GetAll() ([]models.Provider, error)
	// Create inserts a new provider record.
	Create(p *models.Provider) error
	// Update modifies an existing provider record.
	Update(p *models.Provider) error
	// QueryNear runs the geospatial candidate search described by q.
	QueryNear(q NearQuery) ([]models.Provider, error)
	// UpdateLastAssigned stamps the provider's most recent assignment.
	UpdateLastAssigned(id string, t time.Time) error
	// UpdateAvailability replaces the provider's availability entries.
	UpdateAvailability(id string, entries []models.AvailabilityEntry) error
	// UpdateVerificationStatus sets the provider's verification status.
	UpdateVerificationStatus(id string, status string) error
	// CountByVerification returns how many providers hold the given status.
	CountByVerification(status string) (int64, error)
}
