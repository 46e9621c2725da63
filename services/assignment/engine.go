package assignment

import (
	"fmt"
	"math"
	"time"

	providerRepo "fixitnow/database/repository/provider"
	"fixitnow/models"

	"go.uber.org/zap"
)

const (
	// SearchRadiusMeters bounds the candidate search around the booking
	// location.
	SearchRadiusMeters = 20000
	// MaxCandidates caps scoring to the nearest candidates.
	MaxCandidates = 10
	// DefaultAssignmentSlot is the slot used when re-running the search
	// for an existing booking.
	DefaultAssignmentSlot = "10:00"

	// Scoring weights: rating dominates, with a fairness adjustment so
	// recently worked providers yield to idle ones.
	ratingWeight           = 10.0
	recentAssignmentWindow = 24 * time.Hour
	recentPenalty          = 20.0
	neverAssignedBonus     = 10.0
)

func (e *DefaultEngine) logger() *zap.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return zap.L()
}

// FindBestProvider runs the candidate search and greedy selection:
// nearest Verified providers offering the service, filtered to those
// available at the requested date and slot, scored, highest score wins.
// Ties keep the nearer candidate, so identical inputs always yield the
// same winner.
func (e *DefaultEngine) FindBestProvider(serviceID string, location models.GeoPoint, date time.Time, timeSlot string, excluded []string) (*models.Provider, error) {
	candidates, err := e.ProviderRepo.QueryNear(providerRepo.NearQuery{
		ServiceID:    serviceID,
		Location:     location,
		RadiusMeters: SearchRadiusMeters,
		Excluded:     excluded,
		Limit:        MaxCandidates,
	})
	if err != nil {
		return nil, fmt.Errorf("provider search failed: %w", err)
	}

	dateStr := date.Format("2006-01-02")
	now := time.Now()

	var best *models.Provider
	bestScore := math.Inf(-1)
	for i := range candidates {
		p := &candidates[i]
		if !p.AvailableAt(dateStr, timeSlot) {
			continue
		}
		// Strict comparison: on a tie the earlier (nearer) candidate stands.
		if s := Score(p, now); s > bestScore {
			best, bestScore = p, s
		}
	}

	if best == nil {
		e.logger().Info("no eligible provider found",
			zap.String("serviceId", serviceID),
			zap.String("date", dateStr),
			zap.String("timeSlot", timeSlot),
			zap.Int("candidates", len(candidates)),
			zap.Int("excluded", len(excluded)))
		return nil, nil
	}

	e.logger().Info("selected provider",
		zap.String("serviceId", serviceID),
		zap.String("providerId", best.ID),
		zap.Float64("score", bestScore))

	selected := *best
	return &selected, nil
}

// Score computes a candidate's assignment score: rating scaled by weight
// plus the fairness adjustment based on when the provider last got work.
func Score(p *models.Provider, now time.Time) float64 {
	score := p.Rating * ratingWeight
	switch {
	case p.LastAssignedAt == nil:
		score += neverAssignedBonus
	case now.Sub(*p.LastAssignedAt) < recentAssignmentWindow:
		score -= recentPenalty
	}
	return score
}
