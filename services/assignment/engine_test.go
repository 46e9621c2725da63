package assignment

import (
	"errors"
	"math"
	"sort"
	"testing"
	"time"

	providerRepo "fixitnow/database/repository/provider"
	"fixitnow/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProviderRepo implements the QueryNear contract in memory: Verified
// providers offering the service, not excluded, within the radius,
// sorted by ascending distance, capped at the limit.
type fakeProviderRepo struct {
	providers []models.Provider
	queryErr  error
	stamped   map[string]time.Time
}

func (f *fakeProviderRepo) QueryNear(q providerRepo.NearQuery) ([]models.Provider, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	excluded := make(map[string]bool, len(q.Excluded))
	for _, id := range q.Excluded {
		excluded[id] = true
	}

	type withDistance struct {
		p models.Provider
		d float64
	}
	var matches []withDistance
	for _, p := range f.providers {
		if p.VerificationStatus != models.StatusVerifiedAccount {
			continue
		}
		if q.ServiceID != "" && !p.OffersService(q.ServiceID) {
			continue
		}
		if excluded[p.ID] {
			continue
		}
		d := haversineMeters(q.Location, p.LocationGeo)
		if d > q.RadiusMeters {
			continue
		}
		matches = append(matches, withDistance{p: p, d: d})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].d < matches[j].d })
	if q.Limit > 0 && int64(len(matches)) > q.Limit {
		matches = matches[:q.Limit]
	}
	out := make([]models.Provider, len(matches))
	for i, m := range matches {
		out[i] = m.p
	}
	return out, nil
}

func (f *fakeProviderRepo) UpdateLastAssigned(id string, t time.Time) error {
	if f.stamped == nil {
		f.stamped = map[string]time.Time{}
	}
	f.stamped[id] = t
	return nil
}

func (f *fakeProviderRepo) GetByID(id string) (*models.Provider, error) {
	for i := range f.providers {
		if f.providers[i].ID == id {
			return &f.providers[i], nil
		}
	}
	return nil, providerRepo.ErrNotFound
}

func (f *fakeProviderRepo) GetAll() ([]models.Provider, error)       { return f.providers, nil }
func (f *fakeProviderRepo) Create(p *models.Provider) error          { return nil }
func (f *fakeProviderRepo) Update(p *models.Provider) error          { return nil }
func (f *fakeProviderRepo) UpdateAvailability(string, []models.AvailabilityEntry) error {
	return nil
}
func (f *fakeProviderRepo) UpdateVerificationStatus(string, string) error { return nil }
func (f *fakeProviderRepo) CountByVerification(string) (int64, error)     { return 0, nil }

func haversineMeters(a, b models.GeoPoint) float64 {
	const earthRadius = 6371000.0
	lon1, lat1 := a.Coordinates[0], a.Coordinates[1]
	lon2, lat2 := b.Coordinates[0], b.Coordinates[1]
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadius * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

const (
	testService = "svc-plumbing"
	testDate    = "2026-09-15"
	testSlot    = "10:00"
)

var searchCenter = models.NewGeoPoint(36.8219, -1.2921)

func testDay() time.Time {
	d, _ := time.Parse("2006-01-02", testDate)
	return d
}

// verifiedProvider builds an eligible candidate offset north of the
// search center by roughly km kilometres.
func verifiedProvider(id string, rating float64, km float64) models.Provider {
	return models.Provider{
		ID:                 id,
		Name:               "Provider " + id,
		VerificationStatus: models.StatusVerifiedAccount,
		ServicesOffered:    []string{testService},
		LocationGeo:        models.NewGeoPoint(36.8219, -1.2921+km/111.0),
		Availability: []models.AvailabilityEntry{
			{Date: testDate, Slots: []string{"08:00", testSlot}},
		},
		Rating: rating,
	}
}

func TestFindBestProviderPrefersHigherScore(t *testing.T) {
	x := verifiedProvider("X", 5, 3)
	y := verifiedProvider("Y", 4, 1)
	repo := &fakeProviderRepo{providers: []models.Provider{x, y}}
	engine := &DefaultEngine{ProviderRepo: repo}

	// X: 5*10+10 = 60, Y: 4*10+10 = 50. X wins despite being farther.
	best, err := engine.FindBestProvider(testService, searchCenter, testDay(), testSlot, nil)
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, "X", best.ID)
}

func TestFindBestProviderTieBreaksByDistance(t *testing.T) {
	near := verifiedProvider("near", 4, 2)
	far := verifiedProvider("far", 4, 12)
	repo := &fakeProviderRepo{providers: []models.Provider{far, near}}
	engine := &DefaultEngine{ProviderRepo: repo}

	best, err := engine.FindBestProvider(testService, searchCenter, testDay(), testSlot, nil)
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, "near", best.ID)
}

func TestFindBestProviderFairnessAdjustments(t *testing.T) {
	recent := time.Now().Add(-2 * time.Hour)
	idle := time.Now().Add(-72 * time.Hour)

	workedToday := verifiedProvider("workedToday", 5, 1)
	workedToday.LastAssignedAt = &recent // 50 - 20 = 30

	restedVeteran := verifiedProvider("restedVeteran", 4, 5)
	restedVeteran.LastAssignedAt = &idle // 40

	fresh := verifiedProvider("fresh", 3.5, 8) // 35 + 10 = 45

	repo := &fakeProviderRepo{providers: []models.Provider{workedToday, restedVeteran, fresh}}
	engine := &DefaultEngine{ProviderRepo: repo}

	best, err := engine.FindBestProvider(testService, searchCenter, testDay(), testSlot, nil)
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, "fresh", best.ID)
}

func TestFindBestProviderFiltersIneligible(t *testing.T) {
	outOfRange := verifiedProvider("outOfRange", 5, 25)

	wrongService := verifiedProvider("wrongService", 5, 2)
	wrongService.ServicesOffered = []string{"svc-gardening"}

	unverified := verifiedProvider("unverified", 5, 2)
	unverified.VerificationStatus = models.StatusPendingAccount

	busyDay := verifiedProvider("busyDay", 5, 2)
	busyDay.Availability = []models.AvailabilityEntry{{Date: "2026-09-16", Slots: []string{testSlot}}}

	busySlot := verifiedProvider("busySlot", 5, 2)
	busySlot.Availability = []models.AvailabilityEntry{{Date: testDate, Slots: []string{"14:00"}}}

	eligible := verifiedProvider("eligible", 1, 18)

	repo := &fakeProviderRepo{providers: []models.Provider{
		outOfRange, wrongService, unverified, busyDay, busySlot, eligible,
	}}
	engine := &DefaultEngine{ProviderRepo: repo}

	best, err := engine.FindBestProvider(testService, searchCenter, testDay(), testSlot, nil)
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, "eligible", best.ID)
}

func TestFindBestProviderRespectsExclusion(t *testing.T) {
	x := verifiedProvider("X", 5, 1)
	y := verifiedProvider("Y", 4, 2)
	repo := &fakeProviderRepo{providers: []models.Provider{x, y}}
	engine := &DefaultEngine{ProviderRepo: repo}

	best, err := engine.FindBestProvider(testService, searchCenter, testDay(), testSlot, []string{"X"})
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, "Y", best.ID)

	best, err = engine.FindBestProvider(testService, searchCenter, testDay(), testSlot, []string{"X", "Y"})
	require.NoError(t, err)
	assert.Nil(t, best, "an exhausted pool is a normal nil outcome")
}

func TestFindBestProviderIsDeterministic(t *testing.T) {
	providers := []models.Provider{
		verifiedProvider("A", 4, 6),
		verifiedProvider("B", 4, 3),
		verifiedProvider("C", 3, 1),
		verifiedProvider("D", 4.5, 9),
	}
	engine := &DefaultEngine{ProviderRepo: &fakeProviderRepo{providers: providers}}

	first, err := engine.FindBestProvider(testService, searchCenter, testDay(), testSlot, nil)
	require.NoError(t, err)
	require.NotNil(t, first)
	for i := 0; i < 10; i++ {
		again, err := engine.FindBestProvider(testService, searchCenter, testDay(), testSlot, nil)
		require.NoError(t, err)
		require.NotNil(t, again)
		assert.Equal(t, first.ID, again.ID)
	}
}

func TestFindBestProviderSurfacesRepositoryError(t *testing.T) {
	engine := &DefaultEngine{ProviderRepo: &fakeProviderRepo{queryErr: errors.New("mongo down")}}

	best, err := engine.FindBestProvider(testService, searchCenter, testDay(), testSlot, nil)
	assert.Nil(t, best)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider search failed")
}

func TestReassignMovesBookingToNextProvider(t *testing.T) {
	x := verifiedProvider("X", 5, 1)
	y := verifiedProvider("Y", 4, 2)
	repo := &fakeProviderRepo{providers: []models.Provider{x, y}}
	engine := &DefaultEngine{ProviderRepo: repo}

	b := &models.Booking{
		ID:                "bk-1",
		ServiceID:         testService,
		ProviderID:        "X",
		RejectedProviders: []string{"X"},
		Location: models.Location{
			Type:        "Point",
			Coordinates: searchCenter.Coordinates,
			Address:     "Somewhere",
		},
		ScheduledDate: testDay(),
		Status:        models.StatusAutoAssigned,
	}

	assigned, err := engine.Reassign(b)
	require.NoError(t, err)
	require.NotNil(t, assigned)
	assert.Equal(t, "Y", assigned.ID)
	assert.Equal(t, "Y", b.ProviderID)
	assert.Equal(t, models.StatusAutoAssigned, b.Status)
	assert.NotNil(t, b.LastAssignedAt)
}

func TestReassignFallsBackToPendingWhenExhausted(t *testing.T) {
	x := verifiedProvider("X", 5, 1)
	repo := &fakeProviderRepo{providers: []models.Provider{x}}
	engine := &DefaultEngine{ProviderRepo: repo}

	b := &models.Booking{
		ID:                "bk-2",
		ServiceID:         testService,
		ProviderID:        "X",
		RejectedProviders: []string{"X"},
		Location: models.Location{
			Type:        "Point",
			Coordinates: searchCenter.Coordinates,
		},
		ScheduledDate: testDay(),
		Status:        models.StatusAutoAssigned,
	}

	assigned, err := engine.Reassign(b)
	require.NoError(t, err)
	assert.Nil(t, assigned)
	assert.Equal(t, "", b.ProviderID)
	assert.Equal(t, models.StatusPending, b.Status)
	// Rejection history survives natural exhaustion.
	assert.Equal(t, []string{"X"}, b.RejectedProviders)
}

func TestReassignExcludesCurrentProviderNotYetRejected(t *testing.T) {
	x := verifiedProvider("X", 5, 1)
	repo := &fakeProviderRepo{providers: []models.Provider{x}}
	engine := &DefaultEngine{ProviderRepo: repo}

	// X holds the booking but has not been recorded as a rejecter yet;
	// reassignment must still skip them.
	b := &models.Booking{
		ID:         "bk-3",
		ServiceID:  testService,
		ProviderID: "X",
		Location: models.Location{
			Type:        "Point",
			Coordinates: searchCenter.Coordinates,
		},
		ScheduledDate: testDay(),
		Status:        models.StatusAutoAssigned,
	}

	assigned, err := engine.Reassign(b)
	require.NoError(t, err)
	assert.Nil(t, assigned)
	assert.Equal(t, models.StatusPending, b.Status)
}
