package models

import "time"

// AvailabilityEntry lists the slots a provider has open on one calendar day.
type AvailabilityEntry struct {
	Date  string   `bson:"date" json:"date"` // "YYYY-MM-DD"
	Slots []string `bson:"slots" json:"slots"`
}

// Provider is a service professional eligible for auto-assignment once
// verified.
type Provider struct {
	ID                 string              `bson:"id" json:"id"`
	Name               string              `bson:"name" json:"name"`
	Email              string              `bson:"email" json:"email,omitempty"`
	PhoneNumber        string              `bson:"phoneNumber" json:"phoneNumber,omitempty"`
	Address            string              `bson:"address" json:"address,omitempty"`
	VerificationStatus string              `bson:"verificationStatus" json:"verificationStatus"` // Pending, Verified, Blocked
	ServicesOffered    []string            `bson:"servicesOffered" json:"servicesOffered"`
	LocationGeo        GeoPoint            `bson:"locationGeo" json:"locationGeo"`
	Availability       []AvailabilityEntry `bson:"availability" json:"availability,omitempty"`
	Rating             float64             `bson:"rating" json:"rating"` // 0-5
	LastAssignedAt     *time.Time          `bson:"lastAssignedAt,omitempty" json:"lastAssignedAt,omitempty"`
	CreatedAt          time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// AvailableAt reports whether the provider has the given slot open on the
// given calendar day.
func (p *Provider) AvailableAt(date, slot string) bool {
	for _, entry := range p.Availability {
		if entry.Date != date {
			continue
		}
		for _, s := range entry.Slots {
			if s == slot {
				return true
			}
		}
	}
	return false
}

// OffersService reports whether serviceID is in the provider's catalogue.
func (p *Provider) OffersService(serviceID string) bool {
	for _, id := range p.ServicesOffered {
		if id == serviceID {
			return true
		}
	}
	return false
}
