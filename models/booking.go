package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending             BookingStatus = "Pending"
	StatusAutoAssigned        BookingStatus = "Auto-Assigned"
	StatusAccepted            BookingStatus = "Accepted"
	StatusInProgress          BookingStatus = "In Progress"
	StatusAwaitingConfirm     BookingStatus = "Waiting for Confirmation"
	StatusCompleted           BookingStatus = "Completed"
	StatusCancelled           BookingStatus = "Cancelled"
	// StatusDeclined is a transient signal from a provider turning down an
	// assignment. It always routes into reassignment and is never stored.
	StatusDeclined BookingStatus = "Declined"
)

// ValidBookingStatus reports whether s names a known lifecycle status.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusAutoAssigned, StatusAccepted, StatusInProgress,
		StatusAwaitingConfirm, StatusCompleted, StatusCancelled, StatusDeclined:
		return true
	}
	return false
}

// IsTerminal reports whether s is a resting state no transition may leave.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Booking represents a home-service request moving through the
// multi-party approval lifecycle.
type Booking struct {
	ID                string        `bson:"id" json:"id"`
	UserID            string        `bson:"userId" json:"userId"`
	ProviderID        string        `bson:"providerId" json:"providerId,omitempty"` // empty while unassigned
	RejectedProviders []string      `bson:"rejectedProviders" json:"rejectedProviders,omitempty"`
	ServiceID         string        `bson:"serviceId" json:"serviceId"`
	Description       string        `bson:"description" json:"description,omitempty"`
	Location          Location      `bson:"location" json:"location"`
	ScheduledDate     time.Time     `bson:"scheduledDate" json:"scheduledDate"`
	TimeSlot          string        `bson:"timeSlot" json:"timeSlot"` // "HH:MM"
	Status            BookingStatus `bson:"status" json:"status"`

	TechnicianCompleted bool    `bson:"technicianCompleted" json:"technicianCompleted"`
	UserConfirmed       bool    `bson:"userConfirmed" json:"userConfirmed"`
	Amount              float64 `bson:"amount" json:"amount"`

	LastAssignedAt *time.Time `bson:"lastAssignedAt,omitempty" json:"lastAssignedAt,omitempty"`

	// Per-role dashboard flags; flipped to false for the other party on
	// every successful transition.
	UserSeen     bool `bson:"userSeen" json:"userSeen"`
	ProviderSeen bool `bson:"providerSeen" json:"providerSeen"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// HasRejected reports whether providerID was previously rejected for this
// booking.
func (b *Booking) HasRejected(providerID string) bool {
	for _, id := range b.RejectedProviders {
		if id == providerID {
			return true
		}
	}
	return false
}

// RejectProvider records providerID in the append-only rejection set.
func (b *Booking) RejectProvider(providerID string) {
	if !b.HasRejected(providerID) {
		b.RejectedProviders = append(b.RejectedProviders, providerID)
	}
}
