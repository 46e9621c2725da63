package booking

import (
	"fmt"

	"fixitnow/models"
)

// The lifecycle is driven by an explicit transition table keyed by
// (current status, actor role, requested status). Every legal
// combination is an entry; anything else is an illegal transition.
// Admin forces are synthesized in lookupTransition because an admin may
// move a non-terminal booking to any resting status.

type transitionKey struct {
	from models.BookingStatus
	role models.Role
	to   models.BookingStatus
}

type transitionRule struct {
	guard  func(b *models.Booking, actor models.Principal) error
	action func(b *models.Booking, actor models.Principal)
}

// guardAssignable admits a provider accepting or declining a request
// that is either unassigned or assigned to them.
func guardAssignable(b *models.Booking, actor models.Principal) error {
	if b.ProviderID != "" && b.ProviderID != actor.ID {
		return NewConflictError("booking already assigned to another provider")
	}
	return nil
}

// guardAssignedProvider admits only the provider currently holding the
// booking.
func guardAssignedProvider(b *models.Booking, actor models.Principal) error {
	if b.ProviderID != actor.ID {
		return NewForbiddenError("booking is assigned to another provider")
	}
	return nil
}

// guardOwner admits only the user who made the booking.
func guardOwner(b *models.Booking, actor models.Principal) error {
	if b.UserID != actor.ID {
		return NewForbiddenError("booking belongs to another user")
	}
	return nil
}

func accept(b *models.Booking, actor models.Principal) {
	b.ProviderID = actor.ID
	b.Status = models.StatusAccepted
}

// decline records the rejection; the caller routes the booking through
// reassignment before anything is persisted.
func decline(b *models.Booking, actor models.Principal) {
	b.RejectProvider(actor.ID)
}

func cancel(b *models.Booking, _ models.Principal) {
	b.Status = models.StatusCancelled
}

var transitionTable = map[transitionKey]transitionRule{
	// Provider accepts or declines an open or auto-assigned request.
	{models.StatusPending, models.RoleProvider, models.StatusAccepted}:      {guardAssignable, accept},
	{models.StatusAutoAssigned, models.RoleProvider, models.StatusAccepted}: {guardAssignable, accept},
	{models.StatusPending, models.RoleProvider, models.StatusDeclined}:      {guardAssignable, decline},
	{models.StatusAutoAssigned, models.RoleProvider, models.StatusDeclined}: {guardAssignable, decline},

	// Assigned provider works the job.
	{models.StatusAccepted, models.RoleProvider, models.StatusInProgress}: {
		guardAssignedProvider,
		func(b *models.Booking, _ models.Principal) { b.Status = models.StatusInProgress },
	},
	{models.StatusInProgress, models.RoleProvider, models.StatusAwaitingConfirm}: {
		guardAssignedProvider,
		func(b *models.Booking, _ models.Principal) {
			b.Status = models.StatusAwaitingConfirm
			b.TechnicianCompleted = true
		},
	},

	// Owning user confirms completion.
	{models.StatusAwaitingConfirm, models.RoleUser, models.StatusCompleted}: {
		guardOwner,
		func(b *models.Booking, _ models.Principal) {
			b.Status = models.StatusCompleted
			b.UserConfirmed = true
		},
	},

	// User may cancel any non-terminal booking that is not in progress.
	{models.StatusPending, models.RoleUser, models.StatusCancelled}:         {guardOwner, cancel},
	{models.StatusAutoAssigned, models.RoleUser, models.StatusCancelled}:    {guardOwner, cancel},
	{models.StatusAccepted, models.RoleUser, models.StatusCancelled}:        {guardOwner, cancel},
	{models.StatusAwaitingConfirm, models.RoleUser, models.StatusCancelled}: {guardOwner, cancel},
}

// lookupTransition resolves the rule for a requested transition, or an
// error describing why none exists. Terminal-state and role checks are
// the caller's job; this only answers whether the move is in the table.
func lookupTransition(from models.BookingStatus, role models.Role, to models.BookingStatus) (transitionRule, error) {
	if role == models.RoleAdmin {
		return adminRule(to), nil
	}
	rule, ok := transitionTable[transitionKey{from: from, role: role, to: to}]
	if !ok {
		return transitionRule{}, NewStateError(
			fmt.Sprintf("cannot move booking from %q to %q as %s", from, to, role))
	}
	return rule, nil
}

// adminRule lets an admin force any resting status. Forcing Pending is a
// full reset: the provider and the rejection history are cleared.
func adminRule(to models.BookingStatus) transitionRule {
	return transitionRule{
		action: func(b *models.Booking, _ models.Principal) {
			b.Status = to
			if to == models.StatusPending {
				b.ProviderID = ""
				b.RejectedProviders = nil
			}
		},
	}
}

// transitionAllowed reports whether the table contains an entry for the
// combination. Exposed for exhaustive table tests.
func transitionAllowed(from models.BookingStatus, role models.Role, to models.BookingStatus) bool {
	if role == models.RoleAdmin {
		return true
	}
	_, ok := transitionTable[transitionKey{from: from, role: role, to: to}]
	return ok
}
