package models

// Role identifies which side of the marketplace an actor belongs to.
type Role string

const (
	RoleUser     Role = "user"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

// Account/verification statuses. Users are Active until an admin blocks
// them; providers additionally pass through Pending before being Verified.
const (
	StatusActive          = "Active"
	StatusBlocked         = "Blocked"
	StatusVerifiedAccount = "Verified"
	StatusPendingAccount  = "Pending"
)

// Principal is the authenticated caller as asserted by the upstream
// gateway. The core trusts it as given; it never issues or validates
// credentials itself.
type Principal struct {
	ID     string `json:"id"`
	Role   Role   `json:"role"`
	Status string `json:"status"`
}

// IsBlocked reports whether the account has been administratively blocked.
func (p Principal) IsBlocked() bool {
	return p.Status == StatusBlocked
}

// IsVerifiedProvider reports whether the actor is a provider cleared to
// take on bookings.
func (p Principal) IsVerifiedProvider() bool {
	return p.Role == RoleProvider && p.Status == StatusVerifiedAccount
}

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleUser, RoleProvider, RoleAdmin:
		return true
	}
	return false
}
