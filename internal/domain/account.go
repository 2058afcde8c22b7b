package domain

import "time"

// Account is the profile record an authenticated principal resolves to. The
// attribute fields feed audience matching; they are free-form values owned by
// the accounts service.
type Account struct {
	ID              string
	Email           string
	Kind            AccountKind
	Tier            PrivilegeTier
	Province        string
	Region          string
	PracticeSetting string
	PracticeAreas   []string
	Languages       []string
	Interests       []string
	YearsOfPractice string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// MembershipStatus enumerates the lifecycle states of a membership record.
type MembershipStatus string

const (
	MembershipActive  MembershipStatus = "ACTIVE"
	MembershipLapsed  MembershipStatus = "LAPSED"
	MembershipPending MembershipStatus = "PENDING"
	MembershipRevoked MembershipStatus = "REVOKED"
)

// Membership links an account to a membership category for a coverage period.
type Membership struct {
	ID        string
	AccountID string
	Category  MembershipCategory
	Status    MembershipStatus
	StartedAt *time.Time
	ExpiresAt *time.Time
}

// ActiveAt reports whether the membership confers entitlements at the given instant.
func (m Membership) ActiveAt(t time.Time) bool {
	if m.Status != MembershipActive {
		return false
	}
	if m.StartedAt != nil && t.Before(*m.StartedAt) {
		return false
	}
	if m.ExpiresAt != nil && t.After(*m.ExpiresAt) {
		return false
	}
	return true
}

// AffiliateProfile is the attribute record for affiliate principals. Affiliates
// have no membership; their attributes come from the partner organization.
type AffiliateProfile struct {
	ID             string
	AccountID      string
	OrganizationID string
	Province       string
	Region         string
	Languages      []string
	Interests      []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
