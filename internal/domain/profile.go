package domain

import "strings"

// AccountKind distinguishes the two account populations served by the catalog.
type AccountKind string

const (
	KindAccount   AccountKind = "account"
	KindAffiliate AccountKind = "affiliate"
)

// ParseAccountKind normalises raw input, reporting whether it matched a known kind.
func ParseAccountKind(raw string) (AccountKind, bool) {
	switch AccountKind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindAccount:
		return KindAccount, true
	case KindAffiliate:
		return KindAffiliate, true
	default:
		return "", false
	}
}

// PrivilegeTier orders caller privilege: self-service < admin < main.
type PrivilegeTier string

const (
	TierSelfService PrivilegeTier = "self-service"
	TierAdmin       PrivilegeTier = "admin"
	TierMain        PrivilegeTier = "main"
)

// ParsePrivilegeTier normalises raw input, reporting whether it matched a known tier.
func ParsePrivilegeTier(raw string) (PrivilegeTier, bool) {
	switch PrivilegeTier(strings.ToLower(strings.TrimSpace(raw))) {
	case TierSelfService:
		return TierSelfService, true
	case TierAdmin:
		return TierAdmin, true
	case TierMain:
		return TierMain, true
	default:
		return "", false
	}
}

// Privileged reports whether the tier bypasses the visibility funnel entirely.
func (t PrivilegeTier) Privileged() bool {
	return t == TierAdmin || t == TierMain
}

// Caller is the optional identity triple accompanying a catalog request. The zero
// value is an anonymous caller.
type Caller struct {
	ID   string
	Kind AccountKind
	Tier PrivilegeTier
}

// Anonymous reports whether the request carries no identity to filter by.
func (c Caller) Anonymous() bool {
	return strings.TrimSpace(c.ID) == ""
}

// CallerProfile is the normalised snapshot of a requesting identity used across
// all filter layers of one resolution pass. It is built once per pass by the
// profile provider and treated as immutable afterwards.
type CallerProfile struct {
	UserID             string
	Kind               AccountKind
	Tier               PrivilegeTier
	MembershipCategory *MembershipCategory
	ActiveMembership   bool

	Province        string
	Region          string
	PracticeSetting string
	PracticeAreas   []string
	Languages       []string
	Interests       []string
	YearsOfPractice string
}
