package domain

// AudienceTarget is the attribute-constraint record governing detailed audience
// matching for one product. Each set is either empty (no constraint on that
// attribute) or an allowed-value list. The source system carries dozens of
// constrained attributes; the set below covers the ones the matcher consults,
// and a record with every set empty is semantically public.
type AudienceTarget struct {
	ProductID string

	Provinces            []string
	Regions              []string
	PracticeAreas        []string
	PracticeSettings     []string
	MembershipCategories []MembershipCategory
	AccountKinds         []AccountKind
	Languages            []string
	Interests            []string
	YearsOfPractice      []string
}

// Unconstrained reports whether every attribute set is empty, which makes the
// target match every profile.
func (t AudienceTarget) Unconstrained() bool {
	return len(t.Provinces) == 0 &&
		len(t.Regions) == 0 &&
		len(t.PracticeAreas) == 0 &&
		len(t.PracticeSettings) == 0 &&
		len(t.MembershipCategories) == 0 &&
		len(t.AccountKinds) == 0 &&
		len(t.Languages) == 0 &&
		len(t.Interests) == 0 &&
		len(t.YearsOfPractice) == 0
}
