package domain

// MembershipCategory identifies one of the fifteen membership tiers carried on
// caller profiles. Values outside [0, 14] have no mapped price field and fall back
// to the general price.
type MembershipCategory int

const (
	CategoryPractising MembershipCategory = iota
	CategoryNonPractising
	CategoryStudent
	CategoryNewGraduate
	CategoryRetired
	CategoryLife
	CategoryHonorary
	CategoryAssociate
	CategoryAffiliate
	CategoryCorporate
	CategoryProvisional
	CategoryTemporary
	CategoryOnLeave
	CategoryInternational
	CategorySupportPersonnel
)

// PriceSet carries the sixteen nullable price fields of a product: one general
// price plus one per membership category. Amounts are minor currency units.
type PriceSet struct {
	General          *int64
	Practising       *int64
	NonPractising    *int64
	Student          *int64
	NewGraduate      *int64
	Retired          *int64
	Life             *int64
	Honorary         *int64
	Associate        *int64
	Affiliate        *int64
	Corporate        *int64
	Provisional      *int64
	Temporary        *int64
	OnLeave          *int64
	International    *int64
	SupportPersonnel *int64
}

// PriceFieldGeneral is the field name reported when the general price applies.
const PriceFieldGeneral = "general"

// CategoryPrice returns the price field mapped to the category along with its
// name. The mapping is total over the fifteen categories; anything else returns
// (nil, ""). A nil pointer result means the product simply has no price recorded
// for that field, never an error.
func (s PriceSet) CategoryPrice(cat MembershipCategory) (*int64, string) {
	switch cat {
	case CategoryPractising:
		return s.Practising, "practising"
	case CategoryNonPractising:
		return s.NonPractising, "nonPractising"
	case CategoryStudent:
		return s.Student, "student"
	case CategoryNewGraduate:
		return s.NewGraduate, "newGraduate"
	case CategoryRetired:
		return s.Retired, "retired"
	case CategoryLife:
		return s.Life, "life"
	case CategoryHonorary:
		return s.Honorary, "honorary"
	case CategoryAssociate:
		return s.Associate, "associate"
	case CategoryAffiliate:
		return s.Affiliate, "affiliate"
	case CategoryCorporate:
		return s.Corporate, "corporate"
	case CategoryProvisional:
		return s.Provisional, "provisional"
	case CategoryTemporary:
		return s.Temporary, "temporary"
	case CategoryOnLeave:
		return s.OnLeave, "onLeave"
	case CategoryInternational:
		return s.International, "international"
	case CategorySupportPersonnel:
		return s.SupportPersonnel, "supportPersonnel"
	default:
		return nil, ""
	}
}

// PriceQuote is the outcome of resolving a product price for one caller.
type PriceQuote struct {
	Amount    *int64
	FieldUsed string
	General   bool
}
