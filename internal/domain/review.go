package domain

// ReviewType selects which cards a review session runs over and how
// the pass is labelled afterwards.
type ReviewType string

const (
	ReviewStandard  ReviewType = "standard"
	ReviewTimed     ReviewType = "timed" // behaves like standard; no timer is implemented
	ReviewHundred   ReviewType = "100%"
	ReviewIncorrect ReviewType = "incorrect"
	ReviewCustom    ReviewType = "custom"
)

// ReviewTypes lists every accepted review type, in display order.
var ReviewTypes = []ReviewType{
	ReviewStandard,
	ReviewTimed,
	ReviewHundred,
	ReviewIncorrect,
	ReviewCustom,
}

// Valid reports whether t is one of the accepted review types.
func (t ReviewType) Valid() bool {
	for _, rt := range ReviewTypes {
		if t == rt {
			return true
		}
	}
	return false
}
