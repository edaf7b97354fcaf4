package domain

import "time"

// Category is the top-level grouping of study material. Subcategories
// and Cards are computed views filled in by the store at read time;
// the canonical relationship is the categoryId on the child rows.
type Category struct {
	ID            int64
	Name          string
	Description   string
	Subcategories []Subcategory
	Cards         []Card
	CreatedAt     time.Time
}

// Subcategory is a second-level grouping, always owned by exactly one
// Category. Cards is a computed view, same as on Category.
type Subcategory struct {
	ID          int64
	Name        string
	Description string
	CategoryID  int64
	Cards       []Card
	CreatedAt   time.Time
}

// Card is one flashcard. SubcategoryID and the review fields are
// optional; NumCorrect and NumIncorrect only ever grow, one increment
// per review event.
type Card struct {
	ID            int64
	CategoryID    int64
	SubcategoryID *int64
	Title         string
	Definition    string
	Clue          string
	LastReviewed  *time.Time
	NumCorrect    int
	NumIncorrect  int
	CreatedAt     time.Time
}

// ReviewSession is the durable record of one review pass. Wrong and
// Right are ordered card-id sequences; a card id appears once per
// review event, so duplicates are possible within one session.
type ReviewSession struct {
	ID            int64
	CategoryID    *int64
	SubcategoryID *int64
	ReviewType    ReviewType
	Wrong         []int64
	Right         []int64
	ReviewedAt    *time.Time
	CreatedAt     time.Time
}
