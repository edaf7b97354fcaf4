package session

import (
	"fmt"
	"time"

	"github.com/conorfennell/flashdeck/internal/domain"
	"github.com/conorfennell/flashdeck/internal/storage"
)

// State is the runner's position in one review pass.
type State int

const (
	// Selecting is the initial state: no cards chosen yet.
	Selecting State = iota
	// Reviewing holds a non-empty card list and a current card.
	Reviewing
	// Finished is terminal: the session record has been persisted.
	Finished
)

func (s State) String() string {
	switch s {
	case Selecting:
		return "selecting"
	case Reviewing:
		return "reviewing"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// Runner drives one review pass over a selected set of cards. All
// persistence goes through the store: each mark is applied to the
// card's counters as soon as the pass advances, and the summary
// record is written once when the last card is done. Interrupting a
// pass loses only the summary, never the per-card increments.
type Runner struct {
	db *storage.DB

	state         State
	categoryID    int64
	subcategoryID *int64
	reviewType    domain.ReviewType

	cards []domain.Card
	index int

	// Per-card display and marking flags, reset on advance. A card
	// can only be marked after it has been flipped at least once.
	flipped     bool
	everFlipped bool
	clueShown   bool
	correct     bool
	incorrect   bool

	right []int64
	wrong []int64

	session *domain.ReviewSession
}

// NewRunner returns a runner in the Selecting state.
func NewRunner(db *storage.DB) *Runner {
	return &Runner{db: db, state: Selecting}
}

// State reports the runner's current state.
func (r *Runner) State() State {
	return r.state
}

// Start selects the candidate cards and moves the runner into
// Reviewing. The "incorrect" review type takes every card in the
// category with at least one wrong answer, ignoring the subcategory;
// every other type takes the subcategory's cards, or the whole
// category when no subcategory is chosen. An empty selection returns
// ErrNoCards and leaves the runner in Selecting, ready for a new
// attempt.
func (r *Runner) Start(categoryID int64, subcategoryID *int64, reviewType domain.ReviewType) error {
	if r.state != Selecting {
		return domain.ErrSessionOver
	}
	if !reviewType.Valid() {
		return fmt.Errorf("%w: unknown review type %q", domain.ErrValidation, reviewType)
	}

	category, err := r.db.FindCategoryByID(categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return fmt.Errorf("%w: category %d not found", domain.ErrValidation, categoryID)
	}
	if subcategoryID != nil {
		sub, err := r.db.FindSubcategoryByID(*subcategoryID)
		if err != nil {
			return err
		}
		if sub == nil || sub.CategoryID != categoryID {
			return fmt.Errorf("%w: subcategory %d not found in category %d", domain.ErrValidation, *subcategoryID, categoryID)
		}
	}

	var cards []domain.Card
	switch {
	case reviewType == domain.ReviewIncorrect:
		cards, err = r.db.GetIncorrectCards(categoryID)
	case subcategoryID != nil:
		cards, err = r.db.GetCardsBySubcategory(*subcategoryID)
	default:
		cards, err = r.db.GetCardsByCategory(categoryID)
	}
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		return domain.ErrNoCards
	}

	r.categoryID = categoryID
	r.subcategoryID = subcategoryID
	r.reviewType = reviewType
	r.cards = cards
	r.index = 0
	r.right = nil
	r.wrong = nil
	r.resetCardFlags()
	r.state = Reviewing
	return nil
}

// Current returns the card being reviewed, or nil outside Reviewing.
func (r *Runner) Current() *domain.Card {
	if r.state != Reviewing {
		return nil
	}
	return &r.cards[r.index]
}

// Position reports the 1-based index of the current card and the
// total number of cards in the pass.
func (r *Runner) Position() (current, total int) {
	return r.index + 1, len(r.cards)
}

// Flip toggles between the title face and the definition face.
func (r *Runner) Flip() {
	if r.state != Reviewing {
		return
	}
	r.flipped = !r.flipped
	r.everFlipped = true
}

// Flipped reports whether the definition face is showing.
func (r *Runner) Flipped() bool {
	return r.flipped
}

// ShowClue reveals the current card's clue. The clue is independent
// of the flip state and stays revealed for the rest of the card.
func (r *Runner) ShowClue() {
	if r.state != Reviewing {
		return
	}
	r.clueShown = true
}

// ClueShown reports whether the clue has been revealed.
func (r *Runner) ClueShown() bool {
	return r.clueShown
}

// MarkCorrect sets the pending mark to correct. The card must have
// been flipped at least once: grading happens after seeing the answer.
func (r *Runner) MarkCorrect() error {
	return r.mark(true)
}

// MarkIncorrect sets the pending mark to incorrect, under the same
// flip requirement as MarkCorrect.
func (r *Runner) MarkIncorrect() error {
	return r.mark(false)
}

func (r *Runner) mark(correct bool) error {
	if r.state != Reviewing {
		return domain.ErrSessionOver
	}
	if !r.everFlipped {
		return domain.ErrNotFlipped
	}
	r.correct = correct
	r.incorrect = !correct
	return nil
}

// Marked reports whether the current card has a pending mark.
func (r *Runner) Marked() bool {
	return r.correct || r.incorrect
}

// Next commits the pending mark and advances. The card's counter is
// incremented through the store immediately, the card id is appended
// to the right or wrong sequence, and the per-card flags reset. After
// the last card the accumulated summary is persisted as a
// ReviewSession and the runner moves to Finished. Advancing an
// unmarked card returns ErrUnmarked with no state change.
func (r *Runner) Next() error {
	if r.state != Reviewing {
		return domain.ErrSessionOver
	}
	if !r.Marked() {
		return domain.ErrUnmarked
	}

	card := r.cards[r.index]
	if err := r.db.ApplyReview(card.ID, r.correct); err != nil {
		return err
	}
	if r.correct {
		r.right = append(r.right, card.ID)
	} else {
		r.wrong = append(r.wrong, card.ID)
	}
	r.resetCardFlags()

	if r.index < len(r.cards)-1 {
		r.index++
		return nil
	}
	return r.finish()
}

// finish persists the session summary and moves to Finished.
func (r *Runner) finish() error {
	reviewedAt := time.Now()
	session, err := r.db.InsertReviewSession(storage.NewReviewSession{
		CategoryID:    &r.categoryID,
		SubcategoryID: r.subcategoryID,
		ReviewType:    r.reviewType,
		Wrong:         r.wrong,
		Right:         r.right,
		ReviewedAt:    &reviewedAt,
	})
	if err != nil {
		return err
	}
	r.session = session
	r.state = Finished
	return nil
}

// Session returns the persisted session record once the runner has
// finished, nil before that.
func (r *Runner) Session() *domain.ReviewSession {
	return r.session
}

func (r *Runner) resetCardFlags() {
	r.flipped = false
	r.everFlipped = false
	r.clueShown = false
	r.correct = false
	r.incorrect = false
}
