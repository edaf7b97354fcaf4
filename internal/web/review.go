package web

import (
	"net/http"

	"github.com/conorfennell/flashdeck/internal/domain"
	"github.com/conorfennell/flashdeck/internal/session"
)

// reviewView is what the review_card template renders: the current
// card plus the runner's per-card display state.
type reviewView struct {
	Card      *domain.Card
	Flipped   bool
	ClueShown bool
	Marked    bool
	Position  int
	Total     int
}

// handleReviewSelect renders the session selection form.
func (s *Server) handleReviewSelect(w http.ResponseWriter, r *http.Request) {
	categories, err := s.db.GetAllCategories()
	if err != nil {
		s.fail(w, err)
		return
	}
	s.render(w, "review_select", map[string]any{
		"Categories":  categories,
		"ReviewTypes": domain.ReviewTypes,
	})
}

// handleReviewStart begins a new pass. An empty selection keeps the
// user on the form with a message; no runner state is kept.
func (s *Server) handleReviewStart(w http.ResponseWriter, r *http.Request) {
	categoryID := formID(r, "categoryId")
	if categoryID == nil {
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, "message", map[string]any{"Kind": "error", "Text": "Select a category first"})
		return
	}
	reviewType := domain.ReviewType(r.PostFormValue("reviewType"))

	runner := session.NewRunner(s.db)
	if err := runner.Start(*categoryID, formID(r, "subcategoryId"), reviewType); err != nil {
		s.fail(w, err)
		return
	}
	s.runner = runner
	s.renderReviewCard(w)
}

func (s *Server) handleReviewCard(w http.ResponseWriter, r *http.Request) {
	s.renderReviewCard(w)
}

func (s *Server) handleReviewFlip(w http.ResponseWriter, r *http.Request) {
	if s.runner == nil {
		s.noActiveSession(w)
		return
	}
	s.runner.Flip()
	s.renderReviewCard(w)
}

func (s *Server) handleReviewClue(w http.ResponseWriter, r *http.Request) {
	if s.runner == nil {
		s.noActiveSession(w)
		return
	}
	s.runner.ShowClue()
	s.renderReviewCard(w)
}

// handleReviewMark sets the pending mark from the result form field.
func (s *Server) handleReviewMark(w http.ResponseWriter, r *http.Request) {
	if s.runner == nil {
		s.noActiveSession(w)
		return
	}
	var err error
	switch r.PostFormValue("result") {
	case "correct":
		err = s.runner.MarkCorrect()
	case "incorrect":
		err = s.runner.MarkIncorrect()
	default:
		http.Error(w, "Invalid mark", http.StatusBadRequest)
		return
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	s.renderReviewCard(w)
}

// handleReviewNext advances the pass; after the last card it renders
// the finished summary instead of another card.
func (s *Server) handleReviewNext(w http.ResponseWriter, r *http.Request) {
	if s.runner == nil {
		s.noActiveSession(w)
		return
	}
	if err := s.runner.Next(); err != nil {
		s.fail(w, err)
		return
	}
	if s.runner.State() == session.Finished {
		record := s.runner.Session()
		s.runner = nil
		s.render(w, "review_done", map[string]any{"Session": record})
		return
	}
	s.renderReviewCard(w)
}

func (s *Server) renderReviewCard(w http.ResponseWriter) {
	if s.runner == nil || s.runner.State() != session.Reviewing {
		s.noActiveSession(w)
		return
	}
	position, total := s.runner.Position()
	s.render(w, "review_card", reviewView{
		Card:      s.runner.Current(),
		Flipped:   s.runner.Flipped(),
		ClueShown: s.runner.ClueShown(),
		Marked:    s.runner.Marked(),
		Position:  position,
		Total:     total,
	})
}

func (s *Server) noActiveSession(w http.ResponseWriter) {
	s.render(w, "message", map[string]any{"Kind": "error", "Text": "No active session"})
}
