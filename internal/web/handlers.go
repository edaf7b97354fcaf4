package web

import (
	"net/http"
	"strconv"

	"github.com/conorfennell/flashdeck/internal/storage"
)

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// handleListCategories renders the category overview.
func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.db.GetAllCategories()
	if err != nil {
		s.fail(w, err)
		return
	}
	s.render(w, "category_list", map[string]any{"Categories": categories})
}

// handleCreateCategory adds a category and re-renders the list.
func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	_, err := s.db.InsertCategory(storage.NewCategory{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	s.handleListCategories(w, r)
}

// handleGetCategory renders one category with its subcategories,
// cards and session history.
func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid category ID", http.StatusBadRequest)
		return
	}
	category, err := s.db.FindCategoryByID(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	if category == nil {
		http.NotFound(w, r)
		return
	}
	sessions, err := s.db.GetReviewSessionsByCategory(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.render(w, "category_detail", map[string]any{
		"Category": category,
		"Sessions": sessions,
	})
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid category ID", http.StatusBadRequest)
		return
	}
	if err := s.db.UpdateCategory(id, r.PostFormValue("name"), r.PostFormValue("description")); err != nil {
		s.fail(w, err)
		return
	}
	s.handleGetCategory(w, r)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid category ID", http.StatusBadRequest)
		return
	}
	if err := s.db.DeleteCategory(id); err != nil {
		s.fail(w, err)
		return
	}
	s.handleListCategories(w, r)
}

func (s *Server) handleCreateSubcategory(w http.ResponseWriter, r *http.Request) {
	categoryID := formID(r, "categoryId")
	if categoryID == nil {
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, "message", map[string]any{"Kind": "error", "Text": "Select a category first"})
		return
	}
	_, err := s.db.InsertSubcategory(storage.NewSubcategory{
		CategoryID:  *categoryID,
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	r.SetPathValue("id", r.PostFormValue("categoryId"))
	s.handleGetCategory(w, r)
}

func (s *Server) handleGetSubcategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid subcategory ID", http.StatusBadRequest)
		return
	}
	sub, err := s.db.FindSubcategoryByID(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	if sub == nil {
		http.NotFound(w, r)
		return
	}
	s.render(w, "subcategory_detail", map[string]any{"Subcategory": sub})
}

func (s *Server) handleUpdateSubcategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid subcategory ID", http.StatusBadRequest)
		return
	}
	if err := s.db.UpdateSubcategory(id, r.PostFormValue("name"), r.PostFormValue("description")); err != nil {
		s.fail(w, err)
		return
	}
	s.handleGetSubcategory(w, r)
}

// handleDeleteSubcategory deletes a subcategory; its cards stay in
// the parent category.
func (s *Server) handleDeleteSubcategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid subcategory ID", http.StatusBadRequest)
		return
	}
	sub, err := s.db.FindSubcategoryByID(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := s.db.DeleteSubcategory(id); err != nil {
		s.fail(w, err)
		return
	}
	if sub != nil {
		r.SetPathValue("id", formatID(sub.CategoryID))
		s.handleGetCategory(w, r)
		return
	}
	s.handleListCategories(w, r)
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.db.GetAllCards()
	if err != nil {
		s.fail(w, err)
		return
	}
	s.render(w, "card_list", map[string]any{"Cards": cards})
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	categoryID := formID(r, "categoryId")
	if categoryID == nil {
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, "message", map[string]any{"Kind": "error", "Text": "Select a category first"})
		return
	}
	_, err := s.db.InsertCard(storage.NewCard{
		CategoryID:    *categoryID,
		SubcategoryID: formID(r, "subcategoryId"),
		Title:         r.PostFormValue("title"),
		Definition:    r.PostFormValue("definition"),
		Clue:          r.PostFormValue("clue"),
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	r.SetPathValue("id", r.PostFormValue("categoryId"))
	s.handleGetCategory(w, r)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid card ID", http.StatusBadRequest)
		return
	}
	err = s.db.UpdateCard(id, storage.CardUpdate{
		Title:         r.PostFormValue("title"),
		Definition:    r.PostFormValue("definition"),
		Clue:          r.PostFormValue("clue"),
		SubcategoryID: formID(r, "subcategoryId"),
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	s.handleListCards(w, r)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid card ID", http.StatusBadRequest)
		return
	}
	if err := s.db.DeleteCard(id); err != nil {
		s.fail(w, err)
		return
	}
	s.handleListCards(w, r)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.db.GetAllReviewSessions()
	if err != nil {
		s.fail(w, err)
		return
	}
	s.render(w, "session_list", map[string]any{"Sessions": sessions})
}

// sessionCard is a session-detail row: a reviewed card id resolved to
// its current title. Deleted cards stay in the history as dangling
// ids and are shown as no longer available.
type sessionCard struct {
	ID      int64
	Title   string
	Missing bool
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return
	}
	record, err := s.db.FindReviewSessionByID(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	if record == nil {
		http.NotFound(w, r)
		return
	}

	right, err := s.resolveCards(record.Right)
	if err != nil {
		s.fail(w, err)
		return
	}
	wrong, err := s.resolveCards(record.Wrong)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.render(w, "session_detail", map[string]any{
		"Session": record,
		"Right":   right,
		"Wrong":   wrong,
	})
}

func (s *Server) resolveCards(ids []int64) ([]sessionCard, error) {
	resolved := make([]sessionCard, 0, len(ids))
	for _, id := range ids {
		card, err := s.db.FindCardByID(id)
		if err != nil {
			return nil, err
		}
		if card == nil {
			resolved = append(resolved, sessionCard{ID: id, Title: "card no longer available", Missing: true})
			continue
		}
		resolved = append(resolved, sessionCard{ID: id, Title: card.Title})
	}
	return resolved, nil
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return
	}
	if err := s.db.DeleteReviewSession(id); err != nil {
		s.fail(w, err)
		return
	}
	s.handleListSessions(w, r)
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	s.render(w, "settings", nil)
}

// handleReset wipes the whole database. There is no undo.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Reset(); err != nil {
		s.fail(w, err)
		return
	}
	s.render(w, "message", map[string]any{"Kind": "success", "Text": "Database reset"})
}
