package web

import (
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/conorfennell/flashdeck/internal/domain"
	"github.com/conorfennell/flashdeck/internal/session"
	"github.com/conorfennell/flashdeck/internal/storage"
)

//go:embed all:static
var staticFiles embed.FS

//go:embed all:templates
var templateFiles embed.FS

// Server holds the dependencies for the HTTP server. It is a thin
// presentation layer: every operation goes through the store or the
// session runner. One runner at a time; this is a single-user app.
type Server struct {
	db        *storage.DB
	router    *http.ServeMux
	templates *template.Template
	runner    *session.Runner
}

// NewServer creates and configures a new server.
func NewServer(db *storage.DB) (*Server, error) {
	tpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		db:        db,
		router:    http.NewServeMux(),
		templates: tpl,
	}
	s.routes()
	return s, nil
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// routes sets up the routing for the server.
func (s *Server) routes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// The static tree is embedded at build time; a failure here
		// means a broken binary, not a runtime condition.
		panic(err)
	}
	fileServer := http.FileServer(http.FS(staticFS))

	s.router.Handle("GET /static/", http.StripPrefix("/static/", fileServer))
	s.router.Handle("GET /{$}", fileServer)

	// HTMX partial routes.
	s.router.HandleFunc("GET /categories", s.handleListCategories)
	s.router.HandleFunc("POST /categories", s.handleCreateCategory)
	s.router.HandleFunc("GET /categories/{id}", s.handleGetCategory)
	s.router.HandleFunc("POST /categories/{id}", s.handleUpdateCategory)
	s.router.HandleFunc("DELETE /categories/{id}", s.handleDeleteCategory)

	s.router.HandleFunc("POST /subcategories", s.handleCreateSubcategory)
	s.router.HandleFunc("GET /subcategories/{id}", s.handleGetSubcategory)
	s.router.HandleFunc("POST /subcategories/{id}", s.handleUpdateSubcategory)
	s.router.HandleFunc("DELETE /subcategories/{id}", s.handleDeleteSubcategory)

	s.router.HandleFunc("POST /cards", s.handleCreateCard)
	s.router.HandleFunc("GET /cards", s.handleListCards)
	s.router.HandleFunc("POST /cards/{id}", s.handleUpdateCard)
	s.router.HandleFunc("DELETE /cards/{id}", s.handleDeleteCard)

	s.router.HandleFunc("GET /sessions", s.handleListSessions)
	s.router.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	s.router.HandleFunc("DELETE /sessions/{id}", s.handleDeleteSession)

	s.router.HandleFunc("GET /review", s.handleReviewSelect)
	s.router.HandleFunc("POST /review/start", s.handleReviewStart)
	s.router.HandleFunc("GET /review/card", s.handleReviewCard)
	s.router.HandleFunc("POST /review/flip", s.handleReviewFlip)
	s.router.HandleFunc("POST /review/clue", s.handleReviewClue)
	s.router.HandleFunc("POST /review/mark", s.handleReviewMark)
	s.router.HandleFunc("POST /review/next", s.handleReviewNext)

	s.router.HandleFunc("GET /settings", s.handleSettings)
	s.router.HandleFunc("POST /reset", s.handleReset)
}

// render executes a template partial, logging instead of failing the
// response when the write goes wrong mid-stream.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("template render failed", "template", name, "error", err)
	}
}

// fail maps an error onto the right response: validation problems
// come back inline as a message partial, everything else is surfaced
// as a generic storage error with the underlying message appended.
func (s *Server) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNoCards) ||
		errors.Is(err, domain.ErrNotFlipped) || errors.Is(err, domain.ErrUnmarked) {
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, "message", map[string]any{"Kind": "error", "Text": err.Error()})
		return
	}
	slog.Error("storage operation failed", "error", err)
	w.WriteHeader(http.StatusInternalServerError)
	s.render(w, "message", map[string]any{"Kind": "error", "Text": "Something went wrong: " + err.Error()})
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func formID(r *http.Request, field string) *int64 {
	v := r.PostFormValue(field)
	if v == "" {
		return nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}
