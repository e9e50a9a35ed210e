package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"worddee/internal/practice"
	"worddee/internal/service"
	"worddee/internal/validation"
)

// PracticeHandler handles the word of the day page
type PracticeHandler struct {
	practiceService *service.PracticeService
	middleware      *Middleware
	templates       *template.Template
	logger          *zap.Logger
}

// NewPracticeHandler creates a new practice handler
func NewPracticeHandler(practiceService *service.PracticeService, middleware *Middleware, templates *template.Template, logger *zap.Logger) *PracticeHandler {
	return &PracticeHandler{
		practiceService: practiceService,
		middleware:      middleware,
		templates:       templates,
		logger:          logger,
	}
}

// Show renders the practice page for the current session
func (h *PracticeHandler) Show(w http.ResponseWriter, r *http.Request) {
	snap := h.practiceService.Show(r.Context(), GetSessionID(r.Context()))
	data := newPracticeViewData(snap, h.middleware.CSRFToken(r))
	render(w, h.templates, h.logger, "home.tmpl", data)
}

// Submit checks the posted sentence and returns to the practice page
func (h *PracticeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id := GetSessionID(r.Context())
	err := h.practiceService.Submit(r.Context(), id, r.PostFormValue("sentence"))
	h.respond(w, r, id, err)
}

// Next fetches a fresh word and returns to the practice page
func (h *PracticeHandler) Next(w http.ResponseWriter, r *http.Request) {
	id := GetSessionID(r.Context())
	err := h.practiceService.Next(r.Context(), id)
	h.respond(w, r, id, err)
}

// respond redirects browsers back to the page, which shows whatever the
// session now holds. JSON clients get the session state directly.
func (h *PracticeHandler) respond(w http.ResponseWriter, r *http.Request, id string, err error) {
	if !wantsJSON(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	status := http.StatusOK
	var verr validation.ValidationError
	switch {
	case err == nil:
	case errors.Is(err, practice.ErrEmptySentence), errors.As(err, &verr):
		status = http.StatusBadRequest
	case errors.Is(err, practice.ErrBusy), errors.Is(err, practice.ErrNotReady), errors.Is(err, practice.ErrStale):
		status = http.StatusConflict
	default:
		// the backend rejected the request or could not be reached
		status = http.StatusBadGateway
	}
	writeJSON(w, status, newPracticeJSON(h.practiceService.Show(r.Context(), id)))
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
