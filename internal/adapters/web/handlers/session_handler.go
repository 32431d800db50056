package handlers

import (
	"net/http"

	"github.com/lcalzada-xor/prr/internal/core/domain"
	"github.com/lcalzada-xor/prr/internal/core/ports"
)

// SessionHandler serves the current assessment.
type SessionHandler struct {
	Service ports.SessionService
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(service ports.SessionService) *SessionHandler {
	return &SessionHandler{Service: service}
}

// UpdateSessionRequest is the body of PUT /api/session.
type UpdateSessionRequest struct {
	Assessment domain.Assessment `json:"assessment"`
	FindingRef string            `json:"findingRef,omitempty"`
}

// ApplyRequest is the body of /api/session/apply.
type ApplyRequest struct {
	Shared string `json:"shared"`
}

// HandleGet returns the current session view.
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.Current())
}

// HandleUpdate replaces the current assessment.
func (h *SessionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req UpdateSessionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	view, err := h.Service.Update(r.Context(), req.Assessment, req.FindingRef)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleApply loads a shared string into the session. A rejected code leaves the
// session untouched.
func (h *SessionHandler) HandleApply(w http.ResponseWriter, r *http.Request) {
	var req ApplyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	view, err := h.Service.ApplyCode(r.Context(), req.Shared)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleReset restores the default assessment.
func (h *SessionHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.Reset(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
