package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/lcalzada-xor/prr/internal/core/ports"
)

// FindingsHandler serves the register of shared findings.
type FindingsHandler struct {
	Service ports.FindingService
}

// NewFindingsHandler creates a new FindingsHandler
func NewFindingsHandler(service ports.FindingService) *FindingsHandler {
	return &FindingsHandler{Service: service}
}

// SaveFindingRequest is the body of POST /api/findings.
type SaveFindingRequest struct {
	Shared string `json:"shared"`
}

// HandleSave registers a shared string.
func (h *FindingsHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var req SaveFindingRequest
	if !decodeBody(w, r, &req) {
		return
	}

	entry, err := h.Service.Save(r.Context(), req.Shared)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// HandleList returns the newest findings. ?limit= is optional.
func (h *FindingsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
			return
		}
		limit = n
	}

	entries, err := h.Service.List(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"findings": entries,
	})
}

// HandleGet returns a single finding by id.
func (h *FindingsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	entry, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
