package handler

import (
	"net/http"
	"strings"

	selsvc "reposit/internal/gateway/service/selection"
)

// SelectionHandler exposes the shared selection lists.
type SelectionHandler struct {
	selection *selsvc.Service
}

func NewSelectionHandler(selection *selsvc.Service) *SelectionHandler {
	return &SelectionHandler{selection: selection}
}

// HandleList returns the selected ids of one list.
// GET /api/selection/{list}.
func (h *SelectionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	listID := strings.TrimSpace(r.PathValue("list"))
	if listID == "" {
		http.Error(w, "list id is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"selected": h.selection.Selected(listID)})
}

// HandleSelect adds an object to a list.
// PUT /api/selection/{list}/{id}.
func (h *SelectionHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	listID := strings.TrimSpace(r.PathValue("list"))
	objectID := strings.TrimSpace(r.PathValue("id"))
	if listID == "" || objectID == "" {
		http.Error(w, "list id and object id are required", http.StatusBadRequest)
		return
	}
	h.selection.Select(listID, objectID)
	writeJSON(w, http.StatusNoContent, nil)
}

// HandleDeselect removes an object from a list.
// DELETE /api/selection/{list}/{id}.
func (h *SelectionHandler) HandleDeselect(w http.ResponseWriter, r *http.Request) {
	listID := strings.TrimSpace(r.PathValue("list"))
	objectID := strings.TrimSpace(r.PathValue("id"))
	if listID == "" || objectID == "" {
		http.Error(w, "list id and object id are required", http.StatusBadRequest)
		return
	}
	h.selection.Deselect(listID, objectID)
	writeJSON(w, http.StatusNoContent, nil)
}
