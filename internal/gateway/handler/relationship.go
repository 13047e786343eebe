package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"reposit/internal/core"
	relrepo "reposit/internal/gateway/repository/relationship"
	relsvc "reposit/internal/gateway/service/relationship"
	"reposit/internal/store"
	"reposit/internal/submission"
)

// RelationshipHandler serves the reorder and removal operations on item
// relationships.
type RelationshipHandler struct {
	svc   *relsvc.Service
	state *store.Store
}

func NewRelationshipHandler(svc *relsvc.Service, state *store.Store) *RelationshipHandler {
	return &RelationshipHandler{svc: svc, state: state}
}

type placeRequest struct {
	Side         string `json:"side"`
	Place        int    `json:"place"`
	SubmissionID string `json:"submissionId,omitempty"`
}

// HandleSetPlace moves one relationship endpoint to a new ordinal place.
// PUT /api/relationships/{id}/place.
func (h *RelationshipHandler) HandleSetPlace(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		http.Error(w, "relationship id is required", http.StatusBadRequest)
		return
	}
	var in placeRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	side, ok := parseSide(in.Side)
	if !ok {
		http.Error(w, "side must be left or right", http.StatusBadRequest)
		return
	}
	if in.Place < 0 {
		http.Error(w, "place must not be negative", http.StatusBadRequest)
		return
	}

	rel, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, relrepo.ErrNotFound) {
			http.Error(w, "relationship not found", http.StatusNotFound)
			return
		}
		writeError(w, err)
		return
	}

	entry := submission.NewRelationshipEntry(
		rel, side, in.SubmissionID, h.state, h.svc,
		rel.PlaceFor(side), in.Place,
	)
	if err := entry.Update(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry.Relationship())
}

// HandleDelete removes a relationship.
// DELETE /api/relationships/{id}.
func (h *RelationshipHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		http.Error(w, "relationship id is required", http.StatusBadRequest)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, relrepo.ErrNotFound) {
			http.Error(w, "relationship not found", http.StatusNotFound)
			return
		}
		writeError(w, err)
		return
	}
	h.state.Dispatch(store.Action{
		Type:           store.ActionRemoveRelationship,
		RelationshipID: id,
	})
	writeJSON(w, http.StatusNoContent, nil)
}

// HandleSave stores a relationship and publishes it to the state store.
// POST /api/relationships.
func (h *RelationshipHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var rel core.Relationship
	if err := json.NewDecoder(r.Body).Decode(&rel); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(rel.ID) == "" {
		http.Error(w, "relationship id is required", http.StatusBadRequest)
		return
	}
	if err := h.svc.Save(r.Context(), rel); err != nil {
		writeError(w, err)
		return
	}
	h.state.Dispatch(store.Action{
		Type:         store.ActionSetRelationship,
		Relationship: &rel,
	})
	writeJSON(w, http.StatusCreated, rel)
}

func parseSide(raw string) (core.Side, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "left":
		return core.SideLeft, true
	case "right":
		return core.SideRight, true
	}
	return core.SideLeft, false
}
