package handler

import (
	"fmt"
	"net/http"
	"strings"

	"reposit/internal/core"
	itemsvc "reposit/internal/gateway/service/items"
	relsvc "reposit/internal/gateway/service/relationship"
	selsvc "reposit/internal/gateway/service/selection"
	"reposit/internal/store"
	"reposit/internal/submission"
)

// RelatedHandler serves the related-item list of a submission: one entry
// per relationship, combining the virtual metadata value with the
// resolved related item.
type RelatedHandler struct {
	items     *itemsvc.Service
	selection *selsvc.Service
	rels      *relsvc.Service
	state     *store.Store
}

func NewRelatedHandler(items *itemsvc.Service, selection *selsvc.Service, rels *relsvc.Service, state *store.Store) *RelatedHandler {
	return &RelatedHandler{items: items, selection: selection, rels: rels, state: state}
}

type relatedEntry struct {
	RelationshipID string              `json:"relationshipId"`
	Place          int                 `json:"place"`
	Metadata       *core.MetadataValue `json:"metadata,omitempty"`
	Related        *core.Item          `json:"related,omitempty"`
}

// HandleList resolves every relationship of a submission's item into its
// display representation.
// GET /api/submissions/{id}/related.
func (h *RelatedHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	owner, err := h.ownerItem(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	rels, err := h.rels.ListByItem(r.Context(), owner.Self)
	if err != nil {
		writeError(w, err)
		return
	}

	entries := make([]relatedEntry, 0, len(rels))
	for _, rel := range rels {
		side, _ := rel.SideOf(owner.Self)
		entry := submission.NewRelationshipEntry(
			rel, side, strings.TrimSpace(r.PathValue("id")), h.state, h.rels,
			rel.PlaceFor(side), rel.PlaceFor(side),
		)
		item := submission.NewListItem(entry, owner, listIDFor(r), h.items, h.selection, h.rels, h.state)
		resolved, err := item.Resolve(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		entries = append(entries, relatedEntry{
			RelationshipID: rel.ID,
			Place:          rel.PlaceFor(side),
			Metadata:       resolved.Metadata,
			Related:        resolved.Related,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// HandleRemove takes one related item out of the submission: deselect,
// dispatch the removal, delete the relationship.
// DELETE /api/submissions/{id}/related/{relId}.
func (h *RelatedHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	owner, err := h.ownerItem(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	relID := strings.TrimSpace(r.PathValue("relId"))
	rel, err := h.rels.Get(r.Context(), relID)
	if err != nil {
		writeError(w, err)
		return
	}

	side, _ := rel.SideOf(owner.Self)
	entry := submission.NewRelationshipEntry(
		rel, side, strings.TrimSpace(r.PathValue("id")), h.state, h.rels,
		rel.PlaceFor(side), rel.PlaceFor(side),
	)
	item := submission.NewListItem(entry, owner, listIDFor(r), h.items, h.selection, h.rels, h.state)
	if err := item.Remove(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *RelatedHandler) ownerItem(r *http.Request) (*core.Item, error) {
	submissionID := strings.TrimSpace(r.PathValue("id"))
	obj, ok := h.state.Submission(submissionID)
	if !ok {
		return nil, fmt.Errorf("submission %s is not loaded", submissionID)
	}
	var owner *core.Item
	switch x := obj.(type) {
	case *core.WorkspaceItem:
		owner = x.Item
	case *core.WorkflowItem:
		owner = x.Item
	}
	if owner == nil {
		return nil, fmt.Errorf("submission %s has no item", submissionID)
	}
	return owner, nil
}

func listIDFor(r *http.Request) string {
	if list := strings.TrimSpace(r.URL.Query().Get("list")); list != "" {
		return list
	}
	return "submission-" + strings.TrimSpace(r.PathValue("id"))
}
