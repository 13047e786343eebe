package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reposit/internal/core"
	relrepo "reposit/internal/gateway/repository/relationship"
	relsvc "reposit/internal/gateway/service/relationship"
	"reposit/internal/store"
)

func newRelationshipFixture(t *testing.T) (*RelationshipHandler, relrepo.Store, *store.Store) {
	t.Helper()
	repo := relrepo.NewMemoryStore()
	state := store.New()
	require.NoError(t, repo.Put(context.Background(), core.Relationship{
		ID:            "rel-1",
		LeftItemLink:  "https://repo.example/api/core/items/a",
		RightItemLink: "https://repo.example/api/core/items/b",
		LeftPlace:     1,
	}))
	return NewRelationshipHandler(relsvc.New(repo), state), repo, state
}

func TestRelationshipHandler_SetPlace(t *testing.T) {
	h, repo, _ := newRelationshipFixture(t)

	req := httptest.NewRequest(http.MethodPut, "/api/relationships/rel-1/place",
		strings.NewReader(`{"side":"left","place":4,"submissionId":"ws-1"}`))
	req.SetPathValue("id", "rel-1")
	rec := httptest.NewRecorder()

	h.HandleSetPlace(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rel, err := repo.Get(context.Background(), "rel-1")
	require.NoError(t, err)
	assert.Equal(t, 4, rel.LeftPlace)
}

func TestRelationshipHandler_SetPlaceValidation(t *testing.T) {
	h, _, _ := newRelationshipFixture(t)

	req := httptest.NewRequest(http.MethodPut, "/api/relationships/rel-1/place",
		strings.NewReader(`{"side":"sideways","place":4}`))
	req.SetPathValue("id", "rel-1")
	rec := httptest.NewRecorder()

	h.HandleSetPlace(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRelationshipHandler_SetPlaceNotFound(t *testing.T) {
	h, _, _ := newRelationshipFixture(t)

	req := httptest.NewRequest(http.MethodPut, "/api/relationships/missing/place",
		strings.NewReader(`{"side":"left","place":2}`))
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()

	h.HandleSetPlace(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRelationshipHandler_Delete(t *testing.T) {
	h, repo, state := newRelationshipFixture(t)
	state.Dispatch(store.Action{
		Type:         store.ActionSetRelationship,
		Relationship: &core.Relationship{ID: "rel-1"},
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/relationships/rel-1", nil)
	req.SetPathValue("id", "rel-1")
	rec := httptest.NewRecorder()

	h.HandleDelete(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, err := repo.Get(context.Background(), "rel-1")
	assert.ErrorIs(t, err, relrepo.ErrNotFound)
	if _, ok := state.Relationship("rel-1"); ok {
		t.Fatalf("expected removal to be dispatched to the state store")
	}
}
