package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reposit/internal/core"
	"reposit/internal/objectcache"
	"reposit/internal/rest"
	"reposit/internal/store"
)

func upstreamWorkspaceList(base string) map[string]any {
	return map[string]any{
		"_links": map[string]any{
			"self": map[string]any{"href": base + "/submission/workspaceitems"},
		},
		"page": map[string]any{
			"size":          float64(20),
			"totalElements": float64(1),
			"totalPages":    float64(1),
			"number":        float64(0),
		},
		"_embedded": map[string]any{
			"workspaceitems": []any{
				map[string]any{
					"type": "workspaceitem",
					"id":   float64(7),
					"_links": map[string]any{
						"self": map[string]any{"href": base + "/submission/workspaceitems/7"},
					},
					"sections": map[string]any{
						"traditionalpagetwo": map[string]any{
							"dc.subject": []any{
								map[string]any{"value": "history", "confidence": float64(600)},
							},
						},
					},
				},
			},
		},
	}
}

func TestSubmissionHandler_List(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/submission/workspaceitems", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(upstreamWorkspaceList("http://" + r.Host))
	}))
	defer upstream.Close()

	cache := objectcache.New(objectcache.Config{TTL: time.Minute, MaxEntries: 32})
	state := store.New()
	h := NewSubmissionHandler(rest.NewClient(upstream.URL), rest.NewParser(cache), state)

	req := httptest.NewRequest(http.MethodGet, "/api/submissions?scope=workspace", nil)
	rec := httptest.NewRecorder()
	h.HandleList(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		Objects  []json.RawMessage `json:"objects"`
		PageInfo *rest.PageInfo    `json:"pageInfo"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Len(t, out.Objects, 1)
	require.NotNil(t, out.PageInfo)
	assert.Equal(t, 1, out.PageInfo.TotalElements)

	// The fetched workspace item must land in the state store.
	obj, ok := state.Submission("7")
	require.True(t, ok, "expected workspace item 7 in the state store")
	wsi, ok := obj.(*core.WorkspaceItem)
	require.True(t, ok, "expected *core.WorkspaceItem, got %T", obj)
	assert.Equal(t, "7", wsi.ID)
}

func TestSubmissionHandler_UpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, `{"message":"upstream down"}`)
	}))
	defer upstream.Close()

	cache := objectcache.New(objectcache.DefaultConfig())
	h := NewSubmissionHandler(rest.NewClient(upstream.URL), rest.NewParser(cache), store.New())

	req := httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
	rec := httptest.NewRecorder()
	h.HandleList(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestSubmissionHandler_BadScope(t *testing.T) {
	h := NewSubmissionHandler(rest.NewClient("http://127.0.0.1:0"), rest.NewParser(nil), store.New())

	req := httptest.NewRequest(http.MethodGet, "/api/submissions?scope=archive", nil)
	rec := httptest.NewRecorder()
	h.HandleList(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
