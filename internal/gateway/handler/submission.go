package handler

import (
	"net/http"
	"strings"

	"reposit/internal/core"
	"reposit/internal/rest"
	"reposit/internal/store"
)

// SubmissionHandler serves normalized submission objects fetched from the
// upstream repository.
type SubmissionHandler struct {
	client *rest.Client
	parser *rest.Parser
	state  *store.Store
}

func NewSubmissionHandler(client *rest.Client, parser *rest.Parser, state *store.Store) *SubmissionHandler {
	return &SubmissionHandler{client: client, parser: parser, state: state}
}

type submissionListResponse struct {
	Objects  []core.Object  `json:"objects"`
	PageInfo *rest.PageInfo `json:"pageInfo,omitempty"`
}

// HandleList fetches a submission collection upstream, normalizes it and
// publishes each submission to the state store.
// GET /api/submissions?scope=workspace|workflow or ?href=<collection href>.
func (h *SubmissionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.client == nil || h.parser == nil {
		http.Error(w, "submission handler is not available", http.StatusServiceUnavailable)
		return
	}
	href := strings.TrimSpace(r.URL.Query().Get("href"))
	if href == "" {
		switch strings.TrimSpace(r.URL.Query().Get("scope")) {
		case "", "workspace":
			href = "/submission/workspaceitems"
		case "workflow":
			href = "/workflow/workflowitems"
		default:
			http.Error(w, "scope must be workspace or workflow", http.StatusBadRequest)
			return
		}
	}

	req, env, err := h.client.Get(r.Context(), href)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := h.parser.Parse(req, env)
	if err != nil {
		writeError(w, err)
		return
	}
	h.publish(res.Objects)
	writeJSON(w, http.StatusOK, submissionListResponse{
		Objects:  res.Objects,
		PageInfo: res.PageInfo,
	})
}

func (h *SubmissionHandler) publish(objs []core.Object) {
	for _, obj := range objs {
		switch x := obj.(type) {
		case *core.WorkspaceItem:
			h.state.Dispatch(store.Action{
				Type:         store.ActionSetSubmission,
				SubmissionID: x.ID,
				Submission:   x,
			})
		case *core.WorkflowItem:
			h.state.Dispatch(store.Action{
				Type:         store.ActionSetSubmission,
				SubmissionID: x.ID,
				Submission:   x,
			})
		}
	}
}
