package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	bitrepo "reposit/internal/gateway/repository/bitstream"
)

// BitstreamHandler serves the files attached to a submission's upload
// section.
type BitstreamHandler struct {
	files bitrepo.Store
}

func NewBitstreamHandler(files bitrepo.Store) *BitstreamHandler {
	return &BitstreamHandler{files: files}
}

// HandleUpload stores one file under a submission.
// POST /api/submissions/{id}/files?name=<file name>, raw body.
func (h *BitstreamHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.files == nil {
		http.Error(w, "bitstream store is not available", http.StatusServiceUnavailable)
		return
	}
	submissionID := strings.TrimSpace(r.PathValue("id"))
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if submissionID == "" || name == "" {
		http.Error(w, "submission id and file name are required", http.StatusBadRequest)
		return
	}
	content, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 512<<20))
	if err != nil {
		http.Error(w, "read upload failed", http.StatusBadRequest)
		return
	}
	if err := h.files.Put(r.Context(), submissionID, name, content); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"submissionId": submissionID,
		"name":         name,
	})
}

// HandleList lists a submission's files.
// GET /api/submissions/{id}/files.
func (h *BitstreamHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.files == nil {
		http.Error(w, "bitstream store is not available", http.StatusServiceUnavailable)
		return
	}
	submissionID := strings.TrimSpace(r.PathValue("id"))
	if submissionID == "" {
		http.Error(w, "submission id is required", http.StatusBadRequest)
		return
	}
	names, err := h.files.List(r.Context(), submissionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": names})
}

// HandleURL returns a fetchable URL for one file.
// GET /api/submissions/{id}/files/{name}.
func (h *BitstreamHandler) HandleURL(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.files == nil {
		http.Error(w, "bitstream store is not available", http.StatusServiceUnavailable)
		return
	}
	submissionID := strings.TrimSpace(r.PathValue("id"))
	name := strings.TrimSpace(r.PathValue("name"))
	if submissionID == "" || name == "" {
		http.Error(w, "submission id and file name are required", http.StatusBadRequest)
		return
	}
	url, err := h.files.URL(r.Context(), submissionID, name)
	if err != nil {
		if errors.Is(err, bitrepo.ErrNotFound) {
			http.Error(w, "file not found", http.StatusNotFound)
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
