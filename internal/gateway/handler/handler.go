package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"reposit/internal/rest"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("write response failed: %v", err)
	}
}

// writeError maps a *rest.StatusError back to its upstream status line;
// anything else is a plain 500.
func writeError(w http.ResponseWriter, err error) {
	var statusErr *rest.StatusError
	if errors.As(err, &statusErr) {
		writeJSON(w, statusErr.Code, map[string]string{
			"error":      statusErr.Text,
			"statusText": statusErr.Text,
		})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
