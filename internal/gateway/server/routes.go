package server

import (
	"net/http"

	"reposit/internal/gateway/handler"
	"reposit/internal/gateway/middleware"
)

func NewMux(
	submissionHandler *handler.SubmissionHandler,
	relationshipHandler *handler.RelationshipHandler,
	relatedHandler *handler.RelatedHandler,
	bitstreamHandler *handler.BitstreamHandler,
	selectionHandler *handler.SelectionHandler,
	watchHandler *handler.WatchHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/submissions", submissionHandler.HandleList)

	mux.HandleFunc("POST /api/relationships", relationshipHandler.HandleSave)
	mux.HandleFunc("PUT /api/relationships/{id}/place", relationshipHandler.HandleSetPlace)
	mux.HandleFunc("DELETE /api/relationships/{id}", relationshipHandler.HandleDelete)

	mux.HandleFunc("GET /api/submissions/{id}/related", relatedHandler.HandleList)
	mux.HandleFunc("DELETE /api/submissions/{id}/related/{relId}", relatedHandler.HandleRemove)

	mux.HandleFunc("POST /api/submissions/{id}/files", bitstreamHandler.HandleUpload)
	mux.HandleFunc("GET /api/submissions/{id}/files", bitstreamHandler.HandleList)
	mux.HandleFunc("GET /api/submissions/{id}/files/{name}", bitstreamHandler.HandleURL)

	mux.HandleFunc("GET /api/selection/{list}", selectionHandler.HandleList)
	mux.HandleFunc("PUT /api/selection/{list}/{id}", selectionHandler.HandleSelect)
	mux.HandleFunc("DELETE /api/selection/{list}/{id}", selectionHandler.HandleDeselect)

	mux.HandleFunc("GET /api/watch", watchHandler.HandleWatch)

	return middleware.CORS(mux)
}
