package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"reposit/internal/store"
)

// WatchHandler streams state-store events over a websocket so the form
// can react to reorders and removals made elsewhere.
type WatchHandler struct {
	state *store.Store
}

func NewWatchHandler(state *store.Store) *WatchHandler {
	return &WatchHandler{state: state}
}

const (
	watchWSWriteWait = 10 * time.Second
	watchWSPongWait  = 60 * time.Second
	watchWSPingEvery = (watchWSPongWait * 9) / 10
)

var watchWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type watchWSOutbound struct {
	Type           string `json:"type"`
	SubmissionID   string `json:"submissionId,omitempty"`
	RelationshipID string `json:"relationshipId,omitempty"`
	Side           string `json:"side,omitempty"`
	Place          int    `json:"place,omitempty"`
	Version        int64  `json:"version,omitempty"`
}

// HandleWatch upgrades to a websocket and forwards every store event
// until the client goes away.
func (h *WatchHandler) HandleWatch(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.state == nil {
		http.Error(w, "state store is not available", http.StatusServiceUnavailable)
		return
	}
	conn, err := watchWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(watchWSPongWait)); err != nil {
		log.Printf("watch ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(watchWSPongWait))
	})

	// Reader: only pongs and close frames are expected.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	events := h.state.Subscribe(ctx)

	ticker := time.NewTicker(watchWSPingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			out := watchWSOutbound{
				Type:           string(ev.Action.Type),
				SubmissionID:   ev.Action.SubmissionID,
				RelationshipID: ev.Action.RelationshipID,
				Side:           string(ev.Action.Side),
				Place:          ev.Action.Place,
				Version:        ev.Version,
			}
			if err := conn.SetWriteDeadline(time.Now().Add(watchWSWriteWait)); err != nil {
				return
			}
			if err := conn.WriteJSON(out); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(watchWSWriteWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
