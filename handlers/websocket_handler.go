package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Dosada05/hackathon-system/live"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Dashboards are served from other origins; the API is token-gated.
		return true
	},
}

type WebSocketHandler struct {
	hub *live.Hub
}

func NewWebSocketHandler(hub *live.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// Subscribe upgrades the connection and joins the caller to the room of
// the hackathon named in the URL.
func (h *WebSocketHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	room := chi.URLParam(r, "hackathonID")
	if room == "" {
		badRequestResponse(w, r, errors.New("missing hackathonID in URL path"))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		slog.Error("websocket upgrade failed", slog.Any("error", err))
		return
	}

	h.hub.NewClient(conn, room)
}
