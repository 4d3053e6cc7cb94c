package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/joaomidowz/vargas-mix/live"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS is enforced at the router; the websocket endpoint mirrors it.
		return true
	},
}

type WebsocketHandler struct {
	hub *live.Hub
}

func NewWebsocketHandler(hub *live.Hub) *WebsocketHandler {
	return &WebsocketHandler{hub: hub}
}

// Serve upgrades the connection and attaches the spectator to the hub. The
// latest tournament snapshot is replayed immediately on join.
func (h *WebsocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := &live.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 16),
	}
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
