package handlers

import (
	"log/slog"
	"net/http"

	"github.com/cprater/football-pickem-backend-sub000/live"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin policy is enforced by the CORS middleware.
		return true
	},
}

type WebSocketHandler struct {
	hub *live.Hub
}

func NewWebSocketHandler(hub *live.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// Subscribe upgrades the connection and joins the league's live room.
// Clients receive GAME_FINAL and STANDINGS_UPDATED events for the league.
func (h *WebSocketHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	leagueID, err := getIDFromURL(r, "leagueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed",
			slog.Int("league_id", leagueID),
			slog.Any("error", err),
		)
		return
	}

	client := &live.Client{
		Hub:      h.hub,
		Conn:     conn,
		Send:     make(chan []byte, 256),
		LeagueID: leagueID,
	}
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
