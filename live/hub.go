package live

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Message types pushed to league rooms.
const (
	EventGameFinal        = "GAME_FINAL"
	EventStandingsUpdated = "STANDINGS_UPDATED"
)

type Message struct {
	Type     string      `json:"type"`
	Payload  interface{} `json:"payload"`
	LeagueID int         `json:"league_id,omitempty"`
}

type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte
	LeagueID int

	mu       sync.Mutex
	isClosed bool
}

// Hub fans live updates out to websocket clients grouped into per-league
// rooms. Standings viewers subscribe to their league and get pushed a
// refresh signal when a game in that league's season is finalized.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client

	mu    sync.RWMutex
	rooms map[int]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		rooms:      make(map[int]map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.rooms[client.LeagueID]; !ok {
				h.rooms[client.LeagueID] = make(map[*Client]bool)
			}
			h.rooms[client.LeagueID][client] = true
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if room, ok := h.rooms[client.LeagueID]; ok {
				if _, okClient := room[client]; okClient {
					client.close()
					delete(room, client)
					if len(room) == 0 {
						delete(h.rooms, client.LeagueID)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToLeague sends a message to every client watching the league.
// Slow clients are skipped rather than blocking the broadcast.
func (h *Hub) BroadcastToLeague(leagueID int, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room, ok := h.rooms[leagueID]
	if !ok {
		return
	}

	msg.LeagueID = leagueID
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("live: failed to marshal message for league %d: %v", leagueID, err)
		return
	}

	for client := range room {
		client.mu.Lock()
		if client.isClosed {
			client.mu.Unlock()
			continue
		}
		select {
		case client.Send <- data:
		default:
			log.Printf("live: send channel full for league %d, skipping client", leagueID)
		}
		client.mu.Unlock()
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.isClosed {
		close(c.Send)
		c.isClosed = true
	}
}

func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// Inbound messages are ignored; the socket is push-only.
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("live: unexpected close in league %d: %v", c.LeagueID, err)
			}
			break
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
