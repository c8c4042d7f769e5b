package ws

import (
	"encoding/json"
	"sync"

	"innsikt/internal/logger"
	"innsikt/internal/metrics"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Dashboard message types
const (
	MsgFeedbackReceived MessageType = "feedback_received"
	MsgThemesChanged    MessageType = "themes_changed"
	MsgError            MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans dashboard events out to every connection subscribed to a team
type Hub struct {
	teams map[string]map[*Connection]struct{}

	mu sync.RWMutex

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
	done       chan struct{}
	stopOnce   sync.Once
}

// Connection represents a dashboard WebSocket connection
type Connection struct {
	Team   string
	UserID string
	Send   chan []byte
	Hub    *Hub
}

// BroadcastMessage is a message to broadcast to one team
type BroadcastMessage struct {
	Team    string
	Message *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		teams:      make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		done:       make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case <-h.done:
			h.closeAll()
			return

		case conn := <-h.register:
			h.mu.Lock()
			if h.teams[conn.Team] == nil {
				h.teams[conn.Team] = make(map[*Connection]struct{})
			}
			h.teams[conn.Team][conn] = struct{}{}
			h.mu.Unlock()
			metrics.WSClientConnected()
			logger.Logger.Info().Str("team", conn.Team).Str("user_id", conn.UserID).Msg("dashboard connected")

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.teams[conn.Team]; ok {
				if _, ok := conns[conn]; ok {
					delete(conns, conn)
					close(conn.Send)
					if len(conns) == 0 {
						delete(h.teams, conn.Team)
					}
					metrics.WSClientDisconnected()
					logger.Logger.Info().Str("team", conn.Team).Str("user_id", conn.UserID).Msg("dashboard disconnected")
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Message)
			if err != nil {
				logger.Logger.Error().Err(err).Str("type", string(msg.Message.Type)).Msg("failed to encode ws message")
				continue
			}
			h.mu.RLock()
			for conn := range h.teams[msg.Team] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for team, conns := range h.teams {
		for conn := range conns {
			close(conn.Send)
			metrics.WSClientDisconnected()
		}
		delete(h.teams, team)
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
		close(conn.Send)
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Stop closes every connection and stops the hub
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// ClientCount returns the number of dashboards subscribed to team
func (h *Hub) ClientCount(team string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.teams[team])
}

// BroadcastToTeam sends a message to every dashboard of the team (implements service.Broadcaster)
func (h *Hub) BroadcastToTeam(team string, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Logger.Error().Err(err).Str("type", msgType).Msg("failed to encode ws payload")
		return
	}
	msg := &BroadcastMessage{
		Team: team,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}
