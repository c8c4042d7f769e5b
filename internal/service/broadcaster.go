package service

// Dashboard event types
const (
	EventFeedbackReceived = "feedback_received"
	EventThemesChanged    = "themes_changed"
)

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToTeam(team string, msgType string, payload interface{})
}

type noopBroadcaster struct{}

func (noopBroadcaster) BroadcastToTeam(string, string, interface{}) {}
