// Package relay fans real-time events out to live connections. Each relay is
// a small service over the connection registry plus, where needed, a
// persistence port; none of them queue or retry, a recipient with no live
// connection simply misses the push.
package relay

// Event is one frame on the real-time channel.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Inbound event names.
const (
	EventJoin        = "join"
	EventSendMessage = "sendMessage"
	EventTyping      = "typing"
	EventMarkAsSeen  = "markAsSeen"
)

// Outbound event names. Typing reuses EventTyping.
const (
	EventUserOnline     = "userOnline"
	EventUserOffline    = "userOffline"
	EventReceiveMessage = "receiveMessage"
	EventMessagesSeen   = "messagesSeen"
)

type PresencePayload struct {
	UserID string `json:"userId"`
}

type TypingPayload struct {
	From string `json:"from"`
}

type SeenPayload struct {
	By string `json:"by"`
}
