package websocket

import (
	"sync"

	"ybchat/relay"
)

// Hub is the process-wide connection registry. It maps connection ids to user
// ids bidirectionally and fans events out to the right send queues. All state
// is in-memory and rebuilt as clients reconnect after a restart, which is also
// why the design does not scale past one process.
//
// Register/Unregister attach the transport; Join/Leave bind a user. The split
// exists because a connection is live from the upgrade but only counts for
// presence once the client sends its join event.
type Hub struct {
	mu    sync.RWMutex
	sends map[string]chan<- relay.Event // connID -> outbound queue
	users map[string]string             // connID -> userID, set on join
	conns map[string]map[string]bool    // userID -> connID set
}

func NewHub() *Hub {
	return &Hub{
		sends: make(map[string]chan<- relay.Event),
		users: make(map[string]string),
		conns: make(map[string]map[string]bool),
	}
}

func (h *Hub) Register(connID string, send chan<- relay.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sends[connID] = send
}

// Unregister detaches the connection and closes its send queue. Any join
// binding left behind is cleaned up too, though Leave normally runs first.
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	send, ok := h.sends[connID]
	if !ok {
		return
	}
	delete(h.sends, connID)
	close(send)

	if userID, joined := h.users[connID]; joined {
		delete(h.users, connID)
		h.dropConn(userID, connID)
	}
}

// Join binds a registered connection to a user. A user joining from several
// connections accumulates mappings; earlier ones are not evicted.
func (h *Hub) Join(connID, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sends[connID]; !ok {
		return
	}

	h.users[connID] = userID
	if h.conns[userID] == nil {
		h.conns[userID] = make(map[string]bool)
	}
	h.conns[userID][connID] = true
}

// Leave removes the join binding and reports whether that was the user's last
// connection. A connection that never joined yields ("", false).
func (h *Hub) Leave(connID string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userID, ok := h.users[connID]
	if !ok {
		return "", false
	}
	delete(h.users, connID)
	return userID, h.dropConn(userID, connID)
}

// dropConn must be called with the lock held. Reports whether the user has no
// connections left.
func (h *Hub) dropConn(userID, connID string) bool {
	set := h.conns[userID]
	delete(set, connID)
	if len(set) == 0 {
		delete(h.conns, userID)
		return true
	}
	return false
}

func (h *Hub) ConnectionsFor(userID string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]string, 0, len(h.conns[userID]))
	for connID := range h.conns[userID] {
		ids = append(ids, connID)
	}
	return ids
}

func (h *Hub) ActiveUsers() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]string, 0, len(h.conns))
	for userID := range h.conns {
		users = append(users, userID)
	}
	return users
}

func (h *Hub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[userID]) > 0
}

func (h *Hub) SendToUser(userID string, ev relay.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for connID := range h.conns[userID] {
		h.push(connID, ev)
	}
}

func (h *Hub) BroadcastExcept(userID string, ev relay.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for uid, set := range h.conns {
		if uid == userID {
			continue
		}
		for connID := range set {
			h.push(connID, ev)
		}
	}
}

// push must be called with the lock held. A full queue drops the event rather
// than blocking the caller.
func (h *Hub) push(connID string, ev relay.Event) {
	send, ok := h.sends[connID]
	if !ok {
		return
	}
	select {
	case send <- ev:
	default:
	}
}
