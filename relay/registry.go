package relay

// Registry is the live-connection routing surface the relays depend on. The
// websocket hub implements it; tests substitute a recording fake.
type Registry interface {
	// Join binds a registered connection to a user.
	Join(connID, userID string)
	// Leave removes the binding and reports whether it was the user's last
	// live connection. userID is empty if the connection was never joined.
	Leave(connID string) (userID string, last bool)
	ConnectionsFor(userID string) []string
	IsOnline(userID string) bool
	// SendToUser pushes to every live connection of one user.
	SendToUser(userID string, ev Event)
	// BroadcastExcept pushes to every live connection of every other user.
	BroadcastExcept(userID string, ev Event)
}
