package models

// FriendStatus is the status of one directed friend edge. A relationship
// between two users is a pair of edges, one stored on each side, and the pair
// is only ever in one of three combinations: (pending, received),
// (accepted, accepted) or (rejected, rejected).
type FriendStatus string

const (
	StatusPending  FriendStatus = "pending"  // request sent, waiting on the other side
	StatusReceived FriendStatus = "received" // request received, waiting on this user
	StatusAccepted FriendStatus = "accepted"
	StatusRejected FriendStatus = "rejected"
)

type FriendEdge struct {
	FriendID string       `json:"friendId"`
	Status   FriendStatus `json:"status"`
}

// FriendEntry is one edge resolved to the friend's profile summary.
type FriendEntry struct {
	Friend UserSummary  `json:"friend"`
	Status FriendStatus `json:"status"`
}

// FriendLists partitions a user's edges by the status stored on their own
// side. Rejected edges appear in none of the lists.
type FriendLists struct {
	Accepted []FriendEntry `json:"accepted"`
	Pending  []FriendEntry `json:"pending"`
	Received []FriendEntry `json:"received"`
}
