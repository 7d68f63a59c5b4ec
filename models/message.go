package models

import "time"

// Message is a direct message between two users. Immutable after creation
// except for Seen, which only ever flips false to true.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Body       string    `json:"message"`
	Seen       bool      `json:"seen"`
	Timestamp  time.Time `json:"timestamp"`
}
