package database

import (
	"context"
	"database/sql"

	"ybchat/models"
)

type MessageStore struct {
	db *sql.DB
}

func NewMessageStore(db *sql.DB) *MessageStore {
	return &MessageStore{db: db}
}

func (s *MessageStore) Insert(ctx context.Context, m *models.Message) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO messages (id, sender_id, receiver_id, body, seen, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		m.ID, m.SenderID, m.ReceiverID, m.Body, m.Seen, m.Timestamp,
	)
	return err
}

// History returns every message exchanged between the two users in either
// direction, oldest first.
func (s *MessageStore) History(ctx context.Context, userA, userB string) ([]models.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sender_id, receiver_id, body, seen, created_at
		FROM messages
		WHERE (sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)
		ORDER BY created_at
	`, userA, userB, userB, userA)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Body, &m.Seen, &m.Timestamp); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// MarkSeen flips every unseen message from counterpartID to viewerID to seen
// and reports how many rows changed. Zero matches is not an error.
func (s *MessageStore) MarkSeen(ctx context.Context, viewerID, counterpartID string) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE messages SET seen = TRUE WHERE sender_id = ? AND receiver_id = ? AND seen = FALSE",
		counterpartID, viewerID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
