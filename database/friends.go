package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"ybchat/models"
)

// EdgeStore persists directed friend edges. Writes that touch both sides of a
// pair run in a single transaction so the edge-pair invariant cannot be
// half-applied.
type EdgeStore struct {
	db *sql.DB
}

func NewEdgeStore(db *sql.DB) *EdgeStore {
	return &EdgeStore{db: db}
}

// Edge returns the status of the edge stored on ownerID pointing at friendID,
// and whether such an edge exists.
func (s *EdgeStore) Edge(ctx context.Context, ownerID, friendID string) (models.FriendStatus, bool, error) {
	var status string
	err := s.db.QueryRowContext(ctx,
		"SELECT status FROM friendships WHERE user_id = ? AND friend_id = ?",
		ownerID, friendID,
	).Scan(&status)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return models.FriendStatus(status), true, nil
}

// InsertPair creates the edge pair for a new request: requester→target as
// pending and target→requester as received. Both rows or neither.
func (s *EdgeStore) InsertPair(ctx context.Context, requesterID, targetID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	rows := []struct {
		userID, friendID string
		status           models.FriendStatus
	}{
		{requesterID, targetID, models.StatusPending},
		{targetID, requesterID, models.StatusReceived},
	}

	for _, r := range rows {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO friendships (id, user_id, friend_id, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			uuid.New().String(), r.userID, r.friendID, string(r.status), now, now,
		); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// SetPairStatus moves both edges of the {userID, friendID} pair to status in
// one transaction.
func (s *EdgeStore) SetPairStatus(ctx context.Context, userID, friendID string, status models.FriendStatus) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, pair := range [][2]string{{userID, friendID}, {friendID, userID}} {
		if _, err := tx.ExecContext(ctx,
			"UPDATE friendships SET status = ?, updated_at = ? WHERE user_id = ? AND friend_id = ?",
			string(status), now, pair[0], pair[1],
		); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// ListEdges returns ownerID's edges resolved to friend summaries, oldest
// first.
func (s *EdgeStore) ListEdges(ctx context.Context, ownerID string) ([]models.FriendEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT f.status, u.id, u.name, u.email, u.profile_pic, u.online, u.created_at
		FROM friendships f
		JOIN users u ON u.id = f.friend_id
		WHERE f.user_id = ?
		ORDER BY f.created_at
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.FriendEntry{}
	for rows.Next() {
		var e models.FriendEntry
		var status string
		if err := rows.Scan(
			&status,
			&e.Friend.ID, &e.Friend.Name, &e.Friend.Email, &e.Friend.ProfilePic, &e.Friend.Online, &e.Friend.CreatedAt,
		); err != nil {
			return nil, err
		}
		e.Status = models.FriendStatus(status)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
