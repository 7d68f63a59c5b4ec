// Package friendship owns the two-sided friend-request state machine. A
// relationship between users A and B is a pair of directed edges, one stored
// on each side, and every mutation moves both edges together so the pair is
// always in a consistent combination.
package friendship

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"ybchat/models"
)

var (
	ErrSelfRequest    = errors.New("cannot add yourself as a friend")
	ErrUserNotFound   = errors.New("user not found")
	ErrAlreadyRelated = errors.New("already friends or request exists")
	ErrNoRequest      = errors.New("friend request not found")
)

// EdgeStore is the persistence port for friend edges. InsertPair and
// SetPairStatus must apply both sides atomically.
type EdgeStore interface {
	Edge(ctx context.Context, ownerID, friendID string) (models.FriendStatus, bool, error)
	InsertPair(ctx context.Context, requesterID, targetID string) error
	SetPairStatus(ctx context.Context, userID, friendID string, status models.FriendStatus) error
	ListEdges(ctx context.Context, ownerID string) ([]models.FriendEntry, error)
}

type UserChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	edges EdgeStore
	users UserChecker

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(edges EdgeStore, users UserChecker) *Service {
	return &Service{
		edges: edges,
		users: users,
		locks: make(map[string]*sync.Mutex),
	}
}

// pairKey sorts the ids so both directions of a pair map to the same lock.
func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

// lockPair serializes all mutations touching the same unordered user pair.
// Without this, concurrent accept/reject could interleave their dual-side
// writes and leave the edges in a mixed state.
func (s *Service) lockPair(a, b string) func() {
	key := pairKey(a, b)
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// Request creates a pending/received edge pair from requester to target.
// Any existing edge on either side blocks a new request, including a
// rejected pair.
func (s *Service) Request(ctx context.Context, requesterID, targetID string) error {
	if requesterID == targetID {
		return ErrSelfRequest
	}

	unlock := s.lockPair(requesterID, targetID)
	defer unlock()

	exists, err := s.users.Exists(ctx, targetID)
	if err != nil {
		return fmt.Errorf("looking up user: %w", err)
	}
	if !exists {
		return ErrUserNotFound
	}

	for _, side := range [][2]string{{requesterID, targetID}, {targetID, requesterID}} {
		if _, found, err := s.edges.Edge(ctx, side[0], side[1]); err != nil {
			return fmt.Errorf("checking existing edge: %w", err)
		} else if found {
			return ErrAlreadyRelated
		}
	}

	if err := s.edges.InsertPair(ctx, requesterID, targetID); err != nil {
		return fmt.Errorf("inserting friend edges: %w", err)
	}
	return nil
}

// Accept moves a received/pending pair to accepted on both sides. The
// accepter must hold the received edge.
func (s *Service) Accept(ctx context.Context, accepterID, requesterID string) error {
	return s.resolve(ctx, accepterID, requesterID, models.StatusAccepted)
}

// Reject moves a received/pending pair to rejected on both sides. A rejected
// pair is terminal and keeps blocking new requests.
func (s *Service) Reject(ctx context.Context, rejecterID, requesterID string) error {
	return s.resolve(ctx, rejecterID, requesterID, models.StatusRejected)
}

func (s *Service) resolve(ctx context.Context, userID, requesterID string, to models.FriendStatus) error {
	if userID == requesterID {
		return ErrNoRequest
	}

	unlock := s.lockPair(userID, requesterID)
	defer unlock()

	mine, found, err := s.edges.Edge(ctx, userID, requesterID)
	if err != nil {
		return fmt.Errorf("checking received edge: %w", err)
	}
	if !found || mine != models.StatusReceived {
		return ErrNoRequest
	}

	theirs, found, err := s.edges.Edge(ctx, requesterID, userID)
	if err != nil {
		return fmt.Errorf("checking pending edge: %w", err)
	}
	if !found || theirs != models.StatusPending {
		return ErrNoRequest
	}

	if err := s.edges.SetPairStatus(ctx, userID, requesterID, to); err != nil {
		return fmt.Errorf("updating friend edges: %w", err)
	}
	return nil
}

// List partitions userID's edges by their own side's status. Rejected edges
// are excluded but still occupy their slot in the store.
func (s *Service) List(ctx context.Context, userID string) (*models.FriendLists, error) {
	entries, err := s.edges.ListEdges(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing friend edges: %w", err)
	}

	lists := &models.FriendLists{
		Accepted: []models.FriendEntry{},
		Pending:  []models.FriendEntry{},
		Received: []models.FriendEntry{},
	}
	for _, e := range entries {
		switch e.Status {
		case models.StatusAccepted:
			lists.Accepted = append(lists.Accepted, e)
		case models.StatusPending:
			lists.Pending = append(lists.Pending, e)
		case models.StatusReceived:
			lists.Received = append(lists.Received, e)
		}
	}
	return lists, nil
}
