package relay

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ybchat/models"
)

var ErrEmptyMessage = errors.New("message body is empty")

// MessageStore is the persistence port for direct messages.
type MessageStore interface {
	Insert(ctx context.Context, m *models.Message) error
	History(ctx context.Context, userA, userB string) ([]models.Message, error)
	MarkSeen(ctx context.Context, viewerID, counterpartID string) (int64, error)
}

// Messages persists a message then pushes it to the recipient's live
// connections. An offline recipient gets no push and recovers the message
// through History.
type Messages struct {
	reg   Registry
	store MessageStore
}

func NewMessages(reg Registry, store MessageStore) *Messages {
	return &Messages{reg: reg, store: store}
}

func (m *Messages) Send(ctx context.Context, senderID, receiverID, body string) (*models.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyMessage
	}

	msg := &models.Message{
		ID:         uuid.New().String(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Body:       body,
		Seen:       false,
		Timestamp:  time.Now().UTC(),
	}
	if err := m.store.Insert(ctx, msg); err != nil {
		return nil, fmt.Errorf("persisting message: %w", err)
	}

	m.reg.SendToUser(receiverID, Event{Event: EventReceiveMessage, Data: msg})

	return msg, nil
}

func (m *Messages) History(ctx context.Context, userA, userB string) ([]models.Message, error) {
	messages, err := m.store.History(ctx, userA, userB)
	if err != nil {
		return nil, fmt.Errorf("loading message history: %w", err)
	}
	return messages, nil
}
