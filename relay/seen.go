package relay

import (
	"context"
	"fmt"
)

// Seen marks a counterpart's unseen messages as seen and tells the
// counterpart's live connections. The notification carries only who saw them;
// clients infer which messages flipped.
type Seen struct {
	reg   Registry
	store MessageStore
}

func NewSeen(reg Registry, store MessageStore) *Seen {
	return &Seen{reg: reg, store: store}
}

// MarkSeen is idempotent: a call with nothing to flip is a no-op, not an
// error, and still notifies.
func (s *Seen) MarkSeen(ctx context.Context, viewerID, counterpartID string) error {
	if _, err := s.store.MarkSeen(ctx, viewerID, counterpartID); err != nil {
		return fmt.Errorf("marking messages seen: %w", err)
	}

	s.reg.SendToUser(counterpartID, Event{Event: EventMessagesSeen, Data: SeenPayload{By: viewerID}})

	return nil
}
