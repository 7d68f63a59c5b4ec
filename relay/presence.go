package relay

import (
	"context"

	"github.com/sirupsen/logrus"
)

// OnlineStore persists the durable online flag. The flag is best effort: the
// registry is the source of truth for live presence and the flag can go stale
// across a crash until users reconnect.
type OnlineStore interface {
	SetOnline(ctx context.Context, userID string, online bool) error
}

// Presence converts connection join/leave into online/offline broadcasts.
// Presence is connection-count based: offline only fires when a user's last
// connection goes away.
type Presence struct {
	reg   Registry
	users OnlineStore
	log   *logrus.Logger
}

func NewPresence(reg Registry, users OnlineStore, log *logrus.Logger) *Presence {
	return &Presence{reg: reg, users: users, log: log}
}

func (p *Presence) Join(ctx context.Context, connID, userID string) {
	p.reg.Join(connID, userID)

	if err := p.users.SetOnline(ctx, userID, true); err != nil {
		p.log.WithFields(logrus.Fields{"user": userID, "error": err}).Error("failed to persist online flag")
	}

	p.reg.BroadcastExcept(userID, Event{Event: EventUserOnline, Data: PresencePayload{UserID: userID}})
}

func (p *Presence) Disconnect(ctx context.Context, connID string) {
	userID, last := p.reg.Leave(connID)
	if userID == "" || !last {
		return
	}

	if err := p.users.SetOnline(ctx, userID, false); err != nil {
		p.log.WithFields(logrus.Fields{"user": userID, "error": err}).Error("failed to persist online flag")
	}

	p.reg.BroadcastExcept(userID, Event{Event: EventUserOffline, Data: PresencePayload{UserID: userID}})
}
