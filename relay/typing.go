package relay

// Typing is a stateless passthrough for transient typing signals. Nothing is
// persisted, deduplicated or queued.
type Typing struct {
	reg Registry
}

func NewTyping(reg Registry) *Typing {
	return &Typing{reg: reg}
}

func (t *Typing) Forward(fromID, toID string) {
	t.reg.SendToUser(toID, Event{Event: EventTyping, Data: TypingPayload{From: fromID}})
}
