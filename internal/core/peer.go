package core

// Peer is the core's handle on one live transport connection. The core
// never owns the underlying session: it pushes events at the handle and
// forgets it on disconnect. A peer is anonymous until a register
// command binds it to a user identity.
type Peer struct {
	ID       string
	Commands chan *Command
	Events   chan *Event
}

// NewPeer constructs a peer with initialized channels.
func NewPeer(id string) *Peer {
	return &Peer{
		ID:       id,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 16),
	}
}

// TrySend queues an event without blocking. Returns false when the
// peer's buffer is full and the event was dropped; a backlogged
// recipient must never stall the sender.
func (p *Peer) TrySend(ev *Event) bool {
	select {
	case p.Events <- ev:
		return true
	default:
		return false
	}
}
