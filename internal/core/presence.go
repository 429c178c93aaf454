package core

import (
	"sort"
	"sync"
)

// Presence is the source of truth for which users are reachable right
// now. It maps a stable user identity to the peer currently addressable
// under that identity.
type Presence struct {
	mu    sync.RWMutex
	users map[string]*Peer
}

// NewPresence constructs an empty registry.
func NewPresence() *Presence {
	return &Presence{users: make(map[string]*Peer)}
}

// Register binds user to peer, superseding any previous entry for the
// same identity. The superseded connection is not closed; it simply
// stops being addressable by this identity.
func (p *Presence) Register(user string, peer *Peer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.users[user] = peer
}

// Resolve returns the peer currently bound to user. Absence means the
// user is offline and is never an error.
func (p *Presence) Resolve(user string) (*Peer, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	peer, ok := p.users[user]
	return peer, ok
}

// Unregister removes the entry bound to the given peer and reports the
// identity that was removed. Disconnect events carry only the handle,
// so this scans; linear in active users which is fine at this scale.
// A superseded handle no longer appears in the map and removes nothing.
func (p *Presence) Unregister(peer *Peer) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for user, entry := range p.users {
		if entry == peer {
			delete(p.users, user)
			return user, true
		}
	}
	return "", false
}

// Snapshot returns the reachable identities, sorted for stable output.
func (p *Presence) Snapshot() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, 0, len(p.users))
	for user := range p.users {
		out = append(out, user)
	}
	sort.Strings(out)
	return out
}

// Broadcast sends an event to every registered peer. Slow consumers
// drop the event rather than block the caller.
func (p *Presence) Broadcast(ev *Event) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, peer := range p.users {
		peer.TrySend(ev)
	}
}
