package core

import (
	"sync"

	"github.com/rs/zerolog"
)

// Coordinator drives call rooms through ringing, active and ended and
// fans lifecycle notices out to reachable participants. It holds no
// state of its own beyond the mutex that serializes room mutations:
// accept/reject/end for the same room apply in arrival order. A single
// lock over all rooms is a known scalability limit.
type Coordinator struct {
	mu       sync.Mutex
	presence *Presence
	rooms    *Rooms
	log      *zerolog.Logger
}

// NewCoordinator builds a coordinator over the shared stores.
func NewCoordinator(presence *Presence, rooms *Rooms, logger *zerolog.Logger) *Coordinator {
	return &Coordinator{
		presence: presence,
		rooms:    rooms,
		log:      logger,
	}
}

// Invite rings each reachable callee for roomID. The room is created in
// Ringing state on first use; the caller and every reachable callee
// become participants, offline callees are skipped silently.
func (c *Coordinator) Invite(caller string, callees []string, roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.rooms.Ensure(roomID)
	room.add(caller)

	for _, callee := range callees {
		peer, ok := c.presence.Resolve(callee)
		if !ok {
			c.log.Debug().Str("callee", callee).Str("room", roomID).Msg("callee offline, skipping invite")
			continue
		}
		room.add(callee)
		c.deliver(callee, peer, &Event{Kind: EventIncomingCall, From: caller, Room: roomID})
		c.log.Info().Str("caller", caller).Str("callee", callee).Str("room", roomID).Msg("call invite sent")
	}
}

// Accept notifies every other participant that user joined and moves
// the room to Active on first acceptance. Unknown rooms are a no-op: an
// accept racing a concurrent end must not surface an error.
func (c *Coordinator) Accept(user, roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, ok := c.rooms.Get(roomID)
	if !ok {
		c.log.Debug().Str("user", user).Str("room", roomID).Msg("accept for unknown room")
		return
	}

	c.fanout(room, user, &Event{Kind: EventPeerJoined, From: user, Room: roomID})
	if room.State == RoomRinging {
		room.State = RoomActive
	}
	c.log.Info().Str("user", user).Str("room", roomID).Msg("call accepted")
}

// Reject removes user from the room and tells the remaining reachable
// participants. Rejection never ends the call for the others; the room
// dies only when the last participant is gone.
func (c *Coordinator) Reject(user, roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, ok := c.rooms.Get(roomID)
	if !ok {
		c.log.Debug().Str("user", user).Str("room", roomID).Msg("reject for unknown room")
		return
	}

	room.remove(user)
	c.fanout(room, user, &Event{Kind: EventCallRejected, From: user, Room: roomID})
	c.log.Info().Str("user", user).Str("room", roomID).Msg("call rejected")

	if room.empty() {
		c.rooms.Remove(roomID)
	}
}

// End notifies every reachable participant, including whoever
// triggered it, and destroys the room.
func (c *Coordinator) End(roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, ok := c.rooms.Get(roomID)
	if !ok {
		c.log.Debug().Str("room", roomID).Msg("end for unknown room")
		return
	}

	ev := &Event{Kind: EventCallEnded, Room: roomID}
	for _, participant := range room.Participants() {
		peer, reachable := c.presence.Resolve(participant)
		if !reachable {
			continue
		}
		c.deliver(participant, peer, ev)
	}
	c.rooms.Remove(roomID)
	c.log.Info().Str("room", roomID).Msg("call ended")
}

// ScreenShare broadcasts a share-started or share-stopped notice to
// every other participant. No state transition.
func (c *Coordinator) ScreenShare(user, roomID string, started bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, ok := c.rooms.Get(roomID)
	if !ok {
		return
	}

	kind := EventScreenShareStopped
	if started {
		kind = EventScreenShareStarted
	}
	c.fanout(room, user, &Event{Kind: kind, From: user, Room: roomID})
}

// DropParticipant reconciles rooms after user's connection vanished:
// an implicit reject while ringing, an implicit leave while active. The
// remaining participants are notified and emptied rooms are destroyed.
func (c *Coordinator) DropParticipant(user string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, roomID := range c.rooms.WithParticipant(user) {
		room, ok := c.rooms.Get(roomID)
		if !ok {
			continue
		}
		kind := EventCallRejected
		if room.State == RoomActive {
			kind = EventPeerLeft
		}
		room.remove(user)
		c.fanout(room, user, &Event{Kind: kind, From: user, Room: roomID})
		c.log.Info().Str("user", user).Str("room", roomID).Str("state", room.State.String()).Msg("participant dropped from room")
		if room.empty() {
			c.rooms.Remove(roomID)
		}
	}
}

// fanout delivers ev to every reachable participant except from.
func (c *Coordinator) fanout(room *Room, from string, ev *Event) {
	for _, participant := range room.Others(from) {
		peer, ok := c.presence.Resolve(participant)
		if !ok {
			c.log.Debug().Str("user", participant).Str("room", room.ID).Msg("participant offline, skipping notice")
			continue
		}
		c.deliver(participant, peer, ev)
	}
}

func (c *Coordinator) deliver(user string, peer *Peer, ev *Event) {
	if !peer.TrySend(ev) {
		c.log.Warn().Str("user", user).Msg("event dropped, peer backlogged")
	}
}
