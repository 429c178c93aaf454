package core

import "sync"

// RoomState tracks where a call is in its lifecycle.
type RoomState int

const (
	// RoomRinging is the initial state while callees are being invited.
	RoomRinging RoomState = iota
	// RoomActive is entered on the first acceptance.
	RoomActive
	// RoomEnded is terminal; an ended room is removed from the store.
	RoomEnded
)

func (s RoomState) String() string {
	switch s {
	case RoomRinging:
		return "ringing"
	case RoomActive:
		return "active"
	case RoomEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Room is one call session: its participants and lifecycle state.
// The room id is caller-supplied and opaque; uniqueness across
// unrelated calls is a precondition on the caller, not enforced here.
// The participant set carries its own lock because the relay reads it
// without going through the coordinator's serialization.
type Room struct {
	ID    string
	State RoomState

	mu           sync.RWMutex
	participants map[string]struct{}
}

func newRoom(id string) *Room {
	return &Room{
		ID:           id,
		State:        RoomRinging,
		participants: make(map[string]struct{}),
	}
}

func (r *Room) add(user string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.participants[user] = struct{}{}
}

func (r *Room) remove(user string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.participants, user)
}

func (r *Room) empty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.participants) == 0
}

// Has reports whether user is a participant.
func (r *Room) Has(user string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.participants[user]
	return ok
}

// Participants returns the current participant identities.
func (r *Room) Participants() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.participants))
	for user := range r.participants {
		out = append(out, user)
	}
	return out
}

// Others returns every participant except the given user.
func (r *Room) Others(user string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.participants))
	for participant := range r.participants {
		if participant != user {
			out = append(out, participant)
		}
	}
	return out
}

// Rooms owns every live call room, keyed by the caller-supplied id.
// A room exists only while it has participants (after first
// population); the coordinator serializes compound mutations on top.
type Rooms struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewRooms constructs an empty store.
func NewRooms() *Rooms {
	return &Rooms{rooms: make(map[string]*Room)}
}

// Ensure returns the room for id, creating it in Ringing state if
// needed.
func (rs *Rooms) Ensure(id string) *Room {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if room, ok := rs.rooms[id]; ok {
		return room
	}
	room := newRoom(id)
	rs.rooms[id] = room
	return room
}

// Get returns the room for id if it exists.
func (rs *Rooms) Get(id string) (*Room, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	room, ok := rs.rooms[id]
	return room, ok
}

// Remove tears the room down.
func (rs *Rooms) Remove(id string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if room, ok := rs.rooms[id]; ok {
		room.State = RoomEnded
		delete(rs.rooms, id)
	}
}

// WithParticipant returns ids of every room the user participates in.
func (rs *Rooms) WithParticipant(user string) []string {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	var out []string
	for id, room := range rs.rooms {
		if room.Has(user) {
			out = append(out, id)
		}
	}
	return out
}

// Len reports how many rooms are live.
func (rs *Rooms) Len() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return len(rs.rooms)
}
