package core

import "testing"

type callFixture struct {
	presence *Presence
	rooms    *Rooms
	coord    *Coordinator
	peers    map[string]*Peer
}

func newCallFixture(users ...string) *callFixture {
	presence := NewPresence()
	rooms := NewRooms()
	f := &callFixture{
		presence: presence,
		rooms:    rooms,
		coord:    NewCoordinator(presence, rooms, testLogger()),
		peers:    make(map[string]*Peer),
	}
	for _, user := range users {
		peer := NewPeer("conn-" + user)
		f.peers[user] = peer
		presence.Register(user, peer)
	}
	return f
}

func TestInviteCreatesRingingRoomWithReachableCallees(t *testing.T) {
	f := newCallFixture("alice", "bob")

	f.coord.Invite("alice", []string{"bob", "carol"}, "r1")

	room, ok := f.rooms.Get("r1")
	if !ok {
		t.Fatalf("room r1 should exist")
	}
	if room.State != RoomRinging {
		t.Fatalf("state = %v, want ringing", room.State)
	}
	if !room.Has("alice") || !room.Has("bob") {
		t.Fatalf("participants = %v", room.Participants())
	}
	if room.Has("carol") {
		t.Fatalf("offline callee must not join the room")
	}

	ev := mustEvent(t, f.peers["bob"].Events, EventIncomingCall)
	if ev.From != "alice" || ev.Room != "r1" {
		t.Fatalf("unexpected incoming-call: %+v", ev)
	}
	mustNoEvent(t, f.peers["alice"].Events, EventIncomingCall)
}

func TestInviteOfflineOnlyCalleeLeavesCallerAlone(t *testing.T) {
	f := newCallFixture("alice")

	f.coord.Invite("alice", []string{"carol"}, "r2")

	room, ok := f.rooms.Get("r2")
	if !ok {
		t.Fatalf("room r2 should exist")
	}
	if got := room.Participants(); len(got) != 1 || got[0] != "alice" {
		t.Fatalf("participants = %v, want [alice]", got)
	}
}

func TestAcceptActivatesAndNotifiesOthers(t *testing.T) {
	f := newCallFixture("alice", "bob")
	f.coord.Invite("alice", []string{"bob"}, "r1")

	f.coord.Accept("bob", "r1")

	ev := mustEvent(t, f.peers["alice"].Events, EventPeerJoined)
	if ev.From != "bob" || ev.Room != "r1" {
		t.Fatalf("unexpected peer-joined: %+v", ev)
	}
	mustNoEvent(t, f.peers["bob"].Events, EventPeerJoined)

	room, _ := f.rooms.Get("r1")
	if room.State != RoomActive {
		t.Fatalf("state = %v, want active", room.State)
	}

	// Idempotent: a second accept keeps the room active.
	f.coord.Accept("bob", "r1")
	if room.State != RoomActive {
		t.Fatalf("state changed on repeat accept")
	}
}

func TestAcceptWithNoReachablePeersSendsNothing(t *testing.T) {
	f := newCallFixture("alice")
	f.coord.Invite("alice", []string{"carol"}, "r1")

	f.coord.Accept("alice", "r1")

	room, _ := f.rooms.Get("r1")
	if room.State != RoomActive {
		t.Fatalf("state = %v, want active", room.State)
	}
	if n := countEvents(f.peers["alice"].Events, EventPeerJoined); n != 0 {
		t.Fatalf("expected zero notices, got %d", n)
	}
}

func TestAcceptUnknownRoomIsNoOp(t *testing.T) {
	f := newCallFixture("alice")
	f.coord.Accept("alice", "ghost")
	if f.rooms.Len() != 0 {
		t.Fatalf("no room should have been created")
	}
}

func TestRejectNotifiesRemainingAndKeepsRoom(t *testing.T) {
	f := newCallFixture("alice", "bob", "carol")
	f.coord.Invite("alice", []string{"bob", "carol"}, "r1")

	f.coord.Reject("carol", "r1")

	room, ok := f.rooms.Get("r1")
	if !ok {
		t.Fatalf("room must survive while participants remain")
	}
	if room.Has("carol") {
		t.Fatalf("rejecting user should leave the room")
	}

	for _, user := range []string{"alice", "bob"} {
		ev := mustEvent(t, f.peers[user].Events, EventCallRejected)
		if ev.From != "carol" {
			t.Fatalf("unexpected call-rejected for %s: %+v", user, ev)
		}
	}
}

func TestRejectLastParticipantDestroysRoom(t *testing.T) {
	f := newCallFixture("alice")
	f.coord.Invite("alice", []string{"carol"}, "r1")

	f.coord.Reject("alice", "r1")
	if _, ok := f.rooms.Get("r1"); ok {
		t.Fatalf("room should be destroyed with its last participant")
	}

	// A stale end-call for the destroyed room is a silent no-op.
	f.coord.End("r1")
	if n := countEvents(f.peers["alice"].Events, EventCallEnded); n != 0 {
		t.Fatalf("end after destruction delivered %d notices", n)
	}
}

func TestEndNotifiesEveryoneAndDestroysRoom(t *testing.T) {
	f := newCallFixture("alice", "bob")
	f.coord.Invite("alice", []string{"bob"}, "r1")
	f.coord.Accept("bob", "r1")

	f.coord.End("r1")

	for _, user := range []string{"alice", "bob"} {
		ev := mustEvent(t, f.peers[user].Events, EventCallEnded)
		if ev.Room != "r1" {
			t.Fatalf("unexpected call-ended for %s: %+v", user, ev)
		}
	}
	if _, ok := f.rooms.Get("r1"); ok {
		t.Fatalf("room should be gone after end")
	}
}

func TestScreenShareSkipsOriginator(t *testing.T) {
	f := newCallFixture("alice", "bob", "carol")
	f.coord.Invite("alice", []string{"bob", "carol"}, "r1")

	f.coord.ScreenShare("bob", "r1", true)
	f.coord.ScreenShare("bob", "r1", false)

	for _, user := range []string{"alice", "carol"} {
		start := mustEvent(t, f.peers[user].Events, EventScreenShareStarted)
		if start.From != "bob" {
			t.Fatalf("unexpected screen-shared for %s: %+v", user, start)
		}
		mustEvent(t, f.peers[user].Events, EventScreenShareStopped)
	}
	mustNoEvent(t, f.peers["bob"].Events, EventScreenShareStarted)
	mustNoEvent(t, f.peers["bob"].Events, EventScreenShareStopped)
}

func TestScreenShareUnknownRoomIsNoOp(t *testing.T) {
	f := newCallFixture("alice")
	f.coord.ScreenShare("alice", "ghost", true)
	if n := countEvents(f.peers["alice"].Events, EventScreenShareStarted); n != 0 {
		t.Fatalf("got %d notices for a ghost room", n)
	}
}

func TestDropParticipantWhileRinging(t *testing.T) {
	f := newCallFixture("alice", "bob", "carol")
	f.coord.Invite("alice", []string{"bob", "carol"}, "r1")

	f.coord.DropParticipant("bob")

	room, ok := f.rooms.Get("r1")
	if !ok || room.Has("bob") {
		t.Fatalf("bob should be removed, room kept")
	}
	for _, user := range []string{"alice", "carol"} {
		if n := countEvents(f.peers[user].Events, EventCallRejected); n != 1 {
			t.Fatalf("%s saw %d reject notices, want exactly 1", user, n)
		}
	}
}

func TestDropParticipantWhileActiveSendsPeerLeft(t *testing.T) {
	f := newCallFixture("alice", "bob")
	f.coord.Invite("alice", []string{"bob"}, "r1")
	f.coord.Accept("bob", "r1")

	f.coord.DropParticipant("bob")

	ev := mustEvent(t, f.peers["alice"].Events, EventPeerLeft)
	if ev.From != "bob" || ev.Room != "r1" {
		t.Fatalf("unexpected peer-left: %+v", ev)
	}
}

func TestDropSoleParticipantDestroysRoom(t *testing.T) {
	f := newCallFixture("alice")
	f.coord.Invite("alice", []string{"carol"}, "r1")

	f.coord.DropParticipant("alice")
	if _, ok := f.rooms.Get("r1"); ok {
		t.Fatalf("room should be destroyed when its only participant drops")
	}
}
