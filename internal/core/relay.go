package core

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

// Relay forwards negotiation payloads and relayed chat traffic between
// resolved peers. It owns no state: every delivery resolves the target
// through the presence registry at send time, and an offline target is
// a silent skip, never an error. Payloads are opaque blobs; the relay
// must not look inside SDP or ICE contents.
type Relay struct {
	presence *Presence
	rooms    *Rooms
	log      *zerolog.Logger
}

// NewRelay builds a relay over the shared stores.
func NewRelay(presence *Presence, rooms *Rooms, logger *zerolog.Logger) *Relay {
	return &Relay{presence: presence, rooms: rooms, log: logger}
}

// Forward routes an offer, answer or ICE candidate. A non-empty target
// addresses a single user; otherwise the payload fans out to every
// other participant of roomID, each resolved independently, so partial
// delivery is expected.
func (r *Relay) Forward(kind EventKind, from, target, roomID string, payload json.RawMessage) {
	ev := &Event{Kind: kind, From: from, Room: roomID, Payload: payload}
	if target != "" {
		r.send(target, ev)
		return
	}

	room, ok := r.rooms.Get(roomID)
	if !ok {
		r.log.Debug().Str("room", roomID).Msg("signal for unknown room dropped")
		return
	}
	for _, participant := range room.Others(from) {
		r.send(participant, ev)
	}
}

// Notify relays a chat message or notification to a single user.
func (r *Relay) Notify(kind EventKind, from, to, text string) {
	r.send(to, &Event{Kind: kind, From: from, Text: text})
}

// VoiceMessage relays a voice message link to a single user.
func (r *Relay) VoiceMessage(from, to, audioURL string) {
	r.send(to, &Event{Kind: EventVoiceMessage, From: from, AudioURL: audioURL})
}

func (r *Relay) send(to string, ev *Event) {
	peer, ok := r.presence.Resolve(to)
	if !ok {
		r.log.Debug().Str("user", to).Msg("recipient offline, dropping relay")
		return
	}
	if !peer.TrySend(ev) {
		r.log.Warn().Str("user", to).Msg("relay dropped, peer backlogged")
	}
}
