package core

import "encoding/json"

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventActiveUsers carries the current presence snapshot.
	EventActiveUsers EventKind = iota
	// EventIncomingCall notifies a callee of a ringing call.
	EventIncomingCall
	// EventPeerJoined notifies participants that someone accepted.
	EventPeerJoined
	// EventPeerLeft notifies participants that someone left an active call.
	EventPeerLeft
	// EventCallRejected notifies participants that someone rejected.
	EventCallRejected
	// EventCallEnded notifies participants that the call is over.
	EventCallEnded
	// EventScreenShareStarted notifies the room about a new screen share.
	EventScreenShareStarted
	// EventScreenShareStopped notifies the room a screen share ended.
	EventScreenShareStopped
	// EventOffer delivers a forwarded SDP offer.
	EventOffer
	// EventAnswer delivers a forwarded SDP answer.
	EventAnswer
	// EventICECandidate delivers a forwarded ICE candidate.
	EventICECandidate
	// EventMessage delivers a relayed chat message.
	EventMessage
	// EventVoiceMessage delivers a relayed voice message link.
	EventVoiceMessage
	// EventNotification delivers a relayed notification.
	EventNotification
	// EventError notifies the client about a protocol or domain error.
	EventError
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind     EventKind
	From     string
	Room     string
	Users    []string
	Payload  json.RawMessage
	Text     string
	AudioURL string
	Error    *CoreError
}
