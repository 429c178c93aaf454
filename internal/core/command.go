package core

import "encoding/json"

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandRegister binds the connection to a user identity.
	CommandRegister CommandKind = iota
	// CommandInviteCall starts ringing a set of callees in a room.
	CommandInviteCall
	// CommandAcceptCall accepts an incoming call.
	CommandAcceptCall
	// CommandRejectCall rejects an incoming call.
	CommandRejectCall
	// CommandEndCall terminates a call for everyone in the room.
	CommandEndCall
	// CommandScreenShareStart announces screen sharing to the room.
	CommandScreenShareStart
	// CommandScreenShareStop announces the end of screen sharing.
	CommandScreenShareStop
	// CommandOffer forwards an SDP offer.
	CommandOffer
	// CommandAnswer forwards an SDP answer.
	CommandAnswer
	// CommandICECandidate forwards an ICE candidate.
	CommandICECandidate
	// CommandSendMessage relays a chat message to one user.
	CommandSendMessage
	// CommandSendVoiceMessage relays a voice message link to one user.
	CommandSendVoiceMessage
	// CommandSendNotification relays a notification to one user.
	CommandSendNotification
)

// Command represents an action requested by a client. Target addresses
// a single user; Room addresses every other room participant. Payload
// carries SDP/ICE blobs verbatim, never parsed by the core.
type Command struct {
	Kind     CommandKind
	User     string
	Token    string
	Callees  []string
	Target   string
	Room     string
	Payload  json.RawMessage
	Text     string
	AudioURL string
}
