package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ProtocolVersion is the wire protocol revision this server speaks.
// Clients may announce theirs on register; a mismatch is rejected.
const ProtocolVersion = 1

const (
	InboundTypeRegister         = "register"
	InboundTypeInviteCall       = "invite-call"
	InboundTypeAcceptCall       = "accept-call"
	InboundTypeRejectCall       = "reject-call"
	InboundTypeEndCall          = "end-call"
	InboundTypeOffer            = "offer"
	InboundTypeAnswer           = "answer"
	InboundTypeICECandidate     = "ice-candidate"
	InboundTypeScreenShareStart = "screen-share-start"
	InboundTypeScreenShareStop  = "screen-share-stop"
	InboundTypeSendMessage      = "send-message"
	InboundTypeSendVoiceMsg     = "send-voice-message"
	InboundTypeSendNotification = "send-notification"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"
)

// RegisterData binds the connection to a user identity. Token is
// required when the server runs with auth enabled. Protocol is
// optional; when set it must match ProtocolVersion.
type RegisterData struct {
	User     string `json:"user"`
	Token    string `json:"token,omitempty"`
	Protocol int    `json:"protocol,omitempty"`
}

// InviteCallData starts ringing the callees in the given room. The
// room id is chosen by the caller and must be unique per call session.
type InviteCallData struct {
	Callees []string `json:"callees"`
	Room    string   `json:"roomId"`
}

// CallActionData accepts, rejects or screen-shares within a room.
type CallActionData struct {
	Room string `json:"roomId"`
}

// SignalData carries an opaque negotiation payload. Exactly one of To
// (point-to-point) or Room (fan out to the other participants) should
// be set. Blob is passed through verbatim.
type SignalData struct {
	To   string          `json:"to,omitempty"`
	Room string          `json:"roomId,omitempty"`
	Blob json.RawMessage `json:"payload"`
}

// DirectData relays a chat message or notification to one user.
type DirectData struct {
	To   string `json:"to"`
	Text string `json:"text"`
}

// VoiceMsgData relays a voice message link to one user.
type VoiceMsgData struct {
	To       string `json:"to"`
	AudioURL string `json:"audioUrl"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

const (
	EventActiveUsers        = "active-users"
	EventIncomingCall       = "incoming-call"
	EventPeerJoined         = "peer-joined"
	EventPeerLeft           = "peer-left"
	EventCallRejected       = "call-rejected"
	EventCallEnded          = "call-ended"
	EventScreenShared       = "screen-shared"
	EventScreenShareStopped = "screen-share-stopped"
	EventOffer              = "offer"
	EventAnswer             = "answer"
	EventICECandidate       = "ice-candidate"
	EventMessage            = "message"
	EventVoiceMessage       = "voice-message"
	EventNotification       = "notification"
)

// EventActiveUsersData is the presence snapshot broadcast.
type EventActiveUsersData struct {
	Users []string `json:"users"`
}

// EventCallData describes a call lifecycle notice.
type EventCallData struct {
	From string `json:"from,omitempty"`
	Room string `json:"roomId"`
}

// EventSignalData delivers a forwarded negotiation payload.
type EventSignalData struct {
	From string          `json:"from"`
	Room string          `json:"roomId,omitempty"`
	Blob json.RawMessage `json:"payload"`
}

// EventDirectData delivers a relayed chat message or notification.
type EventDirectData struct {
	From string `json:"from"`
	Text string `json:"text"`
}

// EventVoiceMsgData delivers a relayed voice message link.
type EventVoiceMsgData struct {
	From     string `json:"from"`
	AudioURL string `json:"audioUrl"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
