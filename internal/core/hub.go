package core

import "github.com/rs/zerolog"

// TokenVerifier validates a credential supplied with a register command
// and returns the user identity it vouches for. Verification itself is
// an external concern; the hub only consumes the verdict.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Hub owns connection lifecycle. Each registered peer gets one
// goroutine draining its command channel, so a single connection's
// events apply strictly in order while connections run concurrently.
// On channel close the hub reconciles presence and room membership.
type Hub struct {
	presence *Presence
	rooms    *Rooms
	coord    *Coordinator
	relay    *Relay
	verifier TokenVerifier
	handlers map[CommandKind]func(*session, *Command)
	log      *zerolog.Logger
}

// session is the hub's per-connection view: the handle plus the
// identity it registered under, if any.
type session struct {
	peer *Peer
	user string
}

// NewHub creates the hub and the stores it coordinates. verifier may be
// nil, in which case register commands are trusted as-is.
func NewHub(verifier TokenVerifier, logger *zerolog.Logger) *Hub {
	presence := NewPresence()
	rooms := NewRooms()
	h := &Hub{
		presence: presence,
		rooms:    rooms,
		coord:    NewCoordinator(presence, rooms, logger),
		relay:    NewRelay(presence, rooms, logger),
		verifier: verifier,
		log:      logger,
	}
	h.handlers = map[CommandKind]func(*session, *Command){
		CommandRegister:         h.handleRegister,
		CommandInviteCall:       h.handleInvite,
		CommandAcceptCall:       h.handleAccept,
		CommandRejectCall:       h.handleReject,
		CommandEndCall:          h.handleEnd,
		CommandScreenShareStart: h.handleScreenShareStart,
		CommandScreenShareStop:  h.handleScreenShareStop,
		CommandOffer:            h.handleOffer,
		CommandAnswer:           h.handleAnswer,
		CommandICECandidate:     h.handleICECandidate,
		CommandSendMessage:      h.handleSendMessage,
		CommandSendVoiceMessage: h.handleSendVoiceMessage,
		CommandSendNotification: h.handleSendNotification,
	}
	return h
}

// Presence exposes the registry for read-only inspection.
func (h *Hub) Presence() *Presence { return h.presence }

// Rooms exposes the room store for read-only inspection.
func (h *Hub) Rooms() *Rooms { return h.rooms }

// RegisterClient attaches a connected peer and starts its command
// loop. The peer is anonymous until its register command arrives.
func (h *Hub) RegisterClient(peer *Peer) {
	h.log.Debug().Str("conn", peer.ID).Msg("client connected")
	go h.serve(peer)
}

// UnregisterClient detaches a disconnected peer. Closing the command
// channel drives the loop into disconnect cleanup.
func (h *Hub) UnregisterClient(peer *Peer) {
	close(peer.Commands)
}

func (h *Hub) serve(peer *Peer) {
	s := &session{peer: peer}
	for cmd := range peer.Commands {
		h.dispatch(s, cmd)
	}
	h.disconnect(peer)
}

func (h *Hub) dispatch(s *session, cmd *Command) {
	handler, ok := h.handlers[cmd.Kind]
	if !ok {
		h.log.Warn().Int("kind", int(cmd.Kind)).Msg("no handler for command")
		return
	}
	if cmd.Kind != CommandRegister && s.user == "" {
		s.peer.TrySend(&Event{
			Kind:  EventError,
			Error: coreError(ErrCodeNotRegistered, "register before signaling"),
		})
		return
	}
	handler(s, cmd)
}

// disconnect is the one canonical cleanup rule: remove presence by
// handle, then drop the identity from every room it participated in
// with notification to the remaining participants. A superseded handle
// maps to nothing and triggers no room cleanup.
func (h *Hub) disconnect(peer *Peer) {
	user, ok := h.presence.Unregister(peer)
	if !ok {
		h.log.Debug().Str("conn", peer.ID).Msg("anonymous or superseded connection closed")
		return
	}
	h.log.Info().Str("user", user).Str("conn", peer.ID).Msg("user disconnected")
	h.coord.DropParticipant(user)
	h.broadcastActiveUsers()
}

func (h *Hub) handleRegister(s *session, cmd *Command) {
	user := cmd.User
	if h.verifier != nil {
		verified, err := h.verifier.Verify(cmd.Token)
		if err != nil {
			h.log.Warn().Err(err).Str("conn", s.peer.ID).Msg("register rejected")
			s.peer.TrySend(&Event{
				Kind:  EventError,
				Error: coreError(ErrCodeUnauthorized, "invalid token"),
			})
			return
		}
		user = verified
	}
	if user == "" {
		s.peer.TrySend(&Event{
			Kind:  EventError,
			Error: coreError(ErrCodeBadRequest, "user is required"),
		})
		return
	}

	s.user = user
	h.presence.Register(user, s.peer)
	h.log.Info().Str("user", user).Str("conn", s.peer.ID).Msg("user registered")
	h.broadcastActiveUsers()
}

func (h *Hub) handleInvite(s *session, cmd *Command) {
	h.coord.Invite(s.user, cmd.Callees, cmd.Room)
}

func (h *Hub) handleAccept(s *session, cmd *Command) {
	h.coord.Accept(s.user, cmd.Room)
}

func (h *Hub) handleReject(s *session, cmd *Command) {
	h.coord.Reject(s.user, cmd.Room)
}

func (h *Hub) handleEnd(s *session, cmd *Command) {
	h.coord.End(cmd.Room)
}

func (h *Hub) handleScreenShareStart(s *session, cmd *Command) {
	h.coord.ScreenShare(s.user, cmd.Room, true)
}

func (h *Hub) handleScreenShareStop(s *session, cmd *Command) {
	h.coord.ScreenShare(s.user, cmd.Room, false)
}

func (h *Hub) handleOffer(s *session, cmd *Command) {
	h.relay.Forward(EventOffer, s.user, cmd.Target, cmd.Room, cmd.Payload)
}

func (h *Hub) handleAnswer(s *session, cmd *Command) {
	h.relay.Forward(EventAnswer, s.user, cmd.Target, cmd.Room, cmd.Payload)
}

func (h *Hub) handleICECandidate(s *session, cmd *Command) {
	h.relay.Forward(EventICECandidate, s.user, cmd.Target, cmd.Room, cmd.Payload)
}

func (h *Hub) handleSendMessage(s *session, cmd *Command) {
	h.relay.Notify(EventMessage, s.user, cmd.Target, cmd.Text)
}

func (h *Hub) handleSendVoiceMessage(s *session, cmd *Command) {
	h.relay.VoiceMessage(s.user, cmd.Target, cmd.AudioURL)
}

func (h *Hub) handleSendNotification(s *session, cmd *Command) {
	h.relay.Notify(EventNotification, s.user, cmd.Target, cmd.Text)
}

func (h *Hub) broadcastActiveUsers() {
	h.presence.Broadcast(&Event{Kind: EventActiveUsers, Users: h.presence.Snapshot()})
}
