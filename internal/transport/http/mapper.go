package http

import (
	"encoding/json"

	"github.com/mkarpenko/callbridge/internal/core"
	"github.com/mkarpenko/callbridge/internal/proto"
)

// inboundToCommand validates an inbound envelope and maps it to a core
// command. A malformed payload yields a protocol error for the client
// and never reaches the core; an unreadable envelope is a hard error
// that tears the connection down.
func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeRegister:
		var reg proto.RegisterData
		if err := json.Unmarshal(inbound.Data, &reg); err != nil {
			return nil, nil, err
		}
		if reg.User == "" && reg.Token == "" {
			return nil, badRequest("user is required"), nil
		}
		if reg.Protocol != 0 && reg.Protocol != proto.ProtocolVersion {
			return nil, badRequest("unsupported protocol version"), nil
		}
		return &core.Command{
			Kind:  core.CommandRegister,
			User:  reg.User,
			Token: reg.Token,
		}, nil, nil

	case proto.InboundTypeInviteCall:
		var invite proto.InviteCallData
		if err := json.Unmarshal(inbound.Data, &invite); err != nil {
			return nil, nil, err
		}
		if invite.Room == "" {
			return nil, badRequest("roomId is required"), nil
		}
		if len(invite.Callees) == 0 {
			return nil, badRequest("callees is required"), nil
		}
		return &core.Command{
			Kind:    core.CommandInviteCall,
			Callees: invite.Callees,
			Room:    invite.Room,
		}, nil, nil

	case proto.InboundTypeAcceptCall, proto.InboundTypeRejectCall, proto.InboundTypeEndCall,
		proto.InboundTypeScreenShareStart, proto.InboundTypeScreenShareStop:
		var action proto.CallActionData
		if err := json.Unmarshal(inbound.Data, &action); err != nil {
			return nil, nil, err
		}
		if action.Room == "" {
			return nil, badRequest("roomId is required"), nil
		}
		return &core.Command{
			Kind: callActionKind(inbound.Type),
			Room: action.Room,
		}, nil, nil

	case proto.InboundTypeOffer, proto.InboundTypeAnswer, proto.InboundTypeICECandidate:
		var sig proto.SignalData
		if err := json.Unmarshal(inbound.Data, &sig); err != nil {
			return nil, nil, err
		}
		if sig.To == "" && sig.Room == "" {
			return nil, badRequest("to or roomId is required"), nil
		}
		if len(sig.Blob) == 0 {
			return nil, badRequest("payload is required"), nil
		}
		return &core.Command{
			Kind:    signalKind(inbound.Type),
			Target:  sig.To,
			Room:    sig.Room,
			Payload: sig.Blob,
		}, nil, nil

	case proto.InboundTypeSendMessage, proto.InboundTypeSendNotification:
		var direct proto.DirectData
		if err := json.Unmarshal(inbound.Data, &direct); err != nil {
			return nil, nil, err
		}
		if direct.To == "" {
			return nil, badRequest("to is required"), nil
		}
		kind := core.CommandSendMessage
		if inbound.Type == proto.InboundTypeSendNotification {
			kind = core.CommandSendNotification
		}
		return &core.Command{
			Kind:   kind,
			Target: direct.To,
			Text:   direct.Text,
		}, nil, nil

	case proto.InboundTypeSendVoiceMsg:
		var voice proto.VoiceMsgData
		if err := json.Unmarshal(inbound.Data, &voice); err != nil {
			return nil, nil, err
		}
		if voice.To == "" || voice.AudioURL == "" {
			return nil, badRequest("to and audioUrl are required"), nil
		}
		return &core.Command{
			Kind:     core.CommandSendVoiceMessage,
			Target:   voice.To,
			AudioURL: voice.AudioURL,
		}, nil, nil

	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}, nil
	}
}

func callActionKind(inboundType string) core.CommandKind {
	switch inboundType {
	case proto.InboundTypeAcceptCall:
		return core.CommandAcceptCall
	case proto.InboundTypeRejectCall:
		return core.CommandRejectCall
	case proto.InboundTypeScreenShareStart:
		return core.CommandScreenShareStart
	case proto.InboundTypeScreenShareStop:
		return core.CommandScreenShareStop
	default:
		return core.CommandEndCall
	}
}

func signalKind(inboundType string) core.CommandKind {
	switch inboundType {
	case proto.InboundTypeOffer:
		return core.CommandOffer
	case proto.InboundTypeAnswer:
		return core.CommandAnswer
	default:
		return core.CommandICECandidate
	}
}

func badRequest(msg string) *proto.Error {
	return &proto.Error{Code: core.ErrCodeBadRequest, Msg: msg}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventActiveUsers:
		return outboundEvent(proto.EventActiveUsers, proto.EventActiveUsersData{Users: event.Users})
	case core.EventIncomingCall:
		return outboundEvent(proto.EventIncomingCall, proto.EventCallData{From: event.From, Room: event.Room})
	case core.EventPeerJoined:
		return outboundEvent(proto.EventPeerJoined, proto.EventCallData{From: event.From, Room: event.Room})
	case core.EventPeerLeft:
		return outboundEvent(proto.EventPeerLeft, proto.EventCallData{From: event.From, Room: event.Room})
	case core.EventCallRejected:
		return outboundEvent(proto.EventCallRejected, proto.EventCallData{From: event.From, Room: event.Room})
	case core.EventCallEnded:
		return outboundEvent(proto.EventCallEnded, proto.EventCallData{Room: event.Room})
	case core.EventScreenShareStarted:
		return outboundEvent(proto.EventScreenShared, proto.EventCallData{From: event.From, Room: event.Room})
	case core.EventScreenShareStopped:
		return outboundEvent(proto.EventScreenShareStopped, proto.EventCallData{From: event.From, Room: event.Room})
	case core.EventOffer:
		return outboundEvent(proto.EventOffer, proto.EventSignalData{From: event.From, Room: event.Room, Blob: event.Payload})
	case core.EventAnswer:
		return outboundEvent(proto.EventAnswer, proto.EventSignalData{From: event.From, Room: event.Room, Blob: event.Payload})
	case core.EventICECandidate:
		return outboundEvent(proto.EventICECandidate, proto.EventSignalData{From: event.From, Room: event.Room, Blob: event.Payload})
	case core.EventMessage:
		return outboundEvent(proto.EventMessage, proto.EventDirectData{From: event.From, Text: event.Text})
	case core.EventNotification:
		return outboundEvent(proto.EventNotification, proto.EventDirectData{From: event.From, Text: event.Text})
	case core.EventVoiceMessage:
		return outboundEvent(proto.EventVoiceMessage, proto.EventVoiceMsgData{From: event.From, AudioURL: event.AudioURL})
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}

func outboundEvent(name string, data any) proto.Outbound {
	return proto.Outbound{Type: proto.OutboundTypeEvent, Event: name, Data: data}
}
