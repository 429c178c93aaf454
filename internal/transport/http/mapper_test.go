package http

import (
	"encoding/json"
	"testing"

	"github.com/mkarpenko/callbridge/internal/core"
	"github.com/mkarpenko/callbridge/internal/proto"
)

func mustCommand(t *testing.T, msgType, data string) *core.Command {
	t.Helper()
	cmd, protoErr, err := inboundToCommand(proto.Inbound{Type: msgType, Data: json.RawMessage(data)})
	if err != nil {
		t.Fatalf("unexpected mapping error: %v", err)
	}
	if protoErr != nil {
		t.Fatalf("unexpected protocol error: %+v", protoErr)
	}
	return cmd
}

func mustProtoError(t *testing.T, msgType, data string) *proto.Error {
	t.Helper()
	cmd, protoErr, err := inboundToCommand(proto.Inbound{Type: msgType, Data: json.RawMessage(data)})
	if err != nil {
		t.Fatalf("unexpected mapping error: %v", err)
	}
	if protoErr == nil {
		t.Fatalf("expected protocol error, got command %+v", cmd)
	}
	return protoErr
}

func TestMapRegister(t *testing.T) {
	cmd := mustCommand(t, proto.InboundTypeRegister, `{"user":"alice","token":"t"}`)
	if cmd.Kind != core.CommandRegister || cmd.User != "alice" || cmd.Token != "t" {
		t.Fatalf("unexpected command: %+v", cmd)
	}

	perr := mustProtoError(t, proto.InboundTypeRegister, `{}`)
	if perr.Code != core.ErrCodeBadRequest {
		t.Fatalf("unexpected error: %+v", perr)
	}
}

func TestMapRegisterProtocolVersion(t *testing.T) {
	// Current version and omitted version are both accepted.
	mustCommand(t, proto.InboundTypeRegister, `{"user":"alice","protocol":1}`)
	mustCommand(t, proto.InboundTypeRegister, `{"user":"alice"}`)

	perr := mustProtoError(t, proto.InboundTypeRegister, `{"user":"alice","protocol":99}`)
	if perr.Code != core.ErrCodeBadRequest {
		t.Fatalf("unexpected error: %+v", perr)
	}
}

func TestMapInviteCall(t *testing.T) {
	cmd := mustCommand(t, proto.InboundTypeInviteCall, `{"callees":["bob","carol"],"roomId":"r1"}`)
	if cmd.Kind != core.CommandInviteCall || len(cmd.Callees) != 2 || cmd.Room != "r1" {
		t.Fatalf("unexpected command: %+v", cmd)
	}

	mustProtoError(t, proto.InboundTypeInviteCall, `{"callees":["bob"]}`)
	mustProtoError(t, proto.InboundTypeInviteCall, `{"roomId":"r1"}`)
}

func TestMapCallActions(t *testing.T) {
	cases := map[string]core.CommandKind{
		proto.InboundTypeAcceptCall:       core.CommandAcceptCall,
		proto.InboundTypeRejectCall:       core.CommandRejectCall,
		proto.InboundTypeEndCall:          core.CommandEndCall,
		proto.InboundTypeScreenShareStart: core.CommandScreenShareStart,
		proto.InboundTypeScreenShareStop:  core.CommandScreenShareStop,
	}
	for msgType, kind := range cases {
		cmd := mustCommand(t, msgType, `{"roomId":"r1"}`)
		if cmd.Kind != kind || cmd.Room != "r1" {
			t.Fatalf("%s mapped to %+v", msgType, cmd)
		}
		mustProtoError(t, msgType, `{}`)
	}
}

func TestMapSignalKeepsPayloadVerbatim(t *testing.T) {
	payload := `{"sdp":"v=0\r\no=- 42 2 IN IP4 127.0.0.1"}`
	cmd := mustCommand(t, proto.InboundTypeOffer, `{"to":"bob","payload":`+payload+`}`)
	if cmd.Kind != core.CommandOffer || cmd.Target != "bob" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	if string(cmd.Payload) != payload {
		t.Fatalf("payload altered: %s", cmd.Payload)
	}

	roomCmd := mustCommand(t, proto.InboundTypeICECandidate, `{"roomId":"r1","payload":{"candidate":"..."}}`)
	if roomCmd.Kind != core.CommandICECandidate || roomCmd.Room != "r1" {
		t.Fatalf("unexpected command: %+v", roomCmd)
	}

	mustProtoError(t, proto.InboundTypeAnswer, `{"payload":{}}`)
	mustProtoError(t, proto.InboundTypeOffer, `{"to":"bob"}`)
}

func TestMapDirectRelays(t *testing.T) {
	msg := mustCommand(t, proto.InboundTypeSendMessage, `{"to":"bob","text":"hi"}`)
	if msg.Kind != core.CommandSendMessage || msg.Target != "bob" || msg.Text != "hi" {
		t.Fatalf("unexpected command: %+v", msg)
	}

	note := mustCommand(t, proto.InboundTypeSendNotification, `{"to":"bob","text":"ping"}`)
	if note.Kind != core.CommandSendNotification {
		t.Fatalf("unexpected command: %+v", note)
	}

	voice := mustCommand(t, proto.InboundTypeSendVoiceMsg, `{"to":"bob","audioUrl":"u"}`)
	if voice.Kind != core.CommandSendVoiceMessage || voice.AudioURL != "u" {
		t.Fatalf("unexpected command: %+v", voice)
	}
	mustProtoError(t, proto.InboundTypeSendVoiceMsg, `{"to":"bob"}`)
}

func TestMapUnknownType(t *testing.T) {
	perr := mustProtoError(t, "bogus", `{}`)
	if perr.Code != "invalid_message" {
		t.Fatalf("unexpected error: %+v", perr)
	}
}

func TestOutboundFromEvent(t *testing.T) {
	out := outboundFromEvent(&core.Event{Kind: core.EventIncomingCall, From: "alice", Room: "r1"})
	if out.Type != proto.OutboundTypeEvent || out.Event != proto.EventIncomingCall {
		t.Fatalf("unexpected outbound: %+v", out)
	}
	data, ok := out.Data.(proto.EventCallData)
	if !ok || data.From != "alice" || data.Room != "r1" {
		t.Fatalf("unexpected data: %+v", out.Data)
	}

	errOut := outboundFromEvent(&core.Event{
		Kind:  core.EventError,
		Error: &core.CoreError{Code: core.ErrCodeNotRegistered, Message: "register first"},
	})
	if errOut.Type != proto.OutboundTypeError || errOut.Error.Code != core.ErrCodeNotRegistered {
		t.Fatalf("unexpected outbound: %+v", errOut)
	}

	sig := outboundFromEvent(&core.Event{
		Kind:    core.EventAnswer,
		From:    "bob",
		Payload: json.RawMessage(`{"sdp":"x"}`),
	})
	sigData, ok := sig.Data.(proto.EventSignalData)
	if !ok || string(sigData.Blob) != `{"sdp":"x"}` {
		t.Fatalf("unexpected signal data: %+v", sig.Data)
	}
}
