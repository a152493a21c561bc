package realtime

import (
	"bytes"
	"testing"
)

func TestFrame_MarshalParseRoundtrip(t *testing.T) {
	frame := Frame{
		Command: cmdSend,
		Headers: map[string]string{
			"destination":  "/app/message",
			"content-type": "application/json",
		},
		Body: []byte(`{"message":"hello"}`),
	}

	parsed, err := ParseFrame(frame.Marshal())
	if err != nil {
		t.Fatalf("ParseFrame failed: %v", err)
	}

	if parsed.Command != cmdSend {
		t.Errorf("command = %q", parsed.Command)
	}
	if parsed.Headers["destination"] != "/app/message" {
		t.Errorf("destination = %q", parsed.Headers["destination"])
	}
	if !bytes.Equal(parsed.Body, frame.Body) {
		t.Errorf("body = %q", parsed.Body)
	}
}

func TestFrame_MarshalIsNULTerminated(t *testing.T) {
	frame := Frame{Command: cmdConnect, Headers: map[string]string{"accept-version": "1.2"}}
	out := frame.Marshal()
	if out[len(out)-1] != 0 {
		t.Error("frame must end with NUL")
	}
}

func TestParseFrame_Connected(t *testing.T) {
	frame, err := ParseFrame([]byte("CONNECTED\nversion:1.2\nheart-beat:4000,4000\n\n\x00"))
	if err != nil {
		t.Fatalf("ParseFrame failed: %v", err)
	}
	if frame.Command != cmdConnected {
		t.Errorf("command = %q", frame.Command)
	}
	if frame.Headers["heart-beat"] != "4000,4000" {
		t.Errorf("heart-beat = %q", frame.Headers["heart-beat"])
	}
}

func TestParseFrame_FirstHeaderOccurrenceWins(t *testing.T) {
	frame, err := ParseFrame([]byte("MESSAGE\nfoo:first\nfoo:second\n\nbody\x00"))
	if err != nil {
		t.Fatal(err)
	}
	if frame.Headers["foo"] != "first" {
		t.Errorf("foo = %q, want first occurrence", frame.Headers["foo"])
	}
}

func TestParseFrame_RejectsGarbage(t *testing.T) {
	if _, err := ParseFrame([]byte("no header terminator")); err == nil {
		t.Error("expected error for missing terminator")
	}
}

func TestIsHeartbeat(t *testing.T) {
	if !IsHeartbeat([]byte("\n")) {
		t.Error("bare LF is a heartbeat")
	}
	if !IsHeartbeat([]byte("\r\n")) {
		t.Error("CRLF is a heartbeat")
	}
	if IsHeartbeat([]byte("MESSAGE\n\n\x00")) {
		t.Error("a frame is not a heartbeat")
	}
}
