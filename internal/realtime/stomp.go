package realtime

import (
	"bytes"
	"fmt"
	"sort"
)

// STOMP frame commands used by the chat channel.
const (
	cmdConnect   = "CONNECT"
	cmdConnected = "CONNECTED"
	cmdSubscribe = "SUBSCRIBE"
	cmdSend      = "SEND"
	cmdMessage   = "MESSAGE"
	cmdError     = "ERROR"
)

// heartbeatFrame is the bare end-of-line a STOMP party sends as a heartbeat.
var heartbeatFrame = []byte("\n")

// Frame is one STOMP 1.2 frame. Header escape sequences are not implemented:
// the chat backend only ever emits plain header values.
type Frame struct {
	Command string
	Headers map[string]string
	Body    []byte
}

// Marshal encodes the frame with NUL termination. Headers are written in
// sorted key order so the encoding is deterministic.
func (f *Frame) Marshal() []byte {
	var b bytes.Buffer
	b.WriteString(f.Command)
	b.WriteByte('\n')

	keys := make([]string, 0, len(f.Headers))
	for k := range f.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(f.Headers[k])
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.Write(f.Body)
	b.WriteByte(0)
	return b.Bytes()
}

// IsHeartbeat reports whether data is a heartbeat rather than a frame.
func IsHeartbeat(data []byte) bool {
	return len(bytes.TrimRight(data, "\r\n")) == 0
}

// ParseFrame decodes one STOMP frame. Heartbeats must be filtered out by the
// caller first (see IsHeartbeat).
func ParseFrame(data []byte) (*Frame, error) {
	data = bytes.TrimRight(data, "\x00")

	headerEnd := bytes.Index(data, []byte("\n\n"))
	if headerEnd < 0 {
		return nil, fmt.Errorf("stomp: no header terminator in frame")
	}
	head := data[:headerEnd]
	body := data[headerEnd+2:]

	lines := bytes.Split(head, []byte("\n"))
	command := string(bytes.TrimRight(lines[0], "\r"))
	if command == "" {
		return nil, fmt.Errorf("stomp: empty command")
	}

	headers := make(map[string]string, len(lines)-1)
	for _, line := range lines[1:] {
		line = bytes.TrimRight(line, "\r")
		if len(line) == 0 {
			continue
		}
		sep := bytes.IndexByte(line, ':')
		if sep < 0 {
			return nil, fmt.Errorf("stomp: malformed header line %q", line)
		}
		key := string(line[:sep])
		// First occurrence wins, per the STOMP spec.
		if _, ok := headers[key]; !ok {
			headers[key] = string(line[sep+1:])
		}
	}

	return &Frame{Command: command, Headers: headers, Body: body}, nil
}
