package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"assetdeck/internal/domain"
)

// ChannelState is the chat channel lifecycle state.
type ChannelState int32

const (
	ChannelDisconnected ChannelState = iota
	ChannelConnecting
	ChannelConnected
)

func (s ChannelState) String() string {
	switch s {
	case ChannelDisconnected:
		return "DISCONNECTED"
	case ChannelConnecting:
		return "CONNECTING"
	case ChannelConnected:
		return "CONNECTED"
	default:
		return "UNKNOWN"
	}
}

const (
	chatTopic       = "/topic/messages"
	chatDestination = "/app/message"
)

// outgoingMessage is the published envelope. Guest and Nickname are constant
// in the current design: no authenticated chat identity is wired through.
type outgoingMessage struct {
	Message  string  `json:"message"`
	Guest    bool    `json:"guest"`
	Nickname *string `json:"nickName"`
	SendAt   string  `json:"sendAt"`
}

// MessageHandler receives decoded chat messages.
type MessageHandler func(domain.ChatMessage)

// ChatChannel is a STOMP-over-websocket client for the broadcast chat topic.
// Reconnection is automatic with a fixed delay and is transparent to
// subscribers: after a reconnect, messages resume on the same registration
// without caller action.
type ChatChannel struct {
	url string

	mu       sync.RWMutex
	conn     *websocket.Conn
	state    ChannelState
	handlers map[int]MessageHandler
	nextID   int

	writeMu sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	ReconnectDelay   time.Duration
	Heartbeat        time.Duration
	HandshakeTimeout time.Duration

	now func() time.Time
}

// NewChatChannel creates a chat channel for the given websocket URL.
func NewChatChannel(url string) *ChatChannel {
	return &ChatChannel{
		url:              url,
		state:            ChannelDisconnected,
		handlers:         make(map[int]MessageHandler),
		ReconnectDelay:   5 * time.Second,
		Heartbeat:        4 * time.Second,
		HandshakeTimeout: 10 * time.Second,
		now:              time.Now,
	}
}

// OnMessage registers a handler for incoming chat messages and returns its
// removal function. Registrations survive reconnects.
func (c *ChatChannel) OnMessage(h MessageHandler) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.handlers[id] = h
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.handlers, id)
		c.mu.Unlock()
	}
}

// Activate starts the connection loop.
func (c *ChatChannel) Activate(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)
	c.wg.Add(1)
	go c.runLoop(ctx)
}

// Deactivate stops the channel and waits for its goroutines.
func (c *ChatChannel) Deactivate() {
	if c.cancel != nil {
		c.cancel()
	}
	c.closeConn()
	c.wg.Wait()
}

// State returns the current lifecycle state.
func (c *ChatChannel) State() ChannelState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *ChatChannel) setState(s ChannelState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *ChatChannel) runLoop(ctx context.Context) {
	defer c.wg.Done()

	for {
		select {
		case <-ctx.Done():
			c.setState(ChannelDisconnected)
			return
		default:
		}

		c.setState(ChannelConnecting)
		if err := c.connect(ctx); err != nil {
			slog.Warn("Chat channel connect failed", "err", err)
			c.setState(ChannelDisconnected)

			select {
			case <-ctx.Done():
				return
			case <-time.After(c.ReconnectDelay):
				continue
			}
		}

		c.readLoop(ctx)
		c.closeConn()
		c.setState(ChannelDisconnected)

		select {
		case <-ctx.Done():
			return
		case <-time.After(c.ReconnectDelay):
		}
	}
}

// connect dials, performs the STOMP handshake, and subscribes to the
// broadcast topic. Heartbeats are negotiated in both directions.
func (c *ChatChannel) connect(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: c.HandshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}

	hb := c.Heartbeat.Milliseconds()
	connectFrame := Frame{
		Command: cmdConnect,
		Headers: map[string]string{
			"accept-version": "1.2",
			"host":           "/",
			"heart-beat":     fmt.Sprintf("%d,%d", hb, hb),
		},
	}
	if err := conn.WriteMessage(websocket.TextMessage, connectFrame.Marshal()); err != nil {
		conn.Close()
		return fmt.Errorf("CONNECT write failed: %w", err)
	}

	conn.SetReadDeadline(time.Now().Add(c.HandshakeTimeout))
	reply, err := c.readFrame(conn)
	if err != nil {
		conn.Close()
		return fmt.Errorf("CONNECTED read failed: %w", err)
	}
	if reply.Command != cmdConnected {
		conn.Close()
		return fmt.Errorf("expected CONNECTED, got %s", reply.Command)
	}

	subscribeFrame := Frame{
		Command: cmdSubscribe,
		Headers: map[string]string{
			"id":          "sub-" + uuid.NewString(),
			"destination": chatTopic,
		},
	}
	if err := conn.WriteMessage(websocket.TextMessage, subscribeFrame.Marshal()); err != nil {
		conn.Close()
		return fmt.Errorf("SUBSCRIBE write failed: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.state = ChannelConnected
	c.mu.Unlock()

	go c.heartbeatLoop(ctx, conn)

	slog.Info("Chat channel connected", "topic", chatTopic)
	return nil
}

// readFrame reads websocket messages until a full STOMP frame arrives,
// skipping heartbeats.
func (c *ChatChannel) readFrame(conn *websocket.Conn) (*Frame, error) {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return nil, err
		}
		if IsHeartbeat(msg) {
			continue
		}
		return ParseFrame(msg)
	}
}

func (c *ChatChannel) readLoop(ctx context.Context) {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()
	if conn == nil {
		return
	}

	// Allow two missed incoming heartbeats plus slack before giving up.
	grace := 3 * c.Heartbeat

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		conn.SetReadDeadline(time.Now().Add(grace))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				slog.Warn("Chat channel read error", "err", err)
			}
			return
		}

		if IsHeartbeat(msg) {
			continue
		}

		frame, err := ParseFrame(msg)
		if err != nil {
			slog.Warn("Malformed STOMP frame dropped", "err", err)
			continue
		}

		switch frame.Command {
		case cmdMessage:
			c.dispatch(frame.Body)
		case cmdError:
			slog.Warn("STOMP error frame", "message", frame.Headers["message"], "body", string(frame.Body))
			return
		}
	}
}

// dispatch decodes a broadcast payload and fans it out. A single malformed
// message is logged and dropped so it cannot break the open connection.
func (c *ChatChannel) dispatch(body []byte) {
	var msg domain.ChatMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		slog.Warn("Malformed chat payload dropped", "err", err)
		return
	}

	c.mu.RLock()
	handlers := make([]MessageHandler, 0, len(c.handlers))
	for _, h := range c.handlers {
		handlers = append(handlers, h)
	}
	c.mu.RUnlock()

	for _, h := range handlers {
		h(msg)
	}
}

func (c *ChatChannel) heartbeatLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(c.Heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.RLock()
			current := c.conn
			c.mu.RUnlock()
			if current != conn {
				return // superseded by a reconnect
			}

			c.writeMu.Lock()
			err := conn.WriteMessage(websocket.TextMessage, heartbeatFrame)
			c.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

// Send publishes one chat message to the broadcast destination. When the
// channel is not Connected this is a no-op returning nil: callers must check
// State before assuming delivery.
func (c *ChatChannel) Send(text string) error {
	c.mu.RLock()
	conn := c.conn
	connected := c.state == ChannelConnected
	c.mu.RUnlock()

	if !connected || conn == nil {
		return nil
	}

	env := outgoingMessage{
		Message:  text,
		Guest:    true,
		Nickname: nil,
		SendAt:   c.now().UTC().Format(time.RFC3339),
	}
	body, err := json.Marshal(env)
	if err != nil {
		return err
	}

	frame := Frame{
		Command: cmdSend,
		Headers: map[string]string{
			"destination":  chatDestination,
			"content-type": "application/json",
		},
		Body: body,
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return conn.WriteMessage(websocket.TextMessage, frame.Marshal())
}

func (c *ChatChannel) closeConn() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}
