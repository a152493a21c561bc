// Package realtime carries the two push channels: a raw per-symbol price
// socket and the STOMP chat channel.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"assetdeck/internal/domain"
)

// SocketState is the price socket lifecycle state.
type SocketState int32

const (
	SocketConnecting SocketState = iota
	SocketOpen
	SocketClosed
)

func (s SocketState) String() string {
	switch s {
	case SocketConnecting:
		return "CONNECTING"
	case SocketOpen:
		return "OPEN"
	case SocketClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// quoteSchemaJSON is the wire contract for a price update. Payloads are
// validated against it before decoding so a malformed push fails closed
// instead of propagating null fields into view state.
const quoteSchemaJSON = `{
	"type": "object",
	"required": ["symbol", "price"],
	"properties": {
		"symbol": {"type": "string", "minLength": 1},
		"korean_name": {"type": "string"},
		"english_name": {"type": "string"},
		"price": {"type": ["number", "string"]},
		"changeRate": {"type": ["number", "string"]}
	}
}`

var quoteSchema = jsonschema.MustCompileString("quote.schema.json", quoteSchemaJSON)

// decodeQuote validates and decodes one price-update payload.
func decodeQuote(data []byte) (domain.Quote, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.Quote{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := quoteSchema.Validate(raw); err != nil {
		return domain.Quote{}, fmt.Errorf("schema violation: %w", err)
	}
	var q domain.Quote
	if err := json.Unmarshal(data, &q); err != nil {
		return domain.Quote{}, err
	}
	return q, nil
}

// QuoteHandler receives decoded price updates.
type QuoteHandler func(domain.Quote)

// PriceSocket is a dedicated connection to one symbol's market-data topic.
// There is no automatic reconnect: the caller owns the lifecycle and must
// call SubscribeLive again to recover from a drop.
type PriceSocket struct {
	symbol    string
	conn      *websocket.Conn
	state     atomic.Int32
	closeOnce sync.Once
}

// SubscribeLive opens a price socket for symbol against the market-data
// websocket base URL and delivers decoded quotes to onQuote. Malformed
// payloads are logged and dropped; they never close the connection.
func SubscribeLive(ctx context.Context, wsBase, symbol string, onQuote QuoteHandler) (*PriceSocket, error) {
	s := &PriceSocket{symbol: symbol}
	s.state.Store(int32(SocketConnecting))

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, wsBase+"/topic/market-data/"+symbol, nil)
	if err != nil {
		s.state.Store(int32(SocketClosed))
		return nil, fmt.Errorf("price socket dial failed for %s: %w", symbol, err)
	}

	s.conn = conn
	s.state.Store(int32(SocketOpen))
	slog.Info("Price socket connected", "symbol", symbol)

	go s.readLoop(onQuote)
	return s, nil
}

func (s *PriceSocket) readLoop(onQuote QuoteHandler) {
	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if s.State() != SocketClosed {
				slog.Warn("Price socket read error", "symbol", s.symbol, "err", err)
			}
			s.Close()
			return
		}

		q, err := decodeQuote(msg)
		if err != nil {
			slog.Warn("Malformed price payload dropped", "symbol", s.symbol, "err", err)
			continue
		}
		onQuote(q)
	}
}

// State returns the current lifecycle state.
func (s *PriceSocket) State() SocketState {
	return SocketState(s.state.Load())
}

// Close terminates the connection. Idempotent.
func (s *PriceSocket) Close() {
	s.closeOnce.Do(func() {
		s.state.Store(int32(SocketClosed))
		if s.conn != nil {
			s.conn.Close()
		}
		slog.Info("Price socket closed", "symbol", s.symbol)
	})
}
