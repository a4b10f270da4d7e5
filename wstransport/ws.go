// Package wstransport carries bridge traffic over a WebSocket link to
// the platform. It registers itself under the name "websocket".
package wstransport

import (
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/arcaid/arcaid-go/bridge"
	"github.com/arcaid/arcaid-go/log"
)

const defaultHandshakeTimeout = 10 * time.Second

var errNotStarted = errors.New("wstransport: not connected")

func init() {
	_ = bridge.RegisterTransport("websocket", func(cfg map[string]any) (bridge.Transport, error) {
		c := Config{}
		if v, ok := cfg["url"].(string); ok {
			c.URL = v
		}
		switch v := cfg["handshakeTimeout"].(type) {
		case time.Duration:
			c.HandshakeTimeout = v
		case int:
			c.HandshakeTimeout = time.Duration(v) * time.Millisecond
		case float64:
			c.HandshakeTimeout = time.Duration(v) * time.Millisecond
		}
		if c.URL == "" {
			return nil, errors.New("wstransport: url is required")
		}
		return New(c), nil
	})
}

// Config holds the dial parameters.
type Config struct {
	URL              string
	HandshakeTimeout time.Duration
}

// WSTransport is a bridge.Transport over a single WebSocket connection.
// A dedicated read loop delivers inbound frames to the handler in
// arrival order.
type WSTransport struct {
	cfg Config

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
	origin    string
}

// New creates an unconnected transport; Start dials.
func New(cfg Config) *WSTransport {
	return &WSTransport{cfg: cfg}
}

// Start dials the platform endpoint and launches the read loop.
func (t *WSTransport) Start(opt bridge.TransportOption) error {
	if opt.Handler == nil {
		return errors.New("wstransport: handler is required")
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.connected {
		return errors.New("wstransport: already started")
	}

	u, err := url.Parse(t.cfg.URL)
	if err != nil {
		return fmt.Errorf("wstransport: parse url: %w", err)
	}

	timeout := t.cfg.HandshakeTimeout
	if timeout <= 0 {
		timeout = defaultHandshakeTimeout
	}
	dialer := websocket.Dialer{HandshakeTimeout: timeout}
	conn, _, err := dialer.Dial(t.cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("wstransport: dial %s: %w", t.cfg.URL, err)
	}

	t.conn = conn
	t.connected = true
	t.origin = u.Host
	go t.readLoop(conn, opt.Handler)

	log.Info().Str("url", t.cfg.URL).Msg("platform link established")
	return nil
}

// readLoop delivers frames one at a time until the connection dies.
func (t *WSTransport) readLoop(conn *websocket.Conn, handler bridge.InboundReceiver) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			t.mu.Lock()
			if t.conn == conn {
				t.connected = false
			}
			t.mu.Unlock()
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn().Err(err).Msg("platform link lost")
			}
			return
		}
		if herr := handler.OnRecvTransportMsg(&bridge.TransportDelivery{Raw: raw, Origin: t.origin}); herr != nil {
			log.Warn().Err(herr).Msg("inbound frame rejected")
		}
	}
}

// Send writes one text frame. Concurrent senders serialize on the
// connection mutex, as the underlying connection allows one writer.
func (t *WSTransport) Send(raw []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.connected || t.conn == nil {
		return errNotStarted
	}
	return t.conn.WriteMessage(websocket.TextMessage, raw)
}

// Stop closes the connection, ending the read loop.
func (t *WSTransport) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	t.connected = false
	return err
}

// Connected reports whether the link is usable.
func (t *WSTransport) Connected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.connected
}
