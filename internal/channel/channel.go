// Package channel binds one client process (cashier terminal or customer
// display) to the relay. It owns the transport exclusively: other
// components see inbound messages through a callback and connectivity as a
// boolean, nothing else.
package channel

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"shoppos/internal/cartsync"
)

// Channel is a session-key-scoped relay connection with an explicit
// open/close lifecycle. It implements cartsync.Sender.
type Channel struct {
	relayURL  string
	logger    *slog.Logger
	onMessage func(cartsync.Message)

	mu        sync.Mutex
	key       string
	conn      *websocket.Conn
	connected bool
}

func New(relayURL string, logger *slog.Logger) *Channel {
	return &Channel{relayURL: relayURL, logger: logger}
}

// OnMessage registers the inbound handler, normally Engine.Apply wrapped.
// Must be set before Open.
func (c *Channel) OnMessage(fn func(cartsync.Message)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onMessage = fn
}

// Open connects to the relay under the given session key. An empty key is
// not an error: the channel stays inert and every Send is dropped. Opening
// with a different key tears the previous connection down first.
func (c *Channel) Open(ctx context.Context, sessionKey string) error {
	c.mu.Lock()
	if c.conn != nil {
		c.teardownLocked()
	}
	c.key = sessionKey
	c.mu.Unlock()

	if sessionKey == "" {
		return nil
	}

	endpoint, err := relayEndpoint(c.relayURL, sessionKey)
	if err != nil {
		return fmt.Errorf("relay endpoint: %w", err)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return fmt.Errorf("dial relay: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()
	c.logger.Info("relay channel connected", slog.String("session", sessionKey))

	go c.readLoop(conn)
	return nil
}

// readLoop forwards inbound frames verbatim to the handler until the
// connection is severed. Frames that do not decode are skipped, not
// treated as errors.
func (c *Channel) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			if c.conn == conn {
				c.connected = false
				c.conn = nil
				c.logger.Info("relay channel disconnected", slog.String("session", c.key))
			}
			c.mu.Unlock()
			return
		}

		var msg cartsync.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Debug("skipping undecodable relay frame", slog.String("error", err.Error()))
			continue
		}

		c.mu.Lock()
		handler := c.onMessage
		c.mu.Unlock()
		if handler != nil {
			handler(msg)
		}
	}
}

// Send writes a message to the relay. Messages sent while disconnected are
// silently dropped; this channel is a display convenience, the record of
// truth lives in the POS API.
func (c *Channel) Send(msg cartsync.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	return c.conn.WriteJSON(msg)
}

// IsConnected reports channel connectivity.
func (c *Channel) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Close severs the connection. Safe to call multiple times and on a
// never-opened channel.
func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teardownLocked()
	return nil
}

func (c *Channel) teardownLocked() {
	if c.conn == nil {
		return
	}
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), writeControlDeadline())
	c.conn.Close()
	c.conn = nil
	c.connected = false
}

func writeControlDeadline() time.Time {
	return time.Now().Add(time.Second)
}

// relayEndpoint builds the ws URL for a session key, accepting http(s) or
// ws(s) base URLs.
func relayEndpoint(base, sessionKey string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported relay scheme %q", u.Scheme)
	}
	if !strings.HasSuffix(u.Path, "/ws") {
		u.Path = strings.TrimSuffix(u.Path, "/") + "/ws"
	}
	q := u.Query()
	q.Set("userId", sessionKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
