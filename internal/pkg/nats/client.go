package nats

import (
	"fmt"

	"github.com/nats-io/nats.go"
)

// MsgHandler processes a raw message received on a subject
type MsgHandler func(subject string, data []byte)

// Client represents a NATS client for publishing and subscribing to messages
type Client struct {
	conn *nats.Conn
}

// NewClient creates a new NATS client
func NewClient(url string) (*Client, error) {
	conn, err := nats.Connect(url,
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS server: %w", err)
	}

	return &Client{conn: conn}, nil
}

// NewClientFromConn wraps an existing NATS connection; used by tests
func NewClientFromConn(conn *nats.Conn) *Client {
	return &Client{conn: conn}
}

// GetConn returns the underlying NATS connection
func (c *Client) GetConn() *nats.Conn {
	return c.conn
}

// IsConnected reports whether the connection is established
func (c *Client) IsConnected() bool {
	return c.conn != nil && c.conn.IsConnected()
}

// Publish sends a message to the specified subject
func (c *Client) Publish(subject string, data []byte) error {
	err := c.conn.Publish(subject, data)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

// Subscribe subscribes to a subject. The returned handle must be closed
// by the caller; an unclosed subscription keeps consuming bandwidth and
// invoking stale callbacks.
func (c *Client) Subscribe(subject string, handler MsgHandler) (*Subscription, error) {
	sub, err := c.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Subject, msg.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to subject %s: %w", subject, err)
	}

	return &Subscription{sub: sub}, nil
}

// Close closes the NATS connection
func (c *Client) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
}

// Subscription is a live subject subscription with mandatory closing semantics
type Subscription struct {
	sub *nats.Subscription
}

// Unsubscribe cancels the subscription. Safe to call more than once.
func (s *Subscription) Unsubscribe() error {
	if s.sub == nil || !s.sub.IsValid() {
		return nil
	}
	return s.sub.Unsubscribe()
}

// IsValid reports whether the subscription is still active
func (s *Subscription) IsValid() bool {
	return s.sub != nil && s.sub.IsValid()
}
