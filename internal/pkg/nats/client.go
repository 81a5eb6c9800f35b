package nats

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Client is the publish-only NATS connection the engine uses to hand
// lifecycle events to the notification dispatcher. Publishes are
// fire-and-forget; delivery is the dispatcher's problem.
type Client struct {
	conn *nats.Conn
}

// NewClient connects to the NATS server with indefinite reconnects, so a
// broker restart never takes the engine down with it.
func NewClient(url string) (*Client, error) {
	conn, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS server: %w", err)
	}

	return &Client{conn: conn}, nil
}

// IsConnected reports whether the connection is currently up
func (c *Client) IsConnected() bool {
	return c.conn != nil && c.conn.IsConnected()
}

// Publish sends a raw message to the subject
func (c *Client) Publish(subject string, data []byte) error {
	if err := c.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

// PublishJSON marshals the event and publishes it to the subject
func (c *Client) PublishJSON(subject string, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event for %s: %w", subject, err)
	}

	return c.Publish(subject, payload)
}

// Close flushes buffered publishes and closes the connection
func (c *Client) Close() {
	if c.conn != nil {
		_ = c.conn.Flush()
		c.conn.Close()
	}
}
