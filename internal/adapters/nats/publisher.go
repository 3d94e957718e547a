package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/campusradius/internal/core/domain"
)

// SubjectPrefix is prepended to the campus ID of every check event.
const SubjectPrefix = "eligibility.checked."

// Publisher implements ports.EventPublisher on core NATS. Events are
// fire-and-forget; nothing is persisted.
type Publisher struct {
	conn *nats.Conn
}

// NewPublisher connects to NATS at url.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &Publisher{conn: conn}, nil
}

// NewPublisherWithConn wraps an existing connection.
func NewPublisherWithConn(conn *nats.Conn) *Publisher {
	return &Publisher{conn: conn}
}

// Subject returns the subject a check against campusID is published on.
// Checks without a campus go to "custom".
func Subject(campusID string) string {
	if campusID == "" {
		campusID = "custom"
	}
	return SubjectPrefix + campusID
}

// PublishCheck publishes a check event.
func (p *Publisher) PublishCheck(ctx context.Context, ev *domain.CheckEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal check event: %w", err)
	}
	return p.conn.Publish(Subject(ev.CampusID), data)
}

// IsConnected reports the connection state.
func (p *Publisher) IsConnected() bool {
	return p.conn != nil && p.conn.IsConnected()
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn opens a plain NATS connection that keeps reconnecting.
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
