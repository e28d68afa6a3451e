// Package notify publishes build lifecycle events to NATS when the
// configuration opts in. Publishing is best-effort: failures are logged and
// never fail a build.
package notify

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/sitegen/internal/config"
)

// BuildEvent is the published payload.
type BuildEvent struct {
	BuildID    string    `json:"build_id"`
	SiteName   string    `json:"site_name"`
	Status     string    `json:"status"` // started|succeeded|failed
	Pages      int       `json:"pages,omitempty"`
	DurationMS int64     `json:"duration_ms,omitempty"`
	Error      string    `json:"error,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher sends build events to a NATS subject.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

// NewPublisher connects to the configured NATS server. A nil notifications
// config returns (nil, nil): publishing is entirely optional.
func NewPublisher(cfg *config.NotificationsConfig) (*Publisher, error) {
	if cfg == nil || cfg.NATSURL == "" {
		return nil, nil
	}
	conn, err := nats.Connect(cfg.NATSURL,
		nats.Name("sitegen"),
		nats.MaxReconnects(3),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	slog.Info("Build notifications enabled", "url", cfg.NATSURL, "subject", cfg.Subject)
	return &Publisher{conn: conn, subject: cfg.Subject}, nil
}

// Publish sends one event. A nil publisher is a no-op so callers never need
// to branch on whether notifications are configured.
func (p *Publisher) Publish(event BuildEvent) {
	if p == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	data, err := json.Marshal(event)
	if err != nil {
		slog.Warn("Failed to marshal build event", "error", err)
		return
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		slog.Warn("Failed to publish build event", "subject", p.subject, "error", err)
	}
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}
