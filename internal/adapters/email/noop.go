package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// NoopSender logs messages instead of delivering them.
// It is used when no provider key is configured.
type NoopSender struct {
	now func() time.Time
}

// NewNoopSender creates a new NoopSender.
func NewNoopSender() *NoopSender {
	return &NoopSender{now: time.Now}
}

// Send logs the message and reports it as accepted.
// POST: Nothing is delivered; the message id carries a "noop-" prefix
func (s *NoopSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	now := s.now()
	slog.Info("email_event", "event", "noop_send", "to", req.To, "subject", req.Subject)
	return SendResult{
		MessageID: fmt.Sprintf("noop-%d", now.UnixNano()),
		SentAt:    now,
	}, nil
}
