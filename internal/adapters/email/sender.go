package email

import (
	"context"
	"time"
)

// SendRequest is one message to deliver.
type SendRequest struct {
	To      []string
	From    string // empty uses the sender's configured address
	Subject string
	HTML    string
	Text    string // plain-text alternative, optional
}

// SendResult is the provider's acknowledgement.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// Sender delivers email through an external provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}

// New returns a Resend-backed sender, or a NoopSender when apiKey is empty.
func New(apiKey, from string) Sender {
	if apiKey == "" {
		return NewNoopSender()
	}
	return NewResendSender(apiKey, from)
}
