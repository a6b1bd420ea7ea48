package email

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewPicksNoopWithoutKey(t *testing.T) {
	if _, ok := New("", "a@b.c").(*NoopSender); !ok {
		t.Error("New(\"\") should return a NoopSender")
	}
	if _, ok := New("re_test", "a@b.c").(*ResendSender); !ok {
		t.Error("New(key) should return a ResendSender")
	}
}

func TestNoopSenderSend(t *testing.T) {
	at := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	s := &NoopSender{now: func() time.Time { return at }}

	res, err := s.Send(context.Background(), SendRequest{To: []string{"x@y.z"}, Subject: "hi"})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if !strings.HasPrefix(res.MessageID, "noop-") {
		t.Errorf("MessageID = %q", res.MessageID)
	}
	if !res.SentAt.Equal(at) {
		t.Errorf("SentAt = %v, want %v", res.SentAt, at)
	}
}

func TestResendSenderRejectsNoRecipients(t *testing.T) {
	s := NewResendSender("re_test", "a@b.c")
	if _, err := s.Send(context.Background(), SendRequest{Subject: "x"}); !errors.Is(err, ErrNoRecipients) {
		t.Errorf("Send() error = %v, want ErrNoRecipients", err)
	}
}
