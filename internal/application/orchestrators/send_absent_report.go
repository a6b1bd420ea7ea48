package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	emailAdapter "diaconisas/internal/adapters/email"
	"diaconisas/internal/domain/report"
)

// ErrNoRecipients is returned when the report has nobody to go to.
var ErrNoRecipients = errors.New("at least one recipient is required")

// EmailSender defines the delivery interface needed by SendAbsentReport.
type EmailSender interface {
	Send(ctx context.Context, req emailAdapter.SendRequest) (emailAdapter.SendResult, error)
}

// SendAbsentReportInput carries the report and its recipients.
type SendAbsentReportInput struct {
	Report report.Absent
	To     []string
}

// SendAbsentReportDeps holds dependencies for SendAbsentReport.
type SendAbsentReportDeps struct {
	Sender     EmailSender
	RenderHTML func(markdown string) (string, error)
}

// ExecuteSendAbsentReport emails the printable absent-members report.
// PRE: To holds at least one valid address
// POST: One message carrying the HTML and Markdown renditions is handed to the sender
func ExecuteSendAbsentReport(ctx context.Context, input SendAbsentReportInput, deps SendAbsentReportDeps) (emailAdapter.SendResult, error) {
	to := make([]string, 0, len(input.To))
	for _, addr := range input.To {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}
		if _, err := mail.ParseAddress(addr); err != nil {
			return emailAdapter.SendResult{}, fmt.Errorf("invalid recipient %q: %w", addr, err)
		}
		to = append(to, addr)
	}
	if len(to) == 0 {
		return emailAdapter.SendResult{}, ErrNoRecipients
	}

	md := input.Report.Markdown()
	body, err := deps.RenderHTML(md)
	if err != nil {
		return emailAdapter.SendResult{}, err
	}

	res, err := deps.Sender.Send(ctx, emailAdapter.SendRequest{
		To:      to,
		Subject: input.Report.Title(),
		HTML:    body,
		Text:    md,
	})
	if err != nil {
		return emailAdapter.SendResult{}, err
	}

	slog.Info("report_event", "event", "absent_report_sent",
		"recipients", len(to),
		"absent", len(input.Report.Members),
		"message_id", res.MessageID,
	)
	return res, nil
}
