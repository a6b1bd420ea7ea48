package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"diaconisas/internal/adapters/wire"
	"diaconisas/internal/domain/attendance"
	"diaconisas/internal/domain/friend"
	"diaconisas/internal/domain/member"
	"diaconisas/internal/domain/person"
	"diaconisas/internal/domain/report"
)

// Login exchanges credentials for a token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var tok wire.Token
	err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, wire.Credentials{Username: username, Password: password}, &tok, false)
	if err != nil {
		return "", err
	}
	c.SetToken(tok.AccessToken)
	return tok.AccessToken, nil
}

// ListMembers returns the full member roster.
func (c *Client) ListMembers(ctx context.Context) ([]member.Member, error) {
	var out []wire.Member
	if err := c.get(ctx, "/api/members", nil, &out); err != nil {
		return nil, err
	}
	return wire.Members(out), nil
}

// ListFriends returns every friend (visitor).
func (c *Client) ListFriends(ctx context.Context) ([]friend.Friend, error) {
	var out []wire.Friend
	if err := c.get(ctx, "/api/visitors", nil, &out); err != nil {
		return nil, err
	}
	return wire.Friends(out), nil
}

// AttendanceByDate returns every record of one date.
func (c *Client) AttendanceByDate(ctx context.Context, date string) ([]attendance.Record, error) {
	var out []wire.AttendanceRecord
	if err := c.get(ctx, "/api/attendance", url.Values{"fecha": {date}}, &out); err != nil {
		return nil, err
	}
	return wire.Records(out), nil
}

// AttendanceToday returns every record of the server's current date.
func (c *Client) AttendanceToday(ctx context.Context) ([]attendance.Record, error) {
	var out []wire.AttendanceRecord
	if err := c.get(ctx, "/api/attendance/today", nil, &out); err != nil {
		return nil, err
	}
	return wire.Records(out), nil
}

// RecordAttendance upserts one mark. It bypasses the breaker: every write of a commit is sent.
func (c *Client) RecordAttendance(ctx context.Context, r attendance.Record) (attendance.Record, error) {
	presente := r.Present
	in := wire.AttendanceInput{
		Tipo:       r.Kind.String(),
		PersonID:   r.PersonID,
		PersonName: r.PersonName,
		Fecha:      r.Date,
		Presente:   &presente,
	}
	var out wire.AttendanceRecord
	if err := c.do(ctx, http.MethodPost, "/api/attendance", nil, in, &out, true); err != nil {
		return attendance.Record{}, err
	}
	return out.Domain(), nil
}

// DateRangeReport fetches every record in [start, end], optionally of one kind.
func (c *Client) DateRangeReport(ctx context.Context, start, end string, kind person.Kind) (report.Detail, error) {
	q := url.Values{"start": {start}, "end": {end}}
	if kind.Valid() {
		q.Set("tipo", kind.String())
	}
	var out wire.DateRangeReport
	if err := c.get(ctx, "/api/reports/by-date-range", q, &out); err != nil {
		return report.Detail{}, err
	}
	return out.Domain(), nil
}

// CollectiveReport fetches the per-date aggregation of a period.
func (c *Client) CollectiveReport(ctx context.Context, start, end string) (wire.CollectiveReport, error) {
	var out wire.CollectiveReport
	err := c.get(ctx, "/api/reports/collective", url.Values{"start": {start}, "end": {end}}, &out)
	return out, err
}

// Dashboard fetches the headline counts.
func (c *Client) Dashboard(ctx context.Context) (wire.Dashboard, error) {
	var out wire.Dashboard
	err := c.get(ctx, "/api/dashboard/stats", nil, &out)
	return out, err
}

// VisitorsOfDay fetches the friends present on date with their origin.
func (c *Client) VisitorsOfDay(ctx context.Context, date string) (wire.VisitorsOfDay, error) {
	var out wire.VisitorsOfDay
	err := c.get(ctx, "/api/reports/visitors-of-day", url.Values{"fecha": {date}}, &out)
	return out, err
}
