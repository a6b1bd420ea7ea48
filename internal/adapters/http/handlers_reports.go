package web

import (
	"net/http"

	"github.com/gorilla/mux"

	"diaconisas/internal/adapters/markdown"
	"diaconisas/internal/adapters/wire"
	"diaconisas/internal/application/orchestrators"
	"diaconisas/internal/application/projections"
	"diaconisas/internal/domain/period"
	"diaconisas/internal/domain/person"
)

// kindFilter parses ?tipo= for reports. Empty and "all" select every kind.
func kindFilter(label string) (person.Kind, error) {
	if label == "" || label == "all" {
		return person.KindUnknown, nil
	}
	return person.ParseKind(label)
}

func (s *Server) statisticsDeps() projections.GetPeriodStatisticsDeps {
	return projections.GetPeriodStatisticsDeps{
		MemberStore:     s.stores.MemberStore,
		FriendStore:     s.stores.FriendStore,
		AttendanceStore: s.stores.AttendanceStore,
	}
}

// handleDateRangeReport handles GET /api/reports/by-date-range?start&end&tipo
func (s *Server) handleDateRangeReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kind, err := kindFilter(q.Get("tipo"))
	if err != nil {
		fail(w, err)
		return
	}
	detail, err := projections.QueryGetDateRangeReport(r.Context(), projections.GetDateRangeReportQuery{
		Start: q.Get("start"),
		End:   q.Get("end"),
		Kind:  kind,
	}, projections.GetDateRangeReportDeps{AttendanceStore: s.stores.AttendanceStore})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.FromDetail(detail))
}

// handleIndividualReport handles GET /api/reports/individual/{id}?tipo&start&end
func (s *Server) handleIndividualReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kind, err := person.ParseKind(q.Get("tipo"))
	if err != nil {
		fail(w, err)
		return
	}
	result, err := projections.QueryGetIndividualReport(r.Context(), projections.GetIndividualReportQuery{
		Kind:     kind,
		PersonID: mux.Vars(r)["id"],
		Start:    q.Get("start"),
		End:      q.Get("end"),
	}, projections.GetIndividualReportDeps{AttendanceStore: s.stores.AttendanceStore})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.IndividualReport{
		PersonID:   result.PersonID,
		Tipo:       result.Kind,
		Records:    wire.FromRecords(result.Records),
		Statistics: wire.FromSummary(result.Summary),
	})
}

// handleCollectiveReport handles GET /api/reports/collective?start&end
func (s *Server) handleCollectiveReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c, err := projections.QueryGetCollectiveReport(r.Context(), projections.GetCollectiveReportQuery{
		Start: q.Get("start"),
		End:   q.Get("end"),
	}, projections.GetCollectiveReportDeps{AttendanceStore: s.stores.AttendanceStore})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.FromCollective(c))
}

// handleStatistics handles GET /api/reports/statistics?start&end
func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p, err := period.New(q.Get("start"), q.Get("end"))
	if err != nil {
		fail(w, err)
		return
	}
	st, err := projections.QueryGetPeriodStatistics(r.Context(), projections.GetPeriodStatisticsQuery{
		Start: p.StartDate(),
		End:   p.EndDate(),
	}, s.statisticsDeps())
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.FromStatistics(p, st))
}

// handleVisitorsOfDay handles GET /api/reports/visitors-of-day?fecha
func (s *Server) handleVisitorsOfDay(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetVisitorsOfDay(r.Context(), projections.GetVisitorsOfDayQuery{
		Date: r.URL.Query().Get("fecha"),
	}, projections.GetVisitorsOfDayDeps{
		AttendanceStore: s.stores.AttendanceStore,
		FriendStore:     s.stores.FriendStore,
		Clock:           s.opts.Clock,
	})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.FromVisitors(result.Date, result.Visitors))
}

// handleAbsentMembers handles GET /api/reports/absent-members?start&end&format=json|markdown|html
func (s *Server) handleAbsentMembers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	switch format {
	case "", "json", "markdown", "html":
	default:
		writeError(w, http.StatusBadRequest, "format must be json, markdown or html")
		return
	}

	absent, err := projections.QueryGetAbsentMembers(r.Context(), projections.GetAbsentMembersQuery{
		Start: q.Get("start"),
		End:   q.Get("end"),
	}, s.statisticsDeps())
	if err != nil {
		fail(w, err)
		return
	}

	switch format {
	case "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = w.Write([]byte(absent.Markdown()))
	case "html":
		body, err := markdown.ToHTML(absent.Markdown())
		if err != nil {
			internalError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(markdown.Document(absent.Title(), body)))
	default:
		writeJSON(w, http.StatusOK, wire.FromAbsent(absent))
	}
}

// handleSendAbsentMembers handles POST /api/reports/absent-members/send
func (s *Server) handleSendAbsentMembers(w http.ResponseWriter, r *http.Request) {
	var in wire.SendAbsentReportInput
	if err := decodeValid(r, &in); err != nil {
		fail(w, err)
		return
	}

	absent, err := projections.QueryGetAbsentMembers(r.Context(), projections.GetAbsentMembersQuery{
		Start: in.Start,
		End:   in.End,
	}, s.statisticsDeps())
	if err != nil {
		fail(w, err)
		return
	}

	res, err := orchestrators.ExecuteSendAbsentReport(r.Context(), orchestrators.SendAbsentReportInput{
		Report: absent,
		To:     in.To,
	}, orchestrators.SendAbsentReportDeps{
		Sender:     s.opts.EmailSender,
		RenderHTML: markdown.ToHTML,
	})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.SendAbsentReportResult{MessageID: res.MessageID, Absent: len(absent.Members)})
}
