package web

import (
	"net/http"

	"github.com/gorilla/mux"

	"diaconisas/internal/adapters/wire"
	"diaconisas/internal/application/orchestrators"
	"diaconisas/internal/application/projections"
	"diaconisas/internal/domain/person"
)

// handleGetAttendance handles GET /api/attendance?fecha=
func (s *Server) handleGetAttendance(w http.ResponseWriter, r *http.Request) {
	s.attendanceOfDay(w, r, r.URL.Query().Get("fecha"))
}

// handleGetAttendanceToday handles GET /api/attendance/today
func (s *Server) handleGetAttendanceToday(w http.ResponseWriter, r *http.Request) {
	s.attendanceOfDay(w, r, "")
}

func (s *Server) attendanceOfDay(w http.ResponseWriter, r *http.Request, date string) {
	result, err := projections.QueryGetAttendanceByDate(r.Context(), projections.GetAttendanceByDateQuery{Date: date}, projections.GetAttendanceByDateDeps{
		AttendanceStore: s.stores.AttendanceStore,
		Clock:           s.opts.Clock,
	})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.FromRecords(result.Records))
}

// handleRecordAttendance handles POST /api/attendance
func (s *Server) handleRecordAttendance(w http.ResponseWriter, r *http.Request) {
	var in wire.AttendanceInput
	if err := decodeValid(r, &in); err != nil {
		fail(w, err)
		return
	}
	kind, err := person.ParseKind(in.Tipo)
	if err != nil {
		fail(w, err)
		return
	}

	rec, err := orchestrators.ExecuteRecordAttendance(r.Context(), orchestrators.RecordAttendanceInput{
		Kind:       kind,
		PersonID:   in.PersonID,
		PersonName: in.PersonName,
		Date:       in.Fecha,
		Present:    *in.Presente,
	}, orchestrators.RecordAttendanceDeps{
		AttendanceStore: s.stores.AttendanceStore,
	})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.FromRecord(rec))
}

// handleGetPersonAttendance handles GET /api/attendance/person/{id}?tipo=
func (s *Server) handleGetPersonAttendance(w http.ResponseWriter, r *http.Request) {
	kind, err := person.ParseKind(r.URL.Query().Get("tipo"))
	if err != nil {
		fail(w, err)
		return
	}
	records, err := projections.QueryGetPersonAttendance(r.Context(), projections.GetPersonAttendanceQuery{
		Kind:     kind,
		PersonID: mux.Vars(r)["id"],
	}, projections.GetPersonAttendanceDeps{AttendanceStore: s.stores.AttendanceStore})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.FromRecords(records))
}

// handleDashboard handles GET /api/dashboard/stats
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetDashboard(r.Context(), projections.GetDashboardQuery{}, projections.GetDashboardDeps{
		MemberStore:     s.stores.MemberStore,
		FriendStore:     s.stores.FriendStore,
		AttendanceStore: s.stores.AttendanceStore,
		Clock:           s.opts.Clock,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.Dashboard{
		TotalMembers:    result.TotalMembers,
		TotalFriends:    result.TotalFriends,
		TotalVisitors:   result.TotalFriends,
		TodayAttendance: result.TodayAttendance,
		MonthAttendance: result.MonthAttendance,
		Today:           result.Today,
	})
}
