package web

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"diaconisas/internal/adapters/email"
	"diaconisas/internal/adapters/http/middleware"
	"diaconisas/internal/adapters/http/perf"
	"diaconisas/internal/adapters/storage"
	accountStore "diaconisas/internal/adapters/storage/account"
	attendanceStore "diaconisas/internal/adapters/storage/attendance"
	friendStore "diaconisas/internal/adapters/storage/friend"
	memberStore "diaconisas/internal/adapters/storage/member"
	"diaconisas/internal/domain/period"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore    accountStore.Store
	MemberStore     memberStore.Store
	FriendStore     friendStore.Store
	AttendanceStore attendanceStore.Store
}

// HealthChecker reports database liveness and statement counters.
type HealthChecker interface {
	PingContext(ctx context.Context) error
	Stats() storage.QueryStats
}

// Options configures the router.
type Options struct {
	Tokens             *middleware.Tokens
	Clock              period.Clock
	AllowRegistration  bool
	EmailSender        email.Sender
	CORSOrigins        []string
	RateLimitPerSecond int // 0 disables rate limiting
	SlowRequest        time.Duration
	Health             HealthChecker
	Perf               *perf.Collector // nil means a private collector of DefaultRingSize
	GenerateID         func() string
	Now                func() time.Time
}

// Server serves the REST API.
type Server struct {
	stores Stores
	opts   Options
}

// NewRouter wires HTTP handlers for the API.
// PRE: every store and opts.Tokens are set
// POST: Returns a handler where every /api route except /api/auth/* requires a bearer token
func NewRouter(s Stores, opts Options) http.Handler {
	if opts.GenerateID == nil {
		opts.GenerateID = uuid.NewString
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.EmailSender == nil {
		opts.EmailSender = email.NewNoopSender()
	}
	if opts.Perf == nil {
		opts.Perf = perf.NewCollector(perf.DefaultRingSize)
	}
	srv := &Server{stores: s, opts: opts}

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	r.Use(middleware.Observe(opts.Perf, routeTemplate))
	r.HandleFunc("/healthz", srv.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/login", srv.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", srv.handleRegister).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.RequireBearer(opts.Tokens, writeError))
	registerRoutes(protected, srv)

	middlewares := []func(http.Handler) http.Handler{
		middleware.Timing(opts.SlowRequest),
		middleware.SecurityHeaders,
		middleware.CORS(opts.CORSOrigins),
	}
	if opts.RateLimitPerSecond > 0 {
		limiter := middleware.NewRateLimiter(opts.RateLimitPerSecond, time.Second)
		middlewares = append(middlewares, middleware.RateLimit(limiter, writeError))
	}
	return middleware.Chain(r, middlewares...)
}

// routeTemplate names a request by its matched route so ids do not split the stats.
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}

func registerRoutes(r *mux.Router, srv *Server) {
	r.HandleFunc("/members", srv.handleListMembers).Methods(http.MethodGet)
	r.HandleFunc("/members", srv.handleCreateMember).Methods(http.MethodPost)
	r.HandleFunc("/members/{id}", srv.handleGetMember).Methods(http.MethodGet)
	r.HandleFunc("/members/{id}", srv.handleUpdateMember).Methods(http.MethodPut)
	r.HandleFunc("/members/{id}", srv.handleDeleteMember).Methods(http.MethodDelete)

	r.HandleFunc("/visitors", srv.handleListFriends).Methods(http.MethodGet)
	r.HandleFunc("/visitors", srv.handleCreateFriend).Methods(http.MethodPost)
	r.HandleFunc("/visitors/{id}", srv.handleGetFriend).Methods(http.MethodGet)
	r.HandleFunc("/visitors/{id}", srv.handleUpdateFriend).Methods(http.MethodPut)
	r.HandleFunc("/visitors/{id}", srv.handleDeleteFriend).Methods(http.MethodDelete)

	r.HandleFunc("/attendance", srv.handleGetAttendance).Methods(http.MethodGet)
	r.HandleFunc("/attendance", srv.handleRecordAttendance).Methods(http.MethodPost)
	r.HandleFunc("/attendance/today", srv.handleGetAttendanceToday).Methods(http.MethodGet)
	r.HandleFunc("/attendance/person/{id}", srv.handleGetPersonAttendance).Methods(http.MethodGet)

	r.HandleFunc("/dashboard/stats", srv.handleDashboard).Methods(http.MethodGet)

	r.HandleFunc("/reports/by-date-range", srv.handleDateRangeReport).Methods(http.MethodGet)
	r.HandleFunc("/reports/collective", srv.handleCollectiveReport).Methods(http.MethodGet)
	r.HandleFunc("/reports/individual/{id}", srv.handleIndividualReport).Methods(http.MethodGet)
	r.HandleFunc("/reports/statistics", srv.handleStatistics).Methods(http.MethodGet)
	r.HandleFunc("/reports/visitors-of-day", srv.handleVisitorsOfDay).Methods(http.MethodGet)
	r.HandleFunc("/reports/absent-members", srv.handleAbsentMembers).Methods(http.MethodGet)
	r.HandleFunc("/reports/absent-members/send", srv.handleSendAbsentMembers).Methods(http.MethodPost)
}
