package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"diaconisas/internal/adapters/email"
	web "diaconisas/internal/adapters/http"
	"diaconisas/internal/adapters/http/middleware"
	"diaconisas/internal/adapters/storage"
	accountStore "diaconisas/internal/adapters/storage/account"
	attendanceStore "diaconisas/internal/adapters/storage/attendance"
	friendStore "diaconisas/internal/adapters/storage/friend"
	memberStore "diaconisas/internal/adapters/storage/member"
	"diaconisas/internal/application/orchestrators"
	"diaconisas/internal/config"
	"diaconisas/internal/domain/period"
	"diaconisas/internal/logging"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	envFile := flag.String("env-file", ".env", "optional dotenv file")
	flag.Parse()

	if err := run(*envFile); err != nil {
		slog.Error("server_event", "event", "fatal", "error", err)
		os.Exit(1)
	}
}

func run(envFile string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	logCloser, err := logging.Setup(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File})
	if err != nil {
		return err
	}
	defer logCloser.Close()

	if err := cfg.ValidateServer(); err != nil {
		return err
	}
	clock, err := period.NewClock(cfg.Timezone)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := storage.Open(ctx, cfg.DB.Path)
	if err != nil {
		return err
	}
	defer db.Close()
	timedDB := storage.NewTimedDB(db, cfg.DB.SlowQuery)

	attStore, closeAttendance, err := openAttendanceStore(ctx, cfg.DB, timedDB)
	if err != nil {
		return err
	}
	defer closeAttendance()

	acctStore := accountStore.NewSQLiteStore(timedDB)
	stores := web.Stores{
		AccountStore:    acctStore,
		MemberStore:     memberStore.NewCachedStore(memberStore.NewSQLiteStore(timedDB), cfg.RosterTTL),
		FriendStore:     friendStore.NewCachedStore(friendStore.NewSQLiteStore(timedDB), cfg.RosterTTL),
		AttendanceStore: attStore,
	}

	created, err := orchestrators.ExecuteSeedAdmin(ctx,
		orchestrators.SeedAdminInput{Username: cfg.Auth.AdminUsername, Password: cfg.Auth.AdminPassword},
		orchestrators.SeedAdminDeps{AccountStore: acctStore, GenerateID: uuid.NewString, Now: time.Now},
	)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if created {
		slog.Info("auth_event", "event", "admin_seeded", "username", cfg.Auth.AdminUsername)
	}

	if cfg.Email.ResendKey == "" && cfg.Production {
		slog.Warn("email_event", "event", "delivery_disabled", "reason", "DIACONISAS_EMAIL_RESEND_KEY is not set")
	}

	handler := web.NewRouter(stores, web.Options{
		Tokens:             middleware.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Clock:              clock,
		AllowRegistration:  cfg.Auth.AllowRegistration,
		EmailSender:        email.New(cfg.Email.ResendKey, cfg.Email.From),
		CORSOrigins:        cfg.HTTP.CORSOrigins,
		RateLimitPerSecond: cfg.HTTP.RateLimit,
		SlowRequest:        cfg.HTTP.SlowRequest,
		Health:             timedDB,
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server_event", "event", "start", "version", version, "addr", cfg.HTTP.Addr,
			"schema", storage.LatestSchemaVersion(), "attendance_backend", cfg.DB.AttendanceBackend, "timezone", cfg.Timezone)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("server_event", "event", "shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openAttendanceStore returns the configured attendance backend and its release func.
func openAttendanceStore(ctx context.Context, cfg config.DBConfig, db storage.SQLDB) (attendanceStore.Store, func(), error) {
	if cfg.AttendanceBackend != config.BackendMongo {
		return attendanceStore.NewSQLiteStore(db), func() {}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	release := func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		release()
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	store := attendanceStore.NewMongoStore(client.Database(cfg.MongoDatabase).Collection("attendance"))
	if err := store.EnsureIndexes(connectCtx); err != nil {
		release()
		return nil, nil, err
	}
	return store, release, nil
}
