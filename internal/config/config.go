// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"diaconisas/internal/domain/period"
)

// EnvPrefix prefixes every environment variable, e.g. DIACONISAS_HTTP_ADDR.
const EnvPrefix = "DIACONISAS"

// Attendance backends.
const (
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
)

var (
	ErrMissingSecret  = errors.New("jwt secret must be set")
	ErrUnknownBackend = errors.New("attendance backend must be sqlite or mongo")
	ErrMissingMongo   = errors.New("mongo uri must be set for the mongo backend")
)

// Config holds every setting used by the server and the CLI.
type Config struct {
	HTTP       HTTPConfig
	DB         DBConfig
	Auth       AuthConfig
	Email      EmailConfig
	Log        LogConfig
	Client     ClientConfig
	Timezone   string
	RosterTTL  time.Duration
	Production bool
}

// HTTPConfig configures the REST listener.
type HTTPConfig struct {
	Addr            string
	CORSOrigins     []string
	RateLimit       int
	SlowRequest     time.Duration
	ShutdownTimeout time.Duration
}

// DBConfig selects the storage backends.
type DBConfig struct {
	Path              string
	SlowQuery         time.Duration
	AttendanceBackend string
	MongoURI          string
	MongoDatabase     string
}

// AuthConfig configures tokens and the seeded administrator.
type AuthConfig struct {
	JWTSecret         string
	TokenTTL          time.Duration
	AllowRegistration bool
	AdminUsername     string
	AdminPassword     string
}

// EmailConfig configures outgoing report mail. An empty key disables delivery.
type EmailConfig struct {
	ResendKey string
	From      string
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string
	Format string
	File   string
}

// ClientConfig configures the command-line client.
type ClientConfig struct {
	BaseURL     string
	TokenFile   string
	Concurrency int
	WriteDelay  time.Duration
	// Timeout bounds each request; 0 disables it.
	Timeout     time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("http.addr", ":8001")
	v.SetDefault("http.cors_origins", "*")
	v.SetDefault("http.rate_limit", 0)
	v.SetDefault("http.slow_request", 500*time.Millisecond)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("db.path", "diaconisas.db")
	v.SetDefault("db.slow_query", 50*time.Millisecond)
	v.SetDefault("db.attendance_backend", BackendSQLite)
	v.SetDefault("db.mongo_uri", "")
	v.SetDefault("db.mongo_database", "diaconisas")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.allow_registration", false)
	v.SetDefault("auth.admin_username", "admin")
	v.SetDefault("auth.admin_password", "")
	v.SetDefault("email.resend_key", "")
	v.SetDefault("email.from", "Diaconisas <noreply@localhost>")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("client.base_url", "http://localhost:8001")
	v.SetDefault("client.token_file", defaultTokenFile())
	v.SetDefault("client.concurrency", 1)
	v.SetDefault("client.write_delay", 100*time.Millisecond)
	v.SetDefault("client.timeout", time.Duration(0))
	v.SetDefault("timezone", period.DefaultTimezone)
	v.SetDefault("roster_ttl", 30*time.Second)
}

// Load reads settings from the environment, after loading envFile when it exists.
// Variables already set in the environment win over the file.
// PRE: none; an empty envFile skips the file
// POST: Returns defaults overridden by DIACONISAS_* variables
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return Config{}, fmt.Errorf("load %s: %w", envFile, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("stat %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return Config{
		HTTP: HTTPConfig{
			Addr:            v.GetString("http.addr"),
			CORSOrigins:     splitList(v.GetString("http.cors_origins")),
			RateLimit:       v.GetInt("http.rate_limit"),
			SlowRequest:     v.GetDuration("http.slow_request"),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
		},
		DB: DBConfig{
			Path:              v.GetString("db.path"),
			SlowQuery:         v.GetDuration("db.slow_query"),
			AttendanceBackend: strings.ToLower(v.GetString("db.attendance_backend")),
			MongoURI:          v.GetString("db.mongo_uri"),
			MongoDatabase:     v.GetString("db.mongo_database"),
		},
		Auth: AuthConfig{
			JWTSecret:         v.GetString("auth.jwt_secret"),
			TokenTTL:          v.GetDuration("auth.token_ttl"),
			AllowRegistration: v.GetBool("auth.allow_registration"),
			AdminUsername:     v.GetString("auth.admin_username"),
			AdminPassword:     v.GetString("auth.admin_password"),
		},
		Email: EmailConfig{
			ResendKey: v.GetString("email.resend_key"),
			From:      v.GetString("email.from"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			File:   v.GetString("log.file"),
		},
		Client: ClientConfig{
			BaseURL:     strings.TrimRight(v.GetString("client.base_url"), "/"),
			TokenFile:   v.GetString("client.token_file"),
			Concurrency: v.GetInt("client.concurrency"),
			WriteDelay:  v.GetDuration("client.write_delay"),
			Timeout:     v.GetDuration("client.timeout"),
		},
		Timezone:   v.GetString("timezone"),
		RosterTTL:  v.GetDuration("roster_ttl"),
		Production: strings.EqualFold(v.GetString("env"), "production"),
	}, nil
}

// ValidateServer checks the settings the server cannot start without.
// PRE: c was returned by Load
// POST: Returns nil or the first problem found
func (c Config) ValidateServer() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return ErrMissingSecret
	}
	switch c.DB.AttendanceBackend {
	case BackendSQLite:
	case BackendMongo:
		if c.DB.MongoURI == "" {
			return ErrMissingMongo
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.DB.AttendanceBackend)
	}
	if _, err := period.NewClock(c.Timezone); err != nil {
		return err
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".diaconisas-token"
	}
	return dir + string(os.PathSeparator) + "diaconisas" + string(os.PathSeparator) + "token"
}
