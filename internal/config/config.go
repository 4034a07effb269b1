package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures all runtime configuration for the portal middleware.
type Config struct {
	App      AppConfig
	Backend  BackendConfig
	Database DatabaseConfig
	Session  SessionConfig
	Events   EventsConfig
}

// AppConfig contains generic application level settings.
type AppConfig struct {
	Env         string
	Port        int
	LogLevel    string
	CORSOrigins []string
}

// BackendConfig describes the SOAP backend the portal fronts.
type BackendConfig struct {
	BaseURL        string
	ServicePath    string
	Client         string
	User           string
	Password       string
	TimeoutSeconds int
	InsecureTLS    bool
	OperationsFile string
}

// Timeout returns the per-call timeout.
func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// DatabaseConfig selects and configures the session/audit store.
type DatabaseConfig struct {
	Driver   string
	DSN      string
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

// SessionConfig controls portal session lifetime.
type SessionConfig struct {
	TTLMinutes    int
	SweepSchedule string
}

// TTL returns the session lifetime.
func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLMinutes) * time.Minute
}

// EventsConfig configures call event publishing. An empty URL disables it.
type EventsConfig struct {
	NATSURL string
	Subject string
}

// Load reads environment variables (and a .env file when present), applies
// defaults, validates values and returns a populated Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	ldr := &envLoader{}

	cfg := &Config{}
	cfg.App.Env = ldr.getString("APP_ENV", "development", false)
	cfg.App.Port = ldr.getInt("APP_PORT", 3000, false)
	cfg.App.LogLevel = ldr.getString("LOG_LEVEL", "info", false)
	cfg.App.CORSOrigins = ldr.getStringSlice("CORS_ORIGINS", false)

	cfg.Backend.BaseURL = ldr.getString("BACKEND_BASE_URL", "http://localhost:8000", false)
	cfg.Backend.ServicePath = ldr.getString("BACKEND_SERVICE_PATH", "/sap/bc/srt/scs/sap/", false)
	cfg.Backend.Client = ldr.getString("BACKEND_CLIENT", "100", false)
	cfg.Backend.User = ldr.getString("BACKEND_USER", "", false)
	cfg.Backend.Password = ldr.getString("BACKEND_PASSWORD", "", false)
	cfg.Backend.TimeoutSeconds = ldr.getInt("BACKEND_TIMEOUT_SECONDS", 10, false)
	cfg.Backend.InsecureTLS = ldr.getBool("BACKEND_INSECURE_TLS", false, false)
	cfg.Backend.OperationsFile = ldr.getString("OPERATIONS_FILE", "", false)

	cfg.Database.Driver = strings.ToLower(ldr.getString("DB_DRIVER", "sqlite", false))
	cfg.Database.DSN = ldr.getString("DB_DSN", "file:portal.db", false)
	cfg.Database.Host = ldr.getString("DB_HOST", "localhost", false)
	cfg.Database.User = ldr.getString("DB_USER", "", false)
	cfg.Database.Password = ldr.getString("DB_PASSWORD", "", false)
	cfg.Database.Name = ldr.getString("DB_NAME", "portal", false)
	cfg.Database.Port = ldr.getString("DB_PORT", "5432", false)
	cfg.Database.SSLMode = ldr.getString("DB_SSLMODE", "disable", false)

	cfg.Session.TTLMinutes = ldr.getInt("SESSION_TTL_MINUTES", 480, false)
	cfg.Session.SweepSchedule = ldr.getString("SESSION_SWEEP_SCHEDULE", "@every 10m", false)

	cfg.Events.NATSURL = ldr.getString("NATS_URL", "", false)
	cfg.Events.Subject = ldr.getString("NATS_SUBJECT", "portal.backend.calls", false)

	if cfg.Backend.TimeoutSeconds <= 0 {
		ldr.addError("BACKEND_TIMEOUT_SECONDS must be positive")
	}
	if cfg.Session.TTLMinutes <= 0 {
		ldr.addError("SESSION_TTL_MINUTES must be positive")
	}
	switch cfg.Database.Driver {
	case "sqlite", "postgres":
	default:
		ldr.addError(fmt.Sprintf("DB_DRIVER %q is not supported (sqlite, postgres)", cfg.Database.Driver))
	}
	if cfg.Database.Driver == "postgres" && cfg.Database.User == "" {
		ldr.addError("DB_USER is required for postgres")
	}

	if err := ldr.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsDevelopment reports whether the app runs in a development environment.
func (a AppConfig) IsDevelopment() bool {
	return strings.EqualFold(a.Env, "development") || strings.EqualFold(a.Env, "dev")
}

type envLoader struct {
	errs []string
}

func (l *envLoader) validate() error {
	if len(l.errs) == 0 {
		return nil
	}
	return fmt.Errorf("config validation failed: %s", strings.Join(l.errs, "; "))
}

func (l *envLoader) getString(key, def string, required bool) string {
	if val, ok := os.LookupEnv(key); ok {
		val = strings.TrimSpace(val)
		if val != "" {
			return val
		}
	}
	if required {
		l.addError(fmt.Sprintf("%s is required", key))
	}
	return def
}

func (l *envLoader) getInt(key string, def int, required bool) int {
	raw := l.getString(key, "", required)
	if raw == "" {
		return def
	}
	i, err := strconv.Atoi(raw)
	if err != nil {
		l.addError(fmt.Sprintf("%s must be a valid integer", key))
		return def
	}
	return i
}

func (l *envLoader) getBool(key string, def bool, required bool) bool {
	raw := l.getString(key, "", required)
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		l.addError(fmt.Sprintf("%s must be a valid boolean", key))
		return def
	}
	return parsed
}

func (l *envLoader) getStringSlice(key string, required bool) []string {
	raw := l.getString(key, "", required)
	if raw == "" {
		return []string{}
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if required && len(out) == 0 {
		l.addError(fmt.Sprintf("%s must contain at least one entry", key))
	}
	return out
}

func (l *envLoader) addError(err string) {
	l.errs = append(l.errs, err)
}
