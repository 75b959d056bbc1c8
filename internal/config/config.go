package config

import (
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/spf13/viper"
)

// StartupMode defines how the server handles a failed database connection at boot.
type StartupMode string

const (
	// StartupModeStrict aborts startup when the database cannot be reached.
	StartupModeStrict StartupMode = "strict"
	// StartupModeGraceful logs the failure and serves 503s on database-backed routes.
	StartupModeGraceful StartupMode = "graceful"
)

const (
	DefaultPort             = "5000"
	DefaultDatabaseName     = "exercise-tracker"
	DefaultConnectTimeout   = 10 * time.Second
	DefaultShutdownTimeout  = 10 * time.Second
	DefaultMaxBodyBytes     = 100 << 10
	DefaultEventsTopic      = "exercise-tracker-events"
	DefaultEventsSubscriber = "exercise-tracker-watch"
)

type Database struct {
	URI            string
	Name           string
	ConnectTimeout time.Duration
	// FirestoreSA is a base64 encoded service account JSON, only used by firestore:// URIs.
	FirestoreSA string
}

type HTTP struct {
	Port            string
	AllowedOrigins  []string
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
}

type Log struct {
	Level string
	File  string
}

type Events struct {
	ProjectID    string
	Topic        string
	Subscription string
}

type Config struct {
	StartupMode StartupMode
	Database    Database
	HTTP        HTTP
	Log         Log
	Events      Events
}

// Load reads the configuration from the environment. Empty variables count as unset.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		StartupMode: StartupMode(strings.ToLower(v.GetString("startup_mode"))),
		Database: Database{
			URI:            v.GetString("atlas_uri"),
			Name:           v.GetString("db_name"),
			ConnectTimeout: v.GetDuration("db_connect_timeout"),
			FirestoreSA:    v.GetString("firestore_sa"),
		},
		HTTP: HTTP{
			Port:            v.GetString("port"),
			AllowedOrigins:  splitList(v.GetString("cors_allowed_origins")),
			MaxBodyBytes:    v.GetInt64("max_body_bytes"),
			ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		},
		Log: Log{
			Level: strings.ToLower(v.GetString("log_level")),
			File:  v.GetString("log_file"),
		},
		Events: Events{
			ProjectID:    v.GetString("events_project_id"),
			Topic:        v.GetString("events_topic"),
			Subscription: v.GetString("events_subscription"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("startup_mode", string(StartupModeGraceful))
	v.SetDefault("atlas_uri", "")
	v.SetDefault("db_name", DefaultDatabaseName)
	v.SetDefault("db_connect_timeout", DefaultConnectTimeout)
	v.SetDefault("firestore_sa", "")
	v.SetDefault("port", DefaultPort)
	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("max_body_bytes", DefaultMaxBodyBytes)
	v.SetDefault("shutdown_timeout", DefaultShutdownTimeout)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("events_project_id", "")
	v.SetDefault("events_topic", DefaultEventsTopic)
	v.SetDefault("events_subscription", DefaultEventsSubscriber)
}

// Validate rejects values the server cannot start with.
func (c *Config) Validate() error {
	switch c.StartupMode {
	case StartupModeStrict, StartupModeGraceful:
	default:
		return errors.Errorf("invalid STARTUP_MODE %q: want %q or %q", c.StartupMode, StartupModeStrict, StartupModeGraceful)
	}

	if c.HTTP.Port == "" {
		c.HTTP.Port = DefaultPort
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		return errors.Errorf("invalid MAX_BODY_BYTES %d: must be positive", c.HTTP.MaxBodyBytes)
	}
	if c.Database.ConnectTimeout <= 0 {
		c.Database.ConnectTimeout = DefaultConnectTimeout
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		c.HTTP.ShutdownTimeout = DefaultShutdownTimeout
	}
	if len(c.HTTP.AllowedOrigins) == 0 {
		c.HTTP.AllowedOrigins = []string{"*"}
	}

	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.HTTP.Port
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
