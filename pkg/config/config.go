package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	BackendSanity   = "sanity"
	BackendPostgres = "postgres"
)

// Config holds the application configuration.
type Config struct {
	Env      string           `yaml:"env"`
	Port     string           `yaml:"port"`
	LogLevel string           `yaml:"log_level"`
	TLS      TLSSettings      `yaml:"tls"`
	CORS     CORSSettings     `yaml:"cors"`
	Content  ContentSettings  `yaml:"content"`
	Database DatabaseSettings `yaml:"database"`
	Sentry   SentrySettings   `yaml:"sentry"`
	Feedback FeedbackSettings `yaml:"feedback"`
	Email    EmailSettings    `yaml:"email"`
}

// TLSSettings holds environment-driven TLS configuration.
type TLSSettings struct {
	Enabled         bool   `yaml:"enabled"`
	CertPath        string `yaml:"cert_path"`
	KeyPath         string `yaml:"key_path"`
	AllowSelfSigned bool   `yaml:"allow_self_signed"`
}

type CORSSettings struct {
	AllowedOrigins   []string `yaml:"allowed_origins"`
	AllowCredentials bool     `yaml:"allow_credentials"`
}

// ContentSettings selects and configures the document store backing the directory.
type ContentSettings struct {
	Backend    string `yaml:"backend"`
	ProjectID  string `yaml:"project_id"`
	Dataset    string `yaml:"dataset"`
	APIVersion string `yaml:"api_version"`
	Token      string `yaml:"token"`
	UseCDN     bool   `yaml:"use_cdn"`
	// APIHost overrides the computed Sanity host, mostly for tests and proxies.
	APIHost string `yaml:"api_host"`
}

type DatabaseSettings struct {
	URL             string        `yaml:"url"`
	MaxConns        int           `yaml:"max_conns"`
	MinConns        int           `yaml:"min_conns"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time"`
	ApplySchema     bool          `yaml:"apply_schema"`
	SchemaPath      string        `yaml:"schema_path"`
}

type SentrySettings struct {
	DSN              string        `yaml:"dsn"`
	Debug            bool          `yaml:"debug"`
	Release          string        `yaml:"release"`
	TracesSampleRate float64       `yaml:"traces_sample_rate"`
	FlushTimeout     time.Duration `yaml:"flush_timeout"`
}

type FeedbackSettings struct {
	// DialogDelay is how long the fallback page waits before opening the dialog.
	DialogDelay time.Duration  `yaml:"dialog_delay"`
	Dialog      DialogSettings `yaml:"dialog"`
}

// DialogSettings mirrors feedback.DialogOptions field for field so the two convert directly.
type DialogSettings struct {
	Title          string `yaml:"title"`
	Subtitle       string `yaml:"subtitle"`
	Subtitle2      string `yaml:"subtitle2"`
	LabelName      string `yaml:"label_name"`
	LabelEmail     string `yaml:"label_email"`
	LabelComments  string `yaml:"label_comments"`
	LabelClose     string `yaml:"label_close"`
	LabelSubmit    string `yaml:"label_submit"`
	ErrorGeneric   string `yaml:"error_generic"`
	ErrorFormEntry string `yaml:"error_form_entry"`
	SuccessMessage string `yaml:"success_message"`
}

type EmailSettings struct {
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	SenderEmail    string `yaml:"sender_email"`
	SenderName     string `yaml:"sender_name"`
	// FeedbackRecipient receives a copy of every locally submitted feedback form.
	FeedbackRecipient string `yaml:"feedback_recipient"`
}

// Default returns the configuration used when neither a file nor the environment say otherwise.
func Default() *Config {
	return &Config{
		Env:      EnvDevelopment,
		LogLevel: "info",
		TLS: TLSSettings{
			Enabled:         true,
			AllowSelfSigned: true,
		},
		CORS: CORSSettings{AllowedOrigins: []string{"*"}},
		Content: ContentSettings{
			Backend:    BackendSanity,
			Dataset:    "production",
			APIVersion: "2024-10-01",
			UseCDN:     true,
		},
		Database: DatabaseSettings{
			MaxConns:        10,
			MinConns:        2,
			MaxConnIdleTime: 5 * time.Minute,
			ApplySchema:     true,
		},
		Sentry: SentrySettings{
			TracesSampleRate: 1.0,
			FlushTimeout:     2 * time.Second,
		},
		Feedback: FeedbackSettings{
			DialogDelay: 500 * time.Millisecond,
			Dialog: DialogSettings{
				Title:          "We've noticed an error",
				Subtitle:       "Our team has been notified.",
				Subtitle2:      "If you'd like to help, tell us what happened below.",
				LabelName:      "Name",
				LabelEmail:     "Email",
				LabelComments:  "What happened?",
				LabelClose:     "Close",
				LabelSubmit:    "Submit",
				ErrorGeneric:   "An unknown error occurred while submitting your report. Please try again.",
				ErrorFormEntry: "Some fields were invalid. Please correct the errors and try again.",
				SuccessMessage: "Your feedback has been sent. Thank you!",
			},
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and the environment,
// in that order of precedence (environment wins).
// An empty path falls back to CONFIG_FILE; a missing file at that point is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays environment variables on top of whatever is already set.
func (c *Config) applyEnv() {
	env := strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV")))
	if env == "" {
		env = strings.ToLower(strings.TrimSpace(os.Getenv("ENV")))
	}
	if env != "" {
		c.Env = env
	}
	c.Env = strings.ToLower(c.Env)

	c.Port = getEnv("SERVER_PORT", c.Port)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	c.TLS.Enabled = getEnvAsBool("ENABLE_TLS", c.TLS.Enabled)
	// Enforce TLS in production
	if c.Env == EnvProduction {
		c.TLS.Enabled = true
	}
	c.TLS.CertPath = getEnv("TLS_CERT_PATH", c.TLS.CertPath)
	c.TLS.KeyPath = getEnv("TLS_KEY_PATH", c.TLS.KeyPath)
	c.TLS.AllowSelfSigned = getEnvAsBool("TLS_SELF_SIGNED", c.TLS.AllowSelfSigned)

	if origins, ok := os.LookupEnv("CORS_ALLOWED_ORIGINS"); ok {
		c.CORS.AllowedOrigins = splitOrigins(origins)
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	c.CORS.AllowCredentials = getEnvAsBool("CORS_ALLOW_CREDENTIALS", c.CORS.AllowCredentials)

	c.Content.Backend = strings.ToLower(getEnv("CONTENT_BACKEND", c.Content.Backend))
	c.Content.ProjectID = getEnv("SANITY_PROJECT_ID", c.Content.ProjectID)
	c.Content.Dataset = getEnv("SANITY_DATASET", c.Content.Dataset)
	c.Content.APIVersion = getEnv("SANITY_API_VERSION", c.Content.APIVersion)
	c.Content.Token = getEnv("SANITY_API_TOKEN", c.Content.Token)
	c.Content.UseCDN = getEnvAsBool("SANITY_USE_CDN", c.Content.UseCDN)
	c.Content.APIHost = getEnv("SANITY_API_HOST", c.Content.APIHost)

	c.Database.URL = getEnv("DATABASE_URL", c.Database.URL)
	c.Database.MaxConns = getEnvAsInt("DB_MAX_CONNS", c.Database.MaxConns)
	c.Database.MinConns = getEnvAsInt("DB_MIN_CONNS", c.Database.MinConns)
	c.Database.MaxConnIdleTime = getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", c.Database.MaxConnIdleTime)
	c.Database.ApplySchema = getEnvAsBool("APPLY_SCHEMA_ON_START", c.Database.ApplySchema)
	c.Database.SchemaPath = getEnv("SCHEMA_PATH", c.Database.SchemaPath)

	c.Sentry.DSN = getEnv("SENTRY_DSN", c.Sentry.DSN)
	c.Sentry.Debug = getEnvAsBool("SENTRY_DEBUG", c.Sentry.Debug)
	c.Sentry.Release = getEnv("SENTRY_RELEASE", c.Sentry.Release)
	c.Sentry.TracesSampleRate = getEnvAsFloat("SENTRY_TRACES_SAMPLE_RATE", c.Sentry.TracesSampleRate)
	c.Sentry.FlushTimeout = getEnvAsDuration("SENTRY_FLUSH_TIMEOUT", c.Sentry.FlushTimeout)

	c.Feedback.DialogDelay = getEnvAsDuration("FEEDBACK_DIALOG_DELAY", c.Feedback.DialogDelay)

	c.Email.SendGridAPIKey = getEnv("SENDGRID_API_KEY", c.Email.SendGridAPIKey)
	c.Email.SenderEmail = getEnv("SENDGRID_SENDER_EMAIL", c.Email.SenderEmail)
	c.Email.SenderName = getEnv("SENDGRID_SENDER_NAME", c.Email.SenderName)
	c.Email.FeedbackRecipient = getEnv("FEEDBACK_RECIPIENT_EMAIL", c.Email.FeedbackRecipient)
}

// Validate ensures the settings are usable for the selected environment.
func (c *Config) Validate() error {
	switch c.Env {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("unknown environment %q", c.Env)
	}

	if c.IsProduction() {
		if !c.TLS.Enabled {
			return errors.New("TLS must be enabled in production")
		}
		if c.TLS.CertPath == "" || c.TLS.KeyPath == "" {
			return errors.New("TLS_CERT_PATH and TLS_KEY_PATH are required in production")
		}
	}

	switch c.Content.Backend {
	case BackendSanity:
		if c.Content.ProjectID == "" && c.Content.APIHost == "" {
			return errors.New("SANITY_PROJECT_ID is required for the sanity content backend")
		}
		if c.Content.Dataset == "" {
			return errors.New("SANITY_DATASET must not be empty")
		}
	case BackendPostgres:
		if c.Database.URL == "" {
			return errors.New("DATABASE_URL is required for the postgres content backend")
		}
	default:
		return fmt.Errorf("unknown content backend %q", c.Content.Backend)
	}

	if c.Sentry.TracesSampleRate < 0 || c.Sentry.TracesSampleRate > 1 {
		return fmt.Errorf("SENTRY_TRACES_SAMPLE_RATE must be within [0, 1], got %v", c.Sentry.TracesSampleRate)
	}
	return nil
}

func (c *Config) IsProduction() bool  { return c.Env == EnvProduction }
func (c *Config) IsDevelopment() bool { return c.Env == EnvDevelopment }

// ListenPort returns the configured port, or the conventional one for the TLS mode.
func (c *Config) ListenPort() string {
	if c.Port != "" {
		return c.Port
	}
	if c.TLS.Enabled {
		return "8443"
	}
	return "8080"
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		o := strings.TrimSpace(p)
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return fallback
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvAsFloat(key string, fallback float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return fallback
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return fallback
	}
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		return fallback
	}
	return duration
}
