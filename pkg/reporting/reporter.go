// Package reporting wraps the Sentry client used to submit error reports.
//
// The client is created once at startup. Every capture call receives the user identity it should
// attach explicitly; nothing is read from process-wide state at submission time.
package reporting

import (
	"errors"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	EnvDevelopment = "development"

	TagErrorType     = "errorType"
	TagErrorLocation = "errorLocation"

	ErrorTypeHandled = "handled"
	BoundaryLocation = "global-error-boundary"
)

// ErrNotCaptured is returned when the SDK drops an event instead of assigning it an identifier.
var ErrNotCaptured = errors.New("report was not captured")

// User is the identity attached to a report.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
}

// Capture carries the enrichment applied to a single report.
type Capture struct {
	Tags   map[string]string
	Extras map[string]any
	// User is optional; nil leaves the report without a user record.
	User  *User
	Level sentry.Level
}

// Report is the outcome of a capture call.
type Report struct {
	ID string `json:"id"`
	// Suppressed is set when the event was kept local by the environment filter.
	Suppressed bool `json:"suppressed,omitempty"`
}

type Reporter interface {
	CaptureException(err error, c Capture) (Report, error)
	CaptureMessage(msg string, c Capture) (Report, error)
	Flush(timeout time.Duration) bool
}

type Options struct {
	DSN              string
	Environment      string
	Release          string
	Debug            bool
	TracesSampleRate float64
	// Transport replaces the HTTP transport; tests record events with it.
	Transport sentry.Transport
}

// Client submits reports through a dedicated Sentry hub.
type Client struct {
	hub *sentry.Hub
	env string
	dsn string
}

func New(opts Options) (*Client, error) {
	env := opts.Environment
	if env == "" {
		env = EnvDevelopment
	}

	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:              opts.DSN,
		Debug:            opts.Debug,
		Environment:      env,
		Release:          opts.Release,
		SampleRate:       1.0,
		EnableTracing:    opts.TracesSampleRate > 0,
		TracesSampleRate: opts.TracesSampleRate,
		AttachStacktrace: true,
		BeforeSend:       beforeSend(env),
		Transport:        opts.Transport,
	})
	if err != nil {
		return nil, err
	}

	if opts.DSN == "" {
		log.Warn().Msg("SENTRY_DSN not set; reports get identifiers but are not delivered")
	}

	return &Client{
		hub: sentry.NewHub(client, sentry.NewScope()),
		env: env,
		dsn: opts.DSN,
	}, nil
}

// DSN is the connection string the client was configured with.
func (c *Client) DSN() string { return c.dsn }

func (c *Client) CaptureException(err error, capture Capture) (Report, error) {
	hub := c.scoped(capture)
	id := hub.CaptureException(err)
	if id == nil {
		log.Warn().Err(err).Msg("exception report dropped")
		return Report{}, ErrNotCaptured
	}
	log.Debug().Str("event_id", string(*id)).Err(err).Msg("exception reported")
	return Report{ID: string(*id)}, nil
}

// CaptureMessage submits a message-only report. In development the message stays local and
// the caller gets a locally generated identifier instead.
func (c *Client) CaptureMessage(msg string, capture Capture) (Report, error) {
	if c.env == EnvDevelopment {
		id := NewEventID()
		log.Debug().Str("event_id", id).Str("message", msg).Msg("message report suppressed in development")
		return Report{ID: id, Suppressed: true}, nil
	}

	hub := c.scoped(capture)
	id := hub.CaptureMessage(msg)
	if id == nil {
		log.Warn().Str("message", msg).Msg("message report dropped")
		return Report{}, ErrNotCaptured
	}
	return Report{ID: string(*id)}, nil
}

func (c *Client) Flush(timeout time.Duration) bool {
	return c.hub.Flush(timeout)
}

// scoped returns a hub clone whose scope carries the capture's enrichment.
// Cloning keeps concurrent requests from sharing one scope stack.
func (c *Client) scoped(capture Capture) *sentry.Hub {
	hub := c.hub.Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		level := capture.Level
		if level == "" {
			level = sentry.LevelError
		}
		scope.SetLevel(level)
		if len(capture.Tags) > 0 {
			scope.SetTags(capture.Tags)
		}
		for k, v := range capture.Extras {
			scope.SetExtra(k, v)
		}
		if capture.User != nil {
			scope.SetUser(sentry.User{
				ID:       capture.User.ID,
				Email:    capture.User.Email,
				Username: capture.User.Username,
			})
		}
	})
	return hub
}

// beforeSend keeps non-exception events local in development.
func beforeSend(env string) func(*sentry.Event, *sentry.EventHint) *sentry.Event {
	return func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
		if env == EnvDevelopment && len(event.Exception) == 0 {
			return nil
		}
		return event
	}
}

// NewEventID returns an identifier in the 32 hex character format Sentry uses.
func NewEventID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
