// Package boundary catches panics that escape request handlers, reports each one exactly once,
// and keeps enough state to re-render the fallback page and open the feedback dialog.
package boundary

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/log"

	"pitchboard/pkg/reporting"
)

// State is the lifecycle of one boundary activation.
type State int

const (
	Uninitialized State = iota
	Captured
	DialogShown
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Captured:
		return "captured"
	case DialogShown:
		return "dialog-shown"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var ErrNoReport = errors.New("no report identifier for this error")

// Occurrence is what the boundary caught.
type Occurrence struct {
	Err        error
	Stack      string
	Digest     string
	StatusCode int
	CaughtAt   time.Time
}

// NewOccurrence turns a recovered panic value into an Occurrence.
func NewOccurrence(recovered any, stack []byte) Occurrence {
	var err error
	switch v := recovered.(type) {
	case error:
		err = v
	case string:
		err = errors.New(v)
	default:
		err = fmt.Errorf("%v", v)
	}
	return Occurrence{
		Err:        err,
		Stack:      string(stack),
		Digest:     digest(err.Error(), stack),
		StatusCode: 500,
		CaughtAt:   time.Now(),
	}
}

func (o Occurrence) Message() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

func digest(message string, stack []byte) string {
	h := sha256.New()
	h.Write([]byte(message))
	h.Write(stack)
	return hex.EncodeToString(h.Sum(nil))[:12]
}

// Boundary owns one activation: uninitialized -> captured -> dialog-shown.
type Boundary struct {
	mu         sync.Mutex
	id         string
	occurrence Occurrence
	user       *reporting.User
	state      State
	reportID   string
	captureErr error
	dialogURL  string
}

func New(id string, occ Occurrence, user *reporting.User) *Boundary {
	return &Boundary{id: id, occurrence: occ, user: user}
}

func (b *Boundary) ID() string             { return b.id }
func (b *Boundary) Occurrence() Occurrence { return b.occurrence }

func (b *Boundary) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Boundary) ReportID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reportID
}

// Capture submits the occurrence. Only the first call reaches the reporter; later calls
// return the first outcome, including a failed one, which is never retried.
func (b *Boundary) Capture(r reporting.Reporter) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != Uninitialized || b.captureErr != nil {
		return b.reportID, b.captureErr
	}

	report, err := r.CaptureException(b.occurrence.Err, reporting.Capture{
		Tags:  map[string]string{reporting.TagErrorLocation: reporting.BoundaryLocation},
		Level: sentry.LevelError,
		Extras: map[string]any{
			"errorMessage": b.occurrence.Message(),
			"errorStack":   b.occurrence.Stack,
			"errorDigest":  b.occurrence.Digest,
		},
		User: b.user,
	})
	if err != nil {
		b.captureErr = err
		log.Error().Err(err).Str("occurrence", b.id).Msg("failed to report unhandled error")
		return "", err
	}

	b.reportID = report.ID
	b.state = Captured
	return b.reportID, nil
}

// ShowDialog resolves the dialog through show and moves to DialogShown.
// Once shown, it returns the same URL with alreadyShown set and does not call show again.
// A failed show leaves the boundary in Captured so the dialog can be requested manually.
func (b *Boundary) ShowDialog(show func(reportID string, user *reporting.User) (string, error)) (url string, alreadyShown bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Uninitialized:
		return "", false, ErrNoReport
	case DialogShown:
		return b.dialogURL, true, nil
	}

	u, err := show(b.reportID, b.user)
	if err != nil {
		log.Error().Err(err).Str("event_id", b.reportID).Msg("failed to show feedback dialog")
		return "", false, err
	}

	b.dialogURL = u
	b.state = DialogShown
	return u, false, nil
}

// Registry keeps the most recent boundaries so their pages can be re-rendered.
type Registry struct {
	mu    sync.Mutex
	items map[string]*Boundary
	order []string
	max   int
}

func NewRegistry(max int) *Registry {
	if max <= 0 {
		max = 1000
	}
	return &Registry{items: make(map[string]*Boundary), max: max}
}

// Add stores b, evicting the oldest entry when full.
func (r *Registry) Add(b *Boundary) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[b.id]; ok {
		return
	}
	if len(r.order) >= r.max {
		oldest := r.order[0]
		r.order = r.order[1:]
		delete(r.items, oldest)
	}
	r.items[b.id] = b
	r.order = append(r.order, b.id)
}

func (r *Registry) Get(id string) (*Boundary, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.items[id]
	return b, ok
}
