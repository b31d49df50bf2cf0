package testhelpers

import (
	"context"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
)

// TestDSN is a syntactically valid DSN that is never contacted when RecordingTransport is used.
const TestDSN = "https://public@o1.ingest.sentry.io/42"

// RecordingTransport is a sentry.Transport that keeps submitted events in memory.
type RecordingTransport struct {
	mu     sync.Mutex
	events []*sentry.Event
}

func NewRecordingTransport() *RecordingTransport {
	return &RecordingTransport{}
}

func (t *RecordingTransport) Configure(sentry.ClientOptions) {}

func (t *RecordingTransport) SendEvent(event *sentry.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, event)
}

func (t *RecordingTransport) Flush(time.Duration) bool { return true }

func (t *RecordingTransport) FlushWithContext(context.Context) bool { return true }

func (t *RecordingTransport) Close() {}

// Events returns a copy of everything submitted so far.
func (t *RecordingTransport) Events() []*sentry.Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*sentry.Event, len(t.events))
	copy(out, t.events)
	return out
}
