package boundary

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/require"

	"pitchboard/pkg/reporting"
)

type stubReporter struct {
	calls    []reporting.Capture
	messages []error
	err      error
}

func (s *stubReporter) CaptureException(err error, c reporting.Capture) (reporting.Report, error) {
	s.calls = append(s.calls, c)
	s.messages = append(s.messages, err)
	if s.err != nil {
		return reporting.Report{}, s.err
	}
	return reporting.Report{ID: fmt.Sprintf("event-%d", len(s.calls))}, nil
}

func (s *stubReporter) CaptureMessage(string, reporting.Capture) (reporting.Report, error) {
	return reporting.Report{}, errors.New("not used")
}

func (s *stubReporter) Flush(time.Duration) bool { return true }

func TestNewOccurrence(t *testing.T) {
	stack := []byte("goroutine 1 [running]:")

	occ := NewOccurrence(errors.New("boom"), stack)
	require.Equal(t, "boom", occ.Message())
	require.Equal(t, 500, occ.StatusCode)
	require.Len(t, occ.Digest, 12)
	require.Equal(t, string(stack), occ.Stack)

	require.Equal(t, "text panic", NewOccurrence("text panic", nil).Message())
	require.Equal(t, "42", NewOccurrence(42, nil).Message())

	// same message and stack give the same digest
	require.Equal(t, occ.Digest, NewOccurrence(errors.New("boom"), stack).Digest)
	require.NotEqual(t, occ.Digest, NewOccurrence(errors.New("other"), stack).Digest)
}

func TestBoundary_CaptureOnce(t *testing.T) {
	r := &stubReporter{}
	user := &reporting.User{ID: "test-user-123"}
	b := New("occ-1", NewOccurrence(errors.New("boom"), []byte("stack")), user)

	require.Equal(t, Uninitialized, b.State())

	id, err := b.Capture(r)
	require.NoError(t, err)
	require.Equal(t, "event-1", id)
	require.Equal(t, Captured, b.State())

	id, err = b.Capture(r)
	require.NoError(t, err)
	require.Equal(t, "event-1", id)
	require.Len(t, r.calls, 1)

	c := r.calls[0]
	require.Equal(t, reporting.BoundaryLocation, c.Tags[reporting.TagErrorLocation])
	require.Equal(t, sentry.LevelError, c.Level)
	require.Equal(t, "boom", c.Extras["errorMessage"])
	require.Equal(t, "stack", c.Extras["errorStack"])
	require.Equal(t, b.Occurrence().Digest, c.Extras["errorDigest"])
	require.Same(t, user, c.User)
}

func TestBoundary_FailedCaptureIsNotRetried(t *testing.T) {
	r := &stubReporter{err: errors.New("transport down")}
	b := New("occ-1", NewOccurrence(errors.New("boom"), nil), nil)

	_, err := b.Capture(r)
	require.Error(t, err)
	_, err = b.Capture(r)
	require.Error(t, err)

	require.Len(t, r.calls, 1)
	require.Equal(t, Uninitialized, b.State())
	require.Empty(t, b.ReportID())
}

func TestBoundary_ShowDialog(t *testing.T) {
	b := New("occ-1", NewOccurrence(errors.New("boom"), nil), &reporting.User{ID: "u1"})

	_, _, err := b.ShowDialog(func(string, *reporting.User) (string, error) {
		t.Fatal("show must not run before capture")
		return "", nil
	})
	require.ErrorIs(t, err, ErrNoReport)

	_, err = b.Capture(&stubReporter{})
	require.NoError(t, err)

	_, _, err = b.ShowDialog(func(string, *reporting.User) (string, error) {
		return "", errors.New("blocked")
	})
	require.Error(t, err)
	require.Equal(t, Captured, b.State())

	shows := 0
	show := func(reportID string, user *reporting.User) (string, error) {
		shows++
		require.Equal(t, "event-1", reportID)
		require.Equal(t, "u1", user.ID)
		return "https://example.test/dialog?eventId=" + reportID, nil
	}

	url, already, err := b.ShowDialog(show)
	require.NoError(t, err)
	require.False(t, already)
	require.Equal(t, "https://example.test/dialog?eventId=event-1", url)
	require.Equal(t, DialogShown, b.State())

	again, already, err := b.ShowDialog(show)
	require.NoError(t, err)
	require.True(t, already)
	require.Equal(t, url, again)
	require.Equal(t, 1, shows)
}

func TestState_String(t *testing.T) {
	require.Equal(t, "uninitialized", Uninitialized.String())
	require.Equal(t, "captured", Captured.String())
	require.Equal(t, "dialog-shown", DialogShown.String())
	require.Equal(t, "State(7)", State(7).String())
}

func TestRegistry_EvictsOldest(t *testing.T) {
	r := NewRegistry(2)
	occ := NewOccurrence("x", nil)

	r.Add(New("a", occ, nil))
	r.Add(New("b", occ, nil))
	r.Add(New("c", occ, nil))

	_, ok := r.Get("a")
	require.False(t, ok)
	got, ok := r.Get("c")
	require.True(t, ok)
	require.Equal(t, "c", got.ID())
}
