package boundary

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"pitchboard/pkg/feedback"
	"pitchboard/pkg/reporting"
	"pitchboard/pkg/response"
	"pitchboard/pkg/session"
	"pitchboard/pkg/testhelpers"
	"pitchboard/pkg/web"
)

type testEnv struct {
	router    *gin.Engine
	transport *testhelpers.RecordingTransport
	sessions  *session.Store
}

func setupBoundary(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	transport := testhelpers.NewRecordingTransport()
	reporter, err := reporting.New(reporting.Options{
		DSN:         testhelpers.TestDSN,
		Environment: "production",
		Transport:   transport,
	})
	require.NoError(t, err)

	sessions := session.NewStore(time.Hour)
	dialogs := feedback.NewFeedbackService(testhelpers.TestDSN, feedback.DialogOptions{LabelSubmit: "Submit"}, nil, nil, "")
	h := NewHandler(reporter, dialogs, sessions, Options{ShowDetails: true, DialogDelay: 500 * time.Millisecond})

	r := gin.New()
	web.Install(r)
	r.Use(h.Middleware())
	r.Use(session.Middleware(false))
	h.RegisterRoutes(r)

	r.GET("/boom", func(c *gin.Context) {
		panic("kaboom")
	})
	r.GET("/login-then-boom", func(c *gin.Context) {
		sessions.Update(session.ID(c), func(s *session.State) {
			s.User = &reporting.User{ID: "test-user-123", Email: "test@example.com", Username: "TestUser"}
		})
		var p *struct{ Name string }
		_ = p.Name
	})

	return testEnv{router: r, transport: transport, sessions: sessions}
}

func doJSON(t *testing.T, r http.Handler, method, path string) (*httptest.ResponseRecorder, response.APIResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestMiddleware_ReportsPanicOnceAcrossRerenders(t *testing.T) {
	env := setupBoundary(t)

	w, resp := doJSON(t, env.router, http.MethodGet, "/boom")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.False(t, resp.Success)

	data := resp.Data.(map[string]any)
	occurrence := data["occurrence_id"].(string)
	reportID := data["report_id"].(string)
	require.NotEmpty(t, occurrence)
	require.NotEmpty(t, reportID)
	require.Equal(t, "captured", data["state"])
	require.Equal(t, "kaboom", data["error_message"])
	require.NotEmpty(t, data["digest"])

	events := env.transport.Events()
	require.Len(t, events, 1)
	require.Equal(t, reportID, string(events[0].EventID))
	require.Equal(t, reporting.BoundaryLocation, events[0].Tags[reporting.TagErrorLocation])
	require.Equal(t, "kaboom", events[0].Extra["errorMessage"])

	for i := 0; i < 3; i++ {
		w, resp = doJSON(t, env.router, http.MethodGet, "/errors/"+occurrence)
		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.Equal(t, reportID, resp.Data.(map[string]any)["report_id"])
	}
	require.Len(t, env.transport.Events(), 1)
}

func TestMiddleware_AttachesSessionUser(t *testing.T) {
	env := setupBoundary(t)

	_, _ = doJSON(t, env.router, http.MethodGet, "/login-then-boom")

	events := env.transport.Events()
	require.Len(t, events, 1)
	require.Equal(t, "test-user-123", events[0].User.ID)
	require.Equal(t, "test@example.com", events[0].User.Email)
	require.Equal(t, "TestUser", events[0].User.Username)
}

func TestMiddleware_RendersFallbackPage(t *testing.T) {
	env := setupBoundary(t)

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := w.Body.String()
	require.Contains(t, body, "Something went wrong!")
	require.Contains(t, body, "Report this issue")
	require.Contains(t, body, "kaboom")
	require.Contains(t, body, `data-dialog-delay-ms="500"`)
	require.Contains(t, body, "Submit")

	reportID := string(env.transport.Events()[0].EventID)
	require.Contains(t, body, "/reports/"+reportID+"/feedback")
}

func TestMiddleware_HidesDetailsWhenDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	transport := testhelpers.NewRecordingTransport()
	reporter, err := reporting.New(reporting.Options{DSN: testhelpers.TestDSN, Environment: "production", Transport: transport})
	require.NoError(t, err)

	h := NewHandler(reporter, nil, nil, Options{})
	r := gin.New()
	r.Use(h.Middleware())
	r.GET("/boom", func(c *gin.Context) { panic("secret detail") })

	w, resp := doJSON(t, r, http.MethodGet, "/boom")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotContains(t, w.Body.String(), "secret detail")
	require.Equal(t, "captured", resp.Data.(map[string]any)["state"])
}

func TestDialog_ShownOnce(t *testing.T) {
	env := setupBoundary(t)

	_, resp := doJSON(t, env.router, http.MethodGet, "/boom")
	data := resp.Data.(map[string]any)
	occurrence := data["occurrence_id"].(string)
	reportID := data["report_id"].(string)

	w, resp := doJSON(t, env.router, http.MethodPost, "/errors/"+occurrence+"/dialog")
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)
	dialog := resp.Data.(map[string]any)
	require.False(t, dialog["already_shown"].(bool))
	require.Equal(t, "dialog-shown", dialog["state"])
	require.True(t, strings.HasPrefix(dialog["url"].(string), "https://o1.ingest.sentry.io/api/embed/error-page/?"))
	require.Contains(t, dialog["url"], "eventId="+reportID)

	_, resp = doJSON(t, env.router, http.MethodPost, "/errors/"+occurrence+"/dialog")
	again := resp.Data.(map[string]any)
	require.True(t, again["already_shown"].(bool))
	require.Equal(t, dialog["url"], again["url"])

	_, resp = doJSON(t, env.router, http.MethodGet, "/errors/"+occurrence)
	require.True(t, resp.Data.(map[string]any)["dialog_shown"].(bool))
	require.Len(t, env.transport.Events(), 1)
}

func TestErrors_UnknownOccurrence(t *testing.T) {
	env := setupBoundary(t)

	w, _ := doJSON(t, env.router, http.MethodGet, "/errors/nope")
	require.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, env.router, http.MethodPost, "/errors/nope/dialog")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestMiddleware_FallbackFormWithoutDialogDSN(t *testing.T) {
	gin.SetMode(gin.TestMode)
	transport := testhelpers.NewRecordingTransport()
	reporter, err := reporting.New(reporting.Options{DSN: testhelpers.TestDSN, Environment: "production", Transport: transport})
	require.NoError(t, err)

	dialogs := feedback.NewFeedbackService("", feedback.DialogOptions{
		LabelName:     "Name",
		LabelEmail:    "Email",
		LabelComments: "What happened?",
		LabelSubmit:   "Submit Crash Report",
	}, nil, nil, "")
	h := NewHandler(reporter, dialogs, nil, Options{})

	r := gin.New()
	web.Install(r)
	r.Use(h.Middleware())
	h.RegisterRoutes(r)
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := w.Body.String()
	require.Contains(t, body, `id="fallback-form"`)
	require.Contains(t, body, "Name <input")
	require.Contains(t, body, "What happened? <textarea")
	require.Contains(t, body, `<button type="submit">Submit Crash Report</button>`)
	require.Len(t, transport.Events(), 1)
}

func TestRerender_ShowsFeedbackOutcome(t *testing.T) {
	env := setupBoundary(t)

	_, resp := doJSON(t, env.router, http.MethodGet, "/boom")
	occurrence := resp.Data.(map[string]any)["occurrence_id"].(string)

	get := func(query string) string {
		req := httptest.NewRequest(http.MethodGet, "/errors/"+occurrence+query, nil)
		req.Header.Set("Accept", "text/html")
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		require.Equal(t, http.StatusInternalServerError, w.Code)
		return w.Body.String()
	}

	body := get("?feedback=submitted")
	require.Contains(t, body, "Thank you for your feedback!")
	require.Contains(t, body, `data-feedback="submitted"`)

	body = get("?feedback=failed")
	require.NotContains(t, body, "Thank you for your feedback!")
	require.Contains(t, body, `id="fallback-form"`)
	require.Contains(t, body, `name="return_to" value="/errors/`+occurrence+`"`)

	require.Len(t, env.transport.Events(), 1)
}
