// Package harness serves a page of manual triggers for checking error reporting end to end.
package harness

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"pitchboard/pkg/feedback"
	"pitchboard/pkg/reporting"
	"pitchboard/pkg/response"
	"pitchboard/pkg/session"
	"pitchboard/pkg/startups"
)

const pageTemplate = "harness.html"

var (
	// TestUser is the identity set by the "set user" trigger.
	TestUser = reporting.User{ID: "test-user-123", Email: "test@example.com", Username: "TestUser"}

	sampleError = session.LocalError{
		Message: "This is a test error event",
		Stack: `Error: This is a test error event
    at createErrorEvent (harness.html:67:19)
    at button onClick (harness.html:117:33)
    at HTMLUnknownElement.callCallback (harness.html:4164:14)`,
	}

	feedbackOptions = feedback.DialogOptions{
		Title:     "We value your feedback",
		Subtitle:  "If you'd like to help us improve, please tell us what happened",
		Subtitle2: "Your feedback is appreciated!",
	}
)

type Handler struct {
	reporter reporting.Reporter
	dialogs  feedback.FeedbackService
	sessions *session.Store
}

func NewHandler(reporter reporting.Reporter, dialogs feedback.FeedbackService, sessions *session.Store) *Handler {
	return &Handler{reporter: reporter, dialogs: dialogs, sessions: sessions}
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	debug := router.Group("/debug")
	debug.GET("", h.page)
	debug.POST("/user", h.setUser)
	debug.POST("/sample-error", h.sampleError)
	debug.POST("/handled-error", h.handledError)
	debug.POST("/feedback", h.showFeedback)
	debug.GET("/crash", h.crash)
}

// @Summary      Harness page
// @Tags         debug
// @Produce      html
// @Router       /debug [get]
func (h *Handler) page(c *gin.Context) {
	id := session.ID(c)
	state := h.sessions.Get(id)
	pending := state.DialogURL
	if pending != "" {
		h.sessions.Update(id, func(s *session.State) { s.DialogURL = "" })
	}

	c.HTML(http.StatusOK, pageTemplate, gin.H{
		"State":     state,
		"DialogURL": pending,
		"Dialog":    h.dialogs.Options(feedbackOptions),
	})
}

// @Summary      Set the test user
// @Description  Attaches a fake identity to every report captured from this session
// @Tags         debug
// @Produce      json
// @Success      200  {object}  response.APIResponse{data=session.State}
// @Router       /debug/user [post]
func (h *Handler) setUser(c *gin.Context) {
	state := h.sessions.Update(session.ID(c), func(s *session.State) {
		u := TestUser
		s.User = &u
		s.Message = "User context set! Any errors will now include this user information."
	})
	h.respond(c, http.StatusOK, true, state)
}

// @Summary      Create a sample error
// @Description  Stores an error on the page only; nothing is reported
// @Tags         debug
// @Produce      json
// @Success      200  {object}  response.APIResponse{data=session.State}
// @Router       /debug/sample-error [post]
func (h *Handler) sampleError(c *gin.Context) {
	state := h.sessions.Update(session.ID(c), func(s *session.State) {
		e := sampleError
		s.Error = &e
		s.Message = "Sample error created (not sent to Sentry)"
	})
	h.respond(c, http.StatusOK, true, state)
}

// @Summary      Capture a handled error
// @Tags         debug
// @Produce      json
// @Success      200  {object}  response.APIResponse{data=session.State}
// @Failure      502  {object}  response.APIResponse{data=session.State}
// @Router       /debug/handled-error [post]
func (h *Handler) handledError(c *gin.Context) {
	id := session.ID(c)
	err := errors.New("This is a test handled error")
	user := h.sessions.Get(id).User

	report, captureErr := h.reporter.CaptureException(err, reporting.Capture{
		Tags:  map[string]string{reporting.TagErrorType: reporting.ErrorTypeHandled},
		Level: sentry.LevelError,
		User:  user,
	})

	state := h.sessions.Update(id, func(s *session.State) {
		s.Error = &session.LocalError{Message: err.Error()}
		if captureErr != nil {
			s.Message = fmt.Sprintf("Handled error could not be reported: %v", captureErr)
			return
		}
		s.LastReportID = report.ID
		s.Message = fmt.Sprintf("Handled error captured! Event ID: %s", report.ID)
	})

	if captureErr != nil {
		log.Warn().Err(captureErr).Msg("handled error capture failed")
		h.respond(c, http.StatusBadGateway, false, state)
		return
	}
	h.respond(c, http.StatusOK, true, state)
}

// @Summary      Show the feedback dialog without an error
// @Description  Reports a message first so the dialog has an identifier to attach to
// @Tags         debug
// @Produce      json
// @Success      200  {object}  response.APIResponse{data=session.State}
// @Failure      502  {object}  response.APIResponse{data=session.State}
// @Router       /debug/feedback [post]
func (h *Handler) showFeedback(c *gin.Context) {
	id := session.ID(c)
	user := h.sessions.Get(id).User

	report, err := h.reporter.CaptureMessage("User initiated feedback", reporting.Capture{User: user})
	if err != nil {
		log.Warn().Err(err).Msg("feedback message capture failed")
		state := h.sessions.Update(id, func(s *session.State) {
			s.Message = fmt.Sprintf("Feedback message could not be reported: %v", err)
		})
		h.respond(c, http.StatusBadGateway, false, state)
		return
	}

	dialog, showErr := h.dialogs.Show(report.ID, feedbackOptions, user)

	state := h.sessions.Update(id, func(s *session.State) {
		s.LastReportID = report.ID
		if showErr != nil {
			s.Message = fmt.Sprintf("Feedback dialog could not be shown for event ID: %s", report.ID)
			return
		}
		s.DialogShown = true
		s.DialogURL = dialog.URL
		s.Message = fmt.Sprintf("Feedback dialog shown for event ID: %s", report.ID)
	})

	if showErr != nil {
		h.respond(c, http.StatusBadGateway, false, state)
		return
	}
	h.respond(c, http.StatusOK, true, state)
}

// @Summary      Crash the request
// @Description  Dereferences a nil pointer so the error boundary handles it
// @Tags         debug
// @Router       /debug/crash [get]
func (h *Handler) crash(c *gin.Context) {
	var featured *startups.Startup
	c.String(http.StatusOK, featured.Title)
}

// respond answers JSON clients with the session state and sends browsers back to the page.
func (h *Handler) respond(c *gin.Context, code int, success bool, state session.State) {
	if c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML {
		c.Redirect(http.StatusSeeOther, "/debug")
		return
	}
	response.SendAPIResponse(c, code, success, state.Message, state)
}
