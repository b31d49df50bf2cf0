package boundary

import (
	"errors"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"pitchboard/pkg/feedback"
	"pitchboard/pkg/reporting"
	"pitchboard/pkg/response"
	"pitchboard/pkg/session"
)

const fallbackTemplate = "global_error.html"

type Options struct {
	// ShowDetails exposes the raw message, digest and stack on the fallback page.
	ShowDetails bool
	DialogDelay time.Duration
	// RegistrySize bounds how many recent activations can be re-rendered.
	RegistrySize int
}

type Handler struct {
	reporter reporting.Reporter
	dialogs  feedback.FeedbackService
	sessions *session.Store
	registry *Registry
	opts     Options
}

func NewHandler(reporter reporting.Reporter, dialogs feedback.FeedbackService, sessions *session.Store, opts Options) *Handler {
	return &Handler{
		reporter: reporter,
		dialogs:  dialogs,
		sessions: sessions,
		registry: NewRegistry(opts.RegistrySize),
		opts:     opts,
	}
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.GET("/errors/:occurrence", h.rerender)
	router.POST("/errors/:occurrence/dialog", h.showDialog)
}

// Middleware is the top-level failure boundary. Install it right after the request logger
// so it wraps every handler and the logger still sees the 500.
func (h *Handler) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			occ := NewOccurrence(rec, debug.Stack())
			b := New(uuid.NewString(), occ, h.userFor(c))
			h.registry.Add(b)

			log.Error().Err(occ.Err).Str("occurrence", b.ID()).Str("digest", occ.Digest).
				Str("path", c.Request.URL.Path).Msg("unhandled error")

			// reporting failures are already logged; the page renders regardless
			_, _ = b.Capture(h.reporter)

			c.Abort()
			if c.Writer.Written() {
				return
			}
			h.render(c, b)
		}()
		c.Next()
	}
}

func (h *Handler) userFor(c *gin.Context) *reporting.User {
	if h.sessions == nil {
		return nil
	}
	id := session.ID(c)
	if id == "" {
		return nil
	}
	return h.sessions.Get(id).User
}

// FallbackView is the JSON form of the fallback page.
type FallbackView struct {
	OccurrenceID string `json:"occurrence_id"`
	ReportID     string `json:"report_id,omitempty"`
	State        string `json:"state"`
	DialogShown  bool   `json:"dialog_shown"`
	Message      string `json:"error_message,omitempty"`
	Digest       string `json:"digest,omitempty"`
	Stack        string `json:"stack,omitempty"`
}

func (h *Handler) render(c *gin.Context, b *Boundary) {
	occ := b.Occurrence()
	state := b.State()
	view := FallbackView{
		OccurrenceID: b.ID(),
		ReportID:     b.ReportID(),
		State:        state.String(),
		DialogShown:  state == DialogShown,
	}
	if h.opts.ShowDetails {
		view.Message = occ.Message()
		view.Digest = occ.Digest
		view.Stack = occ.Stack
	}

	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		response.SendAPIResponse(c, occ.StatusCode, false, "something went wrong", view)
		return
	}

	var dialog feedback.DialogOptions
	if h.dialogs != nil {
		dialog = h.dialogs.Options(feedback.DialogOptions{})
	}

	c.HTML(occ.StatusCode, fallbackTemplate, gin.H{
		"OccurrenceID":   view.OccurrenceID,
		"ReportID":       view.ReportID,
		"DialogShown":    view.DialogShown,
		"ShowDetails":    h.opts.ShowDetails,
		"Message":        view.Message,
		"Digest":         view.Digest,
		"Stack":          view.Stack,
		"StatusCode":     occ.StatusCode,
		"DialogDelayMs":  h.opts.DialogDelay.Milliseconds(),
		"Dialog":         dialog,
		"FeedbackStatus": c.Query(feedback.FeedbackQueryParam),
	})
}

// @Summary      Re-render an error page
// @Description  Renders the fallback page of a caught error again without reporting it a second time
// @Tags         errors
// @Produce      html,json
// @Param        occurrence  path  string  true  "Occurrence ID"
// @Success      500  {object}  response.APIResponse{data=FallbackView}
// @Failure      404  {object}  response.APIResponse
// @Router       /errors/{occurrence} [get]
func (h *Handler) rerender(c *gin.Context) {
	b, ok := h.registry.Get(c.Param("occurrence"))
	if !ok {
		response.SendAPIResponse(c, http.StatusNotFound, false, "error not found", nil)
		return
	}
	_, _ = b.Capture(h.reporter)
	h.render(c, b)
}

type dialogView struct {
	EventID      string `json:"event_id"`
	URL          string `json:"url"`
	AlreadyShown bool   `json:"already_shown"`
	State        string `json:"state"`
}

// @Summary      Show the feedback dialog for a caught error
// @Tags         errors
// @Produce      json
// @Param        occurrence  path  string  true  "Occurrence ID"
// @Success      200  {object}  response.APIResponse{data=dialogView}
// @Failure      404  {object}  response.APIResponse
// @Failure      409  {object}  response.APIResponse
// @Failure      502  {object}  response.APIResponse
// @Router       /errors/{occurrence}/dialog [post]
func (h *Handler) showDialog(c *gin.Context) {
	b, ok := h.registry.Get(c.Param("occurrence"))
	if !ok {
		response.SendAPIResponse(c, http.StatusNotFound, false, "error not found", nil)
		return
	}

	u, already, err := b.ShowDialog(func(reportID string, user *reporting.User) (string, error) {
		d, err := h.dialogs.Show(reportID, feedback.DialogOptions{}, user)
		return d.URL, err
	})
	if err != nil {
		if errors.Is(err, ErrNoReport) {
			response.SendAPIResponse(c, http.StatusConflict, false, err.Error(), nil)
			return
		}
		response.SendAPIResponse(c, http.StatusBadGateway, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "feedback dialog", dialogView{
		EventID:      b.ReportID(),
		URL:          u,
		AlreadyShown: already,
		State:        b.State().String(),
	})
}
