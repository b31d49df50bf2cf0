package feedback

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"pitchboard/pkg/response"
	"pitchboard/pkg/session"
)

// The outcome of a browser form submission travels back to the page in the FeedbackQueryParam query value.
const (
	FeedbackQueryParam = "feedback"
	FeedbackSubmitted  = "submitted"
	FeedbackFailed     = "failed"
)

type FeedbackHandler struct {
	service  FeedbackService
	sessions *session.Store
}

func NewFeedbackHandler(service FeedbackService, sessions *session.Store) *FeedbackHandler {
	return &FeedbackHandler{service: service, sessions: sessions}
}

func (h *FeedbackHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/reports/:eventId/dialog", h.getDialog)
	router.POST("/reports/:eventId/feedback", h.submitFeedback)
}

type submitFeedbackRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Comments string `json:"comments" form:"comments" binding:"required"`
	// ReturnTo is where browsers are sent back after submitting the form.
	ReturnTo string `json:"-" form:"return_to"`
}

// @Summary      Get feedback dialog
// @Description  Resolves the remote feedback form bound to a report identifier
// @Tags         feedback
// @Produce      json
// @Param        eventId  path      string  true  "Report identifier"
// @Success      200  {object}  response.APIResponse{data=Dialog}
// @Failure      400  {object}  response.APIResponse
// @Router       /reports/{eventId}/dialog [get]
func (h *FeedbackHandler) getDialog(c *gin.Context) {
	state := h.sessions.Get(session.ID(c))

	dialog, err := h.service.Show(c.Param("eventId"), DialogOptions{}, state.User)
	if err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, err.Error(), nil)
		return
	}
	response.SendAPIResponse(c, http.StatusOK, true, "feedback dialog", dialog)
}

// @Summary      Submit feedback
// @Description  Local fallback form for when the remote dialog cannot be shown
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        eventId  path      string  true  "Report identifier"
// @Param        request  body      submitFeedbackRequest  true  "Feedback"
// @Success      201  {object}  response.APIResponse{data=Feedback}
// @Failure      400  {object}  response.APIResponse
// @Failure      409  {object}  response.APIResponse
// @Failure      500  {object}  response.APIResponse
// @Router       /reports/{eventId}/feedback [post]
func (h *FeedbackHandler) submitFeedback(c *gin.Context) {
	var req submitFeedbackRequest
	if err := c.ShouldBind(&req); err != nil {
		h.reply(c, req.ReturnTo, http.StatusBadRequest, false, "invalid request payload", nil)
		return
	}

	saved, err := h.service.Submit(c.Request.Context(), Feedback{
		EventID:  c.Param("eventId"),
		Name:     req.Name,
		Email:    req.Email,
		Comments: req.Comments,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrFeedbackExists):
			h.reply(c, req.ReturnTo, http.StatusConflict, false, err.Error(), nil)
		case errors.Is(err, ErrEmptyEventID), errors.Is(err, ErrEmptyComments),
			errors.Is(err, ErrInvalidEmail), errors.Is(err, ErrTooLong):
			h.reply(c, req.ReturnTo, http.StatusBadRequest, false, err.Error(), nil)
		default:
			h.reply(c, req.ReturnTo, http.StatusInternalServerError, false, err.Error(), nil)
		}
		return
	}

	h.reply(c, req.ReturnTo, http.StatusCreated, true, "feedback submitted", saved)
}

// reply answers API clients with the JSON envelope. Browsers posting the HTML form are redirected
// back to returnTo with the outcome in the feedback query parameter and in the session message.
func (h *FeedbackHandler) reply(c *gin.Context, returnTo string, code int, success bool, message string, data any) {
	if c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) != gin.MIMEHTML {
		response.SendAPIResponse(c, code, success, message, data)
		return
	}

	text, status := "Thank you for your feedback!", FeedbackSubmitted
	if !success {
		text, status = "Feedback could not be submitted: "+message, FeedbackFailed
	}
	if id := session.ID(c); id != "" && h.sessions != nil {
		h.sessions.Update(id, func(s *session.State) { s.Message = text })
	}
	c.Redirect(http.StatusSeeOther, returnURL(returnTo, status))
}

// returnURL keeps redirects on this site and tags them with the submission outcome.
func returnURL(p, status string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		p = "/"
	}
	u, err := url.Parse(p)
	if err != nil || u.Host != "" || u.Scheme != "" {
		u = &url.URL{Path: "/"}
	}
	q := u.Query()
	q.Set(FeedbackQueryParam, status)
	u.RawQuery = q.Encode()
	return u.String()
}
