package feedback

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"pitchboard/pkg/reporting"
	"pitchboard/pkg/sendemail"
)

const maxCommentsLength = 5000

var (
	ErrEmptyComments = errors.New("comments are required")
	ErrInvalidEmail  = errors.New("invalid email")
	ErrTooLong       = errors.New("comments are too long")
)

type FeedbackService interface {
	// Show resolves the feedback form for eventID. override fields win over the global options.
	Show(eventID string, override DialogOptions, user *reporting.User) (Dialog, error)
	// Options returns the form texts with override applied. It works without a DSN.
	Options(override DialogOptions) DialogOptions
	// Submit records feedback sent through the local fallback form.
	Submit(ctx context.Context, f Feedback) (Feedback, error)
}

type feedbackService struct {
	dsn       string
	defaults  DialogOptions
	repo      FeedbackRepository
	mailer    sendemail.EmailService
	recipient string
	now       func() time.Time
}

// NewFeedbackService wires the dialog and the fallback form. repo and mailer are optional.
func NewFeedbackService(dsn string, defaults DialogOptions, repo FeedbackRepository, mailer sendemail.EmailService, recipient string) FeedbackService {
	return &feedbackService{
		dsn:       dsn,
		defaults:  defaults,
		repo:      repo,
		mailer:    mailer,
		recipient: recipient,
		now:       time.Now,
	}
}

func (s *feedbackService) Show(eventID string, override DialogOptions, user *reporting.User) (Dialog, error) {
	opts := s.Options(override)
	u, err := DialogURL(s.dsn, eventID, opts, user)
	if err != nil {
		log.Error().Err(err).Str("event_id", eventID).Msg("failed to show feedback dialog")
		return Dialog{}, err
	}
	return Dialog{EventID: eventID, URL: u, Options: opts}, nil
}

func (s *feedbackService) Options(override DialogOptions) DialogOptions {
	return s.defaults.Merge(override)
}

func (s *feedbackService) Submit(ctx context.Context, f Feedback) (Feedback, error) {
	f.EventID = strings.TrimSpace(f.EventID)
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Comments = strings.TrimSpace(f.Comments)

	if f.EventID == "" {
		return Feedback{}, ErrEmptyEventID
	}
	if f.Comments == "" {
		return Feedback{}, ErrEmptyComments
	}
	if len(f.Comments) > maxCommentsLength {
		return Feedback{}, ErrTooLong
	}
	if f.Email != "" && !strings.Contains(f.Email, "@") {
		return Feedback{}, ErrInvalidEmail
	}

	saved := f
	saved.SubmittedAt = s.now()
	if s.repo != nil {
		var err error
		saved, err = s.repo.SaveFeedback(ctx, f)
		if err != nil {
			return Feedback{}, err
		}
	}

	log.Info().Str("event_id", saved.EventID).Msg("feedback received")

	if s.mailer != nil && s.recipient != "" {
		if err := s.notify(saved); err != nil {
			log.Warn().Err(err).Str("event_id", saved.EventID).Msg("feedback notification failed")
		}
	}

	return saved, nil
}

func (s *feedbackService) notify(f Feedback) error {
	subject := fmt.Sprintf("New feedback for report %s", f.EventID)
	from := f.Name
	if from == "" {
		from = "anonymous"
	}
	if f.Email != "" {
		from = fmt.Sprintf("%s <%s>", from, f.Email)
	}
	plainTextContent := fmt.Sprintf("Report: %s\nFrom: %s\n\n%s", f.EventID, from, f.Comments)
	htmlContent := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px;">
			<h2>New feedback</h2>
			<p><strong>Report:</strong> %s</p>
			<p><strong>From:</strong> %s</p>
			<blockquote style="white-space: pre-wrap;">%s</blockquote>
		</div>
	`, html.EscapeString(f.EventID), html.EscapeString(from), html.EscapeString(f.Comments))

	return s.mailer.SendEmail(subject, s.recipient, plainTextContent, htmlContent)
}
