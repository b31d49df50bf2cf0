package sendemail

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"pitchboard/pkg/config"
)

type EmailService interface {
	SendEmail(subject, toEmail, plainTextContent, htmlContent string) error
}

type emailService struct {
	client      *sendgrid.Client
	senderEmail string
	senderName  string
}

// NewEmailService returns nil when no SendGrid key is configured; callers treat nil as "mail disabled".
func NewEmailService(settings config.EmailSettings) EmailService {
	if settings.SendGridAPIKey == "" {
		return nil
	}
	return &emailService{
		client:      sendgrid.NewSendClient(settings.SendGridAPIKey),
		senderEmail: settings.SenderEmail,
		senderName:  settings.SenderName,
	}
}

func (e *emailService) SendEmail(subject, toEmail, plainTextContent, htmlContent string) error {
	from := mail.NewEmail(e.senderName, e.senderEmail)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)
	response, err := e.client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email: status %d", response.StatusCode)
	}
	return nil
}
