package feedback

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockFeedbackRepository struct {
	mock.Mock
}

func (m *mockFeedbackRepository) SaveFeedback(ctx context.Context, f Feedback) (Feedback, error) {
	args := m.Called(ctx, f)
	saved, _ := args.Get(0).(Feedback)
	return saved, args.Error(1)
}

type mockEmailService struct {
	mock.Mock
}

func (m *mockEmailService) SendEmail(subject, toEmail, plainTextContent, htmlContent string) error {
	args := m.Called(subject, toEmail, plainTextContent, htmlContent)
	return args.Error(0)
}

func TestFeedbackService_Show_MergesDefaults(t *testing.T) {
	svc := NewFeedbackService(testDSN, DialogOptions{Title: "We've noticed an error", LabelSubmit: "Submit"}, nil, nil, "")

	dialog, err := svc.Show("e1", DialogOptions{Title: "We value your feedback"}, nil)

	require.NoError(t, err)
	require.Equal(t, "e1", dialog.EventID)
	require.Equal(t, "We value your feedback", dialog.Options.Title)
	require.Equal(t, "Submit", dialog.Options.LabelSubmit)
	require.Contains(t, dialog.URL, "eventId=e1")
}

func TestFeedbackService_Show_WithoutDSNFails(t *testing.T) {
	svc := NewFeedbackService("", DialogOptions{}, nil, nil, "")

	_, err := svc.Show("e1", DialogOptions{}, nil)

	require.ErrorIs(t, err, ErrInvalidDSN)
}

func TestFeedbackService_Options_WithoutDSN(t *testing.T) {
	svc := NewFeedbackService("", DialogOptions{LabelName: "Name", LabelSubmit: "Submit"}, nil, nil, "")

	opts := svc.Options(DialogOptions{Title: "We value your feedback"})

	require.Equal(t, "Name", opts.LabelName)
	require.Equal(t, "Submit", opts.LabelSubmit)
	require.Equal(t, "We value your feedback", opts.Title)
}

func TestFeedbackService_Submit_PersistsAndNotifies(t *testing.T) {
	repo := new(mockFeedbackRepository)
	mailer := new(mockEmailService)
	svc := NewFeedbackService(testDSN, DialogOptions{}, repo, mailer, "ops@example.com")

	saved := Feedback{ID: 1, EventID: "e1", Name: "Ann", Email: "ann@example.com", Comments: "It broke", SubmittedAt: time.Now()}
	repo.On("SaveFeedback", mock.Anything, Feedback{EventID: "e1", Name: "Ann", Email: "ann@example.com", Comments: "It broke"}).Return(saved, nil)
	mailer.On("SendEmail", "New feedback for report e1", "ops@example.com",
		mock.MatchedBy(func(plain string) bool { return strings.Contains(plain, "It broke") }),
		mock.MatchedBy(func(html string) bool { return strings.Contains(html, "Ann &lt;ann@example.com&gt;") }),
	).Return(nil)

	got, err := svc.Submit(context.Background(), Feedback{EventID: " e1 ", Name: "Ann", Email: "ann@example.com", Comments: "  It broke  "})

	require.NoError(t, err)
	require.Equal(t, int64(1), got.ID)
	repo.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestFeedbackService_Submit_MailFailureIsNotFatal(t *testing.T) {
	mailer := new(mockEmailService)
	svc := NewFeedbackService(testDSN, DialogOptions{}, nil, mailer, "ops@example.com")

	mailer.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("sendgrid down"))

	got, err := svc.Submit(context.Background(), Feedback{EventID: "e1", Comments: "hi"})

	require.NoError(t, err)
	require.Equal(t, "hi", got.Comments)
	require.False(t, got.SubmittedAt.IsZero())
	mailer.AssertExpectations(t)
}

func TestFeedbackService_Submit_Validation(t *testing.T) {
	repo := new(mockFeedbackRepository)
	svc := NewFeedbackService(testDSN, DialogOptions{}, repo, nil, "")
	ctx := context.Background()

	_, err := svc.Submit(ctx, Feedback{Comments: "hi"})
	require.ErrorIs(t, err, ErrEmptyEventID)

	_, err = svc.Submit(ctx, Feedback{EventID: "e1", Comments: "   "})
	require.ErrorIs(t, err, ErrEmptyComments)

	_, err = svc.Submit(ctx, Feedback{EventID: "e1", Comments: "hi", Email: "nope"})
	require.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Submit(ctx, Feedback{EventID: "e1", Comments: strings.Repeat("x", maxCommentsLength+1)})
	require.ErrorIs(t, err, ErrTooLong)

	repo.AssertNotCalled(t, "SaveFeedback", mock.Anything, mock.Anything)
}

func TestFeedbackService_Submit_DuplicatePropagates(t *testing.T) {
	repo := new(mockFeedbackRepository)
	svc := NewFeedbackService(testDSN, DialogOptions{}, repo, nil, "")

	repo.On("SaveFeedback", mock.Anything, mock.Anything).Return(Feedback{}, ErrFeedbackExists)

	_, err := svc.Submit(context.Background(), Feedback{EventID: "e1", Comments: "again"})

	require.ErrorIs(t, err, ErrFeedbackExists)
}
