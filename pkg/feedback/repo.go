package feedback

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrFeedbackExists = errors.New("feedback already submitted for this report")

type FeedbackRepository interface {
	SaveFeedback(ctx context.Context, f Feedback) (Feedback, error)
}

type postgresFeedbackRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresFeedbackRepository(pool *pgxpool.Pool) FeedbackRepository {
	return &postgresFeedbackRepository{pool: pool}
}

func (r *postgresFeedbackRepository) SaveFeedback(ctx context.Context, f Feedback) (Feedback, error) {
	query := `INSERT INTO feedback (event_id, name, email, comments, submitted_at)
              VALUES ($1, $2, $3, $4, NOW())
              RETURNING id, event_id, name, email, comments, submitted_at`

	row := r.pool.QueryRow(ctx, query, f.EventID, f.Name, f.Email, f.Comments)

	var saved Feedback
	if err := row.Scan(&saved.ID, &saved.EventID, &saved.Name, &saved.Email, &saved.Comments, &saved.SubmittedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Feedback{}, ErrFeedbackExists
		}
		return Feedback{}, fmt.Errorf("save feedback: %w", err)
	}

	return saved, nil
}
