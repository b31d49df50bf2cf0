package startups

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// postgresStartupRepository answers the same two queries from a mirrored copy of the documents.
type postgresStartupRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresStartupRepository(pool *pgxpool.Pool) StartupRepository {
	return &postgresStartupRepository{pool: pool}
}

func (r *postgresStartupRepository) ListStartups(ctx context.Context) ([]Startup, error) {
	query := `SELECT s.id, s.title, s.slug, s.created_at, s.description, s.category, s.image, s.views,
                     a.id, a.name, a.image, a.bio
              FROM startups s
              LEFT JOIN authors a ON a.id = s.author_id
              ORDER BY s.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list startups: %w", err)
	}
	defer rows.Close()

	startups := make([]Startup, 0)
	for rows.Next() {
		var s Startup
		var authorID, name, image, bio *string
		if err := rows.Scan(&s.ID, &s.Title, &s.Slug.Current, &s.CreatedAt, &s.Description, &s.Category, &s.Image, &s.Views,
			&authorID, &name, &image, &bio); err != nil {
			return nil, fmt.Errorf("scan startup: %w", err)
		}
		if authorID != nil {
			s.Author = &Author{ID: *authorID, Name: deref(name), Image: deref(image), Bio: deref(bio)}
		}
		startups = append(startups, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list startups: %w", err)
	}

	return startups, nil
}

func (r *postgresStartupRepository) GetStartupByID(ctx context.Context, id string) (*Startup, error) {
	query := `SELECT s.id, s.title, s.slug, s.created_at, s.description, s.category, s.image, s.views, s.pitch,
                     a.id, a.username, a.image, a.bio
              FROM startups s
              LEFT JOIN authors a ON a.id = s.author_id
              WHERE s.id = $1`

	row := r.pool.QueryRow(ctx, query, id)

	var s Startup
	var authorID, username, image, bio *string
	if err := row.Scan(&s.ID, &s.Title, &s.Slug.Current, &s.CreatedAt, &s.Description, &s.Category, &s.Image, &s.Views, &s.Pitch,
		&authorID, &username, &image, &bio); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get startup %s: %w", id, err)
	}
	if authorID != nil {
		s.Author = &Author{ID: *authorID, Username: deref(username), Image: deref(image), Bio: deref(bio)}
	}

	return &s, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
