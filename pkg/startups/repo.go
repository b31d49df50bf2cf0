package startups

import (
	"context"
	"fmt"
)

// StartupRepository is the read-only query layer over the document store.
// GetStartupByID returns (nil, nil) when no document has the id.
type StartupRepository interface {
	ListStartups(ctx context.Context) ([]Startup, error)
	GetStartupByID(ctx context.Context, id string) (*Startup, error)
}

// Querier runs a GROQ query; *cms.Client implements it.
type Querier interface {
	Query(ctx context.Context, query string, params map[string]any, out any) error
}

type sanityStartupRepository struct {
	client Querier
}

func NewSanityStartupRepository(client Querier) StartupRepository {
	return &sanityStartupRepository{client: client}
}

func (r *sanityStartupRepository) ListStartups(ctx context.Context) ([]Startup, error) {
	startups := make([]Startup, 0)
	if err := r.client.Query(ctx, StartupsQuery, nil, &startups); err != nil {
		return nil, fmt.Errorf("list startups: %w", err)
	}
	return startups, nil
}

func (r *sanityStartupRepository) GetStartupByID(ctx context.Context, id string) (*Startup, error) {
	var s *Startup
	if err := r.client.Query(ctx, StartupByIDQuery, map[string]any{"id": id}, &s); err != nil {
		return nil, fmt.Errorf("get startup %s: %w", id, err)
	}
	return s, nil
}
