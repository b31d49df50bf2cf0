package startups

import (
	"context"
	"errors"
	"strings"
)

var ErrInvalidStartupID = errors.New("invalid startup id")

type StartupService interface {
	ListStartups(ctx context.Context) ([]Startup, error)
	GetStartupByID(ctx context.Context, id string) (*Startup, error)
}

type startupService struct {
	repo StartupRepository
}

func NewStartupService(repo StartupRepository) StartupService {
	return &startupService{repo: repo}
}

func (s *startupService) ListStartups(ctx context.Context) ([]Startup, error) {
	return s.repo.ListStartups(ctx)
}

func (s *startupService) GetStartupByID(ctx context.Context, id string) (*Startup, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidStartupID
	}
	return s.repo.GetStartupByID(ctx, id)
}
