package usecase

import (
	"context"
	"fmt"

	"github.com/akinsella123/CourseFindr/internal/core/domain"
	"github.com/akinsella123/CourseFindr/internal/core/ports"
)

// RefitSpaceUseCase rebuilds the fitted space from the current catalog.
// Driven by the worker on catalog-changed events and on a periodic
// timer.
type RefitSpaceUseCase struct {
	repo   ports.CourseRepository
	spaces ports.SpaceManager
}

func NewRefitSpaceUseCase(repo ports.CourseRepository, spaces ports.SpaceManager) *RefitSpaceUseCase {
	return &RefitSpaceUseCase{repo: repo, spaces: spaces}
}

func (uc *RefitSpaceUseCase) Refit(ctx context.Context) (*domain.FittedSpace, error) {
	catalog, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog for refit: %w", err)
	}
	space, err := uc.spaces.Refit(catalog)
	if err != nil {
		return nil, fmt.Errorf("refit space: %w", err)
	}
	return space, nil
}
