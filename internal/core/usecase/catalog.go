package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/akinsella123/CourseFindr/internal/core/domain"
	"github.com/akinsella123/CourseFindr/internal/core/ports"
)

// CatalogUseCase maintains the course catalog. Every mutation emits a
// catalog-changed event so the worker refits the space; a failed
// publish is surfaced to the caller because a silently stale space is
// worse than a retried mutation.
type CatalogUseCase struct {
	repo ports.CourseRepository
	bus  ports.CatalogEventBus
}

func NewCatalogUseCase(repo ports.CourseRepository, bus ports.CatalogEventBus) *CatalogUseCase {
	return &CatalogUseCase{repo: repo, bus: bus}
}

func (uc *CatalogUseCase) ListCourses(ctx context.Context) ([]domain.CourseRecord, error) {
	return uc.repo.List(ctx)
}

func (uc *CatalogUseCase) GetCourse(ctx context.Context, id string) (*domain.CourseRecord, error) {
	return uc.repo.GetByID(ctx, id)
}

func (uc *CatalogUseCase) CreateCourse(ctx context.Context, course domain.CourseRecord) (*domain.CourseRecord, error) {
	if err := validateCourse(&course); err != nil {
		return nil, err
	}
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	course.SkillTags = domain.CanonicalTags(course.SkillTags)
	course.InterestTags = domain.CanonicalTags(course.InterestTags)

	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now

	if err := uc.repo.Create(ctx, &course); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	if err := uc.bus.PublishCatalogChanged(ctx, course.ID); err != nil {
		return nil, fmt.Errorf("publish catalog change for %s: %w", course.ID, err)
	}
	return &course, nil
}

func (uc *CatalogUseCase) DeleteCourse(ctx context.Context, id string) error {
	if id == "" {
		return domain.WrapError(domain.ErrInvalidInput, "delete course",
			fmt.Errorf("course id must not be empty"))
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if err := uc.bus.PublishCatalogChanged(ctx, id); err != nil {
		return fmt.Errorf("publish catalog change for %s: %w", id, err)
	}
	return nil
}

func validateCourse(c *domain.CourseRecord) error {
	if c.Title == "" {
		return domain.WrapError(domain.ErrInvalidInput, "validate course",
			fmt.Errorf("title must not be empty"))
	}
	if c.Tuition < 0 {
		return domain.WrapError(domain.ErrInvalidInput, "validate course",
			fmt.Errorf("tuition must be non-negative, got %v", c.Tuition))
	}
	if c.DurationWeeks < 0 {
		return domain.WrapError(domain.ErrInvalidInput, "validate course",
			fmt.Errorf("duration_weeks must be non-negative, got %v", c.DurationWeeks))
	}
	if c.Modality == "" {
		c.Modality = domain.ModalityInPerson
	}
	if !c.Modality.Valid() {
		return domain.WrapError(domain.ErrInvalidInput, "validate course",
			fmt.Errorf("unknown modality %q", c.Modality))
	}
	return nil
}
