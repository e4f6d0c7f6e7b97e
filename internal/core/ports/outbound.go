package ports

import (
	"context"

	"github.com/akinsella123/CourseFindr/internal/core/domain"
)

// CourseRepository persists and reads the course catalog.
type CourseRepository interface {
	List(ctx context.Context) ([]domain.CourseRecord, error)
	GetByID(ctx context.Context, id string) (*domain.CourseRecord, error)
	Create(ctx context.Context, course *domain.CourseRecord) error
	Delete(ctx context.Context, id string) error
}

// CatalogEventBus publishes/consumes catalog mutation events.
type CatalogEventBus interface {
	PublishCatalogChanged(ctx context.Context, courseID string) error
	SubscribeCatalogChanged(ctx context.Context, handler func(context.Context, string) error) error
}

// SpaceManager owns the shared fitted space and its atomic replacement.
// Fitting is CPU-bound and never suspends, so these methods take no
// context.
type SpaceManager interface {
	Current() *domain.FittedSpace
	Ensure(catalog []domain.CourseRecord) (*domain.FittedSpace, error)
	Refit(catalog []domain.CourseRecord) (*domain.FittedSpace, error)
	Transform(space *domain.FittedSpace, text string) domain.DocumentVector
}

// TagMatcher is the pluggable matching strategy behind tag extraction.
// The shipped implementation is exact+fuzzy dictionary matching;
// alternative strategies can be substituted without touching the
// recommendation engine.
type TagMatcher interface {
	Extract(text string, vocabulary []string) domain.Extraction
}

// ResumeTextExtractor turns an uploaded resume file into plain text.
type ResumeTextExtractor interface {
	Extract(filename string, data []byte) (string, error)
}

// SkillSuggester answers "skills related to these" from an external
// skill graph. Implementations degrade to empty suggestions on failure.
type SkillSuggester interface {
	Related(ctx context.Context, skills []string, limit int) ([]string, error)
}
