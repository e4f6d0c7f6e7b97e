package ports

import (
	"context"

	"github.com/akinsella123/CourseFindr/internal/core/domain"
)

// CourseRecommender is the inbound contract for ranked course matching.
type CourseRecommender interface {
	Recommend(ctx context.Context, profile domain.StudentProfile, topK int) (*domain.Recommendation, error)
}

// TagExtractionService is the inbound contract for skill/interest
// extraction from free text or uploaded resume files.
type TagExtractionService interface {
	ExtractFromText(ctx context.Context, text string) (*domain.TagExtraction, error)
	ExtractFromFile(ctx context.Context, filename string, data []byte) (*domain.TagExtraction, error)
}

// CatalogService is the inbound contract for catalog maintenance. Every
// mutation invalidates the fitted space via a catalog-changed event.
type CatalogService interface {
	ListCourses(ctx context.Context) ([]domain.CourseRecord, error)
	GetCourse(ctx context.Context, id string) (*domain.CourseRecord, error)
	CreateCourse(ctx context.Context, course domain.CourseRecord) (*domain.CourseRecord, error)
	DeleteCourse(ctx context.Context, id string) error
}

// SpaceRefitter is the inbound contract for the refit worker.
type SpaceRefitter interface {
	Refit(ctx context.Context) (*domain.FittedSpace, error)
}
