package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/akinsella123/CourseFindr/internal/core/domain"
)

type fakeEventBus struct {
	published  []string
	publishErr error
}

func (b *fakeEventBus) PublishCatalogChanged(_ context.Context, courseID string) error {
	if b.publishErr != nil {
		return b.publishErr
	}
	b.published = append(b.published, courseID)
	return nil
}

func (b *fakeEventBus) SubscribeCatalogChanged(_ context.Context, _ func(context.Context, string) error) error {
	return nil
}

func TestCreateCourseAssignsIDAndPublishes(t *testing.T) {
	repo := &fakeCourseRepo{}
	bus := &fakeEventBus{}
	uc := NewCatalogUseCase(repo, bus)

	created, err := uc.CreateCourse(context.Background(), domain.CourseRecord{
		Title:     "Intro to Databases",
		SkillTags: []string{"SQL", "sql", "  Databases "},
		Tuition:   1200,
	})
	if err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated course id")
	}
	if created.Modality != domain.ModalityInPerson {
		t.Errorf("modality = %s, want default in-person", created.Modality)
	}
	if want := []string{"sql", "databases"}; !reflect.DeepEqual(created.SkillTags, want) {
		t.Errorf("skill tags = %v, want %v", created.SkillTags, want)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
	if !reflect.DeepEqual(bus.published, []string{created.ID}) {
		t.Errorf("published events = %v, want one for %s", bus.published, created.ID)
	}
}

func TestCreateCourseValidation(t *testing.T) {
	tests := []struct {
		name   string
		course domain.CourseRecord
	}{
		{name: "missing title", course: domain.CourseRecord{Tuition: 100}},
		{name: "negative tuition", course: domain.CourseRecord{Title: "X", Tuition: -1}},
		{name: "negative duration", course: domain.CourseRecord{Title: "X", DurationWeeks: -2}},
		{name: "unknown modality", course: domain.CourseRecord{Title: "X", Modality: "remote"}},
	}

	uc := NewCatalogUseCase(&fakeCourseRepo{}, &fakeEventBus{})
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.CreateCourse(context.Background(), tc.course); !domain.IsKind(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestCreateCoursePublishFailureSurfaces(t *testing.T) {
	repo := &fakeCourseRepo{}
	bus := &fakeEventBus{publishErr: errors.New("nats unavailable")}
	uc := NewCatalogUseCase(repo, bus)

	if _, err := uc.CreateCourse(context.Background(), domain.CourseRecord{Title: "X"}); err == nil {
		t.Fatal("expected publish failure to surface")
	}
}

func TestDeleteCoursePublishes(t *testing.T) {
	repo := &fakeCourseRepo{courses: testCatalog()}
	bus := &fakeEventBus{}
	uc := NewCatalogUseCase(repo, bus)

	if err := uc.DeleteCourse(context.Background(), "ds-101"); err != nil {
		t.Fatalf("DeleteCourse: %v", err)
	}
	if !reflect.DeepEqual(bus.published, []string{"ds-101"}) {
		t.Errorf("published events = %v", bus.published)
	}
}

func TestDeleteCourseNotFound(t *testing.T) {
	uc := NewCatalogUseCase(&fakeCourseRepo{}, &fakeEventBus{})

	err := uc.DeleteCourse(context.Background(), "missing")
	if !domain.IsKind(err, domain.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}
