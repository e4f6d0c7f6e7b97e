package usecase

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/akinsella123/CourseFindr/internal/core/domain"
	"github.com/akinsella123/CourseFindr/internal/core/nlp"
	"github.com/akinsella123/CourseFindr/internal/core/ports"
	"github.com/akinsella123/CourseFindr/internal/core/vectorspace"
)

type fakeCourseRepo struct {
	courses []domain.CourseRecord
	listErr error

	created []domain.CourseRecord
	deleted []string
}

func (r *fakeCourseRepo) List(_ context.Context) ([]domain.CourseRecord, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.CourseRecord, len(r.courses))
	copy(out, r.courses)
	return out, nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id string) (*domain.CourseRecord, error) {
	for i := range r.courses {
		if r.courses[i].ID == id {
			c := r.courses[i]
			return &c, nil
		}
	}
	return nil, domain.WrapError(domain.ErrCourseNotFound, "get course", errors.New(id))
}

func (r *fakeCourseRepo) Create(_ context.Context, course *domain.CourseRecord) error {
	r.created = append(r.created, *course)
	r.courses = append(r.courses, *course)
	return nil
}

func (r *fakeCourseRepo) Delete(_ context.Context, id string) error {
	for i := range r.courses {
		if r.courses[i].ID == id {
			r.courses = append(r.courses[:i], r.courses[i+1:]...)
			r.deleted = append(r.deleted, id)
			return nil
		}
	}
	return domain.WrapError(domain.ErrCourseNotFound, "delete course", errors.New(id))
}

type fakeSuggester struct {
	related []string
	err     error
}

func (s *fakeSuggester) Related(_ context.Context, _ []string, _ int) ([]string, error) {
	return s.related, s.err
}

type staleSpaceManager struct{}

func (staleSpaceManager) Current() *domain.FittedSpace { return nil }

func (staleSpaceManager) Ensure(_ []domain.CourseRecord) (*domain.FittedSpace, error) {
	return &domain.FittedSpace{Version: "0-0"}, nil
}

func (staleSpaceManager) Refit(_ []domain.CourseRecord) (*domain.FittedSpace, error) {
	return &domain.FittedSpace{Version: "0-0"}, nil
}

func (staleSpaceManager) Transform(_ *domain.FittedSpace, _ string) domain.DocumentVector {
	return domain.DocumentVector{}
}

func testCatalog() []domain.CourseRecord {
	return []domain.CourseRecord{
		{
			ID:            "ds-101",
			Title:         "Data Science Bootcamp",
			Description:   "Learn python, statistics and machine learning for data analysis",
			SkillTags:     []string{"python", "machine learning", "statistics"},
			Location:      "Online",
			Modality:      domain.ModalityOnline,
			Tuition:       4000,
			DurationWeeks: 12,
		},
		{
			ID:            "web-201",
			Title:         "Full Stack Web Development",
			Description:   "Build web applications with javascript and react",
			SkillTags:     []string{"javascript", "react", "web development"},
			Location:      "Austin",
			Modality:      domain.ModalityHybrid,
			Tuition:       9000,
			DurationWeeks: 24,
		},
		{
			ID:            "art-110",
			Title:         "Art History Survey",
			Description:   "European painting and sculpture from the renaissance period",
			InterestTags:  []string{"art history"},
			Location:      "Boston",
			Modality:      domain.ModalityInPerson,
			Tuition:       2500,
			DurationWeeks: 8,
		},
	}
}

func newRecommender(repo *fakeCourseRepo, suggester ports.SkillSuggester) *RecommendUseCase {
	normalizer := nlp.NewNormalizer()
	manager := vectorspace.NewManager(vectorspace.New(normalizer))
	matcher := nlp.NewDictionaryMatcher(normalizer)
	return NewRecommendUseCase(repo, manager, matcher, suggester, nil, 0)
}

func TestRecommendRanksRelevantCourseFirst(t *testing.T) {
	repo := &fakeCourseRepo{courses: testCatalog()}
	uc := newRecommender(repo, nil)

	rec, err := uc.Recommend(context.Background(), domain.StudentProfile{
		Skills: []string{"python", "machine learning"},
	}, 0)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(rec.Matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(rec.Matches))
	}
	if rec.Matches[0].CourseID != "ds-101" {
		t.Fatalf("expected ds-101 first, got %s", rec.Matches[0].CourseID)
	}
	if rec.Matches[0].Score <= 0 {
		t.Fatalf("expected positive score for ds-101, got %g", rec.Matches[0].Score)
	}
	for _, m := range rec.Matches {
		if m.Score < 0 || m.Score > 1 {
			t.Fatalf("score out of bounds for %s: %g", m.CourseID, m.Score)
		}
	}
	for _, want := range []string{"python", "machine learning"} {
		found := false
		for _, tag := range rec.ExtractedTags {
			if tag == want {
				found = true
			}
		}
		if !found {
			t.Errorf("extracted tags %v missing %q", rec.ExtractedTags, want)
		}
	}
	if rec.Metadata.SpaceVersion == "" {
		t.Error("expected non-empty space version")
	}
	if rec.Metadata.CoursesEvaluated != 3 {
		t.Errorf("courses evaluated = %d, want 3", rec.Metadata.CoursesEvaluated)
	}
	if got := rec.Matches[0].MatchedTags; len(got) != 2 {
		t.Errorf("matched tags for ds-101 = %v, want python and machine learning", got)
	}
}

func TestRecommendTuitionFilterExcludes(t *testing.T) {
	repo := &fakeCourseRepo{courses: testCatalog()}
	uc := newRecommender(repo, nil)

	maxTuition := 5000.0
	rec, err := uc.Recommend(context.Background(), domain.StudentProfile{
		Skills:     []string{"javascript", "react"},
		MaxTuition: &maxTuition,
	}, 0)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	for _, m := range rec.Matches {
		if m.CourseID == "web-201" {
			t.Fatal("web-201 exceeds max tuition but was returned")
		}
	}
	if rec.Metadata.CoursesFiltered != 1 {
		t.Errorf("courses filtered = %d, want 1", rec.Metadata.CoursesFiltered)
	}
	if !reflect.DeepEqual(rec.Metadata.FiltersApplied, []string{"max_tuition"}) {
		t.Errorf("filters applied = %v, want [max_tuition]", rec.Metadata.FiltersApplied)
	}
}

func TestRecommendModalityAndLocationFilters(t *testing.T) {
	tests := []struct {
		name    string
		profile domain.StudentProfile
		wantIDs []string
	}{
		{
			name:    "in-person only",
			profile: domain.StudentProfile{Modality: domain.ModalityInPerson},
			wantIDs: []string{"art-110"},
		},
		{
			name:    "location keeps remote-capable courses",
			profile: domain.StudentProfile{Location: "Boston"},
			wantIDs: []string{"art-110", "ds-101", "web-201"},
		},
		{
			name:    "location drops foreign in-person courses",
			profile: domain.StudentProfile{Location: "Seattle"},
			wantIDs: []string{"ds-101", "web-201"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeCourseRepo{courses: testCatalog()}
			uc := newRecommender(repo, nil)

			rec, err := uc.Recommend(context.Background(), tc.profile, 0)
			if err != nil {
				t.Fatalf("Recommend: %v", err)
			}
			got := make([]string, 0, len(rec.Matches))
			for _, m := range rec.Matches {
				got = append(got, m.CourseID)
			}
			if !reflect.DeepEqual(got, tc.wantIDs) {
				t.Errorf("matches = %v, want %v", got, tc.wantIDs)
			}
		})
	}
}

func TestRecommendDeterministic(t *testing.T) {
	repo := &fakeCourseRepo{courses: testCatalog()}
	uc := newRecommender(repo, nil)
	profile := domain.StudentProfile{Skills: []string{"python"}, Interests: []string{"statistics"}}

	first, err := uc.Recommend(context.Background(), profile, 0)
	if err != nil {
		t.Fatalf("first Recommend: %v", err)
	}
	second, err := uc.Recommend(context.Background(), profile, 0)
	if err != nil {
		t.Fatalf("second Recommend: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical requests produced different recommendations")
	}
}

func TestRecommendTopKBound(t *testing.T) {
	repo := &fakeCourseRepo{courses: testCatalog()}
	uc := newRecommender(repo, nil)

	rec, err := uc.Recommend(context.Background(), domain.StudentProfile{}, 1)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(rec.Matches) != 1 {
		t.Fatalf("expected 1 match with topK=1, got %d", len(rec.Matches))
	}
	if rec.TotalCandidates != 3 {
		t.Errorf("total candidates = %d, want 3", rec.TotalCandidates)
	}
}

func TestRecommendEmptyProfileOrdersByID(t *testing.T) {
	repo := &fakeCourseRepo{courses: testCatalog()}
	uc := newRecommender(repo, nil)

	rec, err := uc.Recommend(context.Background(), domain.StudentProfile{}, 0)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	want := []string{"art-110", "ds-101", "web-201"}
	got := make([]string, 0, len(rec.Matches))
	for _, m := range rec.Matches {
		got = append(got, m.CourseID)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("empty profile order = %v, want %v", got, want)
	}

	hasHint := false
	for _, s := range rec.Suggestions {
		if strings.Contains(s, "add specific skills") {
			hasHint = true
		}
	}
	if !hasHint {
		t.Errorf("suggestions %v missing skills hint", rec.Suggestions)
	}
}

func TestRecommendInvalidProfile(t *testing.T) {
	repo := &fakeCourseRepo{courses: testCatalog()}
	uc := newRecommender(repo, nil)

	negative := -1.0
	_, err := uc.Recommend(context.Background(), domain.StudentProfile{MaxTuition: &negative}, 0)
	if !domain.IsKind(err, domain.ErrInvalidProfile) {
		t.Fatalf("expected ErrInvalidProfile, got %v", err)
	}
}

func TestRecommendRepositoryFailure(t *testing.T) {
	repo := &fakeCourseRepo{listErr: errors.New("connection refused")}
	uc := newRecommender(repo, nil)

	if _, err := uc.Recommend(context.Background(), domain.StudentProfile{}, 0); err == nil {
		t.Fatal("expected error when catalog load fails")
	}
}

func TestRecommendStaleSpace(t *testing.T) {
	repo := &fakeCourseRepo{courses: testCatalog()}
	normalizer := nlp.NewNormalizer()
	uc := NewRecommendUseCase(repo, staleSpaceManager{}, nlp.NewDictionaryMatcher(normalizer), nil, nil, 0)

	_, err := uc.Recommend(context.Background(), domain.StudentProfile{}, 0)
	if !domain.IsKind(err, domain.ErrStaleSpace) {
		t.Fatalf("expected ErrStaleSpace, got %v", err)
	}
}

func TestRecommendSkillGraphSuggestions(t *testing.T) {
	repo := &fakeCourseRepo{courses: testCatalog()}
	uc := newRecommender(repo, &fakeSuggester{related: []string{"deep learning"}})

	rec, err := uc.Recommend(context.Background(), domain.StudentProfile{
		Skills: []string{"machine learning"},
	}, 0)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	found := false
	for _, s := range rec.Suggestions {
		if strings.Contains(s, "deep learning") {
			found = true
		}
	}
	if !found {
		t.Errorf("suggestions %v missing skill graph entry", rec.Suggestions)
	}
}

func TestRecommendSkillGraphFailureDegrades(t *testing.T) {
	repo := &fakeCourseRepo{courses: testCatalog()}
	uc := newRecommender(repo, &fakeSuggester{err: errors.New("graph down")})

	if _, err := uc.Recommend(context.Background(), domain.StudentProfile{
		Skills: []string{"python"},
	}, 0); err != nil {
		t.Fatalf("skill graph failure must not fail recommendation: %v", err)
	}
}
