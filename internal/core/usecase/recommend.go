package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/akinsella123/CourseFindr/internal/core/domain"
	"github.com/akinsella123/CourseFindr/internal/core/ports"
)

const defaultTopK = 20

// RecommendUseCase ranks catalog courses against a student profile:
// hard filters first, then cosine similarity in the shared fitted
// space, with a deterministic tie-break so identical inputs always
// produce identical output.
type RecommendUseCase struct {
	repo      ports.CourseRepository
	spaces    ports.SpaceManager
	matcher   ports.TagMatcher
	suggester ports.SkillSuggester

	baseVocabulary []string
	topK           int
}

func NewRecommendUseCase(
	repo ports.CourseRepository,
	spaces ports.SpaceManager,
	matcher ports.TagMatcher,
	suggester ports.SkillSuggester,
	baseVocabulary []string,
	topK int,
) *RecommendUseCase {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &RecommendUseCase{
		repo:           repo,
		spaces:         spaces,
		matcher:        matcher,
		suggester:      suggester,
		baseVocabulary: baseVocabulary,
		topK:           topK,
	}
}

func (uc *RecommendUseCase) Recommend(ctx context.Context, profile domain.StudentProfile, topK int) (*domain.Recommendation, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if topK <= 0 {
		topK = uc.topK
	}

	catalog, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog snapshot: %w", err)
	}

	space, err := uc.spaces.Ensure(catalog)
	if err != nil {
		return nil, fmt.Errorf("ensure fitted space: %w", err)
	}
	if !space.Covers(catalog) {
		return nil, domain.WrapError(domain.ErrStaleSpace, "recommend",
			fmt.Errorf("space %s does not cover catalog of %d courses", space.Version, len(catalog)))
	}

	queryText := profile.QueryText()
	queryVec := uc.spaces.Transform(space, queryText)
	extracted := uc.matcher.Extract(queryText, mergedVocabulary(uc.baseVocabulary, catalog))

	eligible, filters := applyHardFilters(profile, catalog)
	matches := rankCourses(queryVec, profile.Tags(), eligible, space)
	total := len(matches)
	matches = truncateMatches(matches, topK)

	rec := &domain.Recommendation{
		Matches:         matches,
		TotalCandidates: total,
		ExtractedTags:   extracted.Tags,
		Metadata: domain.SearchMetadata{
			CoursesEvaluated: len(catalog),
			CoursesFiltered:  len(catalog) - len(eligible),
			QueryTermCount:   len(queryVec),
			SpaceVersion:     space.Version,
			FiltersApplied:   filters,
		},
		Suggestions: searchSuggestions(profile, total, matches),
	}
	uc.appendRelatedSkills(ctx, rec, extracted.Tags)
	return rec, nil
}

// appendRelatedSkills enriches suggestions from the skill graph when one
// is configured. Graph failures degrade to the heuristic suggestions
// already computed.
func (uc *RecommendUseCase) appendRelatedSkills(ctx context.Context, rec *domain.Recommendation, tags []string) {
	if uc.suggester == nil || len(tags) == 0 {
		return
	}
	related, err := uc.suggester.Related(ctx, tags, 5)
	if err != nil {
		slog.Warn("skill_graph_unavailable", "error", err)
		return
	}
	if len(related) > 0 {
		rec.Suggestions = append(rec.Suggestions,
			"related skills worth exploring: "+strings.Join(related, ", "))
	}
}

// mergedVocabulary unions the configured base vocabulary with every tag
// declared on the catalog, so newly added courses extend extraction
// without a config change.
func mergedVocabulary(base []string, catalog []domain.CourseRecord) []string {
	merged := make([]string, 0, len(base)+len(catalog)*4)
	merged = append(merged, base...)
	for i := range catalog {
		merged = append(merged, catalog[i].SkillTags...)
		merged = append(merged, catalog[i].InterestTags...)
	}
	return domain.CanonicalTags(merged)
}
