package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/akinsella123/CourseFindr/internal/core/domain"
	"github.com/akinsella123/CourseFindr/internal/core/ports"
)

// ExtractTagsUseCase maps free text or an uploaded resume file onto the
// controlled tag vocabulary.
type ExtractTagsUseCase struct {
	repo      ports.CourseRepository
	matcher   ports.TagMatcher
	files     ports.ResumeTextExtractor
	suggester ports.SkillSuggester

	baseVocabulary []string
}

func NewExtractTagsUseCase(
	repo ports.CourseRepository,
	matcher ports.TagMatcher,
	files ports.ResumeTextExtractor,
	suggester ports.SkillSuggester,
	baseVocabulary []string,
) *ExtractTagsUseCase {
	return &ExtractTagsUseCase{
		repo:           repo,
		matcher:        matcher,
		files:          files,
		suggester:      suggester,
		baseVocabulary: baseVocabulary,
	}
}

func (uc *ExtractTagsUseCase) ExtractFromText(ctx context.Context, text string) (*domain.TagExtraction, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "extract tags",
			fmt.Errorf("text must not be empty"))
	}

	extracted := uc.matcher.Extract(text, uc.vocabulary(ctx))

	result := &domain.TagExtraction{
		Tags:          extracted.Tags,
		CandidateTags: extracted.Candidates,
	}
	if uc.suggester != nil && len(extracted.Tags) > 0 {
		related, err := uc.suggester.Related(ctx, extracted.Tags, 5)
		if err != nil {
			slog.Warn("skill_graph_unavailable", "error", err)
		} else {
			result.SuggestedTags = related
		}
	}
	return result, nil
}

func (uc *ExtractTagsUseCase) ExtractFromFile(ctx context.Context, filename string, data []byte) (*domain.TagExtraction, error) {
	if uc.files == nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "extract resume",
			fmt.Errorf("file extraction is not configured"))
	}
	text, err := uc.files.Extract(filename, data)
	if err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "extract resume text", err)
	}
	return uc.ExtractFromText(ctx, text)
}

// vocabulary unions the base vocabulary with catalog tags. A catalog
// read failure degrades to the base vocabulary rather than failing the
// extraction.
func (uc *ExtractTagsUseCase) vocabulary(ctx context.Context) []string {
	catalog, err := uc.repo.List(ctx)
	if err != nil {
		slog.Warn("catalog_unavailable_for_vocabulary", "error", err)
		return domain.CanonicalTags(uc.baseVocabulary)
	}
	return mergedVocabulary(uc.baseVocabulary, catalog)
}
