package vectorspace

import (
	"math"
	"testing"

	"github.com/akinsella123/CourseFindr/internal/core/domain"
	"github.com/akinsella123/CourseFindr/internal/core/nlp"
)

func testCorpus() []domain.CourseRecord {
	return []domain.CourseRecord{
		{
			ID:           "ds-101",
			Title:        "Python Data Science Course",
			Description:  "python statistics",
			SkillTags:    []string{"python", "statistics"},
			InterestTags: []string{"data science"},
		},
		{
			ID:           "web-201",
			Title:        "Web Development Course",
			Description:  "javascript react renaissance",
			SkillTags:    []string{"javascript", "react"},
			InterestTags: []string{"web development"},
		},
		{
			ID:           "stat-110",
			Title:        "Statistics Course",
			Description:  "statistics data",
			SkillTags:    []string{"statistics"},
			InterestTags: []string{"data"},
		},
	}
}

func newTestVectorizer() *Vectorizer {
	return New(nlp.NewNormalizer())
}

func TestFitVocabulary(t *testing.T) {
	space, err := newTestVectorizer().Fit(testCorpus())
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	for _, term := range []string{"python", "statistic", "javascript", "data"} {
		if _, ok := space.Vocabulary[term]; !ok {
			t.Errorf("vocabulary missing %q", term)
		}
	}

	// A term occurring once across the whole corpus carries no
	// similarity signal and must not earn a dimension.
	if _, ok := space.Vocabulary["renaissance"]; ok {
		t.Error("singleton term made it into the vocabulary")
	}

	// "course" appears in every document; its weight is floored at one
	// instead of being driven toward zero.
	idx, ok := space.Vocabulary["course"]
	if !ok {
		t.Fatal("vocabulary missing \"course\"")
	}
	if space.IDF[idx] != 1.0 {
		t.Errorf("IDF for ubiquitous term = %g, want 1.0", space.IDF[idx])
	}

	if space.CourseCount != 3 {
		t.Errorf("CourseCount = %d, want 3", space.CourseCount)
	}
	if space.FittedAt.IsZero() {
		t.Error("FittedAt not set")
	}
}

func TestFitRejectsDuplicateCourseIDs(t *testing.T) {
	corpus := testCorpus()
	corpus[1].ID = corpus[0].ID

	_, err := newTestVectorizer().Fit(corpus)
	if err == nil {
		t.Fatal("expected an error for duplicate course ids")
	}
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Errorf("error = %v, want kind ErrInvalidInput", err)
	}
}

func TestFitEmptyCorpus(t *testing.T) {
	space, err := newTestVectorizer().Fit(nil)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if space.CourseCount != 0 {
		t.Errorf("CourseCount = %d, want 0", space.CourseCount)
	}
	if len(space.Vocabulary) != 0 {
		t.Errorf("Vocabulary size = %d, want 0", len(space.Vocabulary))
	}
}

func TestTransformSelfSimilarity(t *testing.T) {
	v := newTestVectorizer()
	corpus := testCorpus()
	space, err := v.Fit(corpus)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	for i := range corpus {
		c := &corpus[i]
		query := v.Transform(space, c.Document())
		sim := query.Dot(space.Vectors[c.ID])
		if math.Abs(sim-1.0) > 1e-9 {
			t.Errorf("self similarity for %s = %g, want 1.0", c.ID, sim)
		}
	}
}

func TestTransformDropsUnknownTerms(t *testing.T) {
	v := newTestVectorizer()
	space, err := v.Fit(testCorpus())
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	if vec := v.Transform(space, "quantum entanglement"); len(vec) != 0 {
		t.Errorf("out-of-vocabulary query vector = %v, want empty", vec)
	}
	if vec := v.Transform(nil, "python"); len(vec) != 0 {
		t.Errorf("nil-space query vector = %v, want empty", vec)
	}
}

func TestTransformDiscriminates(t *testing.T) {
	v := newTestVectorizer()
	space, err := v.Fit(testCorpus())
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	query := v.Transform(space, "python statistics")
	dataScore := query.Dot(space.Vectors["ds-101"])
	webScore := query.Dot(space.Vectors["web-201"])

	if dataScore <= webScore {
		t.Errorf("data course scored %g, web course %g; want data course higher", dataScore, webScore)
	}
	if webScore != 0 {
		t.Errorf("disjoint course scored %g, want 0", webScore)
	}
}
