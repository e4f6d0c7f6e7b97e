package vectorspace

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/akinsella123/CourseFindr/internal/core/domain"
	"github.com/akinsella123/CourseFindr/internal/core/nlp"
)

// minTotalTermCount bounds vocabulary dimensionality: a term must occur
// at least this many times across the whole corpus to earn an index.
// Singleton terms are noise for similarity purposes.
const minTotalTermCount = 2

// Vectorizer builds and queries the shared TF-IDF space over the course
// corpus. A fitted space is immutable; any catalog change requires a
// full refit because IDF weights are corpus-relative.
type Vectorizer struct {
	normalizer *nlp.Normalizer
}

func New(normalizer *nlp.Normalizer) *Vectorizer {
	return &Vectorizer{normalizer: normalizer}
}

// Fit builds the vocabulary and one L2-normalized document vector per
// course. Duplicate course identifiers violate the corpus invariant and
// fail the pass.
func (v *Vectorizer) Fit(courses []domain.CourseRecord) (*domain.FittedSpace, error) {
	docs := make([][]string, len(courses))
	totalCounts := make(map[string]int)
	docFreq := make(map[string]int)
	seenIDs := make(map[string]struct{}, len(courses))

	for i := range courses {
		if _, dup := seenIDs[courses[i].ID]; dup {
			return nil, domain.WrapError(domain.ErrInvalidInput, "fit corpus",
				fmt.Errorf("duplicate course id %q", courses[i].ID))
		}
		seenIDs[courses[i].ID] = struct{}{}

		tokens := v.normalizer.Normalize(courses[i].Document())
		docs[i] = tokens

		seenInDoc := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			totalCounts[tok]++
			if _, ok := seenInDoc[tok]; !ok {
				seenInDoc[tok] = struct{}{}
				docFreq[tok]++
			}
		}
	}

	// Index terms in sorted order so vocabulary layout is a pure
	// function of corpus content.
	terms := make([]string, 0, len(totalCounts))
	for term, count := range totalCounts {
		if count >= minTotalTermCount {
			terms = append(terms, term)
		}
	}
	sort.Strings(terms)

	vocabulary := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	corpusSize := float64(len(courses))
	for i, term := range terms {
		vocabulary[term] = i
		weight := math.Log(corpusSize/(1.0+float64(docFreq[term]))) + 1.0
		if weight < 1.0 {
			// Terms present in (nearly) every document still carry
			// unit weight rather than vanishing.
			weight = 1.0
		}
		idf[i] = weight
	}

	vectors := make(map[string]domain.DocumentVector, len(courses))
	for i := range courses {
		vectors[courses[i].ID] = buildVector(docs[i], vocabulary, idf)
	}

	return &domain.FittedSpace{
		Version:     Fingerprint(courses),
		Vocabulary:  vocabulary,
		IDF:         idf,
		Vectors:     vectors,
		CourseCount: len(courses),
		FittedAt:    time.Now().UTC(),
	}, nil
}

// Transform projects arbitrary text into an already-fitted space.
// Out-of-vocabulary tokens contribute zero weight and are dropped; this
// is the documented information-loss policy for query text, not an
// error.
func (v *Vectorizer) Transform(space *domain.FittedSpace, text string) domain.DocumentVector {
	if space == nil {
		return domain.DocumentVector{}
	}
	return buildVector(v.normalizer.Normalize(text), space.Vocabulary, space.IDF)
}

func buildVector(tokens []string, vocabulary map[string]int, idf []float64) domain.DocumentVector {
	vec := make(domain.DocumentVector)
	if len(tokens) == 0 {
		return vec
	}

	counts := make(map[int]float64)
	for _, tok := range tokens {
		if idx, ok := vocabulary[tok]; ok {
			counts[idx]++
		}
	}

	docLen := float64(len(tokens))
	var sumSquares float64
	for idx, count := range counts {
		w := (count / docLen) * idf[idx]
		vec[idx] = w
		sumSquares += w * w
	}
	if sumSquares == 0 {
		return vec
	}

	norm := math.Sqrt(sumSquares)
	for idx := range vec {
		vec[idx] /= norm
	}
	return vec
}
