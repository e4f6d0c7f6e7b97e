package nlp

import (
	"sort"
	"strings"

	"github.com/akinsella123/CourseFindr/internal/core/domain"
)

const (
	defaultFuzzyThreshold    = 0.8
	defaultPhraseWindow      = 3
	defaultMinCandidateCount = 2
)

// DictionaryMatcher matches normalized text against a controlled
// vocabulary: exact token/phrase lookup first, then bounded
// edit-distance fuzzy matching for leftover tokens. Tokens that occur
// repeatedly but match nothing are surfaced as advisory candidate tags
// for external curation.
type DictionaryMatcher struct {
	normalizer *Normalizer
	aliases    map[string]string // normalized alias phrase -> normalized canonical phrase
	threshold  float64
	window     int
	minCount   int
}

type MatcherOption func(*DictionaryMatcher)

func WithFuzzyThreshold(v float64) MatcherOption {
	return func(m *DictionaryMatcher) {
		if v > 0 && v <= 1 {
			m.threshold = v
		}
	}
}

func WithPhraseWindow(n int) MatcherOption {
	return func(m *DictionaryMatcher) {
		if n > 0 {
			m.window = n
		}
	}
}

func WithMinCandidateCount(n int) MatcherOption {
	return func(m *DictionaryMatcher) {
		if n > 0 {
			m.minCount = n
		}
	}
}

// WithAliases registers spelling variants ("golang" for "go", "k8s" for
// "kubernetes") resolved before dictionary lookup. Keys and values are
// normalized on registration.
func WithAliases(aliases map[string]string) MatcherOption {
	return func(m *DictionaryMatcher) {
		for alias, canonical := range aliases {
			a := m.normalizer.NormalizePhrase(alias)
			c := m.normalizer.NormalizePhrase(canonical)
			if a != "" && c != "" && a != c {
				m.aliases[a] = c
			}
		}
	}
}

func NewDictionaryMatcher(normalizer *Normalizer, opts ...MatcherOption) *DictionaryMatcher {
	m := &DictionaryMatcher{
		normalizer: normalizer,
		aliases:    make(map[string]string),
		threshold:  defaultFuzzyThreshold,
		window:     defaultPhraseWindow,
		minCount:   defaultMinCandidateCount,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Extract returns the vocabulary tags present in text. Total: malformed
// or empty input yields an empty extraction, never an error. The result
// is a set; both slices come back sorted for deterministic output.
func (m *DictionaryMatcher) Extract(text string, vocabulary []string) domain.Extraction {
	index := m.indexVocabulary(vocabulary)
	tokens := m.normalizer.Normalize(text)
	if len(tokens) == 0 || len(index.byPhrase) == 0 {
		return domain.Extraction{Tags: []string{}}
	}

	matchedTags := make(map[string]struct{})
	consumed := make([]bool, len(tokens))

	// Longest phrases first so "machine learning" wins over "machine".
	for width := m.window; width >= 1; width-- {
		for i := 0; i+width <= len(tokens); i++ {
			if anyConsumed(consumed[i : i+width]) {
				continue
			}
			phrase := strings.Join(tokens[i:i+width], " ")
			if canonical, ok := m.aliases[phrase]; ok {
				phrase = canonical
			}
			if tag, ok := index.byPhrase[phrase]; ok {
				matchedTags[tag] = struct{}{}
				for j := i; j < i+width; j++ {
					consumed[j] = true
				}
			}
		}
	}

	// Fuzzy pass over leftover tokens, bounded by the similarity
	// threshold to keep false positives out.
	for i, tok := range tokens {
		if consumed[i] {
			continue
		}
		if tag, ok := m.fuzzyMatch(tok, index.phrases); ok {
			matchedTags[index.byPhrase[tag]] = struct{}{}
			consumed[i] = true
		}
	}

	tags := make([]string, 0, len(matchedTags))
	for tag := range matchedTags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	return domain.Extraction{
		Tags:       tags,
		Candidates: m.candidateTags(tokens, consumed),
	}
}

type vocabularyIndex struct {
	byPhrase map[string]string // normalized phrase -> canonical tag
	phrases  []string          // sorted normalized phrases
}

func (m *DictionaryMatcher) indexVocabulary(vocabulary []string) vocabularyIndex {
	byPhrase := make(map[string]string, len(vocabulary))
	for _, entry := range vocabulary {
		canonical := strings.ToLower(strings.TrimSpace(entry))
		if canonical == "" {
			continue
		}
		phrase := m.normalizer.NormalizePhrase(canonical)
		if phrase == "" {
			continue
		}
		if _, exists := byPhrase[phrase]; !exists {
			byPhrase[phrase] = canonical
		}
	}
	phrases := make([]string, 0, len(byPhrase))
	for phrase := range byPhrase {
		phrases = append(phrases, phrase)
	}
	sort.Strings(phrases)
	return vocabularyIndex{byPhrase: byPhrase, phrases: phrases}
}

// fuzzyMatch finds the vocabulary phrase most similar to tok. Ties are
// broken by shortest phrase, then lexical order; phrases is already
// sorted, so the first winner at a given (similarity, length) stands.
func (m *DictionaryMatcher) fuzzyMatch(tok string, phrases []string) (string, bool) {
	bestPhrase := ""
	bestSim := 0.0
	for _, phrase := range phrases {
		sim := similarity(tok, phrase)
		if sim < m.threshold {
			continue
		}
		switch {
		case sim > bestSim:
			bestPhrase, bestSim = phrase, sim
		case sim == bestSim && bestPhrase != "" && len(phrase) < len(bestPhrase):
			bestPhrase = phrase
		}
	}
	return bestPhrase, bestPhrase != ""
}

func (m *DictionaryMatcher) candidateTags(tokens []string, consumed []bool) []string {
	counts := make(map[string]int)
	for i, tok := range tokens {
		if !consumed[i] {
			counts[tok]++
		}
	}
	candidates := make([]string, 0, len(counts))
	for tok, n := range counts {
		if n >= m.minCount {
			candidates = append(candidates, tok)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if counts[candidates[i]] != counts[candidates[j]] {
			return counts[candidates[i]] > counts[candidates[j]]
		}
		return candidates[i] < candidates[j]
	})
	return candidates
}

func anyConsumed(window []bool) bool {
	for _, c := range window {
		if c {
			return true
		}
	}
	return false
}
