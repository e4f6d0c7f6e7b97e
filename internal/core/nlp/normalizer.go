package nlp

import (
	"strings"
	"unicode"
)

// Normalizer turns free text into a canonical token sequence: case
// folding, punctuation splitting, stop-word removal, and deterministic
// suffix stemming. It is pure and total: any input, including empty or
// binary garbage, yields a (possibly empty) token slice.
type Normalizer struct {
	stopwords map[string]struct{}
}

func NewNormalizer(extraStopwords ...string) *Normalizer {
	sw := make(map[string]struct{}, len(defaultStopwords)+len(extraStopwords))
	for _, w := range defaultStopwords {
		sw[w] = struct{}{}
	}
	for _, w := range extraStopwords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			sw[w] = struct{}{}
		}
	}
	return &Normalizer{stopwords: sw}
}

// Normalize tokenizes and canonicalizes text. Stop words are dropped
// both before and after stemming, which keeps the function idempotent
// over its own output.
func (n *Normalizer) Normalize(text string) []string {
	raw := tokenize(text)
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		if _, skip := n.stopwords[tok]; skip {
			continue
		}
		stemmed := stem(tok)
		if stemmed == "" {
			continue
		}
		if _, skip := n.stopwords[stemmed]; skip {
			continue
		}
		out = append(out, stemmed)
	}
	return out
}

// NormalizePhrase renders a phrase as its normalized tokens joined by
// single spaces, the form used for dictionary keys.
func (n *Normalizer) NormalizePhrase(s string) string {
	return strings.Join(n.Normalize(s), " ")
}

// tokenize lower-cases and splits on anything that is not a letter,
// digit, '+', or '#'. The extra symbols keep skill names like "c++"
// and "c#" intact.
func tokenize(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, 24)
	var b strings.Builder
	for _, r := range s {
		r = unicode.ToLower(r)
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 0 {
			out = append(out, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		out = append(out, b.String())
	}
	return out
}
