package config

import "testing"

func TestLoadIncludesMatcherDefaults(t *testing.T) {
	t.Setenv("MATCHER_FUZZY_THRESHOLD", "")
	t.Setenv("MATCHER_PHRASE_WINDOW", "")
	t.Setenv("MATCHER_MIN_CANDIDATE_HITS", "")
	t.Setenv("MATCH_TOP_K", "")

	cfg := Load()
	if cfg.FuzzyThreshold != 0.8 {
		t.Fatalf("expected default fuzzy threshold 0.8, got %g", cfg.FuzzyThreshold)
	}
	if cfg.PhraseWindow != 3 {
		t.Fatalf("expected default phrase window 3, got %d", cfg.PhraseWindow)
	}
	if cfg.MinCandidateHits != 2 {
		t.Fatalf("expected default min candidate hits 2, got %d", cfg.MinCandidateHits)
	}
	if cfg.MatchTopK != 20 {
		t.Fatalf("expected default match top k 20, got %d", cfg.MatchTopK)
	}
}

func TestLoadParsesMatcherOverrides(t *testing.T) {
	t.Setenv("MATCHER_FUZZY_THRESHOLD", "0.9")
	t.Setenv("MATCHER_PHRASE_WINDOW", "4")
	t.Setenv("MATCH_TOP_K", "10")
	t.Setenv("NEO4J_ENABLED", "true")

	cfg := Load()
	if cfg.FuzzyThreshold != 0.9 {
		t.Fatalf("expected fuzzy threshold override, got %g", cfg.FuzzyThreshold)
	}
	if cfg.PhraseWindow != 4 {
		t.Fatalf("expected phrase window 4, got %d", cfg.PhraseWindow)
	}
	if cfg.MatchTopK != 10 {
		t.Fatalf("expected match top k 10, got %d", cfg.MatchTopK)
	}
	if !cfg.Neo4jEnabled {
		t.Fatal("expected neo4j enabled")
	}
}

func TestLoadFallsBackOnMalformedNumbers(t *testing.T) {
	t.Setenv("MATCHER_FUZZY_THRESHOLD", "not-a-number")
	t.Setenv("MATCH_TOP_K", "many")

	cfg := Load()
	if cfg.FuzzyThreshold != 0.8 {
		t.Fatalf("expected fallback fuzzy threshold, got %g", cfg.FuzzyThreshold)
	}
	if cfg.MatchTopK != 20 {
		t.Fatalf("expected fallback match top k, got %d", cfg.MatchTopK)
	}
}
