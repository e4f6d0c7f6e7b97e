package vocabconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWithoutPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if len(cfg.Vocabulary) == 0 {
		t.Fatal("default vocabulary is empty")
	}
	if cfg.Aliases["golang"] != "go" {
		t.Errorf("default aliases missing golang, got %v", cfg.Aliases["golang"])
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matcher.yaml")
	content := `
vocabulary:
  - python
  - machine learning
aliases:
  ml: machine learning
stopwords:
  - proficient
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Vocabulary) != 2 {
		t.Errorf("vocabulary = %v", cfg.Vocabulary)
	}
	if cfg.Aliases["ml"] != "machine learning" {
		t.Errorf("aliases = %v", cfg.Aliases)
	}
	if len(cfg.Stopwords) != 1 || cfg.Stopwords[0] != "proficient" {
		t.Errorf("stopwords = %v", cfg.Stopwords)
	}
}

func TestLoadRejectsEmptyVocabulary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matcher.yaml")
	if err := os.WriteFile(path, []byte("aliases:\n  ml: machine learning\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for empty vocabulary")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
