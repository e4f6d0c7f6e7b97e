package vocabconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MatcherConfig is the curated matching dictionary: the controlled tag
// vocabulary, alias spellings resolved to canonical entries, and extra
// stopwords layered on top of the built-in list.
type MatcherConfig struct {
	Vocabulary []string          `yaml:"vocabulary"`
	Aliases    map[string]string `yaml:"aliases"`
	Stopwords  []string          `yaml:"stopwords"`
}

// Load reads the matcher dictionary from path. An empty path returns
// the compiled-in defaults so the service runs without any config file.
func Load(path string) (*MatcherConfig, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read matcher config: %w", err)
	}

	var cfg MatcherConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse matcher config: %w", err)
	}
	if len(cfg.Vocabulary) == 0 {
		return nil, fmt.Errorf("matcher config %s: vocabulary must not be empty", path)
	}
	return &cfg, nil
}

// Default is the built-in dictionary covering common technical and
// soft-skill vocabulary. Deployments with a curated catalog override it
// via MATCHER_CONFIG_PATH.
func Default() *MatcherConfig {
	return &MatcherConfig{
		Vocabulary: []string{
			"python", "java", "javascript", "typescript", "go", "rust", "c++", "c#",
			"sql", "html", "css", "react", "angular", "vue", "node.js", "django",
			"machine learning", "deep learning", "data science", "data analysis",
			"statistics", "artificial intelligence", "natural language processing",
			"computer vision", "web development", "mobile development",
			"cloud computing", "aws", "azure", "docker", "kubernetes", "devops",
			"cybersecurity", "networking", "databases", "git", "linux",
			"project management", "agile", "communication", "leadership",
			"teamwork", "problem solving", "critical thinking",
			"graphic design", "ui design", "ux design", "marketing",
			"digital marketing", "finance", "accounting", "economics",
			"biology", "chemistry", "physics", "psychology", "writing",
		},
		Aliases: map[string]string{
			"golang":   "go",
			"js":       "javascript",
			"ts":       "typescript",
			"k8s":      "kubernetes",
			"ml":       "machine learning",
			"ai":       "artificial intelligence",
			"nlp":      "natural language processing",
			"postgres": "databases",
			"ui":       "ui design",
			"ux":       "ux design",
		},
	}
}
