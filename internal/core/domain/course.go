package domain

import (
	"strings"
	"time"
)

type Modality string

const (
	ModalityInPerson Modality = "in-person"
	ModalityOnline   Modality = "online"
	ModalityHybrid   Modality = "hybrid"
)

func (m Modality) Valid() bool {
	switch m {
	case ModalityInPerson, ModalityOnline, ModalityHybrid:
		return true
	default:
		return false
	}
}

// Remote reports whether the modality is compatible with any location
// preference.
func (m Modality) Remote() bool {
	return m == ModalityOnline || m == ModalityHybrid
}

type CourseRecord struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	SkillTags     []string  `json:"skill_tags"`
	InterestTags  []string  `json:"interest_tags"`
	Location      string    `json:"location"`
	Modality      Modality  `json:"modality"`
	Tuition       float64   `json:"tuition"`
	DurationWeeks float64   `json:"duration_weeks"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Document returns the course text that participates in corpus fitting:
// title, description, and both tag sequences joined into one document.
func (c *CourseRecord) Document() string {
	parts := make([]string, 0, 3+len(c.SkillTags)+len(c.InterestTags))
	parts = append(parts, c.Title, c.Description)
	parts = append(parts, c.SkillTags...)
	parts = append(parts, c.InterestTags...)
	return strings.Join(parts, " ")
}

// Tags returns the union of skill and interest tags in canonical form.
func (c *CourseRecord) Tags() []string {
	merged := make([]string, 0, len(c.SkillTags)+len(c.InterestTags))
	merged = append(merged, c.SkillTags...)
	merged = append(merged, c.InterestTags...)
	return CanonicalTags(merged)
}

// CanonicalTags lower-cases, trims, and deduplicates tags preserving
// first-seen order.
func CanonicalTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
