package domain

import (
	"fmt"
	"strings"
)

// StudentProfile carries the free-form inputs of a single
// recommendation request. Every field is optional; an empty profile is
// valid and degenerates to a filter-and-tie-break ranking.
type StudentProfile struct {
	Skills        []string `json:"skills,omitempty"`
	Interests     []string `json:"interests,omitempty"`
	CareerGoal    string   `json:"career_goal,omitempty"`
	Location      string   `json:"location,omitempty"`
	Modality      Modality `json:"modality,omitempty"`
	MaxTuition    *float64 `json:"max_tuition,omitempty"`
	MaxDurationWk *float64 `json:"max_duration_weeks,omitempty"`
}

// Validate rejects malformed constraints before any filtering happens.
// Negative bounds are surfaced, never clamped.
func (p StudentProfile) Validate() error {
	if p.MaxTuition != nil && *p.MaxTuition < 0 {
		return WrapError(ErrInvalidProfile, "validate profile",
			fmt.Errorf("max_tuition must be non-negative, got %v", *p.MaxTuition))
	}
	if p.MaxDurationWk != nil && *p.MaxDurationWk < 0 {
		return WrapError(ErrInvalidProfile, "validate profile",
			fmt.Errorf("max_duration_weeks must be non-negative, got %v", *p.MaxDurationWk))
	}
	if p.Modality != "" && !p.Modality.Valid() {
		return WrapError(ErrInvalidProfile, "validate profile",
			fmt.Errorf("unknown modality %q", p.Modality))
	}
	return nil
}

// QueryText concatenates skills, interests, and the career goal into
// the query document projected into the fitted space.
func (p StudentProfile) QueryText() string {
	parts := make([]string, 0, len(p.Skills)+len(p.Interests)+1)
	parts = append(parts, p.Skills...)
	parts = append(parts, p.Interests...)
	if goal := strings.TrimSpace(p.CareerGoal); goal != "" {
		parts = append(parts, goal)
	}
	return strings.Join(parts, " ")
}

// Tags returns the profile's declared skills and interests in canonical
// form, used for exact tag-overlap tie-breaking and explanations.
func (p StudentProfile) Tags() []string {
	merged := make([]string, 0, len(p.Skills)+len(p.Interests))
	merged = append(merged, p.Skills...)
	merged = append(merged, p.Interests...)
	return CanonicalTags(merged)
}

func (p StudentProfile) IsEmpty() bool {
	return len(p.Skills) == 0 && len(p.Interests) == 0 && strings.TrimSpace(p.CareerGoal) == ""
}
