package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/akinsella123/CourseFindr/internal/core/domain"
)

// applyHardFilters drops every course violating an active profile
// constraint. Filtering is exclusionary and order-independent: a course
// failing any active filter is never scored. The second return value
// names the filters that were active, for response metadata.
func applyHardFilters(profile domain.StudentProfile, catalog []domain.CourseRecord) ([]domain.CourseRecord, []string) {
	eligible := make([]domain.CourseRecord, 0, len(catalog))
	for i := range catalog {
		if courseEligible(profile, &catalog[i]) {
			eligible = append(eligible, catalog[i])
		}
	}
	return eligible, activeFilters(profile)
}

func courseEligible(p domain.StudentProfile, c *domain.CourseRecord) bool {
	if p.MaxTuition != nil && c.Tuition > *p.MaxTuition {
		return false
	}
	if p.MaxDurationWk != nil && c.DurationWeeks > *p.MaxDurationWk {
		return false
	}
	if p.Modality != "" && c.Modality != p.Modality {
		return false
	}
	if p.Location != "" && !locationCompatible(p.Location, c) {
		return false
	}
	return true
}

// locationCompatible treats remote-capable courses as matching any
// location preference; in-person courses need a substring match.
func locationCompatible(pref string, c *domain.CourseRecord) bool {
	if c.Modality.Remote() {
		return true
	}
	loc := strings.ToLower(strings.TrimSpace(c.Location))
	if loc == "online" {
		return true
	}
	return strings.Contains(loc, strings.ToLower(strings.TrimSpace(pref)))
}

func activeFilters(p domain.StudentProfile) []string {
	var filters []string
	if p.MaxTuition != nil {
		filters = append(filters, "max_tuition")
	}
	if p.MaxDurationWk != nil {
		filters = append(filters, "max_duration_weeks")
	}
	if p.Modality != "" {
		filters = append(filters, "modality")
	}
	if p.Location != "" {
		filters = append(filters, "location")
	}
	return filters
}

type rankedCourse struct {
	match   domain.ScoredMatch
	overlap int
}

// rankCourses scores every eligible course by cosine similarity against
// the query vector and sorts descending. Ties, including the all-zero
// case of an empty profile, are broken by exact tag-overlap count and
// finally by course ID, so the order is total and independent of input
// sequence order.
func rankCourses(queryVec domain.DocumentVector, profileTags []string, eligible []domain.CourseRecord, space *domain.FittedSpace) []domain.ScoredMatch {
	profileSet := make(map[string]struct{}, len(profileTags))
	for _, tag := range profileTags {
		profileSet[tag] = struct{}{}
	}

	ranked := make([]rankedCourse, 0, len(eligible))
	for i := range eligible {
		c := &eligible[i]
		score := queryVec.Dot(space.Vectors[c.ID])
		if score > 1 {
			// Guard against float drift above the cosine bound.
			score = 1
		}
		matched := overlapTags(profileSet, c.Tags())
		ranked = append(ranked, rankedCourse{
			match: domain.ScoredMatch{
				CourseID:    c.ID,
				Score:       score,
				MatchedTags: matched,
				Explanation: explainMatch(score, matched),
			},
			overlap: len(matched),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].match.Score != ranked[j].match.Score {
			return ranked[i].match.Score > ranked[j].match.Score
		}
		if ranked[i].overlap != ranked[j].overlap {
			return ranked[i].overlap > ranked[j].overlap
		}
		return ranked[i].match.CourseID < ranked[j].match.CourseID
	})

	out := make([]domain.ScoredMatch, len(ranked))
	for i := range ranked {
		out[i] = ranked[i].match
	}
	return out
}

func overlapTags(profileSet map[string]struct{}, courseTags []string) []string {
	var matched []string
	for _, tag := range courseTags {
		if _, ok := profileSet[tag]; ok {
			matched = append(matched, tag)
		}
	}
	return matched
}

func explainMatch(score float64, matched []string) string {
	var notes []string
	if len(matched) > 0 {
		head := matched
		if len(head) > 3 {
			head = head[:3]
		}
		notes = append(notes, fmt.Sprintf("matches %d of your skills and interests: %s",
			len(matched), strings.Join(head, ", ")))
	}
	switch {
	case score >= 0.7:
		notes = append(notes, "strong content relevance")
	case score >= 0.3:
		notes = append(notes, "partial content relevance")
	}
	if len(notes) == 0 {
		return "general compatibility with your preferences"
	}
	return strings.Join(notes, "; ")
}

func truncateMatches(matches []domain.ScoredMatch, topK int) []domain.ScoredMatch {
	if topK <= 0 || len(matches) <= topK {
		return matches
	}
	return matches[:topK]
}

func searchSuggestions(profile domain.StudentProfile, totalCandidates int, matches []domain.ScoredMatch) []string {
	var out []string
	if totalCandidates < 5 {
		out = append(out, "try broadening your location preference or considering online courses")
	}
	if len(profile.Skills) == 0 {
		out = append(out, "add specific skills to get more targeted recommendations")
	}
	if !profile.IsEmpty() && len(matches) > 0 && matches[0].Score < 0.3 {
		out = append(out, "your criteria might be too specific; try broadening your skills or interests")
	}
	return out
}
