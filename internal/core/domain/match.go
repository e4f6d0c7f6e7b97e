package domain

// ScoredMatch is one ranked catalog entry of a recommendation response.
// Ephemeral, scoped to a single request.
type ScoredMatch struct {
	CourseID    string   `json:"course_id"`
	Score       float64  `json:"score"`
	MatchedTags []string `json:"matched_tags,omitempty"`
	Explanation string   `json:"explanation"`
}

type SearchMetadata struct {
	CoursesEvaluated int      `json:"courses_evaluated"`
	CoursesFiltered  int      `json:"courses_filtered"`
	QueryTermCount   int      `json:"query_term_count"`
	SpaceVersion     string   `json:"space_version"`
	FiltersApplied   []string `json:"filters_applied,omitempty"`
}

type Recommendation struct {
	Matches         []ScoredMatch  `json:"matches"`
	TotalCandidates int            `json:"total_candidates"`
	ExtractedTags   []string       `json:"extracted_tags,omitempty"`
	Metadata        SearchMetadata `json:"metadata"`
	Suggestions     []string       `json:"suggestions,omitempty"`
}

// Extraction is the raw output of a tag matcher: tags found in the
// controlled vocabulary plus advisory out-of-vocabulary candidates.
type Extraction struct {
	Tags       []string `json:"tags"`
	Candidates []string `json:"candidates,omitempty"`
}

// TagExtraction is the service-level extraction result, enriched with
// related-skill suggestions when a skill graph is configured.
type TagExtraction struct {
	Tags          []string `json:"tags"`
	CandidateTags []string `json:"candidate_tags,omitempty"`
	SuggestedTags []string `json:"suggested_tags,omitempty"`
}
