package domain

import "time"

// DocumentVector is a sparse, L2-normalized TF-IDF vector keyed by
// vocabulary index. Cosine similarity between two such vectors reduces
// to their dot product.
type DocumentVector map[int]float64

func (v DocumentVector) Dot(other DocumentVector) float64 {
	if len(other) < len(v) {
		v, other = other, v
	}
	var sum float64
	for idx, w := range v {
		if ow, ok := other[idx]; ok {
			sum += w * ow
		}
	}
	return sum
}

// FittedSpace is the immutable result of one fitting pass over a
// catalog snapshot. Version is a content fingerprint of that snapshot;
// readers never observe a partially built space because replacement
// happens by atomic pointer swap.
type FittedSpace struct {
	Version     string
	Vocabulary  map[string]int
	IDF         []float64
	Vectors     map[string]DocumentVector
	CourseCount int
	FittedAt    time.Time
}

// Covers reports whether every course in the snapshot has a vector in
// this space. It is a structural check only; content drift is detected
// by comparing Version against the snapshot fingerprint.
func (s *FittedSpace) Covers(catalog []CourseRecord) bool {
	if s == nil {
		return false
	}
	if len(catalog) != s.CourseCount {
		return false
	}
	for i := range catalog {
		if _, ok := s.Vectors[catalog[i].ID]; !ok {
			return false
		}
	}
	return true
}
