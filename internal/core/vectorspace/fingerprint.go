package vectorspace

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"github.com/akinsella123/CourseFindr/internal/core/domain"
)

// Fingerprint hashes catalog content into a space version string. It is
// order-independent: the same set of courses always fingerprints the
// same way, so a reloaded catalog does not force a spurious refit.
func Fingerprint(courses []domain.CourseRecord) string {
	lines := make([]string, len(courses))
	for i := range courses {
		c := &courses[i]
		lines[i] = strings.Join([]string{
			c.ID,
			c.Title,
			c.Description,
			strings.Join(c.SkillTags, ","),
			strings.Join(c.InterestTags, ","),
			c.Location,
			string(c.Modality),
			fmt.Sprintf("%g", c.Tuition),
			fmt.Sprintf("%g", c.DurationWeeks),
		}, "\x1f")
	}
	sort.Strings(lines)

	h := fnv.New64a()
	for _, line := range lines {
		_, _ = h.Write([]byte(line))
		_, _ = h.Write([]byte{'\n'})
	}
	return fmt.Sprintf("%d-%016x", len(courses), h.Sum64())
}
