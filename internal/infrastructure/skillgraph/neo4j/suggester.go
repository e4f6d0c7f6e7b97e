package neo4j

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Suggester answers related-skill lookups from a Neo4j skill graph.
// Skills are nodes linked by RELATED_TO edges with a weight property;
// the strongest neighbours of the input set win.
type Suggester struct {
	driver neo4j.DriverWithContext
}

func New(ctx context.Context, uri, user, password string) (*Suggester, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}
	return &Suggester{driver: driver}, nil
}

func (s *Suggester) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

const relatedQuery = `
MATCH (a:Skill)-[r:RELATED_TO]-(b:Skill)
WHERE toLower(a.name) IN $skills AND NOT toLower(b.name) IN $skills
RETURN b.name AS name, sum(coalesce(r.weight, 1.0)) AS weight
ORDER BY weight DESC, name ASC
LIMIT $limit
`

func (s *Suggester) Related(ctx context.Context, skills []string, limit int) ([]string, error) {
	if len(skills) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 5
	}

	lowered := make([]string, len(skills))
	for i, skill := range skills {
		lowered[i] = strings.ToLower(skill)
	}

	result, err := neo4j.ExecuteQuery(ctx, s.driver, relatedQuery,
		map[string]any{"skills": lowered, "limit": limit},
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithReadersRouting(),
	)
	if err != nil {
		return nil, fmt.Errorf("query related skills: %w", err)
	}

	related := make([]string, 0, len(result.Records))
	for _, record := range result.Records {
		name, _, err := neo4j.GetRecordValue[string](record, "name")
		if err != nil {
			continue
		}
		related = append(related, name)
	}
	return related, nil
}
