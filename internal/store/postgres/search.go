package postgres

import (
	"context"
	"fmt"
	"strings"

	"kinview/internal/model"
	"kinview/internal/store"
)

// Search matches query against gramps ids and sort keys using websearch
// syntax. An empty kind searches every kind.
func (c *Client) Search(ctx context.Context, query string, kind model.Kind) ([]store.SearchHit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query must not be empty")
	}

	sql := `
SELECT kind, handle, gramps_id, sort_key,
    ts_rank(search_vector, websearch_to_tsquery('simple', $1)) AS score
FROM objects
WHERE search_vector @@ websearch_to_tsquery('simple', $1)
  AND ($2 = '' OR kind = $2)
ORDER BY score DESC, sort_key ASC
LIMIT 50
`

	rows, err := c.pool.Query(ctx, sql, query, string(kind))
	if err != nil {
		return nil, fmt.Errorf("searching objects: %w", err)
	}
	defer rows.Close()

	hits := []store.SearchHit{}
	for rows.Next() {
		var h store.SearchHit
		var k, handle string
		var score float32
		if err := rows.Scan(&k, &handle, &h.GrampsID, &h.SortKey, &score); err != nil {
			return nil, fmt.Errorf("scanning search hit: %w", err)
		}
		h.Kind, h.Handle, h.Score = model.Kind(k), model.Handle(handle), float64(score)
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search hits: %w", err)
	}
	return hits, nil
}
