package sqlite

import (
	"context"
	"fmt"
	"strings"

	"kinview/internal/model"
	"kinview/internal/store"
)

// Search matches query against gramps ids and sort keys. An empty kind
// searches every kind.
func (c *Client) Search(ctx context.Context, query string, kind model.Kind) ([]store.SearchHit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query must not be empty")
	}

	sqlQuery := `
	SELECT o.kind, o.handle, o.gramps_id, o.sort_key,
		   -bm25(objects_fts, 4.0, 1.0) AS score
	FROM objects_fts
	JOIN objects o ON objects_fts.rowid = o.id
	WHERE objects_fts MATCH ?
	  AND (? = '' OR o.kind = ?)
	ORDER BY score DESC, o.sort_key ASC
	LIMIT 50
	`

	rows, err := c.db.QueryContext(ctx, sqlQuery, convertWebsearchToFTS5(query), kind, kind)
	if err != nil {
		return nil, fmt.Errorf("searching objects: %w", err)
	}
	defer rows.Close()

	hits := []store.SearchHit{}
	for rows.Next() {
		var h store.SearchHit
		if err := rows.Scan(&h.Kind, &h.Handle, &h.GrampsID, &h.SortKey, &h.Score); err != nil {
			return nil, fmt.Errorf("scanning search hit: %w", err)
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search hits: %w", err)
	}
	return hits, nil
}

func convertWebsearchToFTS5(query string) string {
	var result strings.Builder
	var inQuote bool
	var current strings.Builder

	flushToken := func() {
		token := current.String()
		current.Reset()
		if token == "" {
			return
		}

		upper := strings.ToUpper(token)
		switch upper {
		case "AND", "OR", "NOT":
			if result.Len() > 0 {
				result.WriteString(" ")
			}
			result.WriteString(upper)
			return
		}

		if result.Len() > 0 {
			lastWord := lastWord(result.String())
			if lastWord != "AND" && lastWord != "OR" && lastWord != "NOT" && lastWord != "" {
				result.WriteString(" AND ")
			} else {
				result.WriteString(" ")
			}
		}

		if neg, ok := strings.CutPrefix(token, "-"); ok && neg != "" {
			result.WriteString("NOT ")
			result.WriteString(neg)
		} else {
			result.WriteString(token)
		}
	}

	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '"':
			if inQuote {
				inQuote = false
				token := current.String()
				current.Reset()
				if token != "" {
					if result.Len() > 0 {
						result.WriteString(" AND ")
					}
					result.WriteString(`"`)
					result.WriteString(token)
					result.WriteString(`"`)
				}
			} else {
				flushToken()
				inQuote = true
			}
		case inQuote:
			current.WriteByte(ch)
		case ch == ' ' || ch == '\t':
			flushToken()
		default:
			current.WriteByte(ch)
		}
	}

	flushToken()

	return result.String()
}

func lastWord(s string) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}
	return words[len(words)-1]
}
