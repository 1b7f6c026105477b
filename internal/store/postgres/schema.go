package postgres

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	// Sent as one simple-protocol call, which PostgreSQL runs in an implicit
	// transaction.
	ddl := `
CREATE TABLE IF NOT EXISTS objects (
    id        BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    kind      TEXT NOT NULL,
    handle    TEXT NOT NULL,
    gramps_id TEXT NOT NULL DEFAULT '',
    sort_key  TEXT NOT NULL DEFAULT '',
    private   BOOLEAN NOT NULL DEFAULT FALSE,
    data      JSONB NOT NULL,
    search_vector TSVECTOR GENERATED ALWAYS AS (
        setweight(to_tsvector('simple', gramps_id), 'A') ||
        setweight(to_tsvector('simple', sort_key), 'B')
    ) STORED,
    CONSTRAINT uq_object_handle UNIQUE (kind, handle)
);

CREATE TABLE IF NOT EXISTS bookmarks (
    position INTEGER PRIMARY KEY,
    handle   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS meta (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_objects_kind ON objects (kind);
CREATE INDEX IF NOT EXISTS idx_objects_gramps_id ON objects (kind, gramps_id);
CREATE INDEX IF NOT EXISTS idx_objects_search ON objects USING GIN (search_vector);
`
	if _, err := c.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
