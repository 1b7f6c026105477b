package sqlite

import (
	"context"
	"fmt"
	"strings"
)

const ddl = `
CREATE TABLE IF NOT EXISTS objects (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	kind      TEXT NOT NULL,
	handle    TEXT NOT NULL,
	gramps_id TEXT NOT NULL DEFAULT '',
	sort_key  TEXT NOT NULL DEFAULT '',
	private   INTEGER NOT NULL DEFAULT 0,
	data      TEXT NOT NULL,
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

CREATE VIRTUAL TABLE IF NOT EXISTS objects_fts USING fts5(
	gramps_id,
	sort_key,
	content=objects,
	content_rowid=id
);

CREATE TRIGGER IF NOT EXISTS objects_ai AFTER INSERT ON objects BEGIN
	INSERT INTO objects_fts(rowid, gramps_id, sort_key)
	VALUES (new.id, new.gramps_id, new.sort_key);
END;

CREATE TRIGGER IF NOT EXISTS objects_ad AFTER DELETE ON objects BEGIN
	INSERT INTO objects_fts(objects_fts, rowid, gramps_id, sort_key)
	VALUES ('delete', old.id, old.gramps_id, old.sort_key);
END;
`

func (c *Client) EnsureSchema(ctx context.Context) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(ddl) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema transaction: %w", err)
	}
	return nil
}

// splitStatements splits ddl on lines ending in a semicolon. Trigger
// bodies keep their inner statements because only the closing END; line
// ends a statement there.
func splitStatements(ddl string) []string {
	var statements []string
	var current strings.Builder
	inTrigger := false

	for _, line := range strings.Split(ddl, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "--") {
			continue
		}
		if strings.HasPrefix(strings.ToUpper(stripped), "CREATE TRIGGER") {
			inTrigger = true
		}
		current.WriteString(line)
		current.WriteString("\n")

		if !strings.HasSuffix(stripped, ";") {
			continue
		}
		if inTrigger && !strings.EqualFold(stripped, "END;") {
			continue
		}
		inTrigger = false
		statements = append(statements, current.String())
		current.Reset()
	}

	if strings.TrimSpace(current.String()) != "" {
		statements = append(statements, current.String())
	}
	return statements
}
