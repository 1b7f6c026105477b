package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"kinview/internal/model"
	"kinview/internal/store"
)

const (
	metaSourceHash    = "source_hash"
	metaDefaultPerson = "default_person"
	metaResearcher    = "researcher"
	metaSavedAt       = "saved_at"
)

// SaveSnapshot replaces the stored tree with snap in one transaction.
func (c *Client) SaveSnapshot(ctx context.Context, snap *store.Snapshot, sourceHash string) error {
	rows, err := store.Rows(snap)
	if err != nil {
		return err
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"objects", "bookmarks", "meta"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	insert, err := tx.PrepareContext(ctx, `
	INSERT INTO objects (kind, handle, gramps_id, sort_key, private, data)
	VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing object insert: %w", err)
	}
	defer insert.Close()

	for _, r := range rows {
		if _, err := insert.ExecContext(ctx, r.Kind, r.Handle, r.GrampsID, r.SortKey, r.Private, string(r.Data)); err != nil {
			return fmt.Errorf("inserting %s %s: %w", r.Kind, r.Handle, err)
		}
	}

	for i, h := range snap.Bookmarks {
		if _, err := tx.ExecContext(ctx, "INSERT INTO bookmarks (position, handle) VALUES (?, ?)", i, h); err != nil {
			return fmt.Errorf("inserting bookmark: %w", err)
		}
	}

	researcher, err := json.Marshal(snap.Researcher)
	if err != nil {
		return fmt.Errorf("encoding researcher: %w", err)
	}
	meta := map[string]string{
		metaSourceHash:    sourceHash,
		metaDefaultPerson: string(snap.DefaultPerson),
		metaResearcher:    string(researcher),
		metaSavedAt:       time.Now().UTC().Format(time.RFC3339),
	}
	for key, value := range meta {
		if _, err := tx.ExecContext(ctx, "INSERT INTO meta (key, value) VALUES (?, ?)", key, value); err != nil {
			return fmt.Errorf("writing meta %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

func (c *Client) LoadSnapshot(ctx context.Context) (*store.Snapshot, error) {
	meta, err := c.meta(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := meta[metaSavedAt]; !ok {
		return nil, store.ErrNoSnapshot
	}

	snap := &store.Snapshot{DefaultPerson: model.Handle(meta[metaDefaultPerson])}
	if raw := meta[metaResearcher]; raw != "" && raw != "null" {
		if err := json.Unmarshal([]byte(raw), &snap.Researcher); err != nil {
			return nil, fmt.Errorf("decoding researcher: %w", err)
		}
	}

	rows, err := c.db.QueryContext(ctx, "SELECT kind, handle, data FROM objects ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("loading objects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r store.Row
		var data string
		if err := rows.Scan(&r.Kind, &r.Handle, &data); err != nil {
			return nil, fmt.Errorf("scanning object: %w", err)
		}
		r.Data = []byte(data)
		if err := r.Decode(snap); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating object rows: %w", err)
	}

	snap.Bookmarks, err = c.bookmarks(ctx)
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (c *Client) SourceHash(ctx context.Context) (string, error) {
	var hash string
	err := c.db.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = ?", metaSourceHash).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading source hash: %w", err)
	}
	return hash, nil
}

func (c *Client) meta(ctx context.Context) (map[string]string, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT key, value FROM meta")
	if err != nil {
		return nil, fmt.Errorf("loading meta: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scanning meta: %w", err)
		}
		meta[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating meta rows: %w", err)
	}
	return meta, nil
}

func (c *Client) bookmarks(ctx context.Context) ([]model.Handle, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT handle FROM bookmarks ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("loading bookmarks: %w", err)
	}
	defer rows.Close()

	var out []model.Handle
	for rows.Next() {
		var h model.Handle
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("scanning bookmark: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bookmark rows: %w", err)
	}
	return out, nil
}
