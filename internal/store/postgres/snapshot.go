package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

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
	researcher, err := json.Marshal(snap.Researcher)
	if err != nil {
		return fmt.Errorf("encoding researcher: %w", err)
	}

	return pgx.BeginFunc(ctx, c.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "TRUNCATE objects, bookmarks, meta"); err != nil {
			return fmt.Errorf("clearing tables: %w", err)
		}

		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"objects"},
			[]string{"kind", "handle", "gramps_id", "sort_key", "private", "data"},
			pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
				r := rows[i]
				return []any{string(r.Kind), string(r.Handle), r.GrampsID, r.SortKey, r.Private, r.Data}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("copying objects: %w", err)
		}

		batch := &pgx.Batch{}
		for i, h := range snap.Bookmarks {
			batch.Queue("INSERT INTO bookmarks (position, handle) VALUES ($1, $2)", i, string(h))
		}
		meta := map[string]string{
			metaSourceHash:    sourceHash,
			metaDefaultPerson: string(snap.DefaultPerson),
			metaResearcher:    string(researcher),
			metaSavedAt:       time.Now().UTC().Format(time.RFC3339),
		}
		for key, value := range meta {
			batch.Queue("INSERT INTO meta (key, value) VALUES ($1, $2)", key, value)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("writing bookmarks and meta: %w", err)
		}
		return nil
	})
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

	rows, err := c.pool.Query(ctx, "SELECT kind, handle, data FROM objects ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("loading objects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r store.Row
		var kind, handle string
		if err := rows.Scan(&kind, &handle, &r.Data); err != nil {
			return nil, fmt.Errorf("scanning object: %w", err)
		}
		r.Kind, r.Handle = model.Kind(kind), model.Handle(handle)
		if err := r.Decode(snap); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating object rows: %w", err)
	}

	bookmarks, err := c.pool.Query(ctx, "SELECT handle FROM bookmarks ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("loading bookmarks: %w", err)
	}
	handles, err := pgx.CollectRows(bookmarks, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning bookmarks: %w", err)
	}
	for _, h := range handles {
		snap.Bookmarks = append(snap.Bookmarks, model.Handle(h))
	}
	return snap, nil
}

func (c *Client) SourceHash(ctx context.Context) (string, error) {
	var hash string
	err := c.pool.QueryRow(ctx, "SELECT value FROM meta WHERE key = $1", metaSourceHash).Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading source hash: %w", err)
	}
	return hash, nil
}

func (c *Client) meta(ctx context.Context) (map[string]string, error) {
	rows, err := c.pool.Query(ctx, "SELECT key, value FROM meta")
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
