// Package export writes what a reader exposes as snapshot files that the
// importer can read back.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"kinview/internal/model"
	"kinview/internal/store"
	"kinview/internal/store/memory"
)

// Sink stores one exported file. Write may be called concurrently.
type Sink interface {
	Write(ctx context.Context, name string, data []byte) error
}

type Options struct {
	// Split writes one file per kind plus database.json instead of a
	// single tree.json.
	Split bool
	// Workers bounds concurrent encodes in split mode.
	Workers int
	Logger  *logrus.Logger
}

type Result struct {
	Files   []string
	Objects int
}

func Run(ctx context.Context, r store.Reader, sink Sink, options Options) (*Result, error) {
	logger := options.Logger
	if logger == nil {
		logger = logrus.New()
	}

	snap, err := memory.Capture(r)
	if err != nil {
		return nil, fmt.Errorf("capturing tree: %w", err)
	}
	result := &Result{Objects: snap.Len()}

	if !options.Split {
		if err := write(ctx, sink, "tree.json", snap); err != nil {
			return nil, err
		}
		result.Files = []string{"tree.json"}
		logger.WithFields(logrus.Fields{"objects": result.Objects}).Info("exported tree")
		return result, nil
	}

	parts := splitSnapshot(snap)
	workers := options.Workers
	if workers <= 0 {
		workers = 4
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for name, part := range parts {
		g.Go(func() error {
			if err := write(gctx, sink, name, part); err != nil {
				return err
			}
			mu.Lock()
			result.Files = append(result.Files, name)
			mu.Unlock()
			logger.WithField("file", name).Debug("exported part")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Strings(result.Files)
	logger.WithFields(logrus.Fields{"objects": result.Objects, "files": len(result.Files)}).Info("exported tree")
	return result, nil
}

// splitSnapshot returns one snapshot per non-empty kind, keyed by file
// name, plus the database-level records.
func splitSnapshot(snap *store.Snapshot) map[string]*store.Snapshot {
	parts := make(map[string]*store.Snapshot)
	for _, kind := range model.Kinds {
		objs := snap.Objects(kind)
		if len(objs) == 0 {
			continue
		}
		part := &store.Snapshot{}
		for _, obj := range objs {
			// Objects came from the same snapshot, so Add cannot fail.
			_ = part.Add(obj)
		}
		parts[strings.ToLower(string(kind))+".json"] = part
	}
	if len(snap.Bookmarks) > 0 || snap.DefaultPerson != "" || snap.Researcher != nil {
		parts["database.json"] = &store.Snapshot{
			Bookmarks:     snap.Bookmarks,
			DefaultPerson: snap.DefaultPerson,
			Researcher:    snap.Researcher,
		}
	}
	return parts
}

func write(ctx context.Context, sink Sink, name string, snap *store.Snapshot) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := sink.Write(ctx, name, buf.Bytes()); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
