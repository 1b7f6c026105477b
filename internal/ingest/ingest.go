package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"kinview/internal/model"
	"kinview/internal/parser"
	"kinview/internal/store"
	"kinview/internal/store/memory"
	"kinview/internal/validate"
)

var ErrNoFiles = errors.New("no tree files found")

type Result struct {
	Files      int
	Objects    map[model.Kind]int
	Skipped    bool
	SourceHash string
	Report     *validate.Report
}

type Options struct {
	Full    bool
	Exclude []string
	Logger  *logrus.Logger
}

// Run parses every tree file under roots into one snapshot, checks it and
// stores it in db. The import is skipped when the files have not changed
// since the last one, unless options.Full is set.
func Run(ctx context.Context, roots []string, db store.SnapshotStore, options Options) (*Result, error) {
	logger := options.Logger
	if logger == nil {
		logger = logrus.New()
	}
	if err := db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	files, err := walkTreeFiles(roots, options.Exclude)
	if err != nil {
		return nil, fmt.Errorf("walking tree files: %w", err)
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	hash, err := hashFiles(files)
	if err != nil {
		return nil, err
	}
	result := &Result{Files: len(files), SourceHash: hash}

	if !options.Full {
		existing, err := db.SourceHash(ctx)
		if err != nil && !errors.Is(err, store.ErrNoSnapshot) {
			return nil, fmt.Errorf("reading source hash: %w", err)
		}
		if existing == hash {
			logger.WithField("hash", hash).Info("tree unchanged, skipping import")
			result.Skipped = true
			return result, nil
		}
	}

	snap := &store.Snapshot{}
	for _, path := range files {
		part, err := parser.ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		if err := merge(snap, part); err != nil {
			return nil, fmt.Errorf("merging %s: %w", path, err)
		}
		logger.WithFields(logrus.Fields{"file": path, "objects": part.Len()}).Debug("parsed tree file")
	}

	tree, err := memory.New(snap)
	if err != nil {
		return nil, fmt.Errorf("indexing snapshot: %w", err)
	}
	report, err := validate.Run(tree, logger)
	if err != nil {
		return nil, fmt.Errorf("checking snapshot: %w", err)
	}
	result.Report = report
	for _, issue := range report.Issues {
		entry := logger.WithFields(logrus.Fields{"code": issue.Code, "kind": issue.Kind, "handle": issue.Handle})
		if issue.Severity == validate.SeverityError {
			entry.Warn(issue.Message)
		} else {
			entry.Debug(issue.Message)
		}
	}

	if err := db.SaveSnapshot(ctx, snap, hash); err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}

	result.Objects = make(map[model.Kind]int, len(model.Kinds))
	for _, kind := range model.Kinds {
		result.Objects[kind] = len(snap.Objects(kind))
	}
	logger.WithFields(logrus.Fields{
		"files":   result.Files,
		"objects": snap.Len(),
		"errors":  report.Count(validate.SeverityError),
	}).Info("imported tree")
	return result, nil
}

// merge appends part to snap. Database-level records may appear in more
// than one file only if they agree.
func merge(snap, part *store.Snapshot) error {
	for _, kind := range model.Kinds {
		for _, obj := range part.Objects(kind) {
			if err := snap.Add(obj); err != nil {
				return err
			}
		}
	}
	snap.Bookmarks = append(snap.Bookmarks, part.Bookmarks...)

	if part.DefaultPerson != "" {
		if snap.DefaultPerson != "" && snap.DefaultPerson != part.DefaultPerson {
			return fmt.Errorf("conflicting default person %s and %s", snap.DefaultPerson, part.DefaultPerson)
		}
		snap.DefaultPerson = part.DefaultPerson
	}
	if part.Researcher != nil {
		if snap.Researcher != nil && *snap.Researcher != *part.Researcher {
			return fmt.Errorf("conflicting researcher records")
		}
		snap.Researcher = part.Researcher
	}
	return nil
}

func walkTreeFiles(roots []string, excludes []string) ([]string, error) {
	excluded := make([]string, 0, len(excludes))
	for _, path := range excludes {
		if path == "" {
			continue
		}
		excluded = append(excluded, filepath.Clean(path))
	}

	var files []string
	for _, root := range roots {
		if root == "" {
			continue
		}
		root = filepath.Clean(root)
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if isExcluded(path, excluded) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !isTreeFile(d.Name()) {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func isTreeFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func isExcluded(path string, excludes []string) bool {
	clean := filepath.Clean(path)
	for _, exclude := range excludes {
		if exclude == clean || strings.HasPrefix(clean, exclude+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}

// hashFiles combines the per-file hashes in path order, so renaming a file
// changes the result as well.
func hashFiles(files []string) (string, error) {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	h := sha256.New()
	for _, path := range sorted {
		sum, err := computeHash(path)
		if err != nil {
			return "", fmt.Errorf("hashing %s: %w", path, err)
		}
		fmt.Fprintf(h, "%s\x00%s\n", filepath.ToSlash(path), sum)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func computeHash(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
