package memory

import (
	"fmt"

	"kinview/internal/model"
	"kinview/internal/store"
)

// Capture reads every visible object out of r into a new snapshot. Used to
// materialize a proxied view.
func Capture(r store.Reader) (*store.Snapshot, error) {
	snap := &store.Snapshot{}
	for _, kind := range model.Kinds {
		handles, err := r.Handles(kind)
		if err != nil {
			return nil, fmt.Errorf("listing %s handles: %w", kind, err)
		}
		for _, h := range handles {
			obj, err := store.Get(r, kind, h)
			if err != nil {
				return nil, fmt.Errorf("reading %s %s: %w", kind, h, err)
			}
			if err := snap.Add(obj); err != nil {
				return nil, err
			}
		}
	}

	bookmarks, err := r.Bookmarks()
	if err != nil {
		return nil, fmt.Errorf("reading bookmarks: %w", err)
	}
	snap.Bookmarks = bookmarks

	snap.DefaultPerson, err = r.DefaultPersonHandle()
	if err != nil {
		return nil, fmt.Errorf("reading default person: %w", err)
	}
	snap.Researcher, err = r.Researcher()
	if err != nil {
		return nil, fmt.Errorf("reading researcher: %w", err)
	}
	return snap, nil
}
