package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"kinview/internal/model"
	"kinview/internal/store"
)

var (
	ErrEmptySnapshot   = errors.New("snapshot is empty")
	ErrInvalidJSON     = errors.New("invalid JSON snapshot")
	ErrInvalidYAML     = errors.New("invalid YAML snapshot")
	ErrUnknownField    = errors.New("snapshot has unknown field")
	ErrMissingHandle   = errors.New("object missing handle")
	ErrDuplicateHandle = errors.New("duplicate handle")
)

func ParseFile(path string) (*store.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	snap, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

// Parse decodes a snapshot written as JSON, or as YAML using the same
// field names.
func Parse(content []byte) (*store.Snapshot, error) {
	trimmed := bytes.TrimLeft(content, "\ufeff\n\r\t ")
	if len(trimmed) == 0 {
		return nil, ErrEmptySnapshot
	}

	data := trimmed
	if trimmed[0] != '{' {
		var doc any
		if err := yaml.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
		}
		if doc == nil {
			return nil, ErrEmptySnapshot
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
		}
		data = converted
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var snap store.Snapshot
	if err := dec.Decode(&snap); err != nil {
		if strings.Contains(err.Error(), "unknown field") {
			return nil, fmt.Errorf("%w: %v", ErrUnknownField, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	if err := checkHandles(&snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func checkHandles(snap *store.Snapshot) error {
	seen := make(map[model.Handle]model.Kind)
	for _, kind := range model.Kinds {
		for i, obj := range snap.Objects(kind) {
			h := obj.ObjectHandle()
			if h == "" {
				return fmt.Errorf("%w: %s #%d", ErrMissingHandle, kind, i)
			}
			if prev, dup := seen[h]; dup {
				return fmt.Errorf("%w: %q used by %s and %s", ErrDuplicateHandle, h, prev, kind)
			}
			seen[h] = kind
		}
	}
	return nil
}
