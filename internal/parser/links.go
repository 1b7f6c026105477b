package parser

import (
	"errors"
	"fmt"
	"strings"

	"kinview/internal/model"
)

const linkScheme = "gramps://"

var ErrInvalidLink = errors.New("invalid object link")

// IsObjectLink reports whether a link tag value points into the database
// rather than at an external URL.
func IsObjectLink(value string) bool {
	return strings.HasPrefix(value, linkScheme)
}

// ParseLink decodes gramps://<Class>/handle/<value>.
func ParseLink(value string) (model.Ref, error) {
	if !IsObjectLink(value) {
		return model.Ref{}, fmt.Errorf("%w: %q lacks %s prefix", ErrInvalidLink, value, linkScheme)
	}
	parts := strings.Split(value[len(linkScheme):], "/")
	if len(parts) != 3 {
		return model.Ref{}, fmt.Errorf("%w: %q", ErrInvalidLink, value)
	}
	class, prop, handle := parts[0], parts[1], parts[2]
	kind, ok := model.ParseKind(class)
	if !ok {
		return model.Ref{}, fmt.Errorf("%w: unknown class %q", ErrInvalidLink, class)
	}
	if prop != "handle" {
		return model.Ref{}, fmt.Errorf("%w: unknown property %q", ErrInvalidLink, prop)
	}
	if handle == "" {
		return model.Ref{}, fmt.Errorf("%w: empty handle in %q", ErrInvalidLink, value)
	}
	return model.Ref{Kind: kind, Handle: model.Handle(handle)}, nil
}

// FormatLink is the inverse of ParseLink.
func FormatLink(ref model.Ref) string {
	return linkScheme + string(ref.Kind) + "/handle/" + string(ref.Handle)
}

// NoteLinks extracts the object links in a note's styled text. External
// links are ignored; object links that fail to parse are returned as errors.
func NoteLinks(n *model.Note) ([]model.Ref, []error) {
	var (
		refs []model.Ref
		errs []error
	)
	for _, tag := range n.Text.Tags {
		if tag.Name != model.LinkTag || !IsObjectLink(tag.Value) {
			continue
		}
		ref, err := ParseLink(tag.Value)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		refs = append(refs, ref)
	}
	return refs, errs
}
