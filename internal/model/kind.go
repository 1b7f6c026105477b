// Package model defines the primary genealogical objects read through the
// store and proxy layers, together with the sub-structures they embed.
package model

type Handle string

// Kind names one of the ten primary object classes.
type Kind string

const (
	KindPerson     Kind = "Person"
	KindFamily     Kind = "Family"
	KindEvent      Kind = "Event"
	KindPlace      Kind = "Place"
	KindSource     Kind = "Source"
	KindCitation   Kind = "Citation"
	KindRepository Kind = "Repository"
	KindMedia      Kind = "Media"
	KindNote       Kind = "Note"
	KindTag        Kind = "Tag"
)

// Kinds lists every primary kind. Person comes first and Family second;
// proxies build their visibility maps in this order.
var Kinds = []Kind{
	KindPerson,
	KindFamily,
	KindEvent,
	KindPlace,
	KindSource,
	KindCitation,
	KindRepository,
	KindMedia,
	KindNote,
	KindTag,
}

// legacyKinds maps class names written by older databases.
var legacyKinds = map[string]Kind{
	"MediaObject": KindMedia,
}

// ParseKind resolves a class name to a Kind.
func ParseKind(name string) (Kind, bool) {
	if kind, ok := legacyKinds[name]; ok {
		return kind, true
	}
	for _, kind := range Kinds {
		if string(kind) == name {
			return kind, true
		}
	}
	return "", false
}

// Ref is one edge of the reference graph.
type Ref struct {
	Kind   Kind   `json:"kind"`
	Handle Handle `json:"handle"`
}

// Object is implemented by every primary object.
type Object interface {
	ObjectKind() Kind
	ObjectHandle() Handle
	IsPrivate() bool
	SortKey() string
	References() []Ref
}
