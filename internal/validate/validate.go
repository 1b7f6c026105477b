// Package validate checks a tree for broken references and records that
// nothing reaches.
package validate

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"kinview/internal/model"
	"kinview/internal/parser"
	"kinview/internal/store"
	"kinview/internal/walker"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

const (
	codeDanglingReference = "dangling_reference"
	codeDanglingLink      = "dangling_link"
	codeInvalidLink       = "invalid_link"
	codeDuplicateID       = "duplicate_gramps_id"
	codeEventRefMissing   = "event_ref_not_listed"
	codeUnreferenced      = "unreferenced_object"
	codeDisconnected      = "disconnected_person"
	codeDanglingBookmark  = "dangling_bookmark"
	codeDefaultPerson     = "missing_default_person"
)

type Issue struct {
	Severity Severity     `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Kind     model.Kind   `json:"kind,omitempty"`
	Handle   model.Handle `json:"handle,omitempty"`
	GrampsID string       `json:"gramps_id,omitempty"`
}

type Report struct {
	Issues []Issue `json:"issues"`
}

// Count returns the number of issues with the given severity.
func (r *Report) Count(s Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			n++
		}
	}
	return n
}

func (r *Report) HasErrors() bool {
	return r.Count(SeverityError) > 0
}

type checker struct {
	r      store.Reader
	logger *logrus.Logger
	issues []Issue
}

// Run checks every object in r. Storage failures abort the run; problems
// with the data itself become issues.
func Run(r store.Reader, logger *logrus.Logger) (*Report, error) {
	if r == nil {
		return nil, fmt.Errorf("reader is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	c := &checker{r: r, logger: logger}

	if err := c.objects(); err != nil {
		return nil, err
	}
	if err := c.reachability(); err != nil {
		return nil, err
	}
	if err := c.database(); err != nil {
		return nil, err
	}
	if c.issues == nil {
		c.issues = []Issue{}
	}
	return &Report{Issues: c.issues}, nil
}

func (c *checker) add(sev Severity, code string, obj model.Object, format string, args ...any) {
	issue := Issue{Severity: sev, Code: code, Message: fmt.Sprintf(format, args...)}
	if obj != nil {
		issue.Kind = obj.ObjectKind()
		issue.Handle = obj.ObjectHandle()
		issue.GrampsID = store.GrampsID(obj)
	}
	c.issues = append(c.issues, issue)
}

func (c *checker) exists(kind model.Kind, h model.Handle) (bool, error) {
	ok, err := store.Exists(c.r, kind, h)
	if err != nil {
		return false, fmt.Errorf("looking up %s %s: %w", kind, h, err)
	}
	return ok, nil
}

func (c *checker) objects() error {
	for _, kind := range model.Kinds {
		handles, err := c.r.Handles(kind)
		if err != nil {
			return fmt.Errorf("listing %s handles: %w", kind, err)
		}
		ids := make(map[string]model.Handle)
		for _, h := range handles {
			obj, err := store.Get(c.r, kind, h)
			if err != nil {
				return fmt.Errorf("reading %s %s: %w", kind, h, err)
			}
			if id := store.GrampsID(obj); id != "" {
				if first, dup := ids[id]; dup {
					c.add(SeverityError, codeDuplicateID, obj, "gramps id %s already used by %s", id, first)
				} else {
					ids[id] = h
				}
			}
			if err := c.references(obj); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *checker) references(obj model.Object) error {
	for _, ref := range obj.References() {
		ok, err := c.exists(ref.Kind, ref.Handle)
		if err != nil {
			return err
		}
		if !ok {
			c.add(SeverityError, codeDanglingReference, obj, "references missing %s %s", ref.Kind, ref.Handle)
		}
	}

	switch o := obj.(type) {
	case *model.Person:
		if _, ok := o.BirthEventRef(); o.BirthRef != "" && !ok {
			c.add(SeverityError, codeEventRefMissing, obj, "birth event %s is not among the event references", o.BirthRef)
		}
		if _, ok := o.DeathEventRef(); o.DeathRef != "" && !ok {
			c.add(SeverityError, codeEventRefMissing, obj, "death event %s is not among the event references", o.DeathRef)
		}
	case *model.Note:
		links, errs := parser.NoteLinks(o)
		for _, err := range errs {
			c.add(SeverityWarn, codeInvalidLink, obj, "%v", err)
		}
		for _, link := range links {
			ok, err := c.exists(link.Kind, link.Handle)
			if err != nil {
				return err
			}
			if !ok {
				c.add(SeverityError, codeDanglingLink, obj, "links to missing %s %s", link.Kind, link.Handle)
			}
		}
	}
	return nil
}

// reachability reports objects no person leads to and people that are
// connected to nothing.
func (c *checker) reachability() error {
	all, err := walker.AllPeople(c.r, walker.WithLogger(c.logger))
	if err != nil {
		return fmt.Errorf("walking from all people: %w", err)
	}
	connected, err := walker.ConnectedPeople(c.r, walker.WithLogger(c.logger))
	if err != nil {
		return fmt.Errorf("walking from connected people: %w", err)
	}

	for _, kind := range model.Kinds {
		handles, err := c.r.Handles(kind)
		if err != nil {
			return fmt.Errorf("listing %s handles: %w", kind, err)
		}
		for _, h := range handles {
			switch {
			case kind == model.KindPerson && !connected.Contains(kind, h):
				c.addHandle(SeverityWarn, codeDisconnected, kind, h, "person is connected to no other record")
			case kind != model.KindPerson && !all.Contains(kind, h):
				c.addHandle(SeverityWarn, codeUnreferenced, kind, h, "no person leads to this %s", kind)
			}
		}
	}
	return nil
}

func (c *checker) addHandle(sev Severity, code string, kind model.Kind, h model.Handle, format string, args ...any) {
	obj, err := store.Get(c.r, kind, h)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			c.logger.WithError(err).WithField("handle", h).Warn("reading object for issue")
		}
		c.issues = append(c.issues, Issue{Severity: sev, Code: code, Message: fmt.Sprintf(format, args...), Kind: kind, Handle: h})
		return
	}
	c.add(sev, code, obj, format, args...)
}

func (c *checker) database() error {
	bookmarks, err := c.r.Bookmarks()
	if err != nil {
		return fmt.Errorf("reading bookmarks: %w", err)
	}
	for _, h := range bookmarks {
		ok, err := c.exists(model.KindPerson, h)
		if err != nil {
			return err
		}
		if !ok {
			c.issues = append(c.issues, Issue{
				Severity: SeverityWarn,
				Code:     codeDanglingBookmark,
				Message:  fmt.Sprintf("bookmark names missing person %s", h),
				Kind:     model.KindPerson,
				Handle:   h,
			})
		}
	}

	def, err := c.r.DefaultPersonHandle()
	if err != nil {
		return fmt.Errorf("reading default person: %w", err)
	}
	if def == "" {
		return nil
	}
	ok, err := c.exists(model.KindPerson, def)
	if err != nil {
		return err
	}
	if !ok {
		c.issues = append(c.issues, Issue{
			Severity: SeverityWarn,
			Code:     codeDefaultPerson,
			Message:  fmt.Sprintf("default person %s does not exist", def),
			Kind:     model.KindPerson,
			Handle:   def,
		})
	}
	return nil
}
