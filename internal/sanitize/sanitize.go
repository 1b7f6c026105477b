// Package sanitize produces privacy-redacted copies of primary objects.
//
// Every method returns a new, independently owned object. Sub-structures
// marked private are dropped, and so is every reference whose target is
// private or cannot be read. Sanitizing an already sanitized object
// returns an equal object.
package sanitize

import (
	"errors"

	"github.com/sirupsen/logrus"

	"kinview/internal/i18n"
	"kinview/internal/model"
	"kinview/internal/store"
)

type Sanitizer struct {
	r           store.Reader
	privateText string
	logger      *logrus.Logger
}

type Option func(*Sanitizer)

// WithLanguage picks the placeholder surname from the translation catalog.
func WithLanguage(lang string) Option {
	return func(s *Sanitizer) {
		s.privateText = i18n.Private(lang)
	}
}

func WithPrivateText(text string) Option {
	return func(s *Sanitizer) {
		s.privateText = text
	}
}

func WithLogger(l *logrus.Logger) Option {
	return func(s *Sanitizer) {
		s.logger = l
	}
}

func New(r store.Reader, opts ...Option) *Sanitizer {
	s := &Sanitizer{
		r:           r,
		privateText: i18n.Private(""),
		logger:      logrus.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PrivateText is the surname used on placeholder names.
func (s *Sanitizer) PrivateText() string {
	return s.privateText
}

// visible reports whether a reference may be kept. Targets that fail to
// resolve, for whatever reason, are treated as absent.
func (s *Sanitizer) visible(kind model.Kind, h model.Handle) bool {
	if h == "" {
		return false
	}
	obj, err := store.Get(s.r, kind, h)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.WithFields(logrus.Fields{
				"kind":   kind,
				"handle": h,
			}).WithError(err).Warn("dropping reference after lookup failure")
		}
		return false
	}
	return !obj.IsPrivate()
}

func (s *Sanitizer) handles(kind model.Kind, in []model.Handle) []model.Handle {
	var out []model.Handle
	for _, h := range in {
		if s.visible(kind, h) {
			out = append(out, h)
		}
	}
	return out
}

func (s *Sanitizer) handle(kind model.Kind, h model.Handle) model.Handle {
	if s.visible(kind, h) {
		return h
	}
	return ""
}

func (s *Sanitizer) citations(in []model.Handle) []model.Handle {
	return s.handles(model.KindCitation, in)
}

func (s *Sanitizer) notes(in []model.Handle) []model.Handle {
	return s.handles(model.KindNote, in)
}

func (s *Sanitizer) tags(in []model.Handle) []model.Handle {
	return s.handles(model.KindTag, in)
}

func (s *Sanitizer) base(b model.Base) model.Base {
	return model.Base{
		Handle:   b.Handle,
		GrampsID: b.GrampsID,
		Change:   b.Change,
		Tags:     s.tags(b.Tags),
	}
}

// Object dispatches to the method for obj's kind.
func (s *Sanitizer) Object(obj model.Object) model.Object {
	switch o := obj.(type) {
	case *model.Person:
		return s.Person(o)
	case *model.Family:
		return s.Family(o)
	case *model.Event:
		return s.Event(o)
	case *model.Place:
		return s.Place(o)
	case *model.Source:
		return s.Source(o)
	case *model.Citation:
		return s.Citation(o)
	case *model.Repository:
		return s.Repository(o)
	case *model.Media:
		return s.Media(o)
	case *model.Note:
		return s.Note(o)
	case *model.Tag:
		return s.Tag(o)
	}
	return obj
}
