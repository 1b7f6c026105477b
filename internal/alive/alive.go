// Package alive guesses whether a person may still be alive in a given
// year. Without a good reason to believe someone is dead, they are
// considered alive.
package alive

import (
	"errors"
	"slices"

	"kinview/internal/model"
	"kinview/internal/store"
)

const (
	DefaultMaxAgeProbAlive  = 110
	DefaultMaxSibAgeDiff    = 20
	DefaultAvgGenerationGap = 20
)

var (
	birthFallbacks = []string{"Baptism", "Christening"}
	deathFallbacks = []string{"Burial", "Cremation", "Cause Of Death"}
)

type Checker struct {
	MaxAgeProbAlive  int
	MaxSibAgeDiff    int
	AvgGenerationGap int
}

func Default() Checker {
	return Checker{
		MaxAgeProbAlive:  DefaultMaxAgeProbAlive,
		MaxSibAgeDiff:    DefaultMaxSibAgeDiff,
		AvgGenerationGap: DefaultAvgGenerationGap,
	}
}

type evidence struct {
	birth     int
	death     int
	deathSeen bool
}

// ProbablyAlive reports whether p may be alive in year. yearsAfterDeath
// keeps people counted as alive for that many years after they died.
func (c Checker) ProbablyAlive(r store.Reader, p *model.Person, year, yearsAfterDeath int) (bool, error) {
	ev, err := c.evidence(r, p)
	if err != nil {
		return false, err
	}

	switch {
	case ev.death != 0:
		birth := ev.birth
		if birth == 0 {
			birth = ev.death - c.MaxAgeProbAlive
		}
		return birth <= year && year < ev.death+yearsAfterDeath, nil
	case ev.birth != 0:
		if ev.deathSeen {
			return false, nil
		}
		return ev.birth <= year && year < ev.birth+c.MaxAgeProbAlive+yearsAfterDeath, nil
	case ev.deathSeen:
		return false, nil
	}

	birth, ok, err := c.estimateBirth(r, p)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	return year < birth+c.MaxAgeProbAlive+yearsAfterDeath, nil
}

func (c Checker) evidence(r store.Reader, p *model.Person) (evidence, error) {
	var ev evidence

	if ref, ok := p.DeathEventRef(); ok && isPrimary(ref) {
		e, err := event(r, ref.Ref)
		if err != nil {
			return ev, err
		}
		if e != nil {
			ev.deathSeen = true
			ev.death = e.Date.Year
		}
	}
	if ev.death == 0 {
		y, seen, err := fallbackYear(r, p, deathFallbacks)
		if err != nil {
			return ev, err
		}
		ev.deathSeen = ev.deathSeen || seen
		ev.death = y
	}

	if ref, ok := p.BirthEventRef(); ok && isPrimary(ref) {
		e, err := event(r, ref.Ref)
		if err != nil {
			return ev, err
		}
		if e != nil {
			ev.birth = e.Date.Year
		}
	}
	if ev.birth == 0 {
		y, _, err := fallbackYear(r, p, birthFallbacks)
		if err != nil {
			return ev, err
		}
		ev.birth = y
	}
	return ev, nil
}

// estimateBirth derives the latest plausible birth year from close
// relatives: siblings first, then parents, then children.
func (c Checker) estimateBirth(r store.Reader, p *model.Person) (int, bool, error) {
	var sibling, parent int
	for _, fh := range p.ParentFamilies {
		f, err := family(r, fh)
		if err != nil {
			return 0, false, err
		}
		if f == nil {
			continue
		}
		for _, h := range []model.Handle{f.Father, f.Mother} {
			y, err := c.birthYear(r, h)
			if err != nil {
				return 0, false, err
			}
			if y != 0 && (parent == 0 || y > parent) {
				parent = y
			}
		}
		for _, child := range f.Children {
			if child.Ref == p.Handle {
				continue
			}
			y, err := c.birthYear(r, child.Ref)
			if err != nil {
				return 0, false, err
			}
			if y != 0 && (sibling == 0 || y > sibling) {
				sibling = y
			}
		}
	}
	if sibling != 0 {
		return sibling + c.MaxSibAgeDiff, true, nil
	}
	if parent != 0 {
		return parent + c.AvgGenerationGap, true, nil
	}

	var child int
	for _, fh := range p.Families {
		f, err := family(r, fh)
		if err != nil {
			return 0, false, err
		}
		if f == nil {
			continue
		}
		for _, ref := range f.Children {
			y, err := c.birthYear(r, ref.Ref)
			if err != nil {
				return 0, false, err
			}
			if y != 0 && (child == 0 || y < child) {
				child = y
			}
		}
	}
	if child != 0 {
		return child - c.AvgGenerationGap, true, nil
	}
	return 0, false, nil
}

func (c Checker) birthYear(r store.Reader, h model.Handle) (int, error) {
	if h == "" {
		return 0, nil
	}
	p, err := r.PersonFromHandle(h)
	if errors.Is(err, store.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	ev, err := c.evidence(r, p)
	return ev.birth, err
}

func isPrimary(ref model.EventRef) bool {
	return ref.Role == "" || ref.Role == "Primary"
}

func fallbackYear(r store.Reader, p *model.Person, types []string) (int, bool, error) {
	seen := false
	for _, ref := range p.EventRefs {
		if !isPrimary(ref) {
			continue
		}
		e, err := event(r, ref.Ref)
		if err != nil {
			return 0, false, err
		}
		if e == nil || !slices.Contains(types, e.Type) {
			continue
		}
		seen = true
		if e.Date.Year != 0 {
			return e.Date.Year, true, nil
		}
	}
	return 0, seen, nil
}

func event(r store.Reader, h model.Handle) (*model.Event, error) {
	e, err := r.EventFromHandle(h)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return e, err
}

func family(r store.Reader, h model.Handle) (*model.Family, error) {
	f, err := r.FamilyFromHandle(h)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return f, err
}
