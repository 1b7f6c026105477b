package proxy

import (
	"fmt"
	"strings"
	"time"

	"kinview/internal/alive"
	"kinview/internal/i18n"
	"kinview/internal/model"
	"kinview/internal/store"
)

type LivingMode int

const (
	ExcludeAll LivingMode = iota
	IncludeLastNameOnly
	IncludeFullNameOnly
	ReplaceCompleteName
	IncludeAll
)

var livingModeNames = map[LivingMode]string{
	ExcludeAll:          "exclude-all",
	IncludeLastNameOnly: "last-name-only",
	IncludeFullNameOnly: "full-name-only",
	ReplaceCompleteName: "replace-complete-name",
	IncludeAll:          "include-all",
}

func (m LivingMode) String() string {
	if name, ok := livingModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("LivingMode(%d)", int(m))
}

func ParseLivingMode(s string) (LivingMode, error) {
	for mode, name := range livingModeNames {
		if strings.EqualFold(s, name) {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unknown living mode %q", s)
}

type LivingOptions struct {
	Mode LivingMode
	// CurrentYear is the reference year; zero means this year.
	CurrentYear     int
	YearsAfterDeath int
	// LivingText replaces restricted given names; empty picks the
	// translated default.
	LivingText string
	// Checker decides liveness; nil uses alive.Default().
	Checker *alive.Checker
}

// Living hides or redacts people who are probably alive.
type Living struct {
	*Base
	opts   LivingOptions
	living map[model.Handle]bool
}

func NewLiving(inner store.Reader, lo LivingOptions, opts ...Option) (*Living, error) {
	o := buildOptions("living", opts)
	if lo.CurrentYear == 0 {
		lo.CurrentYear = time.Now().Year()
	}
	if lo.LivingText == "" {
		lo.LivingText = i18n.Living(o.language)
	}
	if lo.Checker == nil {
		c := alive.Default()
		lo.Checker = &c
	}

	l := &Living{opts: lo, living: make(map[model.Handle]bool)}
	hooks := Hooks{
		Maps: map[model.Kind]MapFunc{
			model.KindPerson: l.personMap,
		},
		Transforms: map[model.Kind]TransformFunc{
			model.KindPerson: l.person,
			model.KindFamily: l.family,
		},
	}
	if lo.Mode == ExcludeAll {
		hooks.Maps[model.KindFamily] = l.familyMap
	}

	base, err := newBase(inner, hooks, o)
	if err != nil {
		return nil, err
	}
	l.Base = base
	if err := base.resummarize(model.KindPerson); err != nil {
		return nil, err
	}
	return l, nil
}

// IsLiving reports the liveness computed for h when the proxy was built.
func (l *Living) IsLiving(h model.Handle) bool {
	return l.living[h]
}

// personMap classifies every person once; the family map and transforms
// reuse the result.
func (l *Living) personMap(b *Base) (*VisibilityMap, error) {
	return FilterMap(b.inner, model.KindPerson, func(s store.Summary) (bool, error) {
		p, err := b.inner.PersonFromHandle(s.Handle)
		if err != nil {
			return false, fmt.Errorf("reading person %s: %w", s.Handle, err)
		}
		living, err := l.opts.Checker.ProbablyAlive(b.inner, p, l.opts.CurrentYear, l.opts.YearsAfterDeath)
		if err != nil {
			return false, fmt.Errorf("checking person %s: %w", s.Handle, err)
		}
		l.living[s.Handle] = living
		return !(living && l.opts.Mode == ExcludeAll), nil
	})
}

// familyMap admits a family when it has no parents or when at least one
// recorded parent is not living.
func (l *Living) familyMap(b *Base) (*VisibilityMap, error) {
	return FilterMap(b.inner, model.KindFamily, func(s store.Summary) (bool, error) {
		f, err := b.inner.FamilyFromHandle(s.Handle)
		if err != nil {
			return false, fmt.Errorf("reading family %s: %w", s.Handle, err)
		}
		if f.Father == "" && f.Mother == "" {
			return true, nil
		}
		for _, h := range []model.Handle{f.Father, f.Mother} {
			if h != "" && !l.living[h] {
				return true, nil
			}
		}
		return false, nil
	})
}

func (l *Living) person(obj model.Object) (model.Object, error) {
	p := obj.(*model.Person)
	if l.opts.Mode == ExcludeAll {
		l.trimPerson(p)
	}
	if !l.living[p.Handle] || l.opts.Mode == IncludeAll {
		return p, nil
	}
	return &model.Person{
		Base: model.Base{
			Handle:   p.Handle,
			GrampsID: p.GrampsID,
			Change:   p.Change,
			Tags:     p.Tags,
		},
		Gender:         p.Gender,
		PrimaryName:    l.restrictName(p.PrimaryName),
		Families:       p.Families,
		ParentFamilies: p.ParentFamilies,
	}, nil
}

// trimPerson drops a visible person's links to the families and people
// hidden by ExcludeAll.
func (l *Living) trimPerson(p *model.Person) {
	p.Families = l.keep(model.KindFamily, p.Families)
	p.ParentFamilies = l.keep(model.KindFamily, p.ParentFamilies)

	var assoc []model.PersonRef
	for _, ref := range p.Associations {
		if l.Visible(model.KindPerson, ref.Ref) {
			assoc = append(assoc, ref)
		}
	}
	p.Associations = assoc

	for i := range p.LdsOrds {
		if p.LdsOrds[i].Family != "" && !l.Visible(model.KindFamily, p.LdsOrds[i].Family) {
			p.LdsOrds[i].Family = ""
		}
	}
}

func (l *Living) restrictName(old model.Name) model.Name {
	n := model.Name{
		Type:      old.Type,
		GroupAs:   old.GroupAs,
		SortAs:    old.SortAs,
		DisplayAs: old.DisplayAs,
	}
	switch l.opts.Mode {
	case IncludeFullNameOnly:
		n.FirstName = old.FirstName
		n.CallName = old.CallName
		n.NickName = old.NickName
		n.FamilyNick = old.FamilyNick
		n.Title = old.Title
		n.Suffix = old.Suffix
	default:
		n.FirstName = l.opts.LivingText
	}
	for _, s := range old.Surnames {
		if l.opts.Mode == ReplaceCompleteName {
			s.Surname = l.opts.LivingText
			s.Prefix = ""
			s.Connector = ""
		}
		n.Surnames = append(n.Surnames, s)
	}
	return n
}

func (l *Living) family(obj model.Object) (model.Object, error) {
	f := obj.(*model.Family)
	if l.opts.Mode == IncludeAll {
		return f, nil
	}
	parentLiving := l.living[f.Father] || l.living[f.Mother]
	if parentLiving {
		f.EventRefs = nil
	}
	if l.opts.Mode != ExcludeAll {
		return f, nil
	}
	if l.living[f.Father] {
		f.Father = ""
	}
	if l.living[f.Mother] {
		f.Mother = ""
	}
	var children []model.ChildRef
	for _, c := range f.Children {
		if !l.living[c.Ref] {
			children = append(children, c)
		}
	}
	f.Children = children
	return f, nil
}
