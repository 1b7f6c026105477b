// Package view stacks the configured proxies over a stored tree.
package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"kinview/internal/config"
	"kinview/internal/metrics"
	"kinview/internal/model"
	"kinview/internal/proxy"
	"kinview/internal/store"
)

type Options struct {
	Language string
	Logger   *logrus.Logger
	Metrics  *metrics.Metrics
}

// View is the outermost reader of a proxy stack. Layers names the proxies
// from innermost to outermost.
type View struct {
	store.Reader
	Layers    []string
	collation string
}

func Build(base store.Reader, cfg config.ViewConfig, o Options) (*View, error) {
	if base == nil {
		return nil, fmt.Errorf("base reader is required")
	}
	if o.Logger == nil {
		o.Logger = logrus.New()
	}
	common := []proxy.Option{
		proxy.WithLogger(o.Logger),
		proxy.WithMetrics(o.Metrics),
		proxy.WithCacheSize(cfg.CacheSize),
		proxy.WithLanguage(o.Language),
	}

	v := &View{Reader: base, collation: cfg.Collation}
	push := func(name string, r store.Reader) {
		v.Reader = r
		v.Layers = append(v.Layers, name)
		o.Logger.WithField("layer", name).Debug("view layer built")
	}

	if cfg.Private {
		p, err := proxy.NewPrivate(v.Reader, common...)
		if err != nil {
			return nil, fmt.Errorf("building private view: %w", err)
		}
		push("private", p)
	}

	if lv := cfg.Living; lv != nil {
		mode, err := proxy.ParseLivingMode(lv.Mode)
		if err != nil {
			return nil, err
		}
		l, err := proxy.NewLiving(v.Reader, proxy.LivingOptions{
			Mode:            mode,
			CurrentYear:     lv.CurrentYear,
			YearsAfterDeath: lv.YearsAfterDeath,
			LivingText:      lv.Text,
		}, common...)
		if err != nil {
			return nil, fmt.Errorf("building living view: %w", err)
		}
		push("living", l)
	}

	if fv := cfg.Filter; fv != nil {
		var fo proxy.FilterOptions
		if len(fv.People) > 0 {
			fo.Person = proxy.GrampsIDFilter(model.KindPerson, fv.People...)
		}
		if len(fv.Events) > 0 {
			fo.Event = proxy.GrampsIDFilter(model.KindEvent, fv.Events...)
		}
		if len(fv.Notes) > 0 {
			fo.Note = proxy.GrampsIDFilter(model.KindNote, fv.Notes...)
		}
		if fo.Person != nil || fo.Event != nil || fo.Note != nil {
			f, err := proxy.NewFilter(v.Reader, fo, common...)
			if err != nil {
				return nil, fmt.Errorf("building filter view: %w", err)
			}
			push("filter", f)
		}
	}

	switch cfg.Referenced {
	case config.ReferencedAll, config.ReferencedConnected:
		r, err := proxy.NewReferenced(v.Reader, cfg.Referenced == config.ReferencedAll, common...)
		if err != nil {
			return nil, fmt.Errorf("building referenced view: %w", err)
		}
		push("referenced", r)
	}
	return v, nil
}

// Sorted lists the visible handles of kind, ordered by the configured
// collation when the outermost layer can sort.
func (v *View) Sorted(kind model.Kind) ([]model.Handle, error) {
	if s, ok := v.Reader.(store.Sorter); ok && v.collation != "" {
		return s.LocaleSort(kind, v.collation)
	}
	return v.Handles(kind)
}

// Visible drops search hits for objects the view hides and rewrites the
// rest from the objects as the view presents them. A hit whose sort key
// the view rewrote is kept only while a term of query still matches the
// rewritten record.
func (v *View) Visible(query string, hits []store.SearchHit) ([]store.SearchHit, error) {
	terms := queryTerms(query)
	out := make([]store.SearchHit, 0, len(hits))
	for _, hit := range hits {
		obj, err := store.Get(v, hit.Kind, hit.Handle)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("checking %s %s: %w", hit.Kind, hit.Handle, err)
		}
		id, key := store.GrampsID(obj), obj.SortKey()
		if hit.SortKey != "" && hit.SortKey != key && !matchesAny(terms, id, key) {
			continue
		}
		hit.GrampsID = id
		hit.SortKey = key
		out = append(out, hit)
	}
	return out, nil
}

var queryOperators = map[string]bool{"and": true, "or": true, "not": true}

func queryTerms(query string) []string {
	var terms []string
	for _, field := range strings.Fields(strings.ToLower(query)) {
		term := strings.Trim(field, `"*+-()`)
		if term == "" || queryOperators[term] {
			continue
		}
		terms = append(terms, term)
	}
	return terms
}

func matchesAny(terms []string, fields ...string) bool {
	for _, field := range fields {
		field = strings.ToLower(field)
		for _, term := range terms {
			if strings.Contains(field, term) {
				return true
			}
		}
	}
	return false
}
