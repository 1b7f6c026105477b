package proxy

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"kinview/internal/model"
	"kinview/internal/store"
)

// parseCollation accepts BCP 47 tags as well as POSIX locale names such as
// de_DE.UTF-8 or sr_RS@latin.
func parseCollation(collation string) (language.Tag, error) {
	name, _, _ := strings.Cut(collation, ".")
	name, _, _ = strings.Cut(name, "@")
	name = strings.ReplaceAll(name, "_", "-")
	if name == "" {
		return language.Und, fmt.Errorf("empty collation")
	}
	return language.Parse(name)
}

// LocaleSort orders kind's visible handles by their summary sort keys
// using the collation rules of the given locale. An unusable collation is
// logged and the map order returned instead.
func (b *Base) LocaleSort(kind model.Kind, collation string) ([]model.Handle, error) {
	m, ok := b.maps[kind]
	if !ok {
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
	sums := m.Summaries()

	tag, err := parseCollation(collation)
	if err != nil {
		b.logger.WithFields(logrus.Fields{
			"proxy":     b.name,
			"collation": collation,
		}).WithError(err).Warn("unsupported collation, keeping map order")
		return m.Handles(), nil
	}

	c := collate.New(tag)
	slices.SortStableFunc(sums, func(x, y store.Summary) int {
		return c.CompareString(x.SortKey, y.SortKey)
	})
	out := make([]model.Handle, len(sums))
	for i, s := range sums {
		out[i] = s.Handle
	}
	return out, nil
}
