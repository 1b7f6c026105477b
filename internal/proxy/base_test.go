package proxy

import (
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kinview/internal/metrics"
	"kinview/internal/model"
	"kinview/internal/store"
	"kinview/internal/store/memory"
	"kinview/internal/testtree"
)

var errBoom = errors.New("boom")

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTree(t *testing.T) *memory.Store {
	t.Helper()
	s, err := memory.New(testtree.Snapshot())
	require.NoError(t, err)
	return s
}

func quiet(opts ...Option) []Option {
	return append([]Option{WithLogger(quietLogger())}, opts...)
}

// assertClosed checks that every object visible through r only references
// objects that are visible through r as well.
func assertClosed(t *testing.T, r store.Reader) {
	t.Helper()
	for _, kind := range model.Kinds {
		handles, err := r.Handles(kind)
		require.NoError(t, err)
		for _, h := range handles {
			obj, err := store.Get(r, kind, h)
			require.NoError(t, err, "%s %s listed but not readable", kind, h)
			for _, ref := range obj.References() {
				_, err := store.Get(r, ref.Kind, ref.Handle)
				assert.NoError(t, err, "%s %s references hidden %v", kind, h, ref)
			}
		}
	}
}

func onlyPeople(handles ...model.Handle) Hooks {
	return Hooks{Maps: map[model.Kind]MapFunc{
		model.KindPerson: func(b *Base) (*VisibilityMap, error) {
			return HandleMap(b.Inner(), model.KindPerson, handles)
		},
	}}
}

func TestBaseWithoutHooksShowsEverything(t *testing.T) {
	s := newTree(t)
	b, err := NewBase(s, Hooks{}, quiet()...)
	require.NoError(t, err)

	for _, kind := range model.Kinds {
		want, err := s.Count(kind)
		require.NoError(t, err)
		got, err := b.Count(kind)
		require.NoError(t, err)
		assert.Equal(t, want, got, kind)
	}

	bookmarks, err := b.Bookmarks()
	require.NoError(t, err)
	assert.Equal(t, []model.Handle{testtree.Alice, testtree.Carol, testtree.Bob}, bookmarks)

	def, err := b.DefaultPersonHandle()
	require.NoError(t, err)
	assert.Equal(t, testtree.Carol, def)

	res, err := b.Researcher()
	require.NoError(t, err)
	assert.Equal(t, "R. Searcher", res.Name)

	tag, err := b.TagFromName("ToDo")
	require.NoError(t, err)
	assert.Equal(t, testtree.ToDo, tag.Handle)
}

func TestBaseHidesObjectsOutsideTheMap(t *testing.T) {
	b, err := NewBase(newTree(t), onlyPeople(testtree.Alice, testtree.Bob), quiet()...)
	require.NoError(t, err)

	_, err = b.PersonFromHandle(testtree.Carol)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = b.PersonFromGrampsID("I0003")
	assert.ErrorIs(t, err, store.ErrNotFound)

	p, err := b.PersonFromGrampsID("I0002")
	require.NoError(t, err)
	assert.Equal(t, testtree.Bob, p.Handle)

	handles, err := b.Handles(model.KindPerson)
	require.NoError(t, err)
	assert.Equal(t, []model.Handle{testtree.Alice, testtree.Bob}, handles)

	people, err := b.People()
	require.NoError(t, err)
	assert.Len(t, people, 2)

	n, err := b.Count(model.KindPerson)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	bookmarks, err := b.Bookmarks()
	require.NoError(t, err)
	assert.Equal(t, []model.Handle{testtree.Alice, testtree.Bob}, bookmarks)

	def, err := b.DefaultPersonHandle()
	require.NoError(t, err)
	assert.Empty(t, def)
}

func TestBaseBacklinksRespectVisibility(t *testing.T) {
	b, err := NewBase(newTree(t), onlyPeople(testtree.Alice, testtree.Carol, testtree.Dan), quiet()...)
	require.NoError(t, err)

	_, err = b.PersonFromHandle(testtree.Bob)
	assert.ErrorIs(t, err, store.ErrNotFound)
	links, err := b.FindBacklinkHandles(testtree.Bob)
	require.NoError(t, err)
	assert.Empty(t, links)

	links, err = b.FindBacklinkHandles(testtree.Smiths)
	require.NoError(t, err)
	assert.ElementsMatch(t, []store.Backlink{
		{Kind: model.KindPerson, Handle: testtree.Alice},
		{Kind: model.KindPerson, Handle: testtree.Carol},
		{Kind: model.KindPerson, Handle: testtree.Dan},
	}, links)
}

func TestBaseBacklinksFollowTransformedReferrers(t *testing.T) {
	hooks := Hooks{Transforms: map[model.Kind]TransformFunc{
		model.KindPerson: func(obj model.Object) (model.Object, error) {
			p := obj.(*model.Person)
			p.ParentFamilies = nil
			p.LdsOrds = nil
			return p, nil
		},
	}}
	b, err := NewBase(newTree(t), hooks, quiet()...)
	require.NoError(t, err)

	links, err := b.FindBacklinkHandles(testtree.Smiths, model.KindPerson)
	require.NoError(t, err)
	assert.ElementsMatch(t, []store.Backlink{
		{Kind: model.KindPerson, Handle: testtree.Bob},
		{Kind: model.KindPerson, Handle: testtree.Carol},
	}, links)
}

func TestBaseTransformsAreMemoized(t *testing.T) {
	calls := 0
	hooks := Hooks{Transforms: map[model.Kind]TransformFunc{
		model.KindPerson: func(obj model.Object) (model.Object, error) {
			calls++
			p := obj.(*model.Person)
			p.PrimaryName.FirstName = "Seen"
			return p, nil
		},
	}}
	b, err := NewBase(newTree(t), hooks, quiet()...)
	require.NoError(t, err)

	first, err := b.PersonFromHandle(testtree.Alice)
	require.NoError(t, err)
	assert.Equal(t, "Seen", first.PrimaryName.FirstName)
	first.PrimaryName.FirstName = "Changed"

	second, err := b.PersonFromHandle(testtree.Alice)
	require.NoError(t, err)
	assert.Equal(t, "Seen", second.PrimaryName.FirstName)
	assert.Equal(t, 1, calls)
}

func TestBaseBoundedCacheEvicts(t *testing.T) {
	calls := 0
	hooks := Hooks{Transforms: map[model.Kind]TransformFunc{
		model.KindPerson: func(obj model.Object) (model.Object, error) {
			calls++
			return obj, nil
		},
	}}
	b, err := NewBase(newTree(t), hooks, quiet(WithCacheSize(1))...)
	require.NoError(t, err)

	for _, h := range []model.Handle{testtree.Alice, testtree.Bob, testtree.Alice} {
		_, err := b.PersonFromHandle(h)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
}

func TestBaseTransformErrorIsReturned(t *testing.T) {
	hooks := Hooks{Transforms: map[model.Kind]TransformFunc{
		model.KindEvent: func(model.Object) (model.Object, error) {
			return nil, errBoom
		},
	}}
	b, err := NewBase(newTree(t), hooks, quiet()...)
	require.NoError(t, err)

	_, err = b.EventFromHandle(testtree.Marriage)
	assert.ErrorIs(t, err, errBoom)
}

type failingSummaries struct {
	store.Reader
	kind model.Kind
}

func (f failingSummaries) Summaries(kind model.Kind) ([]store.Summary, error) {
	if kind == f.kind {
		return nil, errBoom
	}
	return f.Reader.Summaries(kind)
}

type failingBookmarks struct {
	store.Reader
}

func (failingBookmarks) Bookmarks() ([]model.Handle, error) {
	return nil, errBoom
}

func TestBaseConstructionFailures(t *testing.T) {
	s := newTree(t)

	_, err := NewBase(failingSummaries{Reader: s, kind: model.KindMedia}, Hooks{}, quiet()...)
	require.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "Media map")

	_, err = NewBase(failingBookmarks{Reader: s}, Hooks{}, quiet()...)
	assert.ErrorIs(t, err, errBoom)

	_, err = NewPrivate(failingSummaries{Reader: s, kind: model.KindPerson}, quiet()...)
	assert.ErrorIs(t, err, errBoom)
}

func TestBaseUnknownKind(t *testing.T) {
	b, err := NewBase(newTree(t), Hooks{}, quiet()...)
	require.NoError(t, err)

	_, err = b.Handles("Widget")
	assert.Error(t, err)
	_, err = b.Count("Widget")
	assert.Error(t, err)
	_, err = b.LocaleSort("Widget", "en")
	assert.Error(t, err)
}

func TestBaseMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	b, err := NewBase(newTree(t), onlyPeople(testtree.Alice), quiet(WithName("view"), WithMetrics(m))...)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Visible.WithLabelValues("view", "Person")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.Visible.WithLabelValues("view", "Event")))

	for range 3 {
		_, err := b.PersonFromHandle(testtree.Alice)
		require.NoError(t, err)
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("view", "Person", "miss")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("view", "Person", "hit")))
}

func TestBaseConcurrentReads(t *testing.T) {
	b, err := NewPrivate(newTree(t), quiet(WithCacheSize(4))...)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, kind := range model.Kinds {
				handles, err := b.Handles(kind)
				assert.NoError(t, err)
				for _, h := range handles {
					_, err := store.Get(b, kind, h)
					assert.NoError(t, err)
				}
			}
		}()
	}
	wg.Wait()
}

func TestLocaleSort(t *testing.T) {
	snap := &store.Snapshot{Places: []*model.Place{
		{Base: model.Base{Handle: "PL-z"}, Title: "Zürich"},
		{Base: model.Base{Handle: "PL-o"}, Title: "Örebro"},
		{Base: model.Base{Handle: "PL-s"}, Title: "Oslo"},
	}}
	s, err := memory.New(snap)
	require.NoError(t, err)
	b, err := NewBase(s, Hooks{}, quiet()...)
	require.NoError(t, err)

	tests := []struct {
		collation string
		want      []model.Handle
	}{
		{"de_DE.UTF-8", []model.Handle{"PL-o", "PL-s", "PL-z"}},
		{"sv-SE", []model.Handle{"PL-s", "PL-z", "PL-o"}},
		{"", []model.Handle{"PL-z", "PL-o", "PL-s"}},
		{"!!", []model.Handle{"PL-z", "PL-o", "PL-s"}},
	}
	for _, tt := range tests {
		got, err := b.LocaleSort(model.KindPlace, tt.collation)
		require.NoError(t, err, tt.collation)
		assert.Equal(t, tt.want, got, tt.collation)
	}
}

func TestLocaleSortUsesVisibleHandles(t *testing.T) {
	b, err := NewBase(newTree(t), onlyPeople(testtree.Alice, testtree.Carol, testtree.Xavier), quiet()...)
	require.NoError(t, err)

	got, err := b.LocaleSort(model.KindPerson, "en_US")
	require.NoError(t, err)
	assert.Equal(t, []model.Handle{testtree.Carol, testtree.Xavier, testtree.Alice}, got)
}
