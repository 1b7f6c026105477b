package proxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kinview/internal/model"
	"kinview/internal/store"
	"kinview/internal/testtree"
)

func TestPrivateHidesPrivateObjects(t *testing.T) {
	p, err := NewPrivate(newTree(t), quiet()...)
	require.NoError(t, err)

	counts := map[model.Kind]int{
		model.KindPerson:     4,
		model.KindFamily:     1,
		model.KindEvent:      6,
		model.KindPlace:      2,
		model.KindSource:     1,
		model.KindCitation:   1,
		model.KindRepository: 1,
		model.KindMedia:      1,
		model.KindNote:       1,
		model.KindTag:        1,
	}
	for kind, want := range counts {
		got, err := p.Count(kind)
		require.NoError(t, err)
		assert.Equal(t, want, got, kind)
	}

	_, err = p.PersonFromHandle(testtree.Carol)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = p.NoteFromGrampsID("N0002")
	assert.ErrorIs(t, err, store.ErrNotFound)

	def, err := p.DefaultPersonHandle()
	require.NoError(t, err)
	assert.Empty(t, def)
}

func TestPrivateViewIsClosed(t *testing.T) {
	p, err := NewPrivate(newTree(t), quiet()...)
	require.NoError(t, err)

	for _, kind := range model.Kinds {
		handles, err := p.Handles(kind)
		require.NoError(t, err)
		for _, h := range handles {
			obj, err := store.Get(p, kind, h)
			require.NoError(t, err)
			assert.False(t, obj.IsPrivate(), "%s %s", kind, h)
		}
	}
	assertClosed(t, p)
}

func TestPrivateRedactsObjects(t *testing.T) {
	p, err := NewPrivate(newTree(t), quiet()...)
	require.NoError(t, err)

	alice, err := p.PersonFromHandle(testtree.Alice)
	require.NoError(t, err)
	assert.Equal(t, []model.EventRef{{Ref: testtree.AliceBirth, Role: "Primary"}}, alice.EventRefs)
	assert.Equal(t, testtree.AliceBirth, alice.BirthRef)
	assert.Equal(t, []model.Handle{testtree.Bio}, alice.Notes)
	assert.Equal(t, []model.PersonRef{{Ref: testtree.Bob, Relation: "Godfather"}}, alice.Associations)
	assert.Len(t, alice.URLs, 1)

	dan, err := p.PersonFromHandle(testtree.Dan)
	require.NoError(t, err)
	assert.Equal(t, "Private", dan.PrimaryName.PrimarySurname().Surname)
	assert.Empty(t, dan.ParentFamilies)

	smiths, err := p.FamilyFromHandle(testtree.Smiths)
	require.NoError(t, err)
	assert.Equal(t, testtree.Bob, smiths.Father)
	assert.Empty(t, smiths.Mother)
	assert.Equal(t, []model.ChildRef{{Ref: testtree.Alice}}, smiths.Children)
}

func TestPrivatePlaceholderLanguage(t *testing.T) {
	p, err := NewPrivate(newTree(t), quiet(WithLanguage("de"))...)
	require.NoError(t, err)

	dan, err := p.PersonFromHandle(testtree.Dan)
	require.NoError(t, err)
	assert.Equal(t, "Privat", dan.PrimaryName.PrimarySurname().Surname)
}

func TestPrivateBookmarks(t *testing.T) {
	p, err := NewPrivate(newTree(t), quiet()...)
	require.NoError(t, err)

	bookmarks, err := p.Bookmarks()
	require.NoError(t, err)
	assert.Equal(t, []model.Handle{testtree.Alice, testtree.Bob}, bookmarks)
}

func TestPrivateBacklinks(t *testing.T) {
	p, err := NewPrivate(newTree(t), quiet()...)
	require.NoError(t, err)

	links, err := p.FindBacklinkHandles(testtree.Smiths)
	require.NoError(t, err)
	assert.ElementsMatch(t, []store.Backlink{
		{Kind: model.KindPerson, Handle: testtree.Alice},
		{Kind: model.KindPerson, Handle: testtree.Bob},
	}, links)

	links, err = p.FindBacklinkHandles(testtree.Carol)
	require.NoError(t, err)
	assert.Empty(t, links)

	links, err = p.FindBacklinkHandles(testtree.CitePrivate)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestPrivateSummariesFollowRedaction(t *testing.T) {
	p, err := NewPrivate(newTree(t), quiet()...)
	require.NoError(t, err)

	sums, err := p.Summaries(model.KindPerson)
	require.NoError(t, err)
	keys := make(map[model.Handle]string, len(sums))
	for _, s := range sums {
		keys[s.Handle] = s.SortKey
	}
	assert.Equal(t, "Private", keys[testtree.Dan])
	assert.Equal(t, "Smith", keys[testtree.Alice])

	sorted, err := p.LocaleSort(model.KindPerson, "en_US")
	require.NoError(t, err)
	assert.Equal(t, []model.Handle{testtree.Xavier, testtree.Dan, testtree.Alice, testtree.Bob}, sorted)
}
