package proxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kinview/internal/model"
	"kinview/internal/store"
	"kinview/internal/testtree"
)

var birthsOnly = FilterFunc(func(r store.Reader, h model.Handle) (bool, error) {
	e, err := r.EventFromHandle(h)
	if err != nil {
		return false, err
	}
	return e.Type == "Birth", nil
})

func TestFilterTrimsReferences(t *testing.T) {
	f, err := NewFilter(newTree(t), FilterOptions{
		Person: HandleFilter{testtree.Alice, testtree.Bob},
		Event:  birthsOnly,
		Note:   HandleFilter{testtree.PrivateNote},
	}, quiet()...)
	require.NoError(t, err)

	people, err := f.Handles(model.KindPerson)
	require.NoError(t, err)
	assert.Equal(t, []model.Handle{testtree.Alice, testtree.Bob}, people)

	families, err := f.Handles(model.KindFamily)
	require.NoError(t, err)
	assert.Equal(t, []model.Handle{testtree.Smiths}, families)

	events, err := f.Count(model.KindEvent)
	require.NoError(t, err)
	assert.Equal(t, 4, events)

	alice, err := f.PersonFromHandle(testtree.Alice)
	require.NoError(t, err)
	assert.Equal(t, []model.EventRef{{Ref: testtree.AliceBirth, Role: "Primary"}}, alice.EventRefs)
	assert.Equal(t, testtree.AliceBirth, alice.BirthRef)
	assert.Equal(t, []model.PersonRef{{Ref: testtree.Bob, Relation: "Godfather"}}, alice.Associations)
	assert.Equal(t, []model.Handle{testtree.PrivateNote}, alice.Notes)
	assert.Equal(t, []model.Handle{testtree.Smiths}, alice.ParentFamilies)

	bob, err := f.PersonFromHandle(testtree.Bob)
	require.NoError(t, err)
	assert.Equal(t, testtree.BobBirth, bob.BirthRef)
	assert.Empty(t, bob.DeathRef)

	smiths, err := f.FamilyFromHandle(testtree.Smiths)
	require.NoError(t, err)
	assert.Equal(t, testtree.Bob, smiths.Father)
	assert.Empty(t, smiths.Mother)
	assert.Equal(t, []model.ChildRef{{Ref: testtree.Alice}}, smiths.Children)
	assert.Empty(t, smiths.EventRefs)
	assert.Empty(t, smiths.Notes)

	_, err = f.NoteFromHandle(testtree.Bio)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = f.PersonFromHandle(testtree.Carol)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFilterWithoutPersonFilterKeepsFamilies(t *testing.T) {
	f, err := NewFilter(newTree(t), FilterOptions{Event: birthsOnly}, quiet()...)
	require.NoError(t, err)

	n, err := f.Count(model.KindPerson)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	smiths, err := f.FamilyFromHandle(testtree.Smiths)
	require.NoError(t, err)
	assert.Equal(t, testtree.Carol, smiths.Mother)
	assert.Len(t, smiths.Children, 2)
	assert.Empty(t, smiths.EventRefs)
}

func TestGrampsIDFilter(t *testing.T) {
	f, err := NewFilter(newTree(t), FilterOptions{
		Person: GrampsIDFilter(model.KindPerson, "I0002", "I9999"),
	}, quiet()...)
	require.NoError(t, err)

	people, err := f.Handles(model.KindPerson)
	require.NoError(t, err)
	assert.Equal(t, []model.Handle{testtree.Bob}, people)

	smiths, err := f.FamilyFromHandle(testtree.Smiths)
	require.NoError(t, err)
	assert.Equal(t, testtree.Bob, smiths.Father)
	assert.Empty(t, smiths.Children)
}

func TestFilterErrorsAbortConstruction(t *testing.T) {
	failing := FilterFunc(func(store.Reader, model.Handle) (bool, error) {
		return false, errBoom
	})
	_, err := NewFilter(newTree(t), FilterOptions{Note: failing}, quiet()...)
	require.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "Note filter")
}
