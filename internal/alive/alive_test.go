package alive

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kinview/internal/model"
	"kinview/internal/store"
	"kinview/internal/store/memory"
	"kinview/internal/testtree"
)

func TestProbablyAliveOnTree(t *testing.T) {
	s, err := memory.New(testtree.Snapshot())
	require.NoError(t, err)
	c := Default()

	tests := []struct {
		name            string
		person          model.Handle
		year            int
		yearsAfterDeath int
		want            bool
	}{
		{"born 2000 no death", testtree.Alice, 2024, 0, true},
		{"before birth", testtree.Alice, 1990, 0, false},
		{"died 1970", testtree.Bob, 2024, 0, false},
		{"died 1970 within grace", testtree.Bob, 2024, 60, true},
		{"died 1970 in 1950", testtree.Bob, 1950, 0, true},
		{"born 1905 past max age", testtree.Carol, 2024, 0, false},
		{"born 1905 in 1950", testtree.Carol, 1950, 0, true},
		{"no evidence", testtree.Xavier, 2024, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := s.PersonFromHandle(tt.person)
			require.NoError(t, err)
			got, err := c.ProbablyAlive(s, p, tt.year, tt.yearsAfterDeath)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func parentFamily(children ...model.Handle) *model.Family {
	f := &model.Family{Base: model.Base{Handle: "F1"}, Father: "DAD"}
	for _, h := range children {
		f.Children = append(f.Children, model.ChildRef{Ref: h})
	}
	return f
}

func TestEstimatesFromRelatives(t *testing.T) {
	tests := []struct {
		name string
		snap *store.Snapshot
		want bool
	}{
		{
			name: "sibling born 1950",
			snap: &store.Snapshot{
				People: []*model.Person{
					{Base: model.Base{Handle: "X"}, ParentFamilies: []model.Handle{"F1"}},
					{Base: model.Base{Handle: "SIB"}, EventRefs: []model.EventRef{{Ref: "E1"}}, BirthRef: "E1"},
				},
				Families: []*model.Family{parentFamily("X", "SIB")},
				Events:   []*model.Event{{Base: model.Base{Handle: "E1"}, Type: "Birth", Date: model.Date{Year: 1950}}},
			},
			want: true,
		},
		{
			name: "father born 1800",
			snap: &store.Snapshot{
				People: []*model.Person{
					{Base: model.Base{Handle: "X"}, ParentFamilies: []model.Handle{"F1"}},
					{Base: model.Base{Handle: "DAD"}, EventRefs: []model.EventRef{{Ref: "E1"}}, BirthRef: "E1"},
				},
				Families: []*model.Family{parentFamily("X")},
				Events:   []*model.Event{{Base: model.Base{Handle: "E1"}, Type: "Birth", Date: model.Date{Year: 1800}}},
			},
			want: false,
		},
		{
			name: "child baptised 1900",
			snap: &store.Snapshot{
				People: []*model.Person{
					{Base: model.Base{Handle: "DAD"}, Families: []model.Handle{"F1"}},
					{Base: model.Base{Handle: "KID"}, EventRefs: []model.EventRef{{Ref: "E1"}}},
				},
				Families: []*model.Family{parentFamily("KID")},
				Events:   []*model.Event{{Base: model.Base{Handle: "E1"}, Type: "Baptism", Date: model.Date{Year: 1900}}},
			},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := memory.New(tt.snap)
			require.NoError(t, err)
			subject := model.Handle("X")
			if _, err := s.PersonFromHandle(subject); err != nil {
				subject = "DAD"
			}
			p, err := s.PersonFromHandle(subject)
			require.NoError(t, err)
			got, err := Default().ProbablyAlive(s, p, 2024, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeathFallbacks(t *testing.T) {
	snap := &store.Snapshot{
		People: []*model.Person{
			{Base: model.Base{Handle: "BURIED"}, EventRefs: []model.EventRef{{Ref: "E1"}}},
			{Base: model.Base{Handle: "UNDATED"}, EventRefs: []model.EventRef{{Ref: "E2"}}},
			{Base: model.Base{Handle: "WITNESS"}, EventRefs: []model.EventRef{{Ref: "E1", Role: "Witness"}}},
		},
		Events: []*model.Event{
			{Base: model.Base{Handle: "E1"}, Type: "Burial", Date: model.Date{Year: 1990}},
			{Base: model.Base{Handle: "E2"}, Type: "Cremation"},
		},
	}
	s, err := memory.New(snap)
	require.NoError(t, err)

	for h, want := range map[model.Handle]bool{"BURIED": false, "UNDATED": false, "WITNESS": true} {
		p, err := s.PersonFromHandle(h)
		require.NoError(t, err)
		got, err := Default().ProbablyAlive(s, p, 2024, 0)
		require.NoError(t, err)
		assert.Equal(t, want, got, string(h))
	}
}

type failingEvents struct {
	store.Reader
}

func (failingEvents) EventFromHandle(model.Handle) (*model.Event, error) {
	return nil, errors.New("read failure")
}

func TestStorageErrorPropagates(t *testing.T) {
	s, err := memory.New(testtree.Snapshot())
	require.NoError(t, err)
	p, err := s.PersonFromHandle(testtree.Alice)
	require.NoError(t, err)

	_, err = Default().ProbablyAlive(failingEvents{s}, p, 2024, 0)
	assert.Error(t, err)
}
