package model

import (
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name string
		want Kind
		ok   bool
	}{
		{"Person", KindPerson, true},
		{"Tag", KindTag, true},
		{"Media", KindMedia, true},
		{"MediaObject", KindMedia, true},
		{"person", "", false},
		{"Widget", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseKind(tt.name)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("ParseKind(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestKindsOrder(t *testing.T) {
	if len(Kinds) != 10 {
		t.Fatalf("expected 10 kinds, got %d", len(Kinds))
	}
	if Kinds[0] != KindPerson || Kinds[1] != KindFamily {
		t.Fatalf("person and family must lead, got %v", Kinds[:2])
	}
}

func TestPersonCloneIsIndependent(t *testing.T) {
	p := &Person{
		Base: Base{Handle: "P1", Tags: []Handle{"T1"}},
		PrimaryName: Name{
			FirstName: "Ada",
			Surnames:  []Surname{{Surname: "King", Primary: true}},
			Citations: []Handle{"C1"},
		},
		EventRefs: []EventRef{{Ref: "E1", Attributes: []Attribute{{Type: "Age", Notes: []Handle{"N1"}}}}},
		Families:  []Handle{"F1"},
	}
	c := p.Clone()
	c.Tags[0] = "T2"
	c.PrimaryName.Surnames[0].Surname = "Byron"
	c.PrimaryName.Citations[0] = "C2"
	c.EventRefs[0].Attributes[0].Notes[0] = "N2"
	c.Families = append(c.Families, "F2")

	if p.Tags[0] != "T1" {
		t.Fatalf("tags shared with clone")
	}
	if p.PrimaryName.Surnames[0].Surname != "King" {
		t.Fatalf("surnames shared with clone")
	}
	if p.PrimaryName.Citations[0] != "C1" {
		t.Fatalf("name citations shared with clone")
	}
	if p.EventRefs[0].Attributes[0].Notes[0] != "N1" {
		t.Fatalf("nested attribute notes shared with clone")
	}
	if len(p.Families) != 1 {
		t.Fatalf("families grew through clone")
	}
}

func TestPersonReferences(t *testing.T) {
	p := &Person{
		Base:           Base{Handle: "P1", Tags: []Handle{"T1"}},
		PrimaryName:    Name{Citations: []Handle{"C1"}},
		EventRefs:      []EventRef{{Ref: "E1"}},
		Families:       []Handle{"F1"},
		ParentFamilies: []Handle{"F0"},
		Media:          []MediaRef{{Ref: "M1", Notes: []Handle{"N2"}}},
		LdsOrds:        []LdsOrd{{Family: "F0", Place: "PL1"}},
		Notes:          []Handle{"N1"},
		Associations:   []PersonRef{{Ref: "P2"}},
	}
	want := map[Ref]bool{
		{KindTag, "T1"}:      true,
		{KindCitation, "C1"}: true,
		{KindEvent, "E1"}:    true,
		{KindFamily, "F1"}:   true,
		{KindFamily, "F0"}:   true,
		{KindMedia, "M1"}:    true,
		{KindNote, "N2"}:     true,
		{KindPlace, "PL1"}:   true,
		{KindNote, "N1"}:     true,
		{KindPerson, "P2"}:   true,
	}
	got := map[Ref]bool{}
	for _, r := range p.References() {
		got[r] = true
	}
	for ref := range want {
		if !got[ref] {
			t.Errorf("missing reference %v", ref)
		}
	}
	for ref := range got {
		if !want[ref] {
			t.Errorf("unexpected reference %v", ref)
		}
	}
}

func TestFamilyReferencesSkipEmptyParents(t *testing.T) {
	f := &Family{
		Base:     Base{Handle: "F1"},
		Mother:   "P2",
		Children: []ChildRef{{Ref: "P3"}},
	}
	refs := f.References()
	if len(refs) != 2 {
		t.Fatalf("expected 2 references, got %v", refs)
	}
	if refs[0] != (Ref{KindPerson, "P2"}) || refs[1] != (Ref{KindPerson, "P3"}) {
		t.Fatalf("unexpected references %v", refs)
	}
}

func TestBirthDeathEventRef(t *testing.T) {
	p := &Person{
		EventRefs: []EventRef{{Ref: "E1", Role: "Primary"}, {Ref: "E2"}},
		BirthRef:  "E1",
		DeathRef:  "E9",
	}
	if ref, ok := p.BirthEventRef(); !ok || ref.Role != "Primary" {
		t.Fatalf("birth ref = %v, %v", ref, ok)
	}
	if _, ok := p.DeathEventRef(); ok {
		t.Fatalf("death ref outside event list must not resolve")
	}
}

func TestPrimarySurnameFallback(t *testing.T) {
	n := Name{Surnames: []Surname{{Surname: "A"}, {Surname: "B", Primary: true}}}
	if got := n.PrimarySurname().Surname; got != "B" {
		t.Fatalf("primary surname = %q", got)
	}
	n = Name{Surnames: []Surname{{Surname: "A"}}}
	if got := n.PrimarySurname().Surname; got != "A" {
		t.Fatalf("fallback surname = %q", got)
	}
	if got := (Name{}).PrimarySurname().Surname; got != "" {
		t.Fatalf("empty name surname = %q", got)
	}
}
