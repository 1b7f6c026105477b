// Package testtree builds a small family tree used across package tests.
//
// The Smith family: Bob and Carol (private) are parents of Alice and Dan.
// Dan's child reference and primary name are private. Xavier is only
// tagged and otherwise unconnected. A private event, place, citation,
// repository, media object and note hang off the public records.
package testtree

import (
	"kinview/internal/model"
	"kinview/internal/store"
)

const (
	Alice  model.Handle = "P-alice"
	Bob    model.Handle = "P-bob"
	Carol  model.Handle = "P-carol"
	Dan    model.Handle = "P-dan"
	Xavier model.Handle = "P-xavier"

	Smiths model.Handle = "F-smith"

	AliceBirth model.Handle = "E-alice-birth"
	Secret     model.Handle = "E-secret"
	BobBirth   model.Handle = "E-bob-birth"
	BobDeath   model.Handle = "E-bob-death"
	CarolBirth model.Handle = "E-carol-birth"
	DanBirth   model.Handle = "E-dan-birth"
	Marriage   model.Handle = "E-marriage"

	Springfield  model.Handle = "PL-springfield"
	Illinois     model.Handle = "PL-illinois"
	HiddenPlace  model.Handle = "PL-hidden"
	Census       model.Handle = "S-census"
	CitePublic   model.Handle = "C-public"
	CitePrivate  model.Handle = "C-private"
	Archive      model.Handle = "R-archive"
	Attic        model.Handle = "R-attic"
	Photo        model.Handle = "M-photo"
	PrivatePhoto model.Handle = "M-private"
	Bio          model.Handle = "N-bio"
	PrivateNote  model.Handle = "N-private"
	ToDo         model.Handle = "T-todo"
)

func name(first, surname string) model.Name {
	return model.Name{
		Type:      "Birth Name",
		FirstName: first,
		Surnames:  []model.Surname{{Surname: surname, Primary: true, Origin: model.OriginInherited}},
	}
}

// Snapshot returns a fresh copy of the tree.
func Snapshot() *store.Snapshot {
	alice := &model.Person{
		Base:        model.Base{Handle: Alice, GrampsID: "I0001", Tags: []model.Handle{ToDo}},
		Gender:      model.GenderFemale,
		PrimaryName: name("Alice", "Smith"),
		AlternateNames: []model.Name{
			name("Ally", "Smith"),
			{Private: true, FirstName: "Hidden", Surnames: []model.Surname{{Surname: "Alias"}}},
		},
		EventRefs:      []model.EventRef{{Ref: AliceBirth, Role: "Primary"}, {Ref: Secret, Role: "Primary"}},
		BirthRef:       AliceBirth,
		ParentFamilies: []model.Handle{Smiths},
		Addresses: []model.Address{
			{City: "Springfield", Citations: []model.Handle{CitePublic, CitePrivate}},
			{Private: true, City: "Hideaway"},
		},
		Attributes: []model.Attribute{
			{Type: "Nickname", Value: "Al"},
			{Private: true, Type: "ID Number", Value: "123-45"},
		},
		URLs: []model.URL{
			{Path: "https://alice.example.org", Type: "Web Home"},
			{Private: true, Path: "https://diary.example.org"},
		},
		Media:        []model.MediaRef{{Ref: Photo}, {Ref: PrivatePhoto}},
		LdsOrds:      []model.LdsOrd{{Type: "Baptism", Place: HiddenPlace, Family: Smiths}},
		Citations:    []model.Handle{CitePublic, CitePrivate},
		Notes:        []model.Handle{Bio, PrivateNote},
		Associations: []model.PersonRef{{Ref: Bob, Relation: "Godfather"}, {Ref: Carol, Relation: "Neighbour"}},
	}
	alice.PrimaryName.Citations = []model.Handle{CitePublic, CitePrivate}
	alice.PrimaryName.Title = "Dr."

	bob := &model.Person{
		Base:        model.Base{Handle: Bob, GrampsID: "I0002"},
		Gender:      model.GenderMale,
		PrimaryName: name("Bob", "Smith"),
		EventRefs:   []model.EventRef{{Ref: BobBirth}, {Ref: BobDeath}},
		BirthRef:    BobBirth,
		DeathRef:    BobDeath,
		Families:    []model.Handle{Smiths},
		Citations:   []model.Handle{CitePublic},
	}
	carol := &model.Person{
		Base:        model.Base{Handle: Carol, GrampsID: "I0003", Private: true},
		Gender:      model.GenderFemale,
		PrimaryName: name("Carol", "Jones"),
		EventRefs:   []model.EventRef{{Ref: CarolBirth}},
		BirthRef:    CarolBirth,
		Families:    []model.Handle{Smiths},
	}
	dan := &model.Person{
		Base:           model.Base{Handle: Dan, GrampsID: "I0004"},
		Gender:         model.GenderMale,
		PrimaryName:    name("Dan", "Smith"),
		EventRefs:      []model.EventRef{{Ref: DanBirth}},
		BirthRef:       DanBirth,
		ParentFamilies: []model.Handle{Smiths},
	}
	dan.PrimaryName.Private = true
	xavier := &model.Person{
		Base:        model.Base{Handle: Xavier, GrampsID: "I0005", Tags: []model.Handle{ToDo}},
		Gender:      model.GenderUnknown,
		PrimaryName: name("Xavier", "Lone"),
	}

	smiths := &model.Family{
		Base:         model.Base{Handle: Smiths, GrampsID: "F0001"},
		Father:       Bob,
		Mother:       Carol,
		Children:     []model.ChildRef{{Ref: Alice}, {Ref: Dan, Private: true}},
		Relationship: "Married",
		EventRefs:    []model.EventRef{{Ref: Marriage}},
		Citations:    []model.Handle{CitePublic},
		Notes:        []model.Handle{Bio},
	}

	return &store.Snapshot{
		People:   []*model.Person{alice, bob, carol, dan, xavier},
		Families: []*model.Family{smiths},
		Events: []*model.Event{
			{Base: model.Base{Handle: AliceBirth, GrampsID: "E0001"}, Type: "Birth", Description: "Birth of Alice", Date: model.Date{Year: 2000}, Place: Springfield, Citations: []model.Handle{CitePublic}},
			{Base: model.Base{Handle: Secret, GrampsID: "E0002", Private: true}, Type: "Residence", Description: "Secret residence"},
			{Base: model.Base{Handle: BobBirth, GrampsID: "E0003"}, Type: "Birth", Description: "Birth of Bob", Date: model.Date{Year: 1900}, Place: HiddenPlace},
			{Base: model.Base{Handle: BobDeath, GrampsID: "E0004"}, Type: "Death", Description: "Death of Bob", Date: model.Date{Year: 1970}},
			{Base: model.Base{Handle: CarolBirth, GrampsID: "E0005"}, Type: "Birth", Description: "Birth of Carol", Date: model.Date{Year: 1905}},
			{Base: model.Base{Handle: DanBirth, GrampsID: "E0006"}, Type: "Birth", Description: "Birth of Dan", Date: model.Date{Year: 1930}},
			{Base: model.Base{Handle: Marriage, GrampsID: "E0007"}, Type: "Marriage", Description: "Marriage of Bob and Carol", Date: model.Date{Year: 1925}, Place: Springfield},
		},
		Places: []*model.Place{
			{Base: model.Base{Handle: Springfield, GrampsID: "P0001"}, Title: "Springfield", Name: "Springfield", Enclosed: []model.PlaceRef{{Ref: Illinois}}},
			{Base: model.Base{Handle: Illinois, GrampsID: "P0002"}, Title: "Illinois", Name: "Illinois"},
			{Base: model.Base{Handle: HiddenPlace, GrampsID: "P0003", Private: true}, Title: "Hidden Town"},
		},
		Sources: []*model.Source{
			{
				Base:     model.Base{Handle: Census, GrampsID: "S0001"},
				Title:    "Census 1930",
				RepoRefs: []model.RepoRef{{Ref: Archive, CallNumber: "C-30"}, {Ref: Attic}},
				Attributes: []model.SrcAttribute{
					{Type: "Kind", Value: "Census"},
					{Private: true, Type: "Donor", Value: "Anonymous"},
				},
			},
		},
		Citations: []*model.Citation{
			{Base: model.Base{Handle: CitePublic, GrampsID: "C0001"}, Source: Census, Page: "p. 12", Media: []model.MediaRef{{Ref: Photo}}},
			{Base: model.Base{Handle: CitePrivate, GrampsID: "C0002", Private: true}, Source: Census, Page: "p. 99"},
		},
		Repositories: []*model.Repository{
			{Base: model.Base{Handle: Archive, GrampsID: "R0001"}, Name: "State Archive", URLs: []model.URL{{Path: "https://archive.example.org"}}},
			{Base: model.Base{Handle: Attic, GrampsID: "R0002", Private: true}, Name: "Family Attic"},
		},
		Media: []*model.Media{
			{Base: model.Base{Handle: Photo, GrampsID: "O0001"}, Path: "photo.jpg", MIME: "image/jpeg", Description: "Portrait"},
			{Base: model.Base{Handle: PrivatePhoto, GrampsID: "O0002", Private: true}, Path: "secret.jpg", Description: "Secret"},
		},
		Notes: []*model.Note{
			{
				Base: model.Base{Handle: Bio, GrampsID: "N0001"},
				Text: model.StyledText{
					Text: "See the portrait.",
					Tags: []model.StyledTextTag{
						{Name: model.LinkTag, Value: "gramps://Media/handle/" + string(Photo), Ranges: [][2]int{{8, 16}}},
						{Name: model.LinkTag, Value: "gramps://Widget/handle/W1"},
						{Name: model.LinkTag, Value: "not a link"},
						{Name: "bold", Ranges: [][2]int{{0, 3}}},
					},
				},
				Type: "Person Note",
			},
			{Base: model.Base{Handle: PrivateNote, GrampsID: "N0002", Private: true}, Text: model.StyledText{Text: "Do not publish."}},
		},
		Tags:          []*model.Tag{{Handle: ToDo, Name: "ToDo", Color: "#ff0000"}},
		Bookmarks:     []model.Handle{Alice, Carol, Bob},
		DefaultPerson: Carol,
		Researcher:    &model.Researcher{Name: "R. Searcher", Email: "r@example.org"},
	}
}
