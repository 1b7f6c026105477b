package model

// Base carries the fields shared by every primary object except Tag.
type Base struct {
	Handle   Handle   `json:"handle"`
	GrampsID string   `json:"gramps_id,omitempty"`
	Change   int64    `json:"change,omitempty"`
	Private  bool     `json:"private,omitempty"`
	Tags     []Handle `json:"tags,omitempty"`
}

func (b Base) ObjectHandle() Handle { return b.Handle }
func (b Base) IsPrivate() bool      { return b.Private }

type Gender string

const (
	GenderUnknown Gender = "unknown"
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
)

type Person struct {
	Base
	Gender         Gender      `json:"gender,omitempty"`
	PrimaryName    Name        `json:"primary_name"`
	AlternateNames []Name      `json:"alternate_names,omitempty"`
	EventRefs      []EventRef  `json:"event_refs,omitempty"`
	BirthRef       Handle      `json:"birth_ref,omitempty"`
	DeathRef       Handle      `json:"death_ref,omitempty"`
	Families       []Handle    `json:"families,omitempty"`
	ParentFamilies []Handle    `json:"parent_families,omitempty"`
	Addresses      []Address   `json:"addresses,omitempty"`
	Attributes     []Attribute `json:"attributes,omitempty"`
	URLs           []URL       `json:"urls,omitempty"`
	Media          []MediaRef  `json:"media,omitempty"`
	LdsOrds        []LdsOrd    `json:"lds_ords,omitempty"`
	Citations      []Handle    `json:"citations,omitempty"`
	Notes          []Handle    `json:"notes,omitempty"`
	Associations   []PersonRef `json:"associations,omitempty"`
}

func (p *Person) ObjectKind() Kind { return KindPerson }
func (p *Person) SortKey() string  { return p.PrimaryName.PrimarySurname().Surname }

// BirthEventRef returns the event reference designated as birth.
func (p *Person) BirthEventRef() (EventRef, bool) { return p.eventRef(p.BirthRef) }

// DeathEventRef returns the event reference designated as death.
func (p *Person) DeathEventRef() (EventRef, bool) { return p.eventRef(p.DeathRef) }

func (p *Person) eventRef(h Handle) (EventRef, bool) {
	if h == "" {
		return EventRef{}, false
	}
	for _, ref := range p.EventRefs {
		if ref.Ref == h {
			return ref, true
		}
	}
	return EventRef{}, false
}

type Family struct {
	Base
	Father       Handle      `json:"father,omitempty"`
	Mother       Handle      `json:"mother,omitempty"`
	Children     []ChildRef  `json:"children,omitempty"`
	Relationship string      `json:"relationship,omitempty"`
	EventRefs    []EventRef  `json:"event_refs,omitempty"`
	LdsOrds      []LdsOrd    `json:"lds_ords,omitempty"`
	Media        []MediaRef  `json:"media,omitempty"`
	Attributes   []Attribute `json:"attributes,omitempty"`
	Citations    []Handle    `json:"citations,omitempty"`
	Notes        []Handle    `json:"notes,omitempty"`
}

func (f *Family) ObjectKind() Kind { return KindFamily }
func (f *Family) SortKey() string  { return f.GrampsID }

type Event struct {
	Base
	Type        string      `json:"type,omitempty"`
	Description string      `json:"description,omitempty"`
	Date        Date        `json:"date,omitempty"`
	Place       Handle      `json:"place,omitempty"`
	Citations   []Handle    `json:"citations,omitempty"`
	Notes       []Handle    `json:"notes,omitempty"`
	Media       []MediaRef  `json:"media,omitempty"`
	Attributes  []Attribute `json:"attributes,omitempty"`
}

func (e *Event) ObjectKind() Kind { return KindEvent }
func (e *Event) SortKey() string  { return e.Description }

type Place struct {
	Base
	Title     string     `json:"title,omitempty"`
	Name      string     `json:"name,omitempty"`
	AltNames  []string   `json:"alt_names,omitempty"`
	Type      string     `json:"type,omitempty"`
	Code      string     `json:"code,omitempty"`
	Latitude  string     `json:"lat,omitempty"`
	Longitude string     `json:"long,omitempty"`
	Enclosed  []PlaceRef `json:"enclosed_by,omitempty"`
	URLs      []URL      `json:"urls,omitempty"`
	Media     []MediaRef `json:"media,omitempty"`
	Citations []Handle   `json:"citations,omitempty"`
	Notes     []Handle   `json:"notes,omitempty"`
}

func (p *Place) ObjectKind() Kind { return KindPlace }

func (p *Place) SortKey() string {
	if p.Title != "" {
		return p.Title
	}
	return p.Name
}

type Source struct {
	Base
	Title        string         `json:"title,omitempty"`
	Author       string         `json:"author,omitempty"`
	PubInfo      string         `json:"pub_info,omitempty"`
	Abbreviation string         `json:"abbreviation,omitempty"`
	RepoRefs     []RepoRef      `json:"repo_refs,omitempty"`
	Attributes   []SrcAttribute `json:"attributes,omitempty"`
	Media        []MediaRef     `json:"media,omitempty"`
	Notes        []Handle       `json:"notes,omitempty"`
}

func (s *Source) ObjectKind() Kind { return KindSource }
func (s *Source) SortKey() string  { return s.Title }

type Citation struct {
	Base
	Source     Handle         `json:"source,omitempty"`
	Page       string         `json:"page,omitempty"`
	Confidence int            `json:"confidence,omitempty"`
	Date       Date           `json:"date,omitempty"`
	Attributes []SrcAttribute `json:"attributes,omitempty"`
	Media      []MediaRef     `json:"media,omitempty"`
	Notes      []Handle       `json:"notes,omitempty"`
}

func (c *Citation) ObjectKind() Kind { return KindCitation }
func (c *Citation) SortKey() string  { return c.Page }

type Repository struct {
	Base
	Type      string    `json:"type,omitempty"`
	Name      string    `json:"name,omitempty"`
	Addresses []Address `json:"addresses,omitempty"`
	URLs      []URL     `json:"urls,omitempty"`
	Notes     []Handle  `json:"notes,omitempty"`
}

func (r *Repository) ObjectKind() Kind { return KindRepository }
func (r *Repository) SortKey() string  { return r.Name }

type Media struct {
	Base
	Path        string      `json:"path,omitempty"`
	MIME        string      `json:"mime,omitempty"`
	Description string      `json:"description,omitempty"`
	Checksum    string      `json:"checksum,omitempty"`
	Date        Date        `json:"date,omitempty"`
	Attributes  []Attribute `json:"attributes,omitempty"`
	Citations   []Handle    `json:"citations,omitempty"`
	Notes       []Handle    `json:"notes,omitempty"`
}

func (m *Media) ObjectKind() Kind { return KindMedia }
func (m *Media) SortKey() string  { return m.Description }

type Note struct {
	Base
	Text   StyledText `json:"text"`
	Format int        `json:"format,omitempty"`
	Type   string     `json:"type,omitempty"`
}

func (n *Note) ObjectKind() Kind { return KindNote }
func (n *Note) SortKey() string  { return n.GrampsID }

// Tag is a label. It has no gramps id and no privacy flag.
type Tag struct {
	Handle   Handle `json:"handle"`
	Name     string `json:"name"`
	Color    string `json:"color,omitempty"`
	Priority int    `json:"priority,omitempty"`
	Change   int64  `json:"change,omitempty"`
}

func (t *Tag) ObjectKind() Kind     { return KindTag }
func (t *Tag) ObjectHandle() Handle { return t.Handle }
func (t *Tag) IsPrivate() bool      { return false }
func (t *Tag) SortKey() string      { return t.Name }
func (t *Tag) References() []Ref    { return nil }

var (
	_ Object = (*Person)(nil)
	_ Object = (*Family)(nil)
	_ Object = (*Event)(nil)
	_ Object = (*Place)(nil)
	_ Object = (*Source)(nil)
	_ Object = (*Citation)(nil)
	_ Object = (*Repository)(nil)
	_ Object = (*Media)(nil)
	_ Object = (*Note)(nil)
	_ Object = (*Tag)(nil)
)
