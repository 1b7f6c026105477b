package model

// Date is an opaque calendar value. Parsing and formatting live outside
// this module; proxies only compare years.
type Date struct {
	Year  int    `json:"year,omitempty"`
	Month int    `json:"month,omitempty"`
	Day   int    `json:"day,omitempty"`
	Text  string `json:"text,omitempty"`
}

func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0 && d.Text == ""
}

type NameOrigin string

const (
	OriginUnknown    NameOrigin = ""
	OriginInherited  NameOrigin = "Inherited"
	OriginGiven      NameOrigin = "Given"
	OriginTaken      NameOrigin = "Taken"
	OriginPatronymic NameOrigin = "Patronymic"
	OriginMatronymic NameOrigin = "Matronymic"
)

type Surname struct {
	Surname   string     `json:"surname"`
	Prefix    string     `json:"prefix,omitempty"`
	Connector string     `json:"connector,omitempty"`
	Origin    NameOrigin `json:"origin,omitempty"`
	Primary   bool       `json:"primary,omitempty"`
}

// IsParental reports whether the surname is derived from a parent's given name.
func (s Surname) IsParental() bool {
	return s.Origin == OriginPatronymic || s.Origin == OriginMatronymic
}

type Name struct {
	Private    bool      `json:"private,omitempty"`
	Type       string    `json:"type,omitempty"`
	FirstName  string    `json:"first_name,omitempty"`
	CallName   string    `json:"call_name,omitempty"`
	NickName   string    `json:"nick_name,omitempty"`
	FamilyNick string    `json:"family_nick,omitempty"`
	Title      string    `json:"title,omitempty"`
	Suffix     string    `json:"suffix,omitempty"`
	Surnames   []Surname `json:"surnames,omitempty"`
	GroupAs    string    `json:"group_as,omitempty"`
	SortAs     int       `json:"sort_as,omitempty"`
	DisplayAs  int       `json:"display_as,omitempty"`
	Date       Date      `json:"date,omitempty"`
	Citations  []Handle  `json:"citations,omitempty"`
	Notes      []Handle  `json:"notes,omitempty"`
}

// PrimarySurname returns the surname flagged primary, falling back to the
// first one.
func (n Name) PrimarySurname() Surname {
	for _, s := range n.Surnames {
		if s.Primary {
			return s
		}
	}
	if len(n.Surnames) > 0 {
		return n.Surnames[0]
	}
	return Surname{}
}

type Attribute struct {
	Private   bool     `json:"private,omitempty"`
	Type      string   `json:"type"`
	Value     string   `json:"value"`
	Citations []Handle `json:"citations,omitempty"`
	Notes     []Handle `json:"notes,omitempty"`
}

// SrcAttribute is the attribute form carried by sources and citations.
type SrcAttribute struct {
	Private bool   `json:"private,omitempty"`
	Type    string `json:"type"`
	Value   string `json:"value"`
}

type MediaRef struct {
	Private    bool        `json:"private,omitempty"`
	Ref        Handle      `json:"ref"`
	Rect       [4]int      `json:"rect,omitempty"`
	Attributes []Attribute `json:"attributes,omitempty"`
	Citations  []Handle    `json:"citations,omitempty"`
	Notes      []Handle    `json:"notes,omitempty"`
}

type EventRef struct {
	Private    bool        `json:"private,omitempty"`
	Ref        Handle      `json:"ref"`
	Role       string      `json:"role,omitempty"`
	Attributes []Attribute `json:"attributes,omitempty"`
	Citations  []Handle    `json:"citations,omitempty"`
	Notes      []Handle    `json:"notes,omitempty"`
}

type ChildRef struct {
	Private        bool     `json:"private,omitempty"`
	Ref            Handle   `json:"ref"`
	FatherRelation string   `json:"father_relation,omitempty"`
	MotherRelation string   `json:"mother_relation,omitempty"`
	Citations      []Handle `json:"citations,omitempty"`
	Notes          []Handle `json:"notes,omitempty"`
}

// PersonRef is an association between two people (godparent, witness, ...).
type PersonRef struct {
	Private   bool     `json:"private,omitempty"`
	Ref       Handle   `json:"ref"`
	Relation  string   `json:"relation,omitempty"`
	Citations []Handle `json:"citations,omitempty"`
	Notes     []Handle `json:"notes,omitempty"`
}

type RepoRef struct {
	Private    bool     `json:"private,omitempty"`
	Ref        Handle   `json:"ref"`
	CallNumber string   `json:"call_number,omitempty"`
	MediaType  string   `json:"media_type,omitempty"`
	Notes      []Handle `json:"notes,omitempty"`
}

// PlaceRef points at an enclosing place.
type PlaceRef struct {
	Ref  Handle `json:"ref"`
	Date Date   `json:"date,omitempty"`
}

type Address struct {
	Private    bool     `json:"private,omitempty"`
	Street     string   `json:"street,omitempty"`
	Locality   string   `json:"locality,omitempty"`
	City       string   `json:"city,omitempty"`
	County     string   `json:"county,omitempty"`
	State      string   `json:"state,omitempty"`
	Country    string   `json:"country,omitempty"`
	PostalCode string   `json:"postal_code,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Date       Date     `json:"date,omitempty"`
	Citations  []Handle `json:"citations,omitempty"`
	Notes      []Handle `json:"notes,omitempty"`
}

type URL struct {
	Private     bool   `json:"private,omitempty"`
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
}

// LdsOrd is a Latter-day Saint ordinance record.
type LdsOrd struct {
	Private   bool     `json:"private,omitempty"`
	Type      string   `json:"type,omitempty"`
	Status    string   `json:"status,omitempty"`
	Temple    string   `json:"temple,omitempty"`
	Family    Handle   `json:"family,omitempty"`
	Place     Handle   `json:"place,omitempty"`
	Date      Date     `json:"date,omitempty"`
	Citations []Handle `json:"citations,omitempty"`
	Notes     []Handle `json:"notes,omitempty"`
}

// LinkTag is the styled-text tag name that carries inline object links.
const LinkTag = "Link"

type StyledTextTag struct {
	Name   string   `json:"name"`
	Value  string   `json:"value,omitempty"`
	Ranges [][2]int `json:"ranges,omitempty"`
}

type StyledText struct {
	Text string          `json:"text"`
	Tags []StyledTextTag `json:"tags,omitempty"`
}

// Researcher describes the owner of a database.
type Researcher struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
	Email   string `json:"email,omitempty"`
}
