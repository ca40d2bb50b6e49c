package types

import (
	"strings"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/codable"
	"github.com/gohealth/itemtypes/xmlio"
)

// Name is a person's name, always carrying the full rendition and
// optionally its parts.
type Name struct {
	// Full is the complete display name. Required, non-empty.
	Full string

	// Title is an honorific such as "Dr.". Optional, coded.
	Title *codable.CodableValue

	// First, Middle, Last are the name parts. Optional.
	First  *string
	Middle *string
	Last   *string

	// Suffix is a generational or credential suffix. Optional, coded.
	Suffix *codable.CodableValue
}

// NewName creates a Name from the full display string.
func NewName(full string) (*Name, error) {
	if strings.TrimSpace(full) == "" {
		return nil, itemtypes.NewValidationError("full", "must not be empty")
	}
	return &Name{Full: full}, nil
}

// ParseXML populates the name from its named element.
func (n *Name) ParseXML(nav *xmlio.Navigator) error {
	full, err := nav.String("full")
	if err != nil {
		return itemtypes.NewParseError("name", "full")
	}
	n.Full = full
	if n.Title, err = parseOptCodable(nav, "title"); err != nil {
		return err
	}
	n.First = nav.OptString("first")
	n.Middle = nav.OptString("middle")
	n.Last = nav.OptString("last")
	if n.Suffix, err = parseOptCodable(nav, "suffix"); err != nil {
		return err
	}
	return nil
}

// WriteXML emits the name under the given element name.
func (n *Name) WriteXML(w *xmlio.Writer, name string) error {
	if n.Full == "" {
		return itemtypes.NewSerializationError(name, "Full")
	}
	w.StartElement(name)
	w.WriteString("full", n.Full)
	if err := writeOptCodable(w, "title", n.Title); err != nil {
		return err
	}
	w.WriteOptString("first", n.First)
	w.WriteOptString("middle", n.Middle)
	w.WriteOptString("last", n.Last)
	if err := writeOptCodable(w, "suffix", n.Suffix); err != nil {
		return err
	}
	w.EndElement()
	return nil
}

// String returns the full name.
func (n *Name) String() string {
	if n == nil {
		return ""
	}
	return n.Full
}

// PersonItem identifies a person related to a record: a provider, a
// clinic contact, a care-team member.
type PersonItem struct {
	// Name is the person's name. Required.
	Name Name

	// Organization the person belongs to. Optional.
	Organization *string

	// ProfessionalTraining describes provider qualifications. Optional.
	ProfessionalTraining *string

	// ID is the person's identifier within the organization. Optional.
	ID *string

	// Type classifies the person, e.g. "provider". Optional, coded.
	Type *codable.CodableValue
}

// NewPersonItem creates a PersonItem from the person's full name.
func NewPersonItem(fullName string) (*PersonItem, error) {
	n, err := NewName(fullName)
	if err != nil {
		return nil, err
	}
	return &PersonItem{Name: *n}, nil
}

// ParseXML populates the person from its named element.
func (p *PersonItem) ParseXML(nav *xmlio.Navigator) error {
	nameNav := nav.SelectSingle("name")
	if nameNav == nil {
		return itemtypes.NewParseError("person", "name")
	}
	if err := p.Name.ParseXML(nameNav); err != nil {
		return err
	}
	p.Organization = nav.OptString("organization")
	p.ProfessionalTraining = nav.OptString("professional-training")
	p.ID = nav.OptString("id")
	var err error
	if p.Type, err = parseOptCodable(nav, "type"); err != nil {
		return err
	}
	return nil
}

// WriteXML emits the person under the given element name.
func (p *PersonItem) WriteXML(w *xmlio.Writer, name string) error {
	if p.Name.Full == "" {
		return itemtypes.NewSerializationError(name, "Name")
	}
	w.StartElement(name)
	if err := p.Name.WriteXML(w, "name"); err != nil {
		return err
	}
	w.WriteOptString("organization", p.Organization)
	w.WriteOptString("professional-training", p.ProfessionalTraining)
	w.WriteOptString("id", p.ID)
	if err := writeOptCodable(w, "type", p.Type); err != nil {
		return err
	}
	w.EndElement()
	return nil
}

// String returns the person's name, with organization when present.
func (p *PersonItem) String() string {
	if p == nil {
		return ""
	}
	if p.Organization != nil && *p.Organization != "" {
		return p.Name.Full + ", " + *p.Organization
	}
	return p.Name.Full
}

// parseOptPerson reads an optional person child.
func parseOptPerson(nav *xmlio.Navigator, name string) (*PersonItem, error) {
	c := nav.SelectSingle(name)
	if c == nil {
		return nil, nil
	}
	p := &PersonItem{}
	if err := p.ParseXML(c); err != nil {
		return nil, err
	}
	return p, nil
}

// writeOptPerson writes an optional person child.
func writeOptPerson(w *xmlio.Writer, name string, p *PersonItem) error {
	if p == nil {
		return nil
	}
	return p.WriteXML(w, name)
}
