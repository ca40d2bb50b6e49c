package types

import (
	"github.com/google/uuid"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/codable"
	"github.com/gohealth/itemtypes/dates"
	"github.com/gohealth/itemtypes/xmlio"
)

// ProcedureTypeID identifies medical procedures.
var ProcedureTypeID = uuid.MustParse("df4db479-a1ba-42a2-8714-2b083b88150f")

// Procedure records a medical procedure.
type Procedure struct {
	// When the procedure was performed. Required, approximate.
	When dates.ApproximateDateTime

	// Name of the procedure. Required, coded.
	Name codable.CodableValue

	// AnatomicLocation of the procedure. Optional, coded.
	AnatomicLocation *codable.CodableValue

	// PrimaryProvider who performed the procedure. Optional.
	PrimaryProvider *PersonItem

	// SecondaryProvider who assisted. Optional.
	SecondaryProvider *PersonItem
}

// NewProcedure creates a Procedure with the given name, performed at the
// given time.
func NewProcedure(when dates.ApproximateDateTime, name string) (*Procedure, error) {
	if when.Structured == nil && when.Description == nil {
		return nil, itemtypes.NewValidationError("when", "must be set")
	}
	cv, err := codable.NewCodableValue(name)
	if err != nil {
		return nil, err
	}
	return &Procedure{When: when, Name: *cv}, nil
}

// TypeID implements itemtypes.TypeData.
func (p *Procedure) TypeID() uuid.UUID { return ProcedureTypeID }

// TypeName implements itemtypes.TypeData.
func (p *Procedure) TypeName() string { return "procedure" }

// ParseXML populates the procedure from a <procedure> element.
func (p *Procedure) ParseXML(nav *xmlio.Navigator) error {
	root, err := selectRoot(nav, "procedure")
	if err != nil {
		return err
	}
	if err := parseReqApproxDateTime(root, "procedure", "when", &p.When); err != nil {
		return err
	}
	if err := parseReqCodable(root, "procedure", "name", &p.Name); err != nil {
		return err
	}
	if p.AnatomicLocation, err = parseOptCodable(root, "anatomic-location"); err != nil {
		return err
	}
	if p.PrimaryProvider, err = parseOptPerson(root, "primary-provider"); err != nil {
		return err
	}
	if p.SecondaryProvider, err = parseOptPerson(root, "secondary-provider"); err != nil {
		return err
	}
	return nil
}

// WriteXML emits the <procedure> element.
func (p *Procedure) WriteXML(w *xmlio.Writer) error {
	if p.When.Structured == nil && p.When.Description == nil {
		return itemtypes.NewSerializationError("procedure", "When")
	}
	if p.Name.Text == "" {
		return itemtypes.NewSerializationError("procedure", "Name")
	}
	w.StartElement("procedure")
	if err := p.When.WriteXML(w, "when"); err != nil {
		return err
	}
	if err := p.Name.WriteXML(w, "name"); err != nil {
		return err
	}
	if err := writeOptCodable(w, "anatomic-location", p.AnatomicLocation); err != nil {
		return err
	}
	if err := writeOptPerson(w, "primary-provider", p.PrimaryProvider); err != nil {
		return err
	}
	if err := writeOptPerson(w, "secondary-provider", p.SecondaryProvider); err != nil {
		return err
	}
	w.EndElement()
	return nil
}

// String summarizes the procedure: name and when.
func (p *Procedure) String() string {
	s := p.Name.Text
	if when := p.When.String(); when != "" {
		s += " (" + when + ")"
	}
	return s
}
