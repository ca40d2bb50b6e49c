package types

import (
	"github.com/google/uuid"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/codable"
	"github.com/gohealth/itemtypes/dates"
	"github.com/gohealth/itemtypes/xmlio"
)

// ImmunizationTypeID identifies immunizations.
var ImmunizationTypeID = uuid.MustParse("cd3587b5-b6e1-4565-ab3b-1c3ad45eb04f")

// Immunization records a vaccination.
type Immunization struct {
	// Name of the vaccine. Required.
	Name codable.CodableValue

	// AdministrationDate is when the vaccine was given. Optional.
	AdministrationDate *dates.ApproximateDateTime

	// Administrator is who gave the vaccine. Optional.
	Administrator *PersonItem

	// Manufacturer of the vaccine. Optional.
	Manufacturer *codable.CodableValue

	// Lot identifies the vaccine batch. Optional.
	Lot *string

	// Route of administration. Optional.
	Route *codable.CodableValue

	// ExpirationDate of the vaccine batch. Optional.
	ExpirationDate *dates.ApproximateDate

	// Sequence within a multi-dose series, for example 2 of 3. Optional.
	Sequence *string

	// AnatomicSurface where the vaccine was given. Optional.
	AnatomicSurface *codable.CodableValue

	// AdverseEvent observed after administration. Optional.
	AdverseEvent *string

	// Consent describes the consent obtained. Optional.
	Consent *string
}

// NewImmunization creates an immunization with the given vaccine name.
func NewImmunization(name codable.CodableValue) (*Immunization, error) {
	if name.Text == "" {
		return nil, itemtypes.NewValidationError("Name", "must not be empty")
	}
	return &Immunization{Name: name}, nil
}

// TypeID implements itemtypes.TypeData.
func (im *Immunization) TypeID() uuid.UUID { return ImmunizationTypeID }

// TypeName implements itemtypes.TypeData.
func (im *Immunization) TypeName() string { return "immunization" }

// ParseXML populates the immunization from an <immunization> element.
func (im *Immunization) ParseXML(nav *xmlio.Navigator) error {
	root, err := selectRoot(nav, "immunization")
	if err != nil {
		return err
	}
	if err := parseReqCodable(root, "immunization", "name", &im.Name); err != nil {
		return err
	}
	if im.AdministrationDate, err = parseOptApproxDateTime(root, "administration-date"); err != nil {
		return err
	}
	if im.Administrator, err = parseOptPerson(root, "administrator"); err != nil {
		return err
	}
	if im.Manufacturer, err = parseOptCodable(root, "manufacturer"); err != nil {
		return err
	}
	im.Lot = root.OptString("lot")
	if im.Route, err = parseOptCodable(root, "route"); err != nil {
		return err
	}
	im.ExpirationDate = nil
	if c := root.SelectSingle("expiration-date"); c != nil {
		d := &dates.ApproximateDate{}
		if err := d.ParseXML(c); err != nil {
			return err
		}
		im.ExpirationDate = d
	}
	im.Sequence = root.OptString("sequence")
	if im.AnatomicSurface, err = parseOptCodable(root, "anatomic-surface"); err != nil {
		return err
	}
	im.AdverseEvent = root.OptString("adverse-event")
	im.Consent = root.OptString("consent")
	return nil
}

// WriteXML emits the <immunization> element.
func (im *Immunization) WriteXML(w *xmlio.Writer) error {
	if im.Name.Text == "" {
		return itemtypes.NewSerializationError("immunization", "Name")
	}
	w.StartElement("immunization")
	if err := im.Name.WriteXML(w, "name"); err != nil {
		return err
	}
	if im.AdministrationDate != nil {
		if err := im.AdministrationDate.WriteXML(w, "administration-date"); err != nil {
			return err
		}
	}
	if err := writeOptPerson(w, "administrator", im.Administrator); err != nil {
		return err
	}
	if err := writeOptCodable(w, "manufacturer", im.Manufacturer); err != nil {
		return err
	}
	w.WriteOptString("lot", im.Lot)
	if err := writeOptCodable(w, "route", im.Route); err != nil {
		return err
	}
	if im.ExpirationDate != nil {
		if err := im.ExpirationDate.WriteXML(w, "expiration-date"); err != nil {
			return err
		}
	}
	w.WriteOptString("sequence", im.Sequence)
	if err := writeOptCodable(w, "anatomic-surface", im.AnatomicSurface); err != nil {
		return err
	}
	w.WriteOptString("adverse-event", im.AdverseEvent)
	w.WriteOptString("consent", im.Consent)
	w.EndElement()
	return nil
}

// String returns the vaccine name.
func (im *Immunization) String() string { return im.Name.String() }
