package types

import (
	"github.com/google/uuid"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/codable"
	"github.com/gohealth/itemtypes/dates"
	"github.com/gohealth/itemtypes/measurement"
	"github.com/gohealth/itemtypes/xmlio"
)

// MedicationTypeID identifies medications.
var MedicationTypeID = uuid.MustParse("30cafccc-047d-4288-94ef-643571f7919d")

// Medication records a medication a person takes or has taken.
type Medication struct {
	// Name of the medication. Required.
	Name codable.CodableValue

	// GenericName of the medication. Optional.
	GenericName *codable.CodableValue

	// Dose per administration, for example 1 tablet. Optional.
	Dose *measurement.GeneralMeasurement

	// Strength of the medication, for example 500 mg. Optional.
	Strength *measurement.GeneralMeasurement

	// Frequency of administration, for example twice daily. Optional.
	Frequency *measurement.GeneralMeasurement

	// Route of administration, for example By mouth. Optional.
	Route *codable.CodableValue

	// Indication for the medication. Optional.
	Indication *codable.CodableValue

	// DateStarted is when the person started taking it. Optional.
	DateStarted *dates.ApproximateDateTime

	// DateDiscontinued is when the person stopped taking it. Optional.
	DateDiscontinued *dates.ApproximateDateTime

	// Prescribed indicates whether the medication was prescribed.
	// Optional.
	Prescribed *codable.CodableValue
}

// NewMedication creates a medication with the given name.
func NewMedication(name codable.CodableValue) (*Medication, error) {
	if name.Text == "" {
		return nil, itemtypes.NewValidationError("Name", "must not be empty")
	}
	return &Medication{Name: name}, nil
}

// TypeID implements itemtypes.TypeData.
func (m *Medication) TypeID() uuid.UUID { return MedicationTypeID }

// TypeName implements itemtypes.TypeData.
func (m *Medication) TypeName() string { return "medication" }

// ParseXML populates the medication from a <medication> element.
func (m *Medication) ParseXML(nav *xmlio.Navigator) error {
	root, err := selectRoot(nav, "medication")
	if err != nil {
		return err
	}
	if err := parseReqCodable(root, "medication", "name", &m.Name); err != nil {
		return err
	}
	if m.GenericName, err = parseOptCodable(root, "generic-name"); err != nil {
		return err
	}
	if m.Dose, err = parseOptGeneral(root, "dose"); err != nil {
		return err
	}
	if m.Strength, err = parseOptGeneral(root, "strength"); err != nil {
		return err
	}
	if m.Frequency, err = parseOptGeneral(root, "frequency"); err != nil {
		return err
	}
	if m.Route, err = parseOptCodable(root, "route"); err != nil {
		return err
	}
	if m.Indication, err = parseOptCodable(root, "indication"); err != nil {
		return err
	}
	if m.DateStarted, err = parseOptApproxDateTime(root, "date-started"); err != nil {
		return err
	}
	if m.DateDiscontinued, err = parseOptApproxDateTime(root, "date-discontinued"); err != nil {
		return err
	}
	m.Prescribed, err = parseOptCodable(root, "prescribed")
	return err
}

// WriteXML emits the <medication> element.
func (m *Medication) WriteXML(w *xmlio.Writer) error {
	if m.Name.Text == "" {
		return itemtypes.NewSerializationError("medication", "Name")
	}
	w.StartElement("medication")
	if err := m.Name.WriteXML(w, "name"); err != nil {
		return err
	}
	if err := writeOptCodable(w, "generic-name", m.GenericName); err != nil {
		return err
	}
	if err := writeOptGeneral(w, "dose", m.Dose); err != nil {
		return err
	}
	if err := writeOptGeneral(w, "strength", m.Strength); err != nil {
		return err
	}
	if err := writeOptGeneral(w, "frequency", m.Frequency); err != nil {
		return err
	}
	if err := writeOptCodable(w, "route", m.Route); err != nil {
		return err
	}
	if err := writeOptCodable(w, "indication", m.Indication); err != nil {
		return err
	}
	if m.DateStarted != nil {
		if err := m.DateStarted.WriteXML(w, "date-started"); err != nil {
			return err
		}
	}
	if m.DateDiscontinued != nil {
		if err := m.DateDiscontinued.WriteXML(w, "date-discontinued"); err != nil {
			return err
		}
	}
	if err := writeOptCodable(w, "prescribed", m.Prescribed); err != nil {
		return err
	}
	w.EndElement()
	return nil
}

// String returns the medication name.
func (m *Medication) String() string { return m.Name.String() }
