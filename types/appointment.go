package types

import (
	"github.com/google/uuid"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/codable"
	"github.com/gohealth/itemtypes/dates"
	"github.com/gohealth/itemtypes/xmlio"
)

// AppointmentTypeID identifies medical appointments.
var AppointmentTypeID = uuid.MustParse("4b18aeb6-5f01-444c-8c70-dbf13a2f510b")

// Appointment records a medical appointment.
type Appointment struct {
	// When the appointment occurs. Required.
	When dates.DateTime

	// Duration of the appointment. Optional.
	Duration *dates.DurationValue

	// Service being provided, e.g. "physical exam". Optional, coded.
	Service *codable.CodableValue

	// Clinic is the provider or facility. Optional.
	Clinic *PersonItem

	// Specialty of the provider. Optional, coded.
	Specialty *codable.CodableValue

	// Status such as "scheduled" or "completed". Optional, coded.
	Status *codable.CodableValue

	// CareClass such as "inpatient". Optional, coded.
	CareClass *codable.CodableValue
}

// NewAppointment creates an Appointment at the given time.
func NewAppointment(when dates.DateTime) (*Appointment, error) {
	if when.Date.Year() == 0 {
		return nil, itemtypes.NewValidationError("when", "must be set")
	}
	return &Appointment{When: when}, nil
}

// TypeID implements itemtypes.TypeData.
func (a *Appointment) TypeID() uuid.UUID { return AppointmentTypeID }

// TypeName implements itemtypes.TypeData.
func (a *Appointment) TypeName() string { return "appointment" }

// ParseXML populates the appointment from an <appointment> element.
func (a *Appointment) ParseXML(nav *xmlio.Navigator) error {
	root, err := selectRoot(nav, "appointment")
	if err != nil {
		return err
	}
	if err := parseReqDateTime(root, "appointment", "when", &a.When); err != nil {
		return err
	}

	a.Duration = nil
	if dNav := root.SelectSingle("duration"); dNav != nil {
		d := &dates.DurationValue{}
		if err := d.ParseXML(dNav); err != nil {
			return err
		}
		a.Duration = d
	}
	if a.Service, err = parseOptCodable(root, "service"); err != nil {
		return err
	}
	if a.Clinic, err = parseOptPerson(root, "clinic"); err != nil {
		return err
	}
	if a.Specialty, err = parseOptCodable(root, "specialty"); err != nil {
		return err
	}
	if a.Status, err = parseOptCodable(root, "status"); err != nil {
		return err
	}
	if a.CareClass, err = parseOptCodable(root, "care-class"); err != nil {
		return err
	}
	return nil
}

// WriteXML emits the <appointment> element.
func (a *Appointment) WriteXML(w *xmlio.Writer) error {
	if a.When.Date.Year() == 0 {
		return itemtypes.NewSerializationError("appointment", "When")
	}
	w.StartElement("appointment")
	if err := a.When.WriteXML(w, "when"); err != nil {
		return err
	}
	if a.Duration != nil {
		if err := a.Duration.WriteXML(w, "duration"); err != nil {
			return err
		}
	}
	if err := writeOptCodable(w, "service", a.Service); err != nil {
		return err
	}
	if err := writeOptPerson(w, "clinic", a.Clinic); err != nil {
		return err
	}
	if err := writeOptCodable(w, "specialty", a.Specialty); err != nil {
		return err
	}
	if err := writeOptCodable(w, "status", a.Status); err != nil {
		return err
	}
	if err := writeOptCodable(w, "care-class", a.CareClass); err != nil {
		return err
	}
	w.EndElement()
	return nil
}

// String summarizes the appointment: when, service, and clinic.
func (a *Appointment) String() string {
	s := a.When.String()
	if a.Service != nil {
		s += " " + a.Service.Text
	}
	if a.Clinic != nil {
		s += " at " + a.Clinic.String()
	}
	return s
}
