package types

import (
	"github.com/google/uuid"

	"github.com/gohealth/itemtypes/codable"
	"github.com/gohealth/itemtypes/dates"
	"github.com/gohealth/itemtypes/xmlio"
)

// PersonalTypeID identifies personal demographic information.
var PersonalTypeID = uuid.MustParse("92ba621e-66b3-4a01-bd73-74844aed4f5b")

// Personal records personal demographic information the record owner
// considers sensitive. Every field is optional.
type Personal struct {
	// Name of the person.
	Name *Name

	// BirthDate of the person.
	BirthDate *dates.DateTime

	// BloodType, e.g. "A+". Coded.
	BloodType *codable.CodableValue

	// Ethnicity of the person. Coded.
	Ethnicity *codable.CodableValue

	// SocialSecurityNumber or national identifier.
	SocialSecurityNumber *string

	// MaritalStatus of the person. Coded.
	MaritalStatus *codable.CodableValue

	// EmploymentStatus, free text.
	EmploymentStatus *string

	// IsDeceased indicates the person has died.
	IsDeceased *bool

	// DateOfDeath, approximate.
	DateOfDeath *dates.ApproximateDateTime

	// Religion of the person. Coded.
	Religion *codable.CodableValue

	// IsVeteran indicates military service.
	IsVeteran *bool

	// HighestEducationLevel attained. Coded.
	HighestEducationLevel *codable.CodableValue

	// IsDisabled indicates a disability.
	IsDisabled *bool

	// OrganDonor designation, free text.
	OrganDonor *string
}

// NewPersonal creates an empty Personal.
func NewPersonal() *Personal {
	return &Personal{}
}

// TypeID implements itemtypes.TypeData.
func (p *Personal) TypeID() uuid.UUID { return PersonalTypeID }

// TypeName implements itemtypes.TypeData.
func (p *Personal) TypeName() string { return "personal" }

// ParseXML populates the demographics from a <personal> element.
func (p *Personal) ParseXML(nav *xmlio.Navigator) error {
	root, err := selectRoot(nav, "personal")
	if err != nil {
		return err
	}

	p.Name = nil
	if nameNav := root.SelectSingle("name"); nameNav != nil {
		n := &Name{}
		if err := n.ParseXML(nameNav); err != nil {
			return err
		}
		p.Name = n
	}
	if p.BirthDate, err = parseOptDateTime(root, "birthdate"); err != nil {
		return err
	}
	if p.BloodType, err = parseOptCodable(root, "blood-type"); err != nil {
		return err
	}
	if p.Ethnicity, err = parseOptCodable(root, "ethnicity"); err != nil {
		return err
	}
	p.SocialSecurityNumber = root.OptString("ssn")
	if p.MaritalStatus, err = parseOptCodable(root, "marital-status"); err != nil {
		return err
	}
	p.EmploymentStatus = root.OptString("employment-status")
	if p.IsDeceased, err = root.OptBool("is-deceased"); err != nil {
		return err
	}
	if p.DateOfDeath, err = parseOptApproxDateTime(root, "date-of-death"); err != nil {
		return err
	}
	if p.Religion, err = parseOptCodable(root, "religion"); err != nil {
		return err
	}
	if p.IsVeteran, err = root.OptBool("is-veteran"); err != nil {
		return err
	}
	if p.HighestEducationLevel, err = parseOptCodable(root, "highest-education-level"); err != nil {
		return err
	}
	if p.IsDisabled, err = root.OptBool("is-disabled"); err != nil {
		return err
	}
	p.OrganDonor = root.OptString("organ-donor")
	return nil
}

// WriteXML emits the <personal> element.
func (p *Personal) WriteXML(w *xmlio.Writer) error {
	w.StartElement("personal")
	if p.Name != nil {
		if err := p.Name.WriteXML(w, "name"); err != nil {
			return err
		}
	}
	if p.BirthDate != nil {
		if err := p.BirthDate.WriteXML(w, "birthdate"); err != nil {
			return err
		}
	}
	if err := writeOptCodable(w, "blood-type", p.BloodType); err != nil {
		return err
	}
	if err := writeOptCodable(w, "ethnicity", p.Ethnicity); err != nil {
		return err
	}
	w.WriteOptString("ssn", p.SocialSecurityNumber)
	if err := writeOptCodable(w, "marital-status", p.MaritalStatus); err != nil {
		return err
	}
	w.WriteOptString("employment-status", p.EmploymentStatus)
	w.WriteOptBool("is-deceased", p.IsDeceased)
	if p.DateOfDeath != nil {
		if err := p.DateOfDeath.WriteXML(w, "date-of-death"); err != nil {
			return err
		}
	}
	if err := writeOptCodable(w, "religion", p.Religion); err != nil {
		return err
	}
	w.WriteOptBool("is-veteran", p.IsVeteran)
	if err := writeOptCodable(w, "highest-education-level", p.HighestEducationLevel); err != nil {
		return err
	}
	w.WriteOptBool("is-disabled", p.IsDisabled)
	w.WriteOptString("organ-donor", p.OrganDonor)
	w.EndElement()
	return nil
}

// String summarizes the demographics: the name when set.
func (p *Personal) String() string {
	return p.Name.String()
}
