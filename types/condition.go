package types

import (
	"github.com/google/uuid"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/codable"
	"github.com/gohealth/itemtypes/dates"
	"github.com/gohealth/itemtypes/xmlio"
)

// ConditionTypeID identifies medical conditions.
var ConditionTypeID = uuid.MustParse("7ea7a1f9-880b-4bd4-b593-f5660f20eda8")

// Condition records a medical condition such as a diagnosis.
type Condition struct {
	// Name of the condition. Required.
	Name codable.CodableValue

	// OnsetDate is when the condition began. Optional.
	OnsetDate *dates.ApproximateDateTime

	// Status of the condition, for example Active or Resolved. Optional.
	Status *codable.CodableValue

	// StopDate is when the condition resolved. Optional.
	StopDate *dates.ApproximateDateTime

	// StopReason describes why the condition ended. Optional.
	StopReason *string
}

// NewCondition creates a condition with the given name.
func NewCondition(name codable.CodableValue) (*Condition, error) {
	if name.Text == "" {
		return nil, itemtypes.NewValidationError("Name", "must not be empty")
	}
	return &Condition{Name: name}, nil
}

// TypeID implements itemtypes.TypeData.
func (c *Condition) TypeID() uuid.UUID { return ConditionTypeID }

// TypeName implements itemtypes.TypeData.
func (c *Condition) TypeName() string { return "condition" }

// ParseXML populates the condition from a <condition> element.
func (c *Condition) ParseXML(nav *xmlio.Navigator) error {
	root, err := selectRoot(nav, "condition")
	if err != nil {
		return err
	}
	if err := parseReqCodable(root, "condition", "name", &c.Name); err != nil {
		return err
	}
	if c.OnsetDate, err = parseOptApproxDateTime(root, "onset-date"); err != nil {
		return err
	}
	if c.Status, err = parseOptCodable(root, "status"); err != nil {
		return err
	}
	if c.StopDate, err = parseOptApproxDateTime(root, "stop-date"); err != nil {
		return err
	}
	c.StopReason = root.OptString("stop-reason")
	return nil
}

// WriteXML emits the <condition> element.
func (c *Condition) WriteXML(w *xmlio.Writer) error {
	if c.Name.Text == "" {
		return itemtypes.NewSerializationError("condition", "Name")
	}
	w.StartElement("condition")
	if err := c.Name.WriteXML(w, "name"); err != nil {
		return err
	}
	if c.OnsetDate != nil {
		if err := c.OnsetDate.WriteXML(w, "onset-date"); err != nil {
			return err
		}
	}
	if err := writeOptCodable(w, "status", c.Status); err != nil {
		return err
	}
	if c.StopDate != nil {
		if err := c.StopDate.WriteXML(w, "stop-date"); err != nil {
			return err
		}
	}
	w.WriteOptString("stop-reason", c.StopReason)
	w.EndElement()
	return nil
}

// String returns the condition name.
func (c *Condition) String() string { return c.Name.String() }
