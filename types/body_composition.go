package types

import (
	"github.com/google/uuid"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/codable"
	"github.com/gohealth/itemtypes/dates"
	"github.com/gohealth/itemtypes/measurement"
	"github.com/gohealth/itemtypes/xmlio"
)

// BodyCompositionTypeID identifies body composition measurements.
var BodyCompositionTypeID = uuid.MustParse("18adc276-5144-4e7e-bf6c-e56d8250adf8")

// BodyComposition records a body composition measurement such as body
// fat percentage or lean muscle mass.
type BodyComposition struct {
	// When the measurement was taken. Required.
	When dates.ApproximateDateTime

	// MeasurementName names what was measured, for example Body fat
	// percentage. Required.
	MeasurementName codable.CodableValue

	// Value of the measurement. Required; at least one of its mass and
	// percentage arms must be set.
	Value BodyCompositionValue

	// MeasurementMethod describes how the measurement was taken, for
	// example DXA or Skinfold calipers. Optional.
	MeasurementMethod *codable.CodableValue

	// Site is the body part measured. Optional.
	Site *codable.CodableValue
}

// BodyCompositionValue is a mass, a percentage, or both.
type BodyCompositionValue struct {
	// MassValue is the measured mass. Optional.
	MassValue *measurement.WeightValue

	// percentValue is the measured fraction, in [0, 1].
	percentValue *float64
}

// PercentValue returns the measured fraction, or nil when unset.
func (v *BodyCompositionValue) PercentValue() *float64 { return v.percentValue }

// SetPercentValue sets the measured fraction. The value must lie in
// [0, 1].
func (v *BodyCompositionValue) SetPercentValue(fraction float64) error {
	if fraction < 0 || fraction > 1 {
		return itemtypes.NewValidationError("PercentValue", "must be between 0 and 1")
	}
	v.percentValue = &fraction
	return nil
}

// ClearPercentValue removes the percentage arm.
func (v *BodyCompositionValue) ClearPercentValue() { v.percentValue = nil }

func (v *BodyCompositionValue) parseXML(nav *xmlio.Navigator) error {
	v.MassValue = nil
	if c := nav.SelectSingle("mass-value"); c != nil {
		m := &measurement.WeightValue{}
		if err := m.ParseXML(c); err != nil {
			return err
		}
		v.MassValue = m
	}
	pct, err := nav.OptDouble("percent-value")
	if err != nil {
		return err
	}
	v.percentValue = nil
	if pct != nil {
		if err := v.SetPercentValue(*pct); err != nil {
			return err
		}
	}
	if v.MassValue == nil && v.percentValue == nil {
		return itemtypes.NewParseError("body-composition", "value")
	}
	return nil
}

func (v *BodyCompositionValue) writeXML(w *xmlio.Writer, name string) error {
	w.StartElement(name)
	if v.MassValue != nil {
		if err := v.MassValue.WriteXML(w, "mass-value"); err != nil {
			return err
		}
	}
	w.WriteOptDouble("percent-value", v.percentValue)
	w.EndElement()
	return nil
}

// NewBodyComposition creates a measurement taken in the given year.
func NewBodyComposition(name codable.CodableValue, year int, value BodyCompositionValue) (*BodyComposition, error) {
	if value.MassValue == nil && value.percentValue == nil {
		return nil, itemtypes.NewValidationError("Value", "mass or percentage is required")
	}
	when, err := dates.NewApproximateDateTime(year)
	if err != nil {
		return nil, err
	}
	return &BodyComposition{When: *when, MeasurementName: name, Value: value}, nil
}

// TypeID implements itemtypes.TypeData.
func (b *BodyComposition) TypeID() uuid.UUID { return BodyCompositionTypeID }

// TypeName implements itemtypes.TypeData.
func (b *BodyComposition) TypeName() string { return "body-composition" }

// ParseXML populates the measurement from a <body-composition> element.
func (b *BodyComposition) ParseXML(nav *xmlio.Navigator) error {
	root, err := selectRoot(nav, "body-composition")
	if err != nil {
		return err
	}
	if err := parseReqApproxDateTime(root, "body-composition", "when", &b.When); err != nil {
		return err
	}
	if err := parseReqCodable(root, "body-composition", "measurement-name", &b.MeasurementName); err != nil {
		return err
	}
	valueNav := root.SelectSingle("value")
	if valueNav == nil {
		return itemtypes.NewParseError("body-composition", "value")
	}
	if err := b.Value.parseXML(valueNav); err != nil {
		return err
	}
	if b.MeasurementMethod, err = parseOptCodable(root, "measurement-method"); err != nil {
		return err
	}
	b.Site, err = parseOptCodable(root, "site")
	return err
}

// WriteXML emits the <body-composition> element.
func (b *BodyComposition) WriteXML(w *xmlio.Writer) error {
	if b.When.Structured == nil && b.When.Description == nil {
		return itemtypes.NewSerializationError("body-composition", "When")
	}
	if b.MeasurementName.Text == "" {
		return itemtypes.NewSerializationError("body-composition", "MeasurementName")
	}
	if b.Value.MassValue == nil && b.Value.percentValue == nil {
		return itemtypes.NewSerializationError("body-composition", "Value")
	}
	w.StartElement("body-composition")
	if err := b.When.WriteXML(w, "when"); err != nil {
		return err
	}
	if err := b.MeasurementName.WriteXML(w, "measurement-name"); err != nil {
		return err
	}
	if err := b.Value.writeXML(w, "value"); err != nil {
		return err
	}
	if err := writeOptCodable(w, "measurement-method", b.MeasurementMethod); err != nil {
		return err
	}
	if err := writeOptCodable(w, "site", b.Site); err != nil {
		return err
	}
	w.EndElement()
	return nil
}

// String summarizes the measurement.
func (b *BodyComposition) String() string {
	return b.MeasurementName.String()
}
