package types

import (
	"github.com/google/uuid"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/codable"
	"github.com/gohealth/itemtypes/dates"
	"github.com/gohealth/itemtypes/measurement"
	"github.com/gohealth/itemtypes/xmlio"
)

// BloodGlucoseTypeID identifies blood glucose readings.
var BloodGlucoseTypeID = uuid.MustParse("879e7c04-4e8a-4707-9ad3-b054df467ce4")

// BloodGlucose records a blood glucose reading.
type BloodGlucose struct {
	// When the reading was taken. Required.
	When dates.DateTime

	// Value is the glucose concentration in mmol/L. Required.
	Value measurement.BloodGlucoseValue

	// GlucoseMeasurementType describes how the reading was taken, e.g.
	// "whole blood". Required, coded.
	GlucoseMeasurementType codable.CodableValue

	// OutsideOperatingTemperature indicates the device was outside its
	// operating temperature range. Optional.
	OutsideOperatingTemperature *bool

	// IsControlTest indicates a control solution test. Optional.
	IsControlTest *bool

	// MeasurementContext such as "before meal". Optional, coded.
	MeasurementContext *codable.CodableValue
}

// NewBloodGlucose creates a reading of the given concentration, taken
// now, measured as the given type.
func NewBloodGlucose(mmolPerL float64, measurementType string) (*BloodGlucose, error) {
	v, err := measurement.NewBloodGlucoseValue(mmolPerL)
	if err != nil {
		return nil, err
	}
	mt, err := codable.NewCodableValue(measurementType)
	if err != nil {
		return nil, err
	}
	return &BloodGlucose{When: *dates.Now(), Value: *v, GlucoseMeasurementType: *mt}, nil
}

// TypeID implements itemtypes.TypeData.
func (bg *BloodGlucose) TypeID() uuid.UUID { return BloodGlucoseTypeID }

// TypeName implements itemtypes.TypeData.
func (bg *BloodGlucose) TypeName() string { return "blood-glucose" }

// ParseXML populates the reading from a <blood-glucose> element.
func (bg *BloodGlucose) ParseXML(nav *xmlio.Navigator) error {
	root, err := selectRoot(nav, "blood-glucose")
	if err != nil {
		return err
	}
	if err := parseReqDateTime(root, "blood-glucose", "when", &bg.When); err != nil {
		return err
	}
	valueNav := root.SelectSingle("value")
	if valueNav == nil {
		return itemtypes.NewParseError("blood-glucose", "value")
	}
	if err := bg.Value.ParseXML(valueNav); err != nil {
		return err
	}
	if err := parseReqCodable(root, "blood-glucose", "glucose-measurement-type", &bg.GlucoseMeasurementType); err != nil {
		return err
	}
	if bg.OutsideOperatingTemperature, err = root.OptBool("outside-operating-temp"); err != nil {
		return itemtypes.WrapParseError("blood-glucose", "outside-operating-temp", err)
	}
	if bg.IsControlTest, err = root.OptBool("is-control-test"); err != nil {
		return itemtypes.WrapParseError("blood-glucose", "is-control-test", err)
	}
	if bg.MeasurementContext, err = parseOptCodable(root, "measurement-context"); err != nil {
		return err
	}
	return nil
}

// WriteXML emits the <blood-glucose> element.
func (bg *BloodGlucose) WriteXML(w *xmlio.Writer) error {
	if bg.When.Date.Year() == 0 {
		return itemtypes.NewSerializationError("blood-glucose", "When")
	}
	if !bg.Value.IsSet() {
		return itemtypes.NewSerializationError("blood-glucose", "Value")
	}
	if bg.GlucoseMeasurementType.Text == "" {
		return itemtypes.NewSerializationError("blood-glucose", "GlucoseMeasurementType")
	}
	w.StartElement("blood-glucose")
	if err := bg.When.WriteXML(w, "when"); err != nil {
		return err
	}
	if err := bg.Value.WriteXML(w, "value"); err != nil {
		return err
	}
	if err := bg.GlucoseMeasurementType.WriteXML(w, "glucose-measurement-type"); err != nil {
		return err
	}
	w.WriteOptBool("outside-operating-temp", bg.OutsideOperatingTemperature)
	w.WriteOptBool("is-control-test", bg.IsControlTest)
	if err := writeOptCodable(w, "measurement-context", bg.MeasurementContext); err != nil {
		return err
	}
	w.EndElement()
	return nil
}

// String summarizes the reading.
func (bg *BloodGlucose) String() string {
	return bg.Value.String()
}
