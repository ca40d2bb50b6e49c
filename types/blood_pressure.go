package types

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/dates"
	"github.com/gohealth/itemtypes/xmlio"
)

// BloodPressureTypeID identifies blood pressure readings.
var BloodPressureTypeID = uuid.MustParse("ca3c57f4-f4c1-4e15-be67-0a3caf5414ed")

// BloodPressure records a blood pressure reading.
type BloodPressure struct {
	// When the reading was taken. Required.
	When dates.DateTime

	systolic  int
	diastolic int
	set       bool

	// Pulse in beats per minute. Optional.
	Pulse *int

	// IrregularHeartbeat indicates the device detected an irregular
	// heartbeat. Optional.
	IrregularHeartbeat *bool
}

// NewBloodPressure creates a reading taken now.
func NewBloodPressure(systolic, diastolic int) (*BloodPressure, error) {
	bp := &BloodPressure{When: *dates.Now()}
	if err := bp.SetReading(systolic, diastolic); err != nil {
		return nil, err
	}
	return bp, nil
}

// SetReading assigns the systolic and diastolic pressures in mmHg.
func (bp *BloodPressure) SetReading(systolic, diastolic int) error {
	if systolic < 0 {
		return itemtypes.NewValidationError("systolic", "must not be negative")
	}
	if diastolic < 0 {
		return itemtypes.NewValidationError("diastolic", "must not be negative")
	}
	bp.systolic, bp.diastolic = systolic, diastolic
	bp.set = true
	return nil
}

// Systolic returns the systolic pressure in mmHg.
func (bp *BloodPressure) Systolic() int { return bp.systolic }

// Diastolic returns the diastolic pressure in mmHg.
func (bp *BloodPressure) Diastolic() int { return bp.diastolic }

// SetPulse assigns the optional pulse in beats per minute.
func (bp *BloodPressure) SetPulse(pulse int) error {
	if pulse < 0 {
		return itemtypes.NewValidationError("pulse", "must not be negative")
	}
	bp.Pulse = &pulse
	return nil
}

// TypeID implements itemtypes.TypeData.
func (bp *BloodPressure) TypeID() uuid.UUID { return BloodPressureTypeID }

// TypeName implements itemtypes.TypeData.
func (bp *BloodPressure) TypeName() string { return "blood-pressure" }

// ParseXML populates the reading from a <blood-pressure> element.
func (bp *BloodPressure) ParseXML(nav *xmlio.Navigator) error {
	root, err := selectRoot(nav, "blood-pressure")
	if err != nil {
		return err
	}
	if err := parseReqDateTime(root, "blood-pressure", "when", &bp.When); err != nil {
		return err
	}
	sys, err := root.Int("systolic")
	if err != nil {
		return itemtypes.WrapParseError("blood-pressure", "systolic", err)
	}
	dia, err := root.Int("diastolic")
	if err != nil {
		return itemtypes.WrapParseError("blood-pressure", "diastolic", err)
	}
	if err := bp.SetReading(sys, dia); err != nil {
		return err
	}
	bp.Pulse = nil
	pulse, err := root.OptInt("pulse")
	if err != nil {
		return itemtypes.WrapParseError("blood-pressure", "pulse", err)
	}
	if pulse != nil {
		if err := bp.SetPulse(*pulse); err != nil {
			return err
		}
	}
	if bp.IrregularHeartbeat, err = root.OptBool("irregular-heartbeat"); err != nil {
		return itemtypes.WrapParseError("blood-pressure", "irregular-heartbeat", err)
	}
	return nil
}

// WriteXML emits the <blood-pressure> element.
func (bp *BloodPressure) WriteXML(w *xmlio.Writer) error {
	if bp.When.Date.Year() == 0 {
		return itemtypes.NewSerializationError("blood-pressure", "When")
	}
	if !bp.set {
		return itemtypes.NewSerializationError("blood-pressure", "Systolic")
	}
	w.StartElement("blood-pressure")
	if err := bp.When.WriteXML(w, "when"); err != nil {
		return err
	}
	w.WriteInt("systolic", bp.systolic)
	w.WriteInt("diastolic", bp.diastolic)
	w.WriteOptInt("pulse", bp.Pulse)
	w.WriteOptBool("irregular-heartbeat", bp.IrregularHeartbeat)
	w.EndElement()
	return nil
}

// String summarizes the reading as "systolic/diastolic".
func (bp *BloodPressure) String() string {
	if !bp.set {
		return ""
	}
	return fmt.Sprintf("%d/%d", bp.systolic, bp.diastolic)
}
