package types

import (
	"github.com/google/uuid"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/dates"
	"github.com/gohealth/itemtypes/measurement"
	"github.com/gohealth/itemtypes/xmlio"
)

// WeightTypeID identifies weight measurements.
var WeightTypeID = uuid.MustParse("3d34d87e-7fc1-4153-800f-f56592cb0d17")

// Weight records a weight measurement at a point in time.
type Weight struct {
	// When the measurement was taken. Required.
	When dates.DateTime

	// Value is the weight in kilograms. Required.
	Value measurement.WeightValue
}

// NewWeight creates a Weight of the given kilograms, taken now.
func NewWeight(kilograms float64) (*Weight, error) {
	v, err := measurement.NewWeightValue(kilograms)
	if err != nil {
		return nil, err
	}
	return &Weight{When: *dates.Now(), Value: *v}, nil
}

// TypeID implements itemtypes.TypeData.
func (wt *Weight) TypeID() uuid.UUID { return WeightTypeID }

// TypeName implements itemtypes.TypeData.
func (wt *Weight) TypeName() string { return "weight" }

// ParseXML populates the weight from a <weight> element.
func (wt *Weight) ParseXML(nav *xmlio.Navigator) error {
	root, err := selectRoot(nav, "weight")
	if err != nil {
		return err
	}
	if err := parseReqDateTime(root, "weight", "when", &wt.When); err != nil {
		return err
	}
	valueNav := root.SelectSingle("value")
	if valueNav == nil {
		return itemtypes.NewParseError("weight", "value")
	}
	return wt.Value.ParseXML(valueNav)
}

// WriteXML emits the <weight> element.
func (wt *Weight) WriteXML(w *xmlio.Writer) error {
	if wt.When.Date.Year() == 0 {
		return itemtypes.NewSerializationError("weight", "When")
	}
	if !wt.Value.IsSet() {
		return itemtypes.NewSerializationError("weight", "Value")
	}
	w.StartElement("weight")
	if err := wt.When.WriteXML(w, "when"); err != nil {
		return err
	}
	if err := wt.Value.WriteXML(w, "value"); err != nil {
		return err
	}
	w.EndElement()
	return nil
}

// String summarizes the weight.
func (wt *Weight) String() string {
	return wt.Value.String()
}
