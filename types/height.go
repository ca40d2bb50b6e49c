package types

import (
	"github.com/google/uuid"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/dates"
	"github.com/gohealth/itemtypes/measurement"
	"github.com/gohealth/itemtypes/xmlio"
)

// HeightTypeID identifies height measurements.
var HeightTypeID = uuid.MustParse("40750a6a-89b2-455c-bd8d-b420a4cb500b")

// Height records a height measurement at a point in time.
type Height struct {
	// When the measurement was taken. Required.
	When dates.DateTime

	// Value is the height in meters. Required.
	Value measurement.Length
}

// NewHeight creates a Height of the given meters, taken now.
func NewHeight(meters float64) (*Height, error) {
	v, err := measurement.NewLength(meters)
	if err != nil {
		return nil, err
	}
	return &Height{When: *dates.Now(), Value: *v}, nil
}

// TypeID implements itemtypes.TypeData.
func (h *Height) TypeID() uuid.UUID { return HeightTypeID }

// TypeName implements itemtypes.TypeData.
func (h *Height) TypeName() string { return "height" }

// ParseXML populates the height from a <height> element.
func (h *Height) ParseXML(nav *xmlio.Navigator) error {
	root, err := selectRoot(nav, "height")
	if err != nil {
		return err
	}
	if err := parseReqDateTime(root, "height", "when", &h.When); err != nil {
		return err
	}
	valueNav := root.SelectSingle("value")
	if valueNav == nil {
		return itemtypes.NewParseError("height", "value")
	}
	return h.Value.ParseXML(valueNav)
}

// WriteXML emits the <height> element.
func (h *Height) WriteXML(w *xmlio.Writer) error {
	if h.When.Date.Year() == 0 {
		return itemtypes.NewSerializationError("height", "When")
	}
	if !h.Value.IsSet() {
		return itemtypes.NewSerializationError("height", "Value")
	}
	w.StartElement("height")
	if err := h.When.WriteXML(w, "when"); err != nil {
		return err
	}
	if err := h.Value.WriteXML(w, "value"); err != nil {
		return err
	}
	w.EndElement()
	return nil
}

// String summarizes the height.
func (h *Height) String() string {
	return h.Value.String()
}
