package measurement

import (
	"github.com/shopspring/decimal"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/codable"
	"github.com/gohealth/itemtypes/xmlio"
)

// GeneralMeasurement is a measurement whose unit is not fixed by the
// schema: a required display string plus any number of structured
// value/unit pairs.
//
//	<display>600 mg</display>
//	<structured>
//	  <value>600</value>
//	  <units><text>mg</text></units>
//	</structured>
type GeneralMeasurement struct {
	// Display is the human-readable rendition. Required.
	Display string

	// Structured holds machine-readable value/unit pairs. Optional.
	Structured []StructuredMeasurement
}

// StructuredMeasurement is one value/unit pair inside a
// GeneralMeasurement.
type StructuredMeasurement struct {
	// Value is the measured quantity.
	Value decimal.Decimal

	// Units is the coded unit. Required.
	Units codable.CodableValue
}

// NewGeneralMeasurement creates a display-only measurement.
func NewGeneralMeasurement(display string) (*GeneralMeasurement, error) {
	if display == "" {
		return nil, itemtypes.NewValidationError("display", "must not be empty")
	}
	return &GeneralMeasurement{Display: display}, nil
}

// AddStructured appends a structured value/unit pair.
func (g *GeneralMeasurement) AddStructured(value decimal.Decimal, unitsText string) error {
	units, err := codable.NewCodableValue(unitsText)
	if err != nil {
		return err
	}
	g.Structured = append(g.Structured, StructuredMeasurement{Value: value, Units: *units})
	return nil
}

// ParseXML populates the measurement from its named element.
func (g *GeneralMeasurement) ParseXML(nav *xmlio.Navigator) error {
	display, err := nav.String("display")
	if err != nil {
		return itemtypes.NewParseError(nav.Name(), "display")
	}
	g.Display = display
	g.Structured = g.Structured[:0]
	for _, sNav := range nav.Select("structured") {
		var sm StructuredMeasurement
		if err := sm.ParseXML(sNav); err != nil {
			return err
		}
		g.Structured = append(g.Structured, sm)
	}
	return nil
}

// ParseXML populates the pair from an element holding <value> and
// <units> children.
func (sm *StructuredMeasurement) ParseXML(nav *xmlio.Navigator) error {
	v, err := nav.String("value")
	if err != nil {
		return itemtypes.NewParseError(nav.Name(), "value")
	}
	sm.Value, err = decimal.NewFromString(v)
	if err != nil {
		return itemtypes.WrapParseError(nav.Name(), "value", err)
	}
	unitsNav := nav.SelectSingle("units")
	if unitsNav == nil {
		return itemtypes.NewParseError(nav.Name(), "units")
	}
	return sm.Units.ParseXML(unitsNav)
}

// WriteXML emits the pair under the given element name.
func (sm *StructuredMeasurement) WriteXML(w *xmlio.Writer, name string) error {
	if sm.Units.Text == "" {
		return itemtypes.NewSerializationError(name, "Units")
	}
	w.StartElement(name)
	w.WriteDecimal("value", sm.Value)
	if err := sm.Units.WriteXML(w, "units"); err != nil {
		return err
	}
	w.EndElement()
	return nil
}

// WriteXML emits the measurement under the given element name.
func (g *GeneralMeasurement) WriteXML(w *xmlio.Writer, name string) error {
	if g.Display == "" {
		return itemtypes.NewSerializationError(name, "Display")
	}
	w.StartElement(name)
	w.WriteString("display", g.Display)
	for i := range g.Structured {
		if err := g.Structured[i].WriteXML(w, "structured"); err != nil {
			return err
		}
	}
	w.EndElement()
	return nil
}

// String returns the display text.
func (g *GeneralMeasurement) String() string {
	if g == nil {
		return ""
	}
	return g.Display
}
