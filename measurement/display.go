// Package measurement models typed clinical measurements.
//
// The generic Measurement base carries the canonical value in the schema
// unit (meters, kilograms, mmol/L) plus an optional DisplayValue holding
// whatever the user actually entered ("180 cm"). Concrete measurements
// pin the value element name and the range assertion for their unit.
package measurement

import (
	"strconv"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/xmlio"
)

// DisplayValue preserves the measurement exactly as the user entered it,
// alongside the canonical value. On the wire it is
//
//	<display units="cm" code="cm" text="180 cm">180</display>
type DisplayValue struct {
	// Value is the numeric value in display units.
	Value float64

	// Units is the display unit string. Required.
	Units string

	// UnitsCode is the vocabulary code for the unit. Optional.
	UnitsCode *string

	// Text is the full display text. Optional.
	Text *string
}

// NewDisplayValue creates a DisplayValue, validating the units.
func NewDisplayValue(value float64, units string) (*DisplayValue, error) {
	if units == "" {
		return nil, itemtypes.NewValidationError("units", "must not be empty")
	}
	return &DisplayValue{Value: value, Units: units}, nil
}

// ParseXML populates the display value from a <display> element.
func (d *DisplayValue) ParseXML(nav *xmlio.Navigator) error {
	v, err := strconv.ParseFloat(nav.Text(), 64)
	if err != nil {
		return itemtypes.WrapParseError("display", nav.Name(), err)
	}
	d.Value = v
	d.Units = nav.Attr("units")
	if d.Units == "" {
		return itemtypes.NewParseError("display", "units")
	}
	d.UnitsCode, d.Text = nil, nil
	if nav.HasAttr("code") {
		code := nav.Attr("code")
		d.UnitsCode = &code
	}
	if nav.HasAttr("text") {
		text := nav.Attr("text")
		d.Text = &text
	}
	return nil
}

// WriteXML emits the display value.
func (d *DisplayValue) WriteXML(w *xmlio.Writer) error {
	if d.Units == "" {
		return itemtypes.NewSerializationError("display", "Units")
	}
	attrs := make([]xmlio.Attr, 0, 3)
	attrs = append(attrs, xmlio.Attr{Name: "units", Value: d.Units})
	if d.UnitsCode != nil {
		attrs = append(attrs, xmlio.Attr{Name: "code", Value: *d.UnitsCode})
	}
	if d.Text != nil {
		attrs = append(attrs, xmlio.Attr{Name: "text", Value: *d.Text})
	}
	w.WriteStringAttrs("display", xmlio.FormatDouble(d.Value), attrs...)
	return nil
}

// String returns the display text if present, otherwise "value units".
func (d *DisplayValue) String() string {
	if d == nil {
		return ""
	}
	if d.Text != nil {
		return *d.Text
	}
	return xmlio.FormatDouble(d.Value) + " " + d.Units
}
