package measurement

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/xmlio"
)

// Measurement is the generic base for typed measurements: the canonical
// value plus an optional display value. Concrete measurements embed it
// and supply the value element name and range assertion.
type Measurement[T any] struct {
	value   T
	set     bool
	Display *DisplayValue
}

// Value returns the canonical value. The zero value is returned when the
// measurement was never set.
func (m *Measurement[T]) Value() T { return m.value }

// IsSet reports whether the value was ever assigned.
func (m *Measurement[T]) IsSet() bool { return m.set }

// setValue stores a value that already passed the concrete type's
// assertion.
func (m *Measurement[T]) setValue(v T) {
	m.value = v
	m.set = true
}

// parseMeasurement reads <element> and an optional <display> from nav
// into m, running the concrete type's assertion on the parsed value.
func parseMeasurement[T any](
	m *Measurement[T],
	nav *xmlio.Navigator,
	typeName, element string,
	parse func(string) (T, error),
	assert func(T) error,
) error {
	c := nav.SelectSingle(element)
	if c == nil {
		return itemtypes.NewParseError(typeName, element)
	}
	v, err := parse(c.Text())
	if err != nil {
		return itemtypes.WrapParseError(typeName, element, err)
	}
	if err := assert(v); err != nil {
		return err
	}
	m.setValue(v)

	m.Display = nil
	if dispNav := nav.SelectSingle("display"); dispNav != nil {
		d := &DisplayValue{}
		if err := d.ParseXML(dispNav); err != nil {
			return err
		}
		m.Display = d
	}
	return nil
}

// writeMeasurement emits m under the given element name.
func writeMeasurement[T any](
	m *Measurement[T],
	w *xmlio.Writer,
	name, typeName, element string,
	format func(T) string,
) error {
	if !m.set {
		return itemtypes.NewSerializationError(typeName, "Value")
	}
	w.StartElement(name)
	w.WriteString(element, format(m.value))
	if m.Display != nil {
		if err := m.Display.WriteXML(w); err != nil {
			return err
		}
	}
	w.EndElement()
	return nil
}

func parseDouble(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// Length is a length in meters. Must be positive.
type Length struct {
	Measurement[float64]
}

// NewLength creates a Length from meters.
func NewLength(meters float64) (*Length, error) {
	l := &Length{}
	if err := l.SetValue(meters); err != nil {
		return nil, err
	}
	return l, nil
}

// SetValue assigns the length in meters.
func (l *Length) SetValue(meters float64) error {
	if meters <= 0 {
		return itemtypes.NewValidationError("meters", "must be positive")
	}
	l.setValue(meters)
	return nil
}

// ParseXML populates the length from its named element.
func (l *Length) ParseXML(nav *xmlio.Navigator) error {
	return parseMeasurement(&l.Measurement, nav, "length", "m", parseDouble, func(v float64) error {
		if v <= 0 {
			return itemtypes.NewValidationError("meters", "must be positive")
		}
		return nil
	})
}

// WriteXML emits the length under the given element name.
func (l *Length) WriteXML(w *xmlio.Writer, name string) error {
	return writeMeasurement(&l.Measurement, w, name, "length", "m", xmlio.FormatDouble)
}

// String renders the length for display.
func (l *Length) String() string {
	if l == nil || !l.IsSet() {
		return ""
	}
	if l.Display != nil {
		return l.Display.String()
	}
	return xmlio.FormatDouble(l.Value()) + " m"
}

// WeightValue is a weight in kilograms. Must be positive.
type WeightValue struct {
	Measurement[float64]
}

// NewWeightValue creates a WeightValue from kilograms.
func NewWeightValue(kilograms float64) (*WeightValue, error) {
	v := &WeightValue{}
	if err := v.SetValue(kilograms); err != nil {
		return nil, err
	}
	return v, nil
}

// SetValue assigns the weight in kilograms.
func (v *WeightValue) SetValue(kilograms float64) error {
	if kilograms <= 0 {
		return itemtypes.NewValidationError("kilograms", "must be positive")
	}
	v.setValue(kilograms)
	return nil
}

// ParseXML populates the weight from its named element.
func (v *WeightValue) ParseXML(nav *xmlio.Navigator) error {
	return parseMeasurement(&v.Measurement, nav, "weight-value", "kg", parseDouble, func(kg float64) error {
		if kg <= 0 {
			return itemtypes.NewValidationError("kilograms", "must be positive")
		}
		return nil
	})
}

// WriteXML emits the weight under the given element name.
func (v *WeightValue) WriteXML(w *xmlio.Writer, name string) error {
	return writeMeasurement(&v.Measurement, w, name, "weight-value", "kg", xmlio.FormatDouble)
}

// String renders the weight for display.
func (v *WeightValue) String() string {
	if v == nil || !v.IsSet() {
		return ""
	}
	if v.Display != nil {
		return v.Display.String()
	}
	return xmlio.FormatDouble(v.Value()) + " kg"
}

// BloodGlucoseValue is a glucose concentration in mmol/L. Must not be
// negative.
type BloodGlucoseValue struct {
	Measurement[float64]
}

// NewBloodGlucoseValue creates a BloodGlucoseValue from mmol/L.
func NewBloodGlucoseValue(mmolPerL float64) (*BloodGlucoseValue, error) {
	v := &BloodGlucoseValue{}
	if err := v.SetValue(mmolPerL); err != nil {
		return nil, err
	}
	return v, nil
}

// SetValue assigns the concentration in mmol/L.
func (v *BloodGlucoseValue) SetValue(mmolPerL float64) error {
	if mmolPerL < 0 {
		return itemtypes.NewValidationError("mmolPerL", "must not be negative")
	}
	v.setValue(mmolPerL)
	return nil
}

// ParseXML populates the value from its named element.
func (v *BloodGlucoseValue) ParseXML(nav *xmlio.Navigator) error {
	return parseMeasurement(&v.Measurement, nav, "blood-glucose-value", "mmolPerL", parseDouble, func(g float64) error {
		if g < 0 {
			return itemtypes.NewValidationError("mmolPerL", "must not be negative")
		}
		return nil
	})
}

// WriteXML emits the value under the given element name.
func (v *BloodGlucoseValue) WriteXML(w *xmlio.Writer, name string) error {
	return writeMeasurement(&v.Measurement, w, name, "blood-glucose-value", "mmolPerL", xmlio.FormatDouble)
}

// String renders the value for display.
func (v *BloodGlucoseValue) String() string {
	if v == nil || !v.IsSet() {
		return ""
	}
	if v.Display != nil {
		return v.Display.String()
	}
	return xmlio.FormatDouble(v.Value()) + " mmol/L"
}

// ConcentrationValue is a substance concentration in mmol/L, held as a
// decimal so lab values round-trip without floating point drift.
type ConcentrationValue struct {
	Measurement[decimal.Decimal]
}

// NewConcentrationValue creates a ConcentrationValue from mmol/L.
func NewConcentrationValue(mmolPerL decimal.Decimal) (*ConcentrationValue, error) {
	v := &ConcentrationValue{}
	if err := v.SetValue(mmolPerL); err != nil {
		return nil, err
	}
	return v, nil
}

// SetValue assigns the concentration in mmol/L.
func (v *ConcentrationValue) SetValue(mmolPerL decimal.Decimal) error {
	if mmolPerL.IsNegative() {
		return itemtypes.NewValidationError("mmolPerL", "must not be negative")
	}
	v.setValue(mmolPerL)
	return nil
}

// ParseXML populates the value from its named element.
func (v *ConcentrationValue) ParseXML(nav *xmlio.Navigator) error {
	return parseMeasurement(&v.Measurement, nav, "concentration-value", "mmolPerL", decimal.NewFromString, func(d decimal.Decimal) error {
		if d.IsNegative() {
			return itemtypes.NewValidationError("mmolPerL", "must not be negative")
		}
		return nil
	})
}

// WriteXML emits the value under the given element name.
func (v *ConcentrationValue) WriteXML(w *xmlio.Writer, name string) error {
	return writeMeasurement(&v.Measurement, w, name, "concentration-value", "mmolPerL", decimal.Decimal.String)
}

// String renders the value for display.
func (v *ConcentrationValue) String() string {
	if v == nil || !v.IsSet() {
		return ""
	}
	if v.Display != nil {
		return v.Display.String()
	}
	return v.Value().String() + " mmol/L"
}

// VolumeValue is a volume in liters. Must not be negative.
type VolumeValue struct {
	Measurement[float64]
}

// NewVolumeValue creates a VolumeValue from liters.
func NewVolumeValue(liters float64) (*VolumeValue, error) {
	v := &VolumeValue{}
	if err := v.SetValue(liters); err != nil {
		return nil, err
	}
	return v, nil
}

// SetValue assigns the volume in liters.
func (v *VolumeValue) SetValue(liters float64) error {
	if liters < 0 {
		return itemtypes.NewValidationError("liters", "must not be negative")
	}
	v.setValue(liters)
	return nil
}

// ParseXML populates the volume from its named element.
func (v *VolumeValue) ParseXML(nav *xmlio.Navigator) error {
	return parseMeasurement(&v.Measurement, nav, "volume-value", "liters", parseDouble, func(l float64) error {
		if l < 0 {
			return itemtypes.NewValidationError("liters", "must not be negative")
		}
		return nil
	})
}

// WriteXML emits the volume under the given element name.
func (v *VolumeValue) WriteXML(w *xmlio.Writer, name string) error {
	return writeMeasurement(&v.Measurement, w, name, "volume-value", "liters", xmlio.FormatDouble)
}

// String renders the volume for display.
func (v *VolumeValue) String() string {
	if v == nil || !v.IsSet() {
		return ""
	}
	if v.Display != nil {
		return v.Display.String()
	}
	return xmlio.FormatDouble(v.Value()) + " L"
}

// HeartRateValue is a heart rate in beats per minute. Must be positive.
type HeartRateValue struct {
	Measurement[int]
}

// NewHeartRateValue creates a HeartRateValue from beats per minute.
func NewHeartRateValue(bpm int) (*HeartRateValue, error) {
	v := &HeartRateValue{}
	if err := v.SetValue(bpm); err != nil {
		return nil, err
	}
	return v, nil
}

// SetValue assigns the rate in beats per minute.
func (v *HeartRateValue) SetValue(bpm int) error {
	if bpm <= 0 {
		return itemtypes.NewValidationError("bpm", "must be positive")
	}
	v.setValue(bpm)
	return nil
}

// ParseXML populates the rate from its named element.
func (v *HeartRateValue) ParseXML(nav *xmlio.Navigator) error {
	return parseMeasurement(&v.Measurement, nav, "heart-rate", "beats-per-minute", parseInt, func(b int) error {
		if b <= 0 {
			return itemtypes.NewValidationError("bpm", "must be positive")
		}
		return nil
	})
}

// WriteXML emits the rate under the given element name.
func (v *HeartRateValue) WriteXML(w *xmlio.Writer, name string) error {
	return writeMeasurement(&v.Measurement, w, name, "heart-rate", "beats-per-minute", strconv.Itoa)
}

// String renders the rate for display.
func (v *HeartRateValue) String() string {
	if v == nil || !v.IsSet() {
		return ""
	}
	if v.Display != nil {
		return v.Display.String()
	}
	return strconv.Itoa(v.Value()) + " bpm"
}

// FlowValue is a flow rate in liters per second. Must be positive.
type FlowValue struct {
	Measurement[float64]
}

// NewFlowValue creates a FlowValue from liters per second.
func NewFlowValue(litersPerSecond float64) (*FlowValue, error) {
	v := &FlowValue{}
	if err := v.SetValue(litersPerSecond); err != nil {
		return nil, err
	}
	return v, nil
}

// SetValue assigns the flow in liters per second.
func (v *FlowValue) SetValue(litersPerSecond float64) error {
	if litersPerSecond <= 0 {
		return itemtypes.NewValidationError("litersPerSecond", "must be positive")
	}
	v.setValue(litersPerSecond)
	return nil
}

// ParseXML populates the flow from its named element.
func (v *FlowValue) ParseXML(nav *xmlio.Navigator) error {
	return parseMeasurement(&v.Measurement, nav, "flow-value", "liters-per-second", parseDouble, func(f float64) error {
		if f <= 0 {
			return itemtypes.NewValidationError("litersPerSecond", "must be positive")
		}
		return nil
	})
}

// WriteXML emits the flow under the given element name.
func (v *FlowValue) WriteXML(w *xmlio.Writer, name string) error {
	return writeMeasurement(&v.Measurement, w, name, "flow-value", "liters-per-second", xmlio.FormatDouble)
}

// String renders the flow for display.
func (v *FlowValue) String() string {
	if v == nil || !v.IsSet() {
		return ""
	}
	if v.Display != nil {
		return v.Display.String()
	}
	return xmlio.FormatDouble(v.Value()) + " L/s"
}
