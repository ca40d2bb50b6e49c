package measurement

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/xmlio"
)

func write(t *testing.T, fn func(w *xmlio.Writer) error) []byte {
	t.Helper()
	w := xmlio.NewWriter()
	defer w.Close()
	if err := fn(w); err != nil {
		t.Fatalf("WriteXML: %v", err)
	}
	out, err := w.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	return out
}

func TestLength_RoundTrip(t *testing.T) {
	l, err := NewLength(1.8)
	if err != nil {
		t.Fatal(err)
	}
	out := write(t, func(w *xmlio.Writer) error { return l.WriteXML(w, "value") })
	if string(out) != "<value><m>1.8</m></value>" {
		t.Errorf("output = %s", out)
	}

	nav, _ := xmlio.Parse(out)
	var got Length
	if err := got.ParseXML(nav); err != nil {
		t.Fatalf("ParseXML: %v", err)
	}
	if got.Value() != 1.8 {
		t.Errorf("Value() = %v; want 1.8", got.Value())
	}
	if got.Display != nil {
		t.Error("absent display must parse to nil")
	}
}

func TestLength_WithDisplay(t *testing.T) {
	l, _ := NewLength(1.8)
	text := "180 cm"
	code := "cm"
	l.Display = &DisplayValue{Value: 180, Units: "cm", UnitsCode: &code, Text: &text}

	out := write(t, func(w *xmlio.Writer) error { return l.WriteXML(w, "value") })

	nav, _ := xmlio.Parse(out)
	var got Length
	if err := got.ParseXML(nav); err != nil {
		t.Fatalf("ParseXML: %v", err)
	}
	if got.Display == nil {
		t.Fatal("display lost in round trip")
	}
	if got.Display.Value != 180 || got.Display.Units != "cm" {
		t.Errorf("display = %+v", got.Display)
	}
	if got.Display.Text == nil || *got.Display.Text != "180 cm" {
		t.Errorf("display text = %v", got.Display.Text)
	}
	if got.String() != "180 cm" {
		t.Errorf("String() = %q", got.String())
	}
}

func TestRangeAssertions(t *testing.T) {
	if _, err := NewLength(0); !errors.Is(err, itemtypes.ErrValueOutOfRange) {
		t.Errorf("NewLength(0) err = %v; want ErrValueOutOfRange", err)
	}
	if _, err := NewLength(-1); err == nil {
		t.Error("negative length should be rejected")
	}
	if _, err := NewWeightValue(0); err == nil {
		t.Error("zero weight should be rejected")
	}
	if _, err := NewBloodGlucoseValue(-0.1); err == nil {
		t.Error("negative glucose should be rejected")
	}
	if _, err := NewBloodGlucoseValue(0); err != nil {
		t.Errorf("zero glucose should be allowed: %v", err)
	}
	if _, err := NewVolumeValue(-1); err == nil {
		t.Error("negative volume should be rejected")
	}
	if _, err := NewHeartRateValue(0); err == nil {
		t.Error("zero heart rate should be rejected")
	}
}

func TestParse_RangeEnforced(t *testing.T) {
	nav, _ := xmlio.Parse([]byte("<value><m>-2</m></value>"))
	var l Length
	if err := l.ParseXML(nav); !errors.Is(err, itemtypes.ErrValueOutOfRange) {
		t.Errorf("parsing negative length: err = %v; want ErrValueOutOfRange", err)
	}
}

func TestParse_MissingValueElement(t *testing.T) {
	nav, _ := xmlio.Parse([]byte("<value><display units=\"m\">1.8</display></value>"))
	var l Length
	if err := l.ParseXML(nav); !errors.Is(err, itemtypes.ErrElementMissing) {
		t.Errorf("err = %v; want ErrElementMissing", err)
	}
}

func TestWrite_Unset(t *testing.T) {
	var l Length
	w := xmlio.NewWriter()
	defer w.Close()
	err := l.WriteXML(w, "value")
	if !errors.Is(err, itemtypes.ErrRequiredFieldUnset) {
		t.Errorf("err = %v; want ErrRequiredFieldUnset", err)
	}
	out, _ := w.Bytes()
	if len(out) != 0 {
		t.Errorf("failed write still emitted output: %s", out)
	}
}

func TestWeightValue_RoundTrip(t *testing.T) {
	v, _ := NewWeightValue(75)
	out := write(t, func(w *xmlio.Writer) error { return v.WriteXML(w, "value") })
	if string(out) != "<value><kg>75</kg></value>" {
		t.Errorf("output = %s", out)
	}
	nav, _ := xmlio.Parse(out)
	var got WeightValue
	if err := got.ParseXML(nav); err != nil {
		t.Fatal(err)
	}
	if got.Value() != 75 {
		t.Errorf("Value() = %v", got.Value())
	}
	if got.String() != "75 kg" {
		t.Errorf("String() = %q", got.String())
	}
}

func TestConcentrationValue_DecimalExact(t *testing.T) {
	// 0.1 is not exactly representable in binary; the decimal type must
	// carry it through unchanged
	v, err := NewConcentrationValue(decimal.RequireFromString("0.1"))
	if err != nil {
		t.Fatal(err)
	}
	out := write(t, func(w *xmlio.Writer) error { return v.WriteXML(w, "value") })
	if string(out) != "<value><mmolPerL>0.1</mmolPerL></value>" {
		t.Errorf("output = %s", out)
	}
	nav, _ := xmlio.Parse(out)
	var got ConcentrationValue
	if err := got.ParseXML(nav); err != nil {
		t.Fatal(err)
	}
	if !got.Value().Equal(decimal.RequireFromString("0.1")) {
		t.Errorf("Value() = %v", got.Value())
	}

	if _, err := NewConcentrationValue(decimal.RequireFromString("-1")); err == nil {
		t.Error("negative concentration should be rejected")
	}
}

func TestHeartRateValue_RoundTrip(t *testing.T) {
	v, _ := NewHeartRateValue(62)
	out := write(t, func(w *xmlio.Writer) error { return v.WriteXML(w, "value") })
	nav, _ := xmlio.Parse(out)
	var got HeartRateValue
	if err := got.ParseXML(nav); err != nil {
		t.Fatal(err)
	}
	if got.Value() != 62 {
		t.Errorf("Value() = %d", got.Value())
	}
}

func TestFlowValue_RoundTrip(t *testing.T) {
	v, _ := NewFlowValue(8.5)
	out := write(t, func(w *xmlio.Writer) error { return v.WriteXML(w, "value") })
	if string(out) != "<value><liters-per-second>8.5</liters-per-second></value>" {
		t.Errorf("output = %s", out)
	}
	nav, _ := xmlio.Parse(out)
	var got FlowValue
	if err := got.ParseXML(nav); err != nil {
		t.Fatal(err)
	}
	if got.Value() != 8.5 {
		t.Errorf("Value() = %v", got.Value())
	}

	if _, err := NewFlowValue(0); !errors.Is(err, itemtypes.ErrValueOutOfRange) {
		t.Errorf("NewFlowValue(0) err = %v; want out-of-range", err)
	}
}

func TestGeneralMeasurement_RoundTrip(t *testing.T) {
	g, err := NewGeneralMeasurement("600 mg")
	if err != nil {
		t.Fatal(err)
	}
	if err := g.AddStructured(decimal.NewFromInt(600), "mg"); err != nil {
		t.Fatal(err)
	}

	out := write(t, func(w *xmlio.Writer) error { return g.WriteXML(w, "dose") })

	nav, _ := xmlio.Parse(out)
	var got GeneralMeasurement
	if err := got.ParseXML(nav); err != nil {
		t.Fatal(err)
	}
	if got.Display != "600 mg" {
		t.Errorf("Display = %q", got.Display)
	}
	if len(got.Structured) != 1 {
		t.Fatalf("Structured = %d entries; want 1", len(got.Structured))
	}
	if !got.Structured[0].Value.Equal(decimal.NewFromInt(600)) {
		t.Errorf("Structured value = %v", got.Structured[0].Value)
	}
	if got.Structured[0].Units.Text != "mg" {
		t.Errorf("units = %q", got.Structured[0].Units.Text)
	}
}

func TestGeneralMeasurement_Validation(t *testing.T) {
	if _, err := NewGeneralMeasurement(""); err == nil {
		t.Error("empty display should be rejected")
	}
	var g GeneralMeasurement
	w := xmlio.NewWriter()
	defer w.Close()
	if err := g.WriteXML(w, "dose"); !errors.Is(err, itemtypes.ErrRequiredFieldUnset) {
		t.Errorf("err = %v; want ErrRequiredFieldUnset", err)
	}
}

func TestDisplayValue_Validation(t *testing.T) {
	if _, err := NewDisplayValue(1, ""); err == nil {
		t.Error("empty units should be rejected")
	}
	nav, _ := xmlio.Parse([]byte(`<display>1.8</display>`))
	var d DisplayValue
	if err := d.ParseXML(nav); err == nil {
		t.Error("display without units attribute should fail to parse")
	}
}
