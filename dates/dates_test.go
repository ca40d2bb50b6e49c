package dates

import (
	"errors"
	"testing"
	"time"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/xmlio"
)

func roundTrip(t *testing.T, write func(w *xmlio.Writer) error) *xmlio.Navigator {
	t.Helper()
	w := xmlio.NewWriter()
	defer w.Close()
	if err := write(w); err != nil {
		t.Fatalf("WriteXML: %v", err)
	}
	out, err := w.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	nav, err := xmlio.Parse(out)
	if err != nil {
		t.Fatalf("Parse(%s): %v", out, err)
	}
	return nav
}

func TestNewDate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		y, m, d int
		wantErr bool
	}{
		{"valid", 2005, 1, 1, false},
		{"year zero", 0, 1, 1, true},
		{"year too big", 10000, 1, 1, true},
		{"month zero", 2005, 0, 1, true},
		{"month 13", 2005, 13, 1, true},
		{"day zero", 2005, 1, 0, true},
		{"day 32", 2005, 1, 32, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDate(tt.y, tt.m, tt.d)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewDate(%d,%d,%d) err = %v; wantErr %v", tt.y, tt.m, tt.d, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, itemtypes.ErrValueOutOfRange) {
				t.Errorf("err = %v; want ErrValueOutOfRange", err)
			}
		})
	}
}

func TestDate_RoundTrip(t *testing.T) {
	d, err := NewDate(2005, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	nav := roundTrip(t, func(w *xmlio.Writer) error { return d.WriteXML(w, "date") })

	var got Date
	if err := got.ParseXML(nav); err != nil {
		t.Fatalf("ParseXML: %v", err)
	}
	if got != *d {
		t.Errorf("round trip = %+v; want %+v", got, *d)
	}
	if got.String() != "2005-01-01" {
		t.Errorf("String() = %q", got.String())
	}
}

func TestTime_OptionalComponents(t *testing.T) {
	tod, err := NewTime(6, 30)
	if err != nil {
		t.Fatal(err)
	}
	nav := roundTrip(t, func(w *xmlio.Writer) error { return tod.WriteXML(w, "time") })
	if nav.SelectSingle("s") != nil || nav.SelectSingle("f") != nil {
		t.Error("unset seconds/milliseconds must not be written")
	}

	var got Time
	if err := got.ParseXML(nav); err != nil {
		t.Fatalf("ParseXML: %v", err)
	}
	if got.Second != nil || got.Millisecond != nil {
		t.Error("absent s/f must parse to nil")
	}

	if err := tod.SetSecond(59); err != nil {
		t.Fatal(err)
	}
	if err := tod.SetMillisecond(500); err != nil {
		t.Fatal(err)
	}
	nav = roundTrip(t, func(w *xmlio.Writer) error { return tod.WriteXML(w, "time") })
	var got2 Time
	if err := got2.ParseXML(nav); err != nil {
		t.Fatal(err)
	}
	if got2.Second == nil || *got2.Second != 59 || got2.Millisecond == nil || *got2.Millisecond != 500 {
		t.Errorf("optional components lost: %+v", got2)
	}
}

func TestTime_Validation(t *testing.T) {
	if _, err := NewTime(24, 0); err == nil {
		t.Error("hour 24 should be rejected")
	}
	if _, err := NewTime(0, 60); err == nil {
		t.Error("minute 60 should be rejected")
	}
	tod, _ := NewTime(0, 0)
	if err := tod.SetSecond(60); err == nil {
		t.Error("second 60 should be rejected")
	}
	if err := tod.SetMillisecond(1000); err == nil {
		t.Error("millisecond 1000 should be rejected")
	}
}

func TestDateTime_FromTime(t *testing.T) {
	src := time.Date(2013, 7, 4, 14, 5, 6, 0, time.Local)
	dt := FromTime(src)
	if dt.Date.Year() != 2013 || dt.Date.Month() != 7 || dt.Date.Day() != 4 {
		t.Errorf("date = %s", dt.Date.String())
	}
	if dt.Time == nil || dt.Time.Hour() != 14 || dt.Time.Minute() != 5 {
		t.Errorf("time = %v", dt.Time)
	}
	if got := dt.ToTime(); !got.Equal(src) {
		t.Errorf("ToTime() = %v; want %v", got, src)
	}
}

func TestDateTime_RoundTrip(t *testing.T) {
	dt := FromTime(time.Date(2013, 7, 4, 14, 5, 6, 0, time.Local))
	nav := roundTrip(t, func(w *xmlio.Writer) error { return dt.WriteXML(w, "when") })

	var got DateTime
	if err := got.ParseXML(nav); err != nil {
		t.Fatalf("ParseXML: %v", err)
	}
	if got.String() != "2013-07-04 14:05:06" {
		t.Errorf("String() = %q", got.String())
	}
	if got.TimeZone != nil {
		t.Error("absent tz must parse to nil")
	}
}

func TestDateTime_MissingDate(t *testing.T) {
	nav, _ := xmlio.Parse([]byte(`<when><time><h>1</h><m>2</m></time></when>`))
	var dt DateTime
	err := dt.ParseXML(nav)
	if !errors.Is(err, itemtypes.ErrElementMissing) {
		t.Errorf("err = %v; want ErrElementMissing", err)
	}
}

func TestApproximateDate_Precision(t *testing.T) {
	d, err := NewApproximateDate(1999)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.SetDay(4); err == nil {
		t.Error("day without month should be rejected")
	}
	if err := d.SetMonth(7); err != nil {
		t.Fatal(err)
	}
	if err := d.SetDay(4); err != nil {
		t.Fatal(err)
	}
	if d.String() != "1999-07-04" {
		t.Errorf("String() = %q", d.String())
	}

	nav := roundTrip(t, func(w *xmlio.Writer) error { return d.WriteXML(w, "date") })
	var got ApproximateDate
	if err := got.ParseXML(nav); err != nil {
		t.Fatal(err)
	}
	if got.String() != "1999-07-04" {
		t.Errorf("round trip = %q", got.String())
	}
}

func TestApproximateDate_YearOnly(t *testing.T) {
	d, _ := NewApproximateDate(1999)
	nav := roundTrip(t, func(w *xmlio.Writer) error { return d.WriteXML(w, "date") })
	if nav.SelectSingle("m") != nil || nav.SelectSingle("d") != nil {
		t.Error("year-only date must not write m or d")
	}
	var got ApproximateDate
	if err := got.ParseXML(nav); err != nil {
		t.Fatal(err)
	}
	if got.Month != nil || got.Day != nil {
		t.Errorf("year-only parse = %+v", got)
	}
}

func TestApproximateDateTime_Descriptive(t *testing.T) {
	a, err := NewDescriptiveDateTime("last spring")
	if err != nil {
		t.Fatal(err)
	}
	nav := roundTrip(t, func(w *xmlio.Writer) error { return a.WriteXML(w, "when") })

	var got ApproximateDateTime
	if err := got.ParseXML(nav); err != nil {
		t.Fatal(err)
	}
	if got.Structured != nil {
		t.Error("descriptive value parsed as structured")
	}
	if got.String() != "last spring" {
		t.Errorf("String() = %q", got.String())
	}
}

func TestApproximateDateTime_Structured(t *testing.T) {
	a, err := NewApproximateDateTime(2010)
	if err != nil {
		t.Fatal(err)
	}
	tod, _ := NewTime(8, 15)
	a.Structured.Time = tod

	nav := roundTrip(t, func(w *xmlio.Writer) error { return a.WriteXML(w, "when") })

	var got ApproximateDateTime
	if err := got.ParseXML(nav); err != nil {
		t.Fatal(err)
	}
	if got.Description != nil {
		t.Error("structured value parsed as descriptive")
	}
	if got.String() != "2010 08:15" {
		t.Errorf("String() = %q", got.String())
	}
}

func TestApproximateDateTime_WriteUnset(t *testing.T) {
	var a ApproximateDateTime
	w := xmlio.NewWriter()
	defer w.Close()
	if err := a.WriteXML(w, "when"); !errors.Is(err, itemtypes.ErrRequiredFieldUnset) {
		t.Errorf("err = %v; want ErrRequiredFieldUnset", err)
	}
}
