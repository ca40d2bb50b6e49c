// Package dates models the platform's structured date and time values.
//
// The wire format never uses ISO-8601 strings: dates are decomposed into
// y/m/d child elements and times into h/m/s/f, so that partially known
// values ("January 2005") survive round-trips. ApproximateDateTime adds a
// free-text alternative for values like "last spring".
package dates

import (
	"fmt"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/xmlio"
)

// Date is a fully specified calendar date.
type Date struct {
	year  int
	month int
	day   int
}

// NewDate creates a Date, validating each component.
func NewDate(year, month, day int) (*Date, error) {
	d := &Date{}
	if err := d.Set(year, month, day); err != nil {
		return nil, err
	}
	return d, nil
}

// Set replaces the date, validating each component.
func (d *Date) Set(year, month, day int) error {
	if year < 1 || year > 9999 {
		return itemtypes.NewValidationError("year", "must be between 1 and 9999")
	}
	if month < 1 || month > 12 {
		return itemtypes.NewValidationError("month", "must be between 1 and 12")
	}
	if day < 1 || day > 31 {
		return itemtypes.NewValidationError("day", "must be between 1 and 31")
	}
	d.year, d.month, d.day = year, month, day
	return nil
}

// Year returns the year component.
func (d *Date) Year() int { return d.year }

// Month returns the month component.
func (d *Date) Month() int { return d.month }

// Day returns the day component.
func (d *Date) Day() int { return d.day }

// ParseXML populates the date from a <date> element.
func (d *Date) ParseXML(nav *xmlio.Navigator) error {
	y, err := nav.Int("y")
	if err != nil {
		return itemtypes.WrapParseError("date", "y", err)
	}
	m, err := nav.Int("m")
	if err != nil {
		return itemtypes.WrapParseError("date", "m", err)
	}
	day, err := nav.Int("d")
	if err != nil {
		return itemtypes.WrapParseError("date", "d", err)
	}
	return d.Set(y, m, day)
}

// WriteXML emits the date under the given element name.
func (d *Date) WriteXML(w *xmlio.Writer, name string) error {
	if d.year == 0 {
		return itemtypes.NewSerializationError(name, "Year")
	}
	w.StartElement(name)
	w.WriteInt("y", d.year)
	w.WriteInt("m", d.month)
	w.WriteInt("d", d.day)
	w.EndElement()
	return nil
}

// String formats the date as YYYY-MM-DD.
func (d *Date) String() string {
	if d == nil || d.year == 0 {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

// Time is a time of day. Seconds and milliseconds are optional.
type Time struct {
	hour        int
	minute      int
	Second      *int
	Millisecond *int
}

// NewTime creates a Time, validating each component.
func NewTime(hour, minute int) (*Time, error) {
	t := &Time{}
	if err := t.Set(hour, minute); err != nil {
		return nil, err
	}
	return t, nil
}

// Set replaces the hour and minute, validating both.
func (t *Time) Set(hour, minute int) error {
	if hour < 0 || hour > 23 {
		return itemtypes.NewValidationError("hour", "must be between 0 and 23")
	}
	if minute < 0 || minute > 59 {
		return itemtypes.NewValidationError("minute", "must be between 0 and 59")
	}
	t.hour, t.minute = hour, minute
	return nil
}

// SetSecond sets the optional seconds component.
func (t *Time) SetSecond(second int) error {
	if second < 0 || second > 59 {
		return itemtypes.NewValidationError("second", "must be between 0 and 59")
	}
	t.Second = &second
	return nil
}

// SetMillisecond sets the optional milliseconds component.
func (t *Time) SetMillisecond(ms int) error {
	if ms < 0 || ms > 999 {
		return itemtypes.NewValidationError("millisecond", "must be between 0 and 999")
	}
	t.Millisecond = &ms
	return nil
}

// Hour returns the hour component.
func (t *Time) Hour() int { return t.hour }

// Minute returns the minute component.
func (t *Time) Minute() int { return t.minute }

// ParseXML populates the time from a <time> element.
func (t *Time) ParseXML(nav *xmlio.Navigator) error {
	h, err := nav.Int("h")
	if err != nil {
		return itemtypes.WrapParseError("time", "h", err)
	}
	m, err := nav.Int("m")
	if err != nil {
		return itemtypes.WrapParseError("time", "m", err)
	}
	if err := t.Set(h, m); err != nil {
		return err
	}
	s, err := nav.OptInt("s")
	if err != nil {
		return itemtypes.WrapParseError("time", "s", err)
	}
	if s != nil {
		if err := t.SetSecond(*s); err != nil {
			return err
		}
	} else {
		t.Second = nil
	}
	f, err := nav.OptInt("f")
	if err != nil {
		return itemtypes.WrapParseError("time", "f", err)
	}
	if f != nil {
		if err := t.SetMillisecond(*f); err != nil {
			return err
		}
	} else {
		t.Millisecond = nil
	}
	return nil
}

// WriteXML emits the time under the given element name.
func (t *Time) WriteXML(w *xmlio.Writer, name string) error {
	w.StartElement(name)
	w.WriteInt("h", t.hour)
	w.WriteInt("m", t.minute)
	w.WriteOptInt("s", t.Second)
	w.WriteOptInt("f", t.Millisecond)
	w.EndElement()
	return nil
}

// String formats the time as HH:MM[:SS].
func (t *Time) String() string {
	if t == nil {
		return ""
	}
	if t.Second != nil {
		return fmt.Sprintf("%02d:%02d:%02d", t.hour, t.minute, *t.Second)
	}
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}
