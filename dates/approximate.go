package dates

import (
	"fmt"
	"strconv"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/codable"
	"github.com/gohealth/itemtypes/xmlio"
)

// ApproximateDate is a date known to whatever precision the user could
// supply: a year, optionally a month, optionally a day.
type ApproximateDate struct {
	year  int
	Month *int
	Day   *int
}

// NewApproximateDate creates a year-precision date.
func NewApproximateDate(year int) (*ApproximateDate, error) {
	d := &ApproximateDate{}
	if err := d.SetYear(year); err != nil {
		return nil, err
	}
	return d, nil
}

// SetYear sets the required year component.
func (d *ApproximateDate) SetYear(year int) error {
	if year < 1 || year > 9999 {
		return itemtypes.NewValidationError("year", "must be between 1 and 9999")
	}
	d.year = year
	return nil
}

// SetMonth sets the optional month component.
func (d *ApproximateDate) SetMonth(month int) error {
	if month < 1 || month > 12 {
		return itemtypes.NewValidationError("month", "must be between 1 and 12")
	}
	d.Month = &month
	return nil
}

// SetDay sets the optional day component. A day without a month is
// rejected.
func (d *ApproximateDate) SetDay(day int) error {
	if d.Month == nil {
		return itemtypes.NewValidationError("day", "cannot be set without a month")
	}
	if day < 1 || day > 31 {
		return itemtypes.NewValidationError("day", "must be between 1 and 31")
	}
	d.Day = &day
	return nil
}

// Year returns the year component.
func (d *ApproximateDate) Year() int { return d.year }

// ParseXML populates the date from a <date> element.
func (d *ApproximateDate) ParseXML(nav *xmlio.Navigator) error {
	y, err := nav.Int("y")
	if err != nil {
		return itemtypes.WrapParseError("approx-date", "y", err)
	}
	if err := d.SetYear(y); err != nil {
		return err
	}
	d.Month, d.Day = nil, nil
	m, err := nav.OptInt("m")
	if err != nil {
		return itemtypes.WrapParseError("approx-date", "m", err)
	}
	if m != nil {
		if err := d.SetMonth(*m); err != nil {
			return err
		}
		day, err := nav.OptInt("d")
		if err != nil {
			return itemtypes.WrapParseError("approx-date", "d", err)
		}
		if day != nil {
			if err := d.SetDay(*day); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteXML emits the date under the given element name.
func (d *ApproximateDate) WriteXML(w *xmlio.Writer, name string) error {
	if d.year == 0 {
		return itemtypes.NewSerializationError(name, "Year")
	}
	w.StartElement(name)
	w.WriteInt("y", d.year)
	w.WriteOptInt("m", d.Month)
	if d.Month != nil {
		w.WriteOptInt("d", d.Day)
	}
	w.EndElement()
	return nil
}

// String formats the date to its known precision.
func (d *ApproximateDate) String() string {
	if d == nil || d.year == 0 {
		return ""
	}
	s := strconv.Itoa(d.year)
	if d.Month != nil {
		s = fmt.Sprintf("%04d-%02d", d.year, *d.Month)
		if d.Day != nil {
			s = fmt.Sprintf("%04d-%02d-%02d", d.year, *d.Month, *d.Day)
		}
	}
	return s
}

// ApproximateDateTime is either a structured approximate date (with
// optional time and zone) or a free-text description like "last spring".
// Exactly one of the two is set.
type ApproximateDateTime struct {
	// Structured holds the structured form. nil when Description is set.
	Structured *StructuredApproximateDateTime

	// Description holds the free-text form. nil when Structured is set.
	Description *string
}

// StructuredApproximateDateTime is the structured arm of
// ApproximateDateTime.
type StructuredApproximateDateTime struct {
	Date     ApproximateDate
	Time     *Time
	TimeZone *codable.CodableValue
}

// NewApproximateDateTime creates a structured value at year precision.
func NewApproximateDateTime(year int) (*ApproximateDateTime, error) {
	d, err := NewApproximateDate(year)
	if err != nil {
		return nil, err
	}
	return &ApproximateDateTime{
		Structured: &StructuredApproximateDateTime{Date: *d},
	}, nil
}

// NewDescriptiveDateTime creates a free-text value.
func NewDescriptiveDateTime(description string) (*ApproximateDateTime, error) {
	if description == "" {
		return nil, itemtypes.NewValidationError("description", "must not be empty")
	}
	return &ApproximateDateTime{Description: &description}, nil
}

// ParseXML populates the value from its named element.
func (a *ApproximateDateTime) ParseXML(nav *xmlio.Navigator) error {
	a.Structured, a.Description = nil, nil

	if s := nav.SelectSingle("structured"); s != nil {
		st := &StructuredApproximateDateTime{}
		dateNav := s.SelectSingle("date")
		if dateNav == nil {
			return itemtypes.NewParseError("structured", "date")
		}
		if err := st.Date.ParseXML(dateNav); err != nil {
			return err
		}
		if timeNav := s.SelectSingle("time"); timeNav != nil {
			tod := &Time{}
			if err := tod.ParseXML(timeNav); err != nil {
				return err
			}
			st.Time = tod
		}
		if tzNav := s.SelectSingle("tz"); tzNav != nil {
			tz := &codable.CodableValue{}
			if err := tz.ParseXML(tzNav); err != nil {
				return err
			}
			st.TimeZone = tz
		}
		a.Structured = st
		return nil
	}

	desc := nav.OptString("descriptive")
	if desc == nil {
		return itemtypes.NewParseError(nav.Name(), "structured")
	}
	a.Description = desc
	return nil
}

// WriteXML emits the value under the given element name.
func (a *ApproximateDateTime) WriteXML(w *xmlio.Writer, name string) error {
	if a.Structured == nil && a.Description == nil {
		return itemtypes.NewSerializationError(name, "Structured")
	}
	w.StartElement(name)
	if a.Structured != nil {
		w.StartElement("structured")
		if err := a.Structured.Date.WriteXML(w, "date"); err != nil {
			return err
		}
		if a.Structured.Time != nil {
			if err := a.Structured.Time.WriteXML(w, "time"); err != nil {
				return err
			}
		}
		if a.Structured.TimeZone != nil {
			if err := a.Structured.TimeZone.WriteXML(w, "tz"); err != nil {
				return err
			}
		}
		w.EndElement()
	} else {
		w.WriteString("descriptive", *a.Description)
	}
	w.EndElement()
	return nil
}

// String formats the value to its known precision.
func (a *ApproximateDateTime) String() string {
	if a == nil {
		return ""
	}
	if a.Description != nil {
		return *a.Description
	}
	if a.Structured != nil {
		s := a.Structured.Date.String()
		if a.Structured.Time != nil {
			s += " " + a.Structured.Time.String()
		}
		return s
	}
	return ""
}
