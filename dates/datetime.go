package dates

import (
	"time"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/codable"
	"github.com/gohealth/itemtypes/xmlio"
)

// DateTime is the platform's point-in-time value: a required structured
// date, an optional time of day, and an optional time zone.
type DateTime struct {
	Date     Date
	Time     *Time
	TimeZone *codable.CodableValue
}

// Now returns a DateTime for the current local time, to second
// precision.
func Now() *DateTime {
	return FromTime(time.Now())
}

// FromTime converts a time.Time to a DateTime, to second precision.
func FromTime(t time.Time) *DateTime {
	dt := &DateTime{}
	// Components of a valid time.Time are always in range
	_ = dt.Date.Set(t.Year(), int(t.Month()), t.Day())
	tod := &Time{}
	_ = tod.Set(t.Hour(), t.Minute())
	_ = tod.SetSecond(t.Second())
	dt.Time = tod
	return dt
}

// ToTime converts the DateTime to a time.Time in the local zone. Missing
// time components are zero.
func (dt *DateTime) ToTime() time.Time {
	h, m, s, ns := 0, 0, 0, 0
	if dt.Time != nil {
		h, m = dt.Time.Hour(), dt.Time.Minute()
		if dt.Time.Second != nil {
			s = *dt.Time.Second
		}
		if dt.Time.Millisecond != nil {
			ns = *dt.Time.Millisecond * int(time.Millisecond)
		}
	}
	return time.Date(dt.Date.Year(), time.Month(dt.Date.Month()), dt.Date.Day(), h, m, s, ns, time.Local)
}

// ParseXML populates the value from its named element.
func (dt *DateTime) ParseXML(nav *xmlio.Navigator) error {
	dateNav := nav.SelectSingle("date")
	if dateNav == nil {
		return itemtypes.NewParseError(nav.Name(), "date")
	}
	if err := dt.Date.ParseXML(dateNav); err != nil {
		return err
	}

	dt.Time = nil
	if timeNav := nav.SelectSingle("time"); timeNav != nil {
		tod := &Time{}
		if err := tod.ParseXML(timeNav); err != nil {
			return err
		}
		dt.Time = tod
	}

	dt.TimeZone = nil
	if tzNav := nav.SelectSingle("tz"); tzNav != nil {
		tz := &codable.CodableValue{}
		if err := tz.ParseXML(tzNav); err != nil {
			return err
		}
		dt.TimeZone = tz
	}
	return nil
}

// WriteXML emits the value under the given element name.
func (dt *DateTime) WriteXML(w *xmlio.Writer, name string) error {
	if dt.Date.Year() == 0 {
		return itemtypes.NewSerializationError(name, "Date")
	}
	w.StartElement(name)
	if err := dt.Date.WriteXML(w, "date"); err != nil {
		return err
	}
	if dt.Time != nil {
		if err := dt.Time.WriteXML(w, "time"); err != nil {
			return err
		}
	}
	if dt.TimeZone != nil {
		if err := dt.TimeZone.WriteXML(w, "tz"); err != nil {
			return err
		}
	}
	w.EndElement()
	return nil
}

// String formats the value as "YYYY-MM-DD HH:MM[:SS]".
func (dt *DateTime) String() string {
	if dt == nil {
		return ""
	}
	s := dt.Date.String()
	if dt.Time != nil {
		s += " " + dt.Time.String()
	}
	return s
}
