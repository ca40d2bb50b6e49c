package dates

import (
	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/xmlio"
)

// DurationValue is a span of time bounded by approximate dates: a
// required start and an optional end.
type DurationValue struct {
	StartDate ApproximateDateTime
	EndDate   *ApproximateDateTime
}

// NewDurationValue creates a duration starting at the given value.
func NewDurationValue(start ApproximateDateTime) (*DurationValue, error) {
	if start.Structured == nil && start.Description == nil {
		return nil, itemtypes.NewValidationError("startDate", "must be set")
	}
	return &DurationValue{StartDate: start}, nil
}

// ParseXML populates the duration from its named element.
func (d *DurationValue) ParseXML(nav *xmlio.Navigator) error {
	startNav := nav.SelectSingle("start-date")
	if startNav == nil {
		return itemtypes.NewParseError(nav.Name(), "start-date")
	}
	if err := d.StartDate.ParseXML(startNav); err != nil {
		return err
	}
	d.EndDate = nil
	if endNav := nav.SelectSingle("end-date"); endNav != nil {
		end := &ApproximateDateTime{}
		if err := end.ParseXML(endNav); err != nil {
			return err
		}
		d.EndDate = end
	}
	return nil
}

// WriteXML emits the duration under the given element name.
func (d *DurationValue) WriteXML(w *xmlio.Writer, name string) error {
	if d.StartDate.Structured == nil && d.StartDate.Description == nil {
		return itemtypes.NewSerializationError(name, "StartDate")
	}
	w.StartElement(name)
	if err := d.StartDate.WriteXML(w, "start-date"); err != nil {
		return err
	}
	if d.EndDate != nil {
		if err := d.EndDate.WriteXML(w, "end-date"); err != nil {
			return err
		}
	}
	w.EndElement()
	return nil
}

// String formats the duration as "start - end" or just the start.
func (d *DurationValue) String() string {
	if d == nil {
		return ""
	}
	s := d.StartDate.String()
	if d.EndDate != nil {
		s += " - " + d.EndDate.String()
	}
	return s
}
