package types

import (
	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/codable"
	"github.com/gohealth/itemtypes/dates"
	"github.com/gohealth/itemtypes/measurement"
	"github.com/gohealth/itemtypes/xmlio"
)

// selectRoot resolves the type's root element: nav itself when it is
// already the named element, otherwise the single named child. A missing
// root is a hard parse failure.
func selectRoot(nav *xmlio.Navigator, name string) (*xmlio.Navigator, error) {
	if nav.Name() == name {
		return nav, nil
	}
	if c := nav.SelectSingle(name); c != nil {
		return c, nil
	}
	return nil, itemtypes.NewParseError(name, name)
}

// parseOptCodable reads an optional codable value child.
func parseOptCodable(nav *xmlio.Navigator, name string) (*codable.CodableValue, error) {
	c := nav.SelectSingle(name)
	if c == nil {
		return nil, nil
	}
	cv := &codable.CodableValue{}
	if err := cv.ParseXML(c); err != nil {
		return nil, err
	}
	return cv, nil
}

// writeOptCodable writes an optional codable value child.
func writeOptCodable(w *xmlio.Writer, name string, cv *codable.CodableValue) error {
	if cv == nil {
		return nil
	}
	return cv.WriteXML(w, name)
}

// parseOptGeneral reads an optional general measurement child.
func parseOptGeneral(nav *xmlio.Navigator, name string) (*measurement.GeneralMeasurement, error) {
	c := nav.SelectSingle(name)
	if c == nil {
		return nil, nil
	}
	g := &measurement.GeneralMeasurement{}
	if err := g.ParseXML(c); err != nil {
		return nil, err
	}
	return g, nil
}

// writeOptGeneral writes an optional general measurement child.
func writeOptGeneral(w *xmlio.Writer, name string, g *measurement.GeneralMeasurement) error {
	if g == nil {
		return nil
	}
	return g.WriteXML(w, name)
}

// parseOptDateTime reads an optional structured date-time child.
func parseOptDateTime(nav *xmlio.Navigator, name string) (*dates.DateTime, error) {
	c := nav.SelectSingle(name)
	if c == nil {
		return nil, nil
	}
	dt := &dates.DateTime{}
	if err := dt.ParseXML(c); err != nil {
		return nil, err
	}
	return dt, nil
}

// parseOptApproxDateTime reads an optional approximate date-time child.
func parseOptApproxDateTime(nav *xmlio.Navigator, name string) (*dates.ApproximateDateTime, error) {
	c := nav.SelectSingle(name)
	if c == nil {
		return nil, nil
	}
	a := &dates.ApproximateDateTime{}
	if err := a.ParseXML(c); err != nil {
		return nil, err
	}
	return a, nil
}

// parseReqApproxDateTime reads a required approximate date-time child.
func parseReqApproxDateTime(nav *xmlio.Navigator, typeName, name string, into *dates.ApproximateDateTime) error {
	c := nav.SelectSingle(name)
	if c == nil {
		return itemtypes.NewParseError(typeName, name)
	}
	return into.ParseXML(c)
}

// parseReqCodable reads a required codable value child.
func parseReqCodable(nav *xmlio.Navigator, typeName, name string, into *codable.CodableValue) error {
	c := nav.SelectSingle(name)
	if c == nil {
		return itemtypes.NewParseError(typeName, name)
	}
	return into.ParseXML(c)
}

// parseReqDateTime reads a required structured date-time child.
func parseReqDateTime(nav *xmlio.Navigator, typeName, name string, into *dates.DateTime) error {
	c := nav.SelectSingle(name)
	if c == nil {
		return itemtypes.NewParseError(typeName, name)
	}
	return into.ParseXML(c)
}
