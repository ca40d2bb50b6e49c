package types

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/codable"
	"github.com/gohealth/itemtypes/dates"
	"github.com/gohealth/itemtypes/measurement"
	"github.com/gohealth/itemtypes/xmlio"
)

// LabTestResultsTypeID identifies laboratory test results.
var LabTestResultsTypeID = uuid.MustParse("5800eab5-a8c2-482a-a4d6-f1db25ae08c3")

// LabTestResults carries one or more groups of laboratory test results,
// for example everything that came back from a single blood draw.
type LabTestResults struct {
	// When the results were issued. Optional.
	When *dates.ApproximateDateTime

	// Groups holds the result groups. At least one is required.
	Groups []LabTestResultsGroup

	// OrderedBy identifies who ordered the tests. Optional.
	OrderedBy *PersonItem
}

// LabTestResultsGroup is a named set of results, possibly with nested
// sub-groups.
type LabTestResultsGroup struct {
	// GroupName names the group, for example Complete Blood Count.
	// Required.
	GroupName codable.CodableValue

	// LaboratoryName identifies the issuing laboratory. Optional.
	LaboratoryName *codable.CodableValue

	// Status of the group, for example Complete or Pending. Optional.
	Status *codable.CodableValue

	// SubGroups nests further groups under this one.
	SubGroups []LabTestResultsGroup

	// Results holds the individual test results in the group.
	Results []LabTestResultsDetails
}

// LabTestResultsDetails is a single laboratory test result.
type LabTestResultsDetails struct {
	// When the sample was taken. Optional.
	When *dates.ApproximateDateTime

	// Name of the test. Optional.
	Name *string

	// Substance that was tested, for example Blood. Optional.
	Substance *codable.CodableValue

	// CollectionMethod describes how the sample was collected. Optional.
	CollectionMethod *codable.CodableValue

	// ClinicalCode is the coded test identifier, for example a LOINC
	// code. Optional.
	ClinicalCode *codable.CodableValue

	// Value is the test outcome. Optional.
	Value *LabTestResultValue

	// Status of the result. Optional.
	Status *codable.CodableValue
}

// LabTestResultValue is a test outcome with its reference ranges and
// interpretation flags.
type LabTestResultValue struct {
	// Measurement is the measured value. Required.
	Measurement measurement.GeneralMeasurement

	// Ranges holds the applicable reference ranges.
	Ranges []TestResultRange

	// Flags holds interpretations, for example High or Low.
	Flags []codable.CodableValue
}

// TestResultRange is a reference range for a test result.
type TestResultRange struct {
	// Type of the range, for example Normal or Therapeutic. Required.
	Type codable.CodableValue

	// Text is the range as reported by the laboratory. Required.
	Text codable.CodableValue

	// Minimum bound of the range. Optional.
	Minimum *decimal.Decimal

	// Maximum bound of the range. Optional.
	Maximum *decimal.Decimal
}

// NewLabTestResults creates results holding the given groups.
func NewLabTestResults(groups ...LabTestResultsGroup) (*LabTestResults, error) {
	if len(groups) == 0 {
		return nil, itemtypes.NewValidationError("Groups", "at least one group is required")
	}
	return &LabTestResults{Groups: groups}, nil
}

// TypeID implements itemtypes.TypeData.
func (l *LabTestResults) TypeID() uuid.UUID { return LabTestResultsTypeID }

// TypeName implements itemtypes.TypeData.
func (l *LabTestResults) TypeName() string { return "lab-test-results" }

// ParseXML populates the results from a <lab-test-results> element.
func (l *LabTestResults) ParseXML(nav *xmlio.Navigator) error {
	root, err := selectRoot(nav, "lab-test-results")
	if err != nil {
		return err
	}
	if l.When, err = parseOptApproxDateTime(root, "when"); err != nil {
		return err
	}
	groups := root.Select("lab-group")
	if len(groups) == 0 {
		return itemtypes.NewParseError("lab-test-results", "lab-group")
	}
	l.Groups = l.Groups[:0]
	for _, g := range groups {
		var group LabTestResultsGroup
		if err := group.parseXML(g); err != nil {
			return err
		}
		l.Groups = append(l.Groups, group)
	}
	l.OrderedBy, err = parseOptPerson(root, "ordered-by")
	return err
}

// WriteXML emits the <lab-test-results> element.
func (l *LabTestResults) WriteXML(w *xmlio.Writer) error {
	if len(l.Groups) == 0 {
		return itemtypes.NewSerializationError("lab-test-results", "Groups")
	}
	for i := range l.Groups {
		if err := l.Groups[i].check(); err != nil {
			return err
		}
	}
	w.StartElement("lab-test-results")
	if l.When != nil {
		if err := l.When.WriteXML(w, "when"); err != nil {
			return err
		}
	}
	for i := range l.Groups {
		if err := l.Groups[i].writeXML(w, "lab-group"); err != nil {
			return err
		}
	}
	if err := writeOptPerson(w, "ordered-by", l.OrderedBy); err != nil {
		return err
	}
	w.EndElement()
	return nil
}

// String summarizes the results.
func (l *LabTestResults) String() string {
	if len(l.Groups) == 0 {
		return ""
	}
	return l.Groups[0].GroupName.String()
}

// check verifies mandatory fields across the whole group tree before
// any output happens.
func (g *LabTestResultsGroup) check() error {
	if g.GroupName.Text == "" {
		return itemtypes.NewSerializationError("lab-test-results", "GroupName")
	}
	for i := range g.SubGroups {
		if err := g.SubGroups[i].check(); err != nil {
			return err
		}
	}
	for i := range g.Results {
		if v := g.Results[i].Value; v != nil {
			if v.Measurement.Display == "" {
				return itemtypes.NewSerializationError("lab-test-results", "Value.Measurement")
			}
			for j := range v.Ranges {
				if v.Ranges[j].Type.Text == "" {
					return itemtypes.NewSerializationError("lab-test-results", "Range.Type")
				}
				if v.Ranges[j].Text.Text == "" {
					return itemtypes.NewSerializationError("lab-test-results", "Range.Text")
				}
			}
		}
	}
	return nil
}

func (g *LabTestResultsGroup) parseXML(nav *xmlio.Navigator) error {
	if err := parseReqCodable(nav, "lab-test-results", "group-name", &g.GroupName); err != nil {
		return err
	}
	var err error
	if g.LaboratoryName, err = parseOptCodable(nav, "laboratory-name"); err != nil {
		return err
	}
	if g.Status, err = parseOptCodable(nav, "status"); err != nil {
		return err
	}
	g.SubGroups = nil
	for _, c := range nav.Select("sub-groups") {
		var sub LabTestResultsGroup
		if err := sub.parseXML(c); err != nil {
			return err
		}
		g.SubGroups = append(g.SubGroups, sub)
	}
	g.Results = nil
	for _, c := range nav.Select("results") {
		var det LabTestResultsDetails
		if err := det.parseXML(c); err != nil {
			return err
		}
		g.Results = append(g.Results, det)
	}
	return nil
}

func (g *LabTestResultsGroup) writeXML(w *xmlio.Writer, name string) error {
	w.StartElement(name)
	if err := g.GroupName.WriteXML(w, "group-name"); err != nil {
		return err
	}
	if err := writeOptCodable(w, "laboratory-name", g.LaboratoryName); err != nil {
		return err
	}
	if err := writeOptCodable(w, "status", g.Status); err != nil {
		return err
	}
	for i := range g.SubGroups {
		if err := g.SubGroups[i].writeXML(w, "sub-groups"); err != nil {
			return err
		}
	}
	for i := range g.Results {
		if err := g.Results[i].writeXML(w); err != nil {
			return err
		}
	}
	w.EndElement()
	return nil
}

func (d *LabTestResultsDetails) parseXML(nav *xmlio.Navigator) error {
	var err error
	if d.When, err = parseOptApproxDateTime(nav, "when"); err != nil {
		return err
	}
	d.Name = nav.OptString("name")
	if d.Substance, err = parseOptCodable(nav, "substance"); err != nil {
		return err
	}
	if d.CollectionMethod, err = parseOptCodable(nav, "collection-method"); err != nil {
		return err
	}
	if d.ClinicalCode, err = parseOptCodable(nav, "clinical-code"); err != nil {
		return err
	}
	d.Value = nil
	if c := nav.SelectSingle("value"); c != nil {
		v := &LabTestResultValue{}
		if err := v.parseXML(c); err != nil {
			return err
		}
		d.Value = v
	}
	d.Status, err = parseOptCodable(nav, "status")
	return err
}

func (d *LabTestResultsDetails) writeXML(w *xmlio.Writer) error {
	w.StartElement("results")
	if d.When != nil {
		if err := d.When.WriteXML(w, "when"); err != nil {
			return err
		}
	}
	w.WriteOptString("name", d.Name)
	if err := writeOptCodable(w, "substance", d.Substance); err != nil {
		return err
	}
	if err := writeOptCodable(w, "collection-method", d.CollectionMethod); err != nil {
		return err
	}
	if err := writeOptCodable(w, "clinical-code", d.ClinicalCode); err != nil {
		return err
	}
	if d.Value != nil {
		if err := d.Value.writeXML(w); err != nil {
			return err
		}
	}
	if err := writeOptCodable(w, "status", d.Status); err != nil {
		return err
	}
	w.EndElement()
	return nil
}

func (v *LabTestResultValue) parseXML(nav *xmlio.Navigator) error {
	m := nav.SelectSingle("measurement")
	if m == nil {
		return itemtypes.NewParseError("lab-test-results", "measurement")
	}
	if err := v.Measurement.ParseXML(m); err != nil {
		return err
	}
	v.Ranges = nil
	for _, c := range nav.Select("ranges") {
		var r TestResultRange
		if err := r.parseXML(c); err != nil {
			return err
		}
		v.Ranges = append(v.Ranges, r)
	}
	v.Flags = nil
	for _, c := range nav.Select("flag") {
		var f codable.CodableValue
		if err := f.ParseXML(c); err != nil {
			return err
		}
		v.Flags = append(v.Flags, f)
	}
	return nil
}

func (v *LabTestResultValue) writeXML(w *xmlio.Writer) error {
	w.StartElement("value")
	if err := v.Measurement.WriteXML(w, "measurement"); err != nil {
		return err
	}
	for i := range v.Ranges {
		if err := v.Ranges[i].writeXML(w); err != nil {
			return err
		}
	}
	for i := range v.Flags {
		if err := v.Flags[i].WriteXML(w, "flag"); err != nil {
			return err
		}
	}
	w.EndElement()
	return nil
}

func (r *TestResultRange) parseXML(nav *xmlio.Navigator) error {
	if err := parseReqCodable(nav, "lab-test-results", "type", &r.Type); err != nil {
		return err
	}
	if err := parseReqCodable(nav, "lab-test-results", "text", &r.Text); err != nil {
		return err
	}
	var err error
	if r.Minimum, err = nav.OptDecimal("minimum-range"); err != nil {
		return err
	}
	r.Maximum, err = nav.OptDecimal("maximum-range")
	return err
}

func (r *TestResultRange) writeXML(w *xmlio.Writer) error {
	w.StartElement("ranges")
	if err := r.Type.WriteXML(w, "type"); err != nil {
		return err
	}
	if err := r.Text.WriteXML(w, "text"); err != nil {
		return err
	}
	w.WriteOptDecimal("minimum-range", r.Minimum)
	w.WriteOptDecimal("maximum-range", r.Maximum)
	w.EndElement()
	return nil
}
