package types

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/codable"
	"github.com/gohealth/itemtypes/dates"
	"github.com/gohealth/itemtypes/xmlio"
)

// CarePlanTypeID identifies care plans.
var CarePlanTypeID = uuid.MustParse("415c95e0-0533-4d9c-ac73-91dc5031186c")

// CarePlan describes a plan of care: its manager, care team, and the
// goals the plan works toward.
type CarePlan struct {
	// Name of the plan. Required.
	Name string

	// Status of the plan, for example Active or Completed. Optional.
	Status *codable.CodableValue

	// StartDate of the plan. Optional.
	StartDate *dates.ApproximateDateTime

	// EndDate of the plan. Optional.
	EndDate *dates.ApproximateDateTime

	// CarePlanManager is the person responsible for the plan. Optional.
	CarePlanManager *PersonItem

	// CareTeam lists the people involved in carrying out the plan.
	CareTeam []PersonItem

	// Goals lists the plan's goals.
	Goals []CarePlanGoal
}

// CarePlanGoal is one goal within a care plan.
type CarePlanGoal struct {
	// Name of the goal. Required.
	Name codable.CodableValue

	// Description of the goal. Optional.
	Description *string

	// StartDate of work toward the goal. Optional.
	StartDate *dates.ApproximateDateTime

	// EndDate of work toward the goal. Optional.
	EndDate *dates.ApproximateDateTime

	// TargetCompletionDate is when the goal should be reached. Optional.
	TargetCompletionDate *dates.ApproximateDateTime

	// TargetRange is the value range that counts as meeting the goal.
	// Optional.
	TargetRange *CarePlanGoalRange

	// ReferenceID correlates the goal with an external system. Optional.
	ReferenceID *string
}

// CarePlanGoalRange is the target value range of a goal.
type CarePlanGoalRange struct {
	// statusIndicator orders ranges by severity; zero is the most
	// desirable band.
	statusIndicator int

	// Minimum bound of the range. Optional.
	Minimum *decimal.Decimal

	// Maximum bound of the range. Optional.
	Maximum *decimal.Decimal
}

// StatusIndicator returns the range's severity order.
func (r *CarePlanGoalRange) StatusIndicator() int { return r.statusIndicator }

// SetStatusIndicator sets the range's severity order. The indicator
// must not be negative.
func (r *CarePlanGoalRange) SetStatusIndicator(v int) error {
	if v < 0 {
		return itemtypes.NewValidationError("StatusIndicator", "must not be negative")
	}
	r.statusIndicator = v
	return nil
}

func (r *CarePlanGoalRange) parseXML(nav *xmlio.Navigator) error {
	ind, err := nav.Int("status-indicator")
	if err != nil {
		return itemtypes.WrapParseError("care-plan", "status-indicator", err)
	}
	if err := r.SetStatusIndicator(ind); err != nil {
		return err
	}
	if r.Minimum, err = nav.OptDecimal("minimum"); err != nil {
		return err
	}
	r.Maximum, err = nav.OptDecimal("maximum")
	return err
}

func (r *CarePlanGoalRange) writeXML(w *xmlio.Writer, name string) error {
	w.StartElement(name)
	w.WriteInt("status-indicator", r.statusIndicator)
	w.WriteOptDecimal("minimum", r.Minimum)
	w.WriteOptDecimal("maximum", r.Maximum)
	w.EndElement()
	return nil
}

// NewCarePlan creates a care plan with the given name.
func NewCarePlan(name string) (*CarePlan, error) {
	if name == "" {
		return nil, itemtypes.NewValidationError("Name", "must not be empty")
	}
	return &CarePlan{Name: name}, nil
}

// AddGoal appends a goal to the plan.
func (cp *CarePlan) AddGoal(goal CarePlanGoal) error {
	if goal.Name.Text == "" {
		return itemtypes.NewValidationError("Goals.Name", "must not be empty")
	}
	cp.Goals = append(cp.Goals, goal)
	return nil
}

// TypeID implements itemtypes.TypeData.
func (cp *CarePlan) TypeID() uuid.UUID { return CarePlanTypeID }

// TypeName implements itemtypes.TypeData.
func (cp *CarePlan) TypeName() string { return "care-plan" }

// ParseXML populates the plan from a <care-plan> element.
func (cp *CarePlan) ParseXML(nav *xmlio.Navigator) error {
	root, err := selectRoot(nav, "care-plan")
	if err != nil {
		return err
	}
	name, err := root.String("name")
	if err != nil {
		return itemtypes.NewParseError("care-plan", "name")
	}
	cp.Name = name
	if cp.Status, err = parseOptCodable(root, "status"); err != nil {
		return err
	}
	if cp.StartDate, err = parseOptApproxDateTime(root, "start-date"); err != nil {
		return err
	}
	if cp.EndDate, err = parseOptApproxDateTime(root, "end-date"); err != nil {
		return err
	}
	if cp.CarePlanManager, err = parseOptPerson(root, "care-plan-manager"); err != nil {
		return err
	}
	cp.CareTeam = nil
	for _, c := range root.Select("care-team") {
		var p PersonItem
		if err := p.ParseXML(c); err != nil {
			return err
		}
		cp.CareTeam = append(cp.CareTeam, p)
	}
	cp.Goals = nil
	for _, c := range root.Select("goal") {
		var g CarePlanGoal
		if err := g.parseXML(c); err != nil {
			return err
		}
		cp.Goals = append(cp.Goals, g)
	}
	return nil
}

// WriteXML emits the <care-plan> element.
func (cp *CarePlan) WriteXML(w *xmlio.Writer) error {
	if cp.Name == "" {
		return itemtypes.NewSerializationError("care-plan", "Name")
	}
	for i := range cp.Goals {
		if cp.Goals[i].Name.Text == "" {
			return itemtypes.NewSerializationError("care-plan", "Goals.Name")
		}
	}
	w.StartElement("care-plan")
	w.WriteString("name", cp.Name)
	if err := writeOptCodable(w, "status", cp.Status); err != nil {
		return err
	}
	if cp.StartDate != nil {
		if err := cp.StartDate.WriteXML(w, "start-date"); err != nil {
			return err
		}
	}
	if cp.EndDate != nil {
		if err := cp.EndDate.WriteXML(w, "end-date"); err != nil {
			return err
		}
	}
	if err := writeOptPerson(w, "care-plan-manager", cp.CarePlanManager); err != nil {
		return err
	}
	for i := range cp.CareTeam {
		if err := cp.CareTeam[i].WriteXML(w, "care-team"); err != nil {
			return err
		}
	}
	for i := range cp.Goals {
		if err := cp.Goals[i].writeXML(w); err != nil {
			return err
		}
	}
	w.EndElement()
	return nil
}

// String returns the plan name.
func (cp *CarePlan) String() string { return cp.Name }

func (g *CarePlanGoal) parseXML(nav *xmlio.Navigator) error {
	if err := parseReqCodable(nav, "care-plan", "name", &g.Name); err != nil {
		return err
	}
	g.Description = nav.OptString("description")
	var err error
	if g.StartDate, err = parseOptApproxDateTime(nav, "start-date"); err != nil {
		return err
	}
	if g.EndDate, err = parseOptApproxDateTime(nav, "end-date"); err != nil {
		return err
	}
	if g.TargetCompletionDate, err = parseOptApproxDateTime(nav, "target-completion-date"); err != nil {
		return err
	}
	g.TargetRange = nil
	if c := nav.SelectSingle("target-range"); c != nil {
		r := &CarePlanGoalRange{}
		if err := r.parseXML(c); err != nil {
			return err
		}
		g.TargetRange = r
	}
	g.ReferenceID = nav.OptString("reference-id")
	return nil
}

func (g *CarePlanGoal) writeXML(w *xmlio.Writer) error {
	w.StartElement("goal")
	if err := g.Name.WriteXML(w, "name"); err != nil {
		return err
	}
	w.WriteOptString("description", g.Description)
	if g.StartDate != nil {
		if err := g.StartDate.WriteXML(w, "start-date"); err != nil {
			return err
		}
	}
	if g.EndDate != nil {
		if err := g.EndDate.WriteXML(w, "end-date"); err != nil {
			return err
		}
	}
	if g.TargetCompletionDate != nil {
		if err := g.TargetCompletionDate.WriteXML(w, "target-completion-date"); err != nil {
			return err
		}
	}
	if g.TargetRange != nil {
		if err := g.TargetRange.writeXML(w, "target-range"); err != nil {
			return err
		}
	}
	w.WriteOptString("reference-id", g.ReferenceID)
	w.EndElement()
	return nil
}
