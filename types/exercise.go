package types

import (
	"sort"

	"github.com/google/uuid"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/codable"
	"github.com/gohealth/itemtypes/dates"
	"github.com/gohealth/itemtypes/measurement"
	"github.com/gohealth/itemtypes/pool"
	"github.com/gohealth/itemtypes/xmlio"
)

// ExerciseTypeID identifies exercise sessions.
var ExerciseTypeID = uuid.MustParse("85a21ddb-db20-4c65-8d30-33c899ccf612")

// Exercise records a single exercise session such as a run or a swim.
type Exercise struct {
	// When the session took place. Required.
	When dates.ApproximateDateTime

	// Activity performed, for example Running or Swimming. Required.
	Activity codable.CodableValue

	// Title is a free-text name for the session. Optional.
	Title *string

	// Distance covered during the session. Optional.
	Distance *measurement.Length

	// Duration of the session in minutes. Optional; must be positive
	// when present.
	duration *float64

	// Details carries named measurements about the session, such as
	// average heart rate, keyed by detail name.
	Details map[string]ExerciseDetail

	// Segments splits the session into consecutive parts.
	Segments []ExerciseSegment
}

// ExerciseDetail is one named measurement about an exercise session.
type ExerciseDetail struct {
	// Name of the detail, drawn from the exercise-detail-names vocabulary.
	Name codable.CodedValue

	// Value of the detail. Required.
	Value measurement.StructuredMeasurement
}

// ExerciseSegment is one part of a session, with its own activity and
// optional details.
type ExerciseSegment struct {
	// Activity performed during the segment. Required.
	Activity codable.CodableValue

	// Title is a free-text name for the segment. Optional.
	Title *string

	// Distance covered during the segment. Optional.
	Distance *measurement.Length

	// Duration of the segment in minutes. Optional.
	Duration *float64

	// Offset of the segment start from the session start, in seconds.
	// Optional.
	Offset *float64

	// Details carries named measurements about the segment.
	Details map[string]ExerciseDetail
}

// NewExercise creates an Exercise for the given activity taking place in
// the given year.
func NewExercise(activity codable.CodableValue, year int) (*Exercise, error) {
	when, err := dates.NewApproximateDateTime(year)
	if err != nil {
		return nil, err
	}
	return &Exercise{When: *when, Activity: activity}, nil
}

// Duration returns the session duration in minutes, or nil when unset.
func (e *Exercise) Duration() *float64 { return e.duration }

// SetDuration sets the session duration in minutes. The duration must be
// positive.
func (e *Exercise) SetDuration(minutes float64) error {
	if minutes <= 0 {
		return itemtypes.NewValidationError("Duration", "must be positive")
	}
	e.duration = &minutes
	return nil
}

// ClearDuration removes the session duration.
func (e *Exercise) ClearDuration() { e.duration = nil }

// TypeID implements itemtypes.TypeData.
func (e *Exercise) TypeID() uuid.UUID { return ExerciseTypeID }

// TypeName implements itemtypes.TypeData.
func (e *Exercise) TypeName() string { return "exercise" }

// ParseXML populates the exercise from an <exercise> element.
func (e *Exercise) ParseXML(nav *xmlio.Navigator) error {
	root, err := selectRoot(nav, "exercise")
	if err != nil {
		return err
	}
	if err := parseReqApproxDateTime(root, "exercise", "when", &e.When); err != nil {
		return err
	}
	if err := parseReqCodable(root, "exercise", "activity", &e.Activity); err != nil {
		return err
	}
	e.Title = root.OptString("title")
	if c := root.SelectSingle("distance"); c != nil {
		d := &measurement.Length{}
		if err := d.ParseXML(c); err != nil {
			return err
		}
		e.Distance = d
	} else {
		e.Distance = nil
	}
	dur, err := root.OptDouble("duration")
	if err != nil {
		return err
	}
	e.duration = nil
	if dur != nil {
		if err := e.SetDuration(*dur); err != nil {
			return err
		}
	}
	if e.Details, err = parseExerciseDetails(root); err != nil {
		return err
	}
	e.Segments = nil
	for _, c := range root.Select("segment") {
		var seg ExerciseSegment
		if err := seg.parseXML(c); err != nil {
			return err
		}
		e.Segments = append(e.Segments, seg)
	}
	return nil
}

// WriteXML emits the <exercise> element.
func (e *Exercise) WriteXML(w *xmlio.Writer) error {
	if e.When.Structured == nil && e.When.Description == nil {
		return itemtypes.NewSerializationError("exercise", "When")
	}
	if e.Activity.Text == "" {
		return itemtypes.NewSerializationError("exercise", "Activity")
	}
	w.StartElement("exercise")
	if err := e.When.WriteXML(w, "when"); err != nil {
		return err
	}
	if err := e.Activity.WriteXML(w, "activity"); err != nil {
		return err
	}
	w.WriteOptString("title", e.Title)
	if e.Distance != nil {
		if err := e.Distance.WriteXML(w, "distance"); err != nil {
			return err
		}
	}
	w.WriteOptDouble("duration", e.duration)
	if err := writeExerciseDetails(w, e.Details); err != nil {
		return err
	}
	for i := range e.Segments {
		if err := e.Segments[i].writeXML(w); err != nil {
			return err
		}
	}
	w.EndElement()
	return nil
}

// String summarizes the exercise.
func (e *Exercise) String() string {
	if e.Title != nil {
		return *e.Title
	}
	return e.Activity.String()
}

func (d *ExerciseDetail) parseXML(nav *xmlio.Navigator) (string, error) {
	c := nav.SelectSingle("name")
	if c == nil {
		return "", itemtypes.NewParseError("exercise", "name")
	}
	if err := d.Name.ParseXML(c); err != nil {
		return "", err
	}
	v := nav.SelectSingle("value")
	if v == nil {
		return "", itemtypes.NewParseError("exercise", "value")
	}
	if err := d.Value.ParseXML(v); err != nil {
		return "", err
	}
	return d.Name.Value, nil
}

func (d *ExerciseDetail) writeXML(w *xmlio.Writer) error {
	w.StartElement("detail")
	if err := d.Name.WriteXML(w, "name"); err != nil {
		return err
	}
	if err := d.Value.WriteXML(w, "value"); err != nil {
		return err
	}
	w.EndElement()
	return nil
}

func parseExerciseDetails(nav *xmlio.Navigator) (map[string]ExerciseDetail, error) {
	nodes := nav.Select("detail")
	if len(nodes) == 0 {
		return nil, nil
	}
	out := make(map[string]ExerciseDetail, len(nodes))
	for _, c := range nodes {
		var d ExerciseDetail
		key, err := d.parseXML(c)
		if err != nil {
			return nil, err
		}
		out[key] = d
	}
	return out, nil
}

func writeExerciseDetails(w *xmlio.Writer, details map[string]ExerciseDetail) error {
	keys := pool.AcquireStringSlice()
	defer pool.ReleaseStringSlice(keys)
	for k := range details {
		*keys = append(*keys, k)
	}
	sort.Strings(*keys)

	for _, key := range *keys {
		d := details[key]
		if err := d.writeXML(w); err != nil {
			return err
		}
	}
	return nil
}

func (s *ExerciseSegment) parseXML(nav *xmlio.Navigator) error {
	if err := parseReqCodable(nav, "exercise", "activity", &s.Activity); err != nil {
		return err
	}
	s.Title = nav.OptString("title")
	var err error
	if c := nav.SelectSingle("distance"); c != nil {
		d := &measurement.Length{}
		if err := d.ParseXML(c); err != nil {
			return err
		}
		s.Distance = d
	}
	if s.Duration, err = nav.OptDouble("duration"); err != nil {
		return err
	}
	if s.Offset, err = nav.OptDouble("offset"); err != nil {
		return err
	}
	if s.Details, err = parseExerciseDetails(nav); err != nil {
		return err
	}
	return nil
}

func (s *ExerciseSegment) writeXML(w *xmlio.Writer) error {
	if s.Activity.Text == "" {
		return itemtypes.NewSerializationError("exercise", "Segments.Activity")
	}
	w.StartElement("segment")
	if err := s.Activity.WriteXML(w, "activity"); err != nil {
		return err
	}
	w.WriteOptString("title", s.Title)
	if s.Distance != nil {
		if err := s.Distance.WriteXML(w, "distance"); err != nil {
			return err
		}
	}
	w.WriteOptDouble("duration", s.Duration)
	w.WriteOptDouble("offset", s.Offset)
	if err := writeExerciseDetails(w, s.Details); err != nil {
		return err
	}
	w.EndElement()
	return nil
}
