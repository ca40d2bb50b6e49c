package types

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/dates"
	"github.com/gohealth/itemtypes/xmlio"
)

// InsightTypeID identifies machine-generated health insights.
var InsightTypeID = uuid.MustParse("5d15b7bc-0499-4dc4-8df7-ef1a2332cfb5")

// Insight records a machine-generated observation about the record
// owner's health data.
type Insight struct {
	// RawInsightID identifies the insight in the generating system.
	// Required, non-empty.
	RawInsightID string

	// When the insight was generated. Required.
	When dates.DateTime

	// ExpirationDate after which the insight is stale. Optional.
	ExpirationDate *dates.DateTime

	// Channel the insight applies to, e.g. "activity". Optional.
	Channel *string

	// AlgoClass names the generating algorithm class. Optional.
	AlgoClass *string

	// Directionality such as "positive" or "negative". Optional.
	Directionality *string

	// Annotation is the human-readable message. Optional.
	Annotation *string

	// Strength of the signal behind the insight. Optional.
	Strength *float64

	// Confidence of the generating algorithm. Optional.
	Confidence *float64

	// Origin names the generating system. Optional.
	Origin *string

	// Tags classify the insight. Optional.
	Tags []string

	// Values holds algorithm-specific key/value payload. Keys are
	// written in sorted order so output is deterministic.
	Values map[string]string
}

// NewInsight creates an Insight with the given raw identifier, generated
// now.
func NewInsight(rawInsightID string) (*Insight, error) {
	if strings.TrimSpace(rawInsightID) == "" {
		return nil, itemtypes.NewValidationError("rawInsightID", "must not be empty")
	}
	return &Insight{RawInsightID: rawInsightID, When: *dates.Now()}, nil
}

// TypeID implements itemtypes.TypeData.
func (in *Insight) TypeID() uuid.UUID { return InsightTypeID }

// TypeName implements itemtypes.TypeData.
func (in *Insight) TypeName() string { return "insight" }

// ParseXML populates the insight from an <insight> element.
func (in *Insight) ParseXML(nav *xmlio.Navigator) error {
	root, err := selectRoot(nav, "insight")
	if err != nil {
		return err
	}
	id, err := root.String("raw-insight-id")
	if err != nil {
		return itemtypes.NewParseError("insight", "raw-insight-id")
	}
	in.RawInsightID = id
	if err := parseReqDateTime(root, "insight", "when", &in.When); err != nil {
		return err
	}
	if in.ExpirationDate, err = parseOptDateTime(root, "expiration-date"); err != nil {
		return err
	}
	in.Channel = root.OptString("channel")
	in.AlgoClass = root.OptString("algo-class")
	in.Directionality = root.OptString("directionality")
	in.Annotation = root.OptString("annotation")
	if in.Strength, err = root.OptDouble("strength"); err != nil {
		return itemtypes.WrapParseError("insight", "strength", err)
	}
	if in.Confidence, err = root.OptDouble("confidence"); err != nil {
		return itemtypes.WrapParseError("insight", "confidence", err)
	}
	in.Origin = root.OptString("origin")

	in.Tags = nil
	if tagsNav := root.SelectSingle("tags"); tagsNav != nil {
		for _, tagNav := range tagsNav.Select("tag") {
			in.Tags = append(in.Tags, tagNav.Text())
		}
	}

	in.Values = nil
	if valuesNav := root.SelectSingle("values"); valuesNav != nil {
		in.Values = make(map[string]string)
		for _, vNav := range valuesNav.Select("value") {
			k, err := vNav.String("key")
			if err != nil {
				return itemtypes.NewParseError("insight", "values/value/key")
			}
			v, err := vNav.String("val")
			if err != nil {
				return itemtypes.NewParseError("insight", "values/value/val")
			}
			in.Values[k] = v
		}
	}
	return nil
}

// WriteXML emits the <insight> element.
func (in *Insight) WriteXML(w *xmlio.Writer) error {
	if in.RawInsightID == "" {
		return itemtypes.NewSerializationError("insight", "RawInsightID")
	}
	if in.When.Date.Year() == 0 {
		return itemtypes.NewSerializationError("insight", "When")
	}
	w.StartElement("insight")
	w.WriteString("raw-insight-id", in.RawInsightID)
	if err := in.When.WriteXML(w, "when"); err != nil {
		return err
	}
	if in.ExpirationDate != nil {
		if err := in.ExpirationDate.WriteXML(w, "expiration-date"); err != nil {
			return err
		}
	}
	w.WriteOptString("channel", in.Channel)
	w.WriteOptString("algo-class", in.AlgoClass)
	w.WriteOptString("directionality", in.Directionality)
	w.WriteOptString("annotation", in.Annotation)
	w.WriteOptDouble("strength", in.Strength)
	w.WriteOptDouble("confidence", in.Confidence)
	w.WriteOptString("origin", in.Origin)

	if len(in.Tags) > 0 {
		w.StartElement("tags")
		for _, tag := range in.Tags {
			w.WriteString("tag", tag)
		}
		w.EndElement()
	}

	if len(in.Values) > 0 {
		keys := make([]string, 0, len(in.Values))
		for k := range in.Values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		w.StartElement("values")
		for _, k := range keys {
			w.StartElement("value")
			w.WriteString("key", k)
			w.WriteString("val", in.Values[k])
			w.EndElement()
		}
		w.EndElement()
	}
	w.EndElement()
	return nil
}

// String summarizes the insight: the annotation when present, otherwise
// the raw identifier.
func (in *Insight) String() string {
	if in.Annotation != nil && *in.Annotation != "" {
		return *in.Annotation
	}
	return in.RawInsightID
}
