package types

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/dates"
	"github.com/gohealth/itemtypes/xmlio"
)

// EmotionTypeID identifies emotional state entries.
var EmotionTypeID = uuid.MustParse("4b7971d6-e427-427d-bf2c-2fbcf76606b3")

// Emotional state ratings run from 1 (lowest) to 5 (highest).
const (
	RatingMin = 1
	RatingMax = 5
)

// Emotion records a person's emotional state at a point in time. Each
// aspect is rated on a five-point scale; unrated aspects stay nil.
type Emotion struct {
	// When the state was recorded. Required.
	When dates.DateTime

	mood      *int
	stress    *int
	wellbeing *int
}

// NewEmotion creates an entry recorded now.
func NewEmotion() *Emotion {
	return &Emotion{When: *dates.Now()}
}

func checkRating(field string, v int) error {
	if v < RatingMin || v > RatingMax {
		return itemtypes.NewValidationError(field, fmt.Sprintf("must be between %d and %d", RatingMin, RatingMax))
	}
	return nil
}

// Mood returns the mood rating, or nil when unrated.
func (e *Emotion) Mood() *int { return e.mood }

// SetMood rates the person's mood on the five-point scale.
func (e *Emotion) SetMood(v int) error {
	if err := checkRating("Mood", v); err != nil {
		return err
	}
	e.mood = &v
	return nil
}

// Stress returns the stress rating, or nil when unrated.
func (e *Emotion) Stress() *int { return e.stress }

// SetStress rates the person's stress on the five-point scale.
func (e *Emotion) SetStress(v int) error {
	if err := checkRating("Stress", v); err != nil {
		return err
	}
	e.stress = &v
	return nil
}

// Wellbeing returns the wellbeing rating, or nil when unrated.
func (e *Emotion) Wellbeing() *int { return e.wellbeing }

// SetWellbeing rates the person's wellbeing on the five-point scale.
func (e *Emotion) SetWellbeing(v int) error {
	if err := checkRating("Wellbeing", v); err != nil {
		return err
	}
	e.wellbeing = &v
	return nil
}

// TypeID implements itemtypes.TypeData.
func (e *Emotion) TypeID() uuid.UUID { return EmotionTypeID }

// TypeName implements itemtypes.TypeData.
func (e *Emotion) TypeName() string { return "emotion" }

// ParseXML populates the entry from an <emotion> element.
func (e *Emotion) ParseXML(nav *xmlio.Navigator) error {
	root, err := selectRoot(nav, "emotion")
	if err != nil {
		return err
	}
	if err := parseReqDateTime(root, "emotion", "when", &e.When); err != nil {
		return err
	}
	e.mood, e.stress, e.wellbeing = nil, nil, nil
	for _, f := range []struct {
		name string
		set  func(int) error
	}{
		{"mood", e.SetMood},
		{"stress", e.SetStress},
		{"wellbeing", e.SetWellbeing},
	} {
		v, err := root.OptInt(f.name)
		if err != nil {
			return err
		}
		if v == nil {
			continue
		}
		if err := f.set(*v); err != nil {
			return err
		}
	}
	return nil
}

// WriteXML emits the <emotion> element.
func (e *Emotion) WriteXML(w *xmlio.Writer) error {
	if e.When.Date.Year() == 0 {
		return itemtypes.NewSerializationError("emotion", "When")
	}
	w.StartElement("emotion")
	if err := e.When.WriteXML(w, "when"); err != nil {
		return err
	}
	w.WriteOptInt("mood", e.mood)
	w.WriteOptInt("stress", e.stress)
	w.WriteOptInt("wellbeing", e.wellbeing)
	w.EndElement()
	return nil
}
