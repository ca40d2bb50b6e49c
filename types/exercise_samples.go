package types

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/blob"
	"github.com/gohealth/itemtypes/codable"
	"github.com/gohealth/itemtypes/dates"
	"github.com/gohealth/itemtypes/xmlio"
)

// ExerciseSamplesTypeID identifies series of exercise samples.
var ExerciseSamplesTypeID = uuid.MustParse("e1f92d7f-9699-4483-8223-8442874ec6d9")

// SamplesBlobName is the blob name under which a sample series stores
// its readings.
const SamplesBlobName = "samples"

// ExerciseSamples describes a series of readings collected during
// exercise, such as heart rate over a run. The readings themselves live
// out of band in a blob.Store; the XML carries only the series
// description.
type ExerciseSamples struct {
	// When the series started. Required.
	When dates.ApproximateDateTime

	// Name of the measured quantity, for example Heart rate. Required.
	Name codable.CodableValue

	// Unit of each sample value. Required.
	Unit codable.CodableValue

	// samplingInterval is the seconds between consecutive samples.
	samplingInterval float64
}

// NewExerciseSamples creates a series description starting in the given
// year.
func NewExerciseSamples(name, unit codable.CodableValue, year int, intervalSeconds float64) (*ExerciseSamples, error) {
	when, err := dates.NewApproximateDateTime(year)
	if err != nil {
		return nil, err
	}
	es := &ExerciseSamples{When: *when, Name: name, Unit: unit}
	if err := es.SetSamplingInterval(intervalSeconds); err != nil {
		return nil, err
	}
	return es, nil
}

// SamplingInterval returns the seconds between consecutive samples.
func (es *ExerciseSamples) SamplingInterval() float64 { return es.samplingInterval }

// SetSamplingInterval sets the seconds between consecutive samples. The
// interval must be positive.
func (es *ExerciseSamples) SetSamplingInterval(seconds float64) error {
	if seconds <= 0 {
		return itemtypes.NewValidationError("SamplingInterval", "must be positive")
	}
	es.samplingInterval = seconds
	return nil
}

// TypeID implements itemtypes.TypeData.
func (es *ExerciseSamples) TypeID() uuid.UUID { return ExerciseSamplesTypeID }

// TypeName implements itemtypes.TypeData.
func (es *ExerciseSamples) TypeName() string { return "exercise-samples" }

// ParseXML populates the series from an <exercise-samples> element.
func (es *ExerciseSamples) ParseXML(nav *xmlio.Navigator) error {
	root, err := selectRoot(nav, "exercise-samples")
	if err != nil {
		return err
	}
	if err := parseReqApproxDateTime(root, "exercise-samples", "when", &es.When); err != nil {
		return err
	}
	if err := parseReqCodable(root, "exercise-samples", "name", &es.Name); err != nil {
		return err
	}
	if err := parseReqCodable(root, "exercise-samples", "unit", &es.Unit); err != nil {
		return err
	}
	interval, err := root.Double("sampling-interval")
	if err != nil {
		return itemtypes.WrapParseError("exercise-samples", "sampling-interval", err)
	}
	return es.SetSamplingInterval(interval)
}

// WriteXML emits the <exercise-samples> element.
func (es *ExerciseSamples) WriteXML(w *xmlio.Writer) error {
	if es.When.Structured == nil && es.When.Description == nil {
		return itemtypes.NewSerializationError("exercise-samples", "When")
	}
	if es.Name.Text == "" {
		return itemtypes.NewSerializationError("exercise-samples", "Name")
	}
	if es.Unit.Text == "" {
		return itemtypes.NewSerializationError("exercise-samples", "Unit")
	}
	if es.samplingInterval <= 0 {
		return itemtypes.NewSerializationError("exercise-samples", "SamplingInterval")
	}
	w.StartElement("exercise-samples")
	if err := es.When.WriteXML(w, "when"); err != nil {
		return err
	}
	if err := es.Name.WriteXML(w, "name"); err != nil {
		return err
	}
	if err := es.Unit.WriteXML(w, "unit"); err != nil {
		return err
	}
	w.WriteDouble("sampling-interval", es.samplingInterval)
	w.EndElement()
	return nil
}

// String summarizes the series.
func (es *ExerciseSamples) String() string {
	return fmt.Sprintf("%s every %gs", es.Name.String(), es.samplingInterval)
}

// PutSamples stores the series readings as one CSV line per sample
// under the owning thing's ID.
func (es *ExerciseSamples) PutSamples(ctx context.Context, store blob.Store, thingID uuid.UUID, samples []float64) error {
	var buf bytes.Buffer
	for _, s := range samples {
		buf.WriteString(strconv.FormatFloat(s, 'g', -1, 64))
		buf.WriteByte('\n')
	}
	key := blob.Key{ThingID: thingID, Name: SamplesBlobName}
	_, err := store.Put(ctx, key, "text/csv", &buf)
	return err
}

// GetSamples loads the series readings stored by PutSamples.
func (es *ExerciseSamples) GetSamples(ctx context.Context, store blob.Store, thingID uuid.UUID) ([]float64, error) {
	key := blob.Key{ThingID: thingID, Name: SamplesBlobName}
	rc, _, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	var out []float64
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed sample %q: %w", line, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// AppendSamples adds readings to the stored series, creating it when no
// series exists yet.
func (es *ExerciseSamples) AppendSamples(ctx context.Context, store blob.Store, thingID uuid.UUID, samples []float64) error {
	existing, err := es.GetSamples(ctx, store, thingID)
	if err != nil && !errors.Is(err, blob.ErrNotFound) {
		return err
	}
	return es.PutSamples(ctx, store, thingID, append(existing, samples...))
}
