package types

import (
	"context"

	"github.com/google/uuid"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/blob"
	"github.com/gohealth/itemtypes/dates"
	"github.com/gohealth/itemtypes/xmlio"
)

// BlueButtonTextFileTypeID identifies Blue Button text exports.
var BlueButtonTextFileTypeID = uuid.MustParse("3ed38b3f-4724-4df5-b0a6-0eac2c4a2598")

// BlueButtonTextFile is an ASCII Blue Button export attached to a
// record. The text itself is stored out of band in a blob.Store; the
// XML carries the export's provenance.
type BlueButtonTextFile struct {
	// When the export was produced. Required.
	When dates.DateTime

	// Source that produced the export, for example a payer portal.
	// Optional.
	Source *string
}

// NewBlueButtonTextFile creates an export produced now.
func NewBlueButtonTextFile() *BlueButtonTextFile {
	return &BlueButtonTextFile{When: *dates.Now()}
}

// SetText stores the export text under the owning thing's ID.
func (b *BlueButtonTextFile) SetText(ctx context.Context, store blob.Store, thingID uuid.UUID, text string) error {
	if text == "" {
		return itemtypes.NewValidationError("Text", "must not be empty")
	}
	f := File{Name: "bluebutton.txt"}
	return f.SetContent(ctx, store, thingID, []byte(text))
}

// Text loads the export text stored by SetText.
func (b *BlueButtonTextFile) Text(ctx context.Context, store blob.Store, thingID uuid.UUID) (string, error) {
	f := File{Name: "bluebutton.txt"}
	data, err := f.Content(ctx, store, thingID)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// TypeID implements itemtypes.TypeData.
func (b *BlueButtonTextFile) TypeID() uuid.UUID { return BlueButtonTextFileTypeID }

// TypeName implements itemtypes.TypeData.
func (b *BlueButtonTextFile) TypeName() string { return "blue-button-text-file" }

// ParseXML populates the export from a <blue-button-text-file> element.
func (b *BlueButtonTextFile) ParseXML(nav *xmlio.Navigator) error {
	root, err := selectRoot(nav, "blue-button-text-file")
	if err != nil {
		return err
	}
	if err := parseReqDateTime(root, "blue-button-text-file", "when", &b.When); err != nil {
		return err
	}
	b.Source = root.OptString("source")
	return nil
}

// WriteXML emits the <blue-button-text-file> element.
func (b *BlueButtonTextFile) WriteXML(w *xmlio.Writer) error {
	if b.When.Date.Year() == 0 {
		return itemtypes.NewSerializationError("blue-button-text-file", "When")
	}
	w.StartElement("blue-button-text-file")
	if err := b.When.WriteXML(w, "when"); err != nil {
		return err
	}
	w.WriteOptString("source", b.Source)
	w.EndElement()
	return nil
}
