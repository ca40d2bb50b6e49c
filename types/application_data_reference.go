package types

import (
	"github.com/google/uuid"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/xmlio"
)

// ApplicationDataReferenceTypeID identifies references to data managed
// by an external application.
var ApplicationDataReferenceTypeID = uuid.MustParse("9ad2a94f-c6a4-4d78-8b50-75b65be0e250")

// ApplicationDataReference points at data a partner application renders
// or manages on the record's behalf.
type ApplicationDataReference struct {
	// Name of the referenced data. Required.
	Name string

	// RenderFileName is the application's rendering entry point. Optional.
	RenderFileName *string

	// PublicURL is where the data can be viewed. Optional.
	PublicURL *string

	// ConfigurationURL is where the data can be configured. Optional.
	ConfigurationURL *string

	// ApplicationDataURL is where the raw data lives. Optional.
	ApplicationDataURL *string
}

// NewApplicationDataReference creates a reference with the given name.
func NewApplicationDataReference(name string) (*ApplicationDataReference, error) {
	if name == "" {
		return nil, itemtypes.NewValidationError("Name", "must not be empty")
	}
	return &ApplicationDataReference{Name: name}, nil
}

// TypeID implements itemtypes.TypeData.
func (a *ApplicationDataReference) TypeID() uuid.UUID { return ApplicationDataReferenceTypeID }

// TypeName implements itemtypes.TypeData.
func (a *ApplicationDataReference) TypeName() string { return "application-data-reference" }

// ParseXML populates the reference from an
// <application-data-reference> element.
func (a *ApplicationDataReference) ParseXML(nav *xmlio.Navigator) error {
	root, err := selectRoot(nav, "application-data-reference")
	if err != nil {
		return err
	}
	name, err := root.String("name")
	if err != nil {
		return itemtypes.NewParseError("application-data-reference", "name")
	}
	a.Name = name
	a.RenderFileName = root.OptString("render-filename")
	a.PublicURL = root.OptString("public-url")
	a.ConfigurationURL = root.OptString("configuration-url")
	a.ApplicationDataURL = root.OptString("application-data-url")
	return nil
}

// WriteXML emits the <application-data-reference> element.
func (a *ApplicationDataReference) WriteXML(w *xmlio.Writer) error {
	if a.Name == "" {
		return itemtypes.NewSerializationError("application-data-reference", "Name")
	}
	w.StartElement("application-data-reference")
	w.WriteString("name", a.Name)
	w.WriteOptString("render-filename", a.RenderFileName)
	w.WriteOptString("public-url", a.PublicURL)
	w.WriteOptString("configuration-url", a.ConfigurationURL)
	w.WriteOptString("application-data-url", a.ApplicationDataURL)
	w.EndElement()
	return nil
}

// String returns the reference name.
func (a *ApplicationDataReference) String() string { return a.Name }
