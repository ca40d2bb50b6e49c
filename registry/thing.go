package registry

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/xmlio"
)

// Thing is the envelope that wraps typed data on the wire:
//
//	<thing>
//	  <thing-id>...</thing-id>
//	  <type-id>...</type-id>
//	  <data-xml>
//	    <height>...</height>
//	  </data-xml>
//	</thing>
type Thing struct {
	// ThingID identifies this instance.
	ThingID uuid.UUID

	// TypeID identifies the payload's type.
	TypeID uuid.UUID

	// Data is the typed payload.
	Data itemtypes.TypeData
}

// NewThing wraps typed data in an envelope with a fresh thing ID.
func NewThing(data itemtypes.TypeData) *Thing {
	return &Thing{ThingID: uuid.New(), TypeID: data.TypeID(), Data: data}
}

// ParseThing reads a <thing> envelope, resolves the payload type
// against the registry, and parses the payload.
func ParseThing(nav *xmlio.Navigator, reg *Registry) (*Thing, error) {
	if nav.Name() != "thing" {
		if c := nav.SelectSingle("thing"); c != nil {
			nav = c
		} else {
			return nil, itemtypes.NewParseError("thing", "thing")
		}
	}
	t := &Thing{}

	raw, err := nav.String("thing-id")
	if err != nil {
		return nil, itemtypes.NewParseError("thing", "thing-id")
	}
	if t.ThingID, err = uuid.Parse(raw); err != nil {
		return nil, itemtypes.WrapParseError("thing", "thing-id", err)
	}

	raw, err = nav.String("type-id")
	if err != nil {
		return nil, itemtypes.NewParseError("thing", "type-id")
	}
	if t.TypeID, err = uuid.Parse(raw); err != nil {
		return nil, itemtypes.WrapParseError("thing", "type-id", err)
	}

	dataNav := nav.SelectSingle("data-xml")
	if dataNav == nil {
		return nil, itemtypes.NewParseError("thing", "data-xml")
	}

	data, err := reg.NewData(t.TypeID)
	if err != nil {
		return nil, err
	}
	if err := data.ParseXML(dataNav); err != nil {
		return nil, err
	}
	t.Data = data
	return t, nil
}

// WriteXML emits the <thing> envelope including the typed payload.
func (t *Thing) WriteXML(w *xmlio.Writer) error {
	if t.Data == nil {
		return itemtypes.NewSerializationError("thing", "Data")
	}
	if t.ThingID == uuid.Nil {
		return itemtypes.NewSerializationError("thing", "ThingID")
	}
	typeID := t.TypeID
	if typeID == uuid.Nil {
		typeID = t.Data.TypeID()
	}
	if typeID != t.Data.TypeID() {
		return fmt.Errorf("type id %s does not match payload type %s", typeID, t.Data.TypeID())
	}
	w.StartElement("thing")
	w.WriteString("thing-id", t.ThingID.String())
	w.WriteString("type-id", typeID.String())
	w.StartElement("data-xml")
	if err := t.Data.WriteXML(w); err != nil {
		return err
	}
	w.EndElement()
	w.EndElement()
	return nil
}
