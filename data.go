package itemtypes

import (
	"github.com/google/uuid"

	"github.com/gohealth/itemtypes/xmlio"
)

// TypeData is the contract every thing type implements: a stable GUID
// identity plus bidirectional XML conversion.
//
// ParseXML locates the type's root element under nav and populates the
// receiver. A missing root element is a *ParseError; malformed scalar
// content surfaces the underlying parse failure wrapped in a *ParseError.
//
// WriteXML verifies mandatory fields first (*SerializationError naming the
// field, before any output), then emits the root element with child
// elements in fixed schema order, omitting unset optionals. Element order
// is part of the wire contract.
type TypeData interface {
	// TypeID returns the stable GUID the platform uses to route payloads
	// of this type.
	TypeID() uuid.UUID

	// TypeName returns the wire name of the root element, e.g. "height".
	TypeName() string

	// ParseXML populates the receiver from the navigator.
	ParseXML(nav *xmlio.Navigator) error

	// WriteXML emits the type's XML projection.
	WriteXML(w *xmlio.Writer) error
}
