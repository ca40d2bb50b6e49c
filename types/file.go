package types

import (
	"bytes"
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/blob"
	"github.com/gohealth/itemtypes/codable"
	"github.com/gohealth/itemtypes/xmlio"
)

// FileTypeID identifies file attachments.
var FileTypeID = uuid.MustParse("bd0403c5-4ae2-4b0e-a8db-1888678e4528")

// ContentBlobName is the blob name under which file-bearing types store
// their content.
const ContentBlobName = "content"

// File is an arbitrary file attached to a health record. The XML
// carries the file's name, size, and content type; the bytes themselves
// live out of band in a blob.Store.
type File struct {
	// Name of the file. Required.
	Name string

	// size of the content in bytes. Maintained by SetContent.
	size int64

	// ContentType of the file, for example image/jpeg. Optional.
	ContentType *codable.CodableValue
}

// NewFile creates a File with the given name.
func NewFile(name string) (*File, error) {
	if name == "" {
		return nil, itemtypes.NewValidationError("Name", "must not be empty")
	}
	return &File{Name: name}, nil
}

// Size returns the content size in bytes.
func (f *File) Size() int64 { return f.size }

// SetSize records the content size. The size must be positive.
func (f *File) SetSize(n int64) error {
	if n <= 0 {
		return itemtypes.NewValidationError("Size", "must be positive")
	}
	f.size = n
	return nil
}

// SetContent stores the file bytes under the owning thing's ID and
// records their size.
func (f *File) SetContent(ctx context.Context, store blob.Store, thingID uuid.UUID, content []byte) error {
	if len(content) == 0 {
		return itemtypes.NewValidationError("Size", "must be positive")
	}
	contentType := "application/octet-stream"
	if f.ContentType != nil && f.ContentType.Text != "" {
		contentType = f.ContentType.Text
	}
	key := blob.Key{ThingID: thingID, Name: ContentBlobName}
	info, err := store.Put(ctx, key, contentType, bytes.NewReader(content))
	if err != nil {
		return err
	}
	f.size = info.Size
	return nil
}

// Content loads the file bytes stored by SetContent.
func (f *File) Content(ctx context.Context, store blob.Store, thingID uuid.UUID) ([]byte, error) {
	key := blob.Key{ThingID: thingID, Name: ContentBlobName}
	rc, _, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// TypeID implements itemtypes.TypeData.
func (f *File) TypeID() uuid.UUID { return FileTypeID }

// TypeName implements itemtypes.TypeData.
func (f *File) TypeName() string { return "file" }

// ParseXML populates the file from a <file> element.
func (f *File) ParseXML(nav *xmlio.Navigator) error {
	root, err := selectRoot(nav, "file")
	if err != nil {
		return err
	}
	name, err := root.String("name")
	if err != nil {
		return itemtypes.NewParseError("file", "name")
	}
	f.Name = name
	size, err := root.Int("size")
	if err != nil {
		return itemtypes.WrapParseError("file", "size", err)
	}
	if err := f.SetSize(int64(size)); err != nil {
		return err
	}
	f.ContentType, err = parseOptCodable(root, "content-type")
	return err
}

// WriteXML emits the <file> element.
func (f *File) WriteXML(w *xmlio.Writer) error {
	if f.Name == "" {
		return itemtypes.NewSerializationError("file", "Name")
	}
	if f.size <= 0 {
		return itemtypes.NewSerializationError("file", "Size")
	}
	w.StartElement("file")
	w.WriteString("name", f.Name)
	w.WriteInt("size", int(f.size))
	if err := writeOptCodable(w, "content-type", f.ContentType); err != nil {
		return err
	}
	w.EndElement()
	return nil
}

// String returns the file name.
func (f *File) String() string { return f.Name }
