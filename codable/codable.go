// Package codable models coded-text values: a display string optionally
// paired with one or more vocabulary codes.
//
// On the wire a codable value is
//
//	<text>Hypertension</text>
//	<code>
//	  <value>K85.2</value>
//	  <family>icd</family>
//	  <type>icd9cm</type>
//	  <version>1</version>
//	</code>
//
// under whatever element name the owning type assigns. The element name
// is supplied by the caller at write time, matching the schema position.
package codable

import (
	"strings"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/xmlio"
)

// CodedValue is one vocabulary code: the code string plus the vocabulary
// that defines it.
type CodedValue struct {
	// Value is the code itself. Required, non-empty.
	Value string

	// VocabularyName names the vocabulary defining the code. Required,
	// non-empty.
	VocabularyName string

	// Family is the vocabulary family, e.g. "wc" or "icd". Optional.
	Family *string

	// Version is the vocabulary version. Optional.
	Version *string
}

// NewCodedValue creates a CodedValue, validating the mandatory parts.
func NewCodedValue(value, vocabularyName string) (*CodedValue, error) {
	if strings.TrimSpace(value) == "" {
		return nil, itemtypes.NewValidationError("value", "must not be empty")
	}
	if strings.TrimSpace(vocabularyName) == "" {
		return nil, itemtypes.NewValidationError("vocabularyName", "must not be empty")
	}
	return &CodedValue{Value: value, VocabularyName: vocabularyName}, nil
}

// ParseXML populates the coded value from a <code> element.
func (cv *CodedValue) ParseXML(nav *xmlio.Navigator) error {
	v, err := nav.String("value")
	if err != nil {
		return itemtypes.NewParseError("coded-value", "value")
	}
	typ, err := nav.String("type")
	if err != nil {
		return itemtypes.NewParseError("coded-value", "type")
	}
	cv.Value = v
	cv.VocabularyName = typ
	cv.Family = nav.OptString("family")
	cv.Version = nav.OptString("version")
	return nil
}

// WriteXML emits the coded value under the given element name.
func (cv *CodedValue) WriteXML(w *xmlio.Writer, name string) error {
	if cv.Value == "" {
		return itemtypes.NewSerializationError("coded-value", "Value")
	}
	if cv.VocabularyName == "" {
		return itemtypes.NewSerializationError("coded-value", "VocabularyName")
	}
	w.StartElement(name)
	w.WriteString("value", cv.Value)
	w.WriteOptString("family", cv.Family)
	w.WriteString("type", cv.VocabularyName)
	w.WriteOptString("version", cv.Version)
	w.EndElement()
	return nil
}

// CodableValue pairs a display string with any number of vocabulary
// codes.
type CodableValue struct {
	// Text is the display string. Required, non-empty.
	Text string

	// Codes holds the vocabulary codes, most specific first. Optional.
	Codes []CodedValue
}

// NewCodableValue creates a text-only codable value.
func NewCodableValue(text string) (*CodableValue, error) {
	if strings.TrimSpace(text) == "" {
		return nil, itemtypes.NewValidationError("text", "must not be empty")
	}
	return &CodableValue{Text: text}, nil
}

// NewCodedCodableValue creates a codable value carrying one code.
func NewCodedCodableValue(text, code, vocabularyName string) (*CodableValue, error) {
	cv, err := NewCodableValue(text)
	if err != nil {
		return nil, err
	}
	coded, err := NewCodedValue(code, vocabularyName)
	if err != nil {
		return nil, err
	}
	cv.Codes = append(cv.Codes, *coded)
	return cv, nil
}

// AddCode appends a vocabulary code.
func (cv *CodableValue) AddCode(code, vocabularyName string) error {
	coded, err := NewCodedValue(code, vocabularyName)
	if err != nil {
		return err
	}
	cv.Codes = append(cv.Codes, *coded)
	return nil
}

// ParseXML populates the codable value from its named element.
func (cv *CodableValue) ParseXML(nav *xmlio.Navigator) error {
	text, err := nav.String("text")
	if err != nil {
		return itemtypes.NewParseError(nav.Name(), "text")
	}
	cv.Text = text
	cv.Codes = cv.Codes[:0]
	for _, codeNav := range nav.Select("code") {
		var code CodedValue
		if err := code.ParseXML(codeNav); err != nil {
			return err
		}
		cv.Codes = append(cv.Codes, code)
	}
	return nil
}

// WriteXML emits the codable value under the given element name.
func (cv *CodableValue) WriteXML(w *xmlio.Writer, name string) error {
	if cv.Text == "" {
		return itemtypes.NewSerializationError(name, "Text")
	}
	w.StartElement(name)
	w.WriteString("text", cv.Text)
	for i := range cv.Codes {
		if err := cv.Codes[i].WriteXML(w, "code"); err != nil {
			return err
		}
	}
	w.EndElement()
	return nil
}

// String returns the display text.
func (cv *CodableValue) String() string {
	if cv == nil {
		return ""
	}
	return cv.Text
}
