package vocab

import "embed"

// Built-in vocabularies shipped with the library. Each file follows the
// loader's document format.
//
//go:embed data/*.json
var builtinFS embed.FS

// NewBuiltin creates an in-memory service preloaded with the embedded
// vocabularies.
func NewBuiltin() (*Memory, error) {
	m := NewMemory()
	if err := m.LoadFS(builtinFS); err != nil {
		return nil, err
	}
	return m, nil
}
