package vocab

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// vocabularyFile is the JSON document format the loader reads:
//
//	{
//	  "family": "wc",
//	  "name": "exercise-activities",
//	  "version": "1",
//	  "entries": [
//	    {"code": "run", "display": "Running"}
//	  ]
//	}
type vocabularyFile struct {
	Family  string `json:"family"`
	Name    string `json:"name"`
	Version string `json:"version"`
	Entries []struct {
		Code    string `json:"code"`
		Display string `json:"display"`
	} `json:"entries"`
}

// LoadJSON reads one vocabulary document into the service.
func (m *Memory) LoadJSON(r io.Reader) (Key, error) {
	var doc vocabularyFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return Key{}, fmt.Errorf("vocab: decode: %w", err)
	}

	key := Key{Family: doc.Family, Name: doc.Name, Version: doc.Version}
	entries := make([]Entry, len(doc.Entries))
	for i, e := range doc.Entries {
		entries[i] = Entry{Code: e.Code, DisplayText: e.Display}
	}
	if err := m.Load(key, entries); err != nil {
		return Key{}, err
	}
	return key, nil
}

// LoadFile reads one vocabulary JSON file into the service.
func (m *Memory) LoadFile(path string) (Key, error) {
	f, err := os.Open(path)
	if err != nil {
		return Key{}, fmt.Errorf("vocab: open %s: %w", path, err)
	}
	defer f.Close()
	key, err := m.LoadJSON(f)
	if err != nil {
		return Key{}, fmt.Errorf("vocab: %s: %w", path, err)
	}
	return key, nil
}

// LoadFS reads every .json file in the filesystem tree into the
// service.
func (m *Memory) LoadFS(fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		f, err := fsys.Open(path)
		if err != nil {
			return fmt.Errorf("vocab: open %s: %w", path, err)
		}
		defer f.Close()
		if _, err := m.LoadJSON(f); err != nil {
			return fmt.Errorf("vocab: %s: %w", path, err)
		}
		return nil
	})
}

// LoadDir reads every .json file under dir into the service.
func (m *Memory) LoadDir(dir string) error {
	return m.LoadFS(os.DirFS(filepath.Clean(dir)))
}
