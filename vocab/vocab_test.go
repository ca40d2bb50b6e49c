package vocab

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func loadTestVocab(t *testing.T, m *Memory, name, version string, codes ...string) Key {
	t.Helper()
	key := Key{Family: "wc", Name: name, Version: version}
	entries := make([]Entry, len(codes))
	for i, c := range codes {
		entries[i] = Entry{Code: c, DisplayText: strings.ToUpper(c)}
	}
	if err := m.Load(key, entries); err != nil {
		t.Fatalf("Load(%s): %v", key, err)
	}
	return key
}

func TestMemoryFind(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	key := loadTestVocab(t, m, "exercise-activities", "1", "run", "swim")

	entry, err := m.Find(ctx, key, "run")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if entry.DisplayText != "RUN" {
		t.Errorf("DisplayText = %q, want %q", entry.DisplayText, "RUN")
	}

	if _, err := m.Find(ctx, key, "fly"); !errors.Is(err, ErrCodeNotFound) {
		t.Errorf("unknown code: got %v, want ErrCodeNotFound", err)
	}
	if _, err := m.Find(ctx, Key{Family: "wc", Name: "nope"}, "run"); !errors.Is(err, ErrVocabularyNotFound) {
		t.Errorf("unknown vocabulary: got %v, want ErrVocabularyNotFound", err)
	}
}

func TestMemoryVersionlessLookup(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	loadTestVocab(t, m, "lab-status", "1", "C")
	loadTestVocab(t, m, "lab-status", "2", "C", "P")

	// No version resolves to the newest load
	entry, err := m.Find(ctx, Key{Family: "wc", Name: "lab-status"}, "P")
	if err != nil {
		t.Fatalf("versionless Find: %v", err)
	}
	if entry.Code != "P" {
		t.Errorf("Code = %q, want %q", entry.Code, "P")
	}

	// Pinned version still resolves exactly
	if _, err := m.Find(ctx, Key{Family: "wc", Name: "lab-status", Version: "1"}, "P"); !errors.Is(err, ErrCodeNotFound) {
		t.Errorf("pinned version: got %v, want ErrCodeNotFound", err)
	}
}

func TestMemoryLoadRejectsBadInput(t *testing.T) {
	m := NewMemory()
	if err := m.Load(Key{Family: "wc"}, nil); err == nil {
		t.Error("incomplete key accepted")
	}
	if err := m.Load(Key{Family: "wc", Name: "x"}, []Entry{{Code: ""}}); err == nil {
		t.Error("empty code accepted")
	}
}

func TestMemoryFindHonorsContext(t *testing.T) {
	m := NewMemory()
	key := loadTestVocab(t, m, "v", "1", "a")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.Find(ctx, key, "a"); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestCached(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	key := loadTestVocab(t, m, "exercise-activities", "1", "run")
	c := NewCached(m, 16)

	for i := 0; i < 3; i++ {
		entry, err := c.Find(ctx, key, "run")
		if err != nil {
			t.Fatalf("Find #%d: %v", i, err)
		}
		if entry.Code != "run" {
			t.Errorf("Code = %q, want %q", entry.Code, "run")
		}
	}
	if s := c.Stats(); s.Hits != 2 || s.Misses != 1 {
		t.Errorf("hits/misses = %d/%d, want 2/1", s.Hits, s.Misses)
	}

	// Known-missing codes are cached too
	for i := 0; i < 2; i++ {
		if _, err := c.Find(ctx, key, "fly"); !errors.Is(err, ErrCodeNotFound) {
			t.Fatalf("Find(fly) #%d: got %v, want ErrCodeNotFound", i, err)
		}
	}
	if s := c.Stats(); s.Hits != 3 {
		t.Errorf("Hits after cached miss = %d, want 3", s.Hits)
	}
}

func TestChain(t *testing.T) {
	ctx := context.Background()
	first := NewMemory()
	loadTestVocab(t, first, "lab-status", "1", "C")
	second := NewMemory()
	loadTestVocab(t, second, "exercise-activities", "1", "run")

	chain := NewChain(first)
	chain.Add(second)

	// Resolved by the second service after the first passes
	entry, err := chain.Find(ctx, Key{Family: "wc", Name: "exercise-activities", Version: "1"}, "run")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if entry.Code != "run" {
		t.Errorf("Code = %q, want %q", entry.Code, "run")
	}

	// Code-not-found in the first service is authoritative
	if _, err := chain.Find(ctx, Key{Family: "wc", Name: "lab-status", Version: "1"}, "Z"); !errors.Is(err, ErrCodeNotFound) {
		t.Errorf("got %v, want ErrCodeNotFound", err)
	}

	// Nobody knows the vocabulary
	if _, err := chain.Find(ctx, Key{Family: "wc", Name: "nope"}, "x"); !errors.Is(err, ErrVocabularyNotFound) {
		t.Errorf("got %v, want ErrVocabularyNotFound", err)
	}
}

func TestLoadJSON(t *testing.T) {
	doc := `{
		"family": "wc",
		"name": "sample",
		"version": "3",
		"entries": [
			{"code": "a", "display": "Alpha"},
			{"code": "b", "display": "Beta"}
		]
	}`
	m := NewMemory()
	key, err := m.LoadJSON(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if key != (Key{Family: "wc", Name: "sample", Version: "3"}) {
		t.Errorf("key = %v", key)
	}

	entry, err := m.Find(context.Background(), key, "b")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if entry.DisplayText != "Beta" {
		t.Errorf("DisplayText = %q, want %q", entry.DisplayText, "Beta")
	}

	if _, err := m.LoadJSON(strings.NewReader(`{"unknown": true}`)); err == nil {
		t.Error("unknown field accepted")
	}
}

func TestBuiltin(t *testing.T) {
	m, err := NewBuiltin()
	if err != nil {
		t.Fatalf("NewBuiltin: %v", err)
	}
	if m.Len() == 0 {
		t.Fatal("no built-in vocabularies loaded")
	}

	ctx := context.Background()
	tests := []struct {
		name string
		code string
	}{
		{"exercise-activities", "run"},
		{"glucose-measurement-type", "wb"},
		{"lab-status", "C"},
		{"blood-types", "O+"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := m.Find(ctx, Key{Family: "wc", Name: tt.name}, tt.code)
			if err != nil {
				t.Fatalf("Find(%s, %s): %v", tt.name, tt.code, err)
			}
			if entry.DisplayText == "" {
				t.Error("empty display text")
			}
		})
	}
}
